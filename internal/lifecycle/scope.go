package lifecycle

// Scope collects release functions as resources are acquired and runs them
// in reverse order on Close.
type Scope struct {
	releases []func()
	closed   bool
}

// Defer registers release. On a closed scope it runs immediately.
func (s *Scope) Defer(release func()) {
	if release == nil {
		return
	}
	if s.closed {
		release()
		return
	}
	s.releases = append(s.releases, release)
}

// Close releases everything, last acquired first. Further calls do nothing.
func (s *Scope) Close() {
	if s.closed {
		return
	}
	s.closed = true
	for i := len(s.releases) - 1; i >= 0; i-- {
		s.releases[i]()
	}
	s.releases = nil
}

// Closed reports whether Close has run.
func (s *Scope) Closed() bool { return s.closed }
