package lifecycle

// Listeners is a host-side registry of callbacks of type F. Listeners run in
// registration order. Not safe for concurrent use.
type Listeners[F any] struct {
	next  uint64
	order []uint64
	fns   map[uint64]F
}

// Add registers fn and returns a function that removes it. Calling the
// returned function again does nothing.
func (l *Listeners[F]) Add(fn F) (detach func()) {
	if l.fns == nil {
		l.fns = make(map[uint64]F)
	}
	l.next++
	id := l.next
	l.fns[id] = fn
	l.order = append(l.order, id)
	return func() { l.remove(id) }
}

func (l *Listeners[F]) remove(id uint64) {
	if _, ok := l.fns[id]; !ok {
		return
	}
	delete(l.fns, id)
	for i, v := range l.order {
		if v == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// Each calls visit for every registered listener. Listeners removed during
// the walk are skipped; ones added during the walk wait for the next call.
func (l *Listeners[F]) Each(visit func(F)) {
	ids := append([]uint64(nil), l.order...)
	for _, id := range ids {
		if fn, ok := l.fns[id]; ok {
			visit(fn)
		}
	}
}

// Len reports the number of registered listeners.
func (l *Listeners[F]) Len() int { return len(l.fns) }
