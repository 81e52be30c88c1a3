package game

import (
	"fmt"
	"time"
)

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// Status is the text shown by the overlay layer.
type Status struct {
	Uptime  time.Duration
	Mode    string
	Points  int
	Ripples int
}

func (s Status) String() string {
	return fmt.Sprintf("%s  %s  dots %d  ripples %d  |  S: snapshot  Esc/Q: quit",
		formatDuration(s.Uptime), s.Mode, s.Points, s.Ripples)
}
