package scheduler

import "fmt"

// AlertLog collects diagnostic messages in generation order. Append-only,
// no deduplication, never sorted.
type AlertLog struct {
	entries []string
}

// Append records a message.
func (l *AlertLog) Append(msg string) {
	l.entries = append(l.entries, msg)
}

// Appendf records a formatted message.
func (l *AlertLog) Appendf(format string, args ...any) {
	l.entries = append(l.entries, fmt.Sprintf(format, args...))
}

// Entries returns a copy of the log in insertion order.
func (l *AlertLog) Entries() []string {
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of recorded alerts.
func (l *AlertLog) Len() int {
	return len(l.entries)
}
