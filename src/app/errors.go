package app

import "time"

const (
	// ErrorTimeout is how long an error stays on screen.
	ErrorTimeout = 5 * time.Second
	// MaxVisibleErrors caps the errors shown at once.
	MaxVisibleErrors = 5
)

type errorEntry struct {
	text string
	at   time.Time
}

// ErrorQueue holds user-visible errors, each expiring ErrorTimeout after it was pushed.
type ErrorQueue struct {
	entries []errorEntry
}

// Push adds an error at time now.
func (q *ErrorQueue) Push(text string, now time.Time) {
	q.entries = append(q.entries, errorEntry{text: text, at: now})
}

// Prune drops expired errors.
func (q *ErrorQueue) Prune(now time.Time) {
	kept := q.entries[:0]
	for _, e := range q.entries {
		if now.Sub(e.at) <= ErrorTimeout {
			kept = append(kept, e)
		}
	}
	q.entries = kept
}

// Visible returns the live errors, newest first.
func (q *ErrorQueue) Visible(now time.Time) []string {
	var out []string
	for i := len(q.entries) - 1; i >= 0 && len(out) < MaxVisibleErrors; i-- {
		e := q.entries[i]
		if now.Sub(e.at) > ErrorTimeout {
			break
		}
		out = append(out, e.text)
	}
	return out
}

// Len returns the number of stored errors, expired ones included until the next Prune.
func (q *ErrorQueue) Len() int { return len(q.entries) }
