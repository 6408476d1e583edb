package app

import "time"

// Session tracks one CLI invocation. Its ID tags every log line written while
// the command runs, so a single command's output can be pulled from the log.
type Session struct {
	ID        string
	Operation string
	StartedAt time.Time
	Status    string // "success" or "error"
}

// NewSession creates a session for operation started at now.
func NewSession(operation string, now time.Time) *Session {
	return &Session{
		ID:        now.UTC().Format("20060102T150405Z"),
		Operation: operation,
		StartedAt: now,
		Status:    "success",
	}
}

// Fail marks the session as unsuccessful.
func (s *Session) Fail() {
	s.Status = "error"
}

// Failed returns true if Fail has been called.
func (s *Session) Failed() bool {
	return s.Status == "error"
}
