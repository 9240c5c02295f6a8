package models

import "time"

// SessionMode identifies what kind of interval a session was.
type SessionMode string

const (
	// SessionFocus is a focus interval; only these count toward statistics.
	SessionFocus SessionMode = "focus"
	// SessionBreak is a break interval.
	SessionBreak SessionMode = "break"
)

// SessionRecord is one completed interval in the session log.
type SessionRecord struct {
	CompletedAt time.Time
	ID          string
	Mode        SessionMode
	DateKey     string
	Minutes     int
}
