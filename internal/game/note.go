package game

import (
	"time"
)

type NoteState int

const (
	// Pending notes are spawned but not yet judged or expired.
	Pending NoteState = iota
	Judged
	Expired
)

func (s NoteState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Judged:
		return "judged"
	case Expired:
		return "expired"
	}
	return "unknown"
}

type Note struct {
	ID         uint64
	Ordinal    int           // Spawn order within the current phrase, used for lane placement
	TargetTime time.Duration // The music position the note should be hit at

	// This is state
	State    NoteState
	HitTime  time.Duration // When the note was hit, zero until judged
	MissTime time.Duration // When the note was swept, zero until expired
}

// Offset is the signed distance of a tap from the target time.
// Negative means the tap came early.
func (n *Note) Offset(at time.Duration) time.Duration {
	return at - n.TargetTime
}
