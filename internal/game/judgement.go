package game

import (
	"time"
)

type Tier int

const (
	TierPerfect Tier = iota
	TierGood
	TierBad
	TierMiss
)

const TierCount = 4

func (t Tier) String() string {
	switch t {
	case TierPerfect:
		return "perfect"
	case TierGood:
		return "good"
	case TierBad:
		return "bad"
	case TierMiss:
		return "miss"
	}
	return "unknown"
}

// Judgement is the outcome of evaluating one note, emitted once per note.
type Judgement struct {
	Tier   Tier
	NoteID uint64
	Offset time.Duration // Signed, zero for sweeps
	Score  int64         // Total score after this judgement
	Combo  int           // Combo after this judgement
}
