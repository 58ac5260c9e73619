package history

import (
	"time"

	"git.lost.host/meutraa/reprise/internal/game"
)

// Recorder keeps finished rounds so a session can be reviewed later.
// It stores judgement offsets, not a high score table.
type Recorder interface {
	Init() error
	Deinit()

	// Save records one finished round for the pattern
	Save(pattern *game.Pattern, round int, r Round)

	// Load returns every recorded round for the pattern
	Load(pattern *game.Pattern) []Entry
}

// Round is the judgement summary of one completed round.
type Round struct {
	Score   int64
	Combo   int
	Counts  [game.TierCount]int
	Offsets []time.Duration // signed offsets of the hit notes
}

type Entry struct {
	Sum   string
	Round int
	Data  Round
}
