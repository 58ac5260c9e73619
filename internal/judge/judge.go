package judge

import (
	"errors"
	"time"

	"git.lost.host/meutraa/reprise/internal/game"
)

// Config carries the timing windows and scoring rules. Windows are
// radii around a note's target time and must strictly ascend.
type Config struct {
	PerfectWindow time.Duration
	GoodWindow    time.Duration
	BadWindow     time.Duration

	PerfectScore int64
	GoodScore    int64
	BadScore     int64

	// Combo bonus: BonusScore extra per BonusEvery consecutive combo,
	// restricted to Perfect judgements when BonusPerfectOnly is set.
	BonusEvery       int
	BonusScore       int64
	BonusPerfectOnly bool
}

func DefaultConfig() Config {
	return Config{
		PerfectWindow:    100 * time.Millisecond,
		GoodWindow:       200 * time.Millisecond,
		BadWindow:        300 * time.Millisecond,
		PerfectScore:     300,
		GoodScore:        100,
		BadScore:         50,
		BonusEvery:       10,
		BonusScore:       50,
		BonusPerfectOnly: true,
	}
}

func (c Config) Validate() error {
	if c.PerfectWindow <= 0 {
		return errors.New("perfect window must be positive")
	}
	if c.PerfectWindow >= c.GoodWindow || c.GoodWindow >= c.BadWindow {
		return errors.New("windows must satisfy perfect < good < bad")
	}
	if c.BonusEvery < 0 {
		return errors.New("bonus interval must not be negative")
	}
	return nil
}

// Judge evaluates taps against the pending note set and owns the
// score and combo state.
type Judge interface {
	Classify(offset time.Duration) game.Tier
	Tap(in game.Input) bool
	Sweep(position time.Duration)
	Reset()

	Score() int64
	Combo() int
	Counts() [game.TierCount]int
	Mean() time.Duration
	Stdev() float64
}
