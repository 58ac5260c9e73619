package game

import (
	"time"
)

// BeatPosition is a point in musical time as counted by the metronome.
type BeatPosition struct {
	Measure int // 0-based
	Beat    int // 0 .. beatsPerMeasure-1
	Time    time.Duration
}

func (b BeatPosition) Downbeat() bool {
	return b.Beat == 0
}
