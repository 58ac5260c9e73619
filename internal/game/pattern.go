package game

import (
	"time"
)

// Phrase is one listen-phase worth of notes as beat counts. The first
// entry is the 1-based beat the first note falls on, each later entry
// is the gap in beats to the next note. Fractional counts are allowed.
type Phrase []float64

// Pattern is one parsed pattern file: tempo, signature, phase lengths
// and the phrases cycled through round by round.
type Pattern struct {
	Title           string
	BPM             float64
	BeatsPerMeasure int
	ListenMeasures  int
	PlayMeasures    int
	ResultMeasures  int
	Phrases         []Phrase
}

// BeatDuration is the length of one beat at the given tempo.
func BeatDuration(bpm float64) time.Duration {
	return time.Duration(float64(time.Minute) / bpm)
}

// Timings expands a phrase into target times relative to the phrase
// start. A phrase of [1, 1, 2] at 120 BPM yields 0ms, 500ms, 1500ms.
func (p Phrase) Timings(bpm float64) []time.Duration {
	if len(p) == 0 {
		return nil
	}
	beat := float64(BeatDuration(bpm))
	timings := make([]time.Duration, len(p))
	pos := (p[0] - 1) * beat
	timings[0] = time.Duration(pos)
	for i := 1; i < len(p); i++ {
		pos += p[i] * beat
		timings[i] = time.Duration(pos)
	}
	return timings
}

// Phrase returns the phrase for the given round, cycling when there
// are fewer phrases than rounds.
func (p *Pattern) Phrase(round int) Phrase {
	if len(p.Phrases) == 0 {
		return nil
	}
	return p.Phrases[round%len(p.Phrases)]
}
