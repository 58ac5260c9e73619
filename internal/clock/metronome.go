package clock

import (
	"log"
	"time"

	"git.lost.host/meutraa/reprise/internal/game"
)

// Metronome derives beat and measure boundaries from wall time.
// Tick reports every boundary crossed since the last call, at most
// once each, so irregular tick intervals neither drop nor double
// beats. A tempo change applies from the next boundary on, the one
// already scheduled keeps its time.
type Metronome struct {
	bpm             float64
	beatsPerMeasure int

	running    bool
	startTime  time.Time
	nextBeatAt time.Duration // elapsed time of the next unreported boundary
	emitted    int           // boundaries reported so far
	frozenAt   time.Duration // elapsed at Stop
}

func NewMetronome(bpm float64, beatsPerMeasure int) *Metronome {
	m := &Metronome{bpm: 120, beatsPerMeasure: 4}
	m.SetBPM(bpm)
	m.SetBeatsPerMeasure(beatsPerMeasure)
	return m
}

func (m *Metronome) BPM() float64 { return m.bpm }

// SetBPM changes the beat length for boundaries scheduled after the
// current one. Non-positive tempos are rejected and the prior value
// kept.
func (m *Metronome) SetBPM(bpm float64) {
	if bpm <= 0 {
		log.Println("ignoring invalid bpm", bpm)
		return
	}
	m.bpm = bpm
}

func (m *Metronome) SetBeatsPerMeasure(beats int) {
	if beats < 1 {
		log.Println("ignoring invalid beats per measure", beats)
		return
	}
	m.beatsPerMeasure = beats
}

func (m *Metronome) BeatDuration() time.Duration {
	return game.BeatDuration(m.bpm)
}

// Start begins counting as if the metronome had started offset ago.
// The first boundary is at elapsed zero.
func (m *Metronome) Start(now time.Time, offset time.Duration) {
	m.startTime = now.Add(-offset)
	m.nextBeatAt = 0
	m.emitted = 0
	m.running = true
}

func (m *Metronome) Stop(now time.Time) {
	if !m.running {
		return
	}
	m.frozenAt = now.Sub(m.startTime)
	m.running = false
}

func (m *Metronome) IsRunning() bool { return m.running }

func (m *Metronome) Elapsed(now time.Time) time.Duration {
	if !m.running {
		return m.frozenAt
	}
	return now.Sub(m.startTime)
}

// Tick reports the boundaries crossed up to now, oldest first.
func (m *Metronome) Tick(now time.Time) []game.BeatPosition {
	if !m.running {
		return nil
	}
	elapsed := now.Sub(m.startTime)
	var beats []game.BeatPosition
	for elapsed >= m.nextBeatAt {
		beats = append(beats, game.BeatPosition{
			Measure: m.emitted / m.beatsPerMeasure,
			Beat:    m.emitted % m.beatsPerMeasure,
			Time:    m.nextBeatAt,
		})
		m.emitted++
		m.nextBeatAt += m.BeatDuration()
	}
	return beats
}
