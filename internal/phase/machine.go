package phase

import (
	"log"
	"time"

	"git.lost.host/meutraa/reprise/internal/game"
)

type Policy int

const (
	// PolicyElapsed switches when the phase has run its configured
	// duration, regardless of where the measure stands.
	PolicyElapsed Policy = iota
	// PolicyMeasure switches only on a downbeat, once the configured
	// number of measures has passed since the last switch.
	PolicyMeasure
)

type Config struct {
	BPM             float64
	BeatsPerMeasure int
	ListenMeasures  int
	PlayMeasures    int
	ResultMeasures  int // 0 skips the result phase entirely
	Policy          Policy
}

// Machine owns the Listen/Play/Result cycle. Exactly one phase is
// active at a time and transitions are instantaneous. Entry hooks are
// how the scheduler and judge get told about phase changes; a machine
// with no hooks still cycles, it just has no side effects.
type Machine struct {
	cfg Config

	current    game.Phase
	phaseStart time.Duration // music position at entry
	round      int
	measures   int  // completed measures in the current phase
	anchored   bool // the entry downbeat has been seen

	onEnter []func(p game.Phase, at time.Duration)
	warned  bool
}

func NewMachine(cfg Config) *Machine {
	m := &Machine{cfg: Config{BPM: 120, BeatsPerMeasure: 4, ListenMeasures: 1, PlayMeasures: 1}}
	m.SetConfig(cfg)
	m.current = game.PhaseListen
	return m
}

func (m *Machine) SetConfig(cfg Config) {
	if cfg.BPM <= 0 {
		log.Println("ignoring invalid bpm", cfg.BPM)
		cfg.BPM = m.cfg.BPM
	}
	if cfg.BeatsPerMeasure < 1 {
		log.Println("ignoring invalid beats per measure", cfg.BeatsPerMeasure)
		cfg.BeatsPerMeasure = m.cfg.BeatsPerMeasure
	}
	if cfg.ListenMeasures < 1 {
		cfg.ListenMeasures = m.cfg.ListenMeasures
	}
	if cfg.PlayMeasures < 1 {
		cfg.PlayMeasures = m.cfg.PlayMeasures
	}
	m.cfg = cfg
}

// OnEnter registers an entry hook. Hooks run in registration order,
// after the phase pointer has moved.
func (m *Machine) OnEnter(fn func(p game.Phase, at time.Duration)) {
	m.onEnter = append(m.onEnter, fn)
}

func (m *Machine) Current() game.Phase { return m.current }
func (m *Machine) Round() int          { return m.round }

// PhaseStart is the music position the current phase was entered at.
func (m *Machine) PhaseStart() time.Duration { return m.phaseStart }

func (m *Machine) measuresFor(p game.Phase) int {
	switch p {
	case game.PhaseListen:
		return m.cfg.ListenMeasures
	case game.PhasePlay:
		return m.cfg.PlayMeasures
	case game.PhaseResult:
		return m.cfg.ResultMeasures
	}
	return 0
}

// Duration is the configured length of a phase:
// measures * beatsPerMeasure * 60/BPM.
func (m *Machine) Duration(p game.Phase) time.Duration {
	beats := float64(m.measuresFor(p) * m.cfg.BeatsPerMeasure)
	return time.Duration(beats * float64(game.BeatDuration(m.cfg.BPM)))
}

// Begin anchors the first Listen phase at the given position and
// fires its entry hooks. The next downbeat the metronome reports is
// taken as the phase's own anchor, not as an elapsed measure.
func (m *Machine) Begin(position time.Duration) {
	m.current = game.PhaseListen
	m.round = 1
	m.enter(game.PhaseListen, position, false)
}

// Tick drives the elapsed-time policy. Measure policy machines only
// move on OnBeat.
func (m *Machine) Tick(position time.Duration) {
	if m.cfg.Policy != PolicyElapsed {
		return
	}
	// Loop so a huge position jump crosses multiple phases, each
	// boundary observed in order.
	for position-m.phaseStart >= m.Duration(m.current) {
		boundary := m.phaseStart + m.Duration(m.current)
		m.advance(boundary)
	}
}

// OnBeat drives the measure-aligned policy from metronome events.
func (m *Machine) OnBeat(b game.BeatPosition, position time.Duration) {
	if m.cfg.Policy != PolicyMeasure {
		return
	}
	if !b.Downbeat() {
		return
	}
	if !m.anchored {
		m.anchored = true
		m.measures = 0
		return
	}
	m.measures++
	if m.measures >= m.measuresFor(m.current) {
		m.advance(position)
	}
}

func (m *Machine) next() game.Phase {
	switch m.current {
	case game.PhaseListen:
		return game.PhasePlay
	case game.PhasePlay:
		if m.cfg.ResultMeasures > 0 {
			return game.PhaseResult
		}
		return game.PhaseListen
	case game.PhaseResult:
		return game.PhaseListen
	}
	return game.PhaseListen
}

func (m *Machine) advance(at time.Duration) {
	next := m.next()
	if next == game.PhaseListen {
		m.round++
	}
	m.current = next
	m.enter(next, at, true)
}

func (m *Machine) enter(p game.Phase, at time.Duration, anchored bool) {
	m.phaseStart = at
	m.measures = 0
	m.anchored = anchored
	if len(m.onEnter) == 0 && !m.warned {
		log.Println("phase machine has no entry hooks wired")
		m.warned = true
	}
	for _, fn := range m.onEnter {
		fn(p, at)
	}
}
