package engine

import (
	"time"

	"git.lost.host/meutraa/reprise/internal/clock"
	"git.lost.host/meutraa/reprise/internal/game"
	"git.lost.host/meutraa/reprise/internal/judge"
	"git.lost.host/meutraa/reprise/internal/phase"
	"git.lost.host/meutraa/reprise/internal/timeline"
)

// Engine ties the clock, metronome, phase machine, scheduler and
// judge together and advances them in one fixed order per tick:
// position refresh, metronome, phase transitions, spawns, expiry
// sweep, then queued taps. The host drives Tick at whatever cadence
// it likes; everything compares absolute positions, never deltas.
type Engine struct {
	source    clock.Source
	metronome *clock.Metronome
	phases    *phase.Machine
	registry  *timeline.Registry
	scheduler *timeline.Scheduler
	judge     *judge.DefaultJudge

	pattern   *game.Pattern
	phrase    int
	hasResult bool

	taps  []game.Input
	ended bool

	noteObserver timeline.Observer
	beatObserver func(game.BeatPosition)
	resultHook   func(round int)
}

type Options struct {
	Source    clock.Source
	Pattern   *game.Pattern
	Phases    phase.Config
	Judge     judge.Config
	Metronome *clock.Metronome

	// NoteObserver and BeatObserver are presentational, both optional.
	NoteObserver timeline.Observer
	BeatObserver func(game.BeatPosition)

	// OnResult runs once per round, on entry to the result phase (or
	// on re-entry to listen when no result phase is configured).
	OnResult func(round int)
}

func New(opts Options) *Engine {
	e := &Engine{
		source:       opts.Source,
		metronome:    opts.Metronome,
		pattern:      opts.Pattern,
		registry:     timeline.NewRegistry(),
		hasResult:    opts.Phases.ResultMeasures > 0,
		noteObserver: opts.NoteObserver,
		beatObserver: opts.BeatObserver,
		resultHook:   opts.OnResult,
	}
	if nil == e.metronome {
		e.metronome = clock.NewMetronome(opts.Phases.BPM, opts.Phases.BeatsPerMeasure)
	}
	e.phases = phase.NewMachine(opts.Phases)
	e.scheduler = timeline.NewScheduler(e.registry, func() bool {
		return e.phases.Current() == game.PhaseListen
	}, opts.NoteObserver)
	e.judge = judge.NewDefaultJudge(opts.Judge, e.registry, func() bool {
		return e.phases.Current() == game.PhasePlay
	})
	e.judge.SetNoteObserver(opts.NoteObserver)
	e.phases.OnEnter(e.enterPhase)
	return e
}

// Judge exposes the judgement engine for observers and score reads.
func (e *Engine) Judge() *judge.DefaultJudge { return e.judge }

func (e *Engine) Phase() game.Phase { return e.phases.Current() }
func (e *Engine) Round() int        { return e.phases.Round() }

// Position is the last place the music clock was seen at.
func (e *Engine) Position() time.Duration { return e.source.Position() }

// Notes is a copy of the registry for rendering.
func (e *Engine) Notes() []game.Note { return e.registry.Snapshot() }

func (e *Engine) enterPhase(p game.Phase, at time.Duration) {
	switch p {
	case game.PhaseListen:
		// Without a result phase the round boundary is this re-entry,
		// so the snapshot for the finished round happens first.
		if !e.hasResult && e.phases.Round() > 1 && nil != e.resultHook {
			e.resultHook(e.phases.Round() - 1)
		}
		// Leftover pending notes fade out before the next call
		// begins; no judgement is applied to them.
		for _, n := range e.registry.Pending() {
			n.State = game.Expired
			if nil != e.noteObserver {
				e.noteObserver.NoteExpired(n.ID)
			}
			e.registry.Remove(n.ID)
		}
		e.installPhrase(at)
	case game.PhasePlay:
		// Spawning is done for this cycle; notes already out stay
		// live and judgeable.
		e.scheduler.ResetToEnd()
	case game.PhaseResult:
		if nil != e.resultHook {
			e.resultHook(e.phases.Round())
		}
	}
}

// installPhrase anchors the next phrase's timings at the current
// music position so repeated cycles stay phase-relative. The call is
// demonstrated as the notes spawn during listen; each note's target
// sits one listen-phase later, where the response belongs.
func (e *Engine) installPhrase(at time.Duration) {
	if nil == e.pattern {
		return
	}
	phrase := e.pattern.Phrase(e.phrase)
	e.phrase++
	timings := phrase.Timings(e.pattern.BPM)
	for i := range timings {
		timings[i] += at
	}
	e.scheduler.SetTimeline(timings, e.phases.Duration(game.PhaseListen))
}

// Start anchors the metronome and the first listen phase.
func (e *Engine) Start(now time.Time, metronomeOffset time.Duration) {
	e.metronome.Start(now, metronomeOffset)
	e.phases.Begin(e.source.Position())
}

// Tap queues one tap for the next tick. Taps are judged in arrival
// order, each against the then-oldest pending note.
func (e *Engine) Tap(at time.Duration) {
	if e.ended {
		return
	}
	e.taps = append(e.taps, game.Input{HitTime: at})
}

// EndGame halts all further spawns and judgements immediately.
func (e *Engine) EndGame(now time.Time) {
	e.ended = true
	e.metronome.Stop(now)
}

func (e *Engine) Ended() bool { return e.ended }

// Tick advances the whole engine to now.
func (e *Engine) Tick(now time.Time) {
	if e.ended {
		return
	}

	position := e.source.Position()

	for _, b := range e.metronome.Tick(now) {
		e.phases.OnBeat(b, position)
		if nil != e.beatObserver {
			e.beatObserver(b)
		}
	}

	e.phases.Tick(position)

	if e.source.IsPlaying() {
		e.scheduler.Tick(position)
	}

	e.judge.Sweep(position)

	for _, tap := range e.taps {
		e.judge.Tap(tap)
	}
	e.taps = e.taps[:0]
}
