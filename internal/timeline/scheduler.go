package timeline

import (
	"time"

	"git.lost.host/meutraa/reprise/internal/game"
)

// Observer is notified of note lifecycle events. The registry stays
// authoritative, observers only mirror it for presentation.
type Observer interface {
	NoteSpawned(n game.Note)
	NoteJudged(id uint64)
	NoteExpired(id uint64)
}

// Scheduler walks an ordered timing sequence against the music
// position and spawns one note per crossed timing. The spawnable
// gate is consulted before every spawn so notes never appear outside
// the demonstration phase.
type Scheduler struct {
	registry  *Registry
	observer  Observer
	spawnable func() bool

	timings []time.Duration
	lead    time.Duration
	cursor  int
	ordinal int
}

func NewScheduler(registry *Registry, spawnable func() bool, observer Observer) *Scheduler {
	return &Scheduler{
		registry:  registry,
		observer:  observer,
		spawnable: spawnable,
	}
}

// SetTimeline replaces the schedule and rewinds the spawn cursor.
// Timings are spawn times in non-decreasing order; an out-of-order
// entry is crossed immediately on the next tick, never re-sorted.
// Each spawned note's target is its timing plus lead, which is how a
// call demonstrated in one phase becomes hittable in the next.
func (s *Scheduler) SetTimeline(timings []time.Duration, lead time.Duration) {
	s.timings = timings
	s.lead = lead
	s.cursor = 0
	s.ordinal = 0
}

// ResetToEnd suppresses every remaining spawn of the active sequence
// without touching notes already spawned.
func (s *Scheduler) ResetToEnd() {
	s.cursor = len(s.timings)
}

func (s *Scheduler) Remaining() int {
	return len(s.timings) - s.cursor
}

// Tick spawns every note whose timing the position has crossed, each
// exactly once, in sequence order. A large position jump spawns all
// due notes in one call.
func (s *Scheduler) Tick(position time.Duration) {
	for s.cursor < len(s.timings) {
		if nil != s.spawnable && !s.spawnable() {
			return
		}
		next := s.timings[s.cursor]
		if position < next {
			return
		}
		n := s.registry.Spawn(next+s.lead, s.ordinal)
		s.cursor++
		s.ordinal++
		if nil != s.observer {
			s.observer.NoteSpawned(*n)
		}
	}
}
