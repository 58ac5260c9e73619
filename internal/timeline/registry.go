package timeline

import (
	"time"

	"git.lost.host/meutraa/reprise/internal/game"
)

// Registry owns every live note record. It is a single-writer
// structure: only the tick loop mutates it. Renderers read through
// Snapshot, which copies.
type Registry struct {
	notes  []*game.Note
	nextID uint64
}

func NewRegistry() *Registry {
	return &Registry{nextID: 1}
}

func (r *Registry) Spawn(target time.Duration, ordinal int) *game.Note {
	n := &game.Note{
		ID:         r.nextID,
		Ordinal:    ordinal,
		TargetTime: target,
		State:      game.Pending,
	}
	r.nextID++
	r.notes = append(r.notes, n)
	return n
}

func (r *Registry) Len() int {
	return len(r.notes)
}

// Pending returns the live pending notes in spawn order. The slice
// is rebuilt per call, callers must not hold it across a tick.
func (r *Registry) Pending() []*game.Note {
	pending := make([]*game.Note, 0, len(r.notes))
	for _, n := range r.notes {
		if n.State == game.Pending {
			pending = append(pending, n)
		}
	}
	return pending
}

// Oldest returns the pending note with the earliest target time,
// ties broken by spawn order. Nil when nothing is pending.
func (r *Registry) Oldest() *game.Note {
	var oldest *game.Note
	for _, n := range r.notes {
		if n.State != game.Pending {
			continue
		}
		if nil == oldest || n.TargetTime < oldest.TargetTime {
			oldest = n
		}
	}
	return oldest
}

// Remove drops a note record entirely. Judged and expired notes are
// removed once their terminal state has been observed.
func (r *Registry) Remove(id uint64) {
	for i, n := range r.notes {
		if n.ID == id {
			r.notes = append(r.notes[:i], r.notes[i+1:]...)
			return
		}
	}
}

// Snapshot copies the current records for external readers.
func (r *Registry) Snapshot() []game.Note {
	out := make([]game.Note, len(r.notes))
	for i, n := range r.notes {
		out[i] = *n
	}
	return out
}
