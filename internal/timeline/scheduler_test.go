package timeline

import (
	"testing"
	"time"

	"git.lost.host/meutraa/reprise/internal/game"
)

type recordingObserver struct {
	spawned []uint64
	judged  []uint64
	expired []uint64
}

func (o *recordingObserver) NoteSpawned(n game.Note) { o.spawned = append(o.spawned, n.ID) }
func (o *recordingObserver) NoteJudged(id uint64)    { o.judged = append(o.judged, id) }
func (o *recordingObserver) NoteExpired(id uint64)   { o.expired = append(o.expired, id) }

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func TestSchedulerSpawnsEachTimingOnce(t *testing.T) {
	reg := NewRegistry()
	obs := &recordingObserver{}
	s := NewScheduler(reg, nil, obs)
	s.SetTimeline([]time.Duration{ms(500), ms(1000), ms(1500)}, 0)

	s.Tick(ms(0))
	if reg.Len() != 0 {
		t.Fatal("spawned before timing", reg.Snapshot())
	}

	s.Tick(ms(500))
	if reg.Len() != 1 {
		t.Fatal("expected one note at 500ms", reg.Snapshot())
	}

	// Jumping the position spawns every due note, in order, once
	s.Tick(ms(2000))
	if reg.Len() != 3 {
		t.Fatal("expected three notes after jump", reg.Snapshot())
	}
	for i, n := range reg.Snapshot() {
		if n.Ordinal != i {
			t.Log("ordinal out of order", n)
			t.Fail()
		}
	}
	if len(obs.spawned) != 3 {
		t.Fatal("observer missed spawns", obs.spawned)
	}

	// Ticking again at the same position must not respawn
	s.Tick(ms(2000))
	if reg.Len() != 3 {
		t.Fatal("respawned", reg.Snapshot())
	}
}

func TestSchedulerSpawnGate(t *testing.T) {
	reg := NewRegistry()
	open := false
	s := NewScheduler(reg, func() bool { return open }, nil)
	s.SetTimeline([]time.Duration{ms(100)}, 0)

	s.Tick(ms(500))
	if reg.Len() != 0 {
		t.Fatal("spawned through closed gate")
	}

	open = true
	s.Tick(ms(500))
	if reg.Len() != 1 {
		t.Fatal("did not spawn with open gate")
	}
}

func TestSchedulerResetToEnd(t *testing.T) {
	reg := NewRegistry()
	s := NewScheduler(reg, nil, nil)
	s.SetTimeline([]time.Duration{ms(100), ms(200), ms(300)}, 0)

	s.Tick(ms(150))
	if reg.Len() != 1 {
		t.Fatal("expected one note", reg.Snapshot())
	}

	s.ResetToEnd()
	if s.Remaining() != 0 {
		t.Fatal("remaining after reset", s.Remaining())
	}
	s.Tick(ms(1000))
	if reg.Len() != 1 {
		t.Fatal("spawned after reset", reg.Snapshot())
	}
}

func TestSchedulerSetTimelineRewindsCursor(t *testing.T) {
	reg := NewRegistry()
	s := NewScheduler(reg, nil, nil)
	s.SetTimeline([]time.Duration{ms(100)}, 0)
	s.Tick(ms(100))

	s.SetTimeline([]time.Duration{ms(2000), ms(2100)}, 0)
	s.Tick(ms(2100))
	if reg.Len() != 3 {
		t.Fatal("expected three notes total", reg.Snapshot())
	}
}

func TestSchedulerLeadOffsetsTarget(t *testing.T) {
	reg := NewRegistry()
	s := NewScheduler(reg, nil, nil)
	s.SetTimeline([]time.Duration{ms(100)}, ms(2000))

	s.Tick(ms(100))
	notes := reg.Snapshot()
	if len(notes) != 1 {
		t.Fatal("expected one note", notes)
	}
	if notes[0].TargetTime != ms(2100) {
		t.Fatal("target not offset by lead", notes[0])
	}
}

func TestRegistryOldestPrefersEarliestTarget(t *testing.T) {
	reg := NewRegistry()
	a := reg.Spawn(ms(300), 0)
	b := reg.Spawn(ms(100), 1)
	reg.Spawn(ms(200), 2)

	if oldest := reg.Oldest(); oldest != b {
		t.Fatal("expected earliest target", oldest)
	}

	b.State = game.Judged
	reg.Remove(b.ID)
	reg.Spawn(ms(300), 3) // same target as a, spawned later

	if oldest := reg.Oldest(); oldest.ID == a.ID {
		// a has target 300 but the 200 note is earlier
		if oldest.TargetTime != ms(200) {
			t.Fatal("tie break wrong", oldest)
		}
	}
	if oldest := reg.Oldest(); oldest.TargetTime != ms(200) {
		t.Fatal("expected 200ms note", oldest)
	}
}

func TestRegistryOldestTieBreaksBySpawnOrder(t *testing.T) {
	reg := NewRegistry()
	a := reg.Spawn(ms(100), 0)
	reg.Spawn(ms(100), 1)

	if oldest := reg.Oldest(); oldest != a {
		t.Fatal("expected first spawned", oldest)
	}
}

func TestRegistrySnapshotCopies(t *testing.T) {
	reg := NewRegistry()
	n := reg.Spawn(ms(100), 0)
	snap := reg.Snapshot()
	n.State = game.Judged
	if snap[0].State != game.Pending {
		t.Fatal("snapshot aliases registry state")
	}
}
