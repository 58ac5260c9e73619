package phase

import (
	"testing"
	"time"

	"git.lost.host/meutraa/reprise/internal/game"
)

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func testConfig() Config {
	return Config{
		BPM:             120,
		BeatsPerMeasure: 4,
		ListenMeasures:  1,
		PlayMeasures:    1,
		Policy:          PolicyElapsed,
	}
}

func TestDuration(t *testing.T) {
	m := NewMachine(testConfig())
	// 1 measure * 4 beats * 60/120 = 2s
	if d := m.Duration(game.PhaseListen); d != 2*time.Second {
		t.Fatal("listen duration", d)
	}

	cfg := testConfig()
	cfg.BPM = 60
	cfg.PlayMeasures = 2
	m.SetConfig(cfg)
	if d := m.Duration(game.PhasePlay); d != 8*time.Second {
		t.Fatal("play duration", d)
	}
}

func TestElapsedPolicyTransition(t *testing.T) {
	m := NewMachine(testConfig())
	var entered []game.Phase
	m.OnEnter(func(p game.Phase, at time.Duration) { entered = append(entered, p) })
	m.Begin(0)

	if m.Current() != game.PhaseListen || m.Round() != 1 {
		t.Fatal("initial state", m.Current(), m.Round())
	}

	// Not before the boundary
	m.Tick(ms(1999))
	if m.Current() != game.PhaseListen {
		t.Fatal("switched early")
	}

	// At the boundary, exactly
	m.Tick(ms(2000))
	if m.Current() != game.PhasePlay {
		t.Fatal("did not switch at 2s", m.Current())
	}
	if m.PhaseStart() != ms(2000) {
		t.Fatal("phase start", m.PhaseStart())
	}

	m.Tick(ms(4000))
	if m.Current() != game.PhaseListen || m.Round() != 2 {
		t.Fatal("full cycle", m.Current(), m.Round())
	}

	expected := []game.Phase{game.PhaseListen, game.PhasePlay, game.PhaseListen}
	if len(entered) != len(expected) {
		t.Fatal("hooks", entered)
	}
	for i, p := range entered {
		if p != expected[i] {
			t.Fatal("hook order", entered)
		}
	}
}

func TestElapsedPolicyCrossesMultipleBoundaries(t *testing.T) {
	m := NewMachine(testConfig())
	var entered []game.Phase
	m.OnEnter(func(p game.Phase, at time.Duration) { entered = append(entered, p) })
	m.Begin(0)

	// One giant jump walks every boundary in order
	m.Tick(ms(6000))
	expected := []game.Phase{
		game.PhaseListen,
		game.PhasePlay,
		game.PhaseListen,
		game.PhasePlay,
	}
	if len(entered) != len(expected) {
		t.Fatal("entries", entered)
	}
	if m.Round() != 2 {
		t.Fatal("round", m.Round())
	}
}

func TestResultPhaseInterposed(t *testing.T) {
	cfg := testConfig()
	cfg.ResultMeasures = 1
	m := NewMachine(cfg)
	m.Begin(0)

	m.Tick(ms(2000))
	if m.Current() != game.PhasePlay {
		t.Fatal("expected play", m.Current())
	}
	m.Tick(ms(4000))
	if m.Current() != game.PhaseResult {
		t.Fatal("expected result", m.Current())
	}
	m.Tick(ms(6000))
	if m.Current() != game.PhaseListen || m.Round() != 2 {
		t.Fatal("expected listen round 2", m.Current(), m.Round())
	}
}

func TestMeasurePolicyAlignsToDownbeats(t *testing.T) {
	cfg := testConfig()
	cfg.Policy = PolicyMeasure
	m := NewMachine(cfg)
	m.Begin(0)

	beat := func(measure, beat int, at time.Duration) {
		m.OnBeat(game.BeatPosition{Measure: measure, Beat: beat, Time: at}, at)
	}

	// The downbeat the phase started on is its anchor, not progress
	beat(0, 0, 0)
	if m.Current() != game.PhaseListen {
		t.Fatal("switched on anchor downbeat")
	}

	// Mid-measure beats never switch
	beat(0, 1, ms(500))
	beat(0, 2, ms(1000))
	beat(0, 3, ms(1500))
	if m.Current() != game.PhaseListen {
		t.Fatal("switched mid measure")
	}

	// The next downbeat completes one measure
	beat(1, 0, ms(2000))
	if m.Current() != game.PhasePlay {
		t.Fatal("did not switch on downbeat", m.Current())
	}

	// Elapsed ticks are inert under the measure policy
	m.Tick(ms(30000))
	if m.Current() != game.PhasePlay {
		t.Fatal("elapsed tick switched a measure policy machine")
	}

	beat(2, 0, ms(4000))
	if m.Current() != game.PhaseListen || m.Round() != 2 {
		t.Fatal("full cycle", m.Current(), m.Round())
	}
}

func TestInvalidConfigFallsBack(t *testing.T) {
	m := NewMachine(Config{BPM: -3, BeatsPerMeasure: 0})
	if d := m.Duration(game.PhaseListen); d != 2*time.Second {
		t.Fatal("defaults not retained", d)
	}
}

func TestMachineWithoutHooksStillCycles(t *testing.T) {
	m := NewMachine(testConfig())
	m.Begin(0)
	m.Tick(ms(2000))
	if m.Current() != game.PhasePlay {
		t.Fatal("transition blocked by missing hooks")
	}
}
