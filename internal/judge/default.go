package judge

import (
	"log"
	"math"
	"time"

	"git.lost.host/meutraa/reprise/internal/game"
	"git.lost.host/meutraa/reprise/internal/timeline"
)

type DefaultJudge struct {
	cfg       Config
	registry  *timeline.Registry
	accepting func() bool
	notes     timeline.Observer
	observers []func(game.Judgement)

	score   int64
	combo   int
	counts  [game.TierCount]int
	offsets []time.Duration // signed offsets of hit notes, for stats
}

// NewDefaultJudge starts from DefaultConfig; a bad config keeps the
// default rather than failing, matching the degrade-not-halt rule.
func NewDefaultJudge(cfg Config, registry *timeline.Registry, accepting func() bool) *DefaultJudge {
	j := &DefaultJudge{
		cfg:       DefaultConfig(),
		registry:  registry,
		accepting: accepting,
	}
	j.SetConfig(cfg)
	return j
}

// SetConfig swaps the windows and scoring rules. An invalid config
// is rejected and the prior one retained.
func (j *DefaultJudge) SetConfig(cfg Config) {
	if err := cfg.Validate(); nil != err {
		log.Println("ignoring invalid judge config:", err)
		return
	}
	j.cfg = cfg
}

func (j *DefaultJudge) Config() Config { return j.cfg }

// SetNoteObserver wires the presentational note lifecycle listener.
func (j *DefaultJudge) SetNoteObserver(obs timeline.Observer) {
	j.notes = obs
}

// Notify registers a judgement listener, fire and forget.
func (j *DefaultJudge) Notify(fn func(game.Judgement)) {
	j.observers = append(j.observers, fn)
}

// Classify maps an absolute offset into a tier. Boundary values
// belong to the tighter tier.
func (j *DefaultJudge) Classify(offset time.Duration) game.Tier {
	d := offset
	if d < 0 {
		d = -d
	}
	switch {
	case d <= j.cfg.PerfectWindow:
		return game.TierPerfect
	case d <= j.cfg.GoodWindow:
		return game.TierGood
	case d <= j.cfg.BadWindow:
		return game.TierBad
	}
	return game.TierMiss
}

// Tap evaluates one tap against the oldest pending note. Outside the
// input phase, or with nothing pending, it is a no-op. A tap earlier
// than the note's own window is not applicable yet and does not
// consume the note.
func (j *DefaultJudge) Tap(in game.Input) bool {
	if nil != j.accepting && !j.accepting() {
		return false
	}
	note := j.registry.Oldest()
	if nil == note {
		return false
	}
	offset := note.Offset(in.HitTime)
	if offset < -j.cfg.BadWindow {
		return false
	}

	tier := j.Classify(offset)
	note.State = game.Judged
	note.HitTime = in.HitTime
	j.apply(tier, note.ID, offset)
	j.registry.Remove(note.ID)
	if nil != j.notes {
		j.notes.NoteJudged(note.ID)
	}
	return true
}

// Sweep expires every pending note the position has left more than
// the bad window behind, each as exactly one Miss. Notes still inside
// the window, including future ones, are untouched.
func (j *DefaultJudge) Sweep(position time.Duration) {
	if nil != j.accepting && !j.accepting() {
		return
	}
	for _, note := range j.registry.Pending() {
		if note.Offset(position) <= j.cfg.BadWindow {
			continue
		}
		note.State = game.Expired
		note.MissTime = position
		j.apply(game.TierMiss, note.ID, 0)
		j.registry.Remove(note.ID)
		if nil != j.notes {
			j.notes.NoteExpired(note.ID)
		}
	}
}

func (j *DefaultJudge) apply(tier game.Tier, noteID uint64, offset time.Duration) {
	switch tier {
	case game.TierMiss:
		j.combo = 0
	default:
		j.score += j.tierScore(tier)
		j.combo++
		j.score += j.comboBonus(tier)
		j.offsets = append(j.offsets, offset)
	}
	j.counts[tier]++

	result := game.Judgement{
		Tier:   tier,
		NoteID: noteID,
		Offset: offset,
		Score:  j.score,
		Combo:  j.combo,
	}
	for _, fn := range j.observers {
		fn(result)
	}
}

func (j *DefaultJudge) tierScore(tier game.Tier) int64 {
	switch tier {
	case game.TierPerfect:
		return j.cfg.PerfectScore
	case game.TierGood:
		return j.cfg.GoodScore
	case game.TierBad:
		return j.cfg.BadScore
	}
	return 0
}

func (j *DefaultJudge) comboBonus(tier game.Tier) int64 {
	if j.cfg.BonusEvery == 0 {
		return 0
	}
	if j.cfg.BonusPerfectOnly && tier != game.TierPerfect {
		return 0
	}
	if j.combo%j.cfg.BonusEvery != 0 {
		return 0
	}
	return j.cfg.BonusScore
}

// Reset zeroes score, combo and the round statistics. Only called
// between rounds.
func (j *DefaultJudge) Reset() {
	j.score = 0
	j.combo = 0
	j.counts = [game.TierCount]int{}
	j.offsets = nil
}

func (j *DefaultJudge) Score() int64                { return j.score }
func (j *DefaultJudge) Combo() int                  { return j.combo }
func (j *DefaultJudge) Counts() [game.TierCount]int { return j.counts }
func (j *DefaultJudge) Offsets() []time.Duration    { return j.offsets }

// Mean is the average signed offset of the hit notes this round.
func (j *DefaultJudge) Mean() time.Duration {
	if len(j.offsets) == 0 {
		return 0
	}
	var sum time.Duration
	for _, o := range j.offsets {
		sum += o
	}
	return sum / time.Duration(len(j.offsets))
}

// Stdev is the sample standard deviation of the hit offsets, in
// nanoseconds.
func (j *DefaultJudge) Stdev() float64 {
	if len(j.offsets) < 2 {
		return 0
	}
	mean := float64(j.Mean())
	sum := 0.0
	for _, o := range j.offsets {
		xi := float64(o) - mean
		sum += xi * xi
	}
	return math.Sqrt(sum / float64(len(j.offsets)-1))
}
