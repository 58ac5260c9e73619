package theme

import (
	"fmt"

	"git.lost.host/meutraa/reprise/internal/game"
)

type DefaultTheme struct {
}

const (
	noteSym = "⬤"
	barSym  = "─"
)

var (
	judgementNames = map[game.Tier]string{
		game.TierPerfect: "    \033[38;5;153mPerfect\033[0m",
		game.TierGood:    "       \033[1;32mGood\033[0m",
		game.TierBad:     "        \033[1;33mBad\033[0m",
		game.TierMiss:    "       \033[1;31mMiss\033[0m",
	}
	phaseNames = map[game.Phase]string{
		game.PhaseListen: "\033[1;36m♪ listen\033[0m",
		game.PhasePlay:   "\033[1;35m! play  \033[0m",
		game.PhaseResult: "\033[1;37m= result\033[0m",
	}
	laneColors = [...]struct{ R, G, B int }{
		{236, 30, 0},
		{0, 118, 236},
		{236, 195, 0},
		{0, 236, 128},
	}
)

func (t *DefaultTheme) RenderJudgement(tier game.Tier) string {
	name, ok := judgementNames[tier]
	if !ok {
		return "          ?"
	}
	return name
}

func (t *DefaultTheme) RenderNote(ordinal int) string {
	c := laneColors[ordinal%len(laneColors)]
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, noteSym)
}

func (t *DefaultTheme) RenderHitField() string {
	return barSym
}

func (t *DefaultTheme) RenderPhase(p game.Phase) string {
	name, ok := phaseNames[p]
	if !ok {
		return "?"
	}
	return name
}

// RenderBeat is the metronome flash, bright on the downbeat.
func (t *DefaultTheme) RenderBeat(b game.BeatPosition) string {
	if b.Downbeat() {
		return fmt.Sprintf("\033[1;37m%v\033[0m", b.Measure%100)
	}
	return fmt.Sprintf("\033[38;5;240m·%v\033[0m", b.Beat)
}
