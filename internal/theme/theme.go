package theme

import "git.lost.host/meutraa/reprise/internal/game"

type Theme interface {
	RenderJudgement(t game.Tier) string
	RenderNote(ordinal int) string
	RenderHitField() string
	RenderPhase(p game.Phase) string
	RenderBeat(b game.BeatPosition) string
}
