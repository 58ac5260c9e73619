package parser

import "git.lost.host/meutraa/reprise/internal/game"

type Parser interface {
	Parse(file string) (*game.Pattern, error)
}
