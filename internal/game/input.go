package game

import (
	"time"
)

// Input is one tap, reduced to the music position it arrived at.
type Input struct {
	HitTime time.Duration
}
