package clock

import (
	"time"
)

// Source is the authoritative music position. The engine only ever
// reads it, playback control stays with the host.
type Source interface {
	IsPlaying() bool
	Position() time.Duration
}
