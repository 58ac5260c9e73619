package clock

import (
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// StreamClock reads the music position off a beep streamer. The
// speaker mixes on its own goroutine, so every read takes the
// speaker lock. Position is in chart time: the sample index mapped
// through the format rate, unaffected by any playback rate the
// speaker was initialized with.
type StreamClock struct {
	Streamer beep.StreamSeeker
	Format   beep.Format

	started bool
}

func (c *StreamClock) SetStarted(started bool) {
	c.started = started
}

func (c *StreamClock) IsPlaying() bool {
	if !c.started {
		return false
	}
	speaker.Lock()
	pos := c.Streamer.Position()
	length := c.Streamer.Len()
	speaker.Unlock()
	return pos < length
}

func (c *StreamClock) Position() time.Duration {
	if !c.started {
		return 0
	}
	speaker.Lock()
	pos := c.Streamer.Position()
	speaker.Unlock()
	return c.Format.SampleRate.D(pos)
}
