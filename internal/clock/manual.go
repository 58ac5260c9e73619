package clock

import (
	"time"
)

// ManualClock is a Source advanced by hand. It backs headless runs
// (no audio file found) and every package test.
type ManualClock struct {
	playing bool
	pos     time.Duration
}

func (c *ManualClock) Play()           { c.playing = true }
func (c *ManualClock) Pause()          { c.playing = false }
func (c *ManualClock) IsPlaying() bool { return c.playing }

func (c *ManualClock) Position() time.Duration {
	return c.pos
}

func (c *ManualClock) Set(pos time.Duration) {
	c.pos = pos
}

// Advance moves the position forward while playing. Paused clocks
// hold still, matching a paused track.
func (c *ManualClock) Advance(d time.Duration) {
	if c.playing {
		c.pos += d
	}
}
