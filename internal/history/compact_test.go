package history

import (
	"testing"
	"time"

	"git.lost.host/meutraa/reprise/internal/game"
)

var compactTests = []Round{
	{},
	{
		Score:   725,
		Combo:   3,
		Counts:  [game.TierCount]int{2, 1, 0, 1},
		Offsets: []time.Duration{50 * time.Millisecond, -20 * time.Millisecond, 150 * time.Millisecond},
	},
}

func TestCompactRoundTrip(t *testing.T) {
	equal := func(p, q Round) bool {
		if p.Score != q.Score || p.Combo != q.Combo || p.Counts != q.Counts {
			return false
		}
		if len(p.Offsets) != len(q.Offsets) {
			return false
		}
		for i := range p.Offsets {
			if p.Offsets[i] != q.Offsets[i] {
				return false
			}
		}
		return true
	}

	for _, in := range compactTests {
		out := uncompactRound(compactRound(in))
		if !equal(in, out) {
			t.Log("in      ", in)
			t.Log("out     ", out)
			t.Fail()
		}
	}
}

func TestHashPatternIgnoresTitle(t *testing.T) {
	a := &game.Pattern{Title: "one", BPM: 120, BeatsPerMeasure: 4, Phrases: []game.Phrase{{1, 1}}}
	b := &game.Pattern{Title: "two", BPM: 120, BeatsPerMeasure: 4, Phrases: []game.Phrase{{1, 1}}}
	if hashPattern(a) != hashPattern(b) {
		t.Fatal("title changed the hash")
	}

	c := &game.Pattern{Title: "one", BPM: 140, BeatsPerMeasure: 4, Phrases: []game.Phrase{{1, 1}}}
	if hashPattern(a) == hashPattern(c) {
		t.Fatal("tempo did not change the hash")
	}
}
