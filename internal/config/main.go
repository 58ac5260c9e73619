package config

import (
	"git.lost.host/meutraa/reprise/internal/judge"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	Directory   = kingpin.Arg("directory", "Pattern/song directory").Required().ExistingDir()
	Rate        = kingpin.Flag("rate", "Playback rate").Default("1.0").Short('r').Float64()
	Offset      = kingpin.Flag("offset", "Metronome start offset").Default("0ms").Short('o').Duration()
	Delay       = kingpin.Flag("delay", "Start delay").Default("1.5s").Short('d').Duration()
	FramePeriod = kingpin.Flag("frame-period", "Render frame period").Default("8ms").Short('p').Duration()
	Rounds      = kingpin.Flag("rounds", "Rounds before the game ends, 0 plays forever").Default("0").Uint()

	MeasureAligned = kingpin.Flag("measure-aligned", "Switch phases only on measure boundaries").Short('m').Bool()

	perfectWindow = kingpin.Flag("perfect", "Perfect window radius").Default("100ms").Duration()
	goodWindow    = kingpin.Flag("good", "Good window radius").Default("200ms").Duration()
	badWindow     = kingpin.Flag("bad", "Bad window radius").Default("300ms").Duration()

	perfectScore = kingpin.Flag("perfect-score", "Score for a perfect").Default("300").Int64()
	goodScore    = kingpin.Flag("good-score", "Score for a good").Default("100").Int64()
	badScore     = kingpin.Flag("bad-score", "Score for a bad").Default("50").Int64()

	bonusEvery    = kingpin.Flag("bonus-every", "Combo length per bonus, 0 disables").Default("10").Int()
	bonusScore    = kingpin.Flag("bonus-score", "Bonus per combo interval").Default("50").Int64()
	bonusAllTiers = kingpin.Flag("bonus-all-tiers", "Grant the combo bonus on any hit, not only perfects").Bool()

	BarRow = kingpin.Flag("bar-row", "Console rows between hit bar and bottom").Default("8").Int()
)

func Parse() {
	kingpin.Version("0.1.0")
	kingpin.Parse()
}

// JudgeConfig collects the window and scoring flags. The judge
// validates it and keeps its defaults when the flags are nonsense.
func JudgeConfig() judge.Config {
	return judge.Config{
		PerfectWindow:    *perfectWindow,
		GoodWindow:       *goodWindow,
		BadWindow:        *badWindow,
		PerfectScore:     *perfectScore,
		GoodScore:        *goodScore,
		BadScore:         *badScore,
		BonusEvery:       *bonusEvery,
		BonusScore:       *bonusScore,
		BonusPerfectOnly: !*bonusAllTiers,
	}
}
