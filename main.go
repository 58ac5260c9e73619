package main

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path"
	"path/filepath"
	"time"

	"git.lost.host/meutraa/reprise/internal/clock"
	"git.lost.host/meutraa/reprise/internal/config"
	"git.lost.host/meutraa/reprise/internal/engine"
	"git.lost.host/meutraa/reprise/internal/game"
	"git.lost.host/meutraa/reprise/internal/history"
	"git.lost.host/meutraa/reprise/internal/parser"
	"git.lost.host/meutraa/reprise/internal/phase"
	"git.lost.host/meutraa/reprise/internal/render"
	"git.lost.host/meutraa/reprise/internal/theme"
	"github.com/eiannone/keyboard"
	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
)

// Columns per 25ms of timeline when rendering notes
const scrollScale = 25 * time.Millisecond

func main() {
	if err := run(); nil != err {
		log.Fatalln(err)
	}
}

// noteView mirrors note lifecycle events as short lived decorations.
// The registry stays authoritative, this only flashes.
type noteView struct {
	r      render.Renderer
	th     theme.Theme
	mid    int
	hitRow int
}

func (v *noteView) NoteSpawned(n game.Note) {
	// The call: flash the lane marker as the demonstration sounds
	v.r.AddDecoration(v.mid, v.hitRow-2, v.th.RenderNote(n.Ordinal), 30)
}

func (v *noteView) NoteJudged(id uint64) {
	v.r.AddDecoration(v.mid, v.hitRow+1, "\033[1;37m^\033[0m", 20)
}

func (v *noteView) NoteExpired(id uint64) {
	v.r.AddDecoration(v.mid+2, v.hitRow+1, "\033[1;31m×\033[0m", 20)
}

func run() error {
	config.Parse()

	// Ensure our Default implementations are used as interfaces
	var r render.Renderer = &render.DefaultRenderer{}
	var th theme.Theme = &theme.DefaultTheme{}
	var psr parser.Parser = &parser.DefaultParser{}
	var rec history.Recorder = &history.DefaultRecorder{}

	var audioFile, patternFile string
	if err := filepath.Walk(*config.Directory, func(p string, info os.FileInfo, err error) error {
		switch path.Ext(info.Name()) {
		case ".mp3", ".ogg":
			audioFile = p
		case ".rp":
			patternFile = p
		}
		return nil
	}); nil != err {
		return fmt.Errorf("unable to walk song directory: %w", err)
	}
	if patternFile == "" {
		return errors.New("unable to find .rp pattern file in given directory")
	}

	pattern, err := psr.Parse(patternFile)
	if nil != err {
		return err
	}

	if err := rec.Init(); nil != err {
		return fmt.Errorf("unable to open round history: %w", err)
	}
	defer rec.Deinit()

	keyChannel, err := keyboard.GetKeys(128)
	if nil != err {
		return fmt.Errorf("unable to open keyboard: %w", err)
	}
	defer func() {
		if err := keyboard.Close(); nil != err {
			log.Println("unable to close keyboard", err)
		}
	}()

	// The music clock: a decoded stream when there is audio, a
	// manual clock driven by the frame loop otherwise.
	var source clock.Source
	var streamClock *clock.StreamClock
	var manualClock *clock.ManualClock
	var streamer beep.StreamSeekCloser
	if audioFile != "" {
		f, err := os.Open(audioFile)
		if nil != err {
			return err
		}
		var format beep.Format
		if path.Ext(audioFile) == ".ogg" {
			streamer, format, err = vorbis.Decode(f)
		} else {
			streamer, format, err = mp3.Decode(f)
		}
		if nil != err {
			return err
		}
		defer streamer.Close()

		sr := beep.SampleRate(math.Round(float64(format.SampleRate) * *config.Rate))
		if err := speaker.Init(sr, format.SampleRate.N(time.Second/60)); nil != err {
			return fmt.Errorf("unable to init speaker: %w", err)
		}
		streamClock = &clock.StreamClock{Streamer: streamer, Format: format}
		source = streamClock
	} else {
		manualClock = &clock.ManualClock{}
		source = manualClock
	}

	policy := phase.PolicyElapsed
	if *config.MeasureAligned {
		policy = phase.PolicyMeasure
	}

	if err := r.Init(); nil != err {
		return err
	}
	defer func() {
		// Restore the terminal state
		if err := r.Deinit(); nil != err {
			log.Println("unable to restore terminal", err)
		}
	}()

	columns, rows, err := r.Size()
	if nil != err {
		return fmt.Errorf("unable to get terminal size: %w", err)
	}
	mid := columns >> 1
	hitRow := rows - *config.BarRow
	sideCol := mid - 50
	if sideCol < 2 {
		sideCol = 2
	}

	view := &noteView{r: r, th: th, mid: mid, hitRow: hitRow}

	var e *engine.Engine
	e = engine.New(engine.Options{
		Source:  source,
		Pattern: pattern,
		Phases: phase.Config{
			BPM:             pattern.BPM,
			BeatsPerMeasure: pattern.BeatsPerMeasure,
			ListenMeasures:  pattern.ListenMeasures,
			PlayMeasures:    pattern.PlayMeasures,
			ResultMeasures:  pattern.ResultMeasures,
			Policy:          policy,
		},
		Judge:        config.JudgeConfig(),
		NoteObserver: view,
		BeatObserver: func(b game.BeatPosition) {
			r.AddDecoration(2, 2, th.RenderBeat(b), 8)
		},
		OnResult: func(round int) {
			j := e.Judge()
			rec.Save(pattern, round, history.Round{
				Score:   j.Score(),
				Combo:   j.Combo(),
				Counts:  j.Counts(),
				Offsets: j.Offsets(),
			})
		},
	})

	e.Judge().Notify(func(j game.Judgement) {
		r.AddDecoration(sideCol, 6, th.RenderJudgement(j.Tier), 60)
		if j.Tier != game.TierMiss {
			// Offset marker under the hit bar, early left, late right
			os := mid + int(j.Offset/scrollScale)
			r.AddDecoration(os, hitRow+2, "\033[38;5;240m|\033[0m", 90)
		}
	})

	started := false
	blank := make([]byte, columns)
	for i := range blank {
		blank[i] = ' '
	}

	r.RenderLoop(*config.Delay, *config.FramePeriod, func(now time.Time, duration time.Duration) bool {
		// Drain the key inputs that occured so far
		for i := 0; i < len(keyChannel); i++ {
			key := <-keyChannel
			if key.Key == keyboard.KeyEsc || key.Key == keyboard.KeyCtrlC {
				e.EndGame(now)
				return false
			}
			if started {
				e.Tap(source.Position())
			}
		}

		if duration < 0 {
			r.Fill(hitRow, mid-4, fmt.Sprintf("in %4.1fs", -duration.Seconds()))
			return true
		}
		if !started {
			started = true
			if nil != streamClock {
				speaker.Play(streamer)
				streamClock.SetStarted(true)
			} else {
				manualClock.Play()
			}
			e.Start(now, *config.Offset)
		}
		if nil != manualClock {
			manualClock.Set(time.Duration(float64(duration) * *config.Rate))
		}

		e.Tick(now)

		if *config.Rounds > 0 && uint(e.Round()) > *config.Rounds {
			e.EndGame(now)
			return false
		}

		position := e.Position()

		// Timeline lane: notes drift right to left into the hit bar
		r.Fill(hitRow, 1, string(blank))
		r.Fill(hitRow, mid, th.RenderHitField())
		for _, n := range e.Notes() {
			if n.State != game.Pending {
				continue
			}
			col := mid + int((n.TargetTime-position)/scrollScale)
			if col > 1 && col <= columns {
				r.Fill(hitRow, col, th.RenderNote(n.Ordinal))
			}
		}

		// Static stat ui
		j := e.Judge()
		r.Fill(4, sideCol, fmt.Sprintf("      Phase:  %v", th.RenderPhase(e.Phase())))
		r.Fill(5, sideCol, fmt.Sprintf("      Round:  %6v", e.Round()))
		r.Fill(10, sideCol, fmt.Sprintf("      Score:  %6v", j.Score()))
		r.Fill(11, sideCol, fmt.Sprintf("      Combo:  %6v", j.Combo()))
		r.Fill(12, sideCol, fmt.Sprintf("       Mean:  %6.1f ms", float64(j.Mean())/float64(time.Millisecond)))
		r.Fill(13, sideCol, fmt.Sprintf("      Stdev:  %6.1f ms", j.Stdev()/float64(time.Millisecond)))
		counts := j.Counts()
		for tier := game.Tier(0); tier < game.TierCount; tier++ {
			r.Fill(16+int(tier), sideCol, fmt.Sprintf("%v:  %6v", th.RenderJudgement(tier), counts[tier]))
		}

		return true
	})

	return nil
}
