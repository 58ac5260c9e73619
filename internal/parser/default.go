package parser

import (
	"fmt"
	"io/ioutil"
	"strconv"
	"strings"

	"git.lost.host/meutraa/reprise/internal/game"
)

type DefaultParser struct{}

// Parse reads a pattern file. The format is a flat list of
// #TAG:value; fields:
//
//	#TITLE:Clap Drill;
//	#BPM:120;
//	#SIGNATURE:4;
//	#LISTEN:1;
//	#PLAY:1;
//	#RESULT:0;
//	#PHRASE:1,1,2;
//
// LISTEN, PLAY and RESULT are measure counts. Each PHRASE is one
// round's beat counts: the beat the first note falls on, then the
// gap in beats to each following note. Unknown tags are skipped.
func (p *DefaultParser) Parse(file string) (*game.Pattern, error) {
	data, err := ioutil.ReadFile(file)
	if nil != err {
		return nil, err
	}

	pattern := &game.Pattern{
		BPM:             120,
		BeatsPerMeasure: 4,
		ListenMeasures:  1,
		PlayMeasures:    1,
	}

	str := strings.ReplaceAll(string(data), "\r", "")
	str = strings.TrimPrefix(str, "#")
	for _, mdl := range strings.Split(str, "\n#") {
		mdl = strings.TrimSpace(mdl)
		if mdl == "" || strings.HasPrefix(mdl, "//") {
			continue
		}
		mdl = strings.TrimSuffix(mdl, ";")
		switch {
		case strings.HasPrefix(mdl, "TITLE:"):
			pattern.Title = strings.TrimPrefix(mdl, "TITLE:")
		case strings.HasPrefix(mdl, "BPM:"):
			bpm, err := strconv.ParseFloat(strings.TrimPrefix(mdl, "BPM:"), 64)
			if nil != err {
				return nil, fmt.Errorf("unable to parse bpm: %w", err)
			}
			if bpm <= 0 {
				return nil, fmt.Errorf("bpm must be positive, got %v", bpm)
			}
			pattern.BPM = bpm
		case strings.HasPrefix(mdl, "SIGNATURE:"):
			n, err := strconv.Atoi(strings.TrimPrefix(mdl, "SIGNATURE:"))
			if nil != err {
				return nil, fmt.Errorf("unable to parse signature: %w", err)
			}
			if n < 1 {
				return nil, fmt.Errorf("signature must be at least 1, got %v", n)
			}
			pattern.BeatsPerMeasure = n
		case strings.HasPrefix(mdl, "LISTEN:"):
			n, err := strconv.Atoi(strings.TrimPrefix(mdl, "LISTEN:"))
			if nil != err {
				return nil, fmt.Errorf("unable to parse listen measures: %w", err)
			}
			pattern.ListenMeasures = n
		case strings.HasPrefix(mdl, "PLAY:"):
			n, err := strconv.Atoi(strings.TrimPrefix(mdl, "PLAY:"))
			if nil != err {
				return nil, fmt.Errorf("unable to parse play measures: %w", err)
			}
			pattern.PlayMeasures = n
		case strings.HasPrefix(mdl, "RESULT:"):
			n, err := strconv.Atoi(strings.TrimPrefix(mdl, "RESULT:"))
			if nil != err {
				return nil, fmt.Errorf("unable to parse result measures: %w", err)
			}
			pattern.ResultMeasures = n
		case strings.HasPrefix(mdl, "PHRASE:"):
			phrase, err := parsePhrase(strings.TrimPrefix(mdl, "PHRASE:"))
			if nil != err {
				return nil, err
			}
			pattern.Phrases = append(pattern.Phrases, phrase)
		}
	}

	if len(pattern.Phrases) == 0 {
		return nil, fmt.Errorf("pattern %v has no phrases", file)
	}
	return pattern, nil
}

func parsePhrase(s string) (game.Phrase, error) {
	parts := strings.Split(s, ",")
	phrase := make(game.Phrase, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		count, err := strconv.ParseFloat(part, 64)
		if nil != err {
			return nil, fmt.Errorf("unable to parse phrase entry %q: %w", part, err)
		}
		if count < 0 {
			return nil, fmt.Errorf("phrase entry %q is negative", part)
		}
		phrase = append(phrase, count)
	}
	if len(phrase) == 0 {
		return nil, fmt.Errorf("empty phrase")
	}
	return phrase, nil
}
