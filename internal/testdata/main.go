package testdata

import (
	"encoding/json"

	"git.lost.host/meutraa/reprise/internal/game"
)

func GetPattern() (*game.Pattern, error) {
	var pattern game.Pattern
	if err := json.Unmarshal([]byte(data), &pattern); nil != err {
		return nil, err
	}
	return &pattern, nil
}

const data = `{
  "Title": "Clap Drill",
  "BPM": 120,
  "BeatsPerMeasure": 4,
  "ListenMeasures": 1,
  "PlayMeasures": 1,
  "ResultMeasures": 0,
  "Phrases": [
    [1, 1, 2],
    [1, 0.5, 0.5, 1, 1],
    [2, 1, 1]
  ]
}`
