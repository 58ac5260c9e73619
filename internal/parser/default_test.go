package parser

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writePattern(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	file := filepath.Join(dir, "test.rp")
	if err := ioutil.WriteFile(file, []byte(content), 0600); nil != err {
		t.Fatal("unable to write pattern file", err)
	}
	return file
}

func TestParse(t *testing.T) {
	file := writePattern(t, `#TITLE:Clap Drill;
#BPM:120;
#SIGNATURE:4;
#LISTEN:2;
#PLAY:2;
#RESULT:1;
#PHRASE:1,1,2;
#PHRASE:1,0.5,0.5,1;
`)
	p := &DefaultParser{}
	pattern, err := p.Parse(file)
	if nil != err {
		t.Fatal("parse", err)
	}

	if pattern.Title != "Clap Drill" {
		t.Fatal("title", pattern.Title)
	}
	if pattern.BPM != 120 || pattern.BeatsPerMeasure != 4 {
		t.Fatal("tempo", pattern.BPM, pattern.BeatsPerMeasure)
	}
	if pattern.ListenMeasures != 2 || pattern.PlayMeasures != 2 || pattern.ResultMeasures != 1 {
		t.Fatal("measures", pattern.ListenMeasures, pattern.PlayMeasures, pattern.ResultMeasures)
	}
	if len(pattern.Phrases) != 2 {
		t.Fatal("phrases", pattern.Phrases)
	}
	if len(pattern.Phrases[1]) != 4 || pattern.Phrases[1][1] != 0.5 {
		t.Fatal("fractional phrase", pattern.Phrases[1])
	}
}

func TestParseDefaults(t *testing.T) {
	file := writePattern(t, "#PHRASE:1,1;\n")
	pattern, err := (&DefaultParser{}).Parse(file)
	if nil != err {
		t.Fatal("parse", err)
	}
	if pattern.BPM != 120 || pattern.BeatsPerMeasure != 4 {
		t.Fatal("default tempo", pattern.BPM, pattern.BeatsPerMeasure)
	}
	if pattern.ListenMeasures != 1 || pattern.PlayMeasures != 1 || pattern.ResultMeasures != 0 {
		t.Fatal("default measures", pattern)
	}
}

var badPatterns = map[string]string{
	"no phrases":    "#BPM:120;\n",
	"bad bpm":       "#BPM:abc;\n#PHRASE:1;\n",
	"zero bpm":      "#BPM:0;\n#PHRASE:1;\n",
	"negative gap":  "#PHRASE:1,-1;\n",
	"empty phrase":  "#PHRASE:;\n",
	"bad signature": "#SIGNATURE:0;\n#PHRASE:1;\n",
}

func TestParseRejects(t *testing.T) {
	for name, content := range badPatterns {
		file := writePattern(t, content)
		if _, err := (&DefaultParser{}).Parse(file); nil == err {
			t.Log("expected error for", name)
			t.Fail()
		}
	}
}

func TestParseMissingFile(t *testing.T) {
	if _, err := (&DefaultParser{}).Parse(filepath.Join(os.TempDir(), "does-not-exist.rp")); nil == err {
		t.Fatal("expected error")
	}
}

func TestPhraseTimings(t *testing.T) {
	file := writePattern(t, "#BPM:120;\n#PHRASE:1,1,2;\n")
	pattern, err := (&DefaultParser{}).Parse(file)
	if nil != err {
		t.Fatal("parse", err)
	}
	timings := pattern.Phrases[0].Timings(pattern.BPM)
	expected := []time.Duration{0, 500 * time.Millisecond, 1500 * time.Millisecond}
	if len(timings) != len(expected) {
		t.Fatal("timings", timings)
	}
	for i, d := range timings {
		if d != expected[i] {
			t.Log("out     ", timings)
			t.Log("expected", expected)
			t.Fail()
		}
	}
}
