package history

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"git.lost.host/meutraa/reprise/internal/game"
	_ "github.com/mattn/go-sqlite3"
)

type DefaultRecorder struct {
	db *sql.DB
}

// roundCompact is the stored shape: counts as a plain slice so the
// tier enum can grow without breaking old rows.
type roundCompact struct {
	Score   int64
	Combo   int
	Counts  []int
	Offsets []int64 // nanoseconds
}

func compactRound(r Round) roundCompact {
	c := roundCompact{
		Score:  r.Score,
		Combo:  r.Combo,
		Counts: make([]int, game.TierCount),
	}
	copy(c.Counts, r.Counts[:])
	for _, o := range r.Offsets {
		c.Offsets = append(c.Offsets, int64(o))
	}
	return c
}

func uncompactRound(c roundCompact) Round {
	r := Round{
		Score: c.Score,
		Combo: c.Combo,
	}
	for i, n := range c.Counts {
		if i >= game.TierCount {
			break
		}
		r.Counts[i] = n
	}
	for _, o := range c.Offsets {
		r.Offsets = append(r.Offsets, time.Duration(o))
	}
	return r
}

func (s *DefaultRecorder) Init() error {
	db, err := sql.Open("sqlite3", "./reprise.db")
	if nil != err {
		return err
	}

	initStatement := `
	create table if not exists rounds
	  (
		  id integer not null primary key,
		  sum text,
		  round integer,
		  judgements bytearray
	  );
	`
	_, err = db.Exec(initStatement)
	if nil != err {
		return err
	}

	s.db = db
	return nil
}

func (s *DefaultRecorder) Deinit() {
	if nil != s.db {
		s.db.Close()
	}
}

// hashPattern identifies a pattern by its musical content, so edits
// to the title do not orphan old rounds.
func hashPattern(p *game.Pattern) string {
	section := fmt.Sprintf("%v|%v|%v|%v|%v",
		p.BPM, p.BeatsPerMeasure, p.ListenMeasures, p.PlayMeasures, p.Phrases)
	sum := sha256.Sum256([]byte(section))
	return base64.StdEncoding.EncodeToString(sum[:])
}

func (s *DefaultRecorder) Save(pattern *game.Pattern, round int, r Round) {
	data, err := json.Marshal(compactRound(r))
	if nil != err {
		log.Println("unable to marshal round", err)
		return
	}
	_, err = s.db.Exec("insert into rounds(sum, round, judgements) values(?, ?, ?)",
		hashPattern(pattern), round, data)
	if nil != err {
		log.Println("unable to save round", err)
		return
	}
}

func (s *DefaultRecorder) Load(pattern *game.Pattern) []Entry {
	entries := []Entry{}
	rows, err := s.db.Query("select sum, round, judgements from rounds where sum = ?",
		hashPattern(pattern))
	if nil != err && err != sql.ErrNoRows {
		log.Println("unable to load rounds", err)
		return entries
	}
	defer rows.Close()
	for rows.Next() {
		var sum string
		var round int
		var data []byte
		rows.Scan(&sum, &round, &data)
		var c roundCompact
		if err := json.Unmarshal(data, &c); nil != err {
			log.Println("unable to unmarshal round history")
			continue
		}
		entries = append(entries, Entry{
			Sum:   sum,
			Round: round,
			Data:  uncompactRound(c),
		})
	}
	return entries
}
