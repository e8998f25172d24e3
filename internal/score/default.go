package score

import (
	"database/sql"
	"log"

	_ "github.com/mattn/go-sqlite3"

	"github.com/keyfall/keyfall/internal/game"
)

// DefaultStore keeps the best score per difficulty in a small sqlite
// database. Every failure degrades to "no record": a corrupt or missing
// database must never stop the game from starting.
type DefaultStore struct {
	db *sql.DB
}

func (s *DefaultStore) Init(path string) error {
	db, err := sql.Open("sqlite3", path)
	if nil != err {
		return err
	}

	initStatement := `
	create table if not exists highscores
	  (
		  difficulty text not null primary key,
		  score integer not null
	  );
	`
	if _, err = db.Exec(initStatement); nil != err {
		db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *DefaultStore) Deinit() {
	if nil != s.db {
		s.db.Close()
	}
}

func (s *DefaultStore) Best(d game.Difficulty) int {
	if nil == s.db {
		return 0
	}
	var best int
	err := s.db.QueryRow(
		"select score from highscores where difficulty = ?", d.String(),
	).Scan(&best)
	if err == sql.ErrNoRows {
		return 0
	}
	if nil != err {
		log.Println("score: unable to load record:", err)
		return 0
	}
	return best
}

func (s *DefaultStore) UpdateIfBetter(d game.Difficulty, score int) bool {
	old := s.Best(d)
	if score < old {
		return false
	}
	if nil == s.db {
		// Still a record for this run, just not a durable one.
		return true
	}
	_, err := s.db.Exec(
		"insert into highscores(difficulty, score) values(?, ?) "+
			"on conflict(difficulty) do update set score = excluded.score",
		d.String(), score,
	)
	if nil != err {
		log.Println("score: unable to save record:", err)
	}
	return true
}
