package score

import "github.com/keyfall/keyfall/internal/game"

// Store persists the per-difficulty best score.
type Store interface {
	Init(path string) error
	Deinit()

	// Best returns the stored record for the difficulty, zero when unset.
	Best(d game.Difficulty) int

	// UpdateIfBetter persists the score when it ties or beats the record and
	// reports whether it did. The stored value never decreases.
	UpdateIfBetter(d game.Difficulty, score int) bool
}
