package chart

import "github.com/keyfall/keyfall/internal/game"

// Builder turns a melody file into a time-ordered chart for one difficulty.
type Builder interface {
	Build(file string, difficulty game.Difficulty) ([]*game.Note, error)
}
