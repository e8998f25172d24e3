// Package input defines the lane-tagged input events the engine consumes
// and a keyboard driver for running without the real button hardware.
package input

import "github.com/keyfall/keyfall/internal/game"

type Kind uint8

const (
	NoteOn Kind = iota
	NoteOff
)

// Event is one physical input edge. Lane is only meaningful with HasLane;
// Source tags which driver produced it.
type Event struct {
	Kind    Kind
	Lane    game.Lane
	HasLane bool
	Source  string
}
