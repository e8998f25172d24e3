// Package matrix abstracts the 32x16 LED panel. The real NeoPixel driver
// lives outside this repository; everything here talks to the panel through
// the Matrix interface, with a terminal-backed implementation for development.
package matrix

import (
	"github.com/keyfall/keyfall/internal/game"
	"github.com/keyfall/keyfall/internal/graphics"
)

const (
	Width  = 32
	Height = 16
)

// Matrix is the LED panel collaborator interface. Coordinates are (0,0) at
// the top-left; writes outside the panel are dropped. Nothing is visible
// until Show.
type Matrix interface {
	Clear()
	SetPixel(x, y int, c graphics.Color)
	Show() error
	FillLane(lane game.Lane, c graphics.Color, brightness float64)
}

// LaneSpan returns the [x0, x1) column range of a lane. The leftmost and
// rightmost columns are reserved for the judgment lights, and the inner
// width is split evenly across the lanes, remainder going to the left.
func LaneSpan(lane game.Lane) (int, int) {
	inner := Width - 2
	base := inner / game.NumLanes
	rem := inner % game.NumLanes

	x := 1
	for i := game.Lane(0); i < game.NumLanes; i++ {
		span := base
		if int(i) < rem {
			span++
		}
		if i == lane {
			return x, x + span
		}
		x += span
	}
	return 1, Width - 1
}
