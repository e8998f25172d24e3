package game

import "github.com/keyfall/keyfall/internal/graphics"

// LaneColors is the base (un-hit) color of each falling-note lane.
var LaneColors = [NumLanes]graphics.Color{
	{R: 255, G: 120, B: 120},
	{R: 255, G: 210, B: 120},
	{R: 120, G: 220, B: 255},
	{R: 160, G: 200, B: 255},
	{R: 210, G: 160, B: 255},
}
