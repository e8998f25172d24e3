package game

import (
	"time"
)

// Lane is one of the five falling-note tracks on the matrix.
type Lane uint8

const NumLanes = 5

// LaneFor maps a MIDI pitch onto a lane, C4 (60) landing on lane 0.
func LaneFor(pitch uint8) Lane {
	return Lane(((int(pitch)-60)%NumLanes + NumLanes) % NumLanes)
}

// Note is one compressed melody note in the chart.
//
// Time, Pitch, Lane and Velocity are set once by the chart builder and never
// change afterwards. The audio scheduler reads only those fields. Judged, Hit
// and Score are written by the judging path on the main loop, exactly once.
type Note struct {
	Time     time.Duration // offset from song start
	Pitch    uint8
	Lane     Lane
	Velocity float64 // 0.0 - 1.0

	Judged bool
	Hit    bool
	Score  int // 0, 1 or 2
}
