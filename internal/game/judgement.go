package game

import (
	"time"

	"github.com/keyfall/keyfall/internal/graphics"
)

// Judgement is one timing window and the score and feedback color it awards.
type Judgement struct {
	Window time.Duration
	Score  int
	Color  graphics.Color
	Name   string
}

// MissLateWindow is the judgment deadline: an unjudged note whose time is
// further than this in the past counts as a miss, and an input further than
// this from every unjudged note in its lane hits nothing.
const MissLateWindow = 250 * time.Millisecond

var (
	FeedbackPerfect = graphics.Color{R: 0, G: 255, B: 120}
	FeedbackGood    = graphics.Color{R: 255, G: 180, B: 60}
	FeedbackMiss    = graphics.Color{R: 255, G: 60, B: 60}
)

// Judgements is ordered tight to loose. The final band scores zero: the note
// is consumed and judged, shown as a near-miss rather than a true miss.
var Judgements = []Judgement{
	{Window: 80 * time.Millisecond, Score: 2, Color: FeedbackPerfect, Name: "perfect"},
	{Window: 160 * time.Millisecond, Score: 1, Color: FeedbackGood, Name: "good"},
	{Window: MissLateWindow, Score: 0, Color: FeedbackMiss, Name: "late"},
}

// Judge classifies an absolute hit distance. Returns nil when the distance
// is outside every window (the input hit nothing).
func Judge(dt time.Duration) *Judgement {
	if dt < 0 {
		dt = -dt
	}
	for i := range Judgements {
		if dt <= Judgements[i].Window {
			return &Judgements[i]
		}
	}
	return nil
}
