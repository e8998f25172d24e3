package game

import (
	"time"

	"github.com/keyfall/keyfall/internal/graphics"
)

// FeedbackDuration is how long the flanking judgment columns stay lit.
const FeedbackDuration = 250 * time.Millisecond

// Feedback is the ephemeral judgment-light state. It is overwritten by every
// new judgment and only read by the renderer.
type Feedback struct {
	Color graphics.Color
	Until time.Duration // song time at which the light goes out
}

// Active reports whether the light is still lit at the given song time.
func (f *Feedback) Active(songTime time.Duration) bool {
	return f.Until != 0 && songTime < f.Until
}

// Trigger lights the judgment columns with the given color.
func (f *Feedback) Trigger(songTime time.Duration, color graphics.Color) {
	f.Color = color
	f.Until = songTime + FeedbackDuration
}
