package rhythm

import (
	"log"
	"math"
	"time"

	"github.com/keyfall/keyfall/internal/game"
	"github.com/keyfall/keyfall/internal/graphics"
	"github.com/keyfall/keyfall/internal/matrix"
)

// renderLegend paints the static lane-color legend shown while a difficulty
// is being chosen and during the remote countdown.
func (e *Engine) renderLegend() {
	if nil == e.led {
		return
	}
	e.led.Clear()
	for lane := game.Lane(0); lane < game.NumLanes; lane++ {
		e.led.FillLane(lane, game.LaneColors[lane], 0.4)
	}
	e.show()
}

// renderPlay draws every visible falling note as a 3-cell-tall block plus
// the flanking judgment-light columns. The draw skip index advances
// monotonically past notes that can no longer appear.
func (e *Engine) renderPlay(songTime time.Duration) {
	if nil == e.led {
		return
	}
	e.led.Clear()

	notes := e.session.Notes
	for e.drawIdx < len(notes) && notes[e.drawIdx].Time < songTime-game.MissLateWindow {
		e.drawIdx++
	}

	for _, note := range notes[e.drawIdx:] {
		untilNote := note.Time - songTime
		if untilNote > FallDuration {
			break
		}

		progress := float64(FallDuration-untilNote) / float64(FallDuration)
		if progress > 1 {
			progress = 1
		}
		yCenter := int((1.0-progress)*float64(matrix.Height-1) + 0.5)

		color := game.LaneColors[note.Lane]
		boost := 0.8
		if note.Hit {
			color = graphics.White
			boost = 1.0
		}
		brightness := math.Sqrt(progress) * boost
		if brightness < 0.3 {
			brightness = 0.3
		} else if brightness > 1 {
			brightness = 1
		}

		x0, x1 := matrix.LaneSpan(note.Lane)
		block := color.Scale(brightness)
		for x := x0; x < x1; x++ {
			for y := yCenter - 1; y <= yCenter+1; y++ {
				e.led.SetPixel(x, y, block)
			}
		}
	}

	if e.feedback.Active(songTime) {
		for y := 0; y < matrix.Height; y++ {
			e.led.SetPixel(0, y, e.feedback.Color)
			e.led.SetPixel(matrix.Width-1, y, e.feedback.Color)
		}
	}
	e.show()
}

func (e *Engine) show() {
	if err := e.led.Show(); nil != err {
		log.Println("rhythm: unable to show frame:", err)
	}
}
