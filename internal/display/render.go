package display

import (
	"log"
	"strconv"
	"time"

	"github.com/keyfall/keyfall/internal/font"
	"github.com/keyfall/keyfall/internal/graphics"
	"github.com/keyfall/keyfall/internal/matrix"
)

var menuWords = []string{"PRESS", "BUTTON", "TO", "CHANGE", "MODE"}

const (
	menuFrame       = 600 * time.Millisecond
	marqueePxPerSec = 16.0
)

func (d *Display) render(now time.Time) {
	if nil == d.led {
		return
	}
	d.led.Clear()
	set := d.led.SetPixel
	elapsed := now.Sub(d.enteredAt)

	switch d.state {
	case StateLedOff:
		// Stay black.

	case StateMenu:
		idx := int(elapsed/menuFrame) % len(menuWords)
		font.DrawCentered(menuWords[idx], matrix.Width, 5, graphics.White, set)

	case StatePiano:
		font.DrawCentered("PIANO", matrix.Width, 5, graphics.Color{R: 120, G: 220, B: 255}, set)

	case StateRhythmTitle:
		font.DrawCentered("RHYTHM", matrix.Width, 2, graphics.Color{R: 0, G: 180, B: 255}, set)
		font.DrawCentered("GAME", matrix.Width, 9, graphics.Color{R: 255, G: 120, B: 0}, set)

	case StateRhythmAttract, StateRhythmScroll:
		d.renderMarquee(elapsed, set)

	case StateRhythmHoldLevel:
		font.DrawCentered(d.level.String(), matrix.Width, 5, graphics.White, set)

	case StateRhythmCountdown:
		remain := countdownTotal - elapsed
		digit := int(remain/time.Second) + 1
		if digit > 5 {
			digit = 5
		}
		if digit < 1 {
			digit = 1
		}
		font.DrawCentered(strconv.Itoa(digit), matrix.Width, 5, graphics.White, set)

	case StateRhythmIngame:
		font.DrawCentered("PLAY!", matrix.Width, 5, graphics.Color{R: 122, G: 207, B: 90}, set)

	case StateRhythmPost:
		font.DrawCentered(d.postText, matrix.Width, 5, graphics.White, set)

	case StateUnknown:
		text := d.unknownText
		if len(text) > 4 {
			text = text[:4]
		}
		font.DrawCentered(text, matrix.Width, 5, graphics.White, set)
	}

	if err := d.led.Show(); nil != err {
		log.Println("display: unable to show frame:", err)
	}
}

// renderMarquee scrolls the text right to left and wraps around, looping
// for as long as the state is held.
func (d *Display) renderMarquee(elapsed time.Duration, set font.SetPixel) {
	span := font.Width(d.marqueeText) + matrix.Width
	offset := int(elapsed.Seconds()*marqueePxPerSec) % span
	x0 := matrix.Width - offset
	font.Draw(d.marqueeText, x0, 5, d.marqueeColor, set)
}
