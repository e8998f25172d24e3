// Package display is the second device: it receives protocol commands over
// the serial link, renders the matching screens, and emits the countdown
// and best-score acknowledgements the host's orchestration waits on.
package display

import (
	"fmt"
	"time"

	"github.com/keyfall/keyfall/internal/device"
	"github.com/keyfall/keyfall/internal/game"
	"github.com/keyfall/keyfall/internal/graphics"
	"github.com/keyfall/keyfall/internal/matrix"
)

type State uint8

const (
	StateMenu State = iota
	StatePiano
	StateRhythmTitle
	StateRhythmAttract
	StateRhythmCountdown
	StateRhythmHoldLevel
	StateRhythmIngame
	StateRhythmScroll
	StateRhythmPost
	StateLedOff
	StateUnknown
)

const (
	// PendingCap bounds the replay queue; the oldest command is dropped
	// once it is full.
	PendingCap = 8

	countdownTotal = 5 * time.Second
	levelHold      = 1200 * time.Millisecond
	marqueeHold    = 2800 * time.Millisecond
	scoreHold      = 2 * time.Second
	attractAfter   = 8 * time.Second
)

// Display owns all second-device state: current screen, the minimum-hold
// lock, and the bounded queue of commands that arrived during a lock.
type Display struct {
	led  matrix.Matrix
	send func(device.Command)

	state     State
	enteredAt time.Time
	lockUntil time.Time
	pending   []device.Command

	level          game.Difficulty
	countdownAcked bool
	bestAcked      bool
	postIsBest     bool
	marqueeText    string
	marqueeColor   graphics.Color
	postText       string
	unknownText    string
}

// New starts on the menu screen. send carries acknowledgement lines back to
// the host; nil is tolerated for tests that don't watch acks.
func New(led matrix.Matrix, send func(device.Command), now time.Time) *Display {
	d := &Display{led: led, send: send}
	d.enter(StateMenu, now)
	return d
}

func (d *Display) State() State    { return d.state }
func (d *Display) PendingLen() int { return len(d.pending) }

func (d *Display) locked(now time.Time) bool { return now.Before(d.lockUntil) }

// Apply routes one inbound command. Urgent commands take effect at once;
// anything else queues while a lock window holds.
func (d *Display) Apply(cmd device.Command, now time.Time) {
	if !cmd.Urgent() && d.locked(now) {
		if len(d.pending) >= PendingCap {
			d.pending = d.pending[1:]
		}
		d.pending = append(d.pending, cmd)
		return
	}
	d.applyNow(cmd, now)
}

// Update replays at most one queued command once the lock has expired, then
// advances timed transitions and redraws.
func (d *Display) Update(now time.Time) {
	if !d.locked(now) && len(d.pending) > 0 {
		cmd := d.pending[0]
		d.pending = d.pending[1:]
		d.applyNow(cmd, now)
	}

	elapsed := now.Sub(d.enteredAt)
	switch d.state {
	case StateRhythmTitle:
		if elapsed >= attractAfter {
			d.marqueeText = "PRESS ANY BUTTON"
			d.marqueeColor = graphics.Color{R: 0, G: 180, B: 255}
			d.enter(StateRhythmAttract, now)
		}
	case StateRhythmHoldLevel:
		if elapsed >= levelHold {
			d.countdownAcked = false
			d.enter(StateRhythmCountdown, now)
		}
	case StateRhythmCountdown:
		if elapsed >= countdownTotal && !d.countdownAcked {
			d.countdownAcked = true
			d.ack(device.Command{Kind: device.KindCountdownDone})
		}
	case StateRhythmPost:
		if d.postIsBest && elapsed >= scoreHold && !d.bestAcked {
			d.bestAcked = true
			d.ack(device.Command{Kind: device.KindBestScoreDone})
		}
	}

	d.render(now)
}

func (d *Display) applyNow(cmd device.Command, now time.Time) {
	switch cmd.Kind {
	case device.KindLedClear:
		// Highest priority: hold black until the next command.
		d.enter(StateLedOff, now)

	case device.KindMode:
		switch cmd.Mode {
		case device.ModeMenu:
			d.enter(StateMenu, now)
		case device.ModePiano:
			d.enter(StatePiano, now)
		case device.ModeRhythm:
			d.enter(StateRhythmTitle, now)
		default:
			d.unknownText = cmd.Mode.String()
			d.enter(StateUnknown, now)
		}

	case device.KindLevel:
		d.level = cmd.Level
		d.enter(StateRhythmHoldLevel, now)
		d.lockUntil = now.Add(levelHold)

	case device.KindCountdown:
		d.countdownAcked = false
		d.enter(StateRhythmCountdown, now)

	case device.KindIngame:
		d.enter(StateRhythmIngame, now)

	case device.KindChallengeSuccess:
		d.marquee("NEW RECORD!", game.FeedbackPerfect, now)
	case device.KindChallengeFail:
		d.marquee("TRY AGAIN", game.FeedbackMiss, now)
	case device.KindUserScoreLabel:
		d.marquee("YOUR SCORE", graphics.White, now)
	case device.KindBestScoreLabel:
		d.marquee("BEST SCORE", game.FeedbackGood, now)

	case device.KindUserScore:
		d.static(fmt.Sprintf("%v/%v", cmd.Score, cmd.Max), false, now)
	case device.KindBestScore:
		d.static(fmt.Sprintf("%v/%v", cmd.Score, cmd.Max), true, now)

	case device.KindBackToTitle:
		d.enter(StateRhythmTitle, now)
	}
}

// marquee starts a looping scroll that holds the lock for marqueeHold.
func (d *Display) marquee(text string, color graphics.Color, now time.Time) {
	d.marqueeText = text
	d.marqueeColor = color
	d.enter(StateRhythmScroll, now)
	d.lockUntil = now.Add(marqueeHold)
}

// static shows a score screen that holds the lock for scoreHold. Only the
// best-score screen acks when its hold expires.
func (d *Display) static(text string, isBest bool, now time.Time) {
	d.postText = text
	d.postIsBest = isBest
	d.bestAcked = false
	d.enter(StateRhythmPost, now)
	d.lockUntil = now.Add(scoreHold)
}

func (d *Display) enter(state State, now time.Time) {
	d.state = state
	d.enteredAt = now
}

func (d *Display) ack(cmd device.Command) {
	if nil != d.send {
		d.send(cmd)
	}
}
