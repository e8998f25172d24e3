// Package rhythm is the host-side game core: the session state machine,
// hit judging, the falling-note renderer and the post-game sequencer.
package rhythm

import (
	"log"
	"time"

	"github.com/keyfall/keyfall/internal/chart"
	"github.com/keyfall/keyfall/internal/device"
	"github.com/keyfall/keyfall/internal/game"
	"github.com/keyfall/keyfall/internal/input"
	"github.com/keyfall/keyfall/internal/matrix"
	"github.com/keyfall/keyfall/internal/sound"
)

const (
	// FallDuration is how long a note is visible before its judgment time.
	FallDuration = time.Second
	// LeadIn delays song time zero past the countdown ack so the first note
	// falls for a full FallDuration before its audio fires.
	LeadIn = time.Second
	// TailHold keeps the session alive past the last note so the melody's
	// tail rings and the final feedback stays visible.
	TailHold = 4 * time.Second

	joinTimeout = 500 * time.Millisecond
)

// Sender is the slice of the device client the engine needs.
type Sender interface {
	Send(device.Command)
}

// Engine runs one rhythm session at a time through
// SelectDifficulty -> Countdown -> Playing -> Done.
type Engine struct {
	led      matrix.Matrix
	snd      sound.Engine
	builder  chart.Builder
	out      Sender
	midiFile string

	session   *game.Session
	scheduler *sound.Scheduler
	playStart time.Time
	feedback  game.Feedback
	sweepIdx  int
	drawIdx   int
}

func NewEngine(led matrix.Matrix, snd sound.Engine, builder chart.Builder, out Sender, midiFile string) *Engine {
	return &Engine{
		led:      led,
		snd:      snd,
		builder:  builder,
		out:      out,
		midiFile: midiFile,
		session:  game.NewSession(nil, game.Easy),
	}
}

func (e *Engine) Session() *game.Session { return e.session }

// Reset discards the session and returns to difficulty selection. Any
// running scheduler is force-stopped first; a stale worker must never
// outlive its chart.
func (e *Engine) Reset() {
	e.stopScheduler()
	e.session = game.NewSession(nil, e.session.Difficulty)
	e.feedback = game.Feedback{}
	e.sweepIdx = 0
	e.drawIdx = 0
}

// Exit force-stops audio on mode exit.
func (e *Engine) Exit() {
	e.stopScheduler()
}

func (e *Engine) stopScheduler() {
	if nil == e.scheduler {
		return
	}
	e.scheduler.Stop(sound.StopForced)
	if !e.scheduler.Join(joinTimeout) {
		log.Println("rhythm: scheduler did not stop in time")
	}
	e.scheduler = nil
}

// SetDifficulty rebuilds the chart for the chosen difficulty and asks the
// remote display to run its countdown. A melody file that fails to parse
// degrades to an empty chart; the session then completes trivially.
func (e *Engine) SetDifficulty(d game.Difficulty, now time.Time) {
	e.stopScheduler()

	notes, err := e.builder.Build(e.midiFile, d)
	if nil != err {
		log.Println("rhythm: unable to build chart:", err)
		notes = nil
	}
	e.session = game.NewSession(notes, d)
	e.session.Phase = game.Countdown
	e.feedback = game.Feedback{}
	e.sweepIdx = 0
	e.drawIdx = 0
	e.scheduler = sound.NewScheduler(e.snd, sound.CuesFor(notes), nil)
	e.scheduler.Start()

	log.Printf("rhythm: difficulty %v, %v notes", d, len(notes))
	if nil != e.out {
		e.out.Send(device.Command{Kind: device.KindLevel, Level: d})
	}
}

// OnCountdownDone is called when the remote display acknowledges the end of
// its countdown. It anchors song time zero for both the renderer and the
// audio worker.
func (e *Engine) OnCountdownDone(now time.Time) {
	if e.session.Phase != game.Countdown {
		return
	}
	e.playStart = now.Add(LeadIn)
	if nil != e.scheduler {
		e.scheduler.SetStartTime(e.playStart)
	}
	e.session.Phase = game.Playing
	if nil != e.out {
		e.out.Send(device.Command{Kind: device.KindIngame})
	}
}

// HandleEvent judges one lane-tagged press against the closest unjudged
// note in that lane. At most one note is consumed per event, and a judged
// note is never judged again.
func (e *Engine) HandleEvent(ev input.Event, now time.Time) {
	if e.session.Phase != game.Playing {
		return
	}
	if ev.Kind != input.NoteOn || !ev.HasLane {
		return
	}

	songTime := now.Sub(e.playStart)

	var closest *game.Note
	best := time.Duration(1<<62 - 1)
	for _, note := range e.session.Notes {
		if note.Judged || note.Lane != ev.Lane {
			continue
		}
		d := songTime - note.Time
		if d < 0 {
			d = -d
		}
		if d < best {
			best = d
			closest = note
		} else if nil != closest {
			// Notes are time ordered, the distance only grows from here.
			break
		}
	}
	if nil == closest || best > game.MissLateWindow {
		return
	}

	judgement := game.Judge(best)
	closest.Judged = true
	closest.Hit = true
	closest.Score = judgement.Score
	e.session.Score += judgement.Score
	e.feedback.Trigger(songTime, judgement.Color)
}

// Update advances the state machine one frame and redraws the panel.
func (e *Engine) Update(now time.Time) {
	switch e.session.Phase {
	case game.SelectDifficulty, game.Countdown:
		e.renderLegend()
	case game.Playing:
		songTime := now.Sub(e.playStart)
		e.sweepMisses(songTime)
		e.renderPlay(songTime)
		if e.session.AllJudged() && songTime >= e.session.LastNoteTime()+TailHold {
			e.session.Phase = game.Done
			log.Printf("rhythm: done, %v/%v", e.session.Score, e.session.MaxScore)
		}
	case game.Done:
		// The post-game sequence owns the panel now; no redraw here.
	}
}

// sweepMisses marks notes whose judgment deadline has passed. The sweep
// index only moves forward within a session.
func (e *Engine) sweepMisses(songTime time.Duration) {
	notes := e.session.Notes
	for e.sweepIdx < len(notes) {
		note := notes[e.sweepIdx]
		if songTime <= note.Time+game.MissLateWindow {
			return
		}
		if !note.Judged {
			note.Judged = true
			e.feedback.Trigger(songTime, game.FeedbackMiss)
		}
		e.sweepIdx++
	}
}
