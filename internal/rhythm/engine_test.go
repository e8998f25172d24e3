package rhythm

import (
	"errors"
	"testing"
	"time"

	"github.com/keyfall/keyfall/internal/device"
	"github.com/keyfall/keyfall/internal/game"
	"github.com/keyfall/keyfall/internal/input"
	"github.com/keyfall/keyfall/internal/matrix"
)

type fakeBuilder struct {
	err error
}

// Build returns a fresh three note chart at 1s/2s/3s on lanes 0/1/2.
// Fresh on every call: the engine mutates judgment state in place.
func (b *fakeBuilder) Build(file string, d game.Difficulty) ([]*game.Note, error) {
	if nil != b.err {
		return nil, b.err
	}
	return []*game.Note{
		{Time: 1 * time.Second, Pitch: 60, Lane: 0, Velocity: 1},
		{Time: 2 * time.Second, Pitch: 61, Lane: 1, Velocity: 1},
		{Time: 3 * time.Second, Pitch: 62, Lane: 2, Velocity: 1},
	}, nil
}

type sendRecorder struct {
	cmds []device.Command
}

func (r *sendRecorder) Send(cmd device.Command) { r.cmds = append(r.cmds, cmd) }

func (r *sendRecorder) kinds() []device.Kind {
	kinds := make([]device.Kind, len(r.cmds))
	for i, cmd := range r.cmds {
		kinds[i] = cmd.Kind
	}
	return kinds
}

func press(lane game.Lane) input.Event {
	return input.Event{Kind: input.NoteOn, Lane: lane, HasLane: true}
}

// startPlaying drives a fresh engine to the Playing phase with song time
// zero anchored at the returned instant.
func startPlaying(t *testing.T, e *Engine) time.Time {
	t.Helper()
	t0 := time.Now()
	e.SetDifficulty(game.Medium, t0)
	if e.Session().Phase != game.Countdown {
		t.Fatal("expected countdown after difficulty select, got", e.Session().Phase)
	}
	e.OnCountdownDone(t0)
	if e.Session().Phase != game.Playing {
		t.Fatal("expected playing after countdown ack, got", e.Session().Phase)
	}
	return t0.Add(LeadIn)
}

func TestPerfectRun(t *testing.T) {
	led := &matrix.Memory{}
	out := &sendRecorder{}
	e := NewEngine(led, nil, &fakeBuilder{}, out, "melody.mid")
	defer e.Exit()

	start := startPlaying(t, e)
	session := e.Session()
	if session.MaxScore != 6 {
		t.Fatal("max score", session.MaxScore)
	}

	for i, lane := range []game.Lane{0, 1, 2} {
		at := start.Add(time.Duration(i+1) * time.Second)
		e.Update(at)
		e.HandleEvent(press(lane), at)
	}

	if session.Score != 6 {
		t.Log("score", session.Score, "of", session.MaxScore)
		t.Fail()
	}
	for i, note := range session.Notes {
		if !note.Judged || !note.Hit || note.Score != 2 {
			t.Log("note", i, "judged", note.Judged, "hit", note.Hit, "score", note.Score)
			t.Fail()
		}
	}

	// The session holds Playing through the tail, then completes.
	e.Update(start.Add(3*time.Second + TailHold - time.Millisecond))
	if session.Phase != game.Playing {
		t.Log("completed before the tail rang out")
		t.Fail()
	}
	e.Update(start.Add(3*time.Second + TailHold))
	if session.Phase != game.Done {
		t.Log("phase", session.Phase)
		t.Fail()
	}

	kinds := out.kinds()
	if len(kinds) != 2 || kinds[0] != device.KindLevel || kinds[1] != device.KindIngame {
		t.Log("sent", kinds)
		t.Fail()
	}
}

func TestSilentRunMissesEverything(t *testing.T) {
	led := &matrix.Memory{}
	e := NewEngine(led, nil, &fakeBuilder{}, nil, "melody.mid")
	defer e.Exit()

	start := startPlaying(t, e)
	session := e.Session()

	// Sweep each note individually so the miss feedback retriggers.
	for i := 1; i <= 3; i++ {
		at := start.Add(time.Duration(i)*time.Second + game.MissLateWindow + time.Millisecond)
		e.Update(at)
		if !session.Notes[i-1].Judged || session.Notes[i-1].Hit {
			t.Log("note", i-1, "not swept as a miss")
			t.Fail()
		}
		if !e.feedback.Active(at.Sub(start)) || e.feedback.Color != game.FeedbackMiss {
			t.Log("note", i-1, "miss feedback not lit")
			t.Fail()
		}
	}

	if session.Score != 0 {
		t.Log("score", session.Score)
		t.Fail()
	}
}

func TestJudgementWindows(t *testing.T) {
	offsets := map[time.Duration]int{
		-70 * time.Millisecond:  2,
		120 * time.Millisecond:  1,
		-240 * time.Millisecond: 0,
	}
	for offset, expected := range offsets {
		e := NewEngine(&matrix.Memory{}, nil, &fakeBuilder{}, nil, "melody.mid")
		start := startPlaying(t, e)

		e.HandleEvent(press(0), start.Add(time.Second+offset))
		note := e.Session().Notes[0]
		if !note.Judged || !note.Hit || note.Score != expected {
			t.Log("offset", offset, "judged", note.Judged, "score", note.Score,
				"expected", expected)
			t.Fail()
		}
		e.Exit()
	}
}

func TestPressOutsideWindowIsIgnored(t *testing.T) {
	e := NewEngine(&matrix.Memory{}, nil, &fakeBuilder{}, nil, "melody.mid")
	defer e.Exit()
	start := startPlaying(t, e)

	e.HandleEvent(press(0), start.Add(300*time.Millisecond))
	if e.Session().Notes[0].Judged {
		t.Log("press 700ms early consumed the note")
		t.Fail()
	}

	// Wrong lane leaves the note alone too.
	e.HandleEvent(press(4), start.Add(time.Second))
	if e.Session().Notes[0].Judged {
		t.Log("press on another lane consumed the note")
		t.Fail()
	}
}

func TestNoteJudgedOnlyOnce(t *testing.T) {
	e := NewEngine(&matrix.Memory{}, nil, &fakeBuilder{}, nil, "melody.mid")
	defer e.Exit()
	start := startPlaying(t, e)

	at := start.Add(time.Second)
	e.HandleEvent(press(0), at)
	e.HandleEvent(press(0), at.Add(10*time.Millisecond))

	if e.Session().Score != 2 {
		t.Log("double press double counted, score", e.Session().Score)
		t.Fail()
	}
}

func TestBrokenChartCompletesTrivially(t *testing.T) {
	e := NewEngine(&matrix.Memory{}, nil, &fakeBuilder{err: errors.New("corrupt file")}, nil, "melody.mid")
	defer e.Exit()

	start := startPlaying(t, e)
	session := e.Session()
	if len(session.Notes) != 0 || session.MaxScore != 0 {
		t.Fatal("expected an empty session")
	}

	e.Update(start.Add(TailHold))
	if session.Phase != game.Done {
		t.Log("phase", session.Phase)
		t.Fail()
	}
}

func TestResetReturnsToSelect(t *testing.T) {
	e := NewEngine(&matrix.Memory{}, nil, &fakeBuilder{}, nil, "melody.mid")
	start := startPlaying(t, e)
	e.HandleEvent(press(0), start.Add(time.Second))

	e.Reset()
	session := e.Session()
	if session.Phase != game.SelectDifficulty || session.Score != 0 || len(session.Notes) != 0 {
		t.Log("phase", session.Phase, "score", session.Score, "notes", len(session.Notes))
		t.Fail()
	}
	if session.Difficulty != game.Medium {
		t.Log("difficulty not carried over:", session.Difficulty)
		t.Fail()
	}
}
