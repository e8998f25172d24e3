package display

import (
	"testing"
	"time"

	"github.com/keyfall/keyfall/internal/device"
	"github.com/keyfall/keyfall/internal/game"
	"github.com/keyfall/keyfall/internal/matrix"
)

func newDisplay(now time.Time) (*Display, *[]device.Command) {
	acks := &[]device.Command{}
	d := New(&matrix.Memory{}, func(cmd device.Command) {
		*acks = append(*acks, cmd)
	}, now)
	return d, acks
}

func TestCommandsQueueDuringLock(t *testing.T) {
	t0 := time.Now()
	d, _ := newDisplay(t0)

	d.Apply(device.Command{Kind: device.KindChallengeFail}, t0)
	if d.State() != StateRhythmScroll {
		t.Fatal("state", d.State())
	}

	// Non-urgent commands arriving inside the marquee hold queue up.
	d.Apply(device.Command{Kind: device.KindUserScoreLabel}, t0.Add(time.Second))
	d.Apply(device.Command{Kind: device.KindUserScore, Score: 4, Max: 6}, t0.Add(2*time.Second))
	if d.State() != StateRhythmScroll || d.PendingLen() != 2 {
		t.Fatal("state", d.State(), "pending", d.PendingLen())
	}

	// Still locked: nothing replays.
	d.Update(t0.Add(2500 * time.Millisecond))
	if d.State() != StateRhythmScroll || d.PendingLen() != 2 {
		t.Fatal("replayed during the lock, state", d.State())
	}

	// Lock expired: one command per tick, oldest first, each exactly once.
	d.Update(t0.Add(3 * time.Second))
	if d.State() != StateRhythmScroll || d.PendingLen() != 1 {
		t.Fatal("state", d.State(), "pending", d.PendingLen())
	}

	// The replayed label opened its own marquee hold; ride it out.
	d.Update(t0.Add(6 * time.Second))
	if d.State() != StateRhythmPost || d.PendingLen() != 0 || d.postText != "4/6" {
		t.Fatal("state", d.State(), "pending", d.PendingLen(), "text", d.postText)
	}
}

func TestPendingQueueDropsOldest(t *testing.T) {
	t0 := time.Now()
	d, _ := newDisplay(t0)

	d.Apply(device.Command{Kind: device.KindChallengeFail}, t0)
	for i := 0; i < PendingCap+2; i++ {
		d.Apply(device.Command{Kind: device.KindUserScore, Score: i, Max: 20}, t0.Add(time.Second))
	}

	if d.PendingLen() != PendingCap {
		t.Fatal("pending", d.PendingLen())
	}
	if d.pending[0].Score != 2 || d.pending[PendingCap-1].Score != PendingCap+1 {
		t.Log("queue window", d.pending[0].Score, "..", d.pending[PendingCap-1].Score)
		t.Fail()
	}
}

func TestUrgentCommandsBypassLock(t *testing.T) {
	t0 := time.Now()
	d, _ := newDisplay(t0)

	d.Apply(device.Command{Kind: device.KindChallengeSuccess}, t0)
	d.Apply(device.Command{Kind: device.KindLedClear}, t0.Add(time.Second))
	if d.State() != StateLedOff {
		t.Log("urgent command did not bypass the lock, state", d.State())
		t.Fail()
	}
}

func TestCountdownAcksOnce(t *testing.T) {
	t0 := time.Now()
	d, acks := newDisplay(t0)

	d.Apply(device.Command{Kind: device.KindMode, Mode: device.ModeRhythm}, t0)
	d.Apply(device.Command{Kind: device.KindLevel, Level: game.Easy}, t0)
	if d.State() != StateRhythmHoldLevel {
		t.Fatal("state", d.State())
	}

	t1 := t0.Add(levelHold)
	d.Update(t1)
	if d.State() != StateRhythmCountdown {
		t.Fatal("state", d.State())
	}

	d.Update(t1.Add(countdownTotal - time.Millisecond))
	if len(*acks) != 0 {
		t.Fatal("acked early:", *acks)
	}
	d.Update(t1.Add(countdownTotal))
	d.Update(t1.Add(countdownTotal + time.Second))
	if len(*acks) != 1 || (*acks)[0].Kind != device.KindCountdownDone {
		t.Log("acks", *acks)
		t.Fail()
	}
}

func TestBestScoreAcksOnce(t *testing.T) {
	t0 := time.Now()
	d, acks := newDisplay(t0)

	d.Apply(device.Command{Kind: device.KindUserScore, Score: 3, Max: 6}, t0)
	d.Update(t0.Add(scoreHold + time.Second))
	if len(*acks) != 0 {
		t.Fatal("the user-score screen must not ack:", *acks)
	}

	t1 := t0.Add(10 * time.Second)
	d.Apply(device.Command{Kind: device.KindBestScore, Score: 5, Max: 6}, t1)
	d.Update(t1.Add(scoreHold))
	d.Update(t1.Add(scoreHold + time.Second))
	if len(*acks) != 1 || (*acks)[0].Kind != device.KindBestScoreDone {
		t.Log("acks", *acks)
		t.Fail()
	}
}

func TestTitleFallsToAttract(t *testing.T) {
	t0 := time.Now()
	d, _ := newDisplay(t0)

	d.Apply(device.Command{Kind: device.KindMode, Mode: device.ModeRhythm}, t0)
	d.Update(t0.Add(attractAfter - time.Millisecond))
	if d.State() != StateRhythmTitle {
		t.Fatal("state", d.State())
	}
	d.Update(t0.Add(attractAfter))
	if d.State() != StateRhythmAttract {
		t.Log("state", d.State())
		t.Fail()
	}
}

func TestUnknownModeScreen(t *testing.T) {
	t0 := time.Now()
	d, _ := newDisplay(t0)

	d.Apply(device.Command{Kind: device.KindMode, Mode: device.ModeSong}, t0)
	if d.State() != StateUnknown || d.unknownText != "song" {
		t.Log("state", d.State(), "text", d.unknownText)
		t.Fail()
	}
	d.Update(t0.Add(time.Second))
}
