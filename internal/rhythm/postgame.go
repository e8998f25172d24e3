package rhythm

import (
	"log"
	"time"

	"github.com/keyfall/keyfall/internal/device"
	"github.com/keyfall/keyfall/internal/game"
	"github.com/keyfall/keyfall/internal/score"
)

// Stage is the post-game presentation step. Stages advance on fixed timers
// except WaitAck, which is a true handshake on the remote display's
// BEST_SCORE_DONE line.
type Stage uint8

const (
	StageIdle Stage = iota
	StageResultBanner
	StageUserScoreLabel
	StageUserScore
	StageBestScoreLabel
	StageBestScore
	StageWaitAck
	StageHold
)

const (
	bannerDuration    = 3 * time.Second
	labelDuration     = 2 * time.Second
	scoreDuration     = 2500 * time.Millisecond
	bestScoreLinger   = 500 * time.Millisecond
	holdDuration      = 1500 * time.Millisecond
	// The observed device never drops the ack, but a lost line would stall
	// the sequence forever, so the wait falls back after this long.
	ackTimeout = 10 * time.Second
)

// Orchestrator sequences the post-game presentation across both devices
// once per tick, and owns high-score persistence.
type Orchestrator struct {
	engine *Engine
	store  score.Store
	out    Sender

	stage      Stage
	stageStart time.Time
	userScore  int
	maxScore   int
	bestScore  int
	ackSeen    bool
}

func NewOrchestrator(engine *Engine, store score.Store, out Sender) *Orchestrator {
	return &Orchestrator{engine: engine, store: store, out: out}
}

func (o *Orchestrator) Stage() Stage { return o.stage }

// OnBestScoreDone records the handshake ack from the remote display.
func (o *Orchestrator) OnBestScoreDone() {
	o.ackSeen = true
}

// Update drives the sequence. It reads the finished session exactly once,
// persists the record, then walks the stages.
func (o *Orchestrator) Update(now time.Time) {
	session := o.engine.Session()

	if o.stage == StageIdle {
		if session.Phase != game.Done {
			return
		}
		o.begin(session, now)
		return
	}

	elapsed := now.Sub(o.stageStart)
	switch o.stage {
	case StageResultBanner:
		if elapsed >= bannerDuration {
			o.send(device.Command{Kind: device.KindUserScoreLabel})
			o.advance(StageUserScoreLabel, now)
		}
	case StageUserScoreLabel:
		if elapsed >= labelDuration {
			o.send(device.Command{Kind: device.KindUserScore, Score: o.userScore, Max: o.maxScore})
			o.advance(StageUserScore, now)
		}
	case StageUserScore:
		if elapsed >= scoreDuration {
			o.send(device.Command{Kind: device.KindBestScoreLabel})
			o.advance(StageBestScoreLabel, now)
		}
	case StageBestScoreLabel:
		if elapsed >= labelDuration {
			o.send(device.Command{Kind: device.KindBestScore, Score: o.bestScore, Max: o.maxScore})
			o.advance(StageBestScore, now)
		}
	case StageBestScore:
		if elapsed >= bestScoreLinger {
			o.ackSeen = false
			o.advance(StageWaitAck, now)
		}
	case StageWaitAck:
		if o.ackSeen {
			o.advance(StageHold, now)
		} else if elapsed >= ackTimeout {
			log.Println("rhythm: best-score ack never arrived, continuing")
			o.advance(StageHold, now)
		}
	case StageHold:
		if elapsed >= holdDuration {
			o.send(device.Command{Kind: device.KindBackToTitle})
			o.engine.Reset()
			o.stage = StageIdle
		}
	}
}

func (o *Orchestrator) begin(session *game.Session, now time.Time) {
	o.userScore = session.Score
	o.maxScore = session.MaxScore

	record := false
	if nil != o.store {
		record = o.store.UpdateIfBetter(session.Difficulty, session.Score)
		o.bestScore = o.store.Best(session.Difficulty)
	} else {
		o.bestScore = session.Score
		record = true
	}

	kind := device.KindChallengeFail
	if record {
		kind = device.KindChallengeSuccess
	}
	o.send(device.Command{Kind: kind})
	o.advance(StageResultBanner, now)
	log.Printf("rhythm: result %v/%v, best %v, record %v",
		o.userScore, o.maxScore, o.bestScore, record)
}

func (o *Orchestrator) advance(stage Stage, now time.Time) {
	o.stage = stage
	o.stageStart = now
}

func (o *Orchestrator) send(cmd device.Command) {
	if nil != o.out {
		o.out.Send(cmd)
	}
}
