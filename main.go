package main

import (
	"log"
	"time"

	"github.com/keyfall/keyfall/internal/chart"
	"github.com/keyfall/keyfall/internal/config"
	"github.com/keyfall/keyfall/internal/device"
	"github.com/keyfall/keyfall/internal/game"
	"github.com/keyfall/keyfall/internal/input"
	"github.com/keyfall/keyfall/internal/matrix"
	"github.com/keyfall/keyfall/internal/rhythm"
	"github.com/keyfall/keyfall/internal/score"
	"github.com/keyfall/keyfall/internal/sound"
)

func main() {
	if err := run(); nil != err {
		log.Fatalln(err)
	}
}

// difficultyForLane mirrors the cabinet buttons: lane 3 selects easy,
// lane 2 medium, lane 1 hard.
func difficultyForLane(lane game.Lane) (game.Difficulty, bool) {
	switch lane {
	case 3:
		return game.Easy, true
	case 2:
		return game.Medium, true
	case 1:
		return game.Hard, true
	}
	return game.Easy, false
}

func run() error {
	config.Parse()

	led, err := matrix.NewConsole()
	if nil != err {
		return err
	}
	defer led.Close()

	var snd sound.Engine
	if !*config.Silent {
		engine, err := sound.NewDefaultEngine()
		if nil != err {
			log.Println("audio disabled:", err)
		} else {
			snd = engine
			defer engine.Close()
		}
	}

	// A missing display is not fatal; every send degrades to a no-op.
	client, err := device.Open(*config.SerialDevice, *config.Baud)
	if nil != err {
		log.Println("display link unavailable:", err)
	}
	defer client.Close()

	store := &score.DefaultStore{}
	if err := store.Init(*config.ScoreDB); nil != err {
		log.Println("high scores unavailable:", err)
	}
	defer store.Deinit()

	kb, err := input.NewKeyboard(*config.Keys)
	if nil != err {
		return err
	}
	defer kb.Close()

	engine := rhythm.NewEngine(led, snd, &chart.DefaultBuilder{}, client, *config.MidiFile)
	orchestrator := rhythm.NewOrchestrator(engine, store, client)
	defer engine.Exit()

	client.Send(device.Command{Kind: device.KindMode, Mode: device.ModeRhythm})

	for {
		now := time.Now()
		period := *config.FramePeriod
		if engine.Session().Phase == game.Playing {
			// Tight frames while judging; input timing is the game.
			period = *config.PlayFramePeriod
		}
		deadline := now.Add(period)

		events, quit := kb.Poll()
		if quit {
			break
		}
		for _, ev := range events {
			if engine.Session().Phase == game.SelectDifficulty &&
				ev.Kind == input.NoteOn && ev.HasLane {
				if d, ok := difficultyForLane(ev.Lane); ok {
					engine.SetDifficulty(d, now)
				}
				continue
			}
			engine.HandleEvent(ev, now)
		}

		for _, cmd := range client.Poll() {
			switch cmd.Kind {
			case device.KindCountdownDone:
				engine.OnCountdownDone(now)
			case device.KindBestScoreDone:
				orchestrator.OnBestScoreDone()
			}
		}

		engine.Update(now)
		orchestrator.Update(now)

		time.Sleep(time.Until(deadline))
	}

	client.Send(device.Command{Kind: device.KindLedClear})
	led.Clear()
	if err := led.Show(); nil != err {
		log.Println("unable to blank panel:", err)
	}
	return nil
}
