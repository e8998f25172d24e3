package chart

import (
	"fmt"
	"sort"
	"time"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/keyfall/keyfall/internal/game"
)

const (
	// ClusterEps groups note-ons this close in time into one melody beat.
	ClusterEps = 80 * time.Millisecond

	percussionChannel = 9
)

type DefaultBuilder struct{}

type tickEvent struct {
	tick uint64
	msg  smf.Message
}

// Build decodes a standard MIDI file into the compressed "main melody"
// chart: all tracks merged onto one timeline, percussion dropped, notes
// within ClusterEps of each other collapsed to the highest pitch, then
// thinned to the difficulty's minimum gap.
func (b *DefaultBuilder) Build(file string, difficulty game.Difficulty) ([]*game.Note, error) {
	rd, err := smf.ReadFile(file)
	if nil != err {
		return nil, fmt.Errorf("unable to read midi file: %w", err)
	}
	ticks, ok := rd.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fmt.Errorf("unsupported midi time format %v", rd.TimeFormat)
	}

	// Merge every track onto one absolute-tick timeline.
	events := []tickEvent{}
	for _, track := range rd.Tracks {
		abs := uint64(0)
		for _, ev := range track {
			abs += uint64(ev.Delta)
			events = append(events, tickEvent{tick: abs, msg: ev.Message})
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].tick < events[j].tick
	})

	// Walk the timeline converting tick deltas to seconds at the tempo in
	// effect. Tempo changes apply from their own tick onwards.
	bpm := 120.0
	tick := uint64(0)
	elapsed := time.Duration(0)
	raw := []*game.Note{}
	for _, ev := range events {
		elapsed += ticks.Duration(bpm, uint32(ev.tick-tick))
		tick = ev.tick

		if ev.msg.GetMetaTempo(&bpm) {
			continue
		}
		var ch, key, vel uint8
		if !ev.msg.GetNoteStart(&ch, &key, &vel) {
			continue
		}
		if ch == percussionChannel {
			continue
		}
		raw = append(raw, &game.Note{
			Time:     elapsed,
			Pitch:    key,
			Lane:     game.LaneFor(key),
			Velocity: float64(vel) / 127.0,
		})
	}

	melody := compress(raw)
	melody = thin(melody, difficulty.MinGap())
	return melody, nil
}

// compress collapses runs of notes within ClusterEps of their neighbour
// into the single highest-pitched note of the run.
func compress(raw []*game.Note) []*game.Note {
	melody := []*game.Note{}
	if len(raw) == 0 {
		return melody
	}

	best := raw[0]
	last := raw[0].Time
	for _, note := range raw[1:] {
		if note.Time-last <= ClusterEps {
			if note.Pitch > best.Pitch {
				best = note
			}
		} else {
			melody = append(melody, best)
			best = note
		}
		last = note.Time
	}
	melody = append(melody, best)
	return melody
}

// thin drops notes that follow their kept predecessor closer than gap.
func thin(notes []*game.Note, gap time.Duration) []*game.Note {
	if gap <= 0 || len(notes) == 0 {
		return notes
	}
	kept := []*game.Note{notes[0]}
	last := notes[0].Time
	for _, note := range notes[1:] {
		if note.Time-last < gap {
			continue
		}
		kept = append(kept, note)
		last = note.Time
	}
	return kept
}
