package sound

import (
	"fmt"
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// DefaultEngine is a small polyphonic sine synth on top of beep's speaker.
// Each NoteOn adds a decaying voice to the mixer; NoteOff shortens that
// voice's decay, StopAll cuts everything at once.
type DefaultEngine struct {
	mixer  beep.Mixer
	voices map[uint8]*voice
}

func NewDefaultEngine() (*DefaultEngine, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/30)); nil != err {
		return nil, fmt.Errorf("unable to init speaker: %w", err)
	}
	e := &DefaultEngine{voices: map[uint8]*voice{}}
	speaker.Play(&e.mixer)
	return e, nil
}

func (e *DefaultEngine) NoteOn(pitch uint8, velocity float64) {
	if velocity < 0.1 {
		velocity = 0.1
	} else if velocity > 1.0 {
		velocity = 1.0
	}
	v := newVoice(pitch, velocity)
	speaker.Lock()
	if old := e.voices[pitch]; nil != old {
		old.released = true
	}
	e.voices[pitch] = v
	e.mixer.Add(v)
	speaker.Unlock()
}

func (e *DefaultEngine) NoteOff(pitch uint8) {
	speaker.Lock()
	if v := e.voices[pitch]; nil != v {
		v.released = true
		delete(e.voices, pitch)
	}
	speaker.Unlock()
}

func (e *DefaultEngine) StopAll() {
	speaker.Lock()
	for pitch, v := range e.voices {
		v.killed = true
		delete(e.voices, pitch)
	}
	speaker.Unlock()
}

func (e *DefaultEngine) Close() {
	e.StopAll()
	speaker.Clear()
}

// voice is one sine tone with an exponential decay envelope. The mixer
// drops it once Stream reports completion.
type voice struct {
	step     float64 // phase increment per sample
	phase    float64
	amp      float64
	decay    float64 // per-sample amplitude multiplier
	released bool
	killed   bool
}

const (
	naturalDecaySec = 1.2
	releaseDecaySec = 0.08
	silenceFloor    = 1e-4
)

func newVoice(pitch uint8, velocity float64) *voice {
	freq := 440.0 * math.Pow(2, (float64(pitch)-69.0)/12.0)
	return &voice{
		step:  freq / float64(sampleRate),
		amp:   velocity * 0.4,
		decay: perSampleDecay(naturalDecaySec),
	}
}

func perSampleDecay(sec float64) float64 {
	// Fall to silenceFloor over sec seconds.
	return math.Pow(silenceFloor, 1.0/(sec*float64(sampleRate)))
}

func (v *voice) Stream(samples [][2]float64) (int, bool) {
	if v.killed || v.amp < silenceFloor {
		return 0, false
	}
	decay := v.decay
	if v.released {
		decay = perSampleDecay(releaseDecaySec)
	}
	for i := range samples {
		s := math.Sin(2*math.Pi*v.phase) * v.amp
		samples[i][0] = s
		samples[i][1] = s
		v.phase += v.step
		if v.phase >= 1 {
			v.phase -= 1
		}
		v.amp *= decay
	}
	return len(samples), true
}

func (v *voice) Err() error { return nil }
