package sound

import (
	"sync"
	"time"

	"github.com/keyfall/keyfall/internal/game"
)

// StopReason distinguishes the two ways a scheduler run can end. The
// asymmetry is deliberate: a finished song keeps ringing, a cancelled one
// goes silent at once.
type StopReason uint8

const (
	// StopNatural ends the run with the last notes left to decay.
	StopNatural StopReason = iota
	// StopForced silences every active note immediately (mode switch, restart).
	StopForced
)

// Cue is the immutable slice of a chart note the scheduler is allowed to
// see. Judgment state stays with the main loop; the worker never touches it.
type Cue struct {
	At       time.Duration
	Pitch    uint8
	Velocity float64
}

// CuesFor snapshots the timing fields of a chart, in chart order.
func CuesFor(notes []*game.Note) []Cue {
	cues := make([]Cue, len(notes))
	for i, n := range notes {
		cues[i] = Cue{At: n.Time, Pitch: n.Pitch, Velocity: n.Velocity}
	}
	return cues
}

// Scheduler plays each cue's pitch at its scheduled time on a background
// goroutine, decoupled from the render frame rate. The play index only ever
// increases, and each cue fires at most once.
type Scheduler struct {
	engine Engine
	cues   []Cue
	now    func() time.Time

	mu       sync.Mutex
	start    time.Time
	startSet bool
	stopped  bool
	reason   StopReason
	idx      int

	done chan struct{}
}

func NewScheduler(engine Engine, cues []Cue, now func() time.Time) *Scheduler {
	if nil == now {
		now = time.Now
	}
	return &Scheduler{
		engine: engine,
		cues:   cues,
		now:    now,
		done:   make(chan struct{}),
	}
}

// SetStartTime establishes song time zero. The worker idles until it is set.
func (s *Scheduler) SetStartTime(t time.Time) {
	s.mu.Lock()
	s.start = t
	s.startSet = true
	s.mu.Unlock()
}

// Start spawns the worker goroutine.
func (s *Scheduler) Start() {
	go s.run()
}

// Stop requests cooperative termination. StopForced silences active notes;
// StopNatural lets them decay. A forced stop is never downgraded.
func (s *Scheduler) Stop(reason StopReason) {
	s.mu.Lock()
	if !s.stopped || reason == StopForced {
		s.reason = reason
	}
	s.stopped = true
	s.mu.Unlock()
}

// Join waits for the worker to exit, up to timeout. Returns false when the
// worker is still running after the timeout.
func (s *Scheduler) Join(timeout time.Duration) bool {
	select {
	case <-s.done:
		return true
	case <-time.After(timeout):
		return false
	}
}

// PlayIndex is the number of cues fired so far.
func (s *Scheduler) PlayIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.idx
}

func (s *Scheduler) run() {
	defer close(s.done)
	for {
		s.mu.Lock()
		stopped, reason := s.stopped, s.reason
		start, startSet := s.start, s.startSet
		idx := s.idx
		s.mu.Unlock()

		if stopped {
			if reason == StopForced && nil != s.engine {
				s.engine.StopAll()
			}
			return
		}
		if !startSet {
			time.Sleep(time.Millisecond)
			continue
		}
		if idx >= len(s.cues) {
			// Natural completion: no StopAll, the tail rings out.
			return
		}

		cue := s.cues[idx]
		wait := cue.At - s.now().Sub(start)
		if wait > 0 {
			if wait > 10*time.Millisecond {
				wait = 10 * time.Millisecond
			}
			time.Sleep(wait)
			continue
		}

		if nil != s.engine {
			s.engine.NoteOn(cue.Pitch, cue.Velocity)
		}
		s.mu.Lock()
		s.idx++
		s.mu.Unlock()
	}
}
