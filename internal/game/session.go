package game

import "time"

// Phase is the rhythm engine's lifecycle state. Linear, no cycles other than
// a full reset back to SelectDifficulty.
type Phase uint8

const (
	SelectDifficulty Phase = iota
	Countdown
	Playing
	Done
)

func (p Phase) String() string {
	switch p {
	case SelectDifficulty:
		return "select"
	case Countdown:
		return "countdown"
	case Playing:
		return "playing"
	case Done:
		return "done"
	}
	return "unknown"
}

// Session owns one chart and the score accumulated against it. It is created
// on mode entry, rebuilt whenever the difficulty changes, and discarded on
// mode exit or restart.
type Session struct {
	Notes      []*Note
	Difficulty Difficulty
	Phase      Phase
	Score      int
	MaxScore   int
}

func NewSession(notes []*Note, difficulty Difficulty) *Session {
	return &Session{
		Notes:      notes,
		Difficulty: difficulty,
		Phase:      SelectDifficulty,
		MaxScore:   len(notes) * 2,
	}
}

// AllJudged reports whether every note has been judged as a hit or miss.
func (s *Session) AllJudged() bool {
	for _, n := range s.Notes {
		if !n.Judged {
			return false
		}
	}
	return true
}

// LastNoteTime is the time of the final chart note, or zero for an empty chart.
func (s *Session) LastNoteTime() time.Duration {
	if len(s.Notes) == 0 {
		return 0
	}
	return s.Notes[len(s.Notes)-1].Time
}
