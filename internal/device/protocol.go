// Package device carries the line-oriented serial protocol spoken between
// the host and the remote display, plus the host-side client. Lines are
// ASCII, newline-terminated, parsed once at the boundary into a closed
// Command type so everything downstream switches on Kind instead of
// re-matching strings.
package device

import (
	"fmt"
	"strings"

	"github.com/keyfall/keyfall/internal/game"
)

type Kind uint8

const (
	KindUnknown Kind = iota
	KindMode
	KindLevel
	KindCountdown
	KindCountdownDone
	KindIngame
	KindChallengeFail
	KindChallengeSuccess
	KindUserScoreLabel
	KindUserScore
	KindBestScoreLabel
	KindBestScore
	KindBestScoreDone
	KindBackToTitle
	KindLedClear
)

type Mode uint8

const (
	ModeMenu Mode = iota
	ModePiano
	ModeRhythm
	ModeSong
)

func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModePiano:
		return "piano"
	case ModeRhythm:
		return "rhythm"
	case ModeSong:
		return "song"
	}
	return "menu"
}

func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(s) {
	case "menu":
		return ModeMenu, true
	case "piano":
		return ModePiano, true
	case "rhythm":
		return ModeRhythm, true
	case "song":
		return ModeSong, true
	}
	return ModeMenu, false
}

// Command is one parsed protocol line. Only the fields relevant to Kind are
// meaningful.
type Command struct {
	Kind  Kind
	Mode  Mode            // KindMode
	Level game.Difficulty // KindLevel
	Score int             // KindUserScore / KindBestScore
	Max   int
}

// Urgent commands are applied by the remote display immediately, bypassing
// any active lock window. Everything else queues while a lock holds.
func (c Command) Urgent() bool {
	switch c.Kind {
	case KindLedClear, KindMode, KindLevel, KindCountdown:
		return true
	}
	return false
}

// Format renders the command as its wire line, without the terminator.
func Format(c Command) string {
	switch c.Kind {
	case KindMode:
		return "MODE:" + c.Mode.String()
	case KindLevel:
		return "RHYTHM:LEVEL:" + c.Level.String()
	case KindCountdown:
		return "RHYTHM:COUNTDOWN"
	case KindCountdownDone:
		return "RHYTHM:COUNTDOWN_DONE"
	case KindIngame:
		return "RHYTHM:INGAME"
	case KindChallengeFail:
		return "RHYTHM:CHALLENGE_FAIL"
	case KindChallengeSuccess:
		return "RHYTHM:CHALLENGE_SUCCESS"
	case KindUserScoreLabel:
		return "RHYTHM:USER_SCORE_LABEL"
	case KindUserScore:
		return fmt.Sprintf("RHYTHM:USER_SCORE:%v/%v", c.Score, c.Max)
	case KindBestScoreLabel:
		return "RHYTHM:BEST_SCORE_LABEL"
	case KindBestScore:
		return fmt.Sprintf("RHYTHM:BEST_SCORE:%v/%v", c.Score, c.Max)
	case KindBestScoreDone:
		return "RHYTHM:BEST_SCORE_DONE"
	case KindBackToTitle:
		return "RHYTHM:BACK_TO_TITLE"
	case KindLedClear:
		return "LED:CLEAR"
	}
	return ""
}

// ParseLine parses one complete line. An unrecognised or malformed line
// returns an error; callers log it and carry on with state unchanged.
func ParseLine(line string) (Command, error) {
	text := strings.TrimSpace(line)
	up := strings.ToUpper(text)

	switch up {
	case "LED:CLEAR":
		return Command{Kind: KindLedClear}, nil
	case "RHYTHM:COUNTDOWN":
		return Command{Kind: KindCountdown}, nil
	case "RHYTHM:COUNTDOWN_DONE":
		return Command{Kind: KindCountdownDone}, nil
	case "RHYTHM:INGAME":
		return Command{Kind: KindIngame}, nil
	case "RHYTHM:CHALLENGE_FAIL":
		return Command{Kind: KindChallengeFail}, nil
	case "RHYTHM:CHALLENGE_SUCCESS":
		return Command{Kind: KindChallengeSuccess}, nil
	case "RHYTHM:USER_SCORE_LABEL":
		return Command{Kind: KindUserScoreLabel}, nil
	case "RHYTHM:BEST_SCORE_LABEL":
		return Command{Kind: KindBestScoreLabel}, nil
	case "RHYTHM:BEST_SCORE_DONE":
		return Command{Kind: KindBestScoreDone}, nil
	case "RHYTHM:BACK_TO_TITLE":
		return Command{Kind: KindBackToTitle}, nil
	}

	if rest, ok := cutPrefix(up, "MODE:"); ok {
		mode, ok := ParseMode(rest)
		if !ok {
			return Command{}, fmt.Errorf("unknown mode %q", rest)
		}
		return Command{Kind: KindMode, Mode: mode}, nil
	}
	if rest, ok := cutPrefix(up, "RHYTHM:LEVEL:"); ok {
		level, ok := game.ParseDifficulty(strings.ToLower(rest))
		if !ok {
			return Command{}, fmt.Errorf("unknown level %q", rest)
		}
		return Command{Kind: KindLevel, Level: level}, nil
	}
	if rest, ok := cutPrefix(up, "RHYTHM:USER_SCORE:"); ok {
		score, max, err := parseScore(rest)
		if nil != err {
			return Command{}, err
		}
		return Command{Kind: KindUserScore, Score: score, Max: max}, nil
	}
	if rest, ok := cutPrefix(up, "RHYTHM:BEST_SCORE:"); ok {
		score, max, err := parseScore(rest)
		if nil != err {
			return Command{}, err
		}
		return Command{Kind: KindBestScore, Score: score, Max: max}, nil
	}

	return Command{}, fmt.Errorf("unknown command %q", text)
}

func cutPrefix(s, prefix string) (string, bool) {
	if strings.HasPrefix(s, prefix) {
		return s[len(prefix):], true
	}
	return s, false
}

func parseScore(s string) (int, int, error) {
	var score, max int
	if _, err := fmt.Sscanf(s, "%d/%d", &score, &max); nil != err {
		return 0, 0, fmt.Errorf("malformed score %q: %w", s, err)
	}
	return score, max, nil
}
