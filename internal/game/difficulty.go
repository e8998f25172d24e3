package game

import "time"

// Difficulty selects how densely the compressed melody is charted.
type Difficulty uint8

const (
	Easy Difficulty = iota
	Medium
	Hard
)

var AllDifficulties = []Difficulty{Easy, Medium, Hard}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return "easy"
}

func ParseDifficulty(s string) (Difficulty, bool) {
	switch s {
	case "easy":
		return Easy, true
	case "medium":
		return Medium, true
	case "hard":
		return Hard, true
	}
	return Easy, false
}

// MinGap is the smallest spacing between charted notes. The chart builder
// drops notes that follow their predecessor closer than this, so easier
// difficulties see a thinner melody. Hard keeps the full clustered melody.
func (d Difficulty) MinGap() time.Duration {
	switch d {
	case Easy:
		return 400 * time.Millisecond
	case Medium:
		return 200 * time.Millisecond
	}
	return 0
}
