package puzzle

import "fmt"

// Difficulty is one of three ordered tiers controlling prompt complexity.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// AllDifficulties returns the tiers in ascending order.
func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// ParseDifficulty converts a string to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(s); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", s)
	}
}

// Guidance returns the one-line instruction given to the generator for d.
func (d Difficulty) Guidance() string {
	switch d {
	case DifficultyEasy:
		return "Simple, single-step reasoning. Common vocabulary/patterns. One clear rule."
	case DifficultyMedium:
		return "Two-step reasoning required. Less obvious patterns. Some distractors."
	case DifficultyHard:
		return "Multi-step reasoning. Subtle patterns. Strong distractors that test deep understanding."
	default:
		return ""
	}
}
