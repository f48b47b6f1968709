package mastery

import (
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/catprep/internal/puzzle"
)

// Policy picks the difficulty for a new practice session.
type Policy interface {
	Name() string
	Difficulty(r Record) puzzle.Difficulty
}

// AdaptivePolicy steps difficulty with accuracy and streak.
type AdaptivePolicy struct{}

func (AdaptivePolicy) Name() string { return "adaptive" }

// Difficulty returns easy for an unpractised skill, hard once accuracy is
// at least 80% with a streak of 3 or more, medium from 60% accuracy, and
// easy otherwise.
func (AdaptivePolicy) Difficulty(r Record) puzzle.Difficulty {
	if r.Attempted == 0 {
		return puzzle.DifficultyEasy
	}
	pct := float64(r.Correct) / float64(r.Attempted) * 100
	switch {
	case pct >= 80 && r.CurrentStreak >= 3:
		return puzzle.DifficultyHard
	case pct >= 60:
		return puzzle.DifficultyMedium
	default:
		return puzzle.DifficultyEasy
	}
}

// FixedPolicy always returns the same tier.
type FixedPolicy struct {
	Tier puzzle.Difficulty
}

func (p FixedPolicy) Name() string { return string(p.Tier) }

func (p FixedPolicy) Difficulty(Record) puzzle.Difficulty { return p.Tier }

// DefaultPolicy pins every session to hard. Adaptive selection is opt-in
// until its thresholds are confirmed.
func DefaultPolicy() Policy {
	return FixedPolicy{Tier: puzzle.DifficultyHard}
}

// ParsePolicy converts "adaptive" or a difficulty name to a Policy. An
// empty string selects DefaultPolicy.
func ParsePolicy(s string) (Policy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return DefaultPolicy(), nil
	case "adaptive":
		return AdaptivePolicy{}, nil
	}
	d, err := puzzle.ParseDifficulty(s)
	if err != nil {
		return nil, fmt.Errorf("difficulty policy: %w", err)
	}
	return FixedPolicy{Tier: d}, nil
}

// PolicyFromEnv reads CATPREP_DIFFICULTY_POLICY.
func PolicyFromEnv() (Policy, error) {
	return ParsePolicy(os.Getenv("CATPREP_DIFFICULTY_POLICY"))
}
