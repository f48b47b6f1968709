// Package mastery tracks per-skill practice results and maps them to a
// difficulty tier for the next session.
package mastery

import (
	"math"

	"github.com/abhisek/catprep/internal/puzzle"
)

// TargetAccuracy is the accuracy percentage a skill is considered
// exam-ready at.
const TargetAccuracy = 80

// Record is a learner's running result for one skill.
type Record struct {
	SkillID        puzzle.SkillID
	Attempted      int
	Correct        int
	CurrentStreak  int
	BestStreak     int
	LastDifficulty puzzle.Difficulty
}

// Apply returns r updated with one answer.
func (r Record) Apply(correct bool) Record {
	r.Attempted++
	if correct {
		r.Correct++
		r.CurrentStreak++
		if r.CurrentStreak > r.BestStreak {
			r.BestStreak = r.CurrentStreak
		}
	} else {
		r.CurrentStreak = 0
	}
	return r
}

// Accuracy returns the rounded percentage of correct answers, or 0 when
// nothing has been attempted.
func (r Record) Accuracy() int {
	if r.Attempted == 0 {
		return 0
	}
	return int(math.Round(float64(r.Correct) / float64(r.Attempted) * 100))
}

// Band classifies an accuracy percentage for display.
type Band string

const (
	BandNone   Band = "none"
	BandWeak   Band = "weak"
	BandFair   Band = "fair"
	BandStrong Band = "strong"
)

// ResolveBand maps r to its display band.
func ResolveBand(r Record) Band {
	if r.Attempted == 0 {
		return BandNone
	}
	switch acc := r.Accuracy(); {
	case acc >= TargetAccuracy:
		return BandStrong
	case acc >= 60:
		return BandFair
	default:
		return BandWeak
	}
}
