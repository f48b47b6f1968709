package mastery

import (
	"testing"

	"github.com/abhisek/catprep/internal/puzzle"
)

func TestAdaptivePolicy(t *testing.T) {
	tests := []struct {
		name string
		r    Record
		want puzzle.Difficulty
	}{
		{"unpractised", Record{}, puzzle.DifficultyEasy},
		{"strong with streak", Record{Attempted: 10, Correct: 8, CurrentStreak: 3}, puzzle.DifficultyHard},
		{"strong without streak", Record{Attempted: 10, Correct: 9, CurrentStreak: 2}, puzzle.DifficultyMedium},
		{"fair", Record{Attempted: 10, Correct: 6, CurrentStreak: 5}, puzzle.DifficultyMedium},
		{"weak", Record{Attempted: 10, Correct: 5, CurrentStreak: 1}, puzzle.DifficultyEasy},
		{"just under fair", Record{Attempted: 5, Correct: 2}, puzzle.DifficultyEasy},
	}
	p := AdaptivePolicy{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Difficulty(tt.r); got != tt.want {
				t.Errorf("Difficulty(%+v) = %s, want %s", tt.r, got, tt.want)
			}
		})
	}
}

func TestFixedPolicy(t *testing.T) {
	p := FixedPolicy{Tier: puzzle.DifficultyHard}
	if got := p.Difficulty(Record{}); got != puzzle.DifficultyHard {
		t.Errorf("Difficulty = %s, want hard", got)
	}
	if p.Name() != "hard" {
		t.Errorf("Name = %q", p.Name())
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "hard", false},
		{"adaptive", "adaptive", false},
		{" Hard ", "hard", false},
		{"easy", "easy", false},
		{"extreme", "", true},
	}
	for _, tt := range tests {
		p, err := ParsePolicy(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParsePolicy(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePolicy(%q): %v", tt.in, err)
			continue
		}
		if p.Name() != tt.want {
			t.Errorf("ParsePolicy(%q).Name() = %q, want %q", tt.in, p.Name(), tt.want)
		}
	}
}

func TestPolicyFromEnv(t *testing.T) {
	t.Setenv("CATPREP_DIFFICULTY_POLICY", "medium")
	p, err := PolicyFromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Difficulty(Record{}); got != puzzle.DifficultyMedium {
		t.Errorf("Difficulty = %s, want medium", got)
	}

	t.Setenv("CATPREP_DIFFICULTY_POLICY", "")
	p, err = PolicyFromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Difficulty(Record{Attempted: 10, Correct: 1}); got != puzzle.DifficultyHard {
		t.Errorf("default Difficulty = %s, want hard", got)
	}

	t.Setenv("CATPREP_DIFFICULTY_POLICY", "adaptive")
	p, err = PolicyFromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := p.(AdaptivePolicy); !ok {
		t.Errorf("expected AdaptivePolicy, got %T", p)
	}
}
