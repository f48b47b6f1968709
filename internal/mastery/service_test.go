package mastery

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/abhisek/catprep/internal/puzzle"
	"github.com/abhisek/catprep/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "mastery.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestService_InMemory(t *testing.T) {
	svc := NewService(nil)
	ctx := context.Background()

	if err := svc.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if r := svc.Get(puzzle.SkillNumberSeries); r.Attempted != 0 || r.SkillID != puzzle.SkillNumberSeries {
		t.Errorf("unexpected fresh record: %+v", r)
	}

	r, err := svc.RecordAnswer(ctx, puzzle.SkillNumberSeries, puzzle.DifficultyMedium, true)
	if err != nil {
		t.Fatal(err)
	}
	if r.Attempted != 1 || r.Correct != 1 || r.LastDifficulty != puzzle.DifficultyMedium {
		t.Errorf("unexpected record: %+v", r)
	}
	if got := svc.Get(puzzle.SkillNumberSeries); got != r {
		t.Errorf("Get = %+v, want %+v", got, r)
	}
}

func TestService_PersistsAndReloads(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	svc := NewService(s.MasteryRepo())
	for _, correct := range []bool{true, true, true, true} {
		if _, err := svc.RecordAnswer(ctx, puzzle.SkillFigureMatrices, puzzle.DifficultyEasy, correct); err != nil {
			t.Fatal(err)
		}
	}

	reloaded := NewService(s.MasteryRepo())
	if err := reloaded.Load(ctx); err != nil {
		t.Fatal(err)
	}
	r := reloaded.Get(puzzle.SkillFigureMatrices)
	if r.Attempted != 4 || r.Correct != 4 || r.CurrentStreak != 4 || r.BestStreak != 4 {
		t.Errorf("unexpected reloaded record: %+v", r)
	}
	if r.LastDifficulty != puzzle.DifficultyEasy {
		t.Errorf("LastDifficulty = %q", r.LastDifficulty)
	}
	if got := reloaded.Recommend(AdaptivePolicy{}, puzzle.SkillFigureMatrices); got != puzzle.DifficultyHard {
		t.Errorf("Recommend = %s, want hard", got)
	}
}

func TestService_All(t *testing.T) {
	svc := NewService(nil)
	if _, err := svc.RecordAnswer(context.Background(), puzzle.SkillVerbalAnalogies, puzzle.DifficultyEasy, false); err != nil {
		t.Fatal(err)
	}

	all := svc.All()
	if len(all) != len(puzzle.AllSkills()) {
		t.Fatalf("expected %d records, got %d", len(puzzle.AllSkills()), len(all))
	}
	for i, sk := range puzzle.AllSkills() {
		if all[i].SkillID != sk.ID {
			t.Errorf("record %d is %s, want %s", i, all[i].SkillID, sk.ID)
		}
		if sk.ID == puzzle.SkillVerbalAnalogies && all[i].Attempted != 1 {
			t.Errorf("verbal analogies attempted = %d", all[i].Attempted)
		}
	}
}

type failingRepo struct {
	store.MasteryRepo
}

func (failingRepo) Put(context.Context, store.MasteryRecord) error {
	return errors.New("disk full")
}

func TestService_RecordAnswerKeepsMemoryOnWriteFailure(t *testing.T) {
	svc := NewService(failingRepo{})

	r, err := svc.RecordAnswer(context.Background(), puzzle.SkillNumberSeries, puzzle.DifficultyHard, true)
	if err == nil {
		t.Fatal("expected write error")
	}
	if r.Attempted != 1 {
		t.Errorf("returned record not updated: %+v", r)
	}
	if got := svc.Get(puzzle.SkillNumberSeries); got.Attempted != 1 {
		t.Errorf("in-memory record not updated: %+v", got)
	}
}
