package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMasteryRepo_GetMissingReturnsZero(t *testing.T) {
	s := openTestStore(t)

	rec, err := s.MasteryRepo().Get(context.Background(), "figure-matrices")
	require.NoError(t, err)
	assert.Equal(t, MasteryRecord{SkillID: "figure-matrices"}, rec)
}

func TestMasteryRepo_PutOverwrites(t *testing.T) {
	s := openTestStore(t)
	repo := s.MasteryRepo()
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Put(ctx, MasteryRecord{
		SkillID: "number-series", Attempted: 4, Correct: 3, CurrentStreak: 2,
		BestStreak: 2, LastDifficulty: "easy", UpdatedAt: at,
	}))
	require.NoError(t, repo.Put(ctx, MasteryRecord{
		SkillID: "number-series", Attempted: 5, Correct: 4, CurrentStreak: 3,
		BestStreak: 3, LastDifficulty: "medium", UpdatedAt: at.Add(time.Minute),
	}))

	rec, err := repo.Get(ctx, "number-series")
	require.NoError(t, err)
	assert.Equal(t, 5, rec.Attempted)
	assert.Equal(t, 4, rec.Correct)
	assert.Equal(t, 3, rec.BestStreak)
	assert.Equal(t, "medium", rec.LastDifficulty)
	assert.True(t, rec.UpdatedAt.Equal(at.Add(time.Minute)))
}

func TestMasteryRepo_AllSorted(t *testing.T) {
	s := openTestStore(t)
	repo := s.MasteryRepo()
	ctx := context.Background()

	for _, id := range []string{"verbal-analogies", "figure-analysis", "number-series"} {
		require.NoError(t, repo.Put(ctx, MasteryRecord{SkillID: id, Attempted: 1}))
	}

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "figure-analysis", all[0].SkillID)
	assert.Equal(t, "number-series", all[1].SkillID)
	assert.Equal(t, "verbal-analogies", all[2].SkillID)
}
