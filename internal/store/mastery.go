package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type masteryRepo struct {
	db *sql.DB
}

const masteryColumns = `skill_id, attempted, correct, current_streak, best_streak,
	last_difficulty, updated_at`

func scanMastery(row rowScanner) (MasteryRecord, error) {
	var (
		rec MasteryRecord
		ts  int64
	)
	err := row.Scan(&rec.SkillID, &rec.Attempted, &rec.Correct,
		&rec.CurrentStreak, &rec.BestStreak, &rec.LastDifficulty, &ts)
	if err != nil {
		return MasteryRecord{}, err
	}
	rec.UpdatedAt = time.UnixMilli(ts).UTC()
	return rec, nil
}

func (r *masteryRepo) Get(ctx context.Context, skillID string) (MasteryRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+masteryColumns+` FROM mastery WHERE skill_id = ?`, skillID)
	rec, err := scanMastery(row)
	if errors.Is(err, sql.ErrNoRows) {
		return MasteryRecord{SkillID: skillID}, nil
	}
	if err != nil {
		return MasteryRecord{}, fmt.Errorf("get mastery %s: %w", skillID, err)
	}
	return rec, nil
}

func (r *masteryRepo) Put(ctx context.Context, rec MasteryRecord) error {
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO mastery (`+masteryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(skill_id) DO UPDATE SET
			attempted = excluded.attempted,
			correct = excluded.correct,
			current_streak = excluded.current_streak,
			best_streak = excluded.best_streak,
			last_difficulty = excluded.last_difficulty,
			updated_at = excluded.updated_at`,
		rec.SkillID, rec.Attempted, rec.Correct, rec.CurrentStreak,
		rec.BestStreak, rec.LastDifficulty, rec.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save mastery %s: %w", rec.SkillID, err)
	}
	return nil
}

func (r *masteryRepo) All(ctx context.Context) ([]MasteryRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+masteryColumns+` FROM mastery ORDER BY skill_id`)
	if err != nil {
		return nil, fmt.Errorf("query mastery: %w", err)
	}
	defer rows.Close()

	var out []MasteryRecord
	for rows.Next() {
		rec, err := scanMastery(rows)
		if err != nil {
			return nil, fmt.Errorf("scan mastery: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
