package mastery

import (
	"context"
	"fmt"
	"sync"

	"github.com/abhisek/catprep/internal/puzzle"
	"github.com/abhisek/catprep/internal/store"
)

// Service holds mastery records in memory and writes changes through to
// the store when one is configured.
type Service struct {
	mu     sync.Mutex
	skills map[puzzle.SkillID]Record
	repo   store.MasteryRepo
}

// NewService creates a Service. A nil repo keeps records in memory only.
func NewService(repo store.MasteryRepo) *Service {
	return &Service{
		skills: make(map[puzzle.SkillID]Record),
		repo:   repo,
	}
}

// Load reads every stored record into memory.
func (s *Service) Load(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	recs, err := s.repo.All(ctx)
	if err != nil {
		return fmt.Errorf("load mastery: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range recs {
		r := fromStore(rec)
		s.skills[r.SkillID] = r
	}
	return nil
}

// Get returns the record for skill. Unseen skills get a zero record.
func (s *Service) Get(skill puzzle.SkillID) Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.skills[skill]; ok {
		return r
	}
	return Record{SkillID: skill}
}

// All returns one record per known skill, in catalog order.
func (s *Service) All() []Record {
	skills := puzzle.AllSkills()
	out := make([]Record, 0, len(skills))
	for _, sk := range skills {
		out = append(out, s.Get(sk.ID))
	}
	return out
}

// Recommend returns the difficulty p picks for skill.
func (s *Service) Recommend(p Policy, skill puzzle.SkillID) puzzle.Difficulty {
	return p.Difficulty(s.Get(skill))
}

// RecordAnswer applies one answer to skill and persists the result. The
// in-memory record is updated even if the write fails.
func (s *Service) RecordAnswer(ctx context.Context, skill puzzle.SkillID, d puzzle.Difficulty, correct bool) (Record, error) {
	s.mu.Lock()
	r, ok := s.skills[skill]
	if !ok {
		r = Record{SkillID: skill}
	}
	r = r.Apply(correct)
	r.LastDifficulty = d
	s.skills[skill] = r
	s.mu.Unlock()

	if s.repo == nil {
		return r, nil
	}
	if err := s.repo.Put(ctx, toStore(r)); err != nil {
		return r, err
	}
	return r, nil
}

func fromStore(rec store.MasteryRecord) Record {
	return Record{
		SkillID:        puzzle.SkillID(rec.SkillID),
		Attempted:      rec.Attempted,
		Correct:        rec.Correct,
		CurrentStreak:  rec.CurrentStreak,
		BestStreak:     rec.BestStreak,
		LastDifficulty: puzzle.Difficulty(rec.LastDifficulty),
	}
}

func toStore(r Record) store.MasteryRecord {
	return store.MasteryRecord{
		SkillID:        string(r.SkillID),
		Attempted:      r.Attempted,
		Correct:        r.Correct,
		CurrentStreak:  r.CurrentStreak,
		BestStreak:     r.BestStreak,
		LastDifficulty: string(r.LastDifficulty),
	}
}
