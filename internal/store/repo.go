package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int    // max results (0 = unlimited)
	Purpose   string // exact purpose match (empty = any)
	SessionID string // session id prefix (empty = any)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	Skill        string
	SessionID    string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM usage for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// AnswerEventData records one answered puzzle.
type AnswerEventData struct {
	SessionID  string
	SkillID    string
	ItemID     string
	Difficulty string
	Chosen     int
	Correct    bool
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns a single event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	// AppendAnswer records an answered puzzle.
	AppendAnswer(ctx context.Context, data AnswerEventData) error

	// CountAnswers returns how many answers a session recorded.
	CountAnswers(ctx context.Context, sessionID string) (int, error)
}

// MasteryRecord is the persisted per-skill progress summary.
type MasteryRecord struct {
	SkillID        string
	Attempted      int
	Correct        int
	CurrentStreak  int
	BestStreak     int
	LastDifficulty string
	UpdatedAt      time.Time
}

// MasteryRepo stores one MasteryRecord per skill.
type MasteryRepo interface {
	// Get returns the record for skillID, or a zero record (with SkillID
	// set) when none has been stored.
	Get(ctx context.Context, skillID string) (MasteryRecord, error)

	// Put inserts or replaces the record.
	Put(ctx context.Context, rec MasteryRecord) error

	// All returns every stored record ordered by skill ID.
	All(ctx context.Context) ([]MasteryRecord, error)
}
