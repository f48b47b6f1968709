// Package puzzlegen turns a (skill, difficulty, count) request into validated
// puzzle items using an LLM provider behind a shared rate limiter.
package puzzlegen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/abhisek/catprep/internal/llm"
	"github.com/abhisek/catprep/internal/puzzle"
	"github.com/abhisek/catprep/internal/ratelimit"
)

// Purpose labels generation requests in the LLM event log.
const Purpose = "puzzle-gen"

// Generator produces batches of puzzle items.
type Generator interface {
	// Generate returns between 1 and count valid items, in the order the
	// backend produced them, each with a fresh ID. Invalid elements are
	// dropped. Failures are returned as *Error.
	Generate(ctx context.Context, skill puzzle.SkillID, difficulty puzzle.Difficulty, count int) ([]puzzle.Item, error)
}

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	limiter  ratelimit.Limiter
	config   Config
	prompts  *Prompts
	logger   *slog.Logger
}

// Option configures an LLMGenerator.
type Option func(*LLMGenerator)

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *LLMGenerator) { g.logger = l }
}

// WithPrompts replaces the embedded prompt catalog.
func WithPrompts(p *Prompts) Option {
	return func(g *LLMGenerator) { g.prompts = p }
}

// New creates an LLMGenerator. Every request first passes through limiter,
// which should be the process-wide instance. A nil limiter disables
// throttling.
func New(provider llm.Provider, limiter ratelimit.Limiter, cfg Config, opts ...Option) (*LLMGenerator, error) {
	g := &LLMGenerator{
		provider: provider,
		limiter:  limiter,
		config:   cfg,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, fn := range opts {
		fn(g)
	}
	if g.prompts == nil {
		p, err := DefaultPrompts()
		if err != nil {
			return nil, err
		}
		g.prompts = p
	}
	return g, nil
}

// Generate implements Generator.
func (g *LLMGenerator) Generate(ctx context.Context, skillID puzzle.SkillID, difficulty puzzle.Difficulty, count int) ([]puzzle.Item, error) {
	skill, err := puzzle.GetSkill(skillID)
	if err != nil {
		return nil, newError(ClassGeneric, err)
	}
	if count < 1 {
		return nil, newError(ClassGeneric, fmt.Errorf("count must be positive, got %d", count))
	}

	userMsg, err := g.prompts.Build(skill, difficulty, count)
	if err != nil {
		return nil, newError(ClassGeneric, err)
	}

	if g.limiter != nil {
		if err := g.limiter.Acquire(ctx); err != nil {
			return nil, newError(ClassGeneric, fmt.Errorf("rate limiter: %w", err))
		}
	}

	ctx = llm.WithSkill(llm.WithPurpose(ctx, Purpose), string(skill.ID))
	resp, err := g.provider.Generate(ctx, llm.Request{
		System: g.prompts.System(),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		JSON:        g.config.JSON,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, classify(err)
	}

	elems, err := parseArray(string(resp.Content))
	if err != nil {
		g.logger.Warn("unparseable generation response",
			"skill", skillID,
			"error", err,
			"stop_reason", resp.StopReason,
		)
		return nil, newError(ClassMalformed, err)
	}

	items := g.collect(skill, difficulty, elems)
	if len(items) == 0 {
		return nil, newError(ClassNoItems, fmt.Errorf("none of %d elements were valid", len(elems)))
	}

	g.logger.Info("generated puzzles",
		"skill", skillID,
		"difficulty", difficulty,
		"requested", count,
		"received", len(elems),
		"valid", len(items),
	)
	return items, nil
}

// collect validates every element, keeping the valid ones in order.
func (g *LLMGenerator) collect(skill puzzle.Skill, difficulty puzzle.Difficulty, elems []json.RawMessage) []puzzle.Item {
	items := make([]puzzle.Item, 0, len(elems))
	for i, raw := range elems {
		item, err := g.check(skill.Kind, raw)
		if err != nil {
			g.logger.Debug("dropping invalid puzzle",
				"skill", skill.ID,
				"index", i,
				"error", err,
			)
			continue
		}

		c := commonOf(item)
		c.ID = puzzle.NewID(skill.IDPrefix())
		c.Skill = skill.ID
		c.Difficulty = difficulty
		items = append(items, item)
	}
	return items
}

func (g *LLMGenerator) check(kind puzzle.Kind, raw json.RawMessage) (puzzle.Item, error) {
	if err := validateSchema(kind, raw); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	item, err := decodeItem(kind, raw)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	for _, v := range g.config.Validators {
		if verr := v.Validate(item); verr != nil {
			return nil, verr
		}
	}
	return item, nil
}

// classify maps provider failures to generation error classes.
func classify(err error) *Error {
	var rl *llm.ErrRateLimit
	var auth *llm.ErrAuth
	switch {
	case errors.As(err, &rl):
		return newError(ClassQuota, err)
	case errors.As(err, &auth):
		return newError(ClassAuth, err)
	default:
		return newError(ClassGeneric, err)
	}
}
