package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhisek/catprep/internal/app"
	"github.com/abhisek/catprep/internal/buffer"
	"github.com/abhisek/catprep/internal/llm"
	"github.com/abhisek/catprep/internal/mastery"
	"github.com/abhisek/catprep/internal/puzzle"
	"github.com/abhisek/catprep/internal/puzzlegen"
	"github.com/abhisek/catprep/internal/ratelimit"
	"github.com/abhisek/catprep/internal/screens/practice"
	"github.com/abhisek/catprep/internal/store"
	"github.com/spf13/cobra"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Start a practice session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPractice(cmd)
	},
}

func init() {
	addPracticeFlags(practiceCmd)
}

func addPracticeFlags(c *cobra.Command) {
	c.Flags().String("skill", "", "Open this skill directly instead of the menu")
	c.Flags().String("difficulty", "", "Pin the difficulty: easy, medium or hard (default from CATPREP_DIFFICULTY_POLICY, else hard)")
}

// pipeline holds everything built from the environment for one command run.
type pipeline struct {
	store     *store.Store
	generator *puzzlegen.LLMGenerator
	logger    *slog.Logger
	closers   []func() error
}

func (p *pipeline) Close() error {
	var errs []error
	for i := len(p.closers) - 1; i >= 0; i-- {
		errs = append(errs, p.closers[i]())
	}
	return errors.Join(errs...)
}

// buildPipeline opens the store and wires provider, limiter and generator.
func buildPipeline(cmd *cobra.Command) (*pipeline, error) {
	ctx := cmd.Context()
	p := &pipeline{}

	logger, closeLog, err := openLogger(cmd)
	if err != nil {
		return nil, err
	}
	p.logger = logger
	p.closers = append(p.closers, closeLog)

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	p.store = st
	p.closers = append(p.closers, st.Close)

	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("LLM provider not configured: %w", err)
	}

	limiter, closeLimiter, err := ratelimit.New(ctx, ratelimit.ConfigFromEnv(),
		ratelimit.WithLogger(logger.With("component", "ratelimit")))
	if err != nil {
		p.Close()
		return nil, err
	}
	p.closers = append(p.closers, closeLimiter)

	gen, err := puzzlegen.New(provider, limiter, puzzlegen.DefaultConfig(),
		puzzlegen.WithLogger(logger.With("component", "puzzlegen")))
	if err != nil {
		p.Close()
		return nil, err
	}
	p.generator = gen

	logger.Info("pipeline ready", "db", dbPath, "model", provider.ModelID())
	return p, nil
}

func runPractice(cmd *cobra.Command) error {
	skillVal, _ := cmd.Flags().GetString("skill")
	diffVal, _ := cmd.Flags().GetString("difficulty")

	opts := app.Options{Skill: puzzle.SkillID(skillVal)}
	if skillVal != "" {
		if _, err := puzzle.GetSkill(opts.Skill); err != nil {
			return err
		}
	}

	policy, err := mastery.PolicyFromEnv()
	if err != nil {
		return err
	}
	if diffVal != "" {
		d, err := puzzle.ParseDifficulty(diffVal)
		if err != nil {
			return err
		}
		policy = mastery.FixedPolicy{Tier: d}
		opts.Difficulty = d
	}

	p, err := buildPipeline(cmd)
	if err != nil {
		return err
	}
	defer p.Close()

	svc := mastery.NewService(p.store.MasteryRepo())
	if err := svc.Load(cmd.Context()); err != nil {
		return fmt.Errorf("load mastery: %w", err)
	}

	return app.Run(practice.Deps{
		Generator: p.generator,
		Mastery:   svc,
		Policy:    policy,
		EventRepo: p.store.EventRepo(),
		Buffer:    buffer.DefaultConfig(),
		Logger:    p.logger,
	}, opts)
}
