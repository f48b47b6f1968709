package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/abhisek/catprep/internal/puzzle"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one batch of questions and print it as JSON",
	Long: `Generate a single batch of questions for a skill and print the valid items
as a JSON array. The request goes through the same rate limiter and validation
as practice sessions and is recorded in the LLM event log.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("skill", "", "Skill ID (required, see 'catprep skills')")
	generateCmd.Flags().String("difficulty", string(puzzle.DifficultyEasy), "Difficulty: easy, medium or hard")
	generateCmd.Flags().IntP("count", "n", 3, "Number of questions to request")
	_ = generateCmd.MarkFlagRequired("skill")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	skillVal, _ := cmd.Flags().GetString("skill")
	diffVal, _ := cmd.Flags().GetString("difficulty")
	count, _ := cmd.Flags().GetInt("count")

	skill, err := puzzle.GetSkill(puzzle.SkillID(skillVal))
	if err != nil {
		return err
	}
	difficulty, err := puzzle.ParseDifficulty(diffVal)
	if err != nil {
		return err
	}
	if count < 1 {
		return fmt.Errorf("--count must be at least 1, got %d", count)
	}

	p, err := buildPipeline(cmd)
	if err != nil {
		return err
	}
	defer p.Close()

	fmt.Fprintf(cmd.ErrOrStderr(), "Generating %d %s %s questions...\n", count, difficulty, skill.Name)
	items, err := p.generator.Generate(cmd.Context(), skill.ID, difficulty, count)
	if err != nil {
		return err
	}
	if len(items) < count {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d items passed validation.\n", len(items), count)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}
