package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/catprep/internal/puzzle"
	"github.com/abhisek/catprep/internal/puzzlegen"
	"github.com/spf13/cobra"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List practicable skills grouped by battery",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		var batteries []puzzle.Battery
		seen := make(map[puzzle.Battery]bool)
		for _, s := range puzzle.AllSkills() {
			if !seen[s.Battery] {
				seen[s.Battery] = true
				batteries = append(batteries, s.Battery)
			}
		}

		for i, b := range batteries {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, b)
			fmt.Fprintln(out, strings.Repeat("─", 72))
			fmt.Fprintf(out, "%-24s  %-24s  %4s  %9s  %6s  %7s\n",
				"ID", "Name", "Part", "Questions", "Time", "Per Q")
			for _, s := range puzzle.ByBattery(b) {
				fmt.Fprintf(out, "%-24s  %-24s  %4d  %9d  %5dm  %6ds\n",
					s.ID, s.Name, s.Part, s.QuestionCount, s.TimeMinutes, s.SecondsPerQuestion)
			}
		}

		showVocab, _ := cmd.Flags().GetBool("vocabulary")
		if !showVocab {
			return nil
		}

		prompts, err := puzzlegen.DefaultPrompts()
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Verbal Analogies word list")
		for _, g := range prompts.Vocabulary() {
			fmt.Fprintln(out, strings.Repeat("─", 72))
			fmt.Fprintln(out, g.Name)
			for _, w := range g.Words {
				fmt.Fprintf(out, "  %-16s  %s\n", w.Word, w.Meaning)
			}
		}
		return nil
	},
}

func init() {
	skillsCmd.Flags().Bool("vocabulary", false, "Also print the word list used for verbal analogies")
}
