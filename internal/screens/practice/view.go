package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/catprep/internal/buffer"
	"github.com/abhisek/catprep/internal/ui/theme"
)

func (s *PracticeScreen) View(width, height int) string {
	if s.initErr != nil {
		return renderCentered(width, theme.Incorrect.Render(s.initErr.Error()))
	}
	if s.showTricks {
		return s.renderTricks(width)
	}

	snap := s.buf.Snapshot()
	switch {
	case snap.Current != nil:
		return s.renderItem(snap, width)
	case snap.ErrorMessage != "":
		return renderCentered(width,
			theme.Incorrect.Render(snap.ErrorMessage)+"\n\n"+
				theme.Hint.Render("Press R to try again.")+"\n\n"+
				theme.Dimmed.Render("catprep llm list --session "+shortID(snap.SessionID)))
	default:
		return renderCentered(width, theme.Dimmed.Render(
			fmt.Sprintf("Generating %s %s questions...", snap.Difficulty, s.skill.Name)))
	}
}

func (s *PracticeScreen) renderItem(snap buffer.Snapshot, width int) string {
	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s · %s", s.skill.Battery, snap.Difficulty))

	status := fmt.Sprintf("Q %d", snap.Answered+1)
	if snap.LoadingNext {
		status += "  · loading more"
	}
	infoRight := theme.Dimmed.Render(status)

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	r := describe(snap.Current)
	for _, line := range r.stem {
		b.WriteString("  ")
		b.WriteString(theme.Body.Bold(true).Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(s.choice.View())

	if s.choice.Submitted {
		b.WriteString("\n")
		if s.choice.IsCorrect() {
			b.WriteString("  " + theme.Correct.Render("Correct!"))
		} else {
			b.WriteString("  " + theme.Incorrect.Render("Not quite."))
		}
		b.WriteString("\n\n")
		explanation := snap.Current.Info().Explanation
		if r.rule != "" {
			explanation = "Rule: " + r.rule + "\n" + explanation
		}
		b.WriteString(lipgloss.NewStyle().
			Width(max(width-6, 10)).
			PaddingLeft(2).
			Foreground(theme.TextDim).
			Render(explanation))
		b.WriteString("\n")
		if snap.ErrorMessage != "" && snap.Remaining <= 1 {
			b.WriteString("\n  " + theme.Incorrect.Render(snap.ErrorMessage))
		}
	}

	if s.saveErr != nil {
		b.WriteString("\n  " + theme.Hint.Render("Progress not saved: "+s.saveErr.Error()))
	}

	return b.String()
}

func (s *PracticeScreen) renderTricks(width int) string {
	var b strings.Builder
	b.WriteString("  " + theme.Title.Render(s.tricks.Title))
	b.WriteString("\n\n")
	body := lipgloss.NewStyle().
		Width(max(width-6, 10)).
		PaddingLeft(4).
		Foreground(theme.TextDim)
	for _, tr := range s.tricks.Tricks {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(tr.Title))
		b.WriteString("\n")
		b.WriteString(body.Render(tr.Description))
		b.WriteString("\n\n")
	}
	b.WriteString("  " + theme.Hint.Render("Press T to return to the question."))
	return b.String()
}

func renderCentered(width int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render("\n\n" + content)
}

// shortID is enough of a session id to select it with a prefix filter.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
