// Package progress implements the per-skill mastery overview.
package progress

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/catprep/internal/mastery"
	"github.com/abhisek/catprep/internal/puzzle"
	"github.com/abhisek/catprep/internal/screen"
	"github.com/abhisek/catprep/internal/ui/components"
	"github.com/abhisek/catprep/internal/ui/theme"
)

// ProgressScreen shows accuracy, streaks and the next difficulty for
// every skill, grouped by battery.
type ProgressScreen struct {
	svc    *mastery.Service
	policy mastery.Policy
}

var _ screen.Screen = (*ProgressScreen)(nil)

// New creates a ProgressScreen.
func New(svc *mastery.Service, policy mastery.Policy) *ProgressScreen {
	if policy == nil {
		policy = mastery.DefaultPolicy()
	}
	return &ProgressScreen{svc: svc, policy: policy}
}

func (p *ProgressScreen) Init() tea.Cmd                           { return nil }
func (p *ProgressScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return p, nil }
func (p *ProgressScreen) Title() string                           { return "Progress" }

func (p *ProgressScreen) View(width, height int) string {
	barWidth := min(max(width-60, 20), 40)

	var b strings.Builder
	var battery puzzle.Battery
	for _, sk := range puzzle.AllSkills() {
		if sk.Battery != battery {
			battery = sk.Battery
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
				Render("  " + string(battery)))
			b.WriteString("\n")
		}

		rec := p.svc.Get(sk.ID)
		bar := components.NewProgressBar("", rec.Accuracy(), true, barWidth)
		bar.Target = mastery.TargetAccuracy

		name := fmt.Sprintf("    %-24s", sk.Name)
		detail := fmt.Sprintf("  %3d answered  best streak %2d  next: %s",
			rec.Attempted, rec.BestStreak, p.policy.Difficulty(rec))

		b.WriteString(theme.Body.Render(name))
		b.WriteString(bar.View())
		b.WriteString(theme.Dimmed.Render(detail))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("  Target accuracy %d%%. Difficulty policy: %s.",
		mastery.TargetAccuracy, p.policy.Name())))
	return b.String()
}
