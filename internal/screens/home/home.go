// Package home implements the skill picker shown at startup.
package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/catprep/internal/mastery"
	"github.com/abhisek/catprep/internal/puzzle"
	"github.com/abhisek/catprep/internal/router"
	"github.com/abhisek/catprep/internal/screen"
	"github.com/abhisek/catprep/internal/screens/practice"
	"github.com/abhisek/catprep/internal/screens/progress"
	"github.com/abhisek/catprep/internal/ui/components"
	"github.com/abhisek/catprep/internal/ui/theme"
)

// HomeScreen lists the skills and links to the progress overview.
type HomeScreen struct {
	deps   practice.Deps
	skills []puzzle.Skill
	menu   components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen. difficulty, when set, pins every session to
// that tier.
func New(deps practice.Deps, difficulty puzzle.Difficulty) *HomeScreen {
	if deps.Mastery == nil {
		deps.Mastery = mastery.NewService(nil)
	}
	h := &HomeScreen{
		deps:   deps,
		skills: puzzle.AllSkills(),
	}

	var items []components.MenuItem
	for _, sk := range h.skills {
		items = append(items, components.MenuItem{
			Label: sk.Name,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: practice.New(deps, sk, difficulty)}
				}
			},
		})
	}
	items = append(items,
		components.MenuItem{Label: "Progress", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: progress.New(deps.Mastery, deps.Policy)}
			}
		}},
		components.MenuItem{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Practice"
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	h.refreshHints()

	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render("CAT4 Level F practice"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Pick a skill. Questions are generated as you go."))
	b.WriteString("\n\n")

	menu := h.menu.View()
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(lipgloss.NewStyle().Align(lipgloss.Left).Render(menu)))

	if sel := h.menu.Selected; sel < len(h.skills) {
		sk := h.skills[sel]
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Width(width).Render(fmt.Sprintf(
			"%s · Part %d · %d questions in %d minutes",
			sk.Battery, sk.Part, sk.QuestionCount, sk.TimeMinutes,
		)))
	}
	return b.String()
}

// refreshHints updates the accuracy shown next to each skill.
func (h *HomeScreen) refreshHints() {
	for i, sk := range h.skills {
		rec := h.deps.Mastery.Get(sk.ID)
		if rec.Attempted == 0 {
			h.menu.Items[i].Hint = "not started"
			continue
		}
		h.menu.Items[i].Hint = bandStyle(mastery.ResolveBand(rec)).
			Render(fmt.Sprintf("%3d%% of %d", rec.Accuracy(), rec.Attempted))
	}
}

func bandStyle(b mastery.Band) lipgloss.Style {
	switch b {
	case mastery.BandStrong:
		return theme.BandStrong
	case mastery.BandFair:
		return theme.BandFair
	default:
		return theme.BandWeak
	}
}
