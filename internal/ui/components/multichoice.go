package components

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/catprep/internal/ui/theme"
)

// ChoiceLabels are the letters shown next to options, in order.
var ChoiceLabels = []string{"A", "B", "C", "D", "E"}

// ChoiceKeyMap holds the bindings a MultiChoice responds to.
type ChoiceKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Submit key.Binding

	// Pick[i] answers option i directly.
	Pick []key.Binding
}

// DefaultChoiceKeys binds arrows/jk, enter, and the letters a-e.
func DefaultChoiceKeys() ChoiceKeyMap {
	km := ChoiceKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "answer")),
	}
	for _, l := range ChoiceLabels {
		lower := strings.ToLower(l)
		km.Pick = append(km.Pick, key.NewBinding(key.WithKeys(lower), key.WithHelp(lower, "pick "+l)))
	}
	return km
}

// MultiChoice is a multiple-choice selector component.
type MultiChoice struct {
	Options      []string
	CorrectIndex int
	Selected     int
	Submitted    bool
	ChosenIndex  int

	keys ChoiceKeyMap
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(options []string, correctIndex int) MultiChoice {
	return MultiChoice{
		Options:      options,
		CorrectIndex: correctIndex,
		ChosenIndex:  -1,
		keys:         DefaultChoiceKeys(),
	}
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(kmsg, m.keys.Up):
		if m.Selected > 0 {
			m.Selected--
		}
	case key.Matches(kmsg, m.keys.Down):
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case key.Matches(kmsg, m.keys.Submit):
		m.submit(m.Selected)
	default:
		for i, b := range m.keys.Pick {
			if i < len(m.Options) && key.Matches(kmsg, b) {
				m.Selected = i
				m.submit(i)
				break
			}
		}
	}

	return m, nil
}

func (m *MultiChoice) submit(i int) {
	m.Submitted = true
	m.ChosenIndex = i
}

// View renders the options, colouring the answer once submitted.
func (m MultiChoice) View() string {
	var b strings.Builder

	for i, opt := range m.Options {
		label := "?"
		if i < len(ChoiceLabels) {
			label = ChoiceLabels[i]
		}
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		var style lipgloss.Style
		switch {
		case m.Submitted && i == m.CorrectIndex:
			style = theme.Correct
		case m.Submitted && i == m.ChosenIndex:
			style = theme.Incorrect
		case m.Submitted:
			style = theme.Dimmed
		case i == m.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

// IsCorrect returns true if the user chose the correct answer.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.ChosenIndex == m.CorrectIndex
}
