// Package practice implements the screen where the learner answers
// generated puzzles for one skill.
package practice

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/catprep/internal/buffer"
	"github.com/abhisek/catprep/internal/mastery"
	"github.com/abhisek/catprep/internal/puzzle"
	"github.com/abhisek/catprep/internal/puzzlegen"
	"github.com/abhisek/catprep/internal/screen"
	"github.com/abhisek/catprep/internal/store"
	"github.com/abhisek/catprep/internal/ui/components"
	"github.com/abhisek/catprep/internal/ui/layout"
)

// Deps are the services a practice screen uses.
type Deps struct {
	Generator puzzlegen.Generator
	Mastery   *mastery.Service
	Policy    mastery.Policy

	// EventRepo records answers. Optional.
	EventRepo store.EventRepo
	Buffer    buffer.Config
	Logger    *slog.Logger
}

type keyMap struct {
	Next   key.Binding
	Retry  key.Binding
	Easy   key.Binding
	Medium key.Binding
	Hard   key.Binding
	Tricks key.Binding
}

var keys = keyMap{
	Next:   key.NewBinding(key.WithKeys("enter", "space", "n"), key.WithHelp("enter", "next")),
	Retry:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
	Easy:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "easy")),
	Medium: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "medium")),
	Hard:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "hard")),
	Tricks: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tricks")),
}

// PracticeScreen shows one buffered puzzle at a time.
type PracticeScreen struct {
	deps       Deps
	skill      puzzle.Skill
	difficulty puzzle.Difficulty
	buf        *buffer.Buffer
	initErr    error

	// shownID is the item the choice component was built for.
	shownID string
	choice  components.MultiChoice

	correct int
	total   int
	streak  int
	saveErr error

	started time.Time
	elapsed time.Duration

	tricks     puzzlegen.TrickSheet
	showTricks bool
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.StatusProvider = (*PracticeScreen)(nil)
var _ screen.Disposer = (*PracticeScreen)(nil)

// New creates a practice screen for skill. A non-empty difficulty
// overrides the policy.
func New(deps Deps, skill puzzle.Skill, difficulty puzzle.Difficulty) *PracticeScreen {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if deps.Mastery == nil {
		deps.Mastery = mastery.NewService(nil)
	}
	if deps.Policy == nil {
		deps.Policy = mastery.DefaultPolicy()
	}
	if deps.Buffer == (buffer.Config{}) {
		deps.Buffer = buffer.DefaultConfig()
	}
	if difficulty == "" {
		difficulty = deps.Mastery.Recommend(deps.Policy, skill.ID)
	}

	s := &PracticeScreen{
		deps:       deps,
		skill:      skill,
		difficulty: difficulty,
		started:    time.Now(),
	}
	s.tricks, _ = puzzlegen.TricksFor(skill.ID)
	s.buf, s.initErr = buffer.New(deps.Generator, deps.Buffer,
		buffer.WithLogger(deps.Logger.With("component", "buffer")),
	)
	return s
}

func (s *PracticeScreen) Init() tea.Cmd {
	if s.initErr != nil {
		return nil
	}
	if err := s.buf.Start(s.skill.ID, s.difficulty); err != nil {
		s.initErr = err
		return nil
	}
	return tea.Batch(waitForUpdate(s.buf.Updates()), tickCmd())
}

func (s *PracticeScreen) Title() string {
	return s.skill.Name
}

// Status shows the session score, streak and time spent.
func (s *PracticeScreen) Status() string {
	return fmt.Sprintf("%s  ✓ %d/%d  ★ %d  %s  ", s.difficulty, s.correct, s.total, s.streak, formatElapsed(s.elapsed))
}

// Dispose stops the buffer. Any fetch still running is discarded.
func (s *PracticeScreen) Dispose() {
	if s.buf != nil {
		s.buf.Dispose()
	}
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	if s.showTricks {
		return []layout.KeyHint{
			{Key: "T", Description: "Close tricks"},
			{Key: "Esc", Description: "Back"},
		}
	}
	snap := s.snapshot()
	switch {
	case snap.Current == nil && snap.ErrorMessage != "":
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "1/2/3", Description: "Difficulty"},
			{Key: "Esc", Description: "Back"},
		}
	case snap.Current != nil && s.choice.Submitted:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "1/2/3", Description: "Difficulty"},
			{Key: "T", Description: "Tricks"},
			{Key: "Esc", Description: "Back"},
		}
	case snap.Current != nil:
		return []layout.KeyHint{
			{Key: "A-E", Description: "Answer"},
			{Key: "↑↓ Enter", Description: "Select"},
			{Key: "1/2/3", Description: "Difficulty"},
			{Key: "T", Description: "Tricks"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		return []layout.KeyHint{
			{Key: "1/2/3", Description: "Difficulty"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case bufferUpdatedMsg:
		s.syncChoice()
		return s, waitForUpdate(s.buf.Updates())

	case answerSavedMsg:
		s.saveErr = msg.Err
		return s, nil

	case timerTickMsg:
		s.elapsed = time.Time(msg).Sub(s.started)
		return s, tickCmd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.initErr != nil {
		return s, nil
	}

	if key.Matches(msg, keys.Tricks) && len(s.tricks.Tricks) > 0 {
		s.showTricks = !s.showTricks
		return s, nil
	}
	if s.showTricks {
		return s, nil
	}

	switch {
	case key.Matches(msg, keys.Easy):
		return s, s.changeDifficulty(puzzle.DifficultyEasy)
	case key.Matches(msg, keys.Medium):
		return s, s.changeDifficulty(puzzle.DifficultyMedium)
	case key.Matches(msg, keys.Hard):
		return s, s.changeDifficulty(puzzle.DifficultyHard)
	}

	snap := s.buf.Snapshot()
	if snap.Current == nil {
		if snap.ErrorMessage != "" && key.Matches(msg, keys.Retry) {
			s.buf.Retry()
		}
		return s, nil
	}

	s.syncChoice()
	if s.choice.Submitted {
		if key.Matches(msg, keys.Next) {
			s.buf.Advance()
			s.syncChoice()
		}
		return s, nil
	}

	s.choice, _ = s.choice.Update(msg)
	if !s.choice.Submitted {
		return s, nil
	}
	return s, s.recordAnswer(snap, s.choice.ChosenIndex)
}

// changeDifficulty starts a new buffer session at d. Results still
// arriving for the old tier are dropped by the buffer.
func (s *PracticeScreen) changeDifficulty(d puzzle.Difficulty) tea.Cmd {
	if d == s.difficulty {
		return nil
	}
	s.difficulty = d
	s.shownID = ""
	if err := s.buf.Start(s.skill.ID, d); err != nil {
		s.initErr = err
	}
	return nil
}

// syncChoice rebuilds the choice component when the current item changes.
func (s *PracticeScreen) syncChoice() {
	cur := s.buf.Current()
	if cur == nil {
		s.shownID = ""
		return
	}
	if id := cur.Info().ID; id != s.shownID {
		s.shownID = id
		s.choice = components.NewMultiChoice(describe(cur).choices, cur.Info().CorrectAnswer)
	}
}

// recordAnswer updates session stats and persists the answer.
func (s *PracticeScreen) recordAnswer(snap buffer.Snapshot, chosen int) tea.Cmd {
	info := snap.Current.Info()
	correct := chosen == info.CorrectAnswer

	s.total++
	if correct {
		s.correct++
		s.streak++
	} else {
		s.streak = 0
	}

	skill, difficulty := s.skill.ID, snap.Difficulty
	svc, repo := s.deps.Mastery, s.deps.EventRepo
	return func() tea.Msg {
		ctx := context.Background()
		if _, err := svc.RecordAnswer(ctx, skill, difficulty, correct); err != nil {
			return answerSavedMsg{Err: err}
		}
		if repo == nil {
			return answerSavedMsg{}
		}
		err := repo.AppendAnswer(ctx, store.AnswerEventData{
			SessionID:  snap.SessionID,
			SkillID:    string(skill),
			ItemID:     info.ID,
			Difficulty: string(difficulty),
			Chosen:     chosen,
			Correct:    correct,
		})
		return answerSavedMsg{Err: err}
	}
}

func (s *PracticeScreen) snapshot() buffer.Snapshot {
	if s.buf == nil {
		return buffer.Snapshot{}
	}
	return s.buf.Snapshot()
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

// formatElapsed renders d as h:mm:ss.
func formatElapsed(d time.Duration) string {
	secs := max(int(d/time.Second), 0)
	return fmt.Sprintf("%d:%02d:%02d", secs/3600, secs%3600/60, secs%60)
}

// waitForUpdate blocks until the buffer signals. A closed channel ends
// the loop.
func waitForUpdate(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return bufferUpdatedMsg{}
	}
}
