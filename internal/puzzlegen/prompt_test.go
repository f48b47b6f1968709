package puzzlegen

import (
	"strings"
	"testing"

	"github.com/abhisek/catprep/internal/puzzle"
)

func TestDefaultPrompts_EverySkillRenders(t *testing.T) {
	p, err := DefaultPrompts()
	if err != nil {
		t.Fatalf("DefaultPrompts: %v", err)
	}
	if p.System() == "" {
		t.Fatal("empty system prompt")
	}

	for _, s := range puzzle.AllSkills() {
		for _, d := range puzzle.AllDifficulties() {
			got, err := p.Build(s, d, 3)
			if err != nil {
				t.Fatalf("Build(%s, %s): %v", s.ID, d, err)
			}
			if !strings.Contains(got, "Write 3 "+s.Name) {
				t.Errorf("%s/%s: missing request line", s.ID, d)
			}
			if !strings.Contains(got, d.Guidance()) {
				t.Errorf("%s/%s: missing difficulty guidance", s.ID, d)
			}
			if !strings.HasSuffix(got, "No markdown and no code fences.") {
				t.Errorf("%s/%s: missing closing instruction", s.ID, d)
			}
		}
	}
}

func TestBuild_TextFormatOnlyForTextSkills(t *testing.T) {
	p, err := DefaultPrompts()
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range puzzle.AllSkills() {
		got, err := p.Build(s, puzzle.DifficultyMedium, 2)
		if err != nil {
			t.Fatal(err)
		}
		hasFormat := strings.Contains(got, `"rule": string, the pattern or relationship being tested`)
		if hasFormat != (s.Kind == puzzle.KindText) {
			t.Errorf("%s: text format present = %v", s.ID, hasFormat)
		}
	}
}

func TestBuild_VocabularyOnlyForVerbalAnalogies(t *testing.T) {
	p, err := DefaultPrompts()
	if err != nil {
		t.Fatal(err)
	}
	groups := p.Vocabulary()
	if len(groups) == 0 || len(groups[0].Words) == 0 {
		t.Fatal("vocabulary is empty")
	}
	word := groups[0].Words[0].Word

	analogies, _ := puzzle.GetSkill(puzzle.SkillVerbalAnalogies)
	got, err := p.Build(analogies, puzzle.DifficultyEasy, 3)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, word+": ") {
		t.Errorf("verbal analogies prompt lacks vocabulary word %q", word)
	}

	classification, _ := puzzle.GetSkill(puzzle.SkillVerbalClassification)
	got, err = p.Build(classification, puzzle.DifficultyEasy, 3)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, word+": ") {
		t.Errorf("verbal classification prompt should not list vocabulary")
	}
}

func TestBuild_MatrixCellCount(t *testing.T) {
	p, err := DefaultPrompts()
	if err != nil {
		t.Fatal(err)
	}
	matrices, _ := puzzle.GetSkill(puzzle.SkillFigureMatrices)

	easy, _ := p.Build(matrices, puzzle.DifficultyEasy, 1)
	if !strings.Contains(easy, "array of 4 ShapeConfig objects") {
		t.Error("easy matrix prompt should ask for 4 cells")
	}
	hard, _ := p.Build(matrices, puzzle.DifficultyHard, 1)
	if !strings.Contains(hard, "array of 9 ShapeConfig objects") {
		t.Error("hard matrix prompt should ask for 9 cells")
	}
	if !strings.Contains(hard, `"circle", "triangle"`) {
		t.Error("shape fields block not rendered")
	}
}

func TestParsePrompts_MissingSkill(t *testing.T) {
	catalog := []byte("system: hi\nshape_fields: x\ntext_format: y\nclosing: z\nskills:\n  number-series: ok\n")
	_, err := ParsePrompts(catalog, vocabularyYAML)
	if err == nil {
		t.Fatal("expected error for incomplete catalog")
	}
	if !strings.Contains(err.Error(), "no prompt for skill") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParsePrompts_BadYAML(t *testing.T) {
	if _, err := ParsePrompts([]byte("system: [unclosed"), vocabularyYAML); err == nil {
		t.Fatal("expected parse error")
	}
}
