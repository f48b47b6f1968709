package puzzlegen

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/abhisek/catprep/internal/puzzle"
	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var promptsYAML []byte

//go:embed vocabulary.yaml
var vocabularyYAML []byte

// promptCatalog mirrors prompts.yaml.
type promptCatalog struct {
	System      string            `yaml:"system"`
	ShapeFields string            `yaml:"shape_fields"`
	TextFormat  string            `yaml:"text_format"`
	Skills      map[string]string `yaml:"skills"`
	Closing     string            `yaml:"closing"`
}

// VocabWord is one studied word and its meaning.
type VocabWord struct {
	Word    string `yaml:"word"`
	Meaning string `yaml:"meaning"`
}

// VocabGroup is a themed section of the word list.
type VocabGroup struct {
	Name  string      `yaml:"name"`
	Words []VocabWord `yaml:"words"`
}

type vocabularyFile struct {
	Groups []VocabGroup `yaml:"groups"`
}

// promptData is the template input for every skill prompt.
type promptData struct {
	Count      int
	Difficulty puzzle.Difficulty
	Guidance   string
	CellCount  int
	Vocabulary []VocabWord

	ShapeTypes     []string
	FillTypes      []string
	ShapeSizes     []string
	InnerShapes    []string
	BorderStyles   []string
	FoldDirections []string
}

// Prompts renders generation prompts from the embedded catalog.
type Prompts struct {
	system string
	tmpl   *template.Template
	vocab  []VocabGroup
}

var loadDefaultPrompts = sync.OnceValues(func() (*Prompts, error) {
	return ParsePrompts(promptsYAML, vocabularyYAML)
})

// DefaultPrompts returns the catalog compiled into the binary.
func DefaultPrompts() (*Prompts, error) {
	return loadDefaultPrompts()
}

// ParsePrompts builds a catalog from YAML documents shaped like the
// embedded prompts.yaml and vocabulary.yaml.
func ParsePrompts(catalogYAML, vocabYAML []byte) (*Prompts, error) {
	var cat promptCatalog
	if err := yaml.Unmarshal(catalogYAML, &cat); err != nil {
		return nil, fmt.Errorf("parse prompt catalog: %w", err)
	}
	var vf vocabularyFile
	if err := yaml.Unmarshal(vocabYAML, &vf); err != nil {
		return nil, fmt.Errorf("parse vocabulary: %w", err)
	}

	root := template.New("prompts").Funcs(template.FuncMap{
		"quoteList": quoteList,
	}).Option("missingkey=error")

	blocks := map[string]string{
		"shape_fields": cat.ShapeFields,
		"text_format":  cat.TextFormat,
		"closing":      cat.Closing,
	}
	for name, body := range blocks {
		if _, err := root.New(name).Parse(body); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
	}

	for _, s := range puzzle.AllSkills() {
		body, ok := cat.Skills[string(s.ID)]
		if !ok {
			return nil, fmt.Errorf("no prompt for skill %q", s.ID)
		}
		if _, err := root.New(string(s.ID)).Parse(body); err != nil {
			return nil, fmt.Errorf("parse prompt %s: %w", s.ID, err)
		}
	}

	return &Prompts{
		system: strings.TrimSpace(cat.System),
		tmpl:   root,
		vocab:  vf.Groups,
	}, nil
}

// System returns the system prompt shared by all skills.
func (p *Prompts) System() string {
	return p.system
}

// Vocabulary returns the studied word list grouped by theme.
func (p *Prompts) Vocabulary() []VocabGroup {
	return p.vocab
}

// Build renders the user prompt asking for count items of skill at d.
func (p *Prompts) Build(skill puzzle.Skill, d puzzle.Difficulty, count int) (string, error) {
	data := promptData{
		Count:          count,
		Difficulty:     d,
		Guidance:       d.Guidance(),
		CellCount:      9,
		ShapeTypes:     puzzle.ShapeTypes,
		FillTypes:      puzzle.FillTypes,
		ShapeSizes:     puzzle.ShapeSizes,
		InnerShapes:    puzzle.InnerShapes,
		BorderStyles:   puzzle.BorderStyles,
		FoldDirections: puzzle.FoldValues,
	}
	if d == puzzle.DifficultyEasy {
		data.CellCount = 4
	}
	if skill.ID == puzzle.SkillVerbalAnalogies {
		for _, g := range p.vocab {
			data.Vocabulary = append(data.Vocabulary, g.Words...)
		}
	}

	var b strings.Builder
	if err := p.tmpl.ExecuteTemplate(&b, string(skill.ID), data); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", skill.ID, err)
	}
	b.WriteString("\n")
	if skill.Kind == puzzle.KindText {
		if err := p.tmpl.ExecuteTemplate(&b, "text_format", data); err != nil {
			return "", fmt.Errorf("render text format: %w", err)
		}
		b.WriteString("\n")
	}
	if err := p.tmpl.ExecuteTemplate(&b, "closing", data); err != nil {
		return "", fmt.Errorf("render closing: %w", err)
	}
	return strings.TrimSpace(b.String()), nil
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = `"` + s + `"`
	}
	return strings.Join(quoted, ", ")
}
