package puzzlegen

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/abhisek/catprep/internal/puzzle"
	"gopkg.in/yaml.v3"
)

//go:embed tricks.yaml
var tricksYAML []byte

// Trick is one solving tip.
type Trick struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// TrickSheet is the set of tips for one skill.
type TrickSheet struct {
	Title  string  `yaml:"title"`
	Tricks []Trick `yaml:"tricks"`
}

type tricksFile struct {
	Sheets map[puzzle.SkillID]TrickSheet `yaml:"sheets"`
}

var loadDefaultTricks = sync.OnceValues(func() (map[puzzle.SkillID]TrickSheet, error) {
	return ParseTricks(tricksYAML)
})

// ParseTricks reads trick sheets keyed by skill id. Every known skill
// must have a non-empty sheet.
func ParseTricks(data []byte) (map[puzzle.SkillID]TrickSheet, error) {
	var f tricksFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse tricks: %w", err)
	}
	for _, s := range puzzle.AllSkills() {
		if len(f.Sheets[s.ID].Tricks) == 0 {
			return nil, fmt.Errorf("no tricks for skill %q", s.ID)
		}
	}
	return f.Sheets, nil
}

// TricksFor returns the embedded trick sheet for skill.
func TricksFor(skill puzzle.SkillID) (TrickSheet, bool) {
	sheets, err := loadDefaultTricks()
	if err != nil {
		return TrickSheet{}, false
	}
	sheet, ok := sheets[skill]
	return sheet, ok
}
