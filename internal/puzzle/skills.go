package puzzle

import "fmt"

// SkillID identifies one of the eight reasoning skills.
type SkillID string

const (
	SkillFigureClassification SkillID = "figure-classification"
	SkillFigureMatrices       SkillID = "figure-matrices"
	SkillVerbalClassification SkillID = "verbal-classification"
	SkillVerbalAnalogies      SkillID = "verbal-analogies"
	SkillNumberAnalogies      SkillID = "number-analogies"
	SkillNumberSeries         SkillID = "number-series"
	SkillFigureAnalysis       SkillID = "figure-analysis"
	SkillFigureRecognition    SkillID = "figure-recognition"
)

// Battery groups skills into the four reported reasoning areas.
type Battery string

const (
	BatteryNonVerbal    Battery = "Non-Verbal Reasoning"
	BatteryVerbal       Battery = "Verbal Reasoning"
	BatteryQuantitative Battery = "Quantitative Reasoning"
	BatterySpatial      Battery = "Spatial Ability"
)

// Skill describes a practicable skill and its exam metadata.
type Skill struct {
	ID      SkillID
	Name    string
	Battery Battery
	Kind    Kind

	// Part is the exam paper the skill appears in (1-3).
	Part               int
	QuestionCount      int
	TimeMinutes        int
	SecondsPerQuestion int
}

// IDPrefix returns the prefix used for generated item ids.
func (s Skill) IDPrefix() string {
	switch s.Kind {
	case KindFigureClassification:
		return "fc"
	case KindFigureMatrix:
		return "fm"
	case KindPaperFolding:
		return "fa"
	case KindFigureRecognition:
		return "fr"
	default:
		return string(s.ID)
	}
}

var skills = []Skill{
	{ID: SkillFigureClassification, Name: "Figure Classification", Battery: BatteryNonVerbal, Kind: KindFigureClassification, Part: 1, QuestionCount: 24, TimeMinutes: 10, SecondsPerQuestion: 25},
	{ID: SkillFigureMatrices, Name: "Figure Matrices", Battery: BatteryNonVerbal, Kind: KindFigureMatrix, Part: 1, QuestionCount: 24, TimeMinutes: 10, SecondsPerQuestion: 25},
	{ID: SkillVerbalClassification, Name: "Verbal Classification", Battery: BatteryVerbal, Kind: KindText, Part: 2, QuestionCount: 24, TimeMinutes: 8, SecondsPerQuestion: 20},
	{ID: SkillVerbalAnalogies, Name: "Verbal Analogies", Battery: BatteryVerbal, Kind: KindText, Part: 2, QuestionCount: 24, TimeMinutes: 8, SecondsPerQuestion: 20},
	{ID: SkillNumberAnalogies, Name: "Number Analogies", Battery: BatteryQuantitative, Kind: KindText, Part: 2, QuestionCount: 18, TimeMinutes: 10, SecondsPerQuestion: 33},
	{ID: SkillNumberSeries, Name: "Number Series", Battery: BatteryQuantitative, Kind: KindText, Part: 3, QuestionCount: 18, TimeMinutes: 8, SecondsPerQuestion: 27},
	{ID: SkillFigureAnalysis, Name: "Figure Analysis", Battery: BatterySpatial, Kind: KindPaperFolding, Part: 3, QuestionCount: 18, TimeMinutes: 9, SecondsPerQuestion: 30},
	{ID: SkillFigureRecognition, Name: "Figure Recognition", Battery: BatterySpatial, Kind: KindFigureRecognition, Part: 3, QuestionCount: 18, TimeMinutes: 9, SecondsPerQuestion: 30},
}

// AllSkills returns every skill in exam order.
func AllSkills() []Skill {
	out := make([]Skill, len(skills))
	copy(out, skills)
	return out
}

// GetSkill looks up a skill by ID.
func GetSkill(id SkillID) (Skill, error) {
	for _, s := range skills {
		if s.ID == id {
			return s, nil
		}
	}
	return Skill{}, fmt.Errorf("unknown skill %q", id)
}

// ByBattery returns the skills belonging to b.
func ByBattery(b Battery) []Skill {
	var out []Skill
	for _, s := range skills {
		if s.Battery == b {
			out = append(out, s)
		}
	}
	return out
}
