package puzzle

// ChoiceCount is the number of answer options every item kind presents.
const ChoiceCount = 5

// Kind identifies the structural family of a puzzle item. Several skills can
// share one kind (all four text skills use KindText).
type Kind string

const (
	KindText                 Kind = "text"
	KindFigureClassification Kind = "figure-classification"
	KindFigureMatrix         Kind = "figure-matrix"
	KindPaperFolding         Kind = "paper-folding"
	KindFigureRecognition    Kind = "figure-recognition"
)

// Item is one generated multiple-choice puzzle. Implementations are immutable
// once constructed by the generator; consumers only read them.
type Item interface {
	// Info returns the fields shared by every kind.
	Info() Common

	// Kind returns the structural family of the item.
	Kind() Kind

	// NumChoices returns the size of the item's own choice set.
	NumChoices() int
}

// Common holds the fields carried by every item variant.
type Common struct {
	// ID is unique within the process lifetime. See NewID.
	ID string `json:"id"`

	// Skill is the skill the item was generated for.
	Skill SkillID `json:"type"`

	// Difficulty is the tier that was requested, not a self-assessment.
	Difficulty Difficulty `json:"difficulty"`

	// CorrectAnswer is a zero-based index into the item's choices.
	CorrectAnswer int `json:"correctAnswer"`

	// Explanation is shown to the learner after answering.
	Explanation string `json:"explanation"`
}

// Info returns c. Promoted to every item struct that embeds Common.
func (c Common) Info() Common { return c }

// TextItem is a verbal or numeric item whose prompt and choices are plain text.
type TextItem struct {
	Common

	// Prompt is the question text, e.g. "2, 6, 18, 54, ?".
	Prompt string `json:"prompt"`

	// Choices holds exactly ChoiceCount options.
	Choices []string `json:"choices"`

	// Rule is the underlying pattern, when the generator supplied one.
	Rule string `json:"rule,omitempty"`
}

func (TextItem) Kind() Kind        { return KindText }
func (t TextItem) NumChoices() int { return len(t.Choices) }

// FigureClassificationItem shows three figures sharing a rule; the learner
// picks the choice that follows the same rule.
type FigureClassificationItem struct {
	Common
	Rule    string        `json:"rule"`
	Figures []ShapeConfig `json:"figures"`
	Choices []ShapeConfig `json:"choices"`
}

func (FigureClassificationItem) Kind() Kind        { return KindFigureClassification }
func (f FigureClassificationItem) NumChoices() int { return len(f.Choices) }

// FigureMatrixItem is a 2x2 or 3x3 grid with one missing cell.
type FigureMatrixItem struct {
	Common

	// GridSize is 2 or 3.
	GridSize int `json:"gridSize"`

	// Cells is row-major and holds GridSize*GridSize entries. The missing
	// cell is usually nil.
	Cells []*ShapeConfig `json:"cells"`

	// MissingIndex is the index into Cells the learner must fill.
	MissingIndex int           `json:"missingIndex"`
	Choices      []ShapeConfig `json:"choices"`
	RowRule      string        `json:"rowRule"`
	ColRule      string        `json:"colRule,omitempty"`
}

func (FigureMatrixItem) Kind() Kind        { return KindFigureMatrix }
func (f FigureMatrixItem) NumChoices() int { return len(f.Choices) }

// PaperFoldingItem describes a square sheet folded, punched, and unfolded.
// Each choice is the set of holes visible after unfolding.
type PaperFoldingItem struct {
	Common
	Folds         []FoldDirection   `json:"folds"`
	PunchPosition PunchPosition     `json:"punchPosition"`
	Choices       [][]PunchPosition `json:"choices"`
}

func (PaperFoldingItem) Kind() Kind        { return KindPaperFolding }
func (p PaperFoldingItem) NumChoices() int { return len(p.Choices) }

// FigureRecognitionItem hides a target shape inside a complex figure.
// Shapes are carried as SVG fragments for the renderer.
type FigureRecognitionItem struct {
	Common

	// TargetShape is an SVG path "d" attribute.
	TargetShape string `json:"targetShape"`

	// ComplexFigure is SVG content for a 200x200 viewBox.
	ComplexFigure  string              `json:"complexFigure"`
	TargetLocation Point               `json:"targetLocation"`
	Choices        []RecognitionChoice `json:"choices"`
}

func (FigureRecognitionItem) Kind() Kind        { return KindFigureRecognition }
func (f FigureRecognitionItem) NumChoices() int { return len(f.Choices) }

// RecognitionChoice is one highlighted region of the complex figure.
type RecognitionChoice struct {
	Label       string `json:"label"`
	Highlighted string `json:"highlighted"`
}

// Point is a position in the figure's coordinate space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PunchPosition is a hole position on the unit square, 0 = left/top.
type PunchPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FoldDirection names the edge the paper is folded towards.
type FoldDirection string

const (
	FoldLeft       FoldDirection = "left"
	FoldRight      FoldDirection = "right"
	FoldTop        FoldDirection = "top"
	FoldBottom     FoldDirection = "bottom"
	FoldDiagonalTL FoldDirection = "diagonal-tl"
	FoldDiagonalTR FoldDirection = "diagonal-tr"
)

// ShapeConfig describes a single figure for the renderer. Optional fields use
// their zero value when the generator omitted them.
type ShapeConfig struct {
	ShapeType   string   `json:"shapeType"`
	Fill        string   `json:"fill"`
	Rotation    float64  `json:"rotation,omitempty"`
	Size        string   `json:"size,omitempty"`
	InnerShape  string   `json:"innerShape,omitempty"`
	BorderStyle string   `json:"borderStyle,omitempty"`
	Count       *float64 `json:"count,omitempty"`
}

// Enumerations accepted in ShapeConfig fields.
var (
	ShapeTypes   = []string{"circle", "triangle", "square", "pentagon", "hexagon", "star", "arrow", "cross", "diamond"}
	FillTypes    = []string{"solid", "empty", "striped-horizontal", "striped-vertical", "striped-diagonal", "dotted"}
	ShapeSizes   = []string{"small", "medium", "large"}
	InnerShapes  = append(append([]string{}, ShapeTypes...), "dot", "none")
	BorderStyles = []string{"solid", "dashed", "double", "thick", "thin"}
	FoldValues   = []string{
		string(FoldLeft), string(FoldRight), string(FoldTop),
		string(FoldBottom), string(FoldDiagonalTL), string(FoldDiagonalTR),
	}
)
