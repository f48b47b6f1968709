package puzzlegen

import (
	"fmt"
	"strings"

	"github.com/abhisek/catprep/internal/puzzle"
)

// Validator checks a decoded item for correctness.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in logs, e.g. "structural".
	Name() string

	// Validate returns nil if the item passes.
	Validate(item puzzle.Item) *ValidationError
}

// ValidationError describes why an item was rejected.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// StructuralValidator checks the invariants a JSON Schema cannot express:
// answer index against the actual choice count and matrix geometry.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(item puzzle.Item) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...)}
	}

	info := item.Info()
	if n := item.NumChoices(); n != puzzle.ChoiceCount {
		return fail("expected %d choices, got %d", puzzle.ChoiceCount, n)
	}
	if info.CorrectAnswer < 0 || info.CorrectAnswer >= item.NumChoices() {
		return fail("correctAnswer %d out of range", info.CorrectAnswer)
	}
	if strings.TrimSpace(info.Explanation) == "" {
		return fail("explanation is empty")
	}

	switch it := item.(type) {
	case *puzzle.TextItem:
		if strings.TrimSpace(it.Prompt) == "" {
			return fail("prompt is empty")
		}
	case *puzzle.FigureMatrixItem:
		if it.GridSize != 2 && it.GridSize != 3 {
			return fail("gridSize must be 2 or 3, got %d", it.GridSize)
		}
		if want := it.GridSize * it.GridSize; len(it.Cells) != want {
			return fail("gridSize %d needs %d cells, got %d", it.GridSize, want, len(it.Cells))
		}
		if it.MissingIndex < 0 || it.MissingIndex >= len(it.Cells) {
			return fail("missingIndex %d out of range", it.MissingIndex)
		}
	case *puzzle.PaperFoldingItem:
		if len(it.Folds) == 0 {
			return fail("no folds")
		}
	}
	return nil
}

// DistinctChoicesValidator rejects text items whose options repeat, since
// two identical options cannot have exactly one correct answer.
type DistinctChoicesValidator struct{}

func (v *DistinctChoicesValidator) Name() string { return "distinct-choices" }

func (v *DistinctChoicesValidator) Validate(item puzzle.Item) *ValidationError {
	t, ok := item.(*puzzle.TextItem)
	if !ok {
		return nil
	}
	seen := make(map[string]bool, len(t.Choices))
	for _, c := range t.Choices {
		key := strings.ToLower(strings.TrimSpace(c))
		if seen[key] {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("choice %q appears more than once", c),
			}
		}
		seen[key] = true
	}
	return nil
}
