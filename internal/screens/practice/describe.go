package practice

import (
	"fmt"
	"strings"

	"github.com/abhisek/catprep/internal/puzzle"
)

// rendered is an item flattened to text for the terminal.
type rendered struct {
	// stem lines are shown above the choices.
	stem    []string
	choices []string
	rule    string
}

// describe turns any item kind into question text and choice labels.
func describe(item puzzle.Item) rendered {
	switch it := item.(type) {
	case *puzzle.TextItem:
		return rendered{stem: []string{it.Prompt}, choices: it.Choices, rule: it.Rule}

	case *puzzle.FigureClassificationItem:
		r := rendered{rule: it.Rule}
		r.stem = append(r.stem, "These figures have something in common:")
		for _, f := range it.Figures {
			r.stem = append(r.stem, "  • "+describeShape(f))
		}
		r.stem = append(r.stem, "", "Which figure goes with them?")
		for _, c := range it.Choices {
			r.choices = append(r.choices, describeShape(c))
		}
		return r

	case *puzzle.FigureMatrixItem:
		r := rendered{rule: it.RowRule}
		if it.ColRule != "" {
			r.rule += "; " + it.ColRule
		}
		r.stem = append(r.stem, "Which figure completes the grid?")
		for row := range it.GridSize {
			var cells []string
			for col := range it.GridSize {
				i := row*it.GridSize + col
				switch {
				case i == it.MissingIndex || i >= len(it.Cells) || it.Cells[i] == nil:
					cells = append(cells, "?")
				default:
					cells = append(cells, describeShape(*it.Cells[i]))
				}
			}
			r.stem = append(r.stem, "  "+strings.Join(cells, "  |  "))
		}
		for _, c := range it.Choices {
			r.choices = append(r.choices, describeShape(c))
		}
		return r

	case *puzzle.PaperFoldingItem:
		folds := make([]string, len(it.Folds))
		for i, f := range it.Folds {
			folds[i] = string(f)
		}
		r := rendered{stem: []string{
			"A square sheet is folded " + strings.Join(folds, ", then ") + ".",
			"A hole is punched at " + describePoint(it.PunchPosition) + ".",
			"Where are the holes once it is unfolded?",
		}}
		for _, holes := range it.Choices {
			parts := make([]string, len(holes))
			for i, h := range holes {
				parts[i] = describePoint(h)
			}
			r.choices = append(r.choices, strings.Join(parts, " "))
		}
		return r

	case *puzzle.FigureRecognitionItem:
		r := rendered{stem: []string{
			"Find the shape " + it.TargetShape,
			"hidden in the figure. Which region contains it?",
		}}
		for _, c := range it.Choices {
			r.choices = append(r.choices, "region "+c.Label)
		}
		return r
	}
	return rendered{stem: []string{"(unsupported puzzle)"}}
}

// describeShape renders a ShapeConfig as a short phrase, e.g.
// "large striped-diagonal triangle, rotated 90°, dashed border".
func describeShape(s puzzle.ShapeConfig) string {
	var words []string
	if s.Count != nil && *s.Count > 1 {
		words = append(words, fmt.Sprintf("%g×", *s.Count))
	}
	if s.Size != "" && s.Size != "medium" {
		words = append(words, s.Size)
	}
	words = append(words, s.Fill, s.ShapeType)
	out := strings.Join(words, " ")

	if s.Rotation != 0 {
		out += fmt.Sprintf(", rotated %g°", s.Rotation)
	}
	if s.InnerShape != "" && s.InnerShape != "none" {
		out += ", " + s.InnerShape + " inside"
	}
	if s.BorderStyle != "" && s.BorderStyle != "solid" {
		out += ", " + s.BorderStyle + " border"
	}
	return out
}

func describePoint(p puzzle.PunchPosition) string {
	return fmt.Sprintf("(%.2g, %.2g)", p.X, p.Y)
}
