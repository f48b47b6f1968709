package puzzlegen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/abhisek/catprep/internal/puzzle"
)

// stripFences removes a surrounding markdown code fence, with or without a
// language tag, and trims whitespace.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
		s = s[4:]
	} else if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		// Drop any other info string on the opening line.
		if tag := strings.TrimSpace(s[:nl]); !strings.ContainsAny(tag, "[{") {
			s = s[nl+1:]
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// parseArray decodes the model output into its array elements.
func parseArray(content string) ([]json.RawMessage, error) {
	text := stripFences(content)
	if text == "" {
		return nil, fmt.Errorf("empty response")
	}
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(text), &elems); err != nil {
		return nil, fmt.Errorf("response is not a JSON array: %w", err)
	}
	return elems, nil
}

// assignedKeys are fields the generator fills in itself; whatever the model
// put there is discarded before decoding.
var assignedKeys = []string{"id", "type", "difficulty"}

// decodeItem unmarshals one schema-valid element into the kind's item type.
func decodeItem(kind puzzle.Kind, raw json.RawMessage) (puzzle.Item, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	for _, k := range assignedKeys {
		delete(fields, k)
	}
	cleaned, err := json.Marshal(integralNumbers(fields))
	if err != nil {
		return nil, err
	}

	var item puzzle.Item
	switch kind {
	case puzzle.KindText:
		item = &puzzle.TextItem{}
	case puzzle.KindFigureClassification:
		item = &puzzle.FigureClassificationItem{}
	case puzzle.KindFigureMatrix:
		item = &puzzle.FigureMatrixItem{}
	case puzzle.KindPaperFolding:
		item = &puzzle.PaperFoldingItem{}
	case puzzle.KindFigureRecognition:
		item = &puzzle.FigureRecognitionItem{}
	default:
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
	if err := json.Unmarshal(cleaned, item); err != nil {
		return nil, err
	}
	return item, nil
}

// integralNumbers rewrites whole numbers written in float form ("2.0",
// "4e0") as plain integers. JSON Schema counts them as integers, and the
// int fields of the item types must accept them too.
func integralNumbers(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, e := range x {
			x[k] = integralNumbers(e)
		}
	case []any:
		for i, e := range x {
			x[i] = integralNumbers(e)
		}
	case json.Number:
		if !strings.ContainsAny(string(x), ".eE") {
			return x
		}
		f, err := x.Float64()
		if err == nil && f == math.Trunc(f) && math.Abs(f) <= 1<<53 {
			return json.Number(strconv.FormatInt(int64(f), 10))
		}
	}
	return v
}

// commonOf returns the shared fields of an item produced by decodeItem.
func commonOf(item puzzle.Item) *puzzle.Common {
	switch it := item.(type) {
	case *puzzle.TextItem:
		return &it.Common
	case *puzzle.FigureClassificationItem:
		return &it.Common
	case *puzzle.FigureMatrixItem:
		return &it.Common
	case *puzzle.PaperFoldingItem:
		return &it.Common
	case *puzzle.FigureRecognitionItem:
		return &it.Common
	default:
		return nil
	}
}
