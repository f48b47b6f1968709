package puzzlegen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/abhisek/catprep/internal/puzzle"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

func enumOf(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func nonEmptyString() map[string]any {
	return map[string]any{"type": "string", "minLength": 1}
}

func choiceIndex() map[string]any {
	return map[string]any{"type": "integer", "minimum": 0, "maximum": puzzle.ChoiceCount - 1}
}

func exactly(n int, items map[string]any) map[string]any {
	return map[string]any{"type": "array", "items": items, "minItems": n, "maxItems": n}
}

func point() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"x": map[string]any{"type": "number"},
			"y": map[string]any{"type": "number"},
		},
		"required": []any{"x", "y"},
	}
}

func unitPoint() map[string]any {
	unit := map[string]any{"type": "number", "minimum": 0, "maximum": 1}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"x": unit,
			"y": unit,
		},
		"required": []any{"x", "y"},
	}
}

func shapeConfig() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"shapeType":   map[string]any{"type": "string", "enum": enumOf(puzzle.ShapeTypes)},
			"fill":        map[string]any{"type": "string", "enum": enumOf(puzzle.FillTypes)},
			"rotation":    map[string]any{"type": "number"},
			"size":        map[string]any{"type": "string", "enum": enumOf(puzzle.ShapeSizes)},
			"innerShape":  map[string]any{"type": "string", "enum": enumOf(puzzle.InnerShapes)},
			"borderStyle": map[string]any{"type": "string", "enum": enumOf(puzzle.BorderStyles)},
			"count":       map[string]any{"type": "number"},
		},
		"required": []any{"shapeType", "fill"},
	}
}

// kindSchemas holds the JSON Schema each generated element must satisfy,
// keyed by item kind. Extra properties are tolerated.
var kindSchemas = map[puzzle.Kind]map[string]any{
	puzzle.KindText: {
		"type": "object",
		"properties": map[string]any{
			"prompt":        nonEmptyString(),
			"choices":       exactly(puzzle.ChoiceCount, map[string]any{"type": "string"}),
			"correctAnswer": choiceIndex(),
			"explanation":   nonEmptyString(),
			"rule":          map[string]any{"type": "string"},
		},
		"required": []any{"prompt", "choices", "correctAnswer", "explanation"},
	},
	puzzle.KindFigureClassification: {
		"type": "object",
		"properties": map[string]any{
			"rule":          nonEmptyString(),
			"figures":       exactly(3, shapeConfig()),
			"choices":       exactly(puzzle.ChoiceCount, shapeConfig()),
			"correctAnswer": choiceIndex(),
			"explanation":   nonEmptyString(),
		},
		"required": []any{"rule", "figures", "choices", "correctAnswer", "explanation"},
	},
	puzzle.KindFigureMatrix: {
		"type": "object",
		"properties": map[string]any{
			"gridSize": map[string]any{"type": "integer", "enum": []any{2, 3}},
			"cells": map[string]any{
				"type": "array",
				"items": map[string]any{
					"oneOf": []any{shapeConfig(), map[string]any{"type": "null"}},
				},
				"minItems": 4,
				"maxItems": 9,
			},
			"missingIndex":  map[string]any{"type": "integer", "minimum": 0},
			"choices":       exactly(puzzle.ChoiceCount, shapeConfig()),
			"correctAnswer": choiceIndex(),
			"rowRule":       nonEmptyString(),
			"colRule":       map[string]any{"type": "string"},
			"explanation":   nonEmptyString(),
		},
		"required": []any{"gridSize", "cells", "missingIndex", "choices", "correctAnswer", "rowRule", "explanation"},
	},
	puzzle.KindPaperFolding: {
		"type": "object",
		"properties": map[string]any{
			"folds": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string", "enum": enumOf(puzzle.FoldValues)},
				"minItems": 1,
			},
			"punchPosition": unitPoint(),
			"choices": exactly(puzzle.ChoiceCount, map[string]any{
				"type":  "array",
				"items": unitPoint(),
			}),
			"correctAnswer": choiceIndex(),
			"explanation":   nonEmptyString(),
		},
		"required": []any{"folds", "punchPosition", "choices", "correctAnswer", "explanation"},
	},
	puzzle.KindFigureRecognition: {
		"type": "object",
		"properties": map[string]any{
			"targetShape":    nonEmptyString(),
			"complexFigure":  nonEmptyString(),
			"targetLocation": point(),
			"choices": exactly(puzzle.ChoiceCount, map[string]any{
				"type": "object",
				"properties": map[string]any{
					"label":       map[string]any{"type": "string"},
					"highlighted": map[string]any{"type": "string"},
				},
				"required": []any{"label", "highlighted"},
			}),
			"correctAnswer": choiceIndex(),
			"explanation":   nonEmptyString(),
		},
		"required": []any{"targetShape", "complexFigure", "targetLocation", "choices", "correctAnswer", "explanation"},
	},
}

// schemaCache caches compiled schemas by kind.
var schemaCache sync.Map // map[puzzle.Kind]*jsonschema.Schema

// compiledSchema returns a cached compiled schema or compiles and caches it.
func compiledSchema(kind puzzle.Kind) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(kind); ok {
		return cached.(*jsonschema.Schema), nil
	}

	def, ok := kindSchemas[kind]
	if !ok {
		return nil, fmt.Errorf("no schema for kind %q", kind)
	}

	// The compiler wants a decoded JSON document, so round-trip the map to
	// normalise Go numeric types.
	raw, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %s: %w", kind, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", kind, err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://puzzle/%s.json", kind)
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema %s: %w", kind, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", kind, err)
	}

	schemaCache.Store(kind, compiled)
	return compiled, nil
}

// validateSchema checks one raw array element against the kind's schema.
func validateSchema(kind puzzle.Kind, raw json.RawMessage) error {
	schema, err := compiledSchema(kind)
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return schema.Validate(inst)
}
