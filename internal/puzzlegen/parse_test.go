package puzzlegen

import (
	"testing"

	"github.com/abhisek/catprep/internal/puzzle"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare", `[1, 2]`, `[1, 2]`},
		{"padded", "  \n[1]\n ", `[1]`},
		{"json tag", "```json\n[1]\n```", `[1]`},
		{"no tag", "```\n[1]\n```", `[1]`},
		{"inline", "```[1]```", `[1]`},
		{"inline tagged", "```json[1]```", `[1]`},
		{"inline tagged upper", "```JSON [1]```", `[1]`},
		{"other tag", "```javascript\n[1]\n```", `[1]`},
		{"unterminated", "```json\n[1]", `[1]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFences(tt.in); got != tt.want {
				t.Errorf("stripFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseArray(t *testing.T) {
	elems, err := parseArray("```json\n[{\"a\": 1}, {\"b\": 2}, 3]\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(elems) != 3 {
		t.Errorf("expected 3 elements, got %d", len(elems))
	}

	for _, bad := range []string{"", "   ", "{\"a\": 1}", "here you go: [1]", "[1, 2"} {
		if _, err := parseArray(bad); err == nil {
			t.Errorf("parseArray(%q): expected error", bad)
		}
	}
}

func TestDecodeItem_IntegralFloats(t *testing.T) {
	raw := []byte(`{"prompt": "p", "choices": ["a","b","c","d","e"], "correctAnswer": 2.0, "explanation": "e"}`)
	item, err := decodeItem(puzzle.KindText, raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := item.Info().CorrectAnswer; got != 2 {
		t.Errorf("correctAnswer = %d, want 2", got)
	}

	matrix := []byte(`{"gridSize": 2.0, "cells": [null, {"shapeType": "circle", "fill": "solid", "rotation": 45.5}, null, null],
		"missingIndex": 0e0, "choices": [], "correctAnswer": 1, "explanation": "e", "rowRule": "r"}`)
	item, err = decodeItem(puzzle.KindFigureMatrix, matrix)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := item.(*puzzle.FigureMatrixItem)
	if m.GridSize != 2 || m.MissingIndex != 0 {
		t.Errorf("gridSize/missingIndex = %d/%d", m.GridSize, m.MissingIndex)
	}
	if c := m.Cells[1]; c == nil || c.Rotation != 45.5 {
		t.Errorf("fractional rotation changed: %+v", c)
	}
}

func TestDecodeItem_StripsAssignedFields(t *testing.T) {
	raw := []byte(`{"id": 12, "type": ["x"], "difficulty": {"level": 3}, "prompt": "p", "choices": ["a","b","c","d","e"], "correctAnswer": 4, "explanation": "e"}`)
	item, err := decodeItem(puzzle.KindText, raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	info := item.Info()
	if info.ID != "" || info.Skill != "" || info.Difficulty != "" {
		t.Errorf("assigned fields should be empty, got %+v", info)
	}
	if info.CorrectAnswer != 4 {
		t.Errorf("correctAnswer = %d", info.CorrectAnswer)
	}
	if commonOf(item) == nil {
		t.Error("commonOf returned nil")
	}
}

func TestDecodeItem_UnknownKind(t *testing.T) {
	if _, err := decodeItem("hologram", []byte(`{}`)); err == nil {
		t.Fatal("expected error")
	}
}
