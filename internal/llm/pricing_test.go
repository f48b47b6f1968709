package llm

import (
	"math"
	"testing"
)

func TestLookupCost(t *testing.T) {
	c := LookupCost("gemini-2.0-flash")
	if c == nil {
		t.Fatal("expected pricing for gemini-2.0-flash")
	}
	got := c.Cost(1_000_000, 500_000)
	if math.Abs(got-0.3) > 1e-9 {
		t.Errorf("cost = %f, want 0.3", got)
	}

	if LookupCost("not-a-model") != nil {
		t.Error("expected nil for unknown model")
	}
}
