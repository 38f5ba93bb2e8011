package report

import (
	"bytes"
	"testing"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G'}

func TestColorForDeterministic(t *testing.T) {
	if ColorFor("income") != ColorFor("income") {
		t.Fatalf("known label color not stable")
	}
	if ColorFor("Something New") != ColorFor("Something New") {
		t.Fatalf("fallback color not stable across calls")
	}
	if ColorFor("expense") == (ColorFor("income")) {
		t.Fatalf("income and expense should not share a color")
	}
}

func TestRenderProducesPNG(t *testing.T) {
	r := NewChartRenderer()
	ds := Dataset{
		Title:  "test",
		Labels: []string{"2025-03-10", "2025-03-11"},
		Series: []Series{
			{Label: "income", Values: []float64{100, 0}},
			{Label: "expense", Values: []float64{30, 5}},
		},
	}

	img, err := r.Render(ds)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(img, pngHeader) {
		t.Fatalf("expected PNG output, got % x", img[:8])
	}
}

func TestRenderEmptyDataset(t *testing.T) {
	r := NewChartRenderer()

	if _, err := r.Render(Dataset{}); err != ErrEmptyDataset {
		t.Fatalf("expected ErrEmptyDataset, got %v", err)
	}

	// All-zero values leave nothing to draw either
	ds := Dataset{
		Labels: []string{"2025-03-10"},
		Series: []Series{{Label: "income", Values: []float64{0}}},
	}
	if _, err := r.Render(ds); err != ErrEmptyDataset {
		t.Fatalf("expected ErrEmptyDataset for zero values, got %v", err)
	}
}
