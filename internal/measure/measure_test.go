package measure

import (
	"math"
	"testing"

	"cytoseg/pkg/grid"
)

func TestSummarizeSingleRegion(t *testing.T) {
	labels := grid.NewLabels(10, 10)
	// 3×3 block of label 1 at (2..4, 3..5).
	for y := 3; y <= 5; y++ {
		for x := 2; x <= 4; x++ {
			labels.Set(x, y, grid.Cell(1))
		}
	}

	frame := grid.NewRaster(10, 10, 1)
	for y := 3; y <= 5; y++ {
		for x := 2; x <= 4; x++ {
			frame.Set(x, y, 0, 100)
		}
	}

	stats := Summarize(labels, frame, 0.5)
	if len(stats) != 1 {
		t.Fatalf("regions: got %d, want 1", len(stats))
	}
	s := stats[0]
	if s.Label != 1 || s.Area != 9 {
		t.Errorf("label/area: got %d/%d, want 1/9", s.Label, s.Area)
	}
	if s.Centroid.X != 3 || s.Centroid.Y != 4 {
		t.Errorf("centroid: got (%v,%v), want (3,4)", s.Centroid.X, s.Centroid.Y)
	}
	if s.Bounds.X != 2 || s.Bounds.Y != 3 || s.Bounds.Width != 3 || s.Bounds.Height != 3 {
		t.Errorf("bounds: got %+v", s.Bounds)
	}
	if s.MeanIntensity != 100 || s.StdDevIntensity != 0 {
		t.Errorf("intensity: got mean %v σ %v, want 100/0", s.MeanIntensity, s.StdDevIntensity)
	}
	wantDiam := 2 * math.Sqrt(9/math.Pi)
	if math.Abs(s.EquivalentDiameter-wantDiam) > 1e-9 {
		t.Errorf("equivalent diameter: got %v, want %v", s.EquivalentDiameter, wantDiam)
	}
	if math.Abs(s.EquivalentDiameterUm-wantDiam*0.5) > 1e-9 {
		t.Errorf("equivalent diameter µm: got %v", s.EquivalentDiameterUm)
	}
}

func TestSummarizeSortsAndSkipsSentinels(t *testing.T) {
	labels := grid.NewLabels(6, 1)
	labels.Set(0, 0, grid.Cell(5))
	labels.Set(1, 0, grid.Contested)
	labels.Set(2, 0, grid.Cell(2))
	labels.Set(3, 0, grid.Cell(5))

	stats := Summarize(labels, nil, 0)
	if len(stats) != 2 {
		t.Fatalf("regions: got %d, want 2", len(stats))
	}
	if stats[0].Label != 2 || stats[1].Label != 5 {
		t.Errorf("sort order: got %d then %d", stats[0].Label, stats[1].Label)
	}
	if stats[1].Area != 2 {
		t.Errorf("label 5 area: got %d, want 2", stats[1].Area)
	}
}

func TestSummarizeEmptyGrid(t *testing.T) {
	if got := Summarize(grid.NewLabels(0, 0), nil, 0); len(got) != 0 {
		t.Errorf("expected no stats, got %d", len(got))
	}
}
