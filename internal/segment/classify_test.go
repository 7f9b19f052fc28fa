package segment

import (
	"testing"

	"cytoseg/pkg/grid"
)

func TestClassifyStrokeAlpha(t *testing.T) {
	r := grid.NewRaster(5, 1, 4)
	alphas := []uint8{0, 5, 10, 11, 200}
	for x, a := range alphas {
		r.Set(x, 0, 3, a)
	}

	mask := Classify(r, ModeStroke, 0)

	// Only alpha strictly above the cutoff counts as painted.
	want := []bool{false, false, false, true, true}
	for x := range alphas {
		if mask.Get(x, 0) != want[x] {
			t.Errorf("alpha %d: got %v, want %v", alphas[x], mask.Get(x, 0), want[x])
		}
	}
}

func TestClassifyStrokeLuminance(t *testing.T) {
	// No alpha channel: luminance stands in for paint coverage.
	r := grid.NewRaster(3, 1, 1)
	r.Set(0, 0, 0, 0)
	r.Set(1, 0, 0, 10)
	r.Set(2, 0, 0, 128)

	mask := Classify(r, ModeStroke, 0)
	if mask.Get(0, 0) || mask.Get(1, 0) || !mask.Get(2, 0) {
		t.Errorf("luminance stroke mask wrong: %v %v %v",
			mask.Get(0, 0), mask.Get(1, 0), mask.Get(2, 0))
	}
}

func TestClassifyForegroundFixed(t *testing.T) {
	r := grid.NewRaster(4, 1, 1)
	for x, v := range []uint8{10, 100, 150, 250} {
		r.Set(x, 0, 0, v)
	}

	mask := Classify(r, ModeForegroundFixed, 120)
	want := []bool{false, false, true, true}
	for x := range want {
		if mask.Get(x, 0) != want[x] {
			t.Errorf("pixel %d: got %v, want %v", x, mask.Get(x, 0), want[x])
		}
	}
}

func TestClassifyForegroundOtsu(t *testing.T) {
	// Bimodal frame: the auto threshold lands at the bottom of the gap
	// (first maximum), so exactly the bright class is marked. No bias is
	// applied in this mode.
	r := grid.NewRaster(10, 1, 1)
	for x := 0; x < 10; x++ {
		if x >= 5 {
			r.Set(x, 0, 0, 100)
		}
	}
	if got := OtsuThreshold(r); got != 0 {
		t.Fatalf("OtsuThreshold: got %d, want 0", got)
	}

	mask := Classify(r, ModeForegroundOtsu, 0)
	for x := 0; x < 10; x++ {
		want := x >= 5
		if mask.Get(x, 0) != want {
			t.Errorf("pixel %d: got %v, want %v", x, mask.Get(x, 0), want)
		}
	}
}

func TestClassifyEmptyResultDetectable(t *testing.T) {
	mask := Classify(grid.NewRaster(16, 16, 4), ModeStroke, 0)
	if got := mask.Count(); got != 0 {
		t.Errorf("count on blank overlay: got %d, want 0", got)
	}
}
