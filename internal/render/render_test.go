package render

import (
	"image/color"
	"testing"

	"cytoseg/pkg/grid"
)

func TestPaletteDistinctAndDeterministic(t *testing.T) {
	p1 := Palette(16)
	p2 := Palette(16)
	for i := range p1 {
		if p1[i] != p2[i] {
			t.Fatalf("palette not deterministic at %d", i)
		}
	}
	seen := map[color.NRGBA]bool{}
	for i, c := range p1 {
		if seen[c] {
			t.Fatalf("duplicate palette color at %d: %v", i, c)
		}
		seen[c] = true
	}
}

func TestLabelImage(t *testing.T) {
	labels := grid.NewLabels(4, 2)
	labels.Set(0, 0, grid.Cell(1))
	labels.Set(1, 0, grid.Cell(2))
	labels.Set(2, 0, grid.Contested)

	img := LabelImage(labels)

	black := color.NRGBA{A: 255}
	if got := img.NRGBAAt(2, 0); got != black {
		t.Errorf("contested pixel: got %v, want black", got)
	}
	if got := img.NRGBAAt(3, 1); got != black {
		t.Errorf("background pixel: got %v, want black", got)
	}
	c1 := img.NRGBAAt(0, 0)
	c2 := img.NRGBAAt(1, 0)
	if c1 == black || c2 == black || c1 == c2 {
		t.Errorf("region colors: got %v and %v, want two distinct non-black", c1, c2)
	}
}

func TestOverlayOpacity(t *testing.T) {
	frame := grid.NewRaster(2, 1, 1)
	frame.Set(0, 0, 0, 100)
	frame.Set(1, 0, 0, 100)

	labels := grid.NewLabels(2, 1)
	labels.Set(0, 0, grid.Cell(1))

	// Full opacity replaces the labeled pixel with the palette color.
	img := Overlay(frame, labels, 1)
	want := Palette(1)[0]
	if got := img.NRGBAAt(0, 0); got != want {
		t.Errorf("labeled pixel at opacity 1: got %v, want %v", got, want)
	}
	// Unlabeled pixels always show the frame.
	if got := img.NRGBAAt(1, 0); got.R != 100 {
		t.Errorf("unlabeled pixel: got %v, want frame gray 100", got)
	}

	// Zero opacity leaves everything untouched.
	img = Overlay(frame, labels, 0)
	if got := img.NRGBAAt(0, 0); got.R != 100 {
		t.Errorf("labeled pixel at opacity 0: got %v, want frame gray 100", got)
	}
}

func TestOverlayDimensionMismatch(t *testing.T) {
	frame := grid.NewRaster(4, 4, 1)
	labels := grid.NewLabels(2, 2)
	labels.Set(0, 0, grid.Cell(1))

	// Mismatched grids render the frame untouched rather than panicking.
	img := Overlay(frame, labels, 1)
	if got := img.NRGBAAt(0, 0); got.R != 0 || got.G != 0 || got.B != 0 {
		t.Errorf("mismatched overlay altered the frame: %v", got)
	}
}
