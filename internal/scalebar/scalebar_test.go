package scalebar

import (
	"math"
	"testing"

	"cytoseg/pkg/grid"
)

func TestFindBarBrightFrame(t *testing.T) {
	// White frame with a dark 40×3 bar near the bottom-right corner.
	r := grid.NewRaster(200, 150, 1)
	for i := range r.Pix {
		r.Pix[i] = 255
	}
	for y := 140; y <= 142; y++ {
		for x := 130; x < 170; x++ {
			r.Set(x, y, 0, 0)
		}
	}

	bar, ok := FindBar(r)
	if !ok {
		t.Fatal("bar not found")
	}
	if bar.X != 130 || bar.Width != 40 {
		t.Errorf("bar x/width: got %d/%d, want 130/40", bar.X, bar.Width)
	}
	if bar.Y != 140 || bar.Height != 3 {
		t.Errorf("bar y/height: got %d/%d, want 140/3", bar.Y, bar.Height)
	}
}

func TestFindBarIgnoresShortRuns(t *testing.T) {
	r := grid.NewRaster(100, 100, 1)
	for i := range r.Pix {
		r.Pix[i] = 255
	}
	// A 10 px smudge is below the length floor.
	for x := 40; x < 50; x++ {
		r.Set(x, 95, 0, 0)
	}
	if _, ok := FindBar(r); ok {
		t.Error("short run mistaken for a scale bar")
	}
}

func TestFindBarOutsideStrip(t *testing.T) {
	r := grid.NewRaster(100, 100, 1)
	for i := range r.Pix {
		r.Pix[i] = 255
	}
	// A long dark run mid-frame is a cell edge, not a scale bar.
	for x := 10; x < 90; x++ {
		r.Set(x, 50, 0, 0)
	}
	if _, ok := FindBar(r); ok {
		t.Error("mid-frame run mistaken for a scale bar")
	}
}

func TestParseLegend(t *testing.T) {
	tests := []struct {
		text    string
		want    float64
		wantErr bool
	}{
		{"10 µm", 10, false},
		{"10um", 10, false},
		{"0.5 mm", 500, false},
		{"200 nm", 0.2, false},
		{"scale 25 µm bar", 25, false},
		{"no numbers here", 0, true},
		{"µm", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := parseLegend(tt.text)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseLegend: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
