package app

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"cytoseg/internal/scalebar"
	"cytoseg/pkg/geometry"
	"cytoseg/pkg/grid"
)

// stubCalibrator stands in for the OCR engine, which needs a Tesseract
// install the test environment does not have.
type stubCalibrator struct {
	cal *scalebar.Calibration
	err error
}

func (c stubCalibrator) Calibrate(*grid.Raster) (*scalebar.Calibration, error) {
	return c.cal, c.err
}

func writeBlankPNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "frame.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return path
}

func TestStateSegmentStrokes(t *testing.T) {
	s := NewState()
	if err := s.LoadFrame(writeBlankPNG(t, 60, 60)); err != nil {
		t.Fatalf("LoadFrame: %v", err)
	}

	// Paint a closed box on the overlay.
	overlay := grid.NewRaster(60, 60, 4)
	for x := 10; x <= 50; x++ {
		overlay.Set(x, 10, 3, 255)
		overlay.Set(x, 50, 3, 255)
	}
	for y := 10; y <= 50; y++ {
		overlay.Set(10, y, 3, 255)
		overlay.Set(50, y, 3, 255)
	}
	s.SetOverlay(overlay)

	regions, err := s.SegmentStrokes()
	if err != nil {
		t.Fatalf("SegmentStrokes: %v", err)
	}
	if regions != 1 {
		t.Errorf("regions: got %d, want 1", regions)
	}

	labels, n := s.Labels()
	if labels == nil || n != 1 {
		t.Errorf("stored labels: got %v/%d", labels, n)
	}
	stats := s.Stats()
	if len(stats) != 1 {
		t.Fatalf("stats: got %d entries, want 1", len(stats))
	}
	// 39×39 interior plus the absorbed stroke ring.
	if stats[0].Area < 39*39 {
		t.Errorf("area: got %d, want at least %d", stats[0].Area, 39*39)
	}
}

func TestStateRequiresFrame(t *testing.T) {
	s := NewState()
	if _, err := s.SegmentStrokes(); err == nil {
		t.Error("expected error without a loaded frame")
	}
	if _, err := s.AutoSegment(); err == nil {
		t.Error("expected error without a loaded frame")
	}
}

func TestStoreResultWithoutFrame(t *testing.T) {
	s := NewState()
	s.storeResult(grid.NewLabels(4, 4), 0)
	if got := s.Stats(); got != nil {
		t.Errorf("stats without a frame: got %v, want nil", got)
	}
}

func TestStateCalibrate(t *testing.T) {
	s := NewState()
	stub := stubCalibrator{cal: &scalebar.Calibration{
		Bar:             geometry.RectInt{X: 5, Y: 30, Width: 40, Height: 3},
		Legend:          "10 µm",
		Microns:         10,
		MicronsPerPixel: 0.25,
	}}

	if _, err := s.Calibrate(stub); err == nil {
		t.Error("expected error without a loaded frame")
	}

	if err := s.LoadFrame(writeBlankPNG(t, 40, 40)); err != nil {
		t.Fatalf("LoadFrame: %v", err)
	}
	cal, err := s.Calibrate(stub)
	if err != nil {
		t.Fatalf("Calibrate: %v", err)
	}
	if cal.MicronsPerPixel != 0.25 {
		t.Errorf("calibration: got %v, want 0.25", cal.MicronsPerPixel)
	}
	if got := s.Frame().MicronsPerPixel; got != 0.25 {
		t.Errorf("frame µm/px: got %v, want 0.25", got)
	}

	failing := stubCalibrator{err: errors.New("no scale bar found")}
	if _, err := s.Calibrate(failing); err == nil {
		t.Error("expected calibrator error to propagate")
	}
	if got := s.Frame().MicronsPerPixel; got != 0.25 {
		t.Errorf("failed calibration must not change µm/px: got %v", got)
	}
}

func TestStateCalibrationRefreshesStats(t *testing.T) {
	s := NewState()
	if err := s.LoadFrame(writeBlankPNG(t, 40, 40)); err != nil {
		t.Fatalf("LoadFrame: %v", err)
	}
	overlay := grid.NewRaster(40, 40, 4)
	for x := 5; x <= 35; x++ {
		overlay.Set(x, 5, 3, 255)
		overlay.Set(x, 35, 3, 255)
	}
	for y := 5; y <= 35; y++ {
		overlay.Set(5, y, 3, 255)
		overlay.Set(35, y, 3, 255)
	}
	s.SetOverlay(overlay)
	if _, err := s.SegmentStrokes(); err != nil {
		t.Fatalf("SegmentStrokes: %v", err)
	}

	s.SetCalibration(0.25)
	stats := s.Stats()
	if len(stats) != 1 || stats[0].EquivalentDiameterUm == 0 {
		t.Error("calibration did not propagate into statistics")
	}
}
