// Package scalebar locates the burned-in scale bar most acquisition
// software stamps into the frame corner and reads its legend, yielding a
// microns-per-pixel calibration when the file metadata carries none.
package scalebar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"cytoseg/internal/segment"
	"cytoseg/pkg/geometry"
	"cytoseg/pkg/grid"
)

// stripFraction is the share of the frame height, from the bottom, searched
// for the bar. Acquisition overlays sit in the bottom corners.
const stripFraction = 0.2

// minBarLength filters out stray dark runs that are not a bar.
const minBarLength = 20

// Calibration is the outcome of reading a scale bar.
type Calibration struct {
	Bar             geometry.RectInt
	Legend          string  // raw OCR text
	Microns         float64 // physical length the bar represents
	MicronsPerPixel float64
}

// FindBar scans the bottom strip of the frame for the longest horizontal
// ink run (dark on a bright frame, bright on a dark one) and returns its
// bounding box. ok is false when no run passes the length floor.
func FindBar(r *grid.Raster) (bar geometry.RectInt, ok bool) {
	if r.Empty() {
		return geometry.RectInt{}, false
	}
	pol := segment.DetectPolarity(r)
	ink := func(x, y int) bool {
		v := r.Gray(x, y)
		if pol == segment.BackgroundWhite {
			return v < 64
		}
		return v > 192
	}

	yStart := r.Height - int(float64(r.Height)*stripFraction)
	if yStart < 0 {
		yStart = 0
	}

	bestLen := 0
	var bestX, bestY int
	for y := yStart; y < r.Height; y++ {
		run := 0
		for x := 0; x <= r.Width; x++ {
			if x < r.Width && ink(x, y) {
				run++
				continue
			}
			if run > bestLen {
				bestLen = run
				bestX = x - run
				bestY = y
			}
			run = 0
		}
	}
	if bestLen < minBarLength {
		return geometry.RectInt{}, false
	}

	// Grow the box vertically while the run persists, to cover thick bars.
	top, bottom := bestY, bestY
	covered := func(y int) bool {
		for x := bestX; x < bestX+bestLen; x++ {
			if !ink(x, y) {
				return false
			}
		}
		return true
	}
	for top > yStart && covered(top-1) {
		top--
	}
	for bottom < r.Height-1 && covered(bottom+1) {
		bottom++
	}

	return geometry.RectInt{X: bestX, Y: top, Width: bestLen, Height: bottom - top + 1}, true
}

// legendPattern matches "10 µm", "0.5mm", "200 nm" and the u-for-µ OCR
// confusion.
var legendPattern = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?)\s*(µm|um|nm|mm)`)

// parseLegend extracts the physical length in microns from OCR output.
func parseLegend(text string) (float64, error) {
	m := legendPattern.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return 0, fmt.Errorf("no length found in legend %q", text)
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("bad legend number %q: %w", m[1], err)
	}
	switch m[2] {
	case "nm":
		value /= 1000
	case "mm":
		value *= 1000
	}
	return value, nil
}
