// Package segment implements the raster segmentation engine: stroke and
// foreground classification, Otsu auto-thresholding, binary morphology, and
// the two segmentation pipelines (stroke-enclosed region labeling and seeded
// watershed splitting).
package segment

import (
	"cytoseg/pkg/grid"
)

// ClassifyMode selects how Classify maps raster pixels to mask bits.
type ClassifyMode int

const (
	// ModeStroke marks painted overlay pixels: alpha above the stroke
	// cutoff, or a luminance test for rasters without an alpha channel.
	ModeStroke ClassifyMode = iota
	// ModeForegroundOtsu marks pixels above the auto-computed threshold.
	ModeForegroundOtsu
	// ModeForegroundFixed marks pixels above a caller-supplied cutoff.
	ModeForegroundFixed
)

func (m ClassifyMode) String() string {
	switch m {
	case ModeStroke:
		return "stroke"
	case ModeForegroundOtsu:
		return "foreground-otsu"
	case ModeForegroundFixed:
		return "foreground-fixed"
	default:
		return "unknown"
	}
}

// strokeAlphaCutoff is the minimum overlay alpha for a pixel to count as
// painted. Brush anti-aliasing leaves a fringe of near-zero alpha that must
// not register as stroke.
const strokeAlphaCutoff = 10

// strokeLumaCutoff is the luminance cutoff used for overlays that carry no
// alpha channel: anything brighter than background black counts as painted.
const strokeLumaCutoff = 10

// Classify converts a raster into a boolean mask. cutoff is only consulted
// for ModeForegroundFixed. An all-false result is valid; callers detect it
// via Bitmap.Count.
func Classify(r *grid.Raster, mode ClassifyMode, cutoff uint8) *grid.Bitmap {
	out := grid.NewBitmap(r.Width, r.Height)
	if r.Empty() {
		return out
	}

	hasAlpha := r.Channels == 2 || r.Channels == 4

	var threshold uint8
	switch mode {
	case ModeForegroundOtsu:
		threshold = OtsuThreshold(r)
	case ModeForegroundFixed:
		threshold = cutoff
	}

	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			var on bool
			switch mode {
			case ModeStroke:
				if hasAlpha {
					on = r.Alpha(x, y) > strokeAlphaCutoff
				} else {
					on = r.Gray(x, y) > strokeLumaCutoff
				}
			default:
				on = r.Gray(x, y) > threshold
			}
			if on {
				out.Set(x, y, true)
			}
		}
	}
	return out
}
