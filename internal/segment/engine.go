package segment

import (
	"cytoseg/pkg/grid"
)

// Config tunes the segmentation pipelines. Two historical variants of the
// stroke pipeline existed — with and without area filtering and absorption —
// and this struct folds them into one engine: MinRegionArea 0 and
// AbsorptionPassLimit 0 reproduce the bare variant.
type Config struct {
	// MinRegionArea discards labeled regions smaller than this many
	// pixels as noise. 0 disables the filter.
	MinRegionArea int

	// AbsorptionPassLimit caps the stroke-absorption fixed point. 0
	// skips absorption entirely.
	AbsorptionPassLimit int

	// CompactLabels renumbers surviving regions densely at pipeline end
	// so palette-indexed consumers see 1..N with no holes.
	CompactLabels bool

	// PrecleanBlurRadius is the Gaussian radius applied before auto
	// binarization. 0 disables the blur.
	PrecleanBlurRadius float64

	// PrecleanOpen runs a morphological open on the binarized image to
	// knock out speckle before the watershed.
	PrecleanOpen bool
}

// DefaultConfig returns the tuning used by the interactive host.
func DefaultConfig() Config {
	return Config{
		MinRegionArea:       250,
		AbsorptionPassLimit: 64,
		CompactLabels:       true,
		PrecleanBlurRadius:  2,
		PrecleanOpen:        true,
	}
}

// StrokeResult is the outcome of the manual (stroke-enclosed) pipeline.
type StrokeResult struct {
	Labels   *grid.Labels // per-pixel region labels, 1..Regions
	Regions  int          // number of cells found
	Exterior *grid.Bitmap // the background component reached from the border
}

// SegmentStrokes runs the manual pipeline: classify painted stroke pixels,
// close gaps along the image border, flood the exterior background, label
// the enclosed regions, and absorb stroke pixels into adjacent regions.
// Returns ErrNoStrokes when nothing is painted and ErrNoRegions when the
// strokes enclose nothing (both user-actionable, not bugs). The overlay is
// never modified.
func SegmentStrokes(overlay *grid.Raster, cfg Config) (*StrokeResult, error) {
	strokes := Classify(overlay, ModeStroke, 0)
	if strokes.Count() == 0 {
		return nil, ErrNoStrokes
	}

	// Border closure pixels are synthetic: they gate the exterior fill
	// but are not real strokes, so labeling keeps the original mask.
	extended := CloseBorders(strokes)
	exterior := ExteriorFill(extended)

	ctx := newSegContext(strokes, exterior)
	regions := ctx.labelRegions(cfg.MinRegionArea)
	if regions == 0 {
		return nil, ErrNoRegions
	}

	if cfg.AbsorptionPassLimit > 0 {
		ctx.absorbBoundaries(cfg.AbsorptionPassLimit)
	}
	if cfg.CompactLabels {
		regions = ctx.labels.Compact()
	}

	return &StrokeResult{
		Labels:   ctx.labels,
		Regions:  regions,
		Exterior: exterior,
	}, nil
}

// SplitResult is the outcome of the automatic (watershed) pipeline.
type SplitResult struct {
	Labels    *grid.Labels // region labels; Contested marks separation lines
	Regions   int          // number of objects after splitting
	Polarity  Polarity     // detected background convention
	Recolored *grid.Raster // binary output with separation lines carved in
}

// SplitTouching runs the seeded watershed on an already-binary raster,
// separating touching blobs with one-pixel background lines. Non-binary
// input yields ErrNotBinary.
func SplitTouching(binary *grid.Raster) (*SplitResult, error) {
	if !binary.IsBinary() {
		return nil, ErrNotBinary
	}

	pol := DetectPolarity(binary)
	mask := foregroundMask(binary, pol)
	dist := SmoothDistances(DistanceTransform(mask))
	labels, regions := watershedFlood(mask, dist)

	// Recolor: labeled foreground keeps the foreground shade, contested
	// pixels and background take the background shade.
	var bg, fg uint8 = 0, 255
	if pol == BackgroundWhite {
		bg, fg = 255, 0
	}
	out := grid.NewRaster(binary.Width, binary.Height, 1)
	for y := 0; y < binary.Height; y++ {
		for x := 0; x < binary.Width; x++ {
			if labels.Get(x, y).IsRegion() {
				out.Set(x, y, 0, fg)
			} else {
				out.Set(x, y, 0, bg)
			}
		}
	}

	return &SplitResult{
		Labels:    labels,
		Regions:   regions,
		Polarity:  pol,
		Recolored: out,
	}, nil
}

// AutoSegment runs the full automatic pipeline on a raw grayscale frame:
// Gaussian pre-blur, biased-Otsu binarization, optional morphological open,
// then the watershed split.
func AutoSegment(r *grid.Raster, cfg Config) (*SplitResult, error) {
	binary := Preclean(r, cfg)
	return SplitTouching(binary)
}
