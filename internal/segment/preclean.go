package segment

import (
	"github.com/anthonynsimon/bild/blur"

	"cytoseg/pkg/grid"
)

// Preclean prepares a raw frame for the watershed: Gaussian blur to merge
// sensor noise into the background, biased-Otsu binarization, and an
// optional morphological open to remove speckle. Returns a fresh
// single-channel 0/255 raster; the input is untouched.
func Preclean(r *grid.Raster, cfg Config) *grid.Raster {
	if r.Empty() {
		return grid.NewRaster(r.Width, r.Height, 1)
	}

	work := r
	if cfg.PrecleanBlurRadius > 0 {
		blurred := blur.Gaussian(r.ToImage(), cfg.PrecleanBlurRadius)
		work = grid.FromImage(blurred)
	}

	binary := Binarize(work)

	if cfg.PrecleanOpen {
		// Morph cannot fail here: Binarize output is 0/255 by construction.
		if opened, err := Morph(binary, Open); err == nil {
			binary = opened
		}
	}
	return binary
}
