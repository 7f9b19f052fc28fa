package segment

import (
	"cytoseg/pkg/grid"
)

// foregroundBias scales the Otsu threshold down before binarization so that
// borderline pixels land on the foreground side. Cell interiors in phase
// images hover near the cut; losing them costs more than admitting a little
// background noise, which the morphological pre-clean removes anyway.
const foregroundBias = 0.95

// OtsuThreshold computes a global intensity threshold in [0, 255] by
// maximizing between-class variance over the grayscale histogram. Pixels
// with value strictly greater than the threshold are foreground. Ties keep
// the lowest threshold: the scan replaces the running maximum only on a
// strictly greater variance.
func OtsuThreshold(r *grid.Raster) uint8 {
	if r.Empty() {
		return 0
	}

	var hist [256]int
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			hist[r.Gray(x, y)]++
		}
	}

	total := r.Width * r.Height
	var weightedTotal float64
	for v, n := range hist {
		weightedTotal += float64(v) * float64(n)
	}

	var (
		best         int
		bestVariance float64
		bgCount      int
		bgWeighted   float64
	)
	for t := 0; t < 256; t++ {
		bgCount += hist[t]
		bgWeighted += float64(t) * float64(hist[t])

		fgCount := total - bgCount
		if bgCount == 0 || fgCount == 0 {
			continue
		}

		wBg := float64(bgCount) / float64(total)
		wFg := float64(fgCount) / float64(total)
		meanBg := bgWeighted / float64(bgCount)
		meanFg := (weightedTotal - bgWeighted) / float64(fgCount)

		diff := meanBg - meanFg
		variance := wBg * wFg * diff * diff
		if variance > bestVariance {
			bestVariance = variance
			best = t
		}
	}
	return uint8(best)
}

// BiasedOtsuThreshold returns the Otsu threshold after applying the
// foreground bias; this is the value the pipelines binarize with.
func BiasedOtsuThreshold(r *grid.Raster) uint8 {
	return uint8(float64(OtsuThreshold(r)) * foregroundBias)
}

// Binarize produces a 0/255 single-channel raster from the biased Otsu
// threshold: foreground (above threshold) becomes 255.
func Binarize(r *grid.Raster) *grid.Raster {
	out := grid.NewRaster(r.Width, r.Height, 1)
	if r.Empty() {
		return out
	}
	threshold := BiasedOtsuThreshold(r)
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			if r.Gray(x, y) > threshold {
				out.Set(x, y, 0, 255)
			}
		}
	}
	return out
}
