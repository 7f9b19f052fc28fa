package segment

import (
	"math"

	"cytoseg/pkg/grid"
)

// DistanceTransform computes a two-pass chamfer distance map over a binary
// mask: for each foreground pixel, the approximate distance to the nearest
// background pixel (axis step 1, diagonal step √2). Background pixels carry
// 0. The result approximates Euclidean distance; it is not exact, which is
// acceptable for seed finding.
func DistanceTransform(mask *grid.Bitmap) *grid.DistMap {
	dist := grid.NewDistMap(mask.Width, mask.Height)
	if mask.Empty() {
		return dist
	}
	w, h := mask.Width, mask.Height

	// Foreground starts at an unreachable sentinel, background at 0.
	sentinel := float64(2 * w * h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask.Get(x, y) {
				dist.Set(x, y, sentinel)
			}
		}
	}

	relax := func(x, y, nx, ny int, step float64) {
		if nx < 0 || nx >= w || ny < 0 || ny >= h {
			return
		}
		if d := dist.Get(nx, ny) + step; d < dist.Get(x, y) {
			dist.Set(x, y, d)
		}
	}

	// Forward pass: N, NW, NE, W are already final for this sweep.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !mask.Get(x, y) {
				continue
			}
			relax(x, y, x-1, y, 1)
			relax(x, y, x, y-1, 1)
			relax(x, y, x-1, y-1, math.Sqrt2)
			relax(x, y, x+1, y-1, math.Sqrt2)
		}
	}

	// Backward pass: S, SE, SW, E.
	for y := h - 1; y >= 0; y-- {
		for x := w - 1; x >= 0; x-- {
			if !mask.Get(x, y) {
				continue
			}
			relax(x, y, x+1, y, 1)
			relax(x, y, x, y+1, 1)
			relax(x, y, x+1, y+1, math.Sqrt2)
			relax(x, y, x-1, y+1, math.Sqrt2)
		}
	}

	return dist
}

// smoothWeights is the 3×3 kernel for SmoothDistances: center 4, axis
// neighbors 2, diagonals 1, divisor 16.
var smoothWeights = [3][3]float64{
	{1, 2, 1},
	{2, 4, 2},
	{1, 2, 1},
}

// SmoothDistances returns a weighted 3×3 average of the distance map.
// Out-of-bounds neighbors mirror the center value. The chamfer transform's
// discrete steps leave staircase plateaus full of spurious local maxima;
// without this pass the watershed grossly over-segments, so smoothing is a
// required stage, not polish.
func SmoothDistances(dist *grid.DistMap) *grid.DistMap {
	out := grid.NewDistMap(dist.Width, dist.Height)
	w, h := dist.Width, dist.Height
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			center := dist.Get(x, y)
			var sum float64
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					v := center
					if nx >= 0 && nx < w && ny >= 0 && ny < h {
						v = dist.Get(nx, ny)
					}
					sum += v * smoothWeights[dy+1][dx+1]
				}
			}
			out.Set(x, y, sum/16)
		}
	}
	return out
}
