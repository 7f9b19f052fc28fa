package segment

import (
	"fmt"

	"cytoseg/pkg/grid"
)

// MorphOp identifies a 3×3 binary morphological operation.
type MorphOp int

const (
	Erode MorphOp = iota
	Dilate
	Open
	Close
)

func (op MorphOp) String() string {
	switch op {
	case Erode:
		return "erode"
	case Dilate:
		return "dilate"
	case Open:
		return "open"
	case Close:
		return "close"
	default:
		return "unknown"
	}
}

// Morph applies a morphological operation to a strictly binary raster and
// returns a fresh output raster. Non-binary input yields ErrNotBinary:
// running a min/max filter over grayscale data produces garbage, so the
// gate refuses rather than proceeding.
func Morph(r *grid.Raster, op MorphOp) (*grid.Raster, error) {
	if !r.IsBinary() {
		return nil, ErrNotBinary
	}
	if r.Empty() {
		return grid.NewRaster(r.Width, r.Height, r.Channels), nil
	}

	switch op {
	case Erode:
		return rankPass(r, true), nil
	case Dilate:
		return rankPass(r, false), nil
	case Open:
		return rankPass(rankPass(r, true), false), nil
	case Close:
		return rankPass(rankPass(r, false), true), nil
	default:
		return nil, fmt.Errorf("unknown morphological operation %d", int(op))
	}
}

// rankPass runs a 3×3 minimum (erode) or maximum (dilate) filter. Border
// pixels clamp neighbor coordinates to the nearest in-bounds pixel, so the
// edge replicates rather than zero-pads; zero-padding would erode every
// border pixel regardless of content.
func rankPass(r *grid.Raster, minimum bool) *grid.Raster {
	out := grid.NewRaster(r.Width, r.Height, r.Channels)
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			v := neighborhoodRank(r, x, y, minimum)
			out.SetGray(x, y, v)
		}
	}
	return out
}

func neighborhoodRank(r *grid.Raster, x, y int, minimum bool) uint8 {
	var best uint8
	if minimum {
		best = 255
	}
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			nx := clamp(x+dx, 0, r.Width-1)
			ny := clamp(y+dy, 0, r.Height-1)
			v := r.Gray(nx, ny)
			if minimum {
				if v < best {
					best = v
				}
			} else {
				if v > best {
					best = v
				}
			}
		}
	}
	return best
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
