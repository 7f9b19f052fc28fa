package segment

import (
	"cytoseg/pkg/grid"
)

// Polarity states which intensity the image treats as background.
type Polarity int

const (
	// BackgroundWhite: bright pixels are background, dark blobs are cells.
	BackgroundWhite Polarity = iota
	// BackgroundBlack: dark pixels are background, bright blobs are cells.
	BackgroundBlack
)

func (p Polarity) String() string {
	switch p {
	case BackgroundWhite:
		return "background-white"
	case BackgroundBlack:
		return "background-black"
	default:
		return "unknown"
	}
}

// DetectPolarity votes with the four corner pixels: bright corners mean the
// background convention is white. Corners are the pixels least likely to be
// covered by cells.
func DetectPolarity(r *grid.Raster) Polarity {
	if r.Empty() {
		return BackgroundWhite
	}
	sum := int(r.Gray(0, 0)) +
		int(r.Gray(r.Width-1, 0)) +
		int(r.Gray(0, r.Height-1)) +
		int(r.Gray(r.Width-1, r.Height-1))
	if sum/4 > 127 {
		return BackgroundWhite
	}
	return BackgroundBlack
}

// foregroundMask extracts the object mask from a binary raster under the
// given polarity.
func foregroundMask(r *grid.Raster, pol Polarity) *grid.Bitmap {
	mask := grid.NewBitmap(r.Width, r.Height)
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			v := r.Gray(x, y)
			if (pol == BackgroundWhite && v < 128) || (pol == BackgroundBlack && v >= 128) {
				mask.Set(x, y, true)
			}
		}
	}
	return mask
}

var neighbors8 = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// watershedFlood seeds local maxima of the smoothed distance map and floods
// outward, separating touching objects. Returns the label grid (with
// Contested marking the one-pixel separation lines) and the region count.
//
// Seeding: a strictly interior foreground pixel is a seed if no 8-neighbor
// has a strictly greater distance. If an 8-neighbor already carries a label
// the seed adopts it, merging plateau maxima into one region; otherwise it
// gets a fresh label.
//
// Flooding processes the queue in FIFO insertion order rather than true
// priority-by-decreasing-distance. That is a documented approximation: on
// ambiguous geometry the separation line can land a pixel off the ideal
// ridge, which is acceptable for this use. When expansion reaches a pixel
// already owned by a different region, that pixel becomes Contested and
// stays background in the output — the separation line between cells.
func watershedFlood(mask *grid.Bitmap, dist *grid.DistMap) (*grid.Labels, int) {
	labels := grid.NewLabels(mask.Width, mask.Height)
	if mask.Empty() {
		return labels, 0
	}
	w, h := mask.Width, mask.Height

	type point struct{ x, y int }
	var queue []point
	var next grid.Cell = 1

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			if !mask.Get(x, y) {
				continue
			}
			center := dist.Get(x, y)
			isMax := true
			for _, d := range neighbors8 {
				if dist.Get(x+d[0], y+d[1]) > center {
					isMax = false
					break
				}
			}
			if !isMax {
				continue
			}

			label := grid.Empty
			for _, d := range neighbors8 {
				if n := labels.Get(x+d[0], y+d[1]); n.IsRegion() {
					label = n
					break
				}
			}
			if label == grid.Empty {
				label = next
				next++
			}
			labels.Set(x, y, label)
			queue = append(queue, point{x, y})
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		own := labels.Get(cur.x, cur.y)
		if !own.IsRegion() {
			// Contested while queued; contested pixels never expand.
			continue
		}
		for _, d := range neighbors8 {
			nx, ny := cur.x+d[0], cur.y+d[1]
			if nx < 0 || nx >= w || ny < 0 || ny >= h || !mask.Get(nx, ny) {
				continue
			}
			switch n := labels.Get(nx, ny); {
			case n == grid.Empty:
				labels.Set(nx, ny, own)
				queue = append(queue, point{nx, ny})
			case n.IsRegion() && n != own:
				labels.Set(nx, ny, grid.Contested)
			}
		}
	}

	count := labels.Compact()
	return labels, count
}
