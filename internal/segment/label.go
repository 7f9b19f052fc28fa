package segment

import (
	"cytoseg/pkg/grid"
)

// segContext carries the shared state threaded through the manual pipeline
// stages: the stroke mask, the exterior-fill result, the label grid being
// built, and the label counter. It is a per-call value, never shared.
type segContext struct {
	strokes  *grid.Bitmap
	exterior *grid.Bitmap
	labels   *grid.Labels
	next     int32
}

func newSegContext(strokes, exterior *grid.Bitmap) *segContext {
	return &segContext{
		strokes:  strokes,
		exterior: exterior,
		labels:   grid.NewLabels(strokes.Width, strokes.Height),
		next:     1,
	}
}

// labelRegions scans row-major and flood-fills every pixel that is neither
// stroke, nor exterior background, nor already labeled, assigning each
// 4-connected region a fresh label. Regions smaller than minArea are rolled
// back to Empty (noise, not a cell); the label counter does not rewind, so
// the raw sequence may have holes — Labels.Compact squeezes them out later.
// Returns the number of surviving regions.
func (ctx *segContext) labelRegions(minArea int) int {
	w, h := ctx.labels.Width, ctx.labels.Height
	regions := 0

	type point struct{ x, y int }
	var stack []point

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if ctx.strokes.Get(x, y) || ctx.exterior.Get(x, y) || ctx.labels.Get(x, y) != grid.Empty {
				continue
			}

			label := grid.Cell(ctx.next)
			ctx.next++

			// Iterative fill: recursion here blows the stack on
			// full-frame regions.
			stack = stack[:0]
			stack = append(stack, point{x, y})
			ctx.labels.Set(x, y, label)
			var filled []point
			filled = append(filled, point{x, y})

			for len(stack) > 0 {
				cur := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				for _, d := range [4]point{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
					nx, ny := cur.x+d.x, cur.y+d.y
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					if ctx.strokes.Get(nx, ny) || ctx.exterior.Get(nx, ny) || ctx.labels.Get(nx, ny) != grid.Empty {
						continue
					}
					ctx.labels.Set(nx, ny, label)
					stack = append(stack, point{nx, ny})
					filled = append(filled, point{nx, ny})
				}
			}

			if minArea > 0 && len(filled) < minArea {
				for _, p := range filled {
					ctx.labels.Set(p.x, p.y, grid.Empty)
				}
				continue
			}
			regions++
		}
	}
	return regions
}

// absorbBoundaries resolves stroke pixels into adjacent regions. Each pass
// stages every still-unlabeled stroke pixel whose labeled 8-neighbors agree
// on a single region, then applies the stage at the end of the pass — never
// label and read within the same pass, or the scan order biases which side
// of a thin stroke wins. Pixels with disagreeing neighbors stay unlabeled
// for this pass but may resolve later as absorption cascades inward ring by
// ring. Stops at passLimit or the first pass that stages nothing; whatever
// is still ambiguous then remains boundary/background.
func (ctx *segContext) absorbBoundaries(passLimit int) {
	w, h := ctx.labels.Width, ctx.labels.Height

	type staged struct {
		x, y  int
		label grid.Cell
	}

	for pass := 0; pass < passLimit; pass++ {
		var stage []staged

		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if !ctx.strokes.Get(x, y) || ctx.labels.Get(x, y) != grid.Empty {
					continue
				}

				var candidate grid.Cell
				ambiguous := false
				for dy := -1; dy <= 1 && !ambiguous; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						nx, ny := x+dx, y+dy
						if nx < 0 || nx >= w || ny < 0 || ny >= h {
							continue
						}
						n := ctx.labels.Get(nx, ny)
						if !n.IsRegion() {
							continue
						}
						if candidate == grid.Empty {
							candidate = n
						} else if candidate != n {
							ambiguous = true
							break
						}
					}
				}

				if candidate != grid.Empty && !ambiguous {
					stage = append(stage, staged{x, y, candidate})
				}
			}
		}

		if len(stage) == 0 {
			break
		}
		for _, s := range stage {
			ctx.labels.Set(s.x, s.y, s.label)
		}
	}
}
