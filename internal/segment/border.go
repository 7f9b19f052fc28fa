package segment

import (
	"sort"

	"cytoseg/pkg/grid"
)

// borderBand is how many pixels deep from each image edge a stroke pixel
// counts as touching that edge.
const borderBand = 2

// CloseBorders returns a copy of the stroke mask with gaps along the four
// image edges closed: for each edge, stroke pixels within the edge band are
// collected and the edge segment between each consecutive pair is marked.
// A U-shaped stroke that runs to the border on both ends then encloses a
// region without the user tracing along the edge. The closure pixels are
// synthetic — callers keep the original mask for final labeling.
func CloseBorders(strokes *grid.Bitmap) *grid.Bitmap {
	out := strokes.Clone()
	if strokes.Empty() {
		return out
	}
	w, h := strokes.Width, strokes.Height
	band := borderBand
	if band > h {
		band = h
	}
	if band > w {
		band = w
	}

	// Top and bottom edges: touch coordinates are x positions.
	for _, edge := range []struct{ yStart, yLine int }{
		{0, 0},
		{h - band, h - 1},
	} {
		var touches []int
		for x := 0; x < w; x++ {
			for i := 0; i < band; i++ {
				if strokes.Get(x, edge.yStart+i) {
					touches = append(touches, x)
					break
				}
			}
		}
		closeEdge(touches, func(x int) { out.Set(x, edge.yLine, true) })
	}

	// Left and right edges: touch coordinates are y positions.
	for _, edge := range []struct{ xStart, xLine int }{
		{0, 0},
		{w - band, w - 1},
	} {
		var touches []int
		for y := 0; y < h; y++ {
			for i := 0; i < band; i++ {
				if strokes.Get(edge.xStart+i, y) {
					touches = append(touches, y)
					break
				}
			}
		}
		closeEdge(touches, func(y int) { out.Set(edge.xLine, y, true) })
	}

	return out
}

// closeEdge marks every coordinate between consecutive touch points. Fewer
// than two touches means nothing to close on that edge.
func closeEdge(touches []int, mark func(int)) {
	if len(touches) < 2 {
		return
	}
	sort.Ints(touches)
	for i := 0; i < len(touches)-1; i++ {
		for c := touches[i]; c <= touches[i+1]; c++ {
			mark(c)
		}
	}
}

// ExteriorFill marks the single background component reachable from the
// image border: a multi-source BFS seeded from every non-stroke edge pixel,
// expanding through 4-connected non-stroke neighbors. Pixels not in the
// result are either strokes or fully enclosed interior. The mask should be
// the border-closed one so edge-touching strokes seal their regions.
func ExteriorFill(strokes *grid.Bitmap) *grid.Bitmap {
	visited := grid.NewBitmap(strokes.Width, strokes.Height)
	if strokes.Empty() {
		return visited
	}
	w, h := strokes.Width, strokes.Height

	type point struct{ x, y int }
	var queue []point
	seed := func(x, y int) {
		if !strokes.Get(x, y) && !visited.Get(x, y) {
			visited.Set(x, y, true)
			queue = append(queue, point{x, y})
		}
	}
	for x := 0; x < w; x++ {
		seed(x, 0)
		seed(x, h-1)
	}
	for y := 0; y < h; y++ {
		seed(0, y)
		seed(w-1, y)
	}

	dirs := [4]point{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range dirs {
			nx, ny := cur.x+d.x, cur.y+d.y
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			if visited.Get(nx, ny) || strokes.Get(nx, ny) {
				continue
			}
			visited.Set(nx, ny, true)
			queue = append(queue, point{nx, ny})
		}
	}
	return visited
}
