package grid

// Cell is a single label-grid entry. The storage stays a dense int32 so a
// full-frame grid is four bytes per pixel, but callers should go through the
// tagged accessors instead of comparing raw values: 0 and -1 are reserved.
type Cell int32

const (
	// Empty marks an unlabeled/background cell.
	Empty Cell = 0
	// Contested marks a cell where floods with different labels collided.
	// It is permanent: no later pass may assign a region over it.
	Contested Cell = -1
)

// Region returns the positive region ID carried by the cell, if any.
func (c Cell) Region() (int32, bool) {
	if c > 0 {
		return int32(c), true
	}
	return 0, false
}

// IsRegion reports whether the cell carries a positive region label.
func (c Cell) IsRegion() bool { return c > 0 }

// Labels is a width×height grid of region labels. Region IDs are assigned
// starting at 1 in row-major discovery order. Once a cell is positive, later
// passes may only fill Empty cells; the single sanctioned exception is the
// watershed flood converting a colliding positive cell to Contested.
type Labels struct {
	Width  int
	Height int
	Cells  []Cell
}

// NewLabels allocates an all-Empty label grid, clamping negative dimensions.
func NewLabels(width, height int) *Labels {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Labels{Width: width, Height: height, Cells: make([]Cell, width*height)}
}

// Empty reports whether the grid has no cells.
func (l *Labels) Empty() bool {
	return l == nil || l.Width == 0 || l.Height == 0
}

// In reports whether (x, y) lies inside the grid bounds.
func (l *Labels) In(x, y int) bool {
	return x >= 0 && x < l.Width && y >= 0 && y < l.Height
}

// Get returns the cell at (x, y).
func (l *Labels) Get(x, y int) Cell {
	return l.Cells[y*l.Width+x]
}

// Set stores the cell at (x, y).
func (l *Labels) Set(x, y int, c Cell) {
	l.Cells[y*l.Width+x] = c
}

// MaxLabel returns the highest region ID present, or 0 if none.
func (l *Labels) MaxLabel() int32 {
	var maxID int32
	for _, c := range l.Cells {
		if id, ok := c.Region(); ok && id > maxID {
			maxID = id
		}
	}
	return maxID
}

// Compact renumbers region IDs densely starting at 1, preserving first-seen
// row-major order, and returns the number of distinct regions. Discarding
// below-minimum-area regions leaves holes in the ID sequence; palette-indexed
// consumers want the holes squeezed out.
func (l *Labels) Compact() int {
	remap := make(map[Cell]Cell)
	var next Cell = 1
	for i, c := range l.Cells {
		if !c.IsRegion() {
			continue
		}
		m, ok := remap[c]
		if !ok {
			m = next
			remap[c] = m
			next++
		}
		l.Cells[i] = m
	}
	return int(next - 1)
}
