package grid

// Bitmap is a width×height boolean mask derived from a raster by a
// threshold predicate (stroke vs. not, foreground vs. background).
type Bitmap struct {
	Width  int
	Height int
	Bits   []bool
}

// NewBitmap allocates a cleared bitmap, clamping negative dimensions to zero.
func NewBitmap(width, height int) *Bitmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Bitmap{Width: width, Height: height, Bits: make([]bool, width*height)}
}

// Empty reports whether the bitmap has no pixels.
func (b *Bitmap) Empty() bool {
	return b == nil || b.Width == 0 || b.Height == 0
}

// In reports whether (x, y) lies inside the bitmap bounds.
func (b *Bitmap) In(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// Get returns the bit at (x, y).
func (b *Bitmap) Get(x, y int) bool {
	return b.Bits[y*b.Width+x]
}

// Set stores the bit at (x, y).
func (b *Bitmap) Set(x, y int, v bool) {
	b.Bits[y*b.Width+x] = v
}

// Count returns the number of set bits. A zero count is how callers detect
// "no strokes found" after classification.
func (b *Bitmap) Count() int {
	n := 0
	for _, v := range b.Bits {
		if v {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the bitmap.
func (b *Bitmap) Clone() *Bitmap {
	out := NewBitmap(b.Width, b.Height)
	copy(out.Bits, b.Bits)
	return out
}

// DistMap is a width×height grid of chamfer distances to the nearest
// background pixel: 1.0 per axis step, ≈1.414 per diagonal step. Background
// cells carry 0. Values approximate Euclidean distance; they are not exact.
type DistMap struct {
	Width  int
	Height int
	Dist   []float64
}

// NewDistMap allocates a zeroed distance map, clamping negative dimensions.
func NewDistMap(width, height int) *DistMap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &DistMap{Width: width, Height: height, Dist: make([]float64, width*height)}
}

// Get returns the distance at (x, y).
func (d *DistMap) Get(x, y int) float64 {
	return d.Dist[y*d.Width+x]
}

// Set stores the distance at (x, y).
func (d *DistMap) Set(x, y int, v float64) {
	d.Dist[y*d.Width+x] = v
}
