// Package grid provides the dense pixel-grid types shared by the
// segmentation engine: rasters, binary masks, label grids, and distance maps.
// All grids are row-major with the origin at the top-left.
package grid

// Raster is a width×height pixel buffer with 1 to 4 interleaved uint8
// channels (gray, gray+alpha, RGB, or RGBA). Engine stages treat rasters as
// read-only inputs and allocate fresh buffers for their outputs.
type Raster struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

// NewRaster allocates a zeroed raster. Non-positive dimensions and channel
// counts outside 1..4 are clamped so degenerate requests yield an empty
// raster instead of a panic.
func NewRaster(width, height, channels int) *Raster {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if channels < 1 {
		channels = 1
	}
	if channels > 4 {
		channels = 4
	}
	return &Raster{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]uint8, width*height*channels),
	}
}

// Empty reports whether the raster has no pixels.
func (r *Raster) Empty() bool {
	return r == nil || r.Width == 0 || r.Height == 0
}

// In reports whether (x, y) lies inside the raster bounds.
func (r *Raster) In(x, y int) bool {
	return x >= 0 && x < r.Width && y >= 0 && y < r.Height
}

// At returns the sample for channel c at (x, y).
func (r *Raster) At(x, y, c int) uint8 {
	return r.Pix[(y*r.Width+x)*r.Channels+c]
}

// Set stores the sample for channel c at (x, y).
func (r *Raster) Set(x, y, c int, v uint8) {
	r.Pix[(y*r.Width+x)*r.Channels+c] = v
}

// Gray returns the per-pixel channel average at (x, y). For RGBA rasters the
// alpha channel is excluded so transparency does not skew intensity.
func (r *Raster) Gray(x, y int) uint8 {
	base := (y*r.Width + x) * r.Channels
	n := r.Channels
	if n == 4 {
		n = 3
	}
	sum := 0
	for c := 0; c < n; c++ {
		sum += int(r.Pix[base+c])
	}
	return uint8(sum / n)
}

// Alpha returns the alpha sample at (x, y), or 255 for rasters without an
// alpha channel (1- and 3-channel layouts are fully opaque).
func (r *Raster) Alpha(x, y int) uint8 {
	switch r.Channels {
	case 2:
		return r.At(x, y, 1)
	case 4:
		return r.At(x, y, 3)
	default:
		return 255
	}
}

// SetGray stores v into every color channel at (x, y), leaving alpha opaque.
func (r *Raster) SetGray(x, y int, v uint8) {
	base := (y*r.Width + x) * r.Channels
	switch r.Channels {
	case 1:
		r.Pix[base] = v
	case 2:
		r.Pix[base] = v
		r.Pix[base+1] = 255
	case 3:
		r.Pix[base] = v
		r.Pix[base+1] = v
		r.Pix[base+2] = v
	case 4:
		r.Pix[base] = v
		r.Pix[base+1] = v
		r.Pix[base+2] = v
		r.Pix[base+3] = 255
	}
}

// Clone returns a deep copy of the raster.
func (r *Raster) Clone() *Raster {
	out := NewRaster(r.Width, r.Height, r.Channels)
	copy(out.Pix, r.Pix)
	return out
}

// IsBinary reports whether every color sample is exactly 0 or 255. The
// morphology and watershed stages require this and refuse other inputs.
// Alpha samples are ignored: an opaque overlay is still binary.
func (r *Raster) IsBinary() bool {
	if r.Empty() {
		return true
	}
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			n := r.Channels
			if n == 2 || n == 4 {
				n--
			}
			base := (y*r.Width + x) * r.Channels
			for c := 0; c < n; c++ {
				if v := r.Pix[base+c]; v != 0 && v != 255 {
					return false
				}
			}
		}
	}
	return true
}
