package grid

import (
	"image"
	"image/color"
)

// FromImage converts a decoded image into a 4-channel raster.
func FromImage(img image.Image) *Raster {
	bounds := img.Bounds()
	out := NewRaster(bounds.Dx(), bounds.Dy(), 4)
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			base := (y*out.Width + x) * 4
			out.Pix[base] = c.R
			out.Pix[base+1] = c.G
			out.Pix[base+2] = c.B
			out.Pix[base+3] = c.A
		}
	}
	return out
}

// FromGrayImage converts a decoded image into a 1-channel raster using the
// standard luminance conversion.
func FromGrayImage(img image.Image) *Raster {
	bounds := img.Bounds()
	out := NewRaster(bounds.Dx(), bounds.Dy(), 1)
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			g := color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
			out.Pix[y*out.Width+x] = g.Y
		}
	}
	return out
}

// ToImage renders the raster as an NRGBA image. Single- and two-channel
// rasters replicate their gray value across R, G, and B.
func (r *Raster) ToImage() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			var c color.NRGBA
			switch r.Channels {
			case 3, 4:
				c = color.NRGBA{R: r.At(x, y, 0), G: r.At(x, y, 1), B: r.At(x, y, 2), A: r.Alpha(x, y)}
			default:
				v := r.At(x, y, 0)
				c = color.NRGBA{R: v, G: v, B: v, A: r.Alpha(x, y)}
			}
			out.SetNRGBA(x, y, c)
		}
	}
	return out
}
