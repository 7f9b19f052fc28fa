// Package render turns label grids into display images: a distinct color
// per region, optionally composited over the source frame.
package render

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"cytoseg/pkg/grid"
)

// goldenAngle spaces consecutive palette hues so neighboring label IDs land
// far apart on the color wheel; adjacent cells then rarely share a hue.
const goldenAngle = 137.5

// Palette returns n visually distinct, fully saturated colors. The mapping
// is deterministic: label k always renders the same color across frames.
func Palette(n int) []color.NRGBA {
	out := make([]color.NRGBA, n)
	for i := 0; i < n; i++ {
		hue := float64(i) * goldenAngle
		for hue >= 360 {
			hue -= 360
		}
		c := colorful.Hsv(hue, 0.85, 0.95)
		r, g, b := c.RGB255()
		out[i] = color.NRGBA{R: r, G: g, B: b, A: 255}
	}
	return out
}

// LabelImage renders the label grid with one palette color per region.
// Background and contested separation pixels are opaque black.
func LabelImage(labels *grid.Labels) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, labels.Width, labels.Height))
	palette := Palette(int(labels.MaxLabel()))
	for y := 0; y < labels.Height; y++ {
		for x := 0; x < labels.Width; x++ {
			c := color.NRGBA{A: 255}
			if id, ok := labels.Get(x, y).Region(); ok {
				c = palette[(int(id)-1)%len(palette)]
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// Overlay composites the label colors over the source frame with the given
// opacity in [0,1]. Unlabeled pixels show the frame unchanged, so the user
// sees segmentation quality in place.
func Overlay(frame *grid.Raster, labels *grid.Labels, opacity float64) *image.NRGBA {
	img := frame.ToImage()
	if labels.Empty() || labels.Width != frame.Width || labels.Height != frame.Height {
		return img
	}
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}

	palette := Palette(int(labels.MaxLabel()))
	for y := 0; y < labels.Height; y++ {
		for x := 0; x < labels.Width; x++ {
			id, ok := labels.Get(x, y).Region()
			if !ok {
				continue
			}
			c := palette[(int(id)-1)%len(palette)]
			base := img.NRGBAAt(x, y)
			img.SetNRGBA(x, y, color.NRGBA{
				R: blend(base.R, c.R, opacity),
				G: blend(base.G, c.G, opacity),
				B: blend(base.B, c.B, opacity),
				A: 255,
			})
		}
	}
	return img
}

func blend(under, over uint8, opacity float64) uint8 {
	return uint8(float64(under)*(1-opacity) + float64(over)*opacity + 0.5)
}
