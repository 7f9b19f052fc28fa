// Package measure computes per-region morphometrics from a label grid: the
// readout a microscopy host shows next to the segmented frame.
package measure

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"cytoseg/pkg/geometry"
	"cytoseg/pkg/grid"
)

// RegionStats summarizes one labeled region.
type RegionStats struct {
	Label    int32
	Area     int // pixels
	Centroid geometry.Point2D
	Bounds   geometry.RectInt

	// Intensity over the source frame, when one is provided.
	MeanIntensity   float64
	StdDevIntensity float64

	// EquivalentDiameter is the diameter of the circle with the same
	// area, in pixels; the µm variant is 0 without calibration.
	EquivalentDiameter   float64
	EquivalentDiameterUm float64
}

// Summarize computes statistics for every labeled region. frame may be nil
// (no intensity stats) and micronsPerPixel may be 0 (no physical units).
// Results are sorted by label. An empty label grid yields an empty slice.
func Summarize(labels *grid.Labels, frame *grid.Raster, micronsPerPixel float64) []RegionStats {
	if labels.Empty() {
		return nil
	}

	type acc struct {
		area       int
		sumX, sumY float64
		bounds     geometry.RectInt
		intensity  []float64
	}
	regions := make(map[int32]*acc)

	sampleIntensity := frame != nil && !frame.Empty() &&
		frame.Width == labels.Width && frame.Height == labels.Height

	for y := 0; y < labels.Height; y++ {
		for x := 0; x < labels.Width; x++ {
			id, ok := labels.Get(x, y).Region()
			if !ok {
				continue
			}
			a := regions[id]
			if a == nil {
				a = &acc{}
				regions[id] = a
			}
			a.area++
			a.sumX += float64(x)
			a.sumY += float64(y)
			a.bounds = a.bounds.Union(geometry.RectInt{X: x, Y: y, Width: 1, Height: 1})
			if sampleIntensity {
				a.intensity = append(a.intensity, float64(frame.Gray(x, y)))
			}
		}
	}

	out := make([]RegionStats, 0, len(regions))
	for id, a := range regions {
		s := RegionStats{
			Label: id,
			Area:  a.area,
			Centroid: geometry.Point2D{
				X: a.sumX / float64(a.area),
				Y: a.sumY / float64(a.area),
			},
			Bounds:             a.bounds,
			EquivalentDiameter: 2 * math.Sqrt(float64(a.area)/math.Pi),
		}
		if micronsPerPixel > 0 {
			s.EquivalentDiameterUm = s.EquivalentDiameter * micronsPerPixel
		}
		if len(a.intensity) > 0 {
			s.MeanIntensity = stat.Mean(a.intensity, nil)
			if len(a.intensity) > 1 {
				s.StdDevIntensity = stat.StdDev(a.intensity, nil)
			}
		}
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}
