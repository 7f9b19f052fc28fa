// Command segcheck cross-validates the segmentation primitives against
// OpenCV. It runs binarization and morphology on the same frame with both
// implementations and reports per-pixel agreement.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	"github.com/rs/zerolog"
	"gocv.io/x/gocv"

	"cytoseg/internal/app"
	"cytoseg/internal/imgio"
	"cytoseg/internal/segment"
	"cytoseg/pkg/grid"
)

func main() {
	imagePath := flag.String("image", "", "Path to frame (TIFF, PNG, or JPEG)")
	tolerance := flag.Float64("tolerance", 95.0, "Minimum agreement percentage to pass")
	flag.Parse()

	log := app.NewLogger(zerolog.InfoLevel)

	if *imagePath == "" {
		fmt.Println("Usage: segcheck -image <path> [-tolerance pct]")
		os.Exit(1)
	}

	frame, err := imgio.Load(*imagePath)
	if err != nil {
		log.Fatal().Err(err).Msg("load frame")
	}

	mat := gocv.IMRead(*imagePath, gocv.IMReadGrayScale)
	if mat.Empty() {
		log.Fatal().Str("path", *imagePath).Msg("opencv could not read frame")
	}
	defer mat.Close()

	// Binarization: our biased Otsu threshold against OpenCV's plain Otsu.
	// The foreground bias costs a few points of agreement on purpose.
	gray := grayRaster(frame.Raster)
	ours := segment.Binarize(gray)

	cvBin := gocv.NewMat()
	defer cvBin.Close()
	cvThresh := gocv.Threshold(mat, &cvBin, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)

	log.Info().
		Uint8("threshold", segment.OtsuThreshold(gray)).
		Uint8("biased_threshold", segment.BiasedOtsuThreshold(gray)).
		Float32("opencv_threshold", cvThresh).
		Msg("otsu thresholds")

	binAgree := agreement(ours, cvBin)
	log.Info().Float64("agreement_pct", binAgree).Msg("binarization")

	// Morphology: 3x3 open and close on the binarized mask.
	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(3, 3))
	defer kernel.Close()

	pass := binAgree >= *tolerance
	for _, check := range []struct {
		op   segment.MorphOp
		cvOp gocv.MorphType
	}{
		{segment.Open, gocv.MorphOpen},
		{segment.Close, gocv.MorphClose},
	} {
		ourMorph, err := segment.Morph(ours, check.op)
		if err != nil {
			log.Fatal().Err(err).Stringer("op", check.op).Msg("morphology")
		}
		cvMorph := gocv.NewMat()
		gocv.MorphologyEx(cvBin, &cvMorph, check.cvOp, kernel)

		pct := agreement(ourMorph, cvMorph)
		cvMorph.Close()
		log.Info().Stringer("op", check.op).Float64("agreement_pct", pct).Msg("morphology")
		if pct < *tolerance {
			pass = false
		}
	}

	if !pass {
		log.Fatal().Float64("tolerance", *tolerance).Msg("cross-validation failed")
	}
	log.Info().Msg("cross-validation passed")
}

// grayRaster collapses the frame to a single luminance channel.
func grayRaster(r *grid.Raster) *grid.Raster {
	out := grid.NewRaster(r.Width, r.Height, 1)
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			out.SetGray(x, y, r.Gray(x, y))
		}
	}
	return out
}

// agreement returns the percentage of pixels where both binary images hold
// the same value. Dimension mismatches count as zero agreement.
func agreement(r *grid.Raster, m gocv.Mat) float64 {
	if r.Width != m.Cols() || r.Height != m.Rows() {
		return 0
	}
	same := 0
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			if r.Gray(x, y) == m.GetUCharAt(y, x) {
				same++
			}
		}
	}
	return 100 * float64(same) / float64(r.Width*r.Height)
}
