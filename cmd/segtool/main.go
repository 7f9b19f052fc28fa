// Command segtool runs the segmentation pipelines on a frame from the
// command line and writes the label visualization plus a per-region CSV.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"cytoseg/internal/app"
	"cytoseg/internal/imgio"
	"cytoseg/internal/measure"
	"cytoseg/internal/render"
	"cytoseg/internal/scalebar"
	"cytoseg/internal/segment"
	"cytoseg/pkg/grid"
)

func main() {
	imagePath := flag.String("image", "", "Path to frame (TIFF, PNG, or JPEG)")
	overlayPath := flag.String("overlay", "", "Stroke overlay image for manual mode")
	mode := flag.String("mode", "auto", "Pipeline: auto or strokes")
	minArea := flag.Int("min-area", segment.DefaultConfig().MinRegionArea, "Minimum region area in pixels")
	calibrate := flag.Bool("calibrate", false, "Read the burned-in scale bar to derive µm/px")
	outPrefix := flag.String("out", "segmented", "Output file prefix")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := app.NewLogger(level)

	if *imagePath == "" {
		fmt.Println("Usage: segtool -image <path> [-mode auto|strokes] [-overlay <path>] [-min-area N] [-calibrate] [-out prefix]")
		os.Exit(1)
	}

	frame, err := imgio.Load(*imagePath)
	if err != nil {
		log.Fatal().Err(err).Msg("load frame")
	}
	log.Info().
		Str("path", *imagePath).
		Int("width", frame.Width()).
		Int("height", frame.Height()).
		Float64("um_per_px", frame.MicronsPerPixel).
		Msg("frame loaded")

	if *calibrate {
		engine, err := scalebar.NewEngine()
		if err != nil {
			log.Fatal().Err(err).Msg("start scale-bar OCR")
		}
		cal, err := engine.Calibrate(frame.Raster)
		engine.Close()
		if err != nil {
			log.Fatal().Err(err).Msg("scale-bar calibration")
		}
		frame.MicronsPerPixel = cal.MicronsPerPixel
		log.Info().
			Str("legend", cal.Legend).
			Int("bar_px", cal.Bar.Width).
			Float64("um_per_px", cal.MicronsPerPixel).
			Msg("scale bar calibration applied")
	}

	cfg := segment.DefaultConfig()
	cfg.MinRegionArea = *minArea

	var labels *grid.Labels
	var regions int

	switch *mode {
	case "strokes":
		if *overlayPath == "" {
			log.Fatal().Msg("strokes mode needs -overlay")
		}
		overlay, err := imgio.Load(*overlayPath)
		if err != nil {
			log.Fatal().Err(err).Msg("load overlay")
		}
		res, err := segment.SegmentStrokes(overlay.Raster, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("stroke segmentation")
		}
		labels, regions = res.Labels, res.Regions
	case "auto":
		res, err := segment.AutoSegment(frame.Raster, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("auto segmentation")
		}
		labels, regions = res.Labels, res.Regions
		log.Debug().Stringer("polarity", res.Polarity).Msg("polarity detected")
	default:
		log.Fatal().Str("mode", *mode).Msg("unknown mode")
	}

	log.Info().Int("regions", regions).Msg("segmentation done")

	overlayOut := *outPrefix + "_overlay.png"
	if err := imgio.Save(render.Overlay(frame.Raster, labels, 0.45), overlayOut); err != nil {
		log.Fatal().Err(err).Msg("write overlay")
	}
	labelsOut := *outPrefix + "_labels.png"
	if err := imgio.Save(render.LabelImage(labels), labelsOut); err != nil {
		log.Fatal().Err(err).Msg("write labels")
	}

	stats := measure.Summarize(labels, frame.Raster, frame.MicronsPerPixel)
	csvOut := *outPrefix + "_regions.csv"
	if err := writeStatsCSV(csvOut, stats); err != nil {
		log.Fatal().Err(err).Msg("write region csv")
	}

	log.Info().
		Str("overlay", overlayOut).
		Str("labels", labelsOut).
		Str("csv", csvOut).
		Msg("outputs written")
}

func writeStatsCSV(path string, stats []measure.RegionStats) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"label", "area_px", "centroid_x", "centroid_y", "mean_intensity", "equiv_diameter_px", "equiv_diameter_um"}); err != nil {
		return err
	}
	for _, s := range stats {
		rec := []string{
			fmt.Sprintf("%d", s.Label),
			fmt.Sprintf("%d", s.Area),
			fmt.Sprintf("%.1f", s.Centroid.X),
			fmt.Sprintf("%.1f", s.Centroid.Y),
			fmt.Sprintf("%.1f", s.MeanIntensity),
			fmt.Sprintf("%.2f", s.EquivalentDiameter),
			fmt.Sprintf("%.2f", s.EquivalentDiameterUm),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return w.Error()
}
