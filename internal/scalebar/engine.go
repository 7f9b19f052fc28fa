package scalebar

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/otiai10/gosseract/v2"

	"cytoseg/pkg/geometry"
	"cytoseg/pkg/grid"
)

// legendChars restricts OCR to what a scale legend can contain; dictionary
// correction is useless on "10 µm" and only invents errors.
const legendChars = "0123456789.µumn "

// Engine wraps a Tesseract client configured for scale-bar legends.
type Engine struct {
	client *gosseract.Client
}

// NewEngine creates an OCR engine for legend text.
func NewEngine() (*Engine, error) {
	client := gosseract.NewClient()
	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("set OCR language: %w", err)
	}
	_ = client.SetWhitelist(legendChars)
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")
	return &Engine{client: client}, nil
}

// Close releases OCR resources.
func (e *Engine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// Calibrate finds the scale bar, reads the legend region next to it, and
// derives microns per pixel from bar length and legend value.
func (e *Engine) Calibrate(frame *grid.Raster) (*Calibration, error) {
	bar, ok := FindBar(frame)
	if !ok {
		return nil, fmt.Errorf("no scale bar found")
	}

	text, err := e.recognize(frame, legendRegion(frame, bar))
	if err != nil {
		return nil, fmt.Errorf("read legend: %w", err)
	}
	microns, err := parseLegend(text)
	if err != nil {
		return nil, err
	}

	return &Calibration{
		Bar:             bar,
		Legend:          text,
		Microns:         microns,
		MicronsPerPixel: microns / float64(bar.Width),
	}, nil
}

// legendRegion is the band around the bar where the legend text sits:
// the bar's horizontal extent padded out, reaching a text-height above and
// below the bar.
func legendRegion(frame *grid.Raster, bar geometry.RectInt) geometry.RectInt {
	pad := bar.Width / 4
	textHeight := frame.Height / 12
	region := geometry.RectInt{
		X:      bar.X - pad,
		Y:      bar.Y - textHeight,
		Width:  bar.Width + 2*pad,
		Height: bar.Height + 2*textHeight,
	}
	if region.X < 0 {
		region.Width += region.X
		region.X = 0
	}
	if region.Y < 0 {
		region.Height += region.Y
		region.Y = 0
	}
	if region.X+region.Width > frame.Width {
		region.Width = frame.Width - region.X
	}
	if region.Y+region.Height > frame.Height {
		region.Height = frame.Height - region.Y
	}
	return region
}

// recognize crops the region, PNG-encodes it, and runs Tesseract.
func (e *Engine) recognize(frame *grid.Raster, region geometry.RectInt) (string, error) {
	if region.Empty() {
		return "", fmt.Errorf("empty legend region")
	}

	crop := grid.NewRaster(region.Width, region.Height, 1)
	for y := 0; y < region.Height; y++ {
		for x := 0; x < region.Width; x++ {
			crop.Set(x, y, 0, frame.Gray(region.X+x, region.Y+y))
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, crop.ToImage()); err != nil {
		return "", fmt.Errorf("encode legend crop: %w", err)
	}
	if err := e.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("hand crop to OCR: %w", err)
	}
	return e.client.Text()
}
