// Package viewer provides the main application window: frame display,
// pipeline controls, and the per-region readout table.
package viewer

import (
	"fmt"
	"image"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"cytoseg/internal/app"
	"cytoseg/internal/render"
	"cytoseg/internal/scalebar"
)

// overlayOpacity is the label tint strength over the source frame.
const overlayOpacity = 0.45

// Viewer is the primary application window.
type Viewer struct {
	fyne.Window
	app   fyne.App
	state *app.State
	log   zerolog.Logger

	frameView *fynecanvas.Image
	statusBar *widget.Label
	statsList *widget.List
}

// New creates the viewer window.
func New(fyneApp fyne.App, state *app.State, log zerolog.Logger) *Viewer {
	v := &Viewer{
		Window: fyneApp.NewWindow("CytoSeg"),
		app:    fyneApp,
		state:  state,
		log:    log,
	}
	v.setupUI()
	v.Resize(fyne.NewSize(1100, 750))
	return v
}

func (v *Viewer) setupUI() {
	v.frameView = fynecanvas.NewImageFromImage(image.NewNRGBA(image.Rect(0, 0, 1, 1)))
	v.frameView.FillMode = fynecanvas.ImageFillContain

	v.statusBar = widget.NewLabel("Open a frame to begin")

	v.statsList = widget.NewList(
		func() int { return len(v.state.Stats()) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			stats := v.state.Stats()
			if i >= len(stats) {
				return
			}
			s := stats[i]
			text := fmt.Sprintf("cell %d: %d px", s.Label, s.Area)
			if s.EquivalentDiameterUm > 0 {
				text = fmt.Sprintf("cell %d: %d px, ⌀ %.1f µm", s.Label, s.Area, s.EquivalentDiameterUm)
			}
			o.(*widget.Label).SetText(text)
		},
	)

	openBtn := widget.NewButton("Open…", v.openFrame)
	autoBtn := widget.NewButton("Auto segment", v.runAuto)
	strokeBtn := widget.NewButton("Segment strokes", v.runStrokes)
	calibrateBtn := widget.NewButton("Calibrate scale bar", v.runCalibrate)

	controls := container.NewVBox(openBtn, autoBtn, strokeBtn, calibrateBtn, widget.NewSeparator())
	side := container.NewBorder(controls, nil, nil, nil, v.statsList)

	split := container.NewHSplit(side, v.frameView)
	split.SetOffset(0.25)

	v.SetContent(container.NewBorder(nil, container.NewPadded(v.statusBar), nil, nil, split))
}

func (v *Viewer) openFrame() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		if err := v.state.LoadFrame(path); err != nil {
			dialog.ShowError(err, v.Window)
			return
		}
		v.log.Info().Str("path", path).Msg("frame loaded")
		v.Refresh()
		frame := v.state.Frame()
		v.statusBar.SetText(fmt.Sprintf("%s — %dx%d", path, frame.Width(), frame.Height()))
	}, v.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".tif", ".tiff"}))
	fd.Show()
}

func (v *Viewer) runAuto() {
	regions, err := v.state.AutoSegment()
	if err != nil {
		dialog.ShowError(err, v.Window)
		return
	}
	v.log.Info().Int("regions", regions).Msg("auto segmentation done")
	v.statusBar.SetText(fmt.Sprintf("%d cells found", regions))
	v.Refresh()
}

func (v *Viewer) runStrokes() {
	regions, err := v.state.SegmentStrokes()
	if err != nil {
		dialog.ShowError(err, v.Window)
		return
	}
	v.log.Info().Int("regions", regions).Msg("stroke segmentation done")
	v.statusBar.SetText(fmt.Sprintf("%d cells found", regions))
	v.Refresh()
}

// runCalibrate reads the burned-in scale bar and applies the derived
// microns-per-pixel value to the session.
func (v *Viewer) runCalibrate() {
	engine, err := scalebar.NewEngine()
	if err != nil {
		dialog.ShowError(err, v.Window)
		return
	}
	defer engine.Close()

	cal, err := v.state.Calibrate(engine)
	if err != nil {
		dialog.ShowError(err, v.Window)
		return
	}
	v.log.Info().
		Str("legend", cal.Legend).
		Float64("um_per_px", cal.MicronsPerPixel).
		Msg("scale bar calibration applied")
	v.statusBar.SetText(fmt.Sprintf("Calibrated: %.4g µm/px (%q)", cal.MicronsPerPixel, cal.Legend))
	v.Refresh()
}

// Refresh redraws the frame view, tinting labeled regions when a result
// exists.
func (v *Viewer) Refresh() {
	frame := v.state.Frame()
	if frame == nil {
		return
	}
	labels, _ := v.state.Labels()
	if labels != nil {
		v.frameView.Image = render.Overlay(frame.Raster, labels, overlayOpacity)
	} else {
		v.frameView.Image = frame.Raster.ToImage()
	}
	v.frameView.Refresh()
	v.statsList.Refresh()
}
