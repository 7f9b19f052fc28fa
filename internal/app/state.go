// Package app holds application state and logging setup shared by the
// viewer and the command-line tools.
package app

import (
	"fmt"
	"sync"

	"cytoseg/internal/imgio"
	"cytoseg/internal/measure"
	"cytoseg/internal/scalebar"
	"cytoseg/internal/segment"
	"cytoseg/pkg/grid"
)

// Calibrator derives a microns-per-pixel calibration from a frame;
// scalebar.Engine is the production implementation.
type Calibrator interface {
	Calibrate(frame *grid.Raster) (*scalebar.Calibration, error)
}

// State is the shared session state: the loaded frame, the stroke overlay
// being painted, and the latest segmentation outcome. Engine calls are pure
// over their inputs; the mutex only guards this bookkeeping.
type State struct {
	mu sync.RWMutex

	frame   *imgio.Frame
	overlay *grid.Raster

	labels  *grid.Labels
	regions int
	stats   []measure.RegionStats

	config segment.Config
}

// NewState creates session state with default engine tuning.
func NewState() *State {
	return &State{config: segment.DefaultConfig()}
}

// Config returns the current engine tuning.
func (s *State) Config() segment.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// SetConfig replaces the engine tuning.
func (s *State) SetConfig(cfg segment.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
}

// LoadFrame loads an image from disk and resets overlay and results.
func (s *State) LoadFrame(path string) error {
	frame, err := imgio.Load(path)
	if err != nil {
		return fmt.Errorf("load frame: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame = frame
	s.overlay = grid.NewRaster(frame.Width(), frame.Height(), 4)
	s.labels = nil
	s.regions = 0
	s.stats = nil
	return nil
}

// Frame returns the loaded frame, or nil.
func (s *State) Frame() *imgio.Frame {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frame
}

// Overlay returns the stroke overlay raster, or nil before a frame loads.
func (s *State) Overlay() *grid.Raster {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.overlay
}

// SetOverlay replaces the stroke overlay, e.g. after the paint widget
// commits a stroke.
func (s *State) SetOverlay(overlay *grid.Raster) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overlay = overlay
}

// SegmentStrokes runs the manual pipeline on the current overlay and stores
// the outcome.
func (s *State) SegmentStrokes() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frame == nil || s.overlay == nil {
		return 0, fmt.Errorf("no frame loaded")
	}

	res, err := segment.SegmentStrokes(s.overlay, s.config)
	if err != nil {
		return 0, err
	}
	s.storeResult(res.Labels, res.Regions)
	return res.Regions, nil
}

// AutoSegment runs the automatic pipeline on the current frame and stores
// the outcome.
func (s *State) AutoSegment() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frame == nil {
		return 0, fmt.Errorf("no frame loaded")
	}

	res, err := segment.AutoSegment(s.frame.Raster, s.config)
	if err != nil {
		return 0, err
	}
	s.storeResult(res.Labels, res.Regions)
	return res.Regions, nil
}

// storeResult records labels and recomputes region statistics. Caller holds
// the write lock.
func (s *State) storeResult(labels *grid.Labels, regions int) {
	s.labels = labels
	s.regions = regions
	s.stats = nil
	if s.frame == nil {
		return
	}
	s.stats = measure.Summarize(labels, s.frame.Raster, s.frame.MicronsPerPixel)
}

// Labels returns the latest label grid and region count, or nil and 0.
func (s *State) Labels() (*grid.Labels, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.labels, s.regions
}

// Stats returns the latest per-region statistics.
func (s *State) Stats() []measure.RegionStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// Calibrate runs the calibrator against the loaded frame and applies the
// resulting microns-per-pixel value, refreshing statistics.
func (s *State) Calibrate(c Calibrator) (*scalebar.Calibration, error) {
	s.mu.RLock()
	frame := s.frame
	s.mu.RUnlock()
	if frame == nil {
		return nil, fmt.Errorf("no frame loaded")
	}

	cal, err := c.Calibrate(frame.Raster)
	if err != nil {
		return nil, err
	}
	s.SetCalibration(cal.MicronsPerPixel)
	return cal, nil
}

// SetCalibration overrides the frame's microns-per-pixel value (e.g. from
// scale-bar OCR) and refreshes statistics.
func (s *State) SetCalibration(micronsPerPixel float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frame == nil {
		return
	}
	s.frame.MicronsPerPixel = micronsPerPixel
	if s.labels != nil {
		s.stats = measure.Summarize(s.labels, s.frame.Raster, micronsPerPixel)
	}
}
