// Package imgio loads and saves microscopy frames and carries their
// resolution metadata. Decoding supports PNG, JPEG, and TIFF (the common
// acquisition format).
package imgio

import (
	"encoding/binary"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/tiff"

	"cytoseg/pkg/grid"
)

// micronsPerInch converts between the TIFF inch-based resolution unit and
// the micron-per-pixel calibration microscopy works in.
const micronsPerInch = 25400.0

// Frame is a loaded microscopy image plus whatever calibration the file
// metadata offered.
type Frame struct {
	Path   string
	Image  image.Image
	Raster *grid.Raster

	// DPI from TIFF resolution tags, 0 when absent.
	DPI float64
	// MicronsPerPixel derived from DPI, 0 when unknown. Scale-bar OCR can
	// overwrite this when the file metadata is missing or wrong.
	MicronsPerPixel float64
}

// Load reads and decodes a frame from disk.
func Load(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open frame: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}

	frame := &Frame{
		Path:   path,
		Image:  img,
		Raster: grid.FromImage(img),
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".tiff" || ext == ".tif" {
		if dpi, err := extractTIFFDPI(path); err == nil {
			frame.DPI = dpi
			frame.MicronsPerPixel = micronsPerInch / dpi
		}
	}
	return frame, nil
}

// Width returns the frame width in pixels.
func (f *Frame) Width() int {
	if f.Raster == nil {
		return 0
	}
	return f.Raster.Width
}

// Height returns the frame height in pixels.
func (f *Frame) Height() int {
	if f.Raster == nil {
		return 0
	}
	return f.Raster.Height
}

// Save encodes an image to path; the format follows the file extension.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save image: %w", err)
	}
	return nil
}

// SaveRaster encodes a raster to path.
func SaveRaster(r *grid.Raster, path string) error {
	return Save(r.ToImage(), path)
}

// SupportedFormats returns the recognized file extensions.
func SupportedFormats() []string {
	return []string{".tiff", ".tif", ".png", ".jpg", ".jpeg"}
}

// IsSupportedFormat checks whether path has a recognized extension.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range SupportedFormats() {
		if ext == format {
			return true
		}
	}
	return false
}

// extractTIFFDPI reads the resolution tags straight out of a TIFF header;
// the stdlib decoder drops them.
func extractTIFFDPI(path string) (float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	header := make([]byte, 8)
	if _, err := file.Read(header); err != nil {
		return 0, err
	}

	var byteOrder binary.ByteOrder
	switch {
	case header[0] == 'I' && header[1] == 'I':
		byteOrder = binary.LittleEndian
	case header[0] == 'M' && header[1] == 'M':
		byteOrder = binary.BigEndian
	default:
		return 0, fmt.Errorf("not a valid TIFF file")
	}

	ifdOffset := byteOrder.Uint32(header[4:8])
	if _, err := file.Seek(int64(ifdOffset), 0); err != nil {
		return 0, err
	}

	var numEntries uint16
	if err := binary.Read(file, byteOrder, &numEntries); err != nil {
		return 0, err
	}

	var xRes, yRes float64
	var resUnit uint16 = 2 // inches unless the file says otherwise

	for i := uint16(0); i < numEntries; i++ {
		entry := make([]byte, 12)
		if _, err := file.Read(entry); err != nil {
			return 0, err
		}

		tag := byteOrder.Uint16(entry[0:2])
		fieldType := byteOrder.Uint16(entry[2:4])
		valueOffset := byteOrder.Uint32(entry[8:12])

		switch tag {
		case 282: // XResolution
			if fieldType == 5 {
				xRes = readTIFFRational(file, int64(valueOffset), byteOrder)
			}
		case 283: // YResolution
			if fieldType == 5 {
				yRes = readTIFFRational(file, int64(valueOffset), byteOrder)
			}
		case 296: // ResolutionUnit
			if fieldType == 3 {
				resUnit = uint16(valueOffset)
			}
		}
	}

	if xRes == 0 && yRes == 0 {
		return 0, fmt.Errorf("no resolution tags found")
	}

	dpi := xRes
	if dpi == 0 {
		dpi = yRes
	}
	if resUnit == 3 { // centimeters
		dpi *= 2.54
	}
	if dpi == 0 {
		return 0, fmt.Errorf("resolution is zero")
	}
	return dpi, nil
}

// readTIFFRational reads a RATIONAL value (two uint32s) at offset.
func readTIFFRational(file *os.File, offset int64, byteOrder binary.ByteOrder) float64 {
	currentPos, _ := file.Seek(0, 1)
	defer file.Seek(currentPos, 0)

	file.Seek(offset, 0)
	var num, denom uint32
	binary.Read(file, byteOrder, &num)
	binary.Read(file, byteOrder, &denom)

	if denom == 0 {
		return 0
	}
	return float64(num) / float64(denom)
}
