package segment

import "errors"

// Engine error conditions. All are expected, recoverable outcomes the host
// reacts to (prompt the user to binarize, report an empty result); none
// indicate corruption, and a failed operation leaves its inputs untouched.
var (
	// ErrNotBinary reports that an operation requiring strictly 0/255
	// input was handed grayscale data.
	ErrNotBinary = errors.New("image is not binary (0/255)")

	// ErrNoStrokes reports that classification found no painted pixels.
	ErrNoStrokes = errors.New("no stroke pixels found")

	// ErrNoRegions reports that labeling found no enclosed regions.
	ErrNoRegions = errors.New("no enclosed regions found")
)
