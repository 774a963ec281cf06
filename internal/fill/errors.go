package fill

import "errors"

var (
	// ErrConfig reports a fill configuration that cannot be run: mismatched
	// seed and picker lists, seeds outside the image, a frame frequency below
	// one, a negative tolerance, or an invalid picker parameter.
	ErrConfig = errors.New("invalid fill configuration")

	// ErrDegenerateRegion reports an averaging picker that found no pixels to
	// average. The engine never substitutes a default color for it.
	ErrDegenerateRegion = errors.New("degenerate region: no contributing pixels")

	// ErrOutOfBounds reports a coordinate outside a raster or a frame index
	// outside an animation. Raised during traversal it indicates an engine defect.
	ErrOutOfBounds = errors.New("coordinates out of bounds")
)
