// Package fill implements a deterministic, multi-seed flood fill over HSLA
// rasters that records an animation of its progress.
//
// A fill is described by a Config: the image to mutate, an ordered list of
// seeds, one ColorPicker per seed, a color tolerance and a frame frequency.
// FillBFS and FillDFS run the same algorithm with a FIFO queue or a LIFO stack
// as the ordering structure.
//
// # Region Membership
//
// A pixel belongs to seed i's region when it is 4-connected (up, right, down,
// left) to the seed through pixels whose color lies within the tolerance of
// the seed's reference color, and no earlier seed claimed it first. Neighbors
// are always examined in the order up, right, down, left, so fills are fully
// reproducible.
//
// # Color Pickers
//
// Pickers compute the replacement color of each claimed pixel:
//   - SolidColorPicker: one fixed color
//   - NegativeColorPicker: hue rotated 180°, lightness inverted, opaque
//   - MosaicColorPicker: average color of the enclosing square tile
//   - SoftBorderColorPicker: disk average near region borders, original inside
//   - BlurColorPicker: Gaussian-blurred snapshot
//
// Pickers that read image content hold a snapshot taken before the fill, so
// their output never feeds back into itself.
//
// # Animation
//
// A full-image frame is recorded after every FrameFreq-th recolored pixel,
// counted over the whole multi-seed fill, and a final frame is always
// appended. A fill that recolors N pixels therefore yields N/FrameFreq
// (rounded down) + 1 frames.
//
// # Thread Safety
//
// A fill call owns its image, visited map and frame counter exclusively.
// Concurrent or overlapping fills on the same Raster are not supported.
package fill
