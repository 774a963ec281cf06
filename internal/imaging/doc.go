// Package imaging is the codec layer around the fill engine.
//
// It decodes image files into fill.Raster values and encodes fill results
// back out: single PNG (or any format disintegration/imaging supports) files,
// inline base64 PNGs for MCP responses, animated GIFs and directories of
// numbered frame PNGs. SeedPreview renders a zoomable coordinate grid with
// seed markers for choosing seeds.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward. Decoded images are rebased
// to start at (0,0) when converted to rasters.
//
// # Supported Formats
//
// Decoding: PNG, JPEG, GIF (first frame), BMP, TIFF and WebP. EXIF
// orientation is applied on load.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Rasters returned by LoadRaster are
// fresh copies owned by the caller. WriteFrames encodes frames concurrently
// but only reads them.
package imaging
