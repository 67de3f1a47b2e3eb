// Package detection locates the colored tiles of a puzzle board and rebuilds
// them into a row-major grid.
//
// The input is an already cropped board image: tiles sit on a near-white
// background, each tile a solid gray, blue or red rectangle.
//
// # Pipeline
//
//  1. Binarize: pixels at or below the brightness threshold (240 by default)
//     become foreground, so every tile turns into one foreground blob
//  2. Trace: find every closed border in the mask (Tracer); the default
//     BorderTracer is pure Go, CVTracer uses OpenCV when built with -tags gocv
//  3. Approximate: reduce each border to a polygon (Douglas-Peucker with a
//     tolerance of 1% of the perimeter)
//  4. Classify: sample the pixel halfway between polygon vertices 0 and 2
//     and map it to Gray, Blue or Red
//  5. Reconstruct: sort by centroid, cut into rows of floor(sqrt(n)) tiles,
//     sort each row by x
//
// Contours are discovered in whatever order the tracer produces them; the
// grid position of a tile depends on its centroid alone.
//
// # Coordinate System
//
// Centroids and contour points are relative to the top-left corner of the
// input image:
//   - X increases rightward
//   - Y increases downward
//
// # Error Handling
//
// Contours that reduce to fewer than three vertices are skipped. A tile whose
// color matches no rule aborts detection with ErrUnrecognizedColor; callers
// never receive a partial grid.
package detection
