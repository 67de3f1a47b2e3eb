// Package imaging loads board photos and produces the images that surround
// detection: the cropped board region, the annotated debug overlay and the
// swatch preview of a decoded grid.
//
// All operations work with standard Go image.Image types and use a coordinate
// system where (0,0) is at the top-left corner, X increases rightward, and Y
// increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// Images returned by CropRegion and DrawOverlay always start at (0,0), so
// coordinates found in a crop are relative to the crop rather than the photo.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Individual image operations
// are stateless and never modify their input.
//
// # Error Handling
//
// Errors wrap one of the package sentinels so callers can use errors.Is:
//   - ErrImageLoad: the file could not be opened or decoded
//   - ErrOutOfBounds: a crop rectangle reaches outside the image
//   - ErrInvalidRegion: a crop rectangle is empty (x1 >= x2 or y1 >= y2)
package imaging
