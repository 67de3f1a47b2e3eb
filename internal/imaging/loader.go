package imaging

import (
	"errors"
	"fmt"
	"image"
	"os"
	"sync"

	"github.com/disintegration/imaging"
)

// ErrImageLoad is wrapped by every error returned from ImageCache.Load.
var ErrImageLoad = errors.New("image load failed")

// ImageCache provides thread-safe caching of loaded images to avoid redundant disk reads.
//
// The cache stores decoded image.Image objects keyed by their file path. Once an image
// is loaded, subsequent Load() calls for the same path return the cached copy without
// disk I/O. The CLI loads one photo per run; the MCP server keeps the cache alive across
// tool calls so that repeated crops and detections of the same photo are cheap.
//
// ImageCache is safe for concurrent use by multiple goroutines.
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	img, err := cache.Load("/path/to/board.jpg")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cache.Evict("/path/to/board.jpg") // Optional: free memory
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load retrieves an image from the cache or loads it from disk if not cached.
//
// Parameters:
//   - path: Absolute or relative file path to the image. Any format understood by
//     disintegration/imaging is accepted (PNG, JPEG, GIF, BMP, TIFF).
//
// Returns:
//   - image.Image: The decoded image.
//   - error: Non-nil (wrapping ErrImageLoad) if the file cannot be opened or decoded.
//
// # EXIF Orientation
//
// Phone photos are usually stored sideways with an EXIF orientation tag. The tag is
// applied while decoding so that the board appears upright and the configured crop
// rectangle refers to the image as a viewer sees it.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open image: %v", ErrImageLoad, err)
	}
	defer f.Close()

	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %v", ErrImageLoad, path, err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Clear removes all images from the cache, freeing the associated memory.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
//
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`
}

// GetDimensions loads an image through the cache and returns its size.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
