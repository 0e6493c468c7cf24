package imaging

import (
	"context"
	"os"
	"sync"

	"github.com/ironsheep/pixel-tools/internal/codec"
)

// Cache keeps decoded images keyed by path so repeated requests skip the disk
// read and the decode.
//
// Load hands out clones, so callers may apply plugins to the result without
// affecting later loads. Cache is safe for concurrent use.
//
// Entries stay until Evict or Clear; a file changed on disk is not noticed.
type Cache struct {
	mu       sync.RWMutex
	images   map[string]*Image
	handlers []codec.Handler
	opts     []Option
}

// NewCache returns an empty cache that opens files with handlers (the
// built-in defaults when nil) and applies opts to every image.
func NewCache(handlers []codec.Handler, opts ...Option) *Cache {
	if handlers == nil {
		handlers = codec.Handlers()
	}
	return &Cache{
		images:   make(map[string]*Image),
		handlers: handlers,
		opts:     opts,
	}
}

// Load returns a private copy of the image at path, decoding it on first use.
// The path string is the key: a relative and an absolute path to the same
// file are cached separately.
func (c *Cache) Load(ctx context.Context, path string) (*Image, error) {
	c.mu.RLock()
	im, ok := c.images[path]
	c.mu.RUnlock()
	if ok {
		return im.Clone(), nil
	}

	im, err := OpenWith(ctx, path, c.handlers, c.opts...)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = im
	c.mu.Unlock()

	return im.Clone(), nil
}

// Put stores im under path, replacing any cached entry. The cache keeps its
// own copy.
func (c *Cache) Put(path string, im *Image) {
	c.mu.Lock()
	c.images[path] = im.Clone()
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Evict drops path from the cache.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Clear drops every cached image.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*Image)
	c.mu.Unlock()
}

// Info describes an image file.
type Info struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// Format is the handler name: "png", "jpeg", "bmp" or "tiff".
	// Detection uses the extension first and the file signature second.
	Format   string `json:"format"`
	MimeType string `json:"mime_type"`

	// SourceEncoding is the pixel layout before normalization, e.g. "indexed"
	// or "gray16".
	SourceEncoding string `json:"source_encoding"`

	// HasAlpha reports whether the source encoding carries alpha.
	HasAlpha bool `json:"has_alpha"`

	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadInfo loads path through cache and describes it.
func LoadInfo(ctx context.Context, cache *Cache, path string) (*Info, error) {
	im, err := cache.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, &IOError{Op: "stat", Path: path, Err: err}
	}

	return &Info{
		Width:          im.Width(),
		Height:         im.Height(),
		Format:         im.Format(),
		MimeType:       im.MimeType(),
		SourceEncoding: im.SourceEncoding().String(),
		HasAlpha:       im.SourceEncoding().HasAlpha(),
		FileSizeBytes:  stat.Size(),
	}, nil
}

// Dimensions is the size of an image.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns the size of the image at path without the rest of
// Info.
func GetDimensions(ctx context.Context, cache *Cache, path string) (*Dimensions, error) {
	im, err := cache.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return &Dimensions{Width: im.Width(), Height: im.Height()}, nil
}
