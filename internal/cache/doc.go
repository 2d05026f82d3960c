// Package cache provides a generic LRU cache.
//
// The document uses it to keep rendered thumbnails keyed by frame serial
// and pixel generation, so a frame is only rescaled after it changes:
//
//	c := cache.New[string, int](64)
//	c.Set("key", 42)
//	v, ok := c.Get("key")
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
