// Package image holds the raster plumbing shared by thumbnailing and export:
// a size-bucketed pool of NRGBA buffers and straight-alpha compositing.
package image

import (
	goimage "image"
	"sync"
)

// Pool is a thread-safe pool for reusing *image.NRGBA buffers.
//
// Buffers are grouped by dimensions. Export renders every video frame at the
// canvas size, so a pool with a handful of buffers per bucket removes almost
// all allocation from the export loop.
type Pool struct {
	mu      sync.Mutex
	buckets map[goimage.Point][]*goimage.NRGBA
	maxSize int // max buffers per bucket
}

// NewPool creates a pool retaining at most maxPerBucket buffers per size.
// A maxPerBucket of 0 or less means unlimited.
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[goimage.Point][]*goimage.NRGBA),
		maxSize: maxPerBucket,
	}
}

// Get returns a zeroed width x height buffer. It returns nil for a
// non-positive size.
func (p *Pool) Get(width, height int) *goimage.NRGBA {
	if width <= 0 || height <= 0 {
		return nil
	}
	key := goimage.Pt(width, height)

	p.mu.Lock()
	bucket := p.buckets[key]
	if n := len(bucket); n > 0 {
		img := bucket[n-1]
		bucket[n-1] = nil
		p.buckets[key] = bucket[:n-1]
		p.mu.Unlock()
		clear(img.Pix)
		return img
	}
	p.mu.Unlock()

	return goimage.NewNRGBA(goimage.Rect(0, 0, width, height))
}

// Put returns img to the pool. Sub-images and nil are ignored, as are
// buffers arriving at a full bucket.
func (p *Pool) Put(img *goimage.NRGBA) {
	if img == nil || img.Rect.Min != (goimage.Point{}) || img.Stride != 4*img.Rect.Dx() {
		return
	}
	key := img.Rect.Size()

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, img)
}

// Len returns the number of pooled buffers of the given size.
func (p *Pool) Len(width, height int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buckets[goimage.Pt(width, height)])
}

// defaultPool is the package-level pool for convenient usage.
var defaultPool = NewPool(8)

// GetFromDefault retrieves a buffer from the default pool.
func GetFromDefault(width, height int) *goimage.NRGBA {
	return defaultPool.Get(width, height)
}

// PutToDefault returns a buffer to the default pool.
func PutToDefault(img *goimage.NRGBA) {
	defaultPool.Put(img)
}
