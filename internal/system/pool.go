package system

import (
	"image"
	"sync"
)

// FramePool reuses *image.RGBA frame buffers across the render loop to
// keep the GC out of the per-frame path. Buffers are keyed by size.
type FramePool struct {
	pools map[string]*sync.Pool
	mu    sync.RWMutex
}

// NewFramePool creates an empty pool.
func NewFramePool() *FramePool {
	return &FramePool{pools: make(map[string]*sync.Pool)}
}

// Get returns a frame for rect, reusing a pooled buffer when one fits.
func (p *FramePool) Get(rect image.Rectangle) *image.RGBA {
	key := rect.String()
	p.mu.RLock()
	pool, ok := p.pools[key]
	p.mu.RUnlock()

	if !ok {
		p.mu.Lock()
		pool, ok = p.pools[key]
		if !ok {
			pool = &sync.Pool{
				New: func() interface{} {
					return image.NewRGBA(rect)
				},
			}
			p.pools[key] = pool
		}
		p.mu.Unlock()
	}

	return pool.Get().(*image.RGBA)
}

// Put returns a frame to the pool for reuse.
func (p *FramePool) Put(img *image.RGBA) {
	if img == nil {
		return
	}
	key := img.Rect.String()
	p.mu.RLock()
	pool, ok := p.pools[key]
	p.mu.RUnlock()

	if ok {
		pool.Put(img)
	}
}
