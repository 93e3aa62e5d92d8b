package imgmosaic

import (
	"runtime"
	"sync"
)

// Colorizer remaps every pixel of a buffer to the nearest color in a
// Palette, dispatching on the palette's Metric. Lookups are memoized
// in a per-Colorizer cache so images with large flat regions (a sky,
// a background) only pay the tree/binary-search cost once per
// distinct color rather than once per pixel.
type Colorizer struct {
	Palette *Palette
	cache   sync.Map // Color -> Color
}

// NewColorizer wraps a palette for pixel remapping.
func NewColorizer(p *Palette) *Colorizer {
	return &Colorizer{Palette: p}
}

// nearest returns the palette color matching c, populating the cache
// on a miss. The cache is an exact memoization, not an approximate
// match: lookup is deterministic per color, so there is no tolerance
// to tune.
func (cz *Colorizer) nearest(c Color) Color {
	if v, ok := cz.cache.Load(c); ok {
		return v.(Color)
	}
	idx := cz.Palette.Lookup(c)
	result := cz.Palette.Colors[idx]
	cz.cache.Store(c, result)
	return result
}

// Apply remaps every pixel in buf to its nearest palette color,
// parallelized one goroutine per scanline batch.
func (cz *Colorizer) Apply(buf *PixelBuffer) {
	workers := runtime.GOMAXPROCS(0)
	parallelRange(buf.Height, workers, func(y int) {
		for x := 0; x < buf.Width; x++ {
			buf.Set(x, y, cz.nearest(buf.At(x, y)))
		}
	})
}

// CacheStats reports how many lookups were memoized, for diagnostics.
func (cz *Colorizer) CacheStats() (entries int) {
	cz.cache.Range(func(_, _ interface{}) bool {
		entries++
		return true
	})
	return entries
}
