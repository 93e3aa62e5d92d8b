package imgmosaic

import (
	"fmt"
	"runtime"
)

// TileSource is one input to a collage: its pixels, its on-canvas
// placement, and a caption string to draw over it (empty for none).
type TileSource struct {
	Pixels    *PixelBuffer
	Placement TilePlacement
	Caption   string
}

// TileComposer draws a set of tiles onto a canvas-sized PixelBuffer,
// optionally converting each tile to greyscale and/or remapping it
// through a Colorizer/Posterizer before compositing, then drawing
// captions last (captions always render over the final pixel data, a
// serialized step since the caption font rasterizer is not meant to
// be called concurrently).
type TileComposer struct {
	FillColor  Color
	Greyscale  bool
	Colorizer  *Colorizer // mutually exclusive with Posterizer
	Posterizer *Posterizer
	Captions   *CaptionRenderer
	BitDepth   int
}

// Compose draws every tile into a freshly allocated canvas of the
// given size and returns it.
func (tc *TileComposer) Compose(width, height int, tiles []TileSource) (*PixelBuffer, error) {
	bitDepth := tc.BitDepth
	if bitDepth == 0 {
		bitDepth = 24
	}
	for i, t := range tiles {
		if t.Pixels.BitDepth != bitDepth {
			return nil, invalidArg("TileComposer.Compose",
				"tile %d is %dbpp, canvas is %dbpp", i, t.Pixels.BitDepth, bitDepth)
		}
		if t.Pixels.Width != t.Placement.Width || t.Pixels.Height != t.Placement.Height {
			return nil, invalidArg("TileComposer.Compose",
				"tile %d is %dx%d, its placement is %dx%d; scale before composing",
				i, t.Pixels.Width, t.Pixels.Height, t.Placement.Width, t.Placement.Height)
		}
	}

	canvas, err := NewPixelBuffer(width, height, bitDepth)
	if err != nil {
		return nil, err
	}
	tc.floodFill(canvas)

	workers := runtime.GOMAXPROCS(0)
	parallelRange(len(tiles), workers, func(i int) {
		tc.drawTile(canvas, tiles[i])
	})

	if tc.Captions != nil {
		for _, t := range tiles {
			if t.Caption == "" {
				continue
			}
			tc.Captions.Draw(canvas, t.Placement, t.Caption)
		}
	}

	return canvas, nil
}

// floodFill fills the entire canvas with FillColor before any tiles
// are drawn, so gaps left by a non-rectangular layout show as a solid
// background rather than garbage memory.
func (tc *TileComposer) floodFill(canvas *PixelBuffer) {
	for y := 0; y < canvas.Height; y++ {
		for x := 0; x < canvas.Width; x++ {
			canvas.Set(x, y, tc.FillColor)
		}
	}
}

func (tc *TileComposer) drawTile(canvas *PixelBuffer, t TileSource) {
	src := t.Pixels
	if tc.Greyscale {
		src.Greyscale()
	}
	if tc.Colorizer != nil {
		tc.Colorizer.Apply(src)
	} else if tc.Posterizer != nil {
		tc.Posterizer.Apply(src)
	}

	// Compose already checked the tile's dimensions match its
	// placement rectangle, so this is a straight copy. Clipping only
	// matters for tiles whose placement extends past the canvas edge.
	p := t.Placement
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			cx, cy := p.X+x, p.Y+y
			if cx < 0 || cy < 0 || cx >= canvas.Width || cy >= canvas.Height {
				continue
			}
			canvas.Set(cx, cy, src.At(x, y))
		}
	}
}

// CaptionFor derives a tile's caption from a source path: the base
// filename without its extension.
func CaptionFor(path string) string {
	base := path
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			base = path[i+1:]
			break
		}
	}
	for i := len(base) - 1; i >= 0; i-- {
		if base[i] == '.' {
			return base[:i]
		}
	}
	return base
}

func (t TileSource) String() string {
	return fmt.Sprintf("tile[%d @ (%d,%d) %dx%d]", t.Placement.SourceIndex, t.Placement.X, t.Placement.Y, t.Placement.Width, t.Placement.Height)
}
