package imgmosaic

import (
	"image"
	"image/color"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// CaptionRenderer draws a tile's caption text directly onto a
// PixelBuffer using a TrueType font. Captions are arbitrary-length
// filenames rendered at a size proportional to the tile, so glyphs
// are rasterized on demand rather than precomputed into a fixed
// bitmap cache.
//
// freetype.Context is not documented as safe for concurrent use, so
// every Draw call takes renderMu; tile pixel drawing itself still
// proceeds in parallel in TileComposer.Compose, and only degrades to
// serial for the (much cheaper) caption pass that follows it.
type CaptionRenderer struct {
	font     *truetype.Font
	Color    Color
	Fraction float64 // caption height as a fraction of tile height

	renderMu sync.Mutex
}

// NewCaptionRenderer parses a TrueType font from raw bytes.
func NewCaptionRenderer(fontBytes []byte) (*CaptionRenderer, error) {
	f, err := freetype.ParseFont(fontBytes)
	if err != nil {
		return nil, backendFailure("NewCaptionRenderer", err)
	}
	return &CaptionRenderer{font: f, Color: NewColor(255, 255, 255), Fraction: 0.06}, nil
}

// Draw renders text near the bottom of placement's rectangle within
// canvas: a baseline a small margin above the tile's bottom edge,
// using a font size scaled to the tile's own height.
func (cr *CaptionRenderer) Draw(canvas *PixelBuffer, placement TilePlacement, text string) {
	cr.renderMu.Lock()
	defer cr.renderMu.Unlock()

	fontSize := float64(placement.Height) * cr.Fraction
	if fontSize < 6 {
		fontSize = 6
	}

	rgba := image.NewRGBA(image.Rect(0, 0, placement.Width, placement.Height))

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(cr.font)
	ctx.SetFontSize(fontSize)
	ctx.SetClip(rgba.Bounds())
	ctx.SetDst(rgba)
	ctx.SetHinting(font.HintingFull)
	r, g, b := cr.Color.RGB()
	ctx.SetSrc(image.NewUniform(color.RGBA{R: r, G: g, B: b, A: 255}))

	margin := int(fontSize * 0.4)
	baseline := placement.Height - margin
	pt := freetype.Pt(margin, baseline)
	_, _ = ctx.DrawString(text, pt)

	for y := 0; y < placement.Height; y++ {
		for x := 0; x < placement.Width; x++ {
			_, _, _, a := rgba.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			cx, cy := placement.X+x, placement.Y+y
			if cx < 0 || cy < 0 || cx >= canvas.Width || cy >= canvas.Height {
				continue
			}
			canvas.Set(cx, cy, cr.Color)
		}
	}
}
