package imgmosaic

import "github.com/lucasb-eyer/go-colorful"

// Color is a packed 24-bit color, low byte first: B in bits 0-7, G in
// bits 8-15, R in bits 16-23. This matches the in-memory byte order of
// a 24bpp PixelBuffer row.
type Color uint32

// NewColor packs three 8-bit channels into a Color.
func NewColor(r, g, b byte) Color {
	return Color(uint32(b) | uint32(g)<<8 | uint32(r)<<16)
}

// R returns the red channel.
func (c Color) R() byte { return byte(c >> 16) }

// G returns the green channel.
func (c Color) G() byte { return byte(c >> 8) }

// B returns the blue channel.
func (c Color) B() byte { return byte(c) }

// RGB returns all three channels at once.
func (c Color) RGB() (r, g, b byte) {
	return c.R(), c.G(), c.B()
}

// SquaredDistance returns the sum of squared channel differences. No
// square root: every distance comparison in this package only needs
// relative ordering, and the k-means/k-d tree cores are defined in
// terms of this exact quantity.
func (c Color) SquaredDistance(o Color) int {
	dr := int(c.R()) - int(o.R())
	dg := int(c.G()) - int(o.G())
	db := int(c.B()) - int(o.B())
	return dr*dr + dg*dg + db*db
}

// Hex renders the color as "#RRGGBB", for human-facing palette dumps.
func (c Color) Hex() string {
	return c.Colorful().Hex()
}

// Colorful converts to a colorful.Color for HSL/Lab reporting.
func (c Color) Colorful() colorful.Color {
	r, g, b := c.RGB()
	return colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}
}

// ColorFromHex parses "#RRGGBB" (or "RRGGBB") into a Color.
func ColorFromHex(s string) (Color, error) {
	cf, err := colorful.Hex(normalizeHex(s))
	if err != nil {
		return 0, &Error{Kind: InvalidArgument, Op: "ColorFromHex", Err: err}
	}
	r, g, b := cf.RGB255()
	return NewColor(r, g, b), nil
}

func normalizeHex(s string) string {
	if len(s) > 0 && s[0] != '#' {
		return "#" + s
	}
	return s
}
