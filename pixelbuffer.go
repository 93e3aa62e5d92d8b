package imgmosaic

// PixelBuffer is a raw packed-pixel image: one row per scanline,
// three samples per pixel, no alpha, no padding beyond Stride. BitDepth
// is 24 (one byte per channel, BGR order) or 48 (two little-endian
// bytes per channel, RGB order), the two layouts the colorize and
// posterize operations understand.
type PixelBuffer struct {
	Width, Height int
	BitDepth      int
	Stride        int
	Pix           []byte
}

// NewPixelBuffer allocates a buffer whose stride is the row byte
// width rounded up to a multiple of 4.
func NewPixelBuffer(width, height, bitDepth int) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, invalidArg("NewPixelBuffer", "dimensions must be positive, got %dx%d", width, height)
	}
	if bitDepth != 24 && bitDepth != 48 {
		return nil, invalidArg("NewPixelBuffer", "bit depth must be 24 or 48, got %d", bitDepth)
	}
	bytesPerPixel := bitDepth / 8
	stride := (width*bytesPerPixel + 3) &^ 3 // rows are 4-byte aligned
	return &PixelBuffer{
		Width:    width,
		Height:   height,
		BitDepth: bitDepth,
		Stride:   stride,
		Pix:      make([]byte, stride*height),
	}, nil
}

// RowAt returns the byte slice for scanline y.
func (p *PixelBuffer) RowAt(y int) []byte {
	return p.Pix[y*p.Stride : y*p.Stride+p.Stride]
}

// At returns the color of the pixel at (x, y).
func (p *PixelBuffer) At(x, y int) Color {
	row := p.RowAt(y)
	if p.BitDepth == 24 {
		i := x * 3
		b, g, r := row[i], row[i+1], row[i+2]
		return NewColor(r, g, b)
	}
	// 48bpp: RGB order, two little-endian bytes per channel; only the
	// high byte carries information for our purposes.
	i := x * 6
	r8 := row[i+1]
	g8 := row[i+3]
	b8 := row[i+5]
	return NewColor(r8, g8, b8)
}

// Set writes a color to the pixel at (x, y), matching the buffer's
// bit depth and channel order exactly as it would be read back by At.
func (p *PixelBuffer) Set(x, y int, c Color) {
	row := p.RowAt(y)
	r, g, b := c.RGB()
	if p.BitDepth == 24 {
		i := x * 3
		row[i], row[i+1], row[i+2] = b, g, r
		return
	}
	// 48bpp: each 16-bit sample is the 8-bit value duplicated into both
	// bytes, so 0xff expands to 0xffff rather than 0xff00.
	i := x * 6
	row[i], row[i+1] = r, r
	row[i+2], row[i+3] = g, g
	row[i+4], row[i+5] = b, b
}

// Greyscale converts every pixel in place to its luminance value,
// replicated across all three channels, using the fixed-point weights
// Y = (54R + 182G + 18B) / 256.
func (p *PixelBuffer) Greyscale() {
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			c := p.At(x, y)
			r, g, b := c.RGB()
			v := byte((54*int(r) + 182*int(g) + 18*int(b)) / 256)
			p.Set(x, y, NewColor(v, v, v))
		}
	}
}
