package imgmosaic

// Posterizer reduces each color channel independently to one of
// levels evenly spaced values, with the top bucket forced to the
// channel's maximum so posterization never dims the brightest tone.
type Posterizer struct {
	levels int
	values []byte
}

// NewPosterizer builds a posterizer for the given number of levels
// (must be in [1,256]; 1 collapses every channel to max).
func NewPosterizer(levels int) (*Posterizer, error) {
	if levels < 1 || levels > 256 {
		return nil, invalidArg("NewPosterizer", "levels must be in [1,256], got %d", levels)
	}
	const maxT = 255
	values := make([]byte, levels)
	if levels == 1 {
		values[0] = maxT
		return &Posterizer{levels: levels, values: values}, nil
	}
	for v := 0; v < levels; v++ {
		val := (v*maxT + (levels-1)/2) / (levels - 1) // round(v*255/(N-1))

		// A level's output value must land back in level v's own
		// bucket, or re-posterizing an already posterized image would
		// shift it. For most N the rounded value already does; near
		// N=256 the buckets are a single grey step wide and the value
		// has to be nudged into place.
		lo := (256*v + levels - 1) / levels
		hi := (256*(v+1)+levels-1)/levels - 1
		if val < lo {
			val = lo
		}
		if val > hi {
			val = hi
		}
		values[v] = byte(val)
	}
	values[levels-1] = maxT // make the brightest truly bright
	return &Posterizer{levels: levels, values: values}, nil
}

// bucket maps a raw 0-255 channel sample to its posterized value. The
// level index is sample*N/256, clamped so a full-intensity sample
// still lands in the top bucket.
func (p *Posterizer) bucket(sample byte) byte {
	element := int(sample) * p.levels / 256
	if element >= p.levels {
		element = p.levels - 1
	}
	return p.values[element]
}

// Apply posterizes every channel of every pixel in place.
func (p *Posterizer) Apply(buf *PixelBuffer) {
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			c := buf.At(x, y)
			r, g, b := c.RGB()
			buf.Set(x, y, NewColor(p.bucket(r), p.bucket(g), p.bucket(b)))
		}
	}
}

// Color posterizes a single color without touching a buffer, used by
// callers that posterize and then look up a palette entry in the same
// pass.
func (p *Posterizer) Color(c Color) Color {
	r, g, b := c.RGB()
	return NewColor(p.bucket(r), p.bucket(g), p.bucket(b))
}
