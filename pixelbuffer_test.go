package imgmosaic

import "testing"

// TestPixelBufferStrideAlignment checks the stride invariant: at least
// the packed row width, and always a multiple of 4.
func TestPixelBufferStrideAlignment(t *testing.T) {
	cases := []struct{ width, bitDepth int }{
		{1, 24}, {2, 24}, {3, 24}, {4, 24}, {5, 24}, {640, 24},
		{1, 48}, {3, 48}, {5, 48},
	}
	for _, tc := range cases {
		buf, err := NewPixelBuffer(tc.width, 2, tc.bitDepth)
		if err != nil {
			t.Fatalf("%dx2@%d: %v", tc.width, tc.bitDepth, err)
		}
		packed := tc.width * tc.bitDepth / 8
		if buf.Stride < packed {
			t.Errorf("%dx2@%d: stride %d below packed row width %d", tc.width, tc.bitDepth, buf.Stride, packed)
		}
		if buf.Stride%4 != 0 {
			t.Errorf("%dx2@%d: stride %d not a multiple of 4", tc.width, tc.bitDepth, buf.Stride)
		}
		if len(buf.Pix) != buf.Stride*buf.Height {
			t.Errorf("%dx2@%d: len(Pix)=%d, want stride*height=%d", tc.width, tc.bitDepth, len(buf.Pix), buf.Stride*buf.Height)
		}
	}
}

// TestPixelBufferRoundTrip48 checks Set/At round-trip at 48bpp and
// that each 16-bit sample is the 8-bit value duplicated into both
// bytes, so a 255 channel expands to 0xffff.
func TestPixelBufferRoundTrip48(t *testing.T) {
	buf, err := NewPixelBuffer(2, 1, 48)
	if err != nil {
		t.Fatal(err)
	}
	c := NewColor(255, 128, 7)
	buf.Set(0, 0, c)
	if got := buf.At(0, 0); got != c {
		t.Fatalf("48bpp round trip: got %v, want %v", got, c)
	}

	row := buf.RowAt(0)
	if row[0] != 255 || row[1] != 255 {
		t.Errorf("red sample bytes = %02x %02x, want ff ff", row[0], row[1])
	}
	if row[2] != 128 || row[3] != 128 {
		t.Errorf("green sample bytes = %02x %02x, want 80 80", row[2], row[3])
	}
}

func TestNewPixelBufferRejectsBadArguments(t *testing.T) {
	if _, err := NewPixelBuffer(0, 10, 24); err == nil {
		t.Fatal("expected error for zero width")
	}
	if _, err := NewPixelBuffer(10, 10, 32); err == nil {
		t.Fatal("expected error for unsupported bit depth")
	}
}
