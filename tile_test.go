package imgmosaic

import "testing"

// TestGreyscaleFlatColorStaysFlat checks that converting a
// single-color grey image (c,c,c) to greyscale keeps it a flat grey
// image. The fixed-point weights sum to 254/256, so the value may sit
// up to 2 below c; what must hold exactly is that all three channels
// stay equal to each other and the image stays uniform.
func TestGreyscaleFlatColorStaysFlat(t *testing.T) {
	for _, c := range []byte{0, 1, 64, 127, 128, 200, 255} {
		buf, err := NewPixelBuffer(4, 4, 24)
		if err != nil {
			t.Fatal(err)
		}
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				buf.Set(x, y, NewColor(c, c, c))
			}
		}

		buf.Greyscale()

		first := buf.At(0, 0)
		r, g, b := first.RGB()
		if r != g || g != b {
			t.Fatalf("c=%d: greyscale output channels differ: %d %d %d", c, r, g, b)
		}
		if diff := int(c) - int(r); diff < 0 || diff > 2 {
			t.Fatalf("c=%d: greyscale value %d drifted more than the fixed-point rounding allows", c, r)
		}
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				if buf.At(x, y) != first {
					t.Fatalf("c=%d: flat image not uniform after greyscale at (%d,%d)", c, x, y)
				}
			}
		}
	}
}

func TestComposeFloodFillsBackground(t *testing.T) {
	fill := NewColor(10, 20, 30)
	tc := &TileComposer{FillColor: fill}

	tile, err := NewPixelBuffer(2, 2, 24)
	if err != nil {
		t.Fatal(err)
	}
	red := NewColor(255, 0, 0)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			tile.Set(x, y, red)
		}
	}

	canvas, err := tc.Compose(4, 4, []TileSource{
		{Pixels: tile, Placement: TilePlacement{X: 1, Y: 1, Width: 2, Height: 2}},
	})
	if err != nil {
		t.Fatal(err)
	}

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := fill
			if x >= 1 && x < 3 && y >= 1 && y < 3 {
				want = red
			}
			if got := canvas.At(x, y); got != want {
				t.Fatalf("(%d,%d): got %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestComposeRejectsBitDepthMismatch(t *testing.T) {
	tile, err := NewPixelBuffer(2, 2, 48)
	if err != nil {
		t.Fatal(err)
	}
	tc := &TileComposer{BitDepth: 24}
	_, err = tc.Compose(4, 4, []TileSource{
		{Pixels: tile, Placement: TilePlacement{Width: 2, Height: 2}},
	})
	if err == nil {
		t.Fatal("expected error for 48bpp tile on 24bpp canvas")
	}
}

func TestComposeRejectsDimensionMismatch(t *testing.T) {
	tile, err := NewPixelBuffer(3, 3, 24)
	if err != nil {
		t.Fatal(err)
	}
	tc := &TileComposer{}
	_, err = tc.Compose(4, 4, []TileSource{
		{Pixels: tile, Placement: TilePlacement{Width: 2, Height: 2}},
	})
	if err == nil {
		t.Fatal("expected error when tile size differs from its placement rectangle")
	}
}

func TestCaptionFor(t *testing.T) {
	cases := []struct{ path, want string }{
		{"/photos/sunset.jpg", "sunset"},
		{"C:\\photos\\cat.v2.png", "cat.v2"},
		{"noext", "noext"},
		{"dir/noext", "noext"},
	}
	for _, tc := range cases {
		if got := CaptionFor(tc.path); got != tc.want {
			t.Errorf("CaptionFor(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}
