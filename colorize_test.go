package imgmosaic

import "testing"

// TestColorizeTieBreaksToFirstInsertedEntry applies a two-entry
// MetricColor palette to a solid grey image whose color is exactly
// equidistant from both entries: (127,127,127) is 127 units per
// channel from (0,0,0) and from (254,254,254). The search only
// replaces its best candidate on a strictly smaller distance, so
// every pixel must map to the first-inserted entry. Note a true tie
// needs a pair like 0/254; 0/255 has no integer midpoint, since 128
// is one unit closer to 255 than to 0.
func TestColorizeTieBreaksToFirstInsertedEntry(t *testing.T) {
	dark := NewColor(0, 0, 0)
	light := NewColor(254, 254, 254)
	palette, err := NewPalette([]Color{dark, light}, MetricColor)
	if err != nil {
		t.Fatal(err)
	}

	buf, err := NewPixelBuffer(3, 3, 24)
	if err != nil {
		t.Fatal(err)
	}
	gray := NewColor(127, 127, 127)
	if gray.SquaredDistance(dark) != gray.SquaredDistance(light) {
		t.Fatalf("test setup broken: %d vs %d, the two entries must be equidistant",
			gray.SquaredDistance(dark), gray.SquaredDistance(light))
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			buf.Set(x, y, gray)
		}
	}

	cz := NewColorizer(palette)
	cz.Apply(buf)

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if got := buf.At(x, y); got != dark {
				t.Fatalf("(%d,%d): got %v, want first-inserted %v", x, y, got, dark)
			}
		}
	}
}

// TestColorizeExactPaletteMembersUnchanged checks that a pixel whose
// color already matches a palette entry maps to itself.
func TestColorizeExactPaletteMembersUnchanged(t *testing.T) {
	colors := []Color{
		NewColor(255, 0, 0),
		NewColor(0, 255, 0),
		NewColor(0, 0, 255),
	}
	palette, err := NewPalette(colors, MetricColor)
	if err != nil {
		t.Fatal(err)
	}
	buf, err := NewPixelBuffer(3, 1, 24)
	if err != nil {
		t.Fatal(err)
	}
	for x, c := range colors {
		buf.Set(x, 0, c)
	}

	cz := NewColorizer(palette)
	cz.Apply(buf)

	for x, want := range colors {
		if got := buf.At(x, 0); got != want {
			t.Fatalf("x=%d: got %v, want %v", x, got, want)
		}
	}
}

// TestColorizeGradientBucketsMonotonic checks that MetricGradient maps
// a dark pixel to a lower palette index than a bright one.
func TestColorizeGradientBucketsMonotonic(t *testing.T) {
	colors := []Color{
		NewColor(10, 10, 10),
		NewColor(120, 120, 120),
		NewColor(250, 250, 250),
	}
	palette, err := NewPalette(colors, MetricGradient)
	if err != nil {
		t.Fatal(err)
	}
	buf, err := NewPixelBuffer(2, 1, 24)
	if err != nil {
		t.Fatal(err)
	}
	buf.Set(0, 0, NewColor(5, 5, 5))
	buf.Set(1, 0, NewColor(250, 250, 250))

	cz := NewColorizer(palette)
	cz.Apply(buf)

	dark := buf.At(0, 0)
	bright := buf.At(1, 0)
	if dark.Brightness() > bright.Brightness() {
		t.Fatalf("expected dark pixel's mapped brightness <= bright pixel's, got %d > %d", dark.Brightness(), bright.Brightness())
	}
}
