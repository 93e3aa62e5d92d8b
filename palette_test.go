package imgmosaic

import "testing"

// TestPaletteExtractorAlternatingColors extracts K=2 from a 4x4 image
// of alternating red/blue pixels and expects exactly the two source
// colors back. With two distinct colors and K=2, Extract skips
// clustering and returns the unique set itself, so only the set is
// checked, not its order.
func TestPaletteExtractorAlternatingColors(t *testing.T) {
	buf, err := NewPixelBuffer(4, 4, 24)
	if err != nil {
		t.Fatal(err)
	}
	red := NewColor(255, 0, 0)
	blue := NewColor(0, 0, 255)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if (x+y)%2 == 0 {
				buf.Set(x, y, red)
			} else {
				buf.Set(x, y, blue)
			}
		}
	}

	extractor, err := NewPaletteExtractor(2)
	if err != nil {
		t.Fatal(err)
	}
	palette, err := extractor.Extract(buf)
	if err != nil {
		t.Fatal(err)
	}

	if len(palette.Colors) != 2 {
		t.Fatalf("expected 2 colors, got %d", len(palette.Colors))
	}
	seen := map[Color]bool{palette.Colors[0]: true, palette.Colors[1]: true}
	if !seen[red] || !seen[blue] {
		t.Fatalf("expected {red, blue}, got %v", palette.Colors)
	}
}

// TestPaletteShrinksToUniqueCount checks that the number of palette
// entries returned is min(K, U) where U is the image's unique color
// count.
func TestPaletteShrinksToUniqueCount(t *testing.T) {
	buf, err := NewPixelBuffer(8, 1, 24)
	if err != nil {
		t.Fatal(err)
	}
	for x := 0; x < 8; x++ {
		v := byte(x * 30)
		buf.Set(x, 0, NewColor(v, v, v))
	}

	extractor, err := NewPaletteExtractor(32)
	if err != nil {
		t.Fatal(err)
	}
	palette, err := extractor.Extract(buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(palette.Colors) != 8 {
		t.Fatalf("expected min(K,U)=8 colors, got %d", len(palette.Colors))
	}
}

// TestPaletteBrightnessSortOrder checks that a MetricBrightness
// palette's stored lookup order is non-decreasing in V.
func TestPaletteBrightnessSortOrder(t *testing.T) {
	colors := []Color{
		NewColor(200, 200, 200),
		NewColor(10, 10, 10),
		NewColor(128, 0, 0),
		NewColor(0, 0, 255),
	}
	p, err := NewPalette(colors, MetricBrightness)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(p.projection); i++ {
		if p.projection[i] < p.projection[i-1] {
			t.Fatalf("brightness projection not sorted: %v", p.projection)
		}
	}
}

// TestPaletteHueSortOrder is the same ordering check for MetricHue.
func TestPaletteHueSortOrder(t *testing.T) {
	colors := []Color{
		NewColor(0, 255, 0),
		NewColor(255, 0, 0),
		NewColor(0, 0, 255),
		NewColor(255, 255, 0),
	}
	p, err := NewPalette(colors, MetricHue)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(p.projection); i++ {
		if p.projection[i] < p.projection[i-1] {
			t.Fatalf("hue projection not sorted: %v", p.projection)
		}
	}
}

// TestPaletteSaturationSortOrder is the same ordering check for
// MetricSaturation.
func TestPaletteSaturationSortOrder(t *testing.T) {
	colors := []Color{
		NewColor(255, 0, 0),
		NewColor(128, 128, 128),
		NewColor(200, 100, 100),
		NewColor(0, 0, 0),
	}
	p, err := NewPalette(colors, MetricSaturation)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(p.projection); i++ {
		if p.projection[i] < p.projection[i-1] {
			t.Fatalf("saturation projection not sorted: %v", p.projection)
		}
	}
}

func TestNewPaletteRejectsEmpty(t *testing.T) {
	if _, err := NewPalette(nil, MetricColor); err == nil {
		t.Fatal("expected error for empty palette")
	}
}

// TestGradientBucketsSpanPaletteOrder checks that gradient lookup
// buckets a dark color into the palette's first entries and a bright
// color into its last, with the palette kept in stored (dark-to-light)
// order per NewPalette's MetricGradient branch.
func TestGradientBucketsSpanPaletteOrder(t *testing.T) {
	colors := []Color{
		NewColor(200, 200, 200),
		NewColor(0, 0, 0),
		NewColor(100, 100, 100),
	}
	p, err := NewPalette(colors, MetricGradient)
	if err != nil {
		t.Fatal(err)
	}
	darkIdx := p.Lookup(NewColor(1, 1, 1))
	brightIdx := p.Lookup(NewColor(254, 254, 254))
	if darkIdx >= brightIdx {
		t.Fatalf("expected dark bucket index < bright bucket index, got %d >= %d", darkIdx, brightIdx)
	}
}
