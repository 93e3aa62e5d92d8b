package imgmosaic

import "testing"

// TestToHSVGreyInputs exercises the zero-divisor branches directly:
// any color with R=G=B has no hue or saturation, and black has no
// value either.
func TestToHSVGreyInputs(t *testing.T) {
	for _, v := range []byte{0, 1, 127, 128, 254, 255} {
		hsv := NewColor(v, v, v).ToHSV()
		if hsv.H != 0 {
			t.Errorf("grey %d: H = %d, want 0", v, hsv.H)
		}
		if hsv.S != 0 {
			t.Errorf("grey %d: S = %d, want 0", v, hsv.S)
		}
		if hsv.V != v {
			t.Errorf("grey %d: V = %d, want %d", v, hsv.V, v)
		}
	}
}

// TestToHSVHueOrdering checks the six-sector hue wheel comes out in
// the canonical order at the fixed-point 0-252 scale: red, yellow,
// green, cyan, blue, magenta at successive 42-unit steps.
func TestToHSVHueOrdering(t *testing.T) {
	cases := []struct {
		name  string
		color Color
		h     byte
	}{
		{"red", NewColor(255, 0, 0), 0},
		{"yellow", NewColor(255, 255, 0), 42},
		{"green", NewColor(0, 255, 0), 84},
		{"cyan", NewColor(0, 255, 255), 126},
		{"blue", NewColor(0, 0, 255), 168},
		{"magenta", NewColor(255, 0, 255), 210},
	}
	for _, tc := range cases {
		if got := tc.color.ToHSV().H; got != tc.h {
			t.Errorf("%s: H = %d, want %d", tc.name, got, tc.h)
		}
	}
}

// TestToHSVValueIsMaxChannel checks V = max(R,G,B).
func TestToHSVValueIsMaxChannel(t *testing.T) {
	cases := []struct {
		color Color
		v     byte
	}{
		{NewColor(10, 200, 30), 200},
		{NewColor(200, 10, 30), 200},
		{NewColor(10, 30, 200), 200},
		{NewColor(0, 0, 0), 0},
	}
	for _, tc := range cases {
		if got := tc.color.ToHSV().V; got != tc.v {
			t.Errorf("%v: V = %d, want %d", tc.color, got, tc.v)
		}
	}
}

// TestToHSVSaturation checks S = 255*(V-min)/V: full for a pure
// primary, zero for grey, in between for a tinted color.
func TestToHSVSaturation(t *testing.T) {
	if got := NewColor(255, 0, 0).ToHSV().S; got != 255 {
		t.Errorf("pure red: S = %d, want 255", got)
	}
	if got := NewColor(200, 100, 100).ToHSV().S; got != byte(100*255/200) {
		t.Errorf("tinted red: S = %d, want %d", got, 100*255/200)
	}
}
