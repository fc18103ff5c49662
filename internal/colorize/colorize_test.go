package colorize

import (
	"image/color"
	"testing"

	"github.com/jengzang/route-simplex/internal/spatial"
)

func TestGradientChannels(t *testing.T) {
	tests := []struct {
		w    spatial.Weights
		want string
		rgba color.NRGBA
	}{
		{spatial.Weights{1, 0, 0}, "#0000ff", color.NRGBA{B: 255, A: 255}},
		{spatial.Weights{0, 1, 0}, "#00ff00", color.NRGBA{G: 255, A: 255}},
		{spatial.Weights{0, 0, 1}, "#ff0000", color.NRGBA{R: 255, A: 255}},
		{spatial.Weights{0.5, 0.5, 0}, "#008080", color.NRGBA{G: 128, B: 128, A: 255}},
	}
	for _, tt := range tests {
		if got := Gradient(tt.w); got != tt.want {
			t.Errorf("Gradient(%v) = %s, want %s", tt.w, got, tt.want)
		}
		if got := GradientRGBA(tt.w); got != tt.rgba {
			t.Errorf("GradientRGBA(%v) = %v, want %v", tt.w, got, tt.rgba)
		}
	}
}

func TestGradientClampsOutOfRange(t *testing.T) {
	if got := Gradient(spatial.Weights{-0.5, 2, 0}); got != "#00ff00" {
		t.Errorf("expected clamped channels, got %s", got)
	}
}

func TestCategoricalWraps(t *testing.T) {
	if PaletteSize < 20 {
		t.Fatalf("palette too small: %d", PaletteSize)
	}
	if Categorical(0) != "#543005" {
		t.Errorf("unexpected first colour %s", Categorical(0))
	}
	if Categorical(PaletteSize) != Categorical(0) {
		t.Error("index should wrap around the palette")
	}
	if Categorical(-1) != Categorical(PaletteSize-1) {
		t.Error("negative indices should wrap as well")
	}
	seen := make(map[string]bool)
	for i := 0; i < PaletteSize; i++ {
		seen[Categorical(i)] = true
	}
	if len(seen) != PaletteSize {
		t.Errorf("palette has duplicates: %d distinct of %d", len(seen), PaletteSize)
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#f628c3")
	if err != nil {
		t.Fatal(err)
	}
	if c != (color.NRGBA{R: 0xf6, G: 0x28, B: 0xc3, A: 0xff}) {
		t.Errorf("unexpected colour %v", c)
	}
	if Hex(c) != "#f628c3" {
		t.Errorf("Hex round trip gave %s", Hex(c))
	}
	for _, bad := range []string{"", "f628c3", "#zzzzzz", "#12345"} {
		if _, err := ParseHex(bad); err == nil {
			t.Errorf("ParseHex(%q) should fail", bad)
		}
	}
}
