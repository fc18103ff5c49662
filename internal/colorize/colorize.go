// Package colorize turns weight vectors and sample indices into display
// colours for the selector canvases and the route overlay.
package colorize

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/jengzang/route-simplex/internal/spatial"
)

// palette is indexed by triangulation point index
var palette = []string{
	"#543005",
	"#8c510a",
	"#bf812d",
	"#dfc27d",
	"#f628c3",
	"#000000",
	"#c7ea25",
	"#80cdc1",
	"#35978f",
	"#01665e",
	"#003c30",
	"#a50026",
	"#d73027",
	"#f46d43",
	"#fdae61",
	"#fee08b",
	"#333333",
	"#d9ef8b",
	"#a6d96a",
	"#66bd63",
	"#1a9850",
	"#006837",
}

// PaletteSize is the number of distinct categorical colours
var PaletteSize = len(palette)

// Gradient maps weights to a colour: unsuitability drives red, height
// drives green and length drives blue.
func Gradient(w spatial.Weights) string {
	c := GradientRGBA(w)
	return Hex(c)
}

// GradientRGBA is Gradient as a color.NRGBA
func GradientRGBA(w spatial.Weights) color.NRGBA {
	return color.NRGBA{
		R: channel(w[spatial.Unsuitability]),
		G: channel(w[spatial.Height]),
		B: channel(w[spatial.Length]),
		A: 0xff,
	}
}

func channel(v float64) uint8 {
	c := math.Round(v * 255)
	if c < 0 || math.IsNaN(c) {
		return 0
	}
	if c > 255 {
		return 255
	}
	return uint8(c)
}

// Categorical returns a stable colour for index i; indices wrap around
// the palette.
func Categorical(i int) string {
	n := len(palette)
	return palette[((i%n)+n)%n]
}

// CategoricalRGBA is Categorical as a color.NRGBA
func CategoricalRGBA(i int) color.NRGBA {
	c, _ := ParseHex(Categorical(i))
	return c
}

// Hex formats an opaque colour as "#rrggbb"
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses "#rrggbb" into an opaque colour
func ParseHex(s string) (color.NRGBA, error) {
	var c color.NRGBA
	if len(s) != 7 || s[0] != '#' {
		return c, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return c, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	c.R, c.G, c.B, c.A = uint8(v>>16), uint8(v>>8), uint8(v), 0xff
	return c, nil
}

// Named colours used by the canvases
var (
	Black     = color.NRGBA{A: 0xff}
	Blue      = color.NRGBA{B: 0xff, A: 0xff}
	Green     = color.NRGBA{G: 0x80, A: 0xff}
	LightGrey = color.NRGBA{R: 0xd3, G: 0xd3, B: 0xd3, A: 0xff}
)
