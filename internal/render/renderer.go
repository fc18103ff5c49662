package render

import (
	"image/color"

	"github.com/golang/geo/r2"

	"github.com/jengzang/route-simplex/internal/colorize"
	"github.com/jengzang/route-simplex/internal/spatial"
	"github.com/jengzang/route-simplex/internal/triangulation"
)

// DotRadius is the radius of position markers in pixels
const DotRadius = 3

// Dot is a coloured position marker
type Dot struct {
	Point r2.Point
	Color color.NRGBA
}

// Scene is everything drawn on one selector canvas on top of the
// background triangle. Dots are drawn after the tree, in order.
type Scene struct {
	Tree *triangulation.Tree
	Dots []Dot
}

// Renderer draws scenes for a fixed simplex layout
type Renderer struct {
	simplex       *spatial.Simplex
	width, height int
}

// NewRenderer creates a renderer for canvases of the given size
func NewRenderer(simplex *spatial.Simplex, width, height int) *Renderer {
	return &Renderer{simplex: simplex, width: width, height: height}
}

// Size returns the canvas size
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// Render draws the background, then the tree in the given mode, then the dots
func (r *Renderer) Render(scene Scene, mode triangulation.Mode) *Canvas {
	c := NewCanvas(r.width, r.height)
	r.DrawBackground(c)
	if scene.Tree != nil {
		scene.Tree.Render(c, mode)
	}
	for _, d := range scene.Dots {
		c.FillCircle(d.Point, DotRadius, d.Color)
	}
	return c
}

// DrawBackground clears the canvas and fills the simplex in light grey
func (r *Renderer) DrawBackground(c *Canvas) {
	c.Clear()
	v := r.simplex.Vertices()
	c.FillTriangle(v[0], v[1], v[2], colorize.LightGrey)
}
