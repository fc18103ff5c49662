// Package render rasterises the weight-simplex selector: the background
// triangle, the triangulation overlay and the position dots.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/golang/geo/r2"
	"golang.org/x/image/vector"
)

const circleSegments = 24

// Canvas is an in-memory drawing surface
type Canvas struct {
	img *image.NRGBA
	z   *vector.Rasterizer
}

// NewCanvas creates a transparent canvas
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		img: image.NewNRGBA(image.Rect(0, 0, width, height)),
		z:   vector.NewRasterizer(width, height),
	}
}

// Bounds returns the canvas rectangle
func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Bounds()
}

// Clear erases the canvas
func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

// FillPolygon fills a closed polygon
func (c *Canvas) FillPolygon(pts []r2.Point, col color.Color) {
	if len(pts) < 3 {
		return
	}
	b := c.img.Bounds()
	c.z.Reset(b.Dx(), b.Dy())
	c.z.DrawOp = draw.Over
	c.z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		c.z.LineTo(float32(p.X), float32(p.Y))
	}
	c.z.ClosePath()
	c.z.Draw(c.img, b, image.NewUniform(col), image.Point{})
}

// FillTriangle fills the triangle abc
func (c *Canvas) FillTriangle(a, b, cc r2.Point, col color.Color) {
	c.FillPolygon([]r2.Point{a, b, cc}, col)
}

// StrokeTriangle outlines the triangle abc with a one pixel line
func (c *Canvas) StrokeTriangle(a, b, cc r2.Point, col color.Color) {
	c.StrokeLine(a, b, 1, col)
	c.StrokeLine(b, cc, 1, col)
	c.StrokeLine(cc, a, 1, col)
}

// StrokeLine draws a segment of the given width
func (c *Canvas) StrokeLine(a, b r2.Point, width float64, col color.Color) {
	d := b.Sub(a)
	length := d.Norm()
	if length == 0 {
		return
	}
	n := d.Ortho().Mul(width / 2 / length)
	c.FillPolygon([]r2.Point{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}, col)
}

// FillCircle draws a filled disc
func (c *Canvas) FillCircle(center r2.Point, radius float64, col color.Color) {
	pts := make([]r2.Point, 0, circleSegments)
	for i := 0; i < circleSegments; i++ {
		angle := 2 * math.Pi * float64(i) / circleSegments
		pts = append(pts, r2.Point{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		})
	}
	c.FillPolygon(pts, col)
}

// Image returns the underlying image
func (c *Canvas) Image() *image.NRGBA {
	return c.img
}

// EncodePNG writes the canvas as PNG
func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}
