package spatial

import (
	"math"

	"github.com/golang/geo/r2"
)

// Corners holds the canvas positions of the three "100% weight" corners
type Corners struct {
	Length        r2.Point
	Height        r2.Point
	Unsuitability r2.Point
}

// DefaultCorners is the layout of the 510x510 selector canvas
var DefaultCorners = Corners{
	Length:        r2.Point{X: 5, Y: 505},
	Height:        r2.Point{X: 505, Y: 505},
	Unsuitability: r2.Point{X: 252, Y: 22},
}

// Simplex maps between canvas points and weight vectors
type Simplex struct {
	corners [3]r2.Point
}

// NewSimplex creates a simplex over the given corners
func NewSimplex(c Corners) *Simplex {
	return &Simplex{corners: [3]r2.Point{c.Length, c.Height, c.Unsuitability}}
}

// Corner returns the corner of objective i
func (s *Simplex) Corner(i int) r2.Point {
	return s.corners[i]
}

// Vertices returns the three corners in objective order
func (s *Simplex) Vertices() [3]r2.Point {
	return s.corners
}

// Center returns the point of equal weights
func (s *Simplex) Center() r2.Point {
	return s.Forward(Equal())
}

// Forward maps a weight vector to its canvas point. The weights are used
// as given; callers normalise.
func (s *Simplex) Forward(w Weights) r2.Point {
	var p r2.Point
	for i, c := range s.corners {
		p.X += c.X * w[i]
		p.Y += c.Y * w[i]
	}
	return p
}

// Inverse maps a canvas point to weights by area ratios: the weight of an
// objective is the area of the sub-triangle spanned by the point and the
// edge opposite that objective's corner. Points outside the triangle are
// not clamped.
func (s *Simplex) Inverse(p r2.Point) Weights {
	l, h, u := s.corners[Length], s.corners[Height], s.corners[Unsuitability]

	areas := Weights{
		HeronArea(p, h, u),
		HeronArea(p, l, u),
		HeronArea(p, l, h),
	}

	sum := areas.Sum()
	if sum == 0 {
		// all three corners coincide
		return Equal()
	}
	for i := range areas {
		areas[i] /= sum
	}
	return areas
}

// Contains reports whether p lies inside or on the border of the triangle
func (s *Simplex) Contains(p r2.Point) bool {
	a, b, c := s.corners[0], s.corners[1], s.corners[2]
	d1, d2, d3 := Sign(p, a, b), Sign(p, b, c), Sign(p, c, a)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

// Sign returns the orientation of the triangle abc
func Sign(a, b, c r2.Point) float64 {
	return (a.X-c.X)*(b.Y-c.Y) - (b.X-c.X)*(a.Y-c.Y)
}

// Distance returns the Euclidean distance between two canvas points
func Distance(p0, p1 r2.Point) float64 {
	return p0.Sub(p1).Norm()
}

// HeronArea computes the area of a triangle from its side lengths.
// Rounding can push the radicand slightly below zero for collinear
// points; that is treated as a zero area.
func HeronArea(p0, p1, p2 r2.Point) float64 {
	a := Distance(p0, p1)
	b := Distance(p0, p2)
	c := Distance(p1, p2)

	s := (a + b + c) / 2
	radicand := s * (s - a) * (s - b) * (s - c)
	if radicand <= 0 {
		return 0
	}
	return math.Sqrt(radicand)
}
