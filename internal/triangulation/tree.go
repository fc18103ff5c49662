// Package triangulation rebuilds the adaptive subdivision of the weight
// simplex from the flat point and triangle lists sent by the routing
// backend. Points and triangles live in two slices; triangles refer to
// points by index.
package triangulation

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/golang/geo/r2"

	"github.com/jengzang/route-simplex/internal/colorize"
	"github.com/jengzang/route-simplex/internal/models"
	"github.com/jengzang/route-simplex/internal/spatial"
)

// ErrMalformedTriangulation is returned when the backend data is inconsistent
var ErrMalformedTriangulation = errors.New("malformed triangulation")

// Mode selects how triangles are coloured
type Mode int

const (
	// Diversity fills triangles that hold no further distinct routes
	Diversity Mode = iota
	// Gradient fills leaf triangles with the colour of their mean weights
	Gradient
)

// String returns the mode name used in URLs
func (m Mode) String() string {
	switch m {
	case Diversity:
		return "diversity"
	case Gradient:
		return "gradient"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode parses "diversity" or "gradient"
func ParseMode(s string) (Mode, error) {
	switch s {
	case "diversity":
		return Diversity, nil
	case "gradient":
		return Gradient, nil
	}
	return 0, fmt.Errorf("unknown render mode %q", s)
}

// Point is a sampled weighting
type Point struct {
	Weights spatial.Weights
	Screen  r2.Point
	Route   models.RouteResult
}

// Triangle indexes three points of the tree
type Triangle struct {
	P1, P2, P3   int
	NoChildren   bool
	NoMoreRoutes bool
}

// Indices returns the three point indices
func (t Triangle) Indices() [3]int {
	return [3]int{t.P1, t.P2, t.P3}
}

// Leaf reports whether the triangle is drawn filled in the given mode
func (t Triangle) Leaf(mode Mode) bool {
	if mode == Gradient {
		return t.NoChildren
	}
	return t.NoMoreRoutes
}

// Tree is the triangulation of the weight simplex
type Tree struct {
	Points    []Point
	Triangles []Triangle
}

// Build validates the backend lists and converts them into a tree.
// Nothing is returned if any triangle references a missing point.
func Build(data *models.Triangulation, simplex *spatial.Simplex) (*Tree, error) {
	tree := &Tree{
		Points:    make([]Point, 0, len(data.Points)),
		Triangles: make([]Triangle, 0, len(data.Triangles)),
	}

	for i, p := range data.Points {
		w, err := spatial.ParseWeights(p.Conf)
		if err != nil {
			return nil, fmt.Errorf("%w: point %d: %v", ErrMalformedTriangulation, i, err)
		}
		tree.Points = append(tree.Points, Point{
			Weights: w,
			Screen:  simplex.Forward(w),
			Route:   p.Route,
		})
	}

	n := len(tree.Points)
	for i, t := range data.Triangles {
		for _, idx := range [3]int{t.Point1, t.Point2, t.Point3} {
			if idx < 0 || idx >= n {
				return nil, fmt.Errorf("%w: triangle %d references point %d of %d", ErrMalformedTriangulation, i, idx, n)
			}
		}
		tree.Triangles = append(tree.Triangles, Triangle{
			P1:           t.Point1,
			P2:           t.Point2,
			P3:           t.Point3,
			NoChildren:   t.NoChildren,
			NoMoreRoutes: t.NoMoreRoutes,
		})
	}

	return tree, nil
}

// Canvas receives the triangles of a rendered tree
type Canvas interface {
	FillTriangle(a, b, c r2.Point, col color.Color)
	StrokeTriangle(a, b, c r2.Point, col color.Color)
}

// Corners returns the screen points of a triangle
func (t *Tree) Corners(tri Triangle) (a, b, c r2.Point) {
	return t.Points[tri.P1].Screen, t.Points[tri.P2].Screen, t.Points[tri.P3].Screen
}

// FillColor returns the colour of a leaf triangle in the given mode
func (t *Tree) FillColor(tri Triangle, mode Mode) color.NRGBA {
	if mode == Gradient {
		return colorize.GradientRGBA(spatial.Mean(
			t.Points[tri.P1].Weights,
			t.Points[tri.P2].Weights,
			t.Points[tri.P3].Weights,
		))
	}
	return colorize.CategoricalRGBA(tri.P1)
}

// Render draws every triangle: leaves filled, interior triangles stroked
// in black.
func (t *Tree) Render(c Canvas, mode Mode) {
	for _, tri := range t.Triangles {
		a, b, cc := t.Corners(tri)
		if tri.Leaf(mode) {
			c.FillTriangle(a, b, cc, t.FillColor(tri, mode))
		} else {
			c.StrokeTriangle(a, b, cc, colorize.Black)
		}
	}
}

// Leaves counts the triangles filled in the given mode
func (t *Tree) Leaves(mode Mode) int {
	n := 0
	for _, tri := range t.Triangles {
		if tri.Leaf(mode) {
			n++
		}
	}
	return n
}

// DistinctRoutes counts the distinct route costs among the sampled points
func (t *Tree) DistinctRoutes() int {
	return len(t.RouteCounts())
}

// RouteCounts returns how many sampled points found each distinct route,
// in order of first appearance
func (t *Tree) RouteCounts() []float64 {
	index := make(map[models.Cost]int, len(t.Points))
	var counts []float64
	for _, p := range t.Points {
		i, ok := index[p.Route.Cost]
		if !ok {
			i = len(counts)
			index[p.Route.Cost] = i
			counts = append(counts, 0)
		}
		counts[i]++
	}
	return counts
}
