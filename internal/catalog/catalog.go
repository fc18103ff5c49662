// Package catalog holds the alternative routes currently shown on the
// map together with their position on the selector canvas.
package catalog

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/paulmach/orb"

	"github.com/jengzang/route-simplex/internal/models"
	"github.com/jengzang/route-simplex/internal/overlay"
	"github.com/jengzang/route-simplex/internal/spatial"
)

// DefaultHitThreshold is the maximum pointer distance in pixels for a hit
const DefaultHitThreshold = 5.0

// Stroke weights applied by HitTest
const (
	RestingWeight  = 4.0
	EmphasisWeight = 10.0
)

// Entry is one route of the catalog
type Entry struct {
	Weights spatial.Weights
	Point   r2.Point
	Cost    models.Cost
	Path    *overlay.Path
}

// Catalog is the ordered set of routes available for hit testing
type Catalog struct {
	layer   *overlay.Layer
	entries []Entry
}

// New creates an empty catalog drawing on the given layer
func New(layer *overlay.Layer) *Catalog {
	return &Catalog{layer: layer}
}

// Reset removes every entry and its path from the map
func (c *Catalog) Reset() {
	for _, e := range c.entries {
		if e.Path != nil {
			e.Path.Remove()
		}
	}
	c.entries = nil
}

// Add draws the route geometry with the given style and appends the entry.
// An entry without geometry has no path.
func (c *Catalog) Add(weights spatial.Weights, point r2.Point, cost models.Cost, geometry orb.Geometry, style overlay.Style) Entry {
	e := Entry{
		Weights: weights,
		Point:   point,
		Cost:    cost,
	}
	if geometry != nil {
		e.Path = c.layer.Add(geometry, style)
	}
	c.entries = append(c.entries, e)
	return e
}

// Len returns the number of entries
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns the entries in insertion order
func (c *Catalog) Entries() []Entry {
	return c.entries
}

// HitTest finds the entry closest to p. The first entry wins ties. No
// entry is returned when the closest one is farther than threshold.
// On a hit every path is reset to the resting weight and the hit path
// is emphasised.
func (c *Catalog) HitTest(p r2.Point, threshold float64) (Entry, bool) {
	minDist := math.Inf(1)
	minIndex := -1
	for i, e := range c.entries {
		d := spatial.Distance(e.Point, p)
		if minDist > d {
			minDist = d
			minIndex = i
		}
	}
	if minIndex < 0 || minDist > threshold {
		return Entry{}, false
	}

	for _, e := range c.entries {
		if e.Path != nil {
			e.Path.SetWeight(RestingWeight)
		}
	}
	best := c.entries[minIndex]
	if best.Path != nil {
		best.Path.SetWeight(EmphasisWeight)
	}
	return best, true
}
