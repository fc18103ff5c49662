// Package overlay keeps the route paths drawn over the map, the way a
// map widget's layer group would, and exports them as GeoJSON.
package overlay

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Style controls how a path is stroked on the map
type Style struct {
	Color   string  `json:"color"`
	Weight  float64 `json:"weight"`
	Opacity float64 `json:"opacity"`
}

// Path is a styled route geometry owned by a Layer
type Path struct {
	geometry orb.Geometry
	style    Style
	layer    *Layer
}

// Style returns the current style of the path
func (p *Path) Style() Style {
	return p.style
}

// Geometry returns the path geometry, possibly nil
func (p *Path) Geometry() orb.Geometry {
	return p.geometry
}

// SetWeight changes the stroke weight
func (p *Path) SetWeight(weight float64) {
	p.style.Weight = weight
}

// Remove detaches the path from its layer. Removing twice is a no-op.
func (p *Path) Remove() {
	if p.layer == nil {
		return
	}
	p.layer.remove(p)
	p.layer = nil
}

// Layer is an ordered group of paths
type Layer struct {
	paths []*Path
}

// NewLayer creates an empty layer
func NewLayer() *Layer {
	return &Layer{}
}

// Add draws a geometry with the given style
func (l *Layer) Add(g orb.Geometry, style Style) *Path {
	p := &Path{geometry: g, style: style, layer: l}
	l.paths = append(l.paths, p)
	return p
}

// Clear removes every path
func (l *Layer) Clear() {
	for _, p := range l.paths {
		p.layer = nil
	}
	l.paths = nil
}

// Len returns the number of paths
func (l *Layer) Len() int {
	return len(l.paths)
}

// Paths returns the paths in drawing order
func (l *Layer) Paths() []*Path {
	return l.paths
}

func (l *Layer) remove(p *Path) {
	for i, q := range l.paths {
		if q == p {
			l.paths = append(l.paths[:i], l.paths[i+1:]...)
			return
		}
	}
}

// FeatureCollection exports the paths with their style as feature
// properties. Paths without geometry are skipped.
func (l *Layer) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, p := range l.paths {
		if p.geometry == nil {
			continue
		}
		f := geojson.NewFeature(p.geometry)
		f.Properties["color"] = p.style.Color
		f.Properties["weight"] = p.style.Weight
		f.Properties["opacity"] = p.style.Opacity
		fc.Append(f)
	}
	return fc
}

// Bound returns the bounding box of all paths. ok is false for an empty layer.
func (l *Layer) Bound() (bound orb.Bound, ok bool) {
	for _, p := range l.paths {
		if p.geometry == nil {
			continue
		}
		if !ok {
			bound, ok = p.geometry.Bound(), true
			continue
		}
		bound = bound.Union(p.geometry.Bound())
	}
	return bound, ok
}
