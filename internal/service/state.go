package service

import (
	"github.com/jengzang/route-simplex/internal/interaction"
	"github.com/jengzang/route-simplex/internal/spatial"
	"github.com/jengzang/route-simplex/internal/stats"
	"github.com/jengzang/route-simplex/internal/triangulation"
)

// StateView is what a client needs to draw the selection panel
type StateView struct {
	SessionID   string             `json:"session_id"`
	State       string             `json:"state"`
	Weights     spatial.Weights    `json:"weights"`
	Labels      interaction.Labels `json:"labels"`
	Cursor      [2]float64         `json:"cursor"`
	Inside      bool               `json:"inside"`
	Source      string             `json:"source"`
	Target      string             `json:"target"`
	CatalogSize int                `json:"catalog_size"`
	Tree        *TreeSummary       `json:"tree,omitempty"`
	Bounds      *[4]float64        `json:"overlay_bounds,omitempty"` // [minLng, minLat, maxLng, maxLat]
	Revision    uint64             `json:"revision"`
}

// TreeSummary describes the last triangulation
type TreeSummary struct {
	Points          int `json:"points"`
	Triangles       int `json:"triangles"`
	DiversityLeaves int `json:"diversity_leaves"`
	GradientLeaves  int `json:"gradient_leaves"`
	DistinctRoutes  int `json:"distinct_routes"`

	// RouteEntropy is 0 when one route dominates the samples and 1 when
	// every distinct route was found equally often
	RouteEntropy float64      `json:"route_entropy"`
	LengthKm     stats.Spread `json:"length_km"`
}

// Summarize describes a triangulation tree
func Summarize(tree *triangulation.Tree) *TreeSummary {
	if tree == nil {
		return nil
	}
	counts := tree.RouteCounts()
	lengths := make([]float64, len(tree.Points))
	for i, p := range tree.Points {
		lengths[i] = p.Route.Length / 1000
	}
	return &TreeSummary{
		Points:          len(tree.Points),
		Triangles:       len(tree.Triangles),
		DiversityLeaves: tree.Leaves(triangulation.Diversity),
		GradientLeaves:  tree.Leaves(triangulation.Gradient),
		DistinctRoutes:  len(counts),
		RouteEntropy:    stats.NormalizedEntropy(counts),
		LengthKm:        stats.FiveNumberSummary(lengths),
	}
}

// view must be called with mu held
func (sess *Session) view() *StateView {
	c := sess.ctrl
	source, target := c.Nodes()
	cursor := c.Cursor()
	v := &StateView{
		SessionID:   sess.ID,
		State:       c.State().String(),
		Weights:     c.Weights(),
		Labels:      c.Labels(),
		Cursor:      [2]float64{cursor.X, cursor.Y},
		Inside:      c.Inside(),
		Source:      source,
		Target:      target,
		CatalogSize: c.Catalog().Len(),
		Tree:        Summarize(c.Tree()),
		Revision:    c.Revision(),
	}
	if b, ok := c.OverlayBound(); ok {
		v.Bounds = &[4]float64{b.Min.Lon(), b.Min.Lat(), b.Max.Lon(), b.Max.Lat()}
	}
	return v
}
