// Package interaction implements the pointer state machine of the weight
// selector and keeps the current selection of one explorer session.
//
// A Controller is not safe for concurrent use; callers serialise pointer
// events and response application.
package interaction

import (
	"fmt"
	"math"
	"strconv"

	"github.com/golang/geo/r2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/jengzang/route-simplex/internal/catalog"
	"github.com/jengzang/route-simplex/internal/colorize"
	"github.com/jengzang/route-simplex/internal/models"
	"github.com/jengzang/route-simplex/internal/overlay"
	"github.com/jengzang/route-simplex/internal/render"
	"github.com/jengzang/route-simplex/internal/spatial"
	"github.com/jengzang/route-simplex/internal/triangulation"
)

// Unknown is shown in the cost labels when a request failed
const Unknown = "Unknown"

// Route styles on the map
var (
	SingleRouteStyle = overlay.Style{Color: "#3333FF", Weight: 5, Opacity: 0.65}
	SecondAltStyle   = overlay.Style{Color: "#33FF00", Weight: 5, Opacity: 0.65}
)

// State of the pointer
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Requester issues route requests for the current selection. Calls must
// not block; the response is applied later through ApplyRoute.
type Requester interface {
	RequestRoute(q models.RouteQuery)
}

// Labels are the texts of the selection panel
type Labels struct {
	LengthPercent        string `json:"length_percent"`
	HeightPercent        string `json:"height_percent"`
	UnsuitabilityPercent string `json:"unsuitability_percent"`
	RouteLength          string `json:"route_length"`
	RouteHeight          string `json:"route_height"`
	RouteUnsuitability   string `json:"route_unsuitability"`
}

// Controller owns the selection, the route catalog and the canvas scenes
// of one session
type Controller struct {
	simplex   *spatial.Simplex
	layer     *overlay.Layer
	catalog   *catalog.Catalog
	threshold float64
	requester Requester

	state    State
	cursor   r2.Point
	weights  spatial.Weights
	labels   Labels
	source   string
	target   string
	tree     *triangulation.Tree
	scenes   [2]render.Scene
	revision uint64
}

// New creates a controller with the cursor at the centre of the simplex
func New(simplex *spatial.Simplex, threshold float64, requester Requester) *Controller {
	layer := overlay.NewLayer()
	c := &Controller{
		simplex:   simplex,
		layer:     layer,
		catalog:   catalog.New(layer),
		threshold: threshold,
		requester: requester,
	}
	c.moveCursor(simplex.Center())
	return c
}

// PointerDown starts a drag at p
func (c *Controller) PointerDown(p r2.Point) {
	c.state = Dragging
	c.drag(p)
}

// PointerMove drags the cursor, or hit tests the catalog when idle
func (c *Controller) PointerMove(p r2.Point) {
	if c.state == Dragging {
		c.drag(p)
		return
	}
	c.hover(p)
}

// PointerUp ends a drag and requests the route for the new selection.
// A release without a preceding press is ignored.
func (c *Controller) PointerUp(p r2.Point) {
	if c.state != Dragging {
		return
	}
	c.state = Idle
	c.RequestRoute()
}

func (c *Controller) drag(p r2.Point) {
	c.moveCursor(p)
}

func (c *Controller) moveCursor(p r2.Point) {
	c.cursor = p
	c.weights = c.simplex.Inverse(p)
	pct := c.weights.Percentages()
	c.labels.LengthPercent = strconv.Itoa(pct[spatial.Length])
	c.labels.HeightPercent = strconv.Itoa(pct[spatial.Height])
	c.labels.UnsuitabilityPercent = strconv.Itoa(pct[spatial.Unsuitability])

	// redrawing the cursor wipes whatever tree was shown
	dot := []render.Dot{{Point: p, Color: colorize.Black}}
	c.scenes[triangulation.Diversity] = render.Scene{Dots: dot}
	c.scenes[triangulation.Gradient] = render.Scene{Dots: append([]render.Dot(nil), dot...)}
	c.revision++
}

func (c *Controller) hover(p r2.Point) {
	if c.catalog.Len() == 0 {
		return
	}
	e, ok := c.catalog.HitTest(p, c.threshold)
	if !ok {
		return
	}
	c.weights = e.Weights
	c.labels.LengthPercent = formatNumber(e.Weights[spatial.Length] * 100)
	c.labels.HeightPercent = formatNumber(e.Weights[spatial.Height] * 100)
	c.labels.UnsuitabilityPercent = formatNumber(e.Weights[spatial.Unsuitability] * 100)
	c.setCost(e.Cost)
	c.revision++
}

// Query returns the route request for the displayed selection
func (c *Controller) Query() models.RouteQuery {
	pct := c.weights.Percentages()
	return models.RouteQuery{
		Source:        c.source,
		Target:        c.target,
		Length:        pct[spatial.Length],
		Height:        pct[spatial.Height],
		Unsuitability: pct[spatial.Unsuitability],
	}
}

// RequestRoute hands the current selection to the requester
func (c *Controller) RequestRoute() {
	c.catalog.Reset()
	if c.requester != nil {
		c.requester.RequestRoute(c.Query())
	}
}

// SetNode stores a start or end node and requests the route again
func (c *Controller) SetNode(which models.NodeSelection, id string) error {
	switch which {
	case models.NodeStart:
		c.source = id
	case models.NodeEnd:
		c.target = id
	default:
		return fmt.Errorf("unknown node selection %q", which)
	}
	c.RequestRoute()
	return nil
}

// Nodes returns the start and end node ids
func (c *Controller) Nodes() (source, target string) {
	return c.source, c.target
}

// ApplyRoute shows the result of a single route request
func (c *Controller) ApplyRoute(q models.RouteQuery, res *models.RouteResult, err error) {
	if err != nil {
		c.setUnknown()
		return
	}
	w := spatial.Weights{float64(q.Length), float64(q.Height), float64(q.Unsuitability)}.Scale(0.01)
	c.catalog.Reset()
	c.catalog.Add(w, c.simplex.Forward(w), res.Cost, geometryOf(*res), SingleRouteStyle)
	c.setCost(res.Cost)
}

// BeginAlternatives clears the map before an alternative route request
func (c *Controller) BeginAlternatives() {
	c.catalog.Reset()
}

// ApplyAlternatives shows two alternative routes and marks their
// weightings on the diversity canvas
func (c *Controller) ApplyAlternatives(res *models.AlternativeRoutes, err error) error {
	if err != nil {
		c.setUnknown()
		return nil
	}
	w1, err := spatial.ParsePercentWeights(res.Config1)
	if err != nil {
		return fmt.Errorf("failed to parse config1: %w", err)
	}
	w2, err := spatial.ParsePercentWeights(res.Config2)
	if err != nil {
		return fmt.Errorf("failed to parse config2: %w", err)
	}

	p1, p2 := c.simplex.Forward(w1), c.simplex.Forward(w2)
	c.scenes[triangulation.Diversity] = render.Scene{Dots: []render.Dot{
		{Point: p1, Color: colorize.Blue},
		{Point: p2, Color: colorize.Green},
	}}
	c.tree = nil
	c.revision++

	style1 := SingleRouteStyle
	style1.Color = colorize.Gradient(w1)
	c.catalog.Reset()
	c.catalog.Add(w1, p1, res.Route1.Cost, geometryOf(res.Route1), style1)
	c.catalog.Add(w2, p2, res.Route2.Cost, geometryOf(res.Route2), SecondAltStyle)
	return nil
}

// BeginTriangulation clears the map before a triangulation request
func (c *Controller) BeginTriangulation() {
	c.catalog.Reset()
}

// ApplyTriangulation rebuilds the triangulation tree, draws it on both
// canvases and adds one catalog entry per sample point. A malformed
// triangulation is rejected as a whole and nothing is drawn.
func (c *Controller) ApplyTriangulation(data *models.Triangulation, err error) error {
	if err != nil {
		c.setUnknown()
		return nil
	}
	tree, err := triangulation.Build(data, c.simplex)
	if err != nil {
		return err
	}

	c.catalog.Reset()
	c.tree = tree
	diversity := render.Scene{Tree: tree, Dots: make([]render.Dot, 0, len(tree.Points))}
	gradient := render.Scene{Tree: tree, Dots: make([]render.Dot, 0, len(tree.Points))}
	for i, p := range tree.Points {
		diversity.Dots = append(diversity.Dots, render.Dot{Point: p.Screen, Color: colorize.CategoricalRGBA(i)})
		gradient.Dots = append(gradient.Dots, render.Dot{Point: p.Screen, Color: colorize.GradientRGBA(p.Weights)})

		style := overlay.Style{Color: colorize.Categorical(i), Weight: catalog.RestingWeight, Opacity: 1}
		c.catalog.Add(p.Weights, p.Screen, p.Route.Cost, geometryOf(p.Route), style)
	}
	c.scenes[triangulation.Diversity] = diversity
	c.scenes[triangulation.Gradient] = gradient
	c.revision++
	return nil
}

func (c *Controller) setCost(cost models.Cost) {
	c.labels.RouteLength = formatNumber(math.Round(cost.Length/1000) / 10)
	c.labels.RouteHeight = formatNumber(cost.Height / 10)
	c.labels.RouteUnsuitability = formatNumber(cost.Unsuitability)
}

func (c *Controller) setUnknown() {
	c.labels.RouteLength = Unknown
	c.labels.RouteHeight = Unknown
	c.labels.RouteUnsuitability = Unknown
}

// State returns the pointer state
func (c *Controller) State() State { return c.state }

// Weights returns the current selection
func (c *Controller) Weights() spatial.Weights { return c.weights }

// Cursor returns the last dragged position
func (c *Controller) Cursor() r2.Point { return c.cursor }

// Labels returns the texts of the selection panel
func (c *Controller) Labels() Labels { return c.labels }

// Catalog returns the routes available for hit testing
func (c *Controller) Catalog() *catalog.Catalog { return c.catalog }

// Tree returns the last triangulation, or nil
func (c *Controller) Tree() *triangulation.Tree { return c.tree }

// Scene returns what the canvas of the given mode shows
func (c *Controller) Scene(mode triangulation.Mode) render.Scene {
	return c.scenes[mode]
}

// Revision changes every time the selection or a canvas changes
func (c *Controller) Revision() uint64 { return c.revision }

// Overlay exports the route paths on the map
func (c *Controller) Overlay() *geojson.FeatureCollection {
	return c.layer.FeatureCollection()
}

// OverlayBound returns the bounding box of the routes on the map
func (c *Controller) OverlayBound() (orb.Bound, bool) {
	return c.layer.Bound()
}

// Inside reports whether the cursor lies inside the simplex
func (c *Controller) Inside() bool {
	return c.simplex.Contains(c.cursor)
}

func geometryOf(r models.RouteResult) orb.Geometry {
	if r.Route.Geometry == nil {
		return nil
	}
	return r.Route.Geometry.Coordinates
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
