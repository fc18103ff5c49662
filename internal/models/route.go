package models

import (
	"github.com/paulmach/orb/geojson"
)

// Cost is the three-objective cost of a route as reported by the backend
type Cost struct {
	Length        float64 `json:"length"`        // meters
	Height        float64 `json:"height"`        // decimeters
	Unsuitability float64 `json:"unsuitability"` // unitless penalty
}

// RouteGeometry wraps the GeoJSON feature the backend returns for a path
type RouteGeometry struct {
	Type     string            `json:"type,omitempty"`
	Geometry *geojson.Geometry `json:"geometry"`
}

// RouteResult is a single computed route
type RouteResult struct {
	Cost
	Route RouteGeometry `json:"route"`
	Debug string        `json:"debug,omitempty"`
}

// RouteQuery asks the backend for the best route under one weighting.
// Weights are whole percentages.
type RouteQuery struct {
	Source        string `json:"s"`
	Target        string `json:"t"`
	Length        int    `json:"length"`
	Height        int    `json:"height"`
	Unsuitability int    `json:"unsuitability"`
}

// AlternativeRoutes is the response of the alternative-route endpoint.
// Configs are "w0/w1/w2" on the 0-100 scale.
type AlternativeRoutes struct {
	Config1 string      `json:"config1"`
	Route1  RouteResult `json:"route1"`
	Config2 string      `json:"config2"`
	Route2  RouteResult `json:"route2"`
	Shared  float64     `json:"shared,omitempty"`  // percent of shared edges
	Frechet float64     `json:"frechet,omitempty"` // Fréchet distance between the routes
	Debug   string      `json:"debug,omitempty"`
}

// NodeSelection identifies which endpoint a map click sets
type NodeSelection string

// NodeSelection values
const (
	NodeStart NodeSelection = "start"
	NodeEnd   NodeSelection = "end"
)

// LatLng is a map position
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// MapBounds is the area covered by the routing graph, as [[south, west], [north, east]]
type MapBounds [2][2]float64
