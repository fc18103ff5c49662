package models

// TriangulationQuery configures an adaptive triangulation of the weight simplex
type TriangulationQuery struct {
	Source       string `json:"s"`
	Target       string `json:"t"`
	MaxSplits    int    `json:"max_splits"`
	MaxLevel     int    `json:"max_level,omitempty"`      // sent only when > 0
	SplitByLevel bool   `json:"split_by_level,omitempty"` // sent only when true
}

// TriangulationPoint is one sampled weighting and the route found for it
type TriangulationPoint struct {
	Conf  string      `json:"conf"` // "w0/w1/w2" as fractions
	Route RouteResult `json:"route"`
}

// TriangulationTriangle references three points by index
type TriangulationTriangle struct {
	Point1       int  `json:"point1"`
	Point2       int  `json:"point2"`
	Point3       int  `json:"point3"`
	NoChildren   bool `json:"noChildren"`
	NoMoreRoutes bool `json:"noMoreRoutes"`
}

// Triangulation is the flat encoding of the triangulation tree
type Triangulation struct {
	Points    []TriangulationPoint    `json:"points"`
	Triangles []TriangulationTriangle `json:"triangles"`
	Debug     string                  `json:"debug,omitempty"`
}
