package catalog

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/paulmach/orb"

	"github.com/jengzang/route-simplex/internal/models"
	"github.com/jengzang/route-simplex/internal/overlay"
	"github.com/jengzang/route-simplex/internal/spatial"
)

var line = orb.LineString{{9.1, 48.7}, {9.2, 48.8}}

func newCatalog() (*Catalog, *overlay.Layer) {
	layer := overlay.NewLayer()
	return New(layer), layer
}

func TestHitTestEmpty(t *testing.T) {
	c, _ := newCatalog()
	if _, ok := c.HitTest(r2.Point{X: 10, Y: 10}, DefaultHitThreshold); ok {
		t.Error("empty catalog cannot produce a hit")
	}
}

func TestHitTestTieGoesToFirst(t *testing.T) {
	c, _ := newCatalog()
	first := c.Add(spatial.Weights{1, 0, 0}, r2.Point{X: 97, Y: 100}, models.Cost{Length: 1}, line, overlay.Style{Weight: 4})
	c.Add(spatial.Weights{0, 1, 0}, r2.Point{X: 103, Y: 100}, models.Cost{Length: 2}, line, overlay.Style{Weight: 4})

	got, ok := c.HitTest(r2.Point{X: 100, Y: 100}, DefaultHitThreshold)
	if !ok {
		t.Fatal("expected a hit")
	}
	if got.Cost != first.Cost || got.Path != first.Path {
		t.Errorf("expected the first inserted entry, got %+v", got)
	}
}

func TestHitTestThresholdBoundary(t *testing.T) {
	c, _ := newCatalog()
	c.Add(spatial.Weights{}, r2.Point{X: 3, Y: 4}, models.Cost{}, line, overlay.Style{})
	if _, ok := c.HitTest(r2.Point{}, 5); !ok {
		t.Error("distance exactly 5 should match")
	}

	c.Reset()
	c.Add(spatial.Weights{}, r2.Point{X: 5.0001, Y: 0}, models.Cost{}, line, overlay.Style{})
	if _, ok := c.HitTest(r2.Point{}, 5); ok {
		t.Error("distance 5.0001 should not match")
	}
}

func TestHitTestPicksClosest(t *testing.T) {
	c, _ := newCatalog()
	c.Add(spatial.Weights{1, 0, 0}, r2.Point{X: 10, Y: 10}, models.Cost{Height: 1}, line, overlay.Style{})
	c.Add(spatial.Weights{0, 1, 0}, r2.Point{X: 12, Y: 10}, models.Cost{Height: 2}, line, overlay.Style{})
	c.Add(spatial.Weights{0, 0, 1}, r2.Point{X: 14, Y: 10}, models.Cost{Height: 3}, line, overlay.Style{})

	got, ok := c.HitTest(r2.Point{X: 13.9, Y: 10}, DefaultHitThreshold)
	if !ok || got.Cost.Height != 3 {
		t.Errorf("expected the third entry, got %+v (hit=%v)", got, ok)
	}
}

func TestHitTestStrokeWeights(t *testing.T) {
	c, _ := newCatalog()
	a := c.Add(spatial.Weights{}, r2.Point{X: 0, Y: 0}, models.Cost{}, line, overlay.Style{Weight: 5})
	b := c.Add(spatial.Weights{}, r2.Point{X: 50, Y: 0}, models.Cost{}, line, overlay.Style{Weight: 5})

	if _, ok := c.HitTest(r2.Point{X: 200, Y: 200}, DefaultHitThreshold); ok {
		t.Fatal("unexpected hit")
	}
	if a.Path.Style().Weight != 5 || b.Path.Style().Weight != 5 {
		t.Error("a miss must not restyle paths")
	}

	if _, ok := c.HitTest(r2.Point{X: 49, Y: 1}, DefaultHitThreshold); !ok {
		t.Fatal("expected a hit")
	}
	if a.Path.Style().Weight != RestingWeight {
		t.Errorf("other path weight = %v, want %v", a.Path.Style().Weight, RestingWeight)
	}
	if b.Path.Style().Weight != EmphasisWeight {
		t.Errorf("hit path weight = %v, want %v", b.Path.Style().Weight, EmphasisWeight)
	}

	if _, ok := c.HitTest(r2.Point{X: 1, Y: 1}, DefaultHitThreshold); !ok {
		t.Fatal("expected a hit")
	}
	if a.Path.Style().Weight != EmphasisWeight || b.Path.Style().Weight != RestingWeight {
		t.Error("emphasis should move to the newly hit path")
	}
}

func TestResetRemovesPaths(t *testing.T) {
	c, layer := newCatalog()
	c.Add(spatial.Weights{}, r2.Point{}, models.Cost{}, line, overlay.Style{})
	c.Add(spatial.Weights{}, r2.Point{}, models.Cost{}, line, overlay.Style{})
	if layer.Len() != 2 {
		t.Fatalf("expected 2 paths, got %d", layer.Len())
	}
	c.Reset()
	if c.Len() != 0 || layer.Len() != 0 {
		t.Errorf("reset should empty catalog and layer, got %d entries and %d paths", c.Len(), layer.Len())
	}
}

func TestAddWithoutGeometry(t *testing.T) {
	c, layer := newCatalog()
	e := c.Add(spatial.Weights{1, 0, 0}, r2.Point{X: 10, Y: 10}, models.Cost{}, nil, overlay.Style{Weight: 4})
	if e.Path != nil || layer.Len() != 0 {
		t.Errorf("entry without geometry drew a path (layer has %d)", layer.Len())
	}
	if c.Len() != 1 {
		t.Fatalf("entry should still be listed, catalog has %d", c.Len())
	}
	if _, ok := c.HitTest(r2.Point{X: 10, Y: 10}, DefaultHitThreshold); !ok {
		t.Error("entry without geometry should still be hit")
	}
	c.Reset()
	if c.Len() != 0 {
		t.Error("reset should clear the catalog")
	}
}
