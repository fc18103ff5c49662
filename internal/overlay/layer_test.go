package overlay

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"
)

func TestLayerAddRemove(t *testing.T) {
	l := NewLayer()
	a := l.Add(orb.LineString{{9.1, 48.7}, {9.2, 48.8}}, Style{Color: "#3333FF", Weight: 5, Opacity: 0.65})
	b := l.Add(orb.LineString{{9.0, 48.6}, {9.1, 48.7}}, Style{Color: "#33FF00", Weight: 5, Opacity: 0.65})
	if l.Len() != 2 {
		t.Fatalf("expected 2 paths, got %d", l.Len())
	}

	a.Remove()
	a.Remove()
	if l.Len() != 1 || l.Paths()[0] != b {
		t.Errorf("expected only the second path to remain")
	}

	l.Clear()
	if l.Len() != 0 {
		t.Errorf("expected empty layer after Clear")
	}
	b.Remove()
}

func TestLayerBound(t *testing.T) {
	l := NewLayer()
	if _, ok := l.Bound(); ok {
		t.Error("empty layer has no bound")
	}
	l.Add(orb.LineString{{9.1, 48.7}, {9.2, 48.8}}, Style{})
	l.Add(nil, Style{})
	l.Add(orb.LineString{{9.0, 48.75}, {9.15, 48.9}}, Style{})

	b, ok := l.Bound()
	if !ok {
		t.Fatal("expected a bound")
	}
	want := orb.Bound{Min: orb.Point{9.0, 48.7}, Max: orb.Point{9.2, 48.9}}
	if b != want {
		t.Errorf("bound = %v, want %v", b, want)
	}
}

func TestFeatureCollectionCarriesStyle(t *testing.T) {
	l := NewLayer()
	p := l.Add(orb.LineString{{9.1, 48.7}, {9.2, 48.8}}, Style{Color: "#543005", Weight: 4, Opacity: 1})
	l.Add(nil, Style{Color: "#000000"})
	p.SetWeight(10)

	fc := l.FeatureCollection()
	if len(fc.Features) != 1 {
		t.Fatalf("expected 1 feature, got %d", len(fc.Features))
	}
	if fc.Features[0].Properties["weight"] != 10.0 {
		t.Errorf("weight property = %v", fc.Features[0].Properties["weight"])
	}

	data, err := json.Marshal(fc)
	if err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type string `json:"type"`
			} `json:"geometry"`
			Properties map[string]interface{} `json:"properties"`
		} `json:"features"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Type != "FeatureCollection" || decoded.Features[0].Geometry.Type != "LineString" {
		t.Errorf("unexpected GeoJSON %s", data)
	}
	if decoded.Features[0].Properties["color"] != "#543005" {
		t.Errorf("unexpected colour %v", decoded.Features[0].Properties["color"])
	}
}
