package routing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/paulmach/orb"

	"github.com/jengzang/route-simplex/internal/models"
)

const routeJSON = `{
  "length": 12345.6,
  "height": 870,
  "unsuitability": 42,
  "route": {"type": "Feature", "geometry": {"type": "LineString", "coordinates": [[9.10, 48.74], [9.12, 48.75]]}},
  "debug": "dijkstra settled 1234 nodes\n"
}`

func newBackend(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 5*time.Second)
}

func TestRoute(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/route" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		want := map[string]string{"s": "17", "t": "99", "length": "0", "height": "0", "unsuitability": "100"}
		for k, v := range want {
			if q.Get(k) != v {
				t.Errorf("param %s = %q, want %q", k, q.Get(k), v)
			}
		}
		w.Write([]byte(routeJSON))
	})

	res, err := client.Route(context.Background(), models.RouteQuery{Source: "17", Target: "99", Unsuitability: 100})
	if err != nil {
		t.Fatal(err)
	}
	if res.Length != 12345.6 || res.Height != 870 || res.Unsuitability != 42 {
		t.Errorf("unexpected cost %+v", res.Cost)
	}
	if res.Debug == "" {
		t.Error("debug payload lost")
	}
	ls, ok := res.Route.Geometry.Coordinates.(orb.LineString)
	if !ok || len(ls) != 2 {
		t.Errorf("unexpected geometry %#v", res.Route.Geometry.Coordinates)
	}
}

func TestRouteFailure(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no path", http.StatusNotFound)
	})
	_, err := client.Route(context.Background(), models.RouteQuery{})
	if !errors.Is(err, ErrRequestFailed) {
		t.Errorf("expected ErrRequestFailed, got %v", err)
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	client := NewClient(srv.URL, time.Second)
	srv.Close()

	_, err := client.MapCoords(context.Background())
	if !errors.Is(err, ErrRequestFailed) {
		t.Errorf("expected ErrRequestFailed, got %v", err)
	}
}

func TestBadJSON(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{"))
	})
	_, err := client.Triangulation(context.Background(), models.TriangulationQuery{MaxSplits: 3})
	if !errors.Is(err, ErrRequestFailed) {
		t.Errorf("expected ErrRequestFailed, got %v", err)
	}
}

func TestTriangulationParams(t *testing.T) {
	tests := []struct {
		name  string
		query models.TriangulationQuery
		want  string
	}{
		{"splits only", models.TriangulationQuery{Source: "1", Target: "2", MaxSplits: 10}, "maxSplits=10&s=1&t=2"},
		{"zero level omitted", models.TriangulationQuery{Source: "1", Target: "2", MaxSplits: 10, MaxLevel: 0}, "maxSplits=10&s=1&t=2"},
		{"negative level omitted", models.TriangulationQuery{Source: "1", Target: "2", MaxSplits: 10, MaxLevel: -2}, "maxSplits=10&s=1&t=2"},
		{"level", models.TriangulationQuery{Source: "1", Target: "2", MaxSplits: 10, MaxLevel: 4}, "maxLevel=4&maxSplits=10&s=1&t=2"},
		{"split by level", models.TriangulationQuery{Source: "1", Target: "2", MaxSplits: 5, SplitByLevel: true}, "maxSplits=5&s=1&splitByLevel=true&t=2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TriangulationParams(tt.query).Encode(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAlternatives(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/alternative/frechet" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"config1": "100/0/0", "route1": {"length": 1}, "config2": "20/30/50", "route2": {"length": 2}, "shared": 37.5, "frechet": 120}`))
	})

	res, err := client.Alternatives(context.Background(), "frechet", "1", "2")
	if err != nil {
		t.Fatal(err)
	}
	if res.Config2 != "20/30/50" || res.Route2.Length != 2 || res.Shared != 37.5 {
		t.Errorf("unexpected response %+v", res)
	}
}

func TestNodeAtAndMapCoords(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/node_at":
			if r.URL.Query().Get("lat") != "48.7456643" || r.URL.Query().Get("lng") != "9.1070856" {
				t.Errorf("unexpected query %s", r.URL.RawQuery)
			}
			w.Write([]byte("4711\n"))
		case "/map_coords":
			w.Write([]byte(`[[48.6, 9.0], [48.9, 9.3]]`))
		default:
			http.NotFound(w, r)
		}
	})

	id, err := client.NodeAt(context.Background(), models.LatLng{Lat: 48.7456643, Lng: 9.1070856})
	if err != nil || id != "4711" {
		t.Errorf("NodeAt = %q, %v", id, err)
	}
	bounds, err := client.MapCoords(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if bounds[1][0] != 48.9 || bounds[0][1] != 9.0 {
		t.Errorf("unexpected bounds %v", bounds)
	}
}
