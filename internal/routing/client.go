// Package routing is the HTTP client of the multi-criteria routing backend
package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jengzang/route-simplex/internal/models"
)

// ErrRequestFailed is returned for transport errors and non-2xx answers
var ErrRequestFailed = errors.New("routing request failed")

// Client talks to the routing backend
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for the backend at baseURL
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Route fetches the best route for one weighting
func (c *Client) Route(ctx context.Context, q models.RouteQuery) (*models.RouteResult, error) {
	params := url.Values{}
	params.Set("s", q.Source)
	params.Set("t", q.Target)
	params.Set("length", strconv.Itoa(q.Length))
	params.Set("height", strconv.Itoa(q.Height))
	params.Set("unsuitability", strconv.Itoa(q.Unsuitability))

	var result models.RouteResult
	if err := c.getJSON(ctx, "/route", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Alternatives fetches two alternative routes of the given kind
func (c *Client) Alternatives(ctx context.Context, kind, source, target string) (*models.AlternativeRoutes, error) {
	params := url.Values{}
	params.Set("s", source)
	params.Set("t", target)

	var result models.AlternativeRoutes
	if err := c.getJSON(ctx, "/alternative/"+url.PathEscape(kind), params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// TriangulationParams builds the query of a triangulation request.
// maxLevel is only sent when positive and splitByLevel only when set.
func TriangulationParams(q models.TriangulationQuery) url.Values {
	params := url.Values{}
	params.Set("s", q.Source)
	params.Set("t", q.Target)
	params.Set("maxSplits", strconv.Itoa(q.MaxSplits))
	if q.MaxLevel > 0 {
		params.Set("maxLevel", strconv.Itoa(q.MaxLevel))
	}
	if q.SplitByLevel {
		params.Set("splitByLevel", "true")
	}
	return params
}

// Triangulation requests an adaptive triangulation of the weight simplex
func (c *Client) Triangulation(ctx context.Context, q models.TriangulationQuery) (*models.Triangulation, error) {
	var result models.Triangulation
	if err := c.getJSON(ctx, "/scaled", TriangulationParams(q), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// NodeAt returns the id of the graph node closest to a map position
func (c *Client) NodeAt(ctx context.Context, pos models.LatLng) (string, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(pos.Lat, 'f', -1, 64))
	params.Set("lng", strconv.FormatFloat(pos.Lng, 'f', -1, 64))

	body, err := c.get(ctx, "/node_at", params)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}

// MapCoords returns the area covered by the routing graph
func (c *Client) MapCoords(ctx context.Context) (models.MapBounds, error) {
	var bounds models.MapBounds
	if err := c.getJSON(ctx, "/map_coords", nil, &bounds); err != nil {
		return bounds, err
	}
	return bounds, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, v interface{}) error {
	body, err := c.get(ctx, path, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: failed to parse %s response: %v", ErrRequestFailed, path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s response: %v", ErrRequestFailed, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrRequestFailed, path, resp.StatusCode)
	}
	return body, nil
}
