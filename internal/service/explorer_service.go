package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang/geo/r2"
	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"

	"github.com/jengzang/route-simplex/internal/config"
	"github.com/jengzang/route-simplex/internal/interaction"
	"github.com/jengzang/route-simplex/internal/models"
	"github.com/jengzang/route-simplex/internal/render"
	"github.com/jengzang/route-simplex/internal/repository"
	"github.com/jengzang/route-simplex/internal/spatial"
	"github.com/jengzang/route-simplex/internal/triangulation"
)

// Errors returned by ExplorerService
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnknownEvent    = errors.New("unknown pointer event")
)

// Pointer events
const (
	EventDown = "down"
	EventMove = "move"
	EventUp   = "up"
)

// request kinds, also used as debug log request types
const (
	kindRoute         = "single route"
	kindTriangulation = "triangulation"
)

// Backend is the routing backend as seen by the explorer
type Backend interface {
	Route(ctx context.Context, q models.RouteQuery) (*models.RouteResult, error)
	Alternatives(ctx context.Context, kind, source, target string) (*models.AlternativeRoutes, error)
	Triangulation(ctx context.Context, q models.TriangulationQuery) (*models.Triangulation, error)
	NodeAt(ctx context.Context, pos models.LatLng) (string, error)
	MapCoords(ctx context.Context) (models.MapBounds, error)
}

// ExplorerService handles explorer sessions
type ExplorerService struct {
	backend      Backend
	debugLog     *repository.DebugLogRepository
	simplex      *spatial.Simplex
	renderer     *render.Renderer
	cache        *render.PNGCache
	threshold    float64
	timeout      time.Duration
	discardStale bool
	idleTTL      time.Duration
	now          func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
	inflight sync.WaitGroup
}

// NewExplorerService creates a new explorer service
func NewExplorerService(backend Backend, debugLog *repository.DebugLogRepository, cfg *config.Config) *ExplorerService {
	simplex := spatial.NewSimplex(cfg.Corners())
	return &ExplorerService{
		backend:      backend,
		debugLog:     debugLog,
		simplex:      simplex,
		renderer:     render.NewRenderer(simplex, cfg.Explorer.CanvasWidth, cfg.Explorer.CanvasHeight),
		cache:        render.NewPNGCache(cfg.Explorer.RenderCacheSize),
		threshold:    cfg.Explorer.HitThreshold,
		timeout:      cfg.RequestTimeout(),
		discardStale: cfg.Explorer.DiscardStale,
		idleTTL:      cfg.TokenTTL(),
		now:          time.Now,
		sessions:     make(map[string]*Session),
	}
}

// Session is one explorer: a controller plus the bookkeeping of its
// in-flight requests. All controller access goes through mu.
type Session struct {
	ID string

	svc         *ExplorerService
	mu          sync.Mutex
	ctrl        *interaction.Controller
	generations map[string]uint64
	lastSeen    atomic.Int64 // unix nanoseconds
}

func (sess *Session) touch(t time.Time) {
	sess.lastSeen.Store(t.UnixNano())
}

func (sess *Session) idleSince() time.Time {
	return time.Unix(0, sess.lastSeen.Load())
}

// CreateSession starts a new session with the cursor at the centre
func (s *ExplorerService) CreateSession() *Session {
	sess := &Session{
		ID:          uuid.NewString(),
		svc:         s,
		generations: make(map[string]uint64),
	}
	sess.ctrl = interaction.New(s.simplex, s.threshold, sess)
	sess.touch(s.now())

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	log.Printf("[Explorer] session %s created", sess.ID)
	return sess
}

// GetSession looks up a session and marks it as used
func (s *ExplorerService) GetSession(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	sess.touch(s.now())
	return sess, nil
}

// DeleteSession forgets a session and its debug log
func (s *ExplorerService) DeleteSession(id string) error {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s.debugLog.DeleteSession(id)
}

// SweepIdle drops every session that has not been used for the token
// lifetime, together with its debug log, and returns how many were dropped
func (s *ExplorerService) SweepIdle() int {
	if s.idleTTL <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.idleTTL)

	var idle []string
	s.mu.Lock()
	for id, sess := range s.sessions {
		if !sess.idleSince().After(cutoff) {
			delete(s.sessions, id)
			idle = append(idle, id)
		}
	}
	s.mu.Unlock()

	for _, id := range idle {
		if err := s.debugLog.DeleteSession(id); err != nil {
			log.Printf("[Explorer] session %s: %v", id, err)
		}
	}
	if len(idle) > 0 {
		log.Printf("[Explorer] dropped %d idle sessions", len(idle))
	}
	return len(idle)
}

// StartSweeper runs SweepIdle every interval until the returned stop
// function is called
func (s *ExplorerService) StartSweeper(interval time.Duration) (stop func()) {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.SweepIdle()
			case <-done:
				return
			}
		}
	}()
	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}

// SessionCount returns the number of live sessions
func (s *ExplorerService) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Wait blocks until every dispatched backend request has been applied
func (s *ExplorerService) Wait() {
	s.inflight.Wait()
}

// dispatch runs fn in the background. Requests are never cancelled.
func (s *ExplorerService) dispatch(fn func(ctx context.Context)) {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		fn(ctx)
	}()
}

// appendDebug stores a debug payload unless the session is gone. The read
// lock keeps DeleteSession from removing the session mid-write.
func (s *ExplorerService) appendDebug(sessionID, requestType, message string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return
	}
	if err := s.debugLog.Append(sessionID, requestType, message); err != nil {
		log.Printf("[Explorer] session %s: %v", sessionID, err)
	}
}

// RequestRoute implements interaction.Requester. It is called with mu held.
func (sess *Session) RequestRoute(q models.RouteQuery) {
	gen := sess.nextGeneration(kindRoute)
	sess.svc.dispatch(func(ctx context.Context) {
		res, err := sess.svc.backend.Route(ctx, q)
		if err != nil {
			log.Printf("[Explorer] session %s: %s request failed: %v", sess.ID, kindRoute, err)
		} else {
			sess.svc.appendDebug(sess.ID, kindRoute, res.Debug)
		}
		sess.apply(kindRoute, gen, func(c *interaction.Controller) error {
			c.ApplyRoute(q, res, err)
			return nil
		})
	})
}

func (sess *Session) nextGeneration(kind string) uint64 {
	sess.generations[kind]++
	return sess.generations[kind]
}

// apply runs fn under the session lock. Responses of superseded
// requests are dropped when discard_stale is set.
func (sess *Session) apply(kind string, gen uint64, fn func(c *interaction.Controller) error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.svc.discardStale && sess.generations[kind] != gen {
		log.Printf("[Explorer] session %s: dropping stale %s response %d", sess.ID, kind, gen)
		return
	}
	if err := fn(sess.ctrl); err != nil {
		log.Printf("[Explorer] session %s: failed to apply %s response: %v", sess.ID, kind, err)
	}
}

// Pointer feeds a pointer event to the session
func (s *ExplorerService) Pointer(id, event string, p r2.Point) (*StateView, error) {
	sess, err := s.GetSession(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	switch event {
	case EventDown:
		sess.ctrl.PointerDown(p)
	case EventMove:
		sess.ctrl.PointerMove(p)
	case EventUp:
		sess.ctrl.PointerUp(p)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, event)
	}
	return sess.view(), nil
}

// State returns the current state of a session
func (s *ExplorerService) State(id string) (*StateView, error) {
	sess, err := s.GetSession(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.view(), nil
}

// SetNode resolves a map position to a graph node, stores it as start
// or end and requests the route for the current selection
func (s *ExplorerService) SetNode(ctx context.Context, id string, which models.NodeSelection, pos models.LatLng) (string, error) {
	sess, err := s.GetSession(id)
	if err != nil {
		return "", err
	}
	if which != models.NodeStart && which != models.NodeEnd {
		return "", fmt.Errorf("unknown node selection %q", which)
	}

	node, err := s.backend.NodeAt(ctx, pos)
	if err != nil {
		return "", err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.ctrl.SetNode(which, node); err != nil {
		return "", err
	}
	return node, nil
}

// RequestAlternatives asks the backend for two alternative routes
func (s *ExplorerService) RequestAlternatives(id, kind string) error {
	sess, err := s.GetSession(id)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.ctrl.BeginAlternatives()
	source, target := sess.ctrl.Nodes()
	reqKind := "alternative " + kind
	gen := sess.nextGeneration(reqKind)

	s.dispatch(func(ctx context.Context) {
		res, err := s.backend.Alternatives(ctx, kind, source, target)
		if err != nil {
			log.Printf("[Explorer] session %s: %s request failed: %v", sess.ID, reqKind, err)
		} else {
			s.appendDebug(sess.ID, kind, res.Debug)
		}
		sess.apply(reqKind, gen, func(c *interaction.Controller) error {
			return c.ApplyAlternatives(res, err)
		})
	})
	return nil
}

// RequestTriangulation asks the backend for an adaptive triangulation
// between the current start and end nodes
func (s *ExplorerService) RequestTriangulation(id string, q models.TriangulationQuery) error {
	sess, err := s.GetSession(id)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.ctrl.BeginTriangulation()
	q.Source, q.Target = sess.ctrl.Nodes()
	gen := sess.nextGeneration(kindTriangulation)

	s.dispatch(func(ctx context.Context) {
		res, err := s.backend.Triangulation(ctx, q)
		if err != nil {
			log.Printf("[Explorer] session %s: %s request failed: %v", sess.ID, kindTriangulation, err)
		} else {
			s.appendDebug(sess.ID, kindTriangulation, res.Debug)
		}
		sess.apply(kindTriangulation, gen, func(c *interaction.Controller) error {
			return c.ApplyTriangulation(res, err)
		})
	})
	return nil
}

// Canvas returns the PNG image of one selector canvas
func (s *ExplorerService) Canvas(id string, mode triangulation.Mode) ([]byte, error) {
	sess, err := s.GetSession(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	key := render.CacheKey{Session: id, Mode: mode, Revision: sess.ctrl.Revision()}
	scene := sess.ctrl.Scene(mode)
	sess.mu.Unlock()

	if data := s.cache.Get(key); data != nil {
		return data, nil
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(scene, mode).EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode canvas: %w", err)
	}
	data := buf.Bytes()
	s.cache.Add(key, data)
	return data, nil
}

// Overlay returns the routes shown on the map
func (s *ExplorerService) Overlay(id string) (*geojson.FeatureCollection, error) {
	sess, err := s.GetSession(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.ctrl.Overlay(), nil
}

// DebugLog returns the debug log of a session
func (s *ExplorerService) DebugLog(id string) (*models.DebugLog, error) {
	if _, err := s.GetSession(id); err != nil {
		return nil, err
	}
	entries, err := s.debugLog.List(id)
	if err != nil {
		return nil, err
	}
	visible, err := s.debugLog.Visible(id)
	if err != nil {
		return nil, err
	}

	var text bytes.Buffer
	for _, e := range entries {
		text.WriteString(e.Text())
	}
	return &models.DebugLog{Visible: visible, Entries: entries, Text: text.String()}, nil
}

// ToggleDebugLog shows or hides the debug log panel
func (s *ExplorerService) ToggleDebugLog(id string) (bool, error) {
	if _, err := s.GetSession(id); err != nil {
		return false, err
	}
	return s.debugLog.ToggleVisible(id)
}

// MapBounds returns the area covered by the routing graph
func (s *ExplorerService) MapBounds(ctx context.Context) (models.MapBounds, error) {
	return s.backend.MapCoords(ctx)
}
