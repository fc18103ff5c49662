package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang/geo/r2"

	"github.com/jengzang/route-simplex/internal/middleware"
	"github.com/jengzang/route-simplex/internal/models"
	"github.com/jengzang/route-simplex/internal/routing"
	"github.com/jengzang/route-simplex/internal/service"
	"github.com/jengzang/route-simplex/internal/triangulation"
	"github.com/jengzang/route-simplex/pkg/response"
)

// ExplorerHandler handles HTTP requests of the weight selector
type ExplorerHandler struct {
	service *service.ExplorerService
	tokens  *middleware.TokenIssuer
}

// NewExplorerHandler creates a new explorer handler
func NewExplorerHandler(service *service.ExplorerService, tokens *middleware.TokenIssuer) *ExplorerHandler {
	return &ExplorerHandler{service: service, tokens: tokens}
}

// PointerRequest is a pointer event on the selector canvas
type PointerRequest struct {
	Event string  `json:"event" binding:"required,oneof=down move up"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// TriangulationRequest configures an adaptive triangulation
type TriangulationRequest struct {
	MaxSplits    int  `json:"max_splits" binding:"min=0"`
	MaxLevel     int  `json:"max_level"`
	SplitByLevel bool `json:"split_by_level"`
}

// CreateSession handles POST /api/v1/sessions
func (h *ExplorerHandler) CreateSession(c *gin.Context) {
	sess := h.service.CreateSession()
	token, err := h.tokens.Issue(sess.ID)
	if err != nil {
		h.service.DeleteSession(sess.ID)
		response.InternalError(c, "Failed to issue session token")
		return
	}
	response.Success(c, gin.H{
		"session_id": sess.ID,
		"token":      token,
	})
}

// DeleteSession handles DELETE /api/v1/sessions
func (h *ExplorerHandler) DeleteSession(c *gin.Context) {
	if err := h.service.DeleteSession(middleware.SessionID(c)); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, nil)
}

// Pointer handles POST /api/v1/pointer
func (h *ExplorerHandler) Pointer(c *gin.Context) {
	var req PointerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid pointer event: "+err.Error())
		return
	}

	state, err := h.service.Pointer(middleware.SessionID(c), req.Event, r2.Point{X: req.X, Y: req.Y})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, state)
}

// GetState handles GET /api/v1/state
func (h *ExplorerHandler) GetState(c *gin.Context) {
	state, err := h.service.State(middleware.SessionID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, state)
}

// SetNode handles PUT /api/v1/nodes/:which
func (h *ExplorerHandler) SetNode(c *gin.Context) {
	which := models.NodeSelection(c.Param("which"))
	if which != models.NodeStart && which != models.NodeEnd {
		response.BadRequest(c, "Node must be start or end")
		return
	}

	var pos models.LatLng
	if err := c.ShouldBindJSON(&pos); err != nil {
		response.BadRequest(c, "Invalid position: "+err.Error())
		return
	}

	node, err := h.service.SetNode(c.Request.Context(), middleware.SessionID(c), which, pos)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, gin.H{"node": node})
}

// RequestAlternatives handles POST /api/v1/alternatives/:kind
func (h *ExplorerHandler) RequestAlternatives(c *gin.Context) {
	kind := c.Param("kind")
	if err := h.service.RequestAlternatives(middleware.SessionID(c), kind); err != nil {
		h.fail(c, err)
		return
	}
	response.Accepted(c, gin.H{"kind": kind})
}

// RequestTriangulation handles POST /api/v1/triangulation
func (h *ExplorerHandler) RequestTriangulation(c *gin.Context) {
	var req TriangulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid triangulation request: "+err.Error())
		return
	}

	q := models.TriangulationQuery{
		MaxSplits:    req.MaxSplits,
		MaxLevel:     req.MaxLevel,
		SplitByLevel: req.SplitByLevel,
	}
	if err := h.service.RequestTriangulation(middleware.SessionID(c), q); err != nil {
		h.fail(c, err)
		return
	}
	response.Accepted(c, nil)
}

// GetCanvas handles GET /api/v1/canvas/:mode
func (h *ExplorerHandler) GetCanvas(c *gin.Context) {
	mode, err := triangulation.ParseMode(c.Param("mode"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	data, err := h.service.Canvas(middleware.SessionID(c), mode)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", data)
}

// GetOverlay handles GET /api/v1/overlay
func (h *ExplorerHandler) GetOverlay(c *gin.Context) {
	fc, err := h.service.Overlay(middleware.SessionID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	data, err := fc.MarshalJSON()
	if err != nil {
		response.InternalError(c, "Failed to encode overlay")
		return
	}
	c.Data(http.StatusOK, "application/geo+json", data)
}

// GetDebugLog handles GET /api/v1/debuglog
func (h *ExplorerHandler) GetDebugLog(c *gin.Context) {
	debugLog, err := h.service.DebugLog(middleware.SessionID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, debugLog)
}

// ToggleDebugLog handles POST /api/v1/debuglog/toggle
func (h *ExplorerHandler) ToggleDebugLog(c *gin.Context) {
	visible, err := h.service.ToggleDebugLog(middleware.SessionID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, gin.H{"visible": visible})
}

// GetMapBounds handles GET /api/v1/map/bounds
func (h *ExplorerHandler) GetMapBounds(c *gin.Context) {
	bounds, err := h.service.MapBounds(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, bounds)
}

func (h *ExplorerHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, "Session not found")
	case errors.Is(err, service.ErrUnknownEvent):
		response.BadRequest(c, err.Error())
	case errors.Is(err, routing.ErrRequestFailed):
		response.BadGateway(c, "Routing backend request failed")
	default:
		c.Error(err)
		response.InternalError(c, "Internal error")
	}
}
