package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jengzang/workouts-backend-go/internal/service"
	"github.com/jengzang/workouts-backend-go/pkg/response"
)

// MapHandler handles HTTP requests for the map view
type MapHandler struct {
	session *service.Session
}

// NewMapHandler creates a new map handler
func NewMapHandler(session *service.Session) *MapHandler {
	return &MapHandler{
		session: session,
	}
}

// GetMap handles GET /api/v1/map
func (h *MapHandler) GetMap(c *gin.Context) {
	response.Success(c, h.session.View())
}

// Click handles POST /api/v1/map/click
func (h *MapHandler) Click(c *gin.Context) {
	var req PositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid click")
		return
	}
	coords, ok := req.Coordinates()
	if !ok {
		response.BadRequest(c, "lat and lng are required")
		return
	}

	if _, err := h.session.SelectLocation(coords); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, h.session.View())
}

// ReportPosition handles POST /api/v1/map/position, the browser's one-shot
// geolocation result
func (h *MapHandler) ReportPosition(c *gin.Context) {
	var req PositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid position")
		return
	}

	loc := service.NoPosition(req.Error)
	if coords, ok := req.Coordinates(); ok && req.Error == "" {
		loc = service.FixedPosition(coords)
	} else if req.Error == "" {
		loc = service.NoPosition("position missing from report")
	}

	if err := h.session.Locate(c.Request.Context(), loc); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, h.session.View())
}
