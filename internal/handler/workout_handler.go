package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/workouts-backend-go/internal/export"
	"github.com/jengzang/workouts-backend-go/internal/service"
	"github.com/jengzang/workouts-backend-go/pkg/response"
)

// WorkoutHandler handles HTTP requests for workouts
type WorkoutHandler struct {
	session *service.Session
}

// NewWorkoutHandler creates a new workout handler
func NewWorkoutHandler(session *service.Session) *WorkoutHandler {
	return &WorkoutHandler{
		session: session,
	}
}

// ListWorkouts handles GET /api/v1/workouts
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	items := h.session.Items()
	response.Success(c, gin.H{
		"data":  items,
		"count": len(items),
	})
}

// GetWorkout handles GET /api/v1/workouts/:id
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	item, err := h.session.Item(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, item)
}

// CreateWorkout handles POST /api/v1/workouts
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid workout form")
		return
	}

	item, err := h.session.SubmitWorkout(c.Request.Context(), req.FormInput())
	if err != nil {
		writeError(c, err)
		return
	}

	response.Created(c, item)
}

// SelectWorkout handles POST /api/v1/workouts/:id/select
func (h *WorkoutHandler) SelectWorkout(c *gin.Context) {
	item, err := h.session.SelectWorkout(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, item)
}

// ExportWorkout handles GET /api/v1/workouts/:id/fit
func (h *WorkoutHandler) ExportWorkout(c *gin.Context) {
	w, err := h.session.Find(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	data, err := export.FIT(w)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+w.ID()+`.fit"`)
	c.Data(http.StatusOK, "application/vnd.ant.fit", data)
}

// GetSummary handles GET /api/v1/summary
func (h *WorkoutHandler) GetSummary(c *gin.Context) {
	response.Success(c, h.session.Summary())
}

// Reset handles POST /api/v1/reset
func (h *WorkoutHandler) Reset(c *gin.Context) {
	if err := h.session.Reset(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, h.session.View())
}
