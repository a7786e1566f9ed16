package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/workouts-backend-go/internal/repository"
	"github.com/jengzang/workouts-backend-go/internal/service"
	"github.com/jengzang/workouts-backend-go/internal/validate"
	"github.com/jengzang/workouts-backend-go/pkg/response"
)

// MessageInvalidInput is the notification shown for rejected form values
const MessageInvalidInput = "Inputs have to be positive numbers!"

// writeError maps session and store errors onto the response envelope
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, validate.ErrInvalidInput):
		response.BadRequest(c, MessageInvalidInput)
	case errors.Is(err, service.ErrInvalidCoordinates),
		errors.Is(err, service.ErrUnknownWorkoutType):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrWorkoutNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrNoLocation),
		errors.Is(err, service.ErrMapNotReady):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrPositionUnavailable):
		response.Error(c, http.StatusServiceUnavailable, service.NotificationNoPosition)
	case errors.Is(err, repository.ErrQuotaExceeded):
		response.Error(c, http.StatusInsufficientStorage, err.Error())
	default:
		response.InternalError(c, err.Error())
	}
}
