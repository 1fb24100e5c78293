package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// HandleServiceError maps the service error taxonomy onto HTTP status
// codes. Payment providers retry on 5xx and stop on 4xx/2xx, so the
// distinction between validation and upstream failures matters here.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSubscriberNotFound):
		RespondError(c, http.StatusNotFound, "Subscriber not found")
	case errors.Is(err, ErrCompanyNotFound):
		RespondError(c, http.StatusNotFound, "Company not found")
	case errors.Is(err, ErrMessageNotFound):
		RespondError(c, http.StatusNotFound, "Cadence message not found")
	case errors.Is(err, ErrInvalidPayload):
		RespondError(c, http.StatusBadRequest, "Invalid webhook payload")
	case errors.Is(err, ErrInvalidPhone):
		RespondError(c, http.StatusBadRequest, "Invalid phone number")
	case errors.Is(err, ErrInvalidStatus):
		RespondError(c, http.StatusBadRequest, "Invalid status transition")
	case errors.Is(err, ErrInvalidOrdering):
		RespondError(c, http.StatusBadRequest, "Invalid message ordering")
	case errors.Is(err, ErrUpstreamFailure):
		zap.L().Error("upstream provider error", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Upstream provider error")
	case errors.Is(err, ErrDatabaseError):
		zap.L().Error("database error", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		zap.L().Error("unknown error", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
