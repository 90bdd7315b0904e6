package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"tripwise/internal/preferences"
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
	respondError(c, code, message, nil)
}

func respondError(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

// HandleServiceError maps service errors to HTTP responses. Validation
// failures carry the offending field, conflicts carry the rule and both
// fields.
func HandleServiceError(c *gin.Context, err error) {
	var verr *preferences.ValidationError
	var conflict *preferences.ConflictError

	switch {
	case errors.As(err, &verr):
		respondError(c, http.StatusBadRequest, verr.Message, gin.H{"field": verr.Field})
	case errors.As(err, &conflict):
		respondError(c, http.StatusUnprocessableEntity, conflict.Message,
			gin.H{"rule": conflict.Rule, "fields": conflict.Fields})
	case errors.Is(err, ErrInvalidSection):
		respondError(c, http.StatusBadRequest, "Invalid preference section", nil)
	case errors.Is(err, ErrPreferencesNotFound):
		respondError(c, http.StatusNotFound, "Preferences not found", nil)
	case errors.Is(err, ErrDraftNotFound):
		respondError(c, http.StatusNotFound, "Draft not found", nil)
	case errors.Is(err, ErrAccountNotFound), errors.Is(err, ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "Invalid email or password", nil)
	case errors.Is(err, ErrUnauthenticated):
		respondError(c, http.StatusUnauthorized, "Authentication required", nil)
	case errors.Is(err, ErrEmailAlreadyExists):
		respondError(c, http.StatusConflict, "Email already registered", nil)
	case errors.Is(err, ErrDatabaseError):
		zap.L().Error("Database error", zap.Error(err), zap.String("trace_id", c.GetString("trace_id")))
		respondError(c, http.StatusInternalServerError, "Internal server error", nil)
	default:
		zap.L().Error("Unknown error", zap.Error(err), zap.String("trace_id", c.GetString("trace_id")))
		respondError(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}
