package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "worktime/internal/errors"
)

// statusFor maps an application error onto an HTTP status code
func statusFor(err error) int {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch appErr.Type {
	case apperrors.ErrorTypeValidation, apperrors.ErrorTypeInvalidInput:
		return http.StatusBadRequest
	case apperrors.ErrorTypeNotFound:
		return http.StatusNotFound
	case apperrors.ErrorTypeConflict:
		return http.StatusConflict
	case apperrors.ErrorTypeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	if apperrors.ShouldLogError(err) {
		h.log.Error("request failed",
			slog.String("request_id", c.GetString("request_id")),
			slog.String("error", err.Error()))
	}
	c.JSON(statusFor(err), gin.H{
		"ok":    false,
		"error": apperrors.GetUserMessage(err),
		"code":  apperrors.GetErrorCode(err),
	})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": message})
}
