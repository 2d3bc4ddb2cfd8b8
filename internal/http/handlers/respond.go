package handlers

import (
	"net/http"

	"github.com/geocoder89/tourneyhub/internal/apperr"
	"github.com/geocoder89/tourneyhub/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

type APIError struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"requestId,omitempty"`
	Details   interface{} `json:"details,omitempty"`
}

func requestIDFrom(ctx *gin.Context) string {
	v, ok := ctx.Get(middlewares.CtxRequestID)

	if ok {
		s, ok := v.(string)
		if ok && s != "" {
			return s
		}
	}

	// fallback header
	return ctx.GetHeader("X-Request-Id")
}

func RespondError(ctx *gin.Context, status int, code, message string, details interface{}) {
	ctx.JSON(status, gin.H{
		"error": APIError{
			Code:      code,
			Message:   message,
			RequestID: requestIDFrom(ctx),
			Details:   details,
		},
	})
}

func RespondBadRequest(ctx *gin.Context, message string, details interface{}) {
	RespondError(ctx, http.StatusBadRequest, "invalid_request", message, details)
}

func RespondInternal(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusInternalServerError, "internal_error", message, nil)
}

// RespondFailure reports a listing or registration failure. The status is
// always 500; the code carries the error kind and the message the error text.
func RespondFailure(ctx *gin.Context, err error) {
	var details interface{}

	if fields := validationFields(err); len(fields) > 0 {
		details = gin.H{"fields": fields}
	}

	_ = ctx.Error(err)

	RespondError(ctx, http.StatusInternalServerError, string(apperr.KindOf(err)), err.Error(), details)
}
