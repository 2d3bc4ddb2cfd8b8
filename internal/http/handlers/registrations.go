package handlers

import (
	"context"
	"net/http"

	"github.com/geocoder89/tourneyhub/internal/apperr"
	"github.com/geocoder89/tourneyhub/internal/domain/registration"
	"github.com/geocoder89/tourneyhub/internal/validation"
	"github.com/gin-gonic/gin"
)

type Registrar interface {
	Register(ctx context.Context, reg registration.Registration) (string, error)
}

type RegistrationHandler struct {
	svc Registrar
}

func NewRegistrationHandler(svc Registrar) *RegistrationHandler {
	// binding needs the custom email rule
	validation.RegisterGin()

	return &RegistrationHandler{svc: svc}
}

func (h *RegistrationHandler) Register(ctx *gin.Context) {
	var req registration.Registration

	if !BindJSON(ctx, &req) {
		return
	}

	id, err := h.svc.Register(ctx.Request.Context(), req)
	if err != nil {
		// whitespace-only fields only fail once trimmed
		if apperr.KindOf(err) == apperr.KindValidation {
			RespondBadRequest(ctx, "Invalid request body", gin.H{"fields": validationFields(err)})
			return
		}

		RespondFailure(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true, "id": id})
}
