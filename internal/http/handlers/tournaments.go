package handlers

import (
	"context"
	"net/http"

	"github.com/geocoder89/tourneyhub/internal/domain/tournament"
	"github.com/gin-gonic/gin"
)

type TournamentLister interface {
	List(ctx context.Context) ([]tournament.Tournament, error)
}

type TournamentsHandler struct {
	svc TournamentLister
}

func NewTournamentsHandler(svc TournamentLister) *TournamentsHandler {
	return &TournamentsHandler{svc: svc}
}

// ListTournaments returns every tournament, seeding the demo records on an
// empty collection.
func (h *TournamentsHandler) ListTournaments(ctx *gin.Context) {
	items, err := h.svc.List(ctx.Request.Context())
	if err != nil {
		RespondFailure(ctx, err)
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, items)
}
