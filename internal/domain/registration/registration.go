package registration

import (
	"strings"

	"github.com/geocoder89/tourneyhub/internal/validation"
)

const (
	Collection = "registration"

	RolePlayer    = "player"
	RoleOrganizer = "organizer"
)

// Registration is one participant or organizer sign-up. TournamentID is kept
// as sent; it is never checked against the tournament collection.
type Registration struct {
	Name         string  `json:"name" bson:"name" binding:"required"`
	Email        string  `json:"email" bson:"email" binding:"required,email,dotted_domain"`
	Role         string  `json:"role" bson:"role" binding:"required"`
	TeamName     *string `json:"team_name" bson:"team_name"`
	TournamentID *string `json:"tournament_id" bson:"tournament_id"`
	Message      *string `json:"message" bson:"message"`
}

// Validate applies the same rules as request binding, for callers that build
// a Registration without going through HTTP.
func Validate(r Registration) error {
	return validation.Struct(r)
}

// Normalize trims surrounding whitespace from the text fields.
func Normalize(r Registration) Registration {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Role = strings.TrimSpace(r.Role)
	return r
}
