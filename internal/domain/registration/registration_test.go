package registration

import (
	"errors"
	"testing"

	"github.com/geocoder89/tourneyhub/internal/apperr"
)

func TestValidate(t *testing.T) {
	tid := "not-a-real-tournament"

	tests := []struct {
		name       string
		reg        Registration
		wantFields []string
	}{
		{
			name: "valid_player",
			reg:  Registration{Name: "Asha", Email: "asha@example.com", Role: RolePlayer},
		},
		{
			name: "dangling_tournament_id_is_accepted",
			reg:  Registration{Name: "Asha", Email: "asha@example.com", Role: RoleOrganizer, TournamentID: &tid},
		},
		{
			name:       "missing_everything",
			reg:        Registration{},
			wantFields: []string{"name", "email", "role"},
		},
		{
			name:       "email_without_at",
			reg:        Registration{Name: "Asha", Email: "asha.example.com", Role: RolePlayer},
			wantFields: []string{"email"},
		},
		{
			name:       "email_without_dotted_domain",
			reg:        Registration{Name: "Asha", Email: "asha@localhost", Role: RolePlayer},
			wantFields: []string{"email"},
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.reg)

			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var ve *apperr.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected validation error, got %v", err)
			}

			for _, field := range tt.wantFields {
				if !ve.Has(field) {
					t.Fatalf("missing violation for %q: %+v", field, ve.Fields)
				}
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize(Registration{Name: "  Asha ", Email: " asha@example.com", Role: "player  "})

	if got.Name != "Asha" || got.Email != "asha@example.com" || got.Role != "player" {
		t.Fatalf("unexpected normalized registration: %+v", got)
	}
}
