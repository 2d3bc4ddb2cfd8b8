package validation

import (
	"errors"
	"testing"

	"github.com/geocoder89/tourneyhub/internal/apperr"
)

func TestHasDottedDomain(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"player@example.com", true},
		{"a.b@mail.co.in", true},
		{"player@localhost", false},
		{"player.example.com", false},
		{"@example.com", false},
		{"player@", false},
		{"player@.com", false},
		{"player@example.", false},
	}

	for _, tt := range tests {
		if got := HasDottedDomain(tt.email); got != tt.want {
			t.Fatalf("HasDottedDomain(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

type signup struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email,dotted_domain"`
	Slots int    `json:"slots" binding:"min=0"`
}

func TestStruct_CollectsEveryField(t *testing.T) {
	err := Struct(signup{Email: "nope", Slots: -1})
	if err == nil {
		t.Fatalf("expected validation error")
	}

	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *apperr.ValidationError, got %T", err)
	}

	for _, field := range []string{"name", "email", "slots"} {
		if !ve.Has(field) {
			t.Fatalf("missing field error for %q: %+v", field, ve.Fields)
		}
	}

	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation kind, got %q", apperr.KindOf(err))
	}
}

func TestStruct_DottedDomainRule(t *testing.T) {
	err := Struct(signup{Name: "Asha", Email: "asha@localhost"})

	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error for undotted domain, got %v", err)
	}

	if len(ve.Fields) != 1 || ve.Fields[0].Field != "email" {
		t.Fatalf("unexpected fields: %+v", ve.Fields)
	}
}

func TestStruct_Valid(t *testing.T) {
	if err := Struct(signup{Name: "Asha", Email: "asha@example.com", Slots: 4}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
