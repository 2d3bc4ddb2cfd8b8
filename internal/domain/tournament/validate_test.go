package tournament

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/geocoder89/tourneyhub/internal/apperr"
)

type mongoDate int64

func (d mongoDate) Time() time.Time { return time.UnixMilli(int64(d)).UTC() }

func validRaw() map[string]interface{} {
	return map[string]interface{}{
		"title":          "Valorant Royale Cup",
		"game":           "Valorant",
		"start_date":     "2026-03-01T09:00:00Z",
		"entry_fee_inr":  float64(499),
		"prize_pool_inr": float64(150000),
	}
}

func TestValidate_AppliesDefaults(t *testing.T) {
	got, err := Validate(validRaw())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Mode != ModeOnline {
		t.Fatalf("mode default: got %q", got.Mode)
	}
	if got.Slots != 0 || got.Featured {
		t.Fatalf("slots/featured defaults: got %d/%v", got.Slots, got.Featured)
	}
	if got.Description != nil || got.EndDate != nil || got.Region != nil || got.BannerURL != nil {
		t.Fatalf("optional fields should stay nil: %+v", got)
	}
	if !got.StartDate.Equal(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("start_date parsed wrong: %v", got.StartDate)
	}
}

func TestValidate_AcceptsDriverTypes(t *testing.T) {
	start := time.Date(2026, 5, 10, 18, 30, 0, 0, time.UTC)

	raw := map[string]interface{}{
		"title":          "CS2 Kings Arena",
		"game":           "Counter-Strike 2",
		"start_date":     mongoDate(start.UnixMilli()),
		"end_date":       start.Add(48 * time.Hour),
		"entry_fee_inr":  int32(999),
		"prize_pool_inr": int64(300000),
		"mode":           ModeOffline,
		"slots":          json.Number("16"),
		"featured":       false,
		"region":         "Bengaluru",
	}

	got, err := Validate(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !got.StartDate.Equal(start) {
		t.Fatalf("start_date: got %v want %v", got.StartDate, start)
	}
	if got.EndDate == nil || !got.EndDate.Equal(start.Add(48*time.Hour)) {
		t.Fatalf("end_date: got %v", got.EndDate)
	}
	if got.EntryFeeINR != 999 || got.PrizePoolINR != 300000 || got.Slots != 16 {
		t.Fatalf("numbers decoded wrong: %+v", got)
	}
	if got.Region == nil || *got.Region != "Bengaluru" {
		t.Fatalf("region: got %v", got.Region)
	}
}

func TestValidate_NaiveTimestampIsUTC(t *testing.T) {
	raw := validRaw()
	raw["start_date"] = "2026-03-01T09:00:00.123456"

	got, err := Validate(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.StartDate.Location() != time.UTC || got.StartDate.Hour() != 9 {
		t.Fatalf("naive timestamp should read as UTC, got %v", got.StartDate)
	}
}

func TestValidate_ReportsEveryViolation(t *testing.T) {
	raw := map[string]interface{}{
		"title":          "",
		"start_date":     "next friday",
		"entry_fee_inr":  float64(-1),
		"prize_pool_inr": 12.5,
		"slots":          float64(-4),
		"featured":       "yes",
	}

	_, err := Validate(raw)

	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *apperr.ValidationError, got %v", err)
	}

	want := map[string]string{
		"title":          "required",
		"game":           "required",
		"start_date":     "type",
		"entry_fee_inr":  "min",
		"prize_pool_inr": "type",
		"slots":          "min",
		"featured":       "type",
	}

	found := map[string]string{}
	for _, f := range ve.Fields {
		if _, dup := found[f.Field]; dup {
			t.Fatalf("field %q reported twice: %+v", f.Field, ve.Fields)
		}
		found[f.Field] = f.Rule
	}

	for field, rule := range want {
		if found[field] != rule {
			t.Fatalf("field %q: got rule %q want %q (all: %+v)", field, found[field], rule, ve.Fields)
		}
	}
}

func TestValidate_EndBeforeStartIsAccepted(t *testing.T) {
	raw := validRaw()
	raw["end_date"] = "2026-02-01T09:00:00Z"

	if _, err := Validate(raw); err != nil {
		t.Fatalf("end_date before start_date is not validated, got %v", err)
	}
}

func TestDemoTournaments_PassValidation(t *testing.T) {
	now := time.Now()
	demos := DemoTournaments(now)

	if len(demos) != 3 {
		t.Fatalf("expected 3 demo tournaments, got %d", len(demos))
	}

	wantTitles := []string{"Valorant Royale Cup", "BGMI Clash Series", "CS2 Kings Arena"}

	for i, demo := range demos {
		if demo.Title != wantTitles[i] {
			t.Fatalf("demo %d title: got %q want %q", i, demo.Title, wantTitles[i])
		}

		b, err := json.Marshal(demo)
		if err != nil {
			t.Fatalf("marshal demo: %v", err)
		}

		var raw map[string]interface{}
		if err := json.Unmarshal(b, &raw); err != nil {
			t.Fatalf("unmarshal demo: %v", err)
		}

		got, err := Validate(raw)
		if err != nil {
			t.Fatalf("demo %q failed validation: %v", demo.Title, err)
		}

		if got.EntryFeeINR != demo.EntryFeeINR || got.Mode != demo.Mode || got.Featured != demo.Featured {
			t.Fatalf("demo %q changed after round trip: %+v", demo.Title, got)
		}
	}
}
