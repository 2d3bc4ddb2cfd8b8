package tournament

import (
	"errors"

	"github.com/geocoder89/tourneyhub/internal/apperr"
	"github.com/geocoder89/tourneyhub/internal/validation"
)

// Validate builds a Tournament from a raw stored document. Required fields are
// title, game, start_date, entry_fee_inr and prize_pool_inr; mode, slots and
// featured fall back to their defaults. Every violation is reported at once.
//
// end_date is not compared with start_date.
func Validate(raw map[string]interface{}) (Tournament, error) {
	ve := &apperr.ValidationError{}
	d := decoder{raw: raw, errs: ve}

	t := Tournament{
		Title:        d.requiredString("title"),
		Game:         d.requiredString("game"),
		Description:  d.optionalString("description"),
		StartDate:    d.requiredTime("start_date"),
		EndDate:      d.optionalTime("end_date"),
		EntryFeeINR:  d.requiredInt("entry_fee_inr"),
		PrizePoolINR: d.requiredInt("prize_pool_inr"),
		Mode:         d.stringOr("mode", ModeOnline),
		Slots:        d.intOr("slots", 0),
		Region:       d.optionalString("region"),
		Featured:     d.boolOr("featured", false),
		BannerURL:    d.optionalString("banner_url"),
	}

	if err := validation.Struct(t); err != nil {
		var tagged *apperr.ValidationError
		if !errors.As(err, &tagged) {
			return Tournament{}, err
		}

		// decode problems already explain the field, skip duplicates
		for _, f := range tagged.Fields {
			if !ve.Has(f.Field) {
				ve.Fields = append(ve.Fields, f)
			}
		}
	}

	if err := ve.OrNil(); err != nil {
		return Tournament{}, err
	}

	return t, nil
}
