// Package seed fills an empty tournament collection with the demo records.
package seed

import (
	"context"
	"log/slog"
	"time"

	"github.com/geocoder89/tourneyhub/internal/domain/tournament"
	"github.com/geocoder89/tourneyhub/internal/observability"
	"github.com/geocoder89/tourneyhub/internal/store"
)

type Seeder struct {
	store store.Store
	guard Guard
	log   *slog.Logger
	prom  *observability.Prom
	now   func() time.Time
}

func New(s store.Store, guard Guard, log *slog.Logger, prom *observability.Prom) *Seeder {
	if log == nil {
		log = slog.Default()
	}

	return &Seeder{
		store: s,
		guard: guard,
		log:   log,
		prom:  prom,
		now:   time.Now,
	}
}

// Seed inserts the demo tournaments one at a time and returns how many made
// it. A failed insert is logged and skipped; earlier inserts stay in place.
// Seeding is skipped when another holder owns the guard or the collection is
// no longer empty once the guard is held.
func (s *Seeder) Seed(ctx context.Context) int {
	if s.guard != nil {
		release, ok, err := s.guard.Acquire(ctx)
		switch {
		case err != nil:
			s.log.WarnContext(ctx, "seed guard unavailable, seeding unguarded", "err", err)
		case !ok:
			s.log.InfoContext(ctx, "tournament seeding already in progress elsewhere")
			s.prom.ObserveSeed("skipped")
			return 0
		default:
			defer release()
		}
	}

	existing, err := s.store.GetDocuments(ctx, tournament.Collection, nil, 1)
	if err == nil && len(existing) > 0 {
		s.log.DebugContext(ctx, "tournament collection already populated, skipping seed")
		return 0
	}

	inserted := 0

	for _, t := range tournament.DemoTournaments(s.now()) {
		if _, err := s.store.CreateDocument(ctx, tournament.Collection, t); err != nil {
			s.log.WarnContext(ctx, "demo tournament insert failed", "title", t.Title, "err", err)
			s.prom.ObserveSeed("error")
			continue
		}

		inserted++
		s.prom.ObserveSeed("ok")
	}

	s.log.InfoContext(ctx, "seeded demo tournaments", "inserted", inserted)

	return inserted
}
