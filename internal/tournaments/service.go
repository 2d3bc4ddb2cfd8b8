// Package tournaments implements the listing and registration use cases on
// top of the document store.
package tournaments

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/geocoder89/tourneyhub/internal/apperr"
	"github.com/geocoder89/tourneyhub/internal/cache"
	"github.com/geocoder89/tourneyhub/internal/domain/registration"
	"github.com/geocoder89/tourneyhub/internal/domain/tournament"
	"github.com/geocoder89/tourneyhub/internal/observability"
	"github.com/geocoder89/tourneyhub/internal/seed"
	"github.com/geocoder89/tourneyhub/internal/store"
)

type Options struct {
	Seeder  *seed.Seeder
	Cache   cache.Cache // nil disables caching
	Timeout time.Duration
	Log     *slog.Logger
	Prom    *observability.Prom
}

type Service struct {
	store   store.Store
	seeder  *seed.Seeder
	cache   cache.Cache
	timeout time.Duration
	log     *slog.Logger
	prom    *observability.Prom
}

// NewService wires the use cases. s may be nil when no database is
// configured; every call then fails with apperr.ErrStorageUnavailable.
func NewService(s store.Store, opts Options) *Service {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}

	seeder := opts.Seeder
	if seeder == nil && s != nil {
		seeder = seed.New(s, seed.NewLocalGuard(), log, opts.Prom)
	}

	return &Service{
		store:   s,
		seeder:  seeder,
		cache:   opts.Cache,
		timeout: opts.Timeout,
		log:     log,
		prom:    opts.Prom,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// List returns every tournament. An empty collection is seeded with the demo
// records and read once more; if it is still empty the result is empty.
func (s *Service) List(ctx context.Context) ([]tournament.Tournament, error) {
	if s.store == nil {
		return nil, apperr.ErrStorageUnavailable
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	key := cache.TournamentListKey(tournament.Collection, 0)

	if cached, ok := s.fromCache(ctx, key); ok {
		return cached, nil
	}

	docs, err := s.store.GetDocuments(ctx, tournament.Collection, nil, 0)
	if err != nil {
		return nil, err
	}

	if len(docs) == 0 && s.seeder != nil {
		s.seeder.Seed(ctx)

		docs, err = s.store.GetDocuments(ctx, tournament.Collection, nil, 0)
		if err != nil {
			return nil, err
		}
	}

	out := make([]tournament.Tournament, 0, len(docs))

	for _, doc := range docs {
		id := store.SerializeKey(doc.Key())

		t, err := tournament.Validate(doc)
		if err != nil {
			return nil, fmt.Errorf("tournament %s: %w", id, err)
		}

		t.ID = id
		out = append(out, t)
	}

	// empty results are not cached so the next call can seed again
	if len(out) > 0 {
		s.toCache(ctx, key, out)
	}

	return out, nil
}

// Register stores one sign-up and returns its public id. The tournament_id
// reference is stored as given.
func (s *Service) Register(ctx context.Context, reg registration.Registration) (string, error) {
	reg = registration.Normalize(reg)

	if err := registration.Validate(reg); err != nil {
		return "", err
	}

	if s.store == nil {
		return "", apperr.ErrStorageUnavailable
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	key, err := s.store.CreateDocument(ctx, registration.Collection, reg)
	if err != nil {
		return "", err
	}

	return store.SerializeKey(key), nil
}

func (s *Service) fromCache(ctx context.Context, key string) ([]tournament.Tournament, bool) {
	if s.cache == nil {
		return nil, false
	}

	b, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.WarnContext(ctx, "tournament cache read failed", "key", key, "err", err)
		s.prom.ObserveCache("error")
		return nil, false
	}
	if !ok {
		s.prom.ObserveCache("miss")
		return nil, false
	}

	var out []tournament.Tournament
	if err := json.Unmarshal(b, &out); err != nil {
		s.log.WarnContext(ctx, "tournament cache entry unreadable", "key", key, "err", err)
		s.prom.ObserveCache("error")
		return nil, false
	}

	s.prom.ObserveCache("hit")
	return out, true
}

func (s *Service) toCache(ctx context.Context, key string, items []tournament.Tournament) {
	if s.cache == nil {
		return
	}

	b, err := json.Marshal(items)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, key, b); err != nil {
		s.log.WarnContext(ctx, "tournament cache write failed", "key", key, "err", err)
	}
}
