// Package pgstore keeps documents in PostgreSQL, one table per collection
// with the document body in a jsonb column.
package pgstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/geocoder89/tourneyhub/internal/apperr"
	"github.com/geocoder89/tourneyhub/internal/store"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrDuplicate         = errors.New("duplicate key")
	ErrInvalidCollection = errors.New("invalid collection name")
)

var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]{0,62}$`)

type Store struct {
	pool *pgxpool.Pool
	name string
	now  func() time.Time

	// tables already created by this process
	ready sync.Map
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{
		pool: pool,
		name: pool.Config().ConnConfig.Database,
		now:  time.Now,
	}
}

func (s *Store) ensureTable(ctx context.Context, collection string) error {
	if _, ok := s.ready.Load(collection); ok {
		return nil
	}

	_, err := s.pool.Exec(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id uuid PRIMARY KEY,
			doc jsonb NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now()
		)`, pgx.Identifier{collection}.Sanitize()))
	if err != nil {
		return err
	}

	s.ready.Store(collection, struct{}{})
	return nil
}

func (s *Store) CreateDocument(ctx context.Context, collection string, record interface{}) (interface{}, error) {
	op := collection + ".insert"

	if !identRe.MatchString(collection) {
		return nil, apperr.Write(op, ErrInvalidCollection)
	}

	doc, err := store.ToMap(record)
	if err != nil {
		return nil, apperr.Write(op, err)
	}

	delete(doc, store.KeyField)
	now := s.now().UTC()
	store.Stamp(doc, now)

	body, err := json.Marshal(doc)
	if err != nil {
		return nil, apperr.Write(op, err)
	}

	if err := s.ensureTable(ctx, collection); err != nil {
		return nil, apperr.Write(op, err)
	}

	key := uuid.NewString()

	_, err = s.pool.Exec(ctx,
		fmt.Sprintf(`INSERT INTO %s (id, doc, created_at) VALUES ($1, $2, $3)`, pgx.Identifier{collection}.Sanitize()),
		key, body, now,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			err = errors.Join(ErrDuplicate, err)
		}
		return nil, apperr.Write(op, err)
	}

	return key, nil
}

func (s *Store) GetDocuments(ctx context.Context, collection string, filter map[string]interface{}, limit int) ([]store.Document, error) {
	op := collection + ".find"

	if !identRe.MatchString(collection) {
		return nil, apperr.Read(op, ErrInvalidCollection)
	}

	want, err := json.Marshal(filterOrEmpty(filter))
	if err != nil {
		return nil, apperr.Read(op, err)
	}

	query := fmt.Sprintf(`SELECT id::text, doc FROM %s WHERE doc @> $1::jsonb ORDER BY created_at, id`, pgx.Identifier{collection}.Sanitize())
	args := []interface{}{want}

	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		// a collection nobody wrote to yet reads as empty, like in mongo
		if isUndefinedTable(err) {
			return []store.Document{}, nil
		}
		return nil, apperr.Read(op, err)
	}
	defer rows.Close()

	docs := []store.Document{}
	for rows.Next() {
		var (
			id   string
			body []byte
		)

		if err := rows.Scan(&id, &body); err != nil {
			return nil, apperr.Read(op, err)
		}

		doc := store.Document{}
		if err := json.Unmarshal(body, &doc); err != nil {
			return nil, apperr.Read(op, err)
		}
		doc[store.KeyField] = id

		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		if isUndefinedTable(err) {
			return []store.Document{}, nil
		}
		return nil, apperr.Read(op, err)
	}

	return docs, nil
}

func (s *Store) CollectionNames(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT table_name
		FROM information_schema.columns
		WHERE table_schema = current_schema()
			AND column_name = 'doc'
			AND data_type = 'jsonb'
		ORDER BY table_name`)
	if err != nil {
		return nil, apperr.Read("list_collections", err)
	}

	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, apperr.Read("list_collections", err)
	}

	return names, nil
}

// EnsureUnique adds a unique expression index on doc->>field.
func (s *Store) EnsureUnique(ctx context.Context, collection, field string) error {
	op := collection + ".create_index"

	if !identRe.MatchString(collection) || !identRe.MatchString(field) {
		return apperr.Write(op, ErrInvalidCollection)
	}

	if err := s.ensureTable(ctx, collection); err != nil {
		return apperr.Write(op, err)
	}

	index := pgx.Identifier{collection + "_" + field + "_unique"}.Sanitize()
	_, err := s.pool.Exec(ctx, fmt.Sprintf(
		`CREATE UNIQUE INDEX IF NOT EXISTS %s ON %s ((doc->>'%s'))`,
		index, pgx.Identifier{collection}.Sanitize(), field,
	))
	if err != nil {
		return apperr.Write(op, err)
	}

	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return apperr.Read("ping", err)
	}
	return nil
}

func (s *Store) Name() string { return s.name }

func (s *Store) Close(context.Context) error {
	s.pool.Close()
	return nil
}

func filterOrEmpty(filter map[string]interface{}) map[string]interface{} {
	if filter == nil {
		return map[string]interface{}{}
	}
	return filter
}

func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42P01"
}
