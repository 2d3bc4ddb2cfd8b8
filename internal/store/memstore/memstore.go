// Package memstore keeps documents in process memory. It backs local
// development (STORE_DRIVER=memory) and tests.
package memstore

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/geocoder89/tourneyhub/internal/apperr"
	"github.com/geocoder89/tourneyhub/internal/store"
	"github.com/google/uuid"
)

var ErrDuplicate = errors.New("duplicate key")

type Store struct {
	mu          sync.RWMutex
	name        string
	collections map[string][]store.Document // insertion order
	unique      map[string][]string         // collection -> unique fields
	now         func() time.Time
}

func New(name string) *Store {
	if name == "" {
		name = "memory"
	}

	return &Store{
		name:        name,
		collections: make(map[string][]store.Document),
		unique:      make(map[string][]string),
		now:         time.Now,
	}
}

func (s *Store) CreateDocument(_ context.Context, collection string, record interface{}) (interface{}, error) {
	doc, err := store.ToMap(record)
	if err != nil {
		return nil, apperr.Write(collection+".insert", err)
	}

	store.Stamp(doc, s.now())
	key := uuid.NewString()
	doc[store.KeyField] = key

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, field := range s.unique[collection] {
		for _, existing := range s.collections[collection] {
			if reflect.DeepEqual(existing[field], doc[field]) {
				return nil, apperr.Write(collection+".insert", ErrDuplicate)
			}
		}
	}

	s.collections[collection] = append(s.collections[collection], doc)

	return key, nil
}

func (s *Store) EnsureUnique(_ context.Context, collection, field string) error {
	s.mu.Lock()
	s.unique[collection] = append(s.unique[collection], field)
	s.mu.Unlock()
	return nil
}

func (s *Store) GetDocuments(_ context.Context, collection string, filter map[string]interface{}, limit int) ([]store.Document, error) {
	want, err := store.ToMap(filter)
	if err != nil {
		return nil, apperr.Read(collection+".find", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []store.Document{}
	for _, doc := range s.collections[collection] {
		if !matches(doc, want) {
			continue
		}

		out = append(out, copyDoc(doc))

		if limit > 0 && len(out) == limit {
			break
		}
	}

	return out, nil
}

func (s *Store) CollectionNames(_ context.Context) ([]string, error) {
	s.mu.RLock()
	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	s.mu.RUnlock()

	sort.Strings(names)
	return names, nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Name() string { return s.name }

func (s *Store) Close(context.Context) error { return nil }

func matches(doc, filter map[string]interface{}) bool {
	for k, v := range filter {
		got, ok := doc[k]
		if !ok || !reflect.DeepEqual(got, v) {
			return false
		}
	}
	return true
}

func copyDoc(doc store.Document) store.Document {
	out := make(store.Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
