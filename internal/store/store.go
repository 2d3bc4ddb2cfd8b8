// Package store is the document storage accessor: create and read loosely
// typed documents in named collections. Backends live in the mongostore,
// pgstore and memstore subpackages.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// KeyField carries the backend-assigned internal key on every read document.
const KeyField = "_id"

type Document map[string]interface{}

func (d Document) Key() interface{} {
	return d[KeyField]
}

type Store interface {
	// CreateDocument inserts record and returns its internal key.
	CreateDocument(ctx context.Context, collection string, record interface{}) (interface{}, error)
	// GetDocuments returns documents matching every key of filter. A nil filter
	// matches all documents and limit <= 0 means no limit. An empty collection
	// is not an error.
	GetDocuments(ctx context.Context, collection string, filter map[string]interface{}, limit int) ([]Document, error)
	CollectionNames(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
	// Name is the database name reported by diagnostics.
	Name() string
	Close(ctx context.Context) error
}

// Indexer is implemented by backends that can enforce a unique natural key.
type Indexer interface {
	EnsureUnique(ctx context.Context, collection, field string) error
}

// SerializeKey renders an internal key as the public id string. ObjectIDs
// become their 24 character hex form, which is also what the mongo backend
// parses back.
func SerializeKey(key interface{}) string {
	switch k := key.(type) {
	case nil:
		return ""
	case string:
		return k
	case interface{ Hex() string }:
		return k.Hex()
	case fmt.Stringer:
		return k.String()
	default:
		return fmt.Sprint(k)
	}
}

// ToMap flattens a record into JSON-shaped values using its json tags.
func ToMap(record interface{}) (map[string]interface{}, error) {
	if m, ok := record.(map[string]interface{}); ok {
		out := make(map[string]interface{}, len(m))
		for k, v := range m {
			out[k] = v
		}
		return normalize(out)
	}

	return normalize(record)
}

func normalize(v interface{}) (map[string]interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	out := map[string]interface{}{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// Stamp sets created_at and updated_at on a document about to be inserted.
func Stamp(doc map[string]interface{}, now time.Time) {
	now = now.UTC()
	doc["created_at"] = now
	doc["updated_at"] = now
}
