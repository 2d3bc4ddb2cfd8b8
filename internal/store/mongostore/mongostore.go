// Package mongostore is the MongoDB document backend. Collections map one to
// one onto mongo collections and internal keys are ObjectIDs.
package mongostore

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/geocoder89/tourneyhub/internal/apperr"
	"github.com/geocoder89/tourneyhub/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var ErrDuplicate = errors.New("duplicate key")

type Store struct {
	client *mongo.Client
	db     *mongo.Database
	now    func() time.Time
}

// Connect builds a client for uri. The driver dials lazily, so an unreachable
// server surfaces on the first operation rather than here.
func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(20)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	return New(client.Database(dbName)), nil
}

func New(db *mongo.Database) *Store {
	return &Store{
		client: db.Client(),
		db:     db,
		now:    time.Now,
	}
}

func (s *Store) CreateDocument(ctx context.Context, collection string, record interface{}) (interface{}, error) {
	doc, err := toBSON(record)
	if err != nil {
		return nil, apperr.Write(collection+".insert", err)
	}

	delete(doc, store.KeyField)
	store.Stamp(doc, s.now())

	res, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			err = errors.Join(ErrDuplicate, err)
		}
		return nil, apperr.Write(collection+".insert", err)
	}

	return res.InsertedID, nil
}

func (s *Store) GetDocuments(ctx context.Context, collection string, filter map[string]interface{}, limit int) ([]store.Document, error) {
	query := bson.M{}
	for k, v := range filter {
		query[k] = v
	}

	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := s.db.Collection(collection).Find(ctx, query, opts)
	if err != nil {
		return nil, apperr.Read(collection+".find", err)
	}
	defer cursor.Close(ctx)

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, apperr.Read(collection+".find", err)
	}

	docs := make([]store.Document, 0, len(raw))
	for _, m := range raw {
		docs = append(docs, store.Document(m))
	}

	return docs, nil
}

func (s *Store) CollectionNames(ctx context.Context) ([]string, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, apperr.Read("list_collections", err)
	}

	sort.Strings(names)
	return names, nil
}

// EnsureUnique adds a unique index on field so repeated inserts of the same
// natural key fail instead of duplicating documents.
func (s *Store) EnsureUnique(ctx context.Context, collection, field string) error {
	_, err := s.db.Collection(collection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(true).SetName(field + "_unique"),
	})
	if err != nil {
		return apperr.Write(collection+".create_index", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return apperr.Read("ping", err)
	}
	return nil
}

func (s *Store) Name() string { return s.db.Name() }

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// ParseKey turns a public id back into the ObjectID stored under _id.
func ParseKey(id string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(id)
}

func toBSON(record interface{}) (bson.M, error) {
	b, err := bson.Marshal(record)
	if err != nil {
		return nil, err
	}

	out := bson.M{}
	if err := bson.Unmarshal(b, &out); err != nil {
		return nil, err
	}

	return out, nil
}
