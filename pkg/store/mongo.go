package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	ferrors "github.com/flowkit/flowkit/pkg/errors"
)

// MongoConfig configures the MongoDB store backend.
type MongoConfig struct {
	URI        string // e.g. "mongodb://localhost:27017"
	Database   string // defaults to "flowkit"
	Collection string // defaults to "graphs"
}

// MongoStore persists graph definitions in a MongoDB collection, keyed by
// graph name. Writes upsert: a Put for an existing name replaces the
// document under a new revision.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, ferrors.Wrap(ferrors.ErrCodeStore, err, "connect %s", cfg.URI)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, ferrors.Wrap(ferrors.ErrCodeStore, err, "ping %s", cfg.URI)
	}

	db := cfg.Database
	if db == "" {
		db = "flowkit"
	}
	coll := cfg.Collection
	if coll == "" {
		coll = "graphs"
	}
	return &MongoStore{client: client, coll: client.Database(db).Collection(coll)}, nil
}

// Put upserts definition under name with a fresh revision.
func (s *MongoStore) Put(ctx context.Context, name string, definition []byte) (Document, error) {
	doc := Document{
		Name:       name,
		Revision:   uuid.NewString(),
		UpdatedAt:  time.Now().UTC(),
		Definition: definition,
	}

	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": name}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return Document{}, ferrors.Wrap(ferrors.ErrCodeStore, err, "put graph %s", name)
	}
	return doc.Meta(), nil
}

// Get returns the stored document for name.
func (s *MongoStore) Get(ctx context.Context, name string) (Document, error) {
	var doc Document
	err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Document{}, ferrors.New(ferrors.ErrCodeGraphNotFound, "graph %s", name)
	}
	if err != nil {
		return Document{}, ferrors.Wrap(ferrors.ErrCodeStore, err, "get graph %s", name)
	}
	return doc, nil
}

// List returns metadata for every stored document, ordered by name.
func (s *MongoStore) List(ctx context.Context) ([]Document, error) {
	opts := options.Find().
		SetProjection(bson.M{"definition": 0}).
		SetSort(bson.M{"_id": 1})

	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, ferrors.Wrap(ferrors.ErrCodeStore, err, "list graphs")
	}
	defer cur.Close(ctx)

	var docs []Document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, ferrors.Wrap(ferrors.ErrCodeStore, err, "list graphs")
	}
	return docs, nil
}

// Delete removes the document for name.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": name})
	if err != nil {
		return ferrors.Wrap(ferrors.ErrCodeStore, err, "delete graph %s", name)
	}
	if res.DeletedCount == 0 {
		return ferrors.New(ferrors.ErrCodeGraphNotFound, "graph %s", name)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
