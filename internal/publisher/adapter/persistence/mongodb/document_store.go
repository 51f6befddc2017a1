package mongodb

import (
	"context"
	"time"

	"research-publisher/internal/shared/docpath"
	"research-publisher/internal/shared/errors"
	"research-publisher/internal/shared/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoCollection is the subset of *mongo.Collection the store uses,
// extracted so tests can substitute a mock.
type mongoCollection interface {
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
}

// collectionResolver maps a collection ID to its MongoDB collection.
type collectionResolver func(name string) mongoCollection

// DocumentStore persists hierarchical documents in MongoDB. Each document
// lands in the Mongo collection named after its collection ID, keyed by full
// path, so "ai_music_studio/pricing_strategy/tiers/free" is upserted into the
// "tiers" collection.
type DocumentStore struct {
	resolve collectionResolver
	log     logger.Logger
}

// storedDocument is the MongoDB representation of one destination document.
type storedDocument struct {
	Path         string                 `bson:"path"`
	CollectionID string                 `bson:"collectionID"`
	DocumentID   string                 `bson:"documentID"`
	Fields       map[string]interface{} `bson:"fields"`
	CreateTime   time.Time              `bson:"createTime"`
	UpdateTime   time.Time              `bson:"updateTime"`
}

// NewDocumentStore creates a store backed by the given database.
func NewDocumentStore(db *mongo.Database, log logger.Logger) *DocumentStore {
	return newDocumentStore(func(name string) mongoCollection {
		return db.Collection(name)
	}, log)
}

func newDocumentStore(resolve collectionResolver, log logger.Logger) *DocumentStore {
	return &DocumentStore{
		resolve: resolve,
		log:     log.WithComponent("mongodb.DocumentStore"),
	}
}

// Set upserts the document at path, fully replacing its fields.
func (s *DocumentStore) Set(ctx context.Context, path string, fields map[string]interface{}) error {
	if err := docpath.ValidateDocumentPath(path); err != nil {
		return err
	}

	collectionID, err := docpath.CollectionID(path)
	if err != nil {
		return err
	}
	documentID, err := docpath.DocumentID(path)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	filter := bson.M{"path": path}
	update := bson.M{
		"$set": bson.M{
			"path":         path,
			"collectionID": collectionID,
			"documentID":   documentID,
			"fields":       fields,
			"updateTime":   now,
		},
		"$setOnInsert": bson.M{
			"createTime": now,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := s.resolve(collectionID).UpdateOne(ctx, filter, update, opts); err != nil {
		s.log.Errorf("Failed to set document %s: %v", path, err)
		return errors.NewInfrastructureError("failed to set document").
			WithDetail("path", path).
			WithCause(err)
	}

	s.log.Debugf("Set document %s", path)
	return nil
}
