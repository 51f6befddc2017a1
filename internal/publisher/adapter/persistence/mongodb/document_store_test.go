package mongodb

import (
	"context"
	"testing"

	apperrors "research-publisher/internal/shared/errors"
	"research-publisher/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type updateCall struct {
	filter interface{}
	update interface{}
	opts   []*options.UpdateOptions
}

type mockCollection struct {
	calls []updateCall
	err   error
}

func (m *mockCollection) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	m.calls = append(m.calls, updateCall{filter: filter, update: update, opts: opts})
	if m.err != nil {
		return nil, m.err
	}
	return &mongo.UpdateResult{UpsertedCount: 1}, nil
}

func newTestStore() (*DocumentStore, map[string]*mockCollection) {
	collections := make(map[string]*mockCollection)
	resolve := func(name string) mongoCollection {
		if col, ok := collections[name]; ok {
			return col
		}
		col := &mockCollection{}
		collections[name] = col
		return col
	}
	return newDocumentStore(resolve, logger.NewLogger()), collections
}

func TestSet_UpsertsByPath(t *testing.T) {
	store, collections := newTestStore()

	err := store.Set(context.Background(), "ai_music_studio/pricing_strategy/tiers/free",
		map[string]interface{}{"price": 0})
	require.NoError(t, err)

	// Routed to the collection named after the path's collection ID.
	col, ok := collections["tiers"]
	require.True(t, ok)
	require.Len(t, col.calls, 1)

	call := col.calls[0]
	assert.Equal(t, bson.M{"path": "ai_music_studio/pricing_strategy/tiers/free"}, call.filter)

	update, ok := call.update.(bson.M)
	require.True(t, ok)
	set, ok := update["$set"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "tiers", set["collectionID"])
	assert.Equal(t, "free", set["documentID"])
	assert.Equal(t, map[string]interface{}{"price": 0}, set["fields"])
	assert.NotNil(t, set["updateTime"])

	setOnInsert, ok := update["$setOnInsert"].(bson.M)
	require.True(t, ok)
	assert.NotNil(t, setOnInsert["createTime"])

	require.Len(t, call.opts, 1)
	require.NotNil(t, call.opts[0].Upsert)
	assert.True(t, *call.opts[0].Upsert)
}

func TestSet_RootLevelDocument(t *testing.T) {
	store, collections := newTestStore()

	err := store.Set(context.Background(), "ai_music_studio/pricing_strategy",
		map[string]interface{}{"latest_version": "v1_2026_01_05"})
	require.NoError(t, err)

	col, ok := collections["ai_music_studio"]
	require.True(t, ok)
	require.Len(t, col.calls, 1)
}

func TestSet_InvalidPath(t *testing.T) {
	store, collections := newTestStore()

	err := store.Set(context.Background(), "only_a_collection", map[string]interface{}{})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Empty(t, collections, "invalid path must not reach the driver")
}

func TestSet_DriverError(t *testing.T) {
	store, collections := newTestStore()
	collections["tiers"] = &mockCollection{err: assert.AnError}

	err := store.Set(context.Background(), "ai_music_studio/pricing_strategy/tiers/free",
		map[string]interface{}{})
	require.Error(t, err)
	assert.True(t, apperrors.IsInfrastructure(err))
}
