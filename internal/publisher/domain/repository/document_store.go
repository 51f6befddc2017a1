package repository

import "context"

// DocumentStore is the port to a document database addressed by hierarchical
// collection/document paths. Set is an unconditional whole-document upsert:
// last write wins, no merge, no transaction across calls.
type DocumentStore interface {
	Set(ctx context.Context, path string, fields map[string]interface{}) error
}
