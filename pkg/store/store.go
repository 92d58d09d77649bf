// Package store persists named graph definitions.
//
// A [Store] maps graph names to serialized JSON definitions. Each write
// produces a fresh revision id so consumers can detect changes cheaply.
// Backends:
//   - [MemoryStore]: process-local, for development and tests
//   - [MongoStore]: MongoDB-backed, for server deployments
//
// Unlike the fbp graph layer, which silently no-ops on missing targets,
// storage is an external surface: Get and Delete on unknown names return
// a GRAPH_NOT_FOUND coded error.
package store

import (
	"context"
	"time"
)

// Document is one stored graph: its serialized JSON definition plus
// storage metadata.
type Document struct {
	Name       string    `json:"name" bson:"_id"`
	Revision   string    `json:"revision" bson:"revision"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
	Definition []byte    `json:"definition,omitempty" bson:"definition"`
}

// Meta returns a copy of the document without its definition payload,
// suitable for listings.
func (d Document) Meta() Document {
	d.Definition = nil
	return d
}

// Store persists graph definitions by name.
type Store interface {
	// Put stores definition under name, overwriting any previous revision,
	// and returns the new document metadata.
	Put(ctx context.Context, name string, definition []byte) (Document, error)

	// Get returns the document stored under name, including its definition.
	Get(ctx context.Context, name string) (Document, error)

	// List returns metadata for every stored document, ordered by name.
	List(ctx context.Context) ([]Document, error)

	// Delete removes the document stored under name.
	Delete(ctx context.Context, name string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
