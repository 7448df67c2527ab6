package store

import (
	"context"

	"github.com/Sportinger/argus/internal/models"
)

// GraphStore is the persistence contract for the entity/relationship graph.
//
// Upserts are idempotent merges keyed by identity: an entity's identity is
// its exact name, a relationship's identity is its directed
// (source, target, type) triple. Repeating an upsert never creates a
// duplicate node or edge; it overwrites type/aliases/confidence and merges
// metadata key-by-key.
//
// A relationship whose endpoints do not both exist does not materialize and
// does not fabricate the missing nodes; callers are responsible for
// upserting entities first and for counting dangling references.
type GraphStore interface {
	UpsertEntity(ctx context.Context, entity *models.Entity) error
	UpsertRelationship(ctx context.Context, rel *models.Relationship) error

	// StoreExtraction persists one extraction result, entities before
	// relationships. Each upsert is atomic on its own; the batch is not.
	StoreExtraction(ctx context.Context, result *models.ExtractionResult) error

	// Query is a passthrough for arbitrary read queries. Parameters are
	// always passed structurally, never interpolated into the query text.
	Query(ctx context.Context, query string, params map[string]interface{}) ([]map[string]interface{}, error)

	// SearchEntities returns entities whose name contains the given
	// fragment, up to limit.
	SearchEntities(ctx context.Context, name string, limit int) ([]*models.Entity, error)

	EntityCount(ctx context.Context) (int64, error)
	RelationshipCount(ctx context.Context) (int64, error)
}

// SeenStore marks documents that already went through extraction so a
// re-fetched window is not mined twice.
type SeenStore interface {
	// MarkIfNew marks the key and reports whether it was previously unseen.
	MarkIfNew(ctx context.Context, key string) (bool, error)
}
