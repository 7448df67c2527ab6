package store

import (
	"context"
	"fmt"

	"github.com/Sportinger/argus/internal/models"
)

// CypherRunner is the slice of the Neo4j client the graph store needs: one
// scoped session per statement, released deterministically on exit.
type CypherRunner interface {
	Run(ctx context.Context, query string, params map[string]interface{}) error
	Collect(ctx context.Context, query string, params map[string]interface{}) ([]map[string]interface{}, error)
}

// Neo4jStore is an implementation of the GraphStore interface that uses
// Neo4j as the backend.
type Neo4jStore struct {
	runner CypherRunner
}

// NewNeo4jStore creates a new Neo4jStore.
func NewNeo4jStore(runner CypherRunner) *Neo4jStore {
	return &Neo4jStore{runner: runner}
}

// UpsertEntity merges the node identified by name: the type and aliases are
// replaced wholesale, metadata keys are merged onto the node.
func (s *Neo4jStore) UpsertEntity(ctx context.Context, entity *models.Entity) error {
	query := `
	MERGE (e:Entity {name: $name})
	SET e.type = $type,
	    e.aliases = $aliases,
	    e += $metadata
	`
	params := map[string]interface{}{
		"name":     entity.Name,
		"type":     entity.Type,
		"aliases":  entity.Aliases,
		"metadata": sanitizeMetadata(entity.Metadata, "name", "type", "aliases"),
	}
	if err := s.runner.Run(ctx, query, params); err != nil {
		return fmt.Errorf("failed to upsert entity %q: %w", entity.Name, err)
	}
	return nil
}

// UpsertRelationship merges the directed edge identified by the
// (source, target, type) triple. When either endpoint node is missing the
// MATCH yields nothing and the statement is a no-op: no edge and no
// fabricated nodes.
func (s *Neo4jStore) UpsertRelationship(ctx context.Context, rel *models.Relationship) error {
	query := `
	MATCH (a:Entity {name: $source})
	MATCH (b:Entity {name: $target})
	MERGE (a)-[r:RELATED {type: $type}]->(b)
	SET r.confidence = $confidence,
	    r += $metadata
	`
	params := map[string]interface{}{
		"source":     rel.Source,
		"target":     rel.Target,
		"type":       rel.Type,
		"confidence": rel.Confidence,
		"metadata":   sanitizeMetadata(rel.Metadata, "type", "confidence"),
	}
	if err := s.runner.Run(ctx, query, params); err != nil {
		return fmt.Errorf("failed to upsert relationship %s-[%s]->%s: %w", rel.Source, rel.Type, rel.Target, err)
	}
	return nil
}

// StoreExtraction persists one extraction result, entities first so the
// relationships that follow find their endpoints.
func (s *Neo4jStore) StoreExtraction(ctx context.Context, result *models.ExtractionResult) error {
	for i := range result.Entities {
		if err := s.UpsertEntity(ctx, &result.Entities[i]); err != nil {
			return err
		}
	}
	for i := range result.Relationships {
		if err := s.UpsertRelationship(ctx, &result.Relationships[i]); err != nil {
			return err
		}
	}
	return nil
}

// Query runs an arbitrary parameterized read query and returns flat record
// maps. No validation is performed on the query text; this is an escape
// hatch, not a typed API.
func (s *Neo4jStore) Query(ctx context.Context, query string, params map[string]interface{}) ([]map[string]interface{}, error) {
	rows, err := s.runner.Collect(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to run graph query: %w", err)
	}
	return rows, nil
}

// SearchEntities returns entities whose name contains the given fragment.
func (s *Neo4jStore) SearchEntities(ctx context.Context, name string, limit int) ([]*models.Entity, error) {
	query := `
	MATCH (e:Entity)
	WHERE e.name CONTAINS $name
	RETURN properties(e) AS props
	LIMIT $limit
	`
	rows, err := s.runner.Collect(ctx, query, map[string]interface{}{
		"name":  name,
		"limit": limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search entities: %w", err)
	}

	entities := make([]*models.Entity, 0, len(rows))
	for _, row := range rows {
		props, ok := row["props"].(map[string]interface{})
		if !ok {
			continue
		}
		entities = append(entities, entityFromProps(props))
	}
	return entities, nil
}

// EntityCount returns how many entity nodes the graph holds.
func (s *Neo4jStore) EntityCount(ctx context.Context) (int64, error) {
	return s.count(ctx, `MATCH (e:Entity) RETURN count(e) AS count`)
}

// RelationshipCount returns how many edges the graph holds.
func (s *Neo4jStore) RelationshipCount(ctx context.Context) (int64, error) {
	return s.count(ctx, `MATCH (:Entity)-[r:RELATED]->(:Entity) RETURN count(r) AS count`)
}

func (s *Neo4jStore) count(ctx context.Context, query string) (int64, error) {
	rows, err := s.runner.Collect(ctx, query, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to run count query: %w", err)
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("count query returned no rows")
	}
	count, ok := rows[0]["count"].(int64)
	if !ok {
		return 0, fmt.Errorf("count query returned unexpected value %v", rows[0]["count"])
	}
	return count, nil
}

// entityFromProps rebuilds an Entity from flattened node properties. The
// reserved name/type/aliases keys are lifted out; everything else is the
// merged metadata.
func entityFromProps(props map[string]interface{}) *models.Entity {
	entity := &models.Entity{}
	metadata := make(map[string]interface{})
	for key, value := range props {
		switch key {
		case "name":
			entity.Name, _ = value.(string)
		case "type":
			entity.Type, _ = value.(string)
		case "aliases":
			if raw, ok := value.([]interface{}); ok {
				for _, alias := range raw {
					if s, ok := alias.(string); ok {
						entity.Aliases = append(entity.Aliases, s)
					}
				}
			}
		default:
			metadata[key] = value
		}
	}
	if len(metadata) > 0 {
		entity.Metadata = metadata
	}
	return entity
}

// sanitizeMetadata keeps the += merge from overwriting reserved properties
// and from passing a nil map to the driver.
func sanitizeMetadata(metadata map[string]interface{}, reserved ...string) map[string]interface{} {
	out := make(map[string]interface{}, len(metadata))
	for key, value := range metadata {
		out[key] = value
	}
	for _, key := range reserved {
		delete(out, key)
	}
	return out
}
