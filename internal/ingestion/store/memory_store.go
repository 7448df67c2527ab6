package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Sportinger/argus/internal/models"
)

// edgeKey is the identity triple of a relationship.
type edgeKey struct {
	source string
	target string
	relTyp string
}

// MemoryStore is a mutex-guarded in-memory implementation of GraphStore
// with the same merge semantics as the Neo4j backend. It backs tests and
// driver-free deployments.
type MemoryStore struct {
	mutex sync.RWMutex
	nodes map[string]*models.Entity
	edges map[edgeKey]*models.Relationship
}

// NewMemoryStore creates an empty in-memory graph store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nodes: make(map[string]*models.Entity),
		edges: make(map[edgeKey]*models.Relationship),
	}
}

// UpsertEntity merges the node identified by name; exactly one node per
// name exists after any sequence of calls.
func (s *MemoryStore) UpsertEntity(ctx context.Context, entity *models.Entity) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	node, exists := s.nodes[entity.Name]
	if !exists {
		node = &models.Entity{Name: entity.Name}
		s.nodes[entity.Name] = node
	}

	node.Type = entity.Type
	node.Aliases = append([]string(nil), entity.Aliases...)
	node.Metadata = mergeMetadata(node.Metadata, entity.Metadata)
	return nil
}

// UpsertRelationship merges the edge identified by the (source, target,
// type) triple. A missing endpoint makes the call a silent no-op: no edge
// is written and no node is fabricated.
func (s *MemoryStore) UpsertRelationship(ctx context.Context, rel *models.Relationship) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.nodes[rel.Source]; !ok {
		return nil
	}
	if _, ok := s.nodes[rel.Target]; !ok {
		return nil
	}

	key := edgeKey{source: rel.Source, target: rel.Target, relTyp: rel.Type}
	edge, exists := s.edges[key]
	if !exists {
		edge = &models.Relationship{Source: rel.Source, Target: rel.Target, Type: rel.Type}
		s.edges[key] = edge
	}

	edge.Confidence = rel.Confidence
	edge.Metadata = mergeMetadata(edge.Metadata, rel.Metadata)
	return nil
}

// StoreExtraction persists one extraction result, entities first.
func (s *MemoryStore) StoreExtraction(ctx context.Context, result *models.ExtractionResult) error {
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

// Query is unsupported: the in-memory store has no query language.
func (s *MemoryStore) Query(ctx context.Context, query string, params map[string]interface{}) ([]map[string]interface{}, error) {
	return nil, fmt.Errorf("raw graph queries are not supported by the in-memory store")
}

// SearchEntities returns copies of entities whose name contains the given
// fragment.
func (s *MemoryStore) SearchEntities(ctx context.Context, name string, limit int) ([]*models.Entity, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var entities []*models.Entity
	for _, node := range s.nodes {
		if limit > 0 && len(entities) >= limit {
			break
		}
		if strings.Contains(node.Name, name) {
			entities = append(entities, copyEntity(node))
		}
	}
	return entities, nil
}

// EntityCount returns the number of nodes.
func (s *MemoryStore) EntityCount(ctx context.Context) (int64, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return int64(len(s.nodes)), nil
}

// RelationshipCount returns the number of edges.
func (s *MemoryStore) RelationshipCount(ctx context.Context) (int64, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return int64(len(s.edges)), nil
}

// GetEntity returns a copy of the node with the exact name, if present.
func (s *MemoryStore) GetEntity(name string) (*models.Entity, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	node, ok := s.nodes[name]
	if !ok {
		return nil, false
	}
	return copyEntity(node), true
}

// GetRelationship returns a copy of the edge with the exact identity
// triple, if present.
func (s *MemoryStore) GetRelationship(source, target, relType string) (*models.Relationship, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	edge, ok := s.edges[edgeKey{source: source, target: target, relTyp: relType}]
	if !ok {
		return nil, false
	}
	out := *edge
	out.Metadata = mergeMetadata(nil, edge.Metadata)
	return &out, true
}

func copyEntity(node *models.Entity) *models.Entity {
	out := *node
	out.Aliases = append([]string(nil), node.Aliases...)
	out.Metadata = mergeMetadata(nil, node.Metadata)
	return &out
}

// mergeMetadata overlays src onto dst key-by-key, allocating as needed.
// Keys present only in dst survive.
func mergeMetadata(dst, src map[string]interface{}) map[string]interface{} {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]interface{}, len(src))
	}
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
