package service

import (
	"context"
	"fmt"

	"github.com/Sportinger/argus/internal/extraction"
	"github.com/Sportinger/argus/internal/ingestion/store"
	"github.com/Sportinger/argus/internal/models"
	"github.com/Sportinger/argus/pkg/logger"
)

// IngestReport summarizes what one document contributed to the graph.
type IngestReport struct {
	RawSource     string `json:"raw_source"`
	Skipped       bool   `json:"skipped"`
	Entities      int    `json:"entities"`
	Relationships int    `json:"relationships"`
	Failed        int    `json:"failed"`
	Dangling      int    `json:"dangling"`
}

// IngestionService drives one document through extraction and into the
// graph store. Failures are isolated per entity/relationship: a single bad
// record is logged and counted, the rest of the document still lands.
type IngestionService struct {
	extractor extraction.Extractor
	graph     store.GraphStore
	seen      store.SeenStore // optional; nil disables dedup
	logger    *logger.Logger
}

// NewIngestionService creates a new IngestionService. seen may be nil.
func NewIngestionService(extractor extraction.Extractor, graph store.GraphStore, seen store.SeenStore, logger *logger.Logger) *IngestionService {
	return &IngestionService{
		extractor: extractor,
		graph:     graph,
		seen:      seen,
		logger:    logger,
	}
}

// IngestDocument extracts graph facts from one document and upserts them,
// entities before relationships.
func (s *IngestionService) IngestDocument(ctx context.Context, doc *models.RawDocument) (*IngestReport, error) {
	report := &IngestReport{}

	if key := dedupKey(doc); key != "" && s.seen != nil {
		isNew, err := s.seen.MarkIfNew(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to check seen marker: %w", err)
		}
		if !isNew {
			report.Skipped = true
			report.RawSource = doc.Source
			return report, nil
		}
	}

	result, err := s.extractor.Extract(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to extract document: %w", err)
	}
	report.RawSource = result.RawSource

	known := make(map[string]struct{}, len(result.Entities))
	for i := range result.Entities {
		entity := &result.Entities[i]
		if entity.Name == "" {
			report.Failed++
			continue
		}
		if err := s.graph.UpsertEntity(ctx, entity); err != nil {
			report.Failed++
			s.logger.WithError(models.ErrorInfo{Message: err.Error(), Type: "store_error"}).
				WithPayload(map[string]interface{}{"entity": entity.Name}).
				Error("failed to upsert entity")
			continue
		}
		known[entity.Name] = struct{}{}
		report.Entities++
	}

	for i := range result.Relationships {
		rel := &result.Relationships[i]

		// Endpoints missing from this extraction may still exist in the
		// graph from earlier documents, so the upsert is attempted either
		// way; the store will not fabricate nodes.
		if _, ok := known[rel.Source]; !ok {
			report.Dangling++
			s.logger.WithPayload(map[string]interface{}{
				"source": rel.Source, "target": rel.Target, "type": rel.Type,
			}).Warn("relationship references an entity absent from this extraction")
		} else if _, ok := known[rel.Target]; !ok {
			report.Dangling++
			s.logger.WithPayload(map[string]interface{}{
				"source": rel.Source, "target": rel.Target, "type": rel.Type,
			}).Warn("relationship references an entity absent from this extraction")
		}

		if err := s.graph.UpsertRelationship(ctx, rel); err != nil {
			report.Failed++
			s.logger.WithError(models.ErrorInfo{Message: err.Error(), Type: "store_error"}).
				WithPayload(map[string]interface{}{"source": rel.Source, "target": rel.Target, "type": rel.Type}).
				Error("failed to upsert relationship")
			continue
		}
		report.Relationships++
	}

	return report, nil
}

// dedupKey identifies a document across fetch windows. Documents with
// neither URL nor source ID are never deduplicated.
func dedupKey(doc *models.RawDocument) string {
	switch {
	case doc.URL != "":
		return doc.Source + ":" + doc.URL
	case doc.SourceID != "":
		return doc.Source + ":" + doc.SourceID
	default:
		return ""
	}
}
