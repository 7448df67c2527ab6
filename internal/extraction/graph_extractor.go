package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Sportinger/argus/internal/llm"
	"github.com/Sportinger/argus/internal/models"
)

const extractGraphPrompt = `
You are an advanced algorithm designed to extract structured information from text to construct knowledge graphs. Your goal is to capture comprehensive and accurate information. Follow these key principles:

1. Extract only explicitly stated information from the text.
2. Establish relationships among the entities provided.
3. Use one stable, human-legible name per real-world entity; never emit two different names for the same entity within one document.

Entities:
    - Each entity has a "name", a "type" (PERSON, COMPANY, LOCATION, EVENT, ASSET, or another UPPERCASE tag), optional "aliases", and optional "metadata".

Relationships:
    - Use consistent, general, and timeless relationship types in UPPERCASE (OWNS, FUNDS, LOCATED_IN, CONNECTED_TO, PURCHASED, ...).
    - "source" and "target" must be names from the entities list.
    - "confidence" is a number between 0.0 and 1.0 reflecting how explicitly the text states the relationship.

Respond with a single JSON object of the form:
{"entities": [{"name": "...", "type": "...", "aliases": [], "metadata": {}}], "relationships": [{"source": "...", "target": "...", "type": "...", "confidence": 1.0, "metadata": {}}]}

Do not include any other text in the response.`

// GraphExtractor is an implementation of the Extractor interface that uses
// an LLM to extract entities and relationships from a document.
type GraphExtractor struct {
	llm llm.LLM
}

// NewGraphExtractor creates a new GraphExtractor.
func NewGraphExtractor(llm llm.LLM) *GraphExtractor {
	return &GraphExtractor{llm: llm}
}

// extractedRelationship mirrors models.Relationship with a nullable
// confidence so an omitted value can be defaulted to 1.0.
type extractedRelationship struct {
	Source     string                 `json:"source"`
	Target     string                 `json:"target"`
	Type       string                 `json:"type"`
	Confidence *float64               `json:"confidence"`
	Metadata   map[string]interface{} `json:"metadata"`
}

// Extract extracts graph facts from a RawDocument using an LLM.
func (e *GraphExtractor) Extract(ctx context.Context, doc *models.RawDocument) (*models.ExtractionResult, error) {
	prompt := fmt.Sprintf("%s\n\nDocument:\n%s", extractGraphPrompt, doc.Content)

	llmReq := &models.GenerateContentRequest{
		Content: []models.Content{
			{
				Role:  models.SpeakerUser,
				Parts: []*models.Part{{Text: prompt}},
			},
		},
	}
	llmResp, err := e.llm.GenerateContent(ctx, llmReq)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}
	if len(llmResp.Content) == 0 || len(llmResp.Content[0].Parts) == 0 {
		return nil, fmt.Errorf("llm returned an empty response")
	}

	var response struct {
		Entities      []models.Entity         `json:"entities"`
		Relationships []extractedRelationship `json:"relationships"`
	}

	jsonString := stripCodeFence(llmResp.Content[0].Parts[0].Text)
	if err := json.Unmarshal([]byte(jsonString), &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	result := &models.ExtractionResult{
		Entities:    response.Entities,
		RawSource:   rawSource(doc),
		ExtractedAt: time.Now().UTC(),
	}
	for _, rel := range response.Relationships {
		confidence := 1.0
		if rel.Confidence != nil {
			confidence = *rel.Confidence
		}
		result.Relationships = append(result.Relationships, models.Relationship{
			Source:     rel.Source,
			Target:     rel.Target,
			Type:       rel.Type,
			Confidence: confidence,
			Metadata:   rel.Metadata,
		})
	}

	return result, nil
}

// rawSource builds the provenance string recorded on the extraction result.
func rawSource(doc *models.RawDocument) string {
	switch {
	case doc.URL != "":
		return fmt.Sprintf("%s:%s", doc.Source, doc.URL)
	case doc.SourceID != "":
		return fmt.Sprintf("%s:%s", doc.Source, doc.SourceID)
	default:
		return doc.Source
	}
}

// stripCodeFence removes a surrounding markdown code fence. Models sometimes
// wrap the JSON object even when told not to.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
