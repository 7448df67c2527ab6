package extraction

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Sportinger/argus/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLLM returns a canned text response and records the last prompt.
type fakeLLM struct {
	response string
	err      error
	prompt   string
}

func (f *fakeLLM) GenerateContent(ctx context.Context, req *models.GenerateContentRequest) (*models.GenerateContentResponse, error) {
	if len(req.Content) > 0 && len(req.Content[0].Parts) > 0 {
		f.prompt = req.Content[0].Parts[0].Text
	}
	if f.err != nil {
		return nil, f.err
	}
	return &models.GenerateContentResponse{
		Content: []models.Content{
			{
				Role:  models.SpeakerModel,
				Parts: []*models.Part{{Text: f.response}},
			},
		},
	}, nil
}

func TestGraphExtractorExtract(t *testing.T) {
	llm := &fakeLLM{response: `{
		"entities": [
			{"name": "Alice", "type": "PERSON"},
			{"name": "Acme Corp", "type": "COMPANY", "aliases": ["Acme"], "metadata": {"country": "US"}}
		],
		"relationships": [
			{"source": "Alice", "target": "Acme Corp", "type": "WORKS_FOR", "confidence": 0.8}
		]
	}`}
	extractor := NewGraphExtractor(llm)

	doc := &models.RawDocument{
		Source:  "gdelt",
		URL:     "https://example.com/article",
		Content: "Alice works for Acme Corp.",
	}
	result, err := extractor.Extract(context.Background(), doc)
	require.NoError(t, err)

	require.Len(t, result.Entities, 2)
	assert.Equal(t, "Alice", result.Entities[0].Name)
	assert.Equal(t, "COMPANY", result.Entities[1].Type)
	assert.Equal(t, []string{"Acme"}, result.Entities[1].Aliases)

	require.Len(t, result.Relationships, 1)
	rel := result.Relationships[0]
	assert.Equal(t, "Alice", rel.Source)
	assert.Equal(t, "Acme Corp", rel.Target)
	assert.Equal(t, "WORKS_FOR", rel.Type)
	assert.Equal(t, 0.8, rel.Confidence)

	assert.Equal(t, "gdelt:https://example.com/article", result.RawSource)
	assert.WithinDuration(t, time.Now().UTC(), result.ExtractedAt, time.Minute)

	// The document body must reach the model.
	assert.True(t, strings.Contains(llm.prompt, doc.Content))
}

func TestGraphExtractorDefaultsConfidence(t *testing.T) {
	llm := &fakeLLM{response: `{
		"entities": [{"name": "Alice"}, {"name": "Bob"}],
		"relationships": [{"source": "Alice", "target": "Bob", "type": "KNOWS"}]
	}`}
	extractor := NewGraphExtractor(llm)

	result, err := extractor.Extract(context.Background(), &models.RawDocument{Source: "manual", Content: "x"})
	require.NoError(t, err)
	require.Len(t, result.Relationships, 1)
	assert.Equal(t, 1.0, result.Relationships[0].Confidence)

	// An explicit zero is kept, not treated as missing.
	llm.response = `{
		"entities": [{"name": "Alice"}, {"name": "Bob"}],
		"relationships": [{"source": "Alice", "target": "Bob", "type": "KNOWS", "confidence": 0}]
	}`
	result, err = extractor.Extract(context.Background(), &models.RawDocument{Source: "manual", Content: "x"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Relationships[0].Confidence)
}

func TestGraphExtractorStripsCodeFence(t *testing.T) {
	llm := &fakeLLM{response: "```json\n{\"entities\": [{\"name\": \"Alice\"}], \"relationships\": []}\n```"}
	extractor := NewGraphExtractor(llm)

	result, err := extractor.Extract(context.Background(), &models.RawDocument{Source: "manual", Content: "x"})
	require.NoError(t, err)
	require.Len(t, result.Entities, 1)
	assert.Equal(t, "Alice", result.Entities[0].Name)
}

func TestGraphExtractorRawSourceFallsBackToSourceID(t *testing.T) {
	llm := &fakeLLM{response: `{"entities": [], "relationships": []}`}
	extractor := NewGraphExtractor(llm)

	result, err := extractor.Extract(context.Background(), &models.RawDocument{
		Source:   "opencorporates",
		SourceID: "de:HRB12345",
		Content:  "x",
	})
	require.NoError(t, err)
	assert.Equal(t, "opencorporates:de:HRB12345", result.RawSource)

	result, err = extractor.Extract(context.Background(), &models.RawDocument{Source: "manual", Content: "x"})
	require.NoError(t, err)
	assert.Equal(t, "manual", result.RawSource)
}

func TestGraphExtractorErrors(t *testing.T) {
	cases := []struct {
		name string
		llm  *fakeLLM
	}{
		{name: "llm failure", llm: &fakeLLM{err: errors.New("model unavailable")}},
		{name: "malformed json", llm: &fakeLLM{response: "I could not find any entities."}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			extractor := NewGraphExtractor(tc.llm)
			_, err := extractor.Extract(context.Background(), &models.RawDocument{Source: "manual", Content: "x"})
			assert.Error(t, err)
		})
	}
}

type emptyLLM struct{}

func (emptyLLM) GenerateContent(ctx context.Context, req *models.GenerateContentRequest) (*models.GenerateContentResponse, error) {
	return &models.GenerateContentResponse{}, nil
}

func TestGraphExtractorRejectsEmptyResponse(t *testing.T) {
	extractor := NewGraphExtractor(emptyLLM{})
	_, err := extractor.Extract(context.Background(), &models.RawDocument{Source: "manual", Content: "x"})
	assert.Error(t, err)
}

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: `{"a":1}`, want: `{"a":1}`},
		{in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{in: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{in: "  {\"a\":1}  ", want: `{"a":1}`},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, stripCodeFence(tc.in))
	}
}
