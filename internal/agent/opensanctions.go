package agent

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/Sportinger/argus/internal/config"
	"github.com/Sportinger/argus/internal/models"
	httpclient "github.com/Sportinger/argus/pkg/http"
)

// openSanctionsAPI is the OpenSanctions entity search endpoint.
const openSanctionsAPI = "https://api.opensanctions.org/search/default"

const openSanctionsDefaultLimit = 100

// OpenSanctionsAgent ingests sanctioned entities from the OpenSanctions
// consolidated dataset.
type OpenSanctionsAgent struct {
	client  *httpclient.Client
	baseURL string
	query   string
	limit   int
	apiKey  string
}

type openSanctionsResponse struct {
	Results []openSanctionsEntity `json:"results"`
}

type openSanctionsEntity struct {
	ID         string                 `json:"id"`
	Caption    string                 `json:"caption"`
	Schema     string                 `json:"schema"`
	Datasets   []string               `json:"datasets"`
	Properties map[string]interface{} `json:"properties"`
	FirstSeen  string                 `json:"first_seen"`
	LastSeen   string                 `json:"last_seen"`
	Target     bool                   `json:"target"`
}

// NewOpenSanctionsAgent creates an OpenSanctions agent from its source
// configuration.
func NewOpenSanctionsAgent(cfg config.AgentConfig, client *httpclient.Client) *OpenSanctionsAgent {
	limit := cfg.MaxRecords
	if limit <= 0 {
		limit = openSanctionsDefaultLimit
	}
	return &OpenSanctionsAgent{
		client:  client,
		baseURL: openSanctionsAPI,
		query:   cfg.Query,
		limit:   limit,
		apiKey:  cfg.APIKey,
	}
}

// Name implements Agent.
func (a *OpenSanctionsAgent) Name() string {
	return "opensanctions"
}

// Fetch returns a window of sanctioned entities matching the configured query.
func (a *OpenSanctionsAgent) Fetch(ctx context.Context) ([]models.RawDocument, error) {
	params := url.Values{}
	params.Set("q", a.query)
	params.Set("limit", strconv.Itoa(a.limit))
	if a.apiKey != "" {
		params.Set("api_key", a.apiKey)
	}

	var data openSanctionsResponse
	if err := getJSON(ctx, a.client, a.baseURL, params, &data); err != nil {
		return nil, fmt.Errorf("opensanctions fetch: %w", err)
	}

	now := time.Now().UTC()
	docs := make([]models.RawDocument, 0, len(data.Results))
	for _, entity := range data.Results {
		name := entity.Caption
		if name == "" {
			name = entity.ID
		}
		docs = append(docs, models.RawDocument{
			Source:      a.Name(),
			SourceID:    entity.ID,
			Title:       name,
			URL:         "https://api.opensanctions.org/entities/" + entity.ID,
			Content:     fmt.Sprintf("Sanctioned entity: %s (Schema: %s). ID: %s", name, entity.Schema, entity.ID),
			CollectedAt: now,
			Metadata: map[string]interface{}{
				"schema":     entity.Schema,
				"datasets":   entity.Datasets,
				"properties": entity.Properties,
				"first_seen": entity.FirstSeen,
				"last_seen":  entity.LastSeen,
				"target":     entity.Target,
			},
		})
	}
	return docs, nil
}

// HealthCheck probes the search endpoint with a single-result query.
func (a *OpenSanctionsAgent) HealthCheck(ctx context.Context) bool {
	params := url.Values{}
	params.Set("q", "test")
	params.Set("limit", "1")
	if a.apiKey != "" {
		params.Set("api_key", a.apiKey)
	}

	return probe(ctx, a.client, a.baseURL, params)
}
