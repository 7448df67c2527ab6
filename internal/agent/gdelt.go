package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Sportinger/argus/internal/config"
	"github.com/Sportinger/argus/internal/models"
	httpclient "github.com/Sportinger/argus/pkg/http"
)

// gdeltAPI is the GDELT DOC 2.0 article search endpoint.
const gdeltAPI = "https://api.gdeltproject.org/api/v2/doc/doc"

const gdeltDefaultMaxRecords = 250

// GDELTAgent ingests global news articles from the GDELT project.
type GDELTAgent struct {
	client     *httpclient.Client
	baseURL    string
	query      string
	maxRecords int
}

type gdeltResponse struct {
	Articles []gdeltArticle `json:"articles"`
}

type gdeltArticle struct {
	URL           string `json:"url"`
	Title         string `json:"title"`
	Language      string `json:"language"`
	Domain        string `json:"domain"`
	SourceCountry string `json:"sourcecountry"`
	SeenDate      string `json:"seendate"`
}

// NewGDELTAgent creates a GDELT agent from its source configuration.
func NewGDELTAgent(cfg config.AgentConfig, client *httpclient.Client) *GDELTAgent {
	maxRecords := cfg.MaxRecords
	if maxRecords <= 0 {
		maxRecords = gdeltDefaultMaxRecords
	}
	return &GDELTAgent{
		client:     client,
		baseURL:    gdeltAPI,
		query:      cfg.Query,
		maxRecords: maxRecords,
	}
}

// Name implements Agent.
func (a *GDELTAgent) Name() string {
	return "gdelt"
}

// Fetch returns the most recent article window from the GDELT DOC API.
func (a *GDELTAgent) Fetch(ctx context.Context) ([]models.RawDocument, error) {
	params := url.Values{}
	params.Set("query", a.query)
	params.Set("mode", "ArtList")
	params.Set("maxrecords", strconv.Itoa(a.maxRecords))
	params.Set("format", "json")
	params.Set("sort", "DateDesc")

	var data gdeltResponse
	if err := getJSON(ctx, a.client, a.baseURL, params, &data); err != nil {
		return nil, fmt.Errorf("gdelt fetch: %w", err)
	}

	now := time.Now().UTC()
	docs := make([]models.RawDocument, 0, len(data.Articles))
	for _, article := range data.Articles {
		docs = append(docs, models.RawDocument{
			Source:      a.Name(),
			URL:         article.URL,
			Title:       article.Title,
			Content:     article.Title,
			CollectedAt: now,
			Metadata: map[string]interface{}{
				"language": article.Language,
				"domain":   article.Domain,
				"country":  article.SourceCountry,
				"seendate": article.SeenDate,
			},
		})
	}
	return docs, nil
}

// HealthCheck probes the API with a minimal query.
func (a *GDELTAgent) HealthCheck(ctx context.Context) bool {
	params := url.Values{}
	params.Set("query", "test")
	params.Set("mode", "ArtList")
	params.Set("maxrecords", "1")
	params.Set("format", "json")

	return probe(ctx, a.client, a.baseURL, params)
}

// getJSON performs a GET with query parameters and decodes a JSON body.
// A non-2xx status is an error.
func getJSON(ctx context.Context, client *httpclient.Client, baseURL string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

// probe performs a GET and reports whether the source answered with 200.
// Any failure, transport-level included, resolves to false.
func probe(ctx context.Context, client *httpclient.Client, baseURL string, params url.Values) bool {
	u := baseURL
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false
	}

	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}
