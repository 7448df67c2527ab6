package agent

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Sportinger/argus/internal/config"
	httpclient "github.com/Sportinger/argus/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient builds an outbound client with all middleware disabled.
func newTestClient(t *testing.T) *httpclient.Client {
	t.Helper()
	client, err := httpclient.NewClient(config.MiddlewareConfig{})
	require.NoError(t, err)
	return client
}

func TestGDELTAgentFetch(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"query":      r.URL.Query().Get("query"),
			"mode":       r.URL.Query().Get("mode"),
			"maxrecords": r.URL.Query().Get("maxrecords"),
			"format":     r.URL.Query().Get("format"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"articles": [
			{"url": "https://example.com/a", "title": "Acme buys Globex", "language": "English", "domain": "example.com", "sourcecountry": "US", "seendate": "20260829T120000Z"}
		]}`))
	}))
	defer server.Close()

	agent := NewGDELTAgent(config.AgentConfig{Query: "sanctions", MaxRecords: 50}, newTestClient(t))
	agent.baseURL = server.URL

	docs, err := agent.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "sanctions", gotQuery["query"])
	assert.Equal(t, "ArtList", gotQuery["mode"])
	assert.Equal(t, "50", gotQuery["maxrecords"])
	assert.Equal(t, "json", gotQuery["format"])

	require.Len(t, docs, 1)
	doc := docs[0]
	assert.Equal(t, "gdelt", doc.Source)
	assert.Equal(t, "https://example.com/a", doc.URL)
	assert.Equal(t, "Acme buys Globex", doc.Title)
	assert.Equal(t, "Acme buys Globex", doc.Content)
	assert.False(t, doc.CollectedAt.IsZero())
	assert.Equal(t, "US", doc.Metadata["country"])
	assert.Equal(t, "example.com", doc.Metadata["domain"])
}

func TestGDELTAgentDefaultsMaxRecords(t *testing.T) {
	agent := NewGDELTAgent(config.AgentConfig{}, newTestClient(t))
	assert.Equal(t, gdeltDefaultMaxRecords, agent.maxRecords)
}

func TestGDELTAgentFetchUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	agent := NewGDELTAgent(config.AgentConfig{}, newTestClient(t))
	agent.baseURL = server.URL

	_, err := agent.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGDELTAgentHealthCheck(t *testing.T) {
	status := http.StatusOK
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	defer server.Close()

	agent := NewGDELTAgent(config.AgentConfig{}, newTestClient(t))
	agent.baseURL = server.URL

	assert.True(t, agent.HealthCheck(context.Background()))

	status = http.StatusInternalServerError
	assert.False(t, agent.HealthCheck(context.Background()))

	// Unreachable endpoint also folds to unhealthy.
	server.Close()
	assert.False(t, agent.HealthCheck(context.Background()))
}
