package agent

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Sportinger/argus/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestADSBAgentFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"time": 1756464000, "states": [
			["3c6444", "DLH9U   ", "Germany", 1756463990, 1756463999, 6.5, 49.3, 11277.6, false, 245.2],
			["abcdef", null, "United States", null, null, null, null, null, true, null],
			[null, "GHOST", "Nowhere"]
		]}`))
	}))
	defer server.Close()

	agent := NewADSBAgent(config.AgentConfig{}, newTestClient(t))
	agent.baseURL = server.URL

	docs, err := agent.Fetch(context.Background())
	require.NoError(t, err)

	// The vector without an ICAO24 address is dropped.
	require.Len(t, docs, 2)

	doc := docs[0]
	assert.Equal(t, "adsb", doc.Source)
	assert.Equal(t, "3c6444", doc.SourceID)
	assert.Equal(t, "DLH9U", doc.Title)
	assert.Contains(t, doc.Content, "DLH9U")
	assert.Contains(t, doc.Content, "Germany")
	assert.Equal(t, "DLH9U", doc.Metadata["callsign"])
	assert.Equal(t, 6.5, doc.Metadata["longitude"])
	assert.Equal(t, 49.3, doc.Metadata["latitude"])
	assert.Equal(t, false, doc.Metadata["on_ground"])

	// No callsign: the ICAO24 address labels the aircraft and the null
	// numeric fields stay nil instead of becoming zeros.
	doc = docs[1]
	assert.Equal(t, "abcdef", doc.Title)
	assert.Equal(t, true, doc.Metadata["on_ground"])
	assert.Nil(t, doc.Metadata["longitude"])
}

func TestADSBAgentFetchHonorsMaxRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"time": 0, "states": [
			["aaa111", "A", "X"],
			["bbb222", "B", "X"],
			["ccc333", "C", "X"]
		]}`))
	}))
	defer server.Close()

	agent := NewADSBAgent(config.AgentConfig{MaxRecords: 2}, newTestClient(t))
	agent.baseURL = server.URL

	docs, err := agent.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}
