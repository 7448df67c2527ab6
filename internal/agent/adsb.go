package agent

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Sportinger/argus/internal/config"
	"github.com/Sportinger/argus/internal/models"
	httpclient "github.com/Sportinger/argus/pkg/http"
)

// openSkyAPI is the OpenSky Network live state vector endpoint.
const openSkyAPI = "https://opensky-network.org/api/states/all"

const adsbDefaultMaxRecords = 500

// ADSBAgent ingests live aircraft position reports from the OpenSky Network.
// Each state vector becomes one document describing an aircraft sighting.
type ADSBAgent struct {
	client     *httpclient.Client
	baseURL    string
	maxRecords int
}

// openSkyResponse carries state vectors as positional arrays; see the
// OpenSky REST documentation for the index layout.
type openSkyResponse struct {
	Time   int64           `json:"time"`
	States [][]interface{} `json:"states"`
}

// NewADSBAgent creates an ADS-B agent from its source configuration.
func NewADSBAgent(cfg config.AgentConfig, client *httpclient.Client) *ADSBAgent {
	maxRecords := cfg.MaxRecords
	if maxRecords <= 0 {
		maxRecords = adsbDefaultMaxRecords
	}
	return &ADSBAgent{
		client:     client,
		baseURL:    openSkyAPI,
		maxRecords: maxRecords,
	}
}

// Name implements Agent.
func (a *ADSBAgent) Name() string {
	return "adsb"
}

// Fetch returns a bounded snapshot of live aircraft state vectors.
func (a *ADSBAgent) Fetch(ctx context.Context) ([]models.RawDocument, error) {
	var data openSkyResponse
	if err := getJSON(ctx, a.client, a.baseURL, url.Values{}, &data); err != nil {
		return nil, fmt.Errorf("adsb fetch: %w", err)
	}

	now := time.Now().UTC()
	docs := make([]models.RawDocument, 0, a.maxRecords)
	for _, sv := range data.States {
		if len(docs) >= a.maxRecords {
			break
		}
		doc, ok := a.parseStateVector(sv, now)
		if ok {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// parseStateVector maps one OpenSky positional state vector into a document.
// Index layout: 0 icao24, 1 callsign, 2 origin_country, 5 longitude,
// 6 latitude, 7 baro_altitude, 8 on_ground, 9 velocity.
func (a *ADSBAgent) parseStateVector(sv []interface{}, collectedAt time.Time) (models.RawDocument, bool) {
	icao24 := stringAt(sv, 0)
	if icao24 == "" {
		return models.RawDocument{}, false
	}
	callsign := strings.TrimSpace(stringAt(sv, 1))
	country := stringAt(sv, 2)

	label := callsign
	if label == "" {
		label = icao24
	}

	return models.RawDocument{
		Source:      a.Name(),
		SourceID:    icao24,
		Title:       label,
		Content:     fmt.Sprintf("Aircraft %s (ICAO24 %s) from %s observed in flight.", label, icao24, country),
		CollectedAt: collectedAt,
		Metadata: map[string]interface{}{
			"icao24":         icao24,
			"callsign":       callsign,
			"origin_country": country,
			"longitude":      floatAt(sv, 5),
			"latitude":       floatAt(sv, 6),
			"baro_altitude":  floatAt(sv, 7),
			"on_ground":      boolAt(sv, 8),
			"velocity":       floatAt(sv, 9),
		},
	}, true
}

// HealthCheck probes the state endpoint.
func (a *ADSBAgent) HealthCheck(ctx context.Context) bool {
	return probe(ctx, a.client, a.baseURL, url.Values{})
}

func stringAt(sv []interface{}, i int) string {
	if i >= len(sv) {
		return ""
	}
	s, _ := sv[i].(string)
	return s
}

func floatAt(sv []interface{}, i int) interface{} {
	if i >= len(sv) {
		return nil
	}
	if f, ok := sv[i].(float64); ok {
		return f
	}
	return nil
}

func boolAt(sv []interface{}, i int) bool {
	if i >= len(sv) {
		return false
	}
	b, _ := sv[i].(bool)
	return b
}
