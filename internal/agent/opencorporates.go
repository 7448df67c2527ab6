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

// openCorporatesAPI is the OpenCorporates company search endpoint.
const openCorporatesAPI = "https://api.opencorporates.com/v0.4/companies/search"

const openCorporatesDefaultPerPage = 100

// OpenCorporatesAgent ingests company registry records from OpenCorporates.
type OpenCorporatesAgent struct {
	client  *httpclient.Client
	baseURL string
	query   string
	perPage int
	apiKey  string
}

type openCorporatesResponse struct {
	Results struct {
		Companies []struct {
			Company openCorporatesCompany `json:"company"`
		} `json:"companies"`
	} `json:"results"`
}

type openCorporatesCompany struct {
	Name              string `json:"name"`
	CompanyNumber     string `json:"company_number"`
	JurisdictionCode  string `json:"jurisdiction_code"`
	CompanyType       string `json:"company_type"`
	IncorporationDate string `json:"incorporation_date"`
	CurrentStatus     string `json:"current_status"`
	Inactive          bool   `json:"inactive"`
	OpenCorporatesURL string `json:"opencorporates_url"`
	RegisteredAddress string `json:"registered_address_in_full"`
	RegistryURL       string `json:"registry_url"`
}

// NewOpenCorporatesAgent creates an OpenCorporates agent from its source
// configuration.
func NewOpenCorporatesAgent(cfg config.AgentConfig, client *httpclient.Client) *OpenCorporatesAgent {
	perPage := cfg.MaxRecords
	if perPage <= 0 {
		perPage = openCorporatesDefaultPerPage
	}
	return &OpenCorporatesAgent{
		client:  client,
		baseURL: openCorporatesAPI,
		query:   cfg.Query,
		perPage: perPage,
		apiKey:  cfg.APIKey,
	}
}

// Name implements Agent.
func (a *OpenCorporatesAgent) Name() string {
	return "opencorporates"
}

// Fetch returns one page of company records matching the configured query.
func (a *OpenCorporatesAgent) Fetch(ctx context.Context) ([]models.RawDocument, error) {
	params := url.Values{}
	params.Set("q", a.query)
	params.Set("per_page", strconv.Itoa(a.perPage))
	params.Set("order", "score")
	if a.apiKey != "" {
		params.Set("api_token", a.apiKey)
	}

	var data openCorporatesResponse
	if err := getJSON(ctx, a.client, a.baseURL, params, &data); err != nil {
		return nil, fmt.Errorf("opencorporates fetch: %w", err)
	}

	now := time.Now().UTC()
	docs := make([]models.RawDocument, 0, len(data.Results.Companies))
	for _, wrapper := range data.Results.Companies {
		company := wrapper.Company
		sourceID := fmt.Sprintf("%s:%s", company.JurisdictionCode, company.CompanyNumber)
		docs = append(docs, models.RawDocument{
			Source:      a.Name(),
			SourceID:    sourceID,
			Title:       company.Name,
			URL:         company.OpenCorporatesURL,
			Content:     fmt.Sprintf("Company: %s. Jurisdiction: %s. Number: %s. Status: %s.", company.Name, company.JurisdictionCode, company.CompanyNumber, company.CurrentStatus),
			CollectedAt: now,
			Metadata: map[string]interface{}{
				"jurisdiction_code":  company.JurisdictionCode,
				"company_number":     company.CompanyNumber,
				"company_type":       company.CompanyType,
				"incorporation_date": company.IncorporationDate,
				"current_status":     company.CurrentStatus,
				"inactive":           company.Inactive,
				"registered_address": company.RegisteredAddress,
				"registry_url":       company.RegistryURL,
			},
		})
	}
	return docs, nil
}

// HealthCheck probes the search endpoint with a single-result query.
func (a *OpenCorporatesAgent) HealthCheck(ctx context.Context) bool {
	params := url.Values{}
	params.Set("q", "test")
	params.Set("per_page", "1")
	if a.apiKey != "" {
		params.Set("api_token", a.apiKey)
	}

	return probe(ctx, a.client, a.baseURL, params)
}
