package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
app:
  name: argus
  version: "0.1.0"
logger:
  level: debug
llm:
  provider: ollama
  models:
    - name: llama3
      baseURL: http://localhost:11434
databases:
  neo4j:
    uri: bolt://localhost:7687
    username: neo4j
    password: secret
    database: neo4j
  redis:
    address: localhost:6379
    db: 0
    seenTTL: 86400
  kafka:
    brokers:
      - localhost:9092
    documentTopic: raw-documents
    groupID: argus-ingestion
agents:
  - name: gdelt
    enabled: true
    maxRecords: 100
    query: sanctions
  - name: adsb
    enabled: false
middleware:
  rateLimiter:
    enabled: true
    algorithm: tokenBucket
    rate: 5
    capacity: 10
  circuitBreaker:
    enabled: true
    failureThreshold: 3
    successThreshold: 2
    timeout: 30s
`

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfigFile(t, validYAML))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.App.Name != "argus" {
		t.Errorf("App.Name = %q, want %q", cfg.App.Name, "argus")
	}
	if cfg.Databases.Neo4j.Uri != "bolt://localhost:7687" {
		t.Errorf("Neo4j.Uri = %q", cfg.Databases.Neo4j.Uri)
	}
	if cfg.Databases.Redis.SeenTTL != 86400 {
		t.Errorf("Redis.SeenTTL = %d, want 86400", cfg.Databases.Redis.SeenTTL)
	}
	if len(cfg.Databases.Kafka.Brokers) != 1 || cfg.Databases.Kafka.Brokers[0] != "localhost:9092" {
		t.Errorf("Kafka.Brokers = %v", cfg.Databases.Kafka.Brokers)
	}
	if cfg.LLM.Provider != "ollama" {
		t.Errorf("LLM.Provider = %q, want %q", cfg.LLM.Provider, "ollama")
	}
	if len(cfg.Agents) != 2 {
		t.Fatalf("len(Agents) = %d, want 2", len(cfg.Agents))
	}
	if !cfg.Agents[0].Enabled || cfg.Agents[0].Name != "gdelt" {
		t.Errorf("Agents[0] = %+v", cfg.Agents[0])
	}
	if cfg.Agents[1].Enabled {
		t.Error("Agents[1].Enabled = true, want false")
	}
	if cfg.Middleware.CircuitBreaker.Timeout != "30s" {
		t.Errorf("CircuitBreaker.Timeout = %q, want %q", cfg.Middleware.CircuitBreaker.Timeout, "30s")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadConfig() expected an error for a missing file")
	}
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	path := writeConfigFile(t, "app: [unclosed")
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() expected an error for malformed YAML")
	}
}

func TestLoadConfigRequiresNeo4jCredentials(t *testing.T) {
	incomplete := `
databases:
  neo4j:
    uri: bolt://localhost:7687
    username: neo4j
`
	if _, err := LoadConfig(writeConfigFile(t, incomplete)); err == nil {
		t.Error("LoadConfig() expected an error for missing neo4j password")
	}
}
