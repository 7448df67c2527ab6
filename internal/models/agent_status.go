package models

// AgentStatus is a point-in-time liveness snapshot of one ingestion agent,
// as reported by a registry health sweep.
type AgentStatus struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Error   string `json:"error,omitempty"`
}
