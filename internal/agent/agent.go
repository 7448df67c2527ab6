package agent

import (
	"context"

	"github.com/Sportinger/argus/internal/models"
)

// Agent is the capability contract every ingestion source implements.
// Implementations are stateless between calls: Fetch performs purely
// read-only network calls and maps source-native items into the uniform
// RawDocument representation.
type Agent interface {
	// Name returns the stable identifier of the source. Every document the
	// agent produces carries this value in its Source field.
	Name() string

	// Fetch returns a bounded batch of new documents as of this call. The
	// contract mandates no pagination or cursor state; a source may return a
	// fixed-size recent window. Transport failures, non-2xx statuses and
	// malformed payloads surface as errors, never as a silent empty batch.
	Fetch(ctx context.Context) ([]models.RawDocument, error)

	// HealthCheck probes the source and reports liveness. Reachability
	// failures resolve to false instead of an error.
	HealthCheck(ctx context.Context) bool
}
