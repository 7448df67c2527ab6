package models

import "time"

// Entity is a node candidate extracted from a document.
//
// Name is the identity key: two entities are the same node if and only if
// their names are exactly equal (case-sensitive, no normalization). The
// graph store enforces this; nothing else in the pipeline does.
type Entity struct {
	Name string `json:"name"`

	// Type is an open-ended tag: PERSON, COMPANY, LOCATION, EVENT, ASSET, ...
	Type string `json:"type"`

	// Aliases are alternate names. Descriptive only, not part of identity.
	Aliases []string `json:"aliases,omitempty"`

	// Metadata is merged key-by-key on repeated upserts (last writer wins
	// per key; untouched keys survive).
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Relationship is a directed edge candidate between two entities, referenced
// by name. The identity key of an edge is the (Source, Target, Type) triple.
type Relationship struct {
	Source string `json:"source"`
	Target string `json:"target"`

	// Type is an open-ended tag: OWNS, FUNDS, LOCATED_IN, CONNECTED_TO, ...
	Type string `json:"type"`

	// Confidence is in [0.0, 1.0] by convention; callers are trusted, no
	// clamping happens anywhere. Defaults to 1.0 when absent from extraction
	// output.
	Confidence float64 `json:"confidence"`

	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// ExtractionResult is the structured output of mining one document.
// Entities may include nodes no relationship references; relationships
// should reference names present in Entities, but the store tolerates
// partial extraction (the edge simply does not materialize).
type ExtractionResult struct {
	Entities      []Entity       `json:"entities"`
	Relationships []Relationship `json:"relationships"`

	// RawSource records which agent/document produced this result.
	RawSource string `json:"raw_source"`

	ExtractedAt time.Time `json:"extracted_at,omitempty"`
}
