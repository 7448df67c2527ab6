package models

import "time"

// RawDocument is the uniform representation every ingestion agent produces,
// regardless of the upstream source. It is created once per fetched item,
// treated as immutable, and consumed exactly once by the extraction step;
// the raw text is never persisted.
type RawDocument struct {
	// Source is the name of the agent that produced the document. Never empty.
	Source string `json:"source"`

	// SourceID is the source-native identifier of the item, when one exists.
	SourceID string `json:"source_id,omitempty"`

	// Title is a short human-readable label for the item, when one exists.
	Title string `json:"title,omitempty"`

	// URL is the origin locator of the item, when one exists.
	URL string `json:"url,omitempty"`

	// Content is the textual payload handed to extraction. May be empty.
	Content string `json:"content"`

	// CollectedAt is the time the agent fetched the item.
	CollectedAt time.Time `json:"collected_at,omitempty"`

	// Metadata carries source-specific fields (language, domain, country,
	// seen-date, ...) as loosely typed values.
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}
