package domain

import "time"

// Link is the durable record for one entry on the start page.
// The collection invariant is that URL is unique case-insensitively
// and ID is never reused.
type Link struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is an opaque unique identifier assigned at creation.
	ID string `json:"id"`

	// ─────────────────────────────
	// User-visible fields
	// ─────────────────────────────

	// Name is the sanitized display title (never empty).
	Name string `json:"name"`

	// URL is always absolute and starts with http:// or https://.
	URL string `json:"url"`

	// Tags holds flat tags ("Dev") and hierarchical tags
	// ("Dev > Frontend"). Insertion order is kept but the field is
	// semantically a set.
	Tags []string `json:"tags"`

	// Description is optional free text.
	Description string `json:"description,omitempty"`

	// Order is the manual sort position within the collection.
	Order int `json:"order"`

	// ─────────────────────────────
	// Usage tracking
	// ─────────────────────────────

	ClickCount  int64      `json:"clickCount"`
	LastClicked *time.Time `json:"lastClicked,omitempty"`

	// ─────────────────────────────
	// Provenance
	// ─────────────────────────────

	// CreatedAt is set once at creation and never mutated.
	CreatedAt time.Time `json:"createdAt"`

	// Source records where the link came from ("rc", "import", "manual").
	Source string `json:"source,omitempty"`

	// ImportedAt is set only for links created by a bookmark import.
	ImportedAt *time.Time `json:"importedAt,omitempty"`
}

// RawBookmark is the transient record emitted by a bookmark source
// parser before normalization. It is owned by the parse pass that
// produced it and is never persisted.
type RawBookmark struct {
	Name        string
	URL         string
	FolderPath  []string // root → leaf, may be empty
	Description string

	// Export metadata, kept when the source provides it.
	AddDate      time.Time
	LastModified time.Time
	Icon         string
}

// Candidate is a pre-insertion link: everything the store needs to
// create a Link except the fields it assigns itself (ID, Order,
// CreatedAt, click counters). It is the shape that crosses the
// import/RC boundary.
type Candidate struct {
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	Tags        []string  `json:"tags"`
	Description string    `json:"description,omitempty"`
	Source      string    `json:"source,omitempty"`
	ImportedAt  time.Time `json:"importedAt,omitzero"`
}
