// Package record defines the search record model persisted to the remote
// index, and the builder that assembles records from extracted page data.
package record

// Source identifies which content family a page belongs to.
type Source string

const (
	// SourceGuide marks hand-authored narrative documentation.
	SourceGuide Source = "guide"
	// SourceReference marks auto-generated API/library reference pages.
	SourceReference Source = "reference"
)

// Level is the record's depth in the search UI hierarchy.
type Level string

const (
	Lvl1 Level = "lvl1"
	Lvl2 Level = "lvl2"
	Lvl3 Level = "lvl3"
)

// Hierarchy is the ordered grouping path for a record, from broadest (lvl0)
// to most specific. Lvl0 is always populated; deeper levels are nil when the
// record does not reach them.
type Hierarchy struct {
	Lvl0 string  `json:"lvl0"`
	Lvl1 *string `json:"lvl1"`
	Lvl2 *string `json:"lvl2"`
	Lvl3 *string `json:"lvl3"`
	Lvl4 *string `json:"lvl4"`
	Lvl5 *string `json:"lvl5"`
	Lvl6 *string `json:"lvl6"`
}

// Lvl0 values, fully determined by Source.
const (
	Lvl0Guides     = "Guides"
	Lvl0References = "References"
)

// Overrides carries the reference-specific fields a classifier applies on
// top of a record's guide-shaped defaults.
type Overrides struct {
	// Category is the raw path segment after the reference marker.
	Category string
	// Version is the version token, empty for unversioned trees.
	Version string
	// Type is the record's depth in the search hierarchy. Empty means
	// the classifier found nothing deeper than the category and the
	// record keeps its defaults.
	Type Level
	// Lvl1..Lvl3 replace the record's hierarchy when Type is set. A
	// nil Lvl1 stands for an unmapped display name and stays null.
	Lvl1 *string
	Lvl2 *string
	Lvl3 *string
}

// SearchRecord is the unit persisted to the remote search index, one per page.
type SearchRecord struct {
	// ObjectID is the unique identifier required by the index service.
	// Generated fresh per build; no stability across rebuilds.
	ObjectID string `json:"objectID"`

	ID          *string `json:"id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`

	// URL is the canonical public path: root prefix and content
	// extension stripped, generated segments removed.
	URL string `json:"url"`

	Source      Source `json:"source"`
	PageContent string `json:"pageContent"`

	// Category and Version are populated for reference pages only.
	Category *string `json:"category"`
	Version  *string `json:"version"`

	Type      Level     `json:"type"`
	Hierarchy Hierarchy `json:"hierarchy"`
}
