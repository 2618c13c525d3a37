// Package manual implements the navigation and search core of the embedded help manual.
// Content payloads are opaque: the core selects among them but never inspects them.
package manual

// Section is a top-level topic grouping. Its subsections are kept in display order.
type Section[C any] struct {
	ID          string
	Title       string
	Subsections []Subsection[C]
}

// Subsection is a single manual page with per-level content variants.
type Subsection[C any] struct {
	ID             string
	Title          string
	Content        map[Level]C
	SearchKeywords []string
}

// Position identifies a subsection within the catalog.
type Position struct {
	SectionID    string `json:"section"`
	SubsectionID string `json:"subsection"`
}

// SearchResult is a single match returned by Search.
type SearchResult struct {
	SectionID       string `json:"sectionId"`
	SubsectionID    string `json:"subsectionId"`
	SectionTitle    string `json:"sectionTitle"`
	SubsectionTitle string `json:"subsectionTitle"`
	MatchedKeyword  string `json:"matchedKeyword,omitempty"` // empty when a title matched
}

// Position returns the catalog position the result points at.
func (r SearchResult) Position() Position {
	return Position{SectionID: r.SectionID, SubsectionID: r.SubsectionID}
}
