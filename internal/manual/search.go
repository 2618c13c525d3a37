package manual

import (
	"strings"

	"golang.org/x/text/cases"
)

// Search returns the subsections whose section title, subsection title or search keywords
// contain query, ignoring case. Results follow catalog order with at most one result per
// subsection. A section-title match yields a result for every subsection in that section.
// Blank queries return an empty slice.
func Search[C any](catalog Catalog[C], query string) []SearchResult {
	results := []SearchResult{}

	query = strings.TrimSpace(query)
	if query == "" {
		return results
	}

	fold := cases.Fold()
	needle := fold.String(query)
	contains := func(s string) bool {
		return strings.Contains(fold.String(s), needle)
	}

	for _, s := range catalog.ListSections() {
		sectionMatch := contains(s.Title)
		for _, sub := range s.Subsections {
			result := SearchResult{
				SectionID:       s.ID,
				SubsectionID:    sub.ID,
				SectionTitle:    s.Title,
				SubsectionTitle: sub.Title,
			}

			switch {
			case sectionMatch, contains(sub.Title):
				results = append(results, result)
			default:
				if kw, ok := firstKeyword(sub.SearchKeywords, contains); ok {
					result.MatchedKeyword = kw
					results = append(results, result)
				}
			}
		}
	}
	return results
}

func firstKeyword(keywords []string, match func(string) bool) (string, bool) {
	for _, kw := range keywords {
		if match(kw) {
			return kw, true
		}
	}
	return "", false
}
