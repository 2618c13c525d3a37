package manual

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidTarget is returned when a navigation target is not in the catalog.
	ErrInvalidTarget = errors.New("invalid navigation target")
	// ErrMalformedCatalog is returned by Validate when the catalog breaks a structural rule.
	ErrMalformedCatalog = errors.New("malformed catalog")
)

// Catalog supplies the ordered sections of the manual. Implementations must return
// the same sections in the same order on every call.
type Catalog[C any] interface {
	ListSections() []Section[C]
}

// StaticCatalog is an immutable in-memory catalog.
type StaticCatalog[C any] struct {
	sections []Section[C]
	flat     []Position
}

// NewCatalog concatenates topic groups, in the order given, into a single catalog.
func NewCatalog[C any](groups ...[]Section[C]) *StaticCatalog[C] {
	var sections []Section[C]
	for _, g := range groups {
		sections = append(sections, g...)
	}

	return &StaticCatalog[C]{
		sections: sections,
		flat:     flatten(sections),
	}
}

// ListSections implements Catalog.
func (c *StaticCatalog[C]) ListSections() []Section[C] {
	return c.sections
}

// Flatten returns every subsection position in traversal order.
func (c *StaticCatalog[C]) Flatten() []Position {
	return append([]Position(nil), c.flat...)
}

// Section returns the section with the given id.
func (c *StaticCatalog[C]) Section(id string) (Section[C], bool) {
	for _, s := range c.sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section[C]{}, false
}

// Lookup returns the section and subsection at the given pair.
func (c *StaticCatalog[C]) Lookup(sectionID, subsectionID string) (Section[C], Subsection[C], bool) {
	return lookup(c.sections, sectionID, subsectionID)
}

// Validate checks the structural invariants of the catalog: unique section ids, at least
// one subsection per section, unique subsection ids within a section, and basico content
// on every subsection. Content of type string must also be non-blank.
func (c *StaticCatalog[C]) Validate() error {
	if len(c.sections) == 0 {
		return fmt.Errorf("%w: no sections", ErrMalformedCatalog)
	}

	seen := make(map[string]bool, len(c.sections))
	for _, s := range c.sections {
		if s.ID == "" {
			return fmt.Errorf("%w: section %q has no id", ErrMalformedCatalog, s.Title)
		}
		if seen[s.ID] {
			return fmt.Errorf("%w: duplicate section %q", ErrMalformedCatalog, s.ID)
		}
		seen[s.ID] = true

		if len(s.Subsections) == 0 {
			return fmt.Errorf("%w: section %q has no subsections", ErrMalformedCatalog, s.ID)
		}

		subs := make(map[string]bool, len(s.Subsections))
		for _, sub := range s.Subsections {
			if sub.ID == "" {
				return fmt.Errorf("%w: subsection %q in %q has no id", ErrMalformedCatalog, sub.Title, s.ID)
			}
			if subs[sub.ID] {
				return fmt.Errorf("%w: duplicate subsection %s/%s", ErrMalformedCatalog, s.ID, sub.ID)
			}
			subs[sub.ID] = true

			basico, ok := sub.Content[LevelBasico]
			if !ok || isBlank(basico) {
				return fmt.Errorf("%w: %s/%s has no basico content", ErrMalformedCatalog, s.ID, sub.ID)
			}
			for l := range sub.Content {
				if !l.Valid() {
					return fmt.Errorf("%w: %s/%s has content for unknown level %q", ErrMalformedCatalog, s.ID, sub.ID, l)
				}
			}
		}
	}
	return nil
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t) == ""
	case []byte:
		return len(t) == 0
	}
	return false
}

func lookup[C any](sections []Section[C], sectionID, subsectionID string) (Section[C], Subsection[C], bool) {
	for _, s := range sections {
		if s.ID != sectionID {
			continue
		}
		for _, sub := range s.Subsections {
			if sub.ID == subsectionID {
				return s, sub, true
			}
		}
	}
	return Section[C]{}, Subsection[C]{}, false
}

// flatten computes the traversal order of any catalog.
func flatten[C any](sections []Section[C]) []Position {
	var out []Position
	for _, s := range sections {
		for _, sub := range s.Subsections {
			out = append(out, Position{SectionID: s.ID, SubsectionID: sub.ID})
		}
	}
	return out
}
