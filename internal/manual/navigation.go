package manual

import (
	"fmt"
	"sort"
)

// State is an immutable snapshot of a view session's navigation state.
type State struct {
	SectionID    string   `json:"section"`
	SubsectionID string   `json:"subsection"`
	Expanded     []string `json:"expanded"` // sorted section ids
	Level        Level    `json:"level"`
}

// Position returns the active position of the snapshot.
func (s State) Position() Position {
	return Position{SectionID: s.SectionID, SubsectionID: s.SubsectionID}
}

// IsExpanded reports whether sectionID was expanded when the snapshot was taken.
func (s State) IsExpanded(sectionID string) bool {
	i := sort.SearchStrings(s.Expanded, sectionID)
	return i < len(s.Expanded) && s.Expanded[i] == sectionID
}

// Controller tracks the active page, the expanded sections and the reading level of a
// single view session. It is not safe for concurrent use.
type Controller[C any] struct {
	catalog  Catalog[C]
	order    []Position
	index    map[Position]int
	active   int
	sections map[string]bool
	expanded map[string]bool
	level    Level

	subscribers map[int]func(State)
	nextSubID   int
}

// NewController creates a controller positioned on the first subsection of the first
// section, at the basico level, with every section collapsed.
func NewController[C any](catalog Catalog[C]) (*Controller[C], error) {
	order := flatten(catalog.ListSections())
	if len(order) == 0 {
		return nil, fmt.Errorf("%w: no subsections to navigate", ErrMalformedCatalog)
	}

	index := make(map[Position]int, len(order))
	sections := make(map[string]bool)
	for i, p := range order {
		if _, ok := index[p]; !ok {
			index[p] = i
		}
		sections[p.SectionID] = true
	}

	return &Controller[C]{
		catalog:     catalog,
		order:       order,
		index:       index,
		sections:    sections,
		expanded:    make(map[string]bool),
		level:       LevelBasico,
		subscribers: make(map[int]func(State)),
	}, nil
}

// State returns a snapshot of the current navigation state.
func (c *Controller[C]) State() State {
	expanded := make([]string, 0, len(c.expanded))
	for id := range c.expanded {
		expanded = append(expanded, id)
	}
	sort.Strings(expanded)

	p := c.order[c.active]
	return State{
		SectionID:    p.SectionID,
		SubsectionID: p.SubsectionID,
		Expanded:     expanded,
		Level:        c.level,
	}
}

// Active returns the section and subsection currently displayed.
func (c *Controller[C]) Active() (Section[C], Subsection[C]) {
	p := c.order[c.active]
	s, sub, _ := lookup(c.catalog.ListSections(), p.SectionID, p.SubsectionID)
	return s, sub
}

// Content returns the active subsection's content at the current level.
func (c *Controller[C]) Content() C {
	_, sub := c.Active()
	return ResolveContent(sub, c.level)
}

// Level returns the current reading level.
func (c *Controller[C]) Level() Level {
	return c.level
}

// GoTo makes the given subsection active. It returns ErrInvalidTarget when the pair is
// not in the catalog. The expanded set is left as is; views that want the opened page
// revealed call Expand as well.
func (c *Controller[C]) GoTo(sectionID, subsectionID string) error {
	i, ok := c.index[Position{SectionID: sectionID, SubsectionID: subsectionID}]
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrInvalidTarget, sectionID, subsectionID)
	}
	c.active = i
	c.publish()
	return nil
}

// HasSection reports whether sectionID names a navigable section.
func (c *Controller[C]) HasSection(sectionID string) bool {
	return c.sections[sectionID]
}

// ToggleExpanded flips whether sectionID is expanded. The active page is unaffected.
// Ids that are not sections of the catalog are ignored.
func (c *Controller[C]) ToggleExpanded(sectionID string) {
	if !c.sections[sectionID] {
		return
	}
	if c.expanded[sectionID] {
		delete(c.expanded, sectionID)
	} else {
		c.expanded[sectionID] = true
	}
	c.publish()
}

// Expand adds sectionID to the expanded set. Nothing is published when the section is
// already expanded or unknown.
func (c *Controller[C]) Expand(sectionID string) {
	if !c.sections[sectionID] || c.expanded[sectionID] {
		return
	}
	c.expanded[sectionID] = true
	c.publish()
}

// IsExpanded reports whether sectionID is currently expanded.
func (c *Controller[C]) IsExpanded(sectionID string) bool {
	return c.expanded[sectionID]
}

// SetLevel changes the reading level without moving. Values outside Levels are ignored.
func (c *Controller[C]) SetLevel(level Level) {
	if !level.Valid() {
		return
	}
	c.level = level
	c.publish()
}

// Next moves to the following subsection, crossing into the next section when the
// active one is the last of its section. It does nothing on the last page.
func (c *Controller[C]) Next() {
	if c.IsLast() {
		return
	}
	c.active++
	c.publish()
}

// Previous moves to the preceding subsection. It does nothing on the first page.
func (c *Controller[C]) Previous() {
	if c.IsFirst() {
		return
	}
	c.active--
	c.publish()
}

// IsFirst reports whether the active page is the first one of the manual.
func (c *Controller[C]) IsFirst() bool {
	return c.active == 0
}

// IsLast reports whether the active page is the last one of the manual.
func (c *Controller[C]) IsLast() bool {
	return c.active == len(c.order)-1
}

// Subscribe registers fn to receive a snapshot after every state change. Subscribers
// are called in registration order. The returned function removes the subscription.
func (c *Controller[C]) Subscribe(fn func(State)) (unsubscribe func()) {
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn
	return func() { delete(c.subscribers, id) }
}

func (c *Controller[C]) publish() {
	if len(c.subscribers) == 0 {
		return
	}
	ids := make([]int, 0, len(c.subscribers))
	for id := range c.subscribers {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	state := c.State()
	for _, id := range ids {
		if fn, ok := c.subscribers[id]; ok {
			fn(state)
		}
	}
}
