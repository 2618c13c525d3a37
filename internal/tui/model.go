// Package tui is a terminal browser for the manual: a topic tree on the left, the
// active page on the right and an incremental search over titles and keywords.
package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/p-n-ai/pai-manual/internal/manual"
	"github.com/p-n-ai/pai-manual/internal/render"
)

const (
	searchDebounce = 150 * time.Millisecond

	treeWidth     = 34
	defaultWidth  = 100
	defaultHeight = 30
	// header + status + help + pane borders
	chromeHeight = 5
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
)

// searchMsg fires once the query has been stable for searchDebounce. Messages from
// older generations are dropped.
type searchMsg struct {
	generation int
	query      string
}

// Options configures the browser.
type Options struct {
	// Level is the initial reading level. Defaults to basico.
	Level manual.Level
	// Style is the glamour style for page content. Defaults to render.StyleDark.
	Style string
}

type row struct {
	section    string
	subsection string // empty for section rows
	title      string
}

// shownPage identifies the rendered content of the viewport.
type shownPage struct {
	pos   manual.Position
	level manual.Level
}

// Model is the Bubble Tea model for the browser.
type Model struct {
	catalog *manual.StaticCatalog[string]
	ctrl    *manual.Controller[string]
	state   manual.State
	order   []manual.Position

	style    string
	renderer *render.TerminalRenderer
	styles   styles
	keys     keyMap
	help     help.Model
	viewport viewport.Model
	input    textinput.Model

	mode         mode
	cursor       int
	results      []manual.SearchResult
	resultCursor int
	generation   int

	width, height int
	shown         shownPage
	dirty         bool // renderer changed
	err           error
}

// New creates a browser positioned on the first page of cat.
func New(cat *manual.StaticCatalog[string], opts Options) (*Model, error) {
	ctrl, err := manual.NewController[string](cat)
	if err != nil {
		return nil, err
	}

	style := opts.Style
	if style == "" {
		style = render.StyleDark
	}

	input := textinput.New()
	input.Placeholder = "Search the manual…"
	input.Prompt = "/ "
	input.CharLimit = 80
	input.Width = treeWidth - 6

	m := &Model{
		catalog:  cat,
		ctrl:     ctrl,
		order:    cat.Flatten(),
		style:    style,
		styles:   defaultStyles(),
		keys:     newKeyMap(),
		help:     help.New(),
		viewport: viewport.New(defaultWidth-treeWidth-4, defaultHeight-chromeHeight),
		input:    input,
	}
	ctrl.Subscribe(func(st manual.State) {
		m.state = st
	})

	first := m.order[0]
	if err := ctrl.GoTo(first.SectionID, first.SubsectionID); err != nil {
		return nil, err
	}
	ctrl.Expand(first.SectionID)
	if opts.Level.Valid() {
		ctrl.SetLevel(opts.Level)
	}
	m.syncCursor()

	if err := m.resize(defaultWidth, defaultHeight); err != nil {
		return nil, err
	}
	m.refresh()
	return m, nil
}

// State returns the current navigation snapshot.
func (m *Model) State() manual.State { return m.state }

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if err := m.resize(msg.Width, msg.Height); err != nil {
			m.err = err
		}
	case searchMsg:
		if msg.generation == m.generation && m.mode == modeSearch {
			m.results = manual.Search[string](m.catalog, msg.query)
			m.resultCursor = 0
		}
	case tea.KeyMsg:
		if m.mode == modeSearch {
			cmd = m.updateSearch(msg)
		} else {
			cmd = m.updateBrowse(msg)
		}
	}
	m.refresh()
	return m, cmd
}

func (m *Model) updateBrowse(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Next):
		m.ctrl.Next()
		m.syncCursor()
	case key.Matches(msg, m.keys.Previous):
		m.ctrl.Previous()
		m.syncCursor()
	case key.Matches(msg, m.keys.Basico):
		m.ctrl.SetLevel(manual.LevelBasico)
	case key.Matches(msg, m.keys.Intermedio):
		m.ctrl.SetLevel(manual.LevelIntermedio)
	case key.Matches(msg, m.keys.Avanzado):
		m.ctrl.SetLevel(manual.LevelAvanzado)
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows())-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Open):
		r := m.rows()[m.cursor]
		if r.subsection == "" {
			m.ctrl.ToggleExpanded(r.section)
		} else {
			m.goTo(r.section, r.subsection)
		}
	case key.Matches(msg, m.keys.Toggle):
		r := m.rows()[m.cursor]
		m.ctrl.ToggleExpanded(r.section)
		m.cursorTo(r.section, "")
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.SetYOffset(m.viewport.YOffset + m.viewport.Height)
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.SetYOffset(m.viewport.YOffset - m.viewport.Height)
	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.err = nil
		return m.input.Focus()
	}
	return nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		m.leaveSearch()
		return nil
	case key.Matches(msg, m.keys.ResultUp):
		if m.resultCursor > 0 {
			m.resultCursor--
		}
		return nil
	case key.Matches(msg, m.keys.ResultDown):
		if m.resultCursor < len(m.results)-1 {
			m.resultCursor++
		}
		return nil
	case key.Matches(msg, m.keys.Open):
		if len(m.results) > 0 {
			r := m.results[m.resultCursor]
			m.goTo(r.SectionID, r.SubsectionID)
			m.leaveSearch()
		}
		return nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return cmd
	}
	m.generation++
	return tea.Batch(cmd, debounceSearch(m.generation, m.input.Value()))
}

func debounceSearch(generation int, query string) tea.Cmd {
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchMsg{generation: generation, query: query}
	})
}

func (m *Model) leaveSearch() {
	m.mode = modeBrowse
	m.input.Blur()
	m.input.Reset()
	m.results = nil
	m.resultCursor = 0
	m.generation++
}

func (m *Model) goTo(sectionID, subsectionID string) {
	if err := m.ctrl.GoTo(sectionID, subsectionID); err != nil {
		m.err = err
		return
	}
	m.ctrl.Expand(sectionID)
	m.err = nil
	m.syncCursor()
}

// rows lists the tree lines currently visible: every section, plus the pages of
// expanded sections.
func (m *Model) rows() []row {
	var rows []row
	for _, sec := range m.catalog.ListSections() {
		rows = append(rows, row{section: sec.ID, title: sec.Title})
		if !m.state.IsExpanded(sec.ID) {
			continue
		}
		for _, sub := range sec.Subsections {
			rows = append(rows, row{section: sec.ID, subsection: sub.ID, title: sub.Title})
		}
	}
	return rows
}

// syncCursor moves the tree cursor to the active page, or to its section when the
// section is collapsed.
func (m *Model) syncCursor() {
	if !m.cursorTo(m.state.SectionID, m.state.SubsectionID) {
		m.cursorTo(m.state.SectionID, "")
	}
}

func (m *Model) cursorTo(sectionID, subsectionID string) bool {
	for i, r := range m.rows() {
		if r.section == sectionID && r.subsection == subsectionID {
			m.cursor = i
			return true
		}
	}
	return false
}

func (m *Model) resize(width, height int) error {
	m.width, m.height = width, height

	contentWidth := max(width-treeWidth-4, 24)
	if m.renderer == nil || m.renderer.Width() != contentWidth-4 {
		r, err := render.NewTerminalRenderer(m.style, contentWidth-4)
		if err != nil {
			return err
		}
		m.renderer = r
		m.dirty = true
	}
	m.viewport.Width = contentWidth
	m.viewport.Height = max(height-chromeHeight, 3)
	m.help.Width = width
	return nil
}

// refresh re-renders the page when the active page, the level or the width changed,
// and updates which boundary keys are live. The scroll offset is reset only when a
// different page is shown.
func (m *Model) refresh() {
	m.keys.Next.SetEnabled(!m.ctrl.IsLast())
	m.keys.Previous.SetEnabled(!m.ctrl.IsFirst())

	page := shownPage{pos: m.state.Position(), level: m.state.Level}
	if !m.dirty && page == m.shown {
		return
	}
	m.dirty = false

	src := m.ctrl.Content()
	out, err := m.renderer.Render(src)
	if err != nil {
		m.err = err
		out = src
	}
	m.viewport.SetContent(out)
	if page.pos != m.shown.pos {
		m.viewport.GotoTop()
	}
	m.shown = page
}

func (m *Model) View() string {
	var left string
	if m.mode == modeSearch {
		left = m.searchView()
	} else {
		left = m.treeView()
	}
	paneHeight := m.viewport.Height + 1

	tree := m.styles.Tree.Width(treeWidth).Height(paneHeight).Render(left)
	page := m.styles.Content.Height(paneHeight).Render(
		lipgloss.JoinVertical(lipgloss.Left, m.headerView(), m.viewport.View()),
	)

	bindings := m.keys.browseHelp()
	if m.mode == modeSearch {
		bindings = m.keys.searchHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, tree, page),
		m.statusView(),
		m.help.ShortHelpView(bindings),
	)
}

func (m *Model) treeView() string {
	var b strings.Builder
	for i, r := range m.rows() {
		var line string
		style := m.styles.Page
		switch {
		case r.subsection == "":
			marker := "▸"
			if m.state.IsExpanded(r.section) {
				marker = "▾"
			}
			line = marker + " " + r.title
			style = m.styles.Section
		case r.section == m.state.SectionID && r.subsection == m.state.SubsectionID:
			line = "  ● " + r.title
			style = m.styles.Active
		default:
			line = "    " + r.title
		}
		line = truncate(line, treeWidth-2)
		if i == m.cursor {
			style = style.Inherit(m.styles.Cursor)
		}
		b.WriteString(style.Render(line))
		b.WriteByte('\n')
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m *Model) searchView() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case strings.TrimSpace(m.input.Value()) == "":
		b.WriteString(m.styles.Muted.Render("Type to search titles and keywords"))
	case len(m.results) == 0:
		b.WriteString(m.styles.Muted.Render("No matches"))
	}

	for i, r := range m.results {
		line := truncate(r.SubsectionTitle, treeWidth-4)
		detail := r.SectionTitle
		if r.MatchedKeyword != "" {
			detail = "#" + r.MatchedKeyword
		}
		style := m.styles.Page
		if i == m.resultCursor {
			style = m.styles.Active.Inherit(m.styles.Cursor)
		}
		b.WriteString(style.Render(line))
		b.WriteByte('\n')
		b.WriteString(m.styles.Muted.Render("  " + truncate(detail, treeWidth-6)))
		b.WriteByte('\n')
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m *Model) headerView() string {
	sec, sub := m.ctrl.Active()
	title := m.styles.Title.Render(sec.Title + " › " + sub.Title)

	available := manual.AvailableLevels(sub)
	var badges []string
	for _, l := range manual.Levels {
		style := m.styles.Level
		switch {
		case l == m.state.Level:
			style = m.styles.LevelOn
		case !slices.Contains(available, l):
			style = m.styles.LevelMiss
		}
		badges = append(badges, style.Render(l.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", strings.Join(badges, ""))
}

func (m *Model) statusView() string {
	if m.err != nil {
		return m.styles.Error.Render("error: " + m.err.Error())
	}
	page := 0
	for i, p := range m.order {
		if p == m.state.Position() {
			page = i + 1
			break
		}
	}
	return m.styles.Status.Render(fmt.Sprintf("page %d/%d · %s", page, len(m.order), m.state.Level))
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
