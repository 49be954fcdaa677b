// Package ui is the bubbletea front end: a filterable lesson list with a
// category sidebar and a scrollable lesson screen with checklist controls.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/academy/pkg/analysis"
	"github.com/vanderheijden86/academy/pkg/debug"
	"github.com/vanderheijden86/academy/pkg/loader"
	"github.com/vanderheijden86/academy/pkg/model"
	"github.com/vanderheijden86/academy/pkg/progress"
	"github.com/vanderheijden86/academy/pkg/search"
	"github.com/vanderheijden86/academy/pkg/watcher"
)

// AppTitle is shown in the header bar.
const AppTitle = "RepeatMD Academy"

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// FileChangedMsg is sent when a watched dataset file changes on disk
type FileChangedMsg struct{}

// ReadyTimeoutMsg is sent after a short delay so the UI renders even if
// the terminal is slow to report its size.
type ReadyTimeoutMsg struct{}

// ReadyTimeoutCmd returns a command that sends ReadyTimeoutMsg after 100ms.
func ReadyTimeoutCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return ReadyTimeoutMsg{}
	})
}

// WatchFileCmd returns a command that waits for dataset changes and sends FileChangedMsg
func WatchFileCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return FileChangedMsg{}
	}
}

// ReloadFunc rebuilds the catalog after a dataset change.
type ReloadFunc func() (*loader.Catalog, error)

// Options configures NewModel.
type Options struct {
	Route   Route            // initial screen
	Query   search.Query     // initial filter
	Sidebar bool             // show the category sidebar on wide terminals
	Watcher *watcher.Watcher // nil disables live reload
	Reload  ReloadFunc       // called on FileChangedMsg
}

// Model is the main bubbletea model.
type Model struct {
	catalog *loader.Catalog
	index   *search.Index
	store   *progress.Store
	visible []model.Lesson

	route Route
	query search.Query

	list     list.Model
	search   textinput.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	theme    Theme

	width, height int
	ready         bool
	searching     bool
	showSidebar   bool

	// checklistCursor is the focused checklist item on the lesson screen.
	checklistCursor int
	itemLines       []int

	statusMsg     string
	statusIsError bool

	watcher *watcher.Watcher
	reload  ReloadFunc
}

// NewModel builds the model over catalog and store.
func NewModel(catalog *loader.Catalog, store *progress.Store, opts Options) Model {
	theme := DefaultTheme(lipgloss.DefaultRenderer())

	l := list.New(nil, LessonDelegate{Theme: theme}, defaultWidth, defaultHeight-4)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle()
	l.Styles.PaginationStyle = lipgloss.NewStyle().PaddingLeft(2)

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Search lessons..."
	ti.CharLimit = 80
	ti.Width = 30
	ti.PromptStyle = theme.PrimaryBold
	if opts.Query.Term != "" {
		ti.SetValue(opts.Query.Term)
	}

	h := help.New()
	h.ShortSeparator = "  "

	m := Model{
		catalog:     catalog,
		index:       search.NewIndex(catalog.Lessons()),
		store:       store,
		route:       opts.Route,
		query:       opts.Query,
		list:        l,
		search:      ti,
		viewport:    viewport.New(defaultWidth, defaultHeight-4),
		help:        h,
		keys:        defaultKeyMap(),
		theme:       theme,
		width:       defaultWidth,
		height:      defaultHeight,
		showSidebar: opts.Sidebar,
		watcher:     opts.Watcher,
		reload:      opts.Reload,
	}
	m.applyFilter()
	if m.route.IsLesson() {
		m.selectID(m.route.ID)
	}
	m.layout()
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{ReadyTimeoutCmd()}
	if m.watcher != nil {
		cmds = append(cmds, WatchFileCmd(m.watcher))
	}
	return tea.Batch(cmds...)
}

// Route returns the current screen.
func (m Model) Route() Route { return m.route }

// Query returns the active filter.
func (m Model) Query() search.Query { return m.query }

// VisibleLessons returns the filtered list in catalog order.
func (m Model) VisibleLessons() []model.Lesson { return m.visible }

// SelectedLesson returns the highlighted lesson on the list screen.
func (m Model) SelectedLesson() (model.Lesson, bool) {
	if it, ok := m.list.SelectedItem().(LessonItem); ok {
		return it.Lesson, true
	}
	return model.Lesson{}, false
}

// ChecklistCursor returns the focused checklist index on the lesson screen.
func (m Model) ChecklistCursor() int { return m.checklistCursor }

// ShowSidebar reports whether the sidebar is toggled on.
func (m Model) ShowSidebar() bool { return m.showSidebar }

// Searching reports whether the search box has focus.
func (m Model) Searching() bool { return m.searching }

// Status returns the footer status message.
func (m Model) Status() (string, bool) { return m.statusMsg, m.statusIsError }

// Catalog returns the catalog currently shown.
func (m Model) Catalog() *loader.Catalog { return m.catalog }

// currentLesson resolves the detail route against the catalog.
func (m Model) currentLesson() (model.Lesson, bool) {
	if !m.route.IsLesson() {
		return model.Lesson{}, false
	}
	return m.catalog.Get(m.route.ID)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case ReadyTimeoutMsg:
		m.ready = true
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case FileChangedMsg:
		if m.reload != nil {
			m.reloadCatalog()
		}
		if m.watcher != nil {
			cmds = append(cmds, WatchFileCmd(m.watcher))
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		if m.route.IsLesson() {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)

	case tea.MouseMsg:
		if m.route.IsLesson() {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.query.Term = ""
		m.applyFilter()
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyUp, tea.KeyDown:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != m.query.Term {
		m.query.Term = v
		m.applyFilter()
	}
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit

	case key.Matches(msg, k.Search):
		m.searching = true
		return m, m.search.Focus()

	case key.Matches(msg, k.Back):
		if !m.query.IsZero() {
			m.query = search.Query{}
			m.search.SetValue("")
			m.applyFilter()
			m.setStatus("Filters cleared", false)
		}
		return m, nil

	case key.Matches(msg, k.Category):
		r := model.StarRating(msg.Runes[0] - '0')
		m.query = m.query.WithCategory(r)
		m.applyFilter()
		return m, nil

	case key.Matches(msg, k.ClearCategory):
		m.query.Category = search.AnyCategory
		m.applyFilter()
		return m, nil

	case key.Matches(msg, k.Open):
		if l, ok := m.SelectedLesson(); ok {
			m.navigate(LessonRoute(l.ID))
		}
		return m, nil

	case key.Matches(msg, k.Complete):
		if l, ok := m.SelectedLesson(); ok {
			m.toggleCompleted(l.ID)
		}
		return m, nil

	case key.Matches(msg, k.Copy):
		if l, ok := m.SelectedLesson(); ok {
			m.copyRoute(LessonRoute(l.ID))
		}
		return m, nil

	case key.Matches(msg, k.Sidebar):
		m.showSidebar = !m.showSidebar
		m.layout()
		return m, nil

	case key.Matches(msg, k.Reload):
		m.reloadAll()
		return m, nil

	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	lesson, found := m.currentLesson()

	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit

	case key.Matches(msg, k.Back):
		m.navigate(ListRoute())
		return m, nil

	case key.Matches(msg, k.Reload):
		m.reloadAll()
		return m, nil

	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	}

	if !found {
		return m, nil
	}

	switch {
	case key.Matches(msg, k.Complete):
		m.toggleCompleted(lesson.ID)

	case key.Matches(msg, k.Down):
		if m.checklistCursor < len(lesson.ImplementationChecklist)-1 {
			m.checklistCursor++
			m.refreshDetail()
		} else {
			m.viewport.ScrollDown(1)
		}

	case key.Matches(msg, k.Up):
		if m.checklistCursor > 0 {
			m.checklistCursor--
			m.refreshDetail()
		} else {
			m.viewport.ScrollUp(1)
		}

	case key.Matches(msg, k.Toggle):
		if m.checklistCursor < len(lesson.ImplementationChecklist) {
			m.toggleChecklistItem(lesson.ID, m.checklistCursor)
		}

	case key.Matches(msg, k.Prev):
		if prev, ok := m.catalog.Previous(lesson.ID); ok {
			m.navigate(LessonRoute(prev.ID))
		}

	case key.Matches(msg, k.Next):
		if next, ok := m.catalog.Next(lesson.ID); ok {
			m.navigate(LessonRoute(next.ID))
		}

	case key.Matches(msg, k.PageDown):
		m.viewport.HalfViewDown()

	case key.Matches(msg, k.PageUp):
		m.viewport.HalfViewUp()

	case key.Matches(msg, k.Copy):
		m.copyRoute(m.route)
	}
	return m, nil
}

// navigate switches screens, resetting per-lesson state.
func (m *Model) navigate(r Route) {
	m.route = r
	m.checklistCursor = 0
	m.statusMsg = ""
	if r.IsLesson() {
		m.selectID(r.ID)
		m.viewport.GotoTop()
	}
	m.layout()
}

func (m *Model) toggleCompleted(id string) {
	done, err := m.store.ToggleCompleted(id)
	if err != nil {
		debug.Log("progress: persist completed for %s: %v", id, err)
	}
	if done {
		m.setStatus("Marked complete ✓", false)
	} else {
		m.setStatus("Marked incomplete", false)
	}
	m.refreshItems()
	m.refreshDetail()
}

func (m *Model) toggleChecklistItem(id string, index int) {
	if _, err := m.store.ToggleChecklistItem(id, index); err != nil {
		debug.Log("progress: persist checklist %s[%d]: %v", id, index, err)
	}
	m.refreshItems()
	m.refreshDetail()
}

func (m *Model) copyRoute(r Route) {
	link := r.String()
	if err := clipboard.WriteAll(link); err != nil {
		m.setStatus(fmt.Sprintf("Clipboard error: %v", err), true)
		return
	}
	m.setStatus(fmt.Sprintf("Copied %s to clipboard", link), false)
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusIsError = isErr
}

// reloadAll re-reads progress written by other processes, then the
// catalog when a reload hook is set.
func (m *Model) reloadAll() {
	m.store.Reload()
	if m.reload != nil {
		m.reloadCatalog()
		return
	}
	m.refreshItems()
	m.refreshDetail()
	m.setStatus("Reloaded progress", false)
}

// reloadCatalog swaps in a freshly loaded catalog, keeping the route,
// filter and selection.
func (m *Model) reloadCatalog() {
	start := time.Now()
	cat, err := m.reload()
	if err != nil {
		m.setStatus(fmt.Sprintf("Reload error: %v", err), true)
		return
	}
	m.SetCatalog(cat)
	debug.LogTiming("ui.reload", time.Since(start))
	m.setStatus(fmt.Sprintf("Reloaded %d lessons", cat.Len()), false)
}

// SetCatalog replaces the catalog wholesale.
func (m *Model) SetCatalog(cat *loader.Catalog) {
	m.catalog = cat
	m.index = search.NewIndex(cat.Lessons())
	m.applyFilter()
	if l, ok := m.currentLesson(); ok && m.checklistCursor >= len(l.ImplementationChecklist) {
		m.checklistCursor = 0
	}
	m.refreshDetail()
}

// applyFilter recomputes the visible lessons, keeping the selection when
// the selected lesson is still visible.
func (m *Model) applyFilter() {
	selected := ""
	if l, ok := m.SelectedLesson(); ok {
		selected = l.ID
	}
	m.visible = m.index.Filter(m.query)
	m.refreshItems()
	if selected != "" {
		m.selectID(selected)
	}
}

// refreshItems rebuilds list items so progress marks stay current.
func (m *Model) refreshItems() {
	items := make([]list.Item, len(m.visible))
	for i, l := range m.visible {
		items[i] = LessonItem{Lesson: l, Entry: m.store.Entry(l.ID)}
	}
	idx := m.list.Index()
	m.list.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
}

func (m *Model) selectID(id string) {
	for i, l := range m.visible {
		if l.ID == id {
			m.list.Select(i)
			return
		}
	}
}

func (m Model) sidebarVisible() bool {
	return m.showSidebar && m.width >= SidebarThreshold
}

func (m Model) footerHeight() int {
	if m.help.ShowAll {
		return 4
	}
	return 1
}

// layout sizes the list and viewport for the current window.
func (m *Model) layout() {
	bodyHeight := m.height - 2 - m.footerHeight() // header + gap
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	listWidth := m.width
	if m.sidebarVisible() {
		listWidth -= SidebarWidth
	}
	m.list.SetSize(listWidth, max(1, bodyHeight-2)) // heading + search line
	m.help.Width = m.width

	m.viewport.Width = m.width
	m.viewport.Height = max(1, bodyHeight-2) // breadcrumb + nav line
	m.refreshDetail()
}

// refreshDetail re-renders the lesson body into the viewport and keeps the
// checklist cursor on screen.
func (m *Model) refreshDetail() {
	lesson, ok := m.currentLesson()
	if !ok {
		m.itemLines = nil
		m.viewport.SetContent("")
		return
	}
	width := m.viewport.Width - 2
	if width > 100 {
		width = 100
	}
	body := renderLessonBody(lesson, m.store.Entry(lesson.ID), m.checklistCursor, width, m.theme)
	m.itemLines = body.itemLines
	m.viewport.SetContent(body.content)

	if c := m.checklistCursor; c < len(body.itemLines) && m.viewport.Height > 0 {
		line := body.itemLines[c]
		switch {
		case line < m.viewport.YOffset:
			m.viewport.SetYOffset(line)
		case line >= m.viewport.YOffset+m.viewport.Height:
			m.viewport.SetYOffset(line - m.viewport.Height + 1)
		}
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// VIEW
// ══════════════════════════════════════════════════════════════════════════════

func (m Model) View() string {
	if !m.ready {
		return "\n  Loading lessons..."
	}

	var body string
	if m.route.IsLesson() {
		body = m.detailView()
	} else {
		body = m.listView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), "", body, m.footerView())
}

func (m Model) headerView() string {
	t := m.theme
	lessons := m.catalog.Lessons()
	snapshot := m.store.Snapshot()
	overall := analysis.OverallProgress(lessons, snapshot)

	completed := 0
	for _, l := range lessons {
		if snapshot[l.ID].Completed {
			completed++
		}
	}

	title := t.Header.Render("🎓 " + AppTitle)
	stats := fmt.Sprintf(" Overall %s %s", RenderProgressBar(overall, 16, t),
		t.MutedText.Render(fmt.Sprintf("%d/%d lessons", completed, len(lessons))))
	return title + stats
}

func (m Model) listView() string {
	t := m.theme

	heading := t.PrimaryBold.Render(m.query.String()) + t.MutedText.Render(fmt.Sprintf(" (%d)", len(m.visible)))
	searchLine := ""
	switch {
	case m.searching:
		searchLine = m.search.View()
	case m.query.Term != "":
		searchLine = t.MutedText.Render(fmt.Sprintf("/ %s  (esc clears)", m.query.Term))
	default:
		searchLine = t.MutedText.Render("/ to search · 1-5 filter by stars")
	}

	var content string
	if len(m.visible) == 0 {
		content = "\n  " + t.MutedText.Render("No lessons match your filters.")
	} else {
		content = m.list.View()
	}
	main := lipgloss.JoinVertical(lipgloss.Left, heading, searchLine, content)

	if !m.sidebarVisible() {
		return main
	}
	listWidth := m.width - SidebarWidth
	main = t.Renderer.NewStyle().Width(listWidth).Render(main)
	sidebar := renderSidebar(m.catalog.Lessons(), m.store.Snapshot(), m.query.Category, SidebarWidth, m.list.Height()+2, t)
	return lipgloss.JoinHorizontal(lipgloss.Top, main, sidebar)
}

func (m Model) detailView() string {
	t := m.theme
	lesson, ok := m.currentLesson()
	if !ok {
		return lipgloss.JoinVertical(lipgloss.Left,
			t.ErrorText.Render("Lesson not found"),
			"",
			t.MutedText.Render(fmt.Sprintf("No lesson with id %q. Press esc to return to the lessons.", m.route.ID)),
		)
	}

	crumb := t.MutedText.Render("← Lessons / ") + t.SecondaryText.Render(truncateRunesHelper(lesson.Title, m.width-14, "…"))

	return lipgloss.JoinVertical(lipgloss.Left, crumb, m.viewport.View(), m.navView(lesson))
}

// navView renders previous/next links, truncated to a fixed title length.
func (m Model) navView(lesson model.Lesson) string {
	t := m.theme
	left, right := "", ""
	if prev, ok := m.catalog.Previous(lesson.ID); ok {
		left = t.SecondaryText.Render("[ ← " + navTitle(prev.Title))
	}
	if next, ok := m.catalog.Next(lesson.ID); ok {
		right = t.SecondaryText.Render(navTitle(next.Title) + " → ]")
	}
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) footerView() string {
	if m.statusMsg != "" && !m.help.ShowAll {
		style := m.theme.CompleteText
		if m.statusIsError {
			style = m.theme.ErrorText
		}
		return style.Render(m.statusMsg)
	}
	if m.route.IsLesson() {
		return m.help.View(detailKeys{m.keys})
	}
	return m.help.View(listKeys{m.keys})
}
