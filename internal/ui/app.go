package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/flowdeck/internal/alerts"
	"github.com/five82/flowdeck/internal/flowapi"
	"github.com/five82/flowdeck/internal/grid"
	"github.com/five82/flowdeck/internal/prefs"
	"github.com/five82/flowdeck/internal/screens"
	"github.com/five82/flowdeck/internal/state"
)

// screen is the active level of the navigation stack.
type screen int

const (
	screenEnvironments screen = iota
	screenFlows
	screenDetail
)

// detailTab is the active tab of the flow detail screen.
type detailTab int

const (
	tabRuns detailTab = iota
	tabHistory
	tabConnections
	tabTriggers
)

var tabTitles = []string{"Runs", "Trigger history", "Connections", "Trigger metadata"}

// Options configures the UI.
type Options struct {
	Context     context.Context
	Loader      *state.Loader
	API         flowapi.Commander
	Alerts      *alerts.Queue
	Logger      *slog.Logger
	Prefs       prefs.Store
	ThemeName   string
	PageSize    int
	Environment string
	Account     string
	ExpiresAt   time.Time
	Now         func() time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx      context.Context
	loader   *state.Loader
	api      flowapi.Commander
	alerts   *alerts.Queue
	logger   *slog.Logger
	prefs    prefs.Store
	pageSize int
	now      func() time.Time

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	width    int
	height   int
	ready    bool
	showHelp bool
	modal    Modal

	// Navigation
	screen    screen
	tab       detailTab
	env       string
	envLabel  string
	flowName  string
	flowLabel string
	flow      flowapi.Record
	trigger   string

	// Grids
	envGrid     *gridView
	flowGrid    *gridView
	runGrid     *gridView
	historyGrid *gridView
	connGrid    *gridView
	triggerGrid *gridView

	// Inspect pane
	inspecting bool
	inspect    viewport.Model

	// In-flight commands by subject
	pending map[string]bool

	account   string
	expiresAt time.Time
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	queue := opts.Alerts
	if queue == nil {
		queue = alerts.New()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Defaults().Theme
	}

	m := Model{
		ctx:       ctx,
		loader:    opts.Loader,
		api:       opts.API,
		alerts:    queue,
		logger:    logger,
		prefs:     opts.Prefs,
		pageSize:  opts.PageSize,
		now:       now,
		theme:     GetTheme(themeName),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		pending:   make(map[string]bool),
		account:   opts.Account,
		expiresAt: opts.ExpiresAt,
		envGrid:   newGridView(screens.Environments, opts.PageSize),
		flowGrid:  newGridView(screens.Flows, opts.PageSize),
	}
	m.resetDetail()

	if env := strings.TrimSpace(opts.Environment); env != "" {
		m.env, m.envLabel = env, env
		m.screen = screenFlows
	}
	if !m.expiresAt.IsZero() && !m.expiresAt.After(now()) {
		m.alerts.Add(alerts.Entry{
			Message: "bearer token expired at " + m.expiresAt.Local().Format("Jan 02 15:04") + "; requests will fail until it is replaced",
			Intent:  alerts.IntentWarning,
		})
	}
	return m
}

func (m *Model) resetDetail() {
	m.tab = tabRuns
	m.runGrid = newGridView(screens.Runs, m.pageSize)
	m.historyGrid = newGridView(screens.TriggerHistories, m.pageSize)
	m.connGrid = newGridView(screens.Connections, m.pageSize)
	m.triggerGrid = newGridView(screens.Triggers, m.pageSize)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.ensureLoaded(m.keyFor(state.KindEnvironments))}
	if m.screen == screenFlows {
		cmds = append(cmds, m.ensureLoaded(m.keyFor(state.KindFlows)))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if !m.ready {
			m.inspect = viewport.New(msg.Width, msg.Height)
		}
		m.ready = true
		m.resizeInspect()
		return m, nil

	case loadedMsg:
		return m.handleLoaded(msg)

	case actionDoneMsg:
		return m.handleActionDone(msg)

	case deleteConfirmedMsg:
		return m, m.deleteFlow(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes help
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		next, cmd, done := m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		} else {
			m.modal = next
		}
		return m, cmd
	}

	if m.inspecting {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Inspect):
			m.inspecting = false
			return m, nil
		}
		var cmd tea.Cmd
		m.inspect, cmd = m.inspect.Update(msg)
		return m, cmd
	}

	g := m.activeGrid()
	if g.searching {
		_, cmd := g.HandleKey(msg, m.keys)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil
	case key.Matches(msg, m.keys.DismissAlert):
		if list := m.alerts.Alerts(); len(list) > 0 {
			m.alerts.Dispatch(alerts.Action{Remove: list[0].ID})
		}
		return m, nil
	case key.Matches(msg, m.keys.DismissAll):
		if m.alerts.Len() > 1 {
			m.alerts.Dispatch(alerts.Action{RemoveAll: true})
		}
		return m, nil
	case key.Matches(msg, m.keys.Back):
		return m.back()
	case key.Matches(msg, m.keys.Open):
		return m.open()
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refresh()
	case key.Matches(msg, m.keys.Inspect):
		m.openInspect()
		return m, nil
	}

	if n, ok := dismissIndex(msg); ok {
		if list := m.alerts.Alerts(); n < len(list) {
			m.alerts.Dispatch(alerts.Action{Remove: list[n].ID})
		}
		return m, nil
	}

	if m.screen == screenDetail {
		switch {
		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % detailTab(len(tabTitles))
			return m, m.ensureLoaded(m.tabKey())
		case key.Matches(msg, m.keys.PrevTab):
			m.tab = (m.tab + detailTab(len(tabTitles)) - 1) % detailTab(len(tabTitles))
			return m, m.ensureLoaded(m.tabKey())
		}
	}

	if m.screen == screenFlows || m.screen == screenDetail {
		switch {
		case key.Matches(msg, m.keys.RunFlow):
			return m, m.runFlow()
		case key.Matches(msg, m.keys.EnableFlow):
			return m, m.setFlowEnabled(true)
		case key.Matches(msg, m.keys.DisableFlow):
			return m, m.setFlowEnabled(false)
		case key.Matches(msg, m.keys.DeleteFlow):
			m.confirmDelete()
			return m, nil
		}
	}

	if m.screen == screenDetail && m.tab == tabRuns {
		switch {
		case key.Matches(msg, m.keys.CancelRun):
			return m, m.cancelRun()
		case key.Matches(msg, m.keys.ResubmitRun):
			return m, m.resubmitRun()
		}
	}

	_, cmd := g.HandleKey(msg, m.keys)
	return m, cmd
}

// dismissIndex maps the digit keys 1-9 to a zero-based alert index.
func dismissIndex(msg tea.KeyMsg) (int, bool) {
	s := msg.String()
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return 0, false
	}
	return int(s[0] - '1'), true
}

func (m *Model) cycleTheme() {
	next := NextTheme(m.theme.Name)
	m.theme = GetTheme(next)
	if m.prefs.Path() == "" {
		return
	}
	if err := m.prefs.Save(prefs.Prefs{Theme: next}); err != nil {
		m.logger.Warn("save prefs failed", "error", err)
		m.alerts.Add(alerts.Entry{Message: err, Intent: alerts.IntentWarning})
	}
}

// activeGrid returns the grid the cursor keys drive.
func (m Model) activeGrid() *gridView {
	switch m.screen {
	case screenFlows:
		return m.flowGrid
	case screenDetail:
		switch m.tab {
		case tabHistory:
			return m.historyGrid
		case tabConnections:
			return m.connGrid
		case tabTriggers:
			return m.triggerGrid
		default:
			return m.runGrid
		}
	default:
		return m.envGrid
	}
}

// keyFor builds the cache key of kind in the current navigation context.
func (m Model) keyFor(kind state.Kind) state.Key {
	switch kind {
	case state.KindEnvironments:
		return state.Key{Kind: kind}
	case state.KindFlows:
		return state.Key{Kind: kind, Environment: m.env}
	case state.KindTriggerHistories:
		return state.Key{Kind: kind, Environment: m.env, Flow: m.flowName, Trigger: m.trigger}
	default:
		return state.Key{Kind: kind, Environment: m.env, Flow: m.flowName}
	}
}

// tabKey is the cache key backing the active detail tab.
func (m Model) tabKey() state.Key {
	switch m.tab {
	case tabHistory:
		return m.keyFor(state.KindTriggerHistories)
	case tabConnections:
		return m.keyFor(state.KindConnections)
	case tabTriggers:
		return m.keyFor(state.KindFlow)
	default:
		return m.keyFor(state.KindRuns)
	}
}

// activeKey is the cache key backing the visible list.
func (m Model) activeKey() state.Key {
	switch m.screen {
	case screenFlows:
		return m.keyFor(state.KindFlows)
	case screenDetail:
		return m.tabKey()
	default:
		return m.keyFor(state.KindEnvironments)
	}
}

// gridFor returns the grid fed by key, or nil when key is not on screen.
func (m Model) gridFor(key state.Key) *gridView {
	if key != m.keyFor(key.Kind) {
		return nil
	}
	switch key.Kind {
	case state.KindEnvironments:
		return m.envGrid
	case state.KindFlows:
		return m.flowGrid
	case state.KindRuns:
		return m.runGrid
	case state.KindTriggerHistories:
		return m.historyGrid
	case state.KindConnections:
		return m.connGrid
	}
	return nil
}

func (m Model) store() *state.Store {
	if m.loader == nil {
		return nil
	}
	return m.loader.Store()
}

func (m Model) loading(key state.Key) bool {
	s := m.store()
	return s != nil && s.Loading(key)
}

// ensureLoaded shows cached records for key and fetches them when they
// have never been loaded.
func (m Model) ensureLoaded(key state.Key) tea.Cmd {
	s := m.store()
	if s == nil {
		return nil
	}
	entry := s.Snapshot(key)
	if entry.Loaded {
		m.applyEntry(key, entry)
		return nil
	}
	if entry.Loading {
		return nil
	}
	return loadCmd(m.ctx, m.loader, key)
}

// refresh reloads the visible list. A refresh already in flight is reported
// instead of started twice.
func (m Model) refresh() tea.Cmd {
	if m.loader == nil {
		return nil
	}
	key := m.activeKey()
	if m.loading(key) {
		m.alerts.Add(alerts.Entry{Message: m.activeTitle() + " is already refreshing", Intent: alerts.IntentInfo})
		return nil
	}
	cmds := []tea.Cmd{loadCmd(m.ctx, m.loader, key)}
	if m.screen == screenDetail && key.Kind != state.KindFlow {
		if flowKey := m.keyFor(state.KindFlow); !m.loading(flowKey) {
			cmds = append(cmds, loadCmd(m.ctx, m.loader, flowKey))
		}
	}
	return tea.Batch(cmds...)
}

func (m Model) handleLoaded(msg loadedMsg) (tea.Model, tea.Cmd) {
	if errors.Is(msg.err, state.ErrBusy) {
		return m, nil
	}
	if msg.err != nil {
		m.alerts.Add(alerts.Entry{Message: msg.err, Intent: alerts.IntentError})
	}
	m.applyEntry(msg.key, msg.entry)

	if msg.key.Kind == state.KindFlow && msg.key == m.keyFor(state.KindFlow) && len(msg.entry.Records) > 0 {
		return m, m.setFlow(msg.entry.Records[0])
	}
	return m, nil
}

// applyEntry pushes records into the grid showing key.
func (m Model) applyEntry(key state.Key, entry state.Entry) {
	g := m.gridFor(key)
	if g == nil {
		return
	}
	records := make([]grid.Record, len(entry.Records))
	for i, rec := range entry.Records {
		records[i] = rec
	}
	g.SetRecords(records)
}

// setFlow replaces the detail flow record. When the primary trigger changes
// the history tab reloads for the new trigger.
func (m *Model) setFlow(rec flowapi.Record) tea.Cmd {
	m.flow = rec
	if label := grid.Resolve(rec, "properties.displayName").String(); label != "" {
		m.flowLabel = label
	}
	m.triggerGrid.SetRecords(screens.TriggerRecords(rec))

	trigger := screens.PrimaryTrigger(rec)
	if trigger == m.trigger {
		return nil
	}
	m.trigger = trigger
	m.historyGrid = newGridView(screens.TriggerHistories, m.pageSize)
	if m.tab == tabHistory {
		return m.ensureLoaded(m.tabKey())
	}
	return nil
}

// open drills into the selected row.
func (m Model) open() (tea.Model, tea.Cmd) {
	switch m.screen {
	case screenEnvironments:
		rec, ok := m.envGrid.Selected()
		if !ok {
			return m, nil
		}
		name := grid.Resolve(rec, "name").String()
		if name == "" {
			return m, nil
		}
		if name != m.env {
			m.flowGrid = newGridView(screens.Flows, m.pageSize)
		}
		m.env = name
		m.envLabel = recordName(grid.Resolve(rec, "properties.displayName").String(), name)
		m.screen = screenFlows
		return m, m.ensureLoaded(m.keyFor(state.KindFlows))

	case screenFlows:
		rec, ok := m.flowGrid.Selected()
		if !ok {
			return m, nil
		}
		name := grid.Resolve(rec, "name").String()
		if name == "" {
			return m, nil
		}
		m.flowName = name
		m.flowLabel = recordName(grid.Resolve(rec, "properties.displayName").String(), name)
		m.trigger = ""
		m.screen = screenDetail
		m.resetDetail()
		m.setFlow(rec)
		return m, tea.Batch(
			m.ensureLoaded(m.keyFor(state.KindFlow)),
			m.ensureLoaded(m.keyFor(state.KindRuns)),
		)
	}
	return m, nil
}

// back pops one navigation level.
func (m Model) back() (tea.Model, tea.Cmd) {
	switch m.screen {
	case screenDetail:
		m.screen = screenFlows
		return m, m.ensureLoaded(m.keyFor(state.KindFlows))
	case screenFlows:
		m.screen = screenEnvironments
		return m, m.ensureLoaded(m.keyFor(state.KindEnvironments))
	}
	return m, nil
}

func (m *Model) openInspect() {
	var rec any
	if r, ok := m.activeGrid().Selected(); ok {
		rec = r
	} else if m.screen == screenDetail && m.flow != nil {
		rec = m.flow
	}
	if rec == nil {
		return
	}
	m.inspect.SetContent(prettyJSON(rec))
	m.inspect.GotoTop()
	m.inspecting = true
	m.resizeInspect()
}

func (m *Model) resizeInspect() {
	m.inspect.Width = max(m.width-2, 1)
	m.inspect.Height = max(m.contentHeight()-2, 1)
}

func (m Model) activeTitle() string {
	switch m.screen {
	case screenFlows:
		return screens.Flows.Title
	case screenDetail:
		return tabTitles[m.tab]
	default:
		return screens.Environments.Title
	}
}

// Layout

func (m Model) alertsPanel() string {
	return renderAlerts(m.alerts.Alerts(), m.theme, m.width)
}

// contentHeight is the height left for the main box after header, alerts
// and footer.
func (m Model) contentHeight() int {
	used := 2 // header and footer
	if panel := m.alertsPanel(); panel != "" {
		used += lipgloss.Height(panel)
	}
	return max(m.height-used, 3)
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	parts := []string{m.renderHeader()}
	if panel := m.alertsPanel(); panel != "" {
		parts = append(parts, panel)
	}
	parts = append(parts, m.renderContent(), m.renderFooter())
	return strings.Join(parts, "\n")
}

// renderContent renders the boxed main area for the current screen.
func (m Model) renderContent() string {
	height := m.contentHeight()
	innerWidth := max(m.width-2, 1)
	innerHeight := max(height-2, 1)

	if m.inspecting {
		return m.renderTitledBox("Inspect  esc to close", m.inspect.View(), m.width, height, true)
	}

	switch m.screen {
	case screenFlows:
		title := fmt.Sprintf("%s · %s", screens.Flows.Title, m.envLabel)
		body := m.flowGrid.Render(m.theme, innerWidth, innerHeight, m.loading(m.activeKey()))
		return m.renderTitledBox(title, body, m.width, height, true)
	case screenDetail:
		return m.renderTitledBox(m.flowLabel, m.renderDetail(innerWidth, innerHeight), m.width, height, true)
	default:
		body := m.envGrid.Render(m.theme, innerWidth, innerHeight, m.loading(m.activeKey()))
		return m.renderTitledBox(screens.Environments.Title, body, m.width, height, true)
	}
}

// renderFooter renders the key hints bar.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	h := m.help
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent)).Background(lipgloss.Color(m.theme.Surface))
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Muted)).Background(lipgloss.Color(m.theme.Surface))
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Faint)).Background(lipgloss.Color(m.theme.Surface))
	h.Width = max(m.width-2, 0)
	return styles.Footer.Width(m.width).Render(h.View(shortHelp{bindings: m.footerBindings(), full: m.keys.FullHelp()}))
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
