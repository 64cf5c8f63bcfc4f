package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/chromaview/internal/bridge"
	"github.com/five82/chromaview/internal/explorer"
	"github.com/five82/chromaview/internal/logging"
	"github.com/five82/chromaview/internal/prefs"
	"github.com/five82/chromaview/internal/state"
)

// screen is the top-level page.
type screen int

const (
	screenConnect screen = iota
	screenMain
)

// pane is the focused area of the Collections menu.
type pane int

const (
	paneList pane = iota
	paneGrid
	paneDetail
	paneCount
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Bridge    *bridge.Bridge
	Store     *state.Store
	Prefs     *prefs.Store
	Connect   bridge.ConnectParams
	PageSize  int
	LogPath   string
	ThemeFile string
}

// flash is a transient header message.
type flash struct {
	text  string
	isErr bool
	at    time.Time
}

// homeState holds the Home menu's server facts.
type homeState struct {
	testing    bool
	testResult string
	testErr    bool
	resetting  bool
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	bridge    *bridge.Bridge
	store     *state.Store
	prefs     *prefs.Store
	keys      keyMap
	pageSize  int
	logPath   string
	themeFile string
	window    *windowOpener
	copyText  func(string) error

	// UI state
	theme    Theme
	themes   themeRing
	themeErr string
	screen   screen
	width    int
	height   int
	ready    bool
	focus    pane
	logo     string
	spinner  spinner.Model

	// Session state
	snapshot state.Snapshot
	endpoint string

	// Connect screen
	connect connectForm

	// Collection list
	collections *explorer.CollectionList
	listCursor  int
	listInput   textinput.Model
	listEditing bool

	// Data browser
	data           *explorer.DataController
	grid           *explorer.Grid
	gridRow        int
	gridCol        int
	gridInput      textinput.Model
	gridEditing    bool
	detailViewport viewport.Model

	// Menus
	home           homeState
	settingsCursor int

	// Overlays
	modal    Modal
	showHelp bool

	logs  logPanel
	flash flash
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pageSize := opts.PageSize
	if pageSize == 0 {
		pageSize = explorer.DefaultPageSize
	}

	m := Model{
		ctx:         ctx,
		bridge:      opts.Bridge,
		store:       opts.Store,
		prefs:       opts.Prefs,
		keys:        DefaultKeyMap(),
		pageSize:    pageSize,
		logPath:     opts.LogPath,
		themeFile:   opts.ThemeFile,
		window:      &windowOpener{},
		copyText:    clipboard.WriteAll,
		screen:      screenConnect,
		logo:        createLogo(),
		connect:     newConnectForm(opts.Connect),
		collections: explorer.NewCollectionList(),
		data:        explorer.NewDataController(pageSize),
		grid:        &explorer.Grid{},
		logs:        newLogPanel(),
	}
	if m.store == nil {
		m.store = &state.Store{}
	}
	if m.bridge != nil {
		m.bridge.SetWindowOpener(m.window)
	}

	custom, ok, err := LoadThemeOverrides(opts.ThemeFile)
	if err != nil {
		m.themeErr = err.Error()
		logging.FromContext(ctx).Warn("theme overrides ignored", zap.Error(err))
	}
	if ok {
		m.themes.custom = &custom
	}
	themeName := ""
	if m.prefs != nil {
		themeName = m.prefs.Theme()
	}
	m.theme = m.themes.get(themeName)

	s := spinner.New()
	s.Spinner = spinner.Dot
	m.spinner = s

	m.listInput = newFilterInput("filter collections")
	m.gridInput = newFilterInput("filter column")
	m.detailViewport = viewport.New(0, 0)
	return m
}

func newFilterInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "/ "
	ti.CharLimit = 100
	return ti
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tickCmd(DefaultUIInterval),
		fetchSnapshotCmd(m.store),
		textinput.Blink,
		m.spinner.Tick,
		m.connect.focusCmd(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case connectDoneMsg:
		return m.handleConnectDone(msg)

	case windowOpenedMsg:
		return m.enterMain(msg.url)

	case collectionsMsg:
		return m.handleCollections(msg)

	case detailMsg:
		m.data.ApplyDetail(msg.fetch, msg.res)
		return m, nil

	case rowCountMsg:
		_, refetch := m.data.ApplyRowCount(msg.fetch, msg.res)
		return m, runFetches(m.ctx, m.bridge, refetch...)

	case recordsMsg:
		if m.data.ApplyRecords(msg.fetch, msg.res) {
			m.grid.SetRecords(m.data.Records())
			m.clampGrid()
			m.updateDetailViewport()
		}
		return m, nil

	case infoMsg, createDoneMsg:
		return m.updateModal(msg)

	case deleteDoneMsg:
		return m.handleDeleteDone(msg)

	case resetStartedMsg:
		m.home.resetting = true
		return m, m.spinner.Tick

	case resetDoneMsg:
		return m.handleResetDone(msg)

	case versionMsg:
		return m.handleVersion(msg)

	case healthMsg:
		m.home.testing = false
		if msg.res.OK() {
			m.home.testResult, m.home.testErr = "Connection OK", false
		} else {
			m.home.testResult, m.home.testErr = msg.res.Err, true
		}
		m.store.Dispatch(state.Heartbeat{Err: resultErr(msg.res.OK(), msg.res.Err)})
		return m, fetchSnapshotCmd(m.store)

	case logLinesMsg:
		m.logs.apply(msg)
		m.updateLogViewport()
		return m, nil

	case flashMsg:
		m.setFlash(msg.text, msg.isErr)
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			m.setFlash("Copy failed: "+msg.err.Error(), true)
		} else {
			m.setFlash("Copied "+pluralize(msg.chars, "character"), false)
		}
		return m, nil
	}

	return m.updateInputs(msg)
}

// updateInputs forwards non-key messages such as cursor blinks to whichever
// text input is active.
func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.modal != nil:
		return m.updateModal(msg)
	case m.screen == screenConnect:
		m.connect, cmd = m.connect.update(msg)
	case m.listEditing:
		m.listInput, cmd = m.listInput.Update(msg)
	case m.gridEditing:
		m.gridInput, cmd = m.gridInput.Update(msg)
	}
	return m, cmd
}

func (m Model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.modal == nil {
		return m, nil
	}
	next, cmd, closed := m.modal.Update(msg, m.keys)
	if closed {
		m.modal = nil
	} else {
		m.modal = next
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.screen == screenConnect {
		return m.renderConnect()
	}

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.modal != nil {
		return m.updateModal(msg)
	}

	if m.screen == screenConnect {
		return m.handleConnectKey(msg)
	}

	if m.listEditing {
		return m.handleListFilterKey(msg)
	}
	if m.gridEditing {
		return m.handleGridFilterKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.setTheme(m.themes.next(m.theme.Name))
		return m, nil

	case key.Matches(msg, m.keys.ToggleLogs):
		m.logs.visible = !m.logs.visible
		m.resize()
		if m.logs.visible {
			return m, readLogsCmd(m.logPath)
		}
		return m, nil

	case key.Matches(msg, m.keys.GrowLogs):
		m.resizeLogs(1)
		return m, nil

	case key.Matches(msg, m.keys.ShrinkLogs):
		m.resizeLogs(-1)
		return m, nil

	case key.Matches(msg, m.keys.LogLevel):
		m.logs.cycleLevel()
		m.updateLogViewport()
		return m, nil

	case key.Matches(msg, m.keys.MenuHome):
		return m.switchMenu(state.MenuHome)

	case key.Matches(msg, m.keys.MenuCollections):
		return m.switchMenu(state.MenuCollections)

	case key.Matches(msg, m.keys.MenuSettings):
		return m.switchMenu(state.MenuSettings)
	}

	switch m.snapshot.Menu {
	case state.MenuCollections:
		return m.handleCollectionsKey(msg)
	case state.MenuSettings:
		return m.handleSettingsKey(msg)
	default:
		return m.handleHomeKey(msg)
	}
}

// switchMenu changes the visible section and loads what it needs.
func (m Model) switchMenu(menu state.Menu) (tea.Model, tea.Cmd) {
	m.dispatch(state.SetMenu{Menu: menu})
	switch menu {
	case state.MenuCollections:
		return m, fetchCollectionsCmd(m.ctx, m.bridge)
	case state.MenuHome:
		return m, tea.Batch(versionCmd(m.ctx, m.bridge), fetchCollectionsCmd(m.ctx, m.bridge))
	}
	return m, nil
}

// dispatch applies actions to the store and refreshes the local snapshot so
// the next View reflects them.
func (m *Model) dispatch(actions ...state.Action) {
	m.store.Dispatch(actions...)
	m.snapshot = m.store.Snapshot()
}

// handleTick processes the refresh tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{fetchSnapshotCmd(m.store)}

	if m.screen == screenMain && m.logs.visible {
		cmds = append(cmds, readLogsCmd(m.logPath))
	}

	if m.flash.text != "" && time.Since(m.flash.at) > FlashDuration {
		m.flash = flash{}
	}

	cmds = append(cmds, tickCmd(DefaultUIInterval))
	return m, tea.Batch(cmds...)
}

// enterMain switches to the main screen after create_window. It runs once
// per connection.
func (m Model) enterMain(url string) (tea.Model, tea.Cmd) {
	if m.screen == screenMain {
		return m, nil
	}
	m.screen = screenMain
	m.connect.busy = false
	m.endpoint = url
	m.snapshot = m.store.Snapshot()
	m.collections = explorer.NewCollectionList()
	m.listCursor = 0
	m.data = explorer.NewDataController(m.pageSize)
	m.grid = &explorer.Grid{}
	m.gridRow, m.gridCol = 0, 0
	m.focus = paneList
	m.home = homeState{}

	if m.prefs != nil {
		m.logs.height = m.prefs.LogPanelHeight(url, DefaultLogPanelHeight)
		if !m.prefs.GuideDismissed(url, guideWelcome) {
			m.modal = newGuideModal(url, m.prefs)
		}
	}
	m.resize()
	m.updateDetailViewport()

	return m, tea.Batch(
		tea.SetWindowTitle(url),
		fetchCollectionsCmd(m.ctx, m.bridge),
		versionCmd(m.ctx, m.bridge),
		readLogsCmd(m.logPath),
	)
}

func (m Model) handleConnectDone(msg connectDoneMsg) (tea.Model, tea.Cmd) {
	m.connect.busy = false
	if msg.err != nil {
		m.connect.err = msg.err.Error()
		return m, nil
	}
	m.connect.err = ""
	return m.enterMain(msg.params.URL)
}

func (m Model) handleVersion(msg versionMsg) (tea.Model, tea.Cmd) {
	if !msg.res.OK() {
		logging.FromContext(m.ctx).Warn("fetch version", zap.String("error", msg.res.Err))
		return m, nil
	}
	m.dispatch(state.VersionLoaded{Version: msg.res.Value})
	return m, nil
}

// disconnect returns to the connect screen.
func (m Model) disconnect() (tea.Model, tea.Cmd) {
	m.dispatch(state.Disconnected{})
	m.screen = screenConnect
	m.endpoint = ""
	m.modal = nil
	m.data.Clear()
	m.grid = &explorer.Grid{}
	return m, tea.Batch(tea.SetWindowTitle(appName), m.connect.focusCmd())
}

func (m *Model) setTheme(name string) {
	m.theme = m.themes.get(name)
	if m.prefs != nil {
		if err := m.prefs.SetTheme(m.theme.Name); err != nil {
			m.setFlash("Could not save theme: "+err.Error(), true)
		}
	}
	m.updateDetailViewport()
	m.updateLogViewport()
}

func (m *Model) setFlash(text string, isErr bool) {
	m.flash = flash{text: text, isErr: isErr, at: time.Now()}
}

// favorites is the endpoint-scoped favorites view.
func (m Model) favorites() prefs.Favorites {
	if m.prefs == nil {
		return prefs.Favorites{}
	}
	return m.prefs.Favorites(m.endpoint)
}

// contentHeight is the space below the header and command bar, minus the
// log panel when shown.
func (m Model) contentHeight() int {
	h := m.height - 2
	if m.logs.visible && m.screen == screenMain {
		h -= m.logs.height
	}
	return maxInt(h, 3)
}

// resize recomputes viewport sizes after a size or layout change.
func (m *Model) resize() {
	m.updateLogViewport()
	m.updateDetailViewport()
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	// Header line 1: logo + status
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	// Header line 2: command bar
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	b.WriteString(m.renderContent())

	if m.logs.visible {
		b.WriteString("\n")
		b.WriteString(m.renderLogs())
	}

	return b.String()
}

// renderContent renders the main content area based on current menu.
func (m Model) renderContent() string {
	switch m.snapshot.Menu {
	case state.MenuCollections:
		return m.renderCollections()
	case state.MenuSettings:
		return m.renderSettings()
	default:
		return m.renderHome()
	}
}

func resultErr(ok bool, msg string) error {
	if ok {
		return nil
	}
	return errors.New(msg)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	m.window.setSend(p.Send)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
