package panel

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/dial-a-charmer/charmer/internal/i18n"
	"github.com/dial-a-charmer/charmer/internal/logging"
	"github.com/dial-a-charmer/charmer/internal/provisioning"
	"github.com/dial-a-charmer/charmer/internal/router"
	"github.com/dial-a-charmer/charmer/internal/state"
	"github.com/dial-a-charmer/charmer/internal/store"
	"github.com/dial-a-charmer/charmer/internal/timers"
)

// Options configures a panel run.
type Options struct {
	State state.Options

	// StartPath is the location the panel opens at, e.g. "/alarm".
	StartPath string
}

// DefaultOptions opens the home page with the device web UI's timings.
func DefaultOptions() Options {
	return Options{State: state.DefaultOptions(), StartPath: router.PathHome}
}

// AppModel is the top-level panel model. Update is the only place the client
// state changes; View only reads it.
type AppModel struct {
	api     DeviceAPI
	state   *state.ClientState
	history *router.History

	// Provisioning outcome of the startup check
	Decision provisioning.Decision

	// Page models
	home   homePage
	alarms alarmsPage
	book   phonebookPage
	config configPage
	setup  setupPage

	// UI state
	Width   int
	Height  int
	spinner spinner.Model
	help    help.Model
	keys    keyMaps
}

// NewAppModel creates a panel talking to api.
func NewAppModel(api DeviceAPI, opts Options) AppModel {
	if opts.StartPath == "" {
		opts.StartPath = router.PathHome
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	m := AppModel{
		api:     api,
		state:   state.New(opts.State),
		history: router.NewHistory(opts.StartPath),
		spinner: s,
		help:    help.New(),
		keys:    newKeyMaps(),
	}
	m.setup = newSetupPage()
	m.config = newConfigPage(m.state.Settings, DefaultWidth)
	return m
}

// State exposes the client state for inspection.
func (m AppModel) State() *state.ClientState {
	return m.state
}

// History exposes the navigation history.
func (m AppModel) History() *router.History {
	return m.history
}

// Page returns the page currently shown.
func (m AppModel) Page() router.PageID {
	return m.history.Page()
}

// Init starts the startup fetch of status, settings and ringtones.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(startupCmd(m.api), m.spinner.Tick)
}

// Update handles all messages. Every message ends with a reconcile pass
// that runs the side effects of the resulting page and state.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.config.resize(msg.Width)

	case tea.KeyMsg:
		var cmd tea.Cmd
		var quit bool
		m, cmd, quit = m.handleKey(msg)
		if quit {
			m.state.StopTimers()
			return m, tea.Quit
		}
		cmds = append(cmds, cmd)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case startupMsg:
		m = m.handleStartup(msg)

	case phonebookLoadedMsg:
		m = m.handlePhonebookLoaded(msg)

	case scanDoneMsg:
		if msg.err != nil {
			m.state.Setup.ScanFailed(msg.err)
		} else {
			m.state.Setup.ScanSucceeded(msg.networks)
		}
		m.setup.cursor = 0

	case timers.TickMsg:
		cmds = append(cmds, m.handleTick(msg))

	case logsMsg:
		m = m.handleLogs(msg)

	case clockMsg:
		switch {
		case !m.state.IsCurrent(msg.visit):
			logging.LogStaleResult("clock", msg.visit)
		case msg.err == nil && msg.time != nil:
			m.state.ClockText = msg.time.Time
		}

	case timers.FireMsg:
		if file, ok := m.state.Preview.Fire(msg); ok {
			cmds = append(cmds, previewCmd(m.api, file))
		}

	case previewSentMsg:
		if msg.err != nil {
			logging.Warn("Preview request failed", zap.String("file", msg.file), zap.Error(msg.err))
		}

	case saveResultMsg:
		var cmd tea.Cmd
		m, cmd = m.handleSaveResult(msg)
		cmds = append(cmds, cmd)

	case settingsReloadedMsg:
		if msg.err != nil {
			logging.Warn("Settings reload failed", zap.Error(msg.err))
			break
		}
		m.state.Settings = msg.settings
		m.config.tz = store.TimezoneIndex(msg.settings.Timezone)
	}

	cmds = append(cmds, m.reconcile())
	return m, tea.Batch(cmds...)
}

// reconcile runs the side effects of the current page.
func (m AppModel) reconcile() tea.Cmd {
	return m.runEffects(Effects(m.history.Page(), m.state))
}

func (m AppModel) handleStartup(msg startupMsg) AppModel {
	m.state.Loading = false
	if msg.err != nil {
		m.state.FatalErr = msg.err
		logging.Error("Startup failed", zap.Error(msg.err))
		return m
	}

	m.state.Status = msg.status
	m.state.Settings = msg.settings
	m.state.Ringtones = msg.ringtones
	m.state.Language = i18n.Parse(msg.settings.Language)

	decision, reason := provisioning.Evaluate(msg.status, msg.settings, m.api.Host())
	m.Decision = decision
	if provisioning.StartupRoute(decision, m.history) {
		logging.Info("Device needs setup", zap.String("reason", string(reason)))
	}
	return m.enterPage()
}

func (m AppModel) handlePhonebookLoaded(msg phonebookLoadedMsg) AppModel {
	if msg.err != nil {
		m.state.SetNotice(state.NoticeError, m.state.T("network_error")+": "+store.ShortMessage(msg.err))
		return m
	}
	if !m.state.ApplyPhonebook(msg.visit, msg.book) {
		logging.LogStaleResult("phonebook", msg.visit)
		return m
	}
	if m.history.Page() == router.Phonebook {
		m.book = newPhonebookPage(m.state.Language, m.state.Phonebook)
	}
	return m
}

func (m AppModel) handleTick(msg timers.TickMsg) tea.Cmd {
	switch msg.ID {
	case state.LogPollerID:
		if m.state.LogPoller.Accept(msg) {
			return tea.Batch(fetchLogsCmd(m.api, m.state.Visit()), m.state.LogPoller.Next())
		}
	case state.ClockPollerID:
		if m.state.ClockPoller.Accept(msg) {
			return tea.Batch(fetchClockCmd(m.api, m.state.Visit()), m.state.ClockPoller.Next())
		}
	}
	return nil
}

func (m AppModel) handleLogs(msg logsMsg) AppModel {
	if !m.state.IsCurrent(msg.visit) {
		logging.LogStaleResult("logs", msg.visit)
		return m
	}
	if msg.err != nil || msg.tail == nil || msg.tail.Lines == nil {
		return m
	}
	m.state.ApplyLogLines(msg.tail.Lines)
	m.config.setLog(m.state.LogLines)
	return m
}

func (m AppModel) handleSaveResult(msg saveResultMsg) (AppModel, tea.Cmd) {
	if msg.err != nil {
		logging.Warn("Save failed", zap.String("op", string(msg.op)), zap.Error(msg.err))
		m.state.SetNotice(state.NoticeError, m.state.T("save_failed")+": "+store.ShortMessage(msg.err))
		if msg.op == opWifi {
			m.state.Setup.ConnectDone(msg.err)
			return m, m.setup.password.Focus()
		}
		return m, nil
	}

	switch msg.op {
	case opWifi:
		m.state.Setup.ConnectDone(nil)
		m.state.DismissNotice()
	case opLanguage:
		m.state.DismissNotice()
	case opPhonebook:
		m.state.Phonebook = msg.book
		if m.history.Page() == router.Phonebook {
			m.book = newPhonebookPage(m.state.Language, m.state.Phonebook)
		}
		m.state.SetNotice(state.NoticeSuccess, m.state.T("saved"))
	default:
		m.state.SetNotice(state.NoticeSuccess, m.state.T("saved"))
	}

	if msg.reload {
		return m, reloadSettingsCmd(m.api)
	}
	return m, nil
}

// navigate pushes path and enters its page. Navigating to the current
// location does nothing.
func (m AppModel) navigate(path string) AppModel {
	before := m.history.Current()
	m.history.Push(path)
	if m.history.Current() == before {
		return m
	}
	return m.enterPage()
}

// enterPage starts a new visit of the current page: results of earlier
// visits are stale from now on and the page form is rebuilt from state.
func (m AppModel) enterPage() AppModel {
	page := m.history.Page()
	visit := m.state.BeginVisit()
	logging.LogRender(page.String(), visit)

	switch page {
	case router.Home:
		m.home = homePage{}
	case router.Alarms:
		m.alarms = newAlarmsPage(m.state.Settings)
		m.state.ClockText = ""
	case router.Phonebook:
		m.book = newPhonebookPage(m.state.Language, m.state.Phonebook)
	case router.Configuration:
		m.config = newConfigPage(m.state.Settings, m.Width)
		m.config.setLog(m.state.LogLines)
	case router.Setup:
		m.setup.cursor = 0
	}
	return m
}

// inputFocused reports whether a text input receives the keys.
func (m AppModel) inputFocused() bool {
	switch m.history.Page() {
	case router.Phonebook:
		return m.book.editing
	case router.Setup:
		return m.setup.passwordActive(&m.state.Setup)
	}
	return false
}

func (m AppModel) handleKey(msg tea.KeyMsg) (AppModel, tea.Cmd, bool) {
	g := m.keys.Global
	if msg.String() == "ctrl+c" {
		return m, nil, true
	}
	if m.state.Loading || m.state.FatalErr != nil {
		return m, nil, key.Matches(msg, g.Quit)
	}

	if !m.inputFocused() {
		switch {
		case key.Matches(msg, g.Quit):
			return m, nil, true
		case key.Matches(msg, g.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil, false
		case key.Matches(msg, g.Dismiss) && m.state.Notice != nil:
			m.state.DismissNotice()
			return m, nil, false
		case key.Matches(msg, g.Home):
			return m.navigate(router.PathHome), nil, false
		case key.Matches(msg, g.Alarms):
			return m.navigate(router.PathAlarms), nil, false
		case key.Matches(msg, g.Phonebook):
			return m.navigate(router.PathPhonebook), nil, false
		case key.Matches(msg, g.Configuration):
			return m.navigate(router.PathConfiguration), nil, false
		case key.Matches(msg, g.Setup):
			return m.navigate(router.PathSetup), nil, false
		case key.Matches(msg, g.Back):
			if m.history.Back() {
				m = m.enterPage()
			}
			return m, nil, false
		case key.Matches(msg, g.Forward):
			if m.history.Forward() {
				m = m.enterPage()
			}
			return m, nil, false
		}
	}

	var cmd tea.Cmd
	switch m.history.Page() {
	case router.Alarms:
		m, cmd = m.updateAlarms(msg)
	case router.Phonebook:
		m, cmd = m.updatePhonebook(msg)
	case router.Configuration:
		m, cmd = m.updateConfig(msg)
	case router.Setup:
		m, cmd = m.updateSetup(msg)
	default:
		m, cmd = m.updateHome(msg)
	}
	return m, cmd, false
}

// saveSettings applies patch optimistically and sends it.
func (m AppModel) saveSettings(op saveOp, patch store.SettingsPatch) tea.Cmd {
	if patch.IsEmpty() {
		return nil
	}
	m.state.ApplySettingsPatch(patch)
	if op != opLanguage {
		m.state.SetNotice(state.NoticeInfo, m.state.T("saving"))
	}
	return saveSettingsCmd(m.api, op, patch)
}

// requestPreview queues file for a debounced preview. Names the device
// would reject are not sent.
func (m AppModel) requestPreview(file string) tea.Cmd {
	if err := store.ValidatePreviewFile(file); err != nil {
		logging.Debug("Preview skipped", zap.Error(err))
		return nil
	}
	return m.state.Preview.Request(file)
}

// View renders the current page. It does not change the model.
func (m AppModel) View() string {
	var content string
	switch {
	case m.state.Loading:
		content = m.spinner.View() + " " + m.state.T("loading")
	case m.state.FatalErr != nil:
		content = m.viewFatal()
	default:
		content = m.viewPage()
	}
	return RenderApplicationContainer(content, m.helpView(), m.hostLabel(), m.Width, m.Height)
}

func (m AppModel) viewFatal() string {
	var b strings.Builder
	b.WriteString(RenderError(m.state.T("startup_failed") + ": " + store.ShortMessage(m.state.FatalErr)))
	b.WriteString("\n\n")
	b.WriteString(LabelStyle.Render(m.state.FatalErr.Error()))
	b.WriteString("\n\n")
	b.WriteString(store.TroubleshootingHint(m.state.FatalErr))
	return b.String()
}

func (m AppModel) viewPage() string {
	page := m.history.Page()

	var body string
	switch page {
	case router.Alarms:
		body = m.viewAlarms()
	case router.Phonebook:
		body = m.viewPhonebook()
	case router.Configuration:
		body = m.viewConfig()
	case router.Setup:
		body = m.viewSetup()
	default:
		body = m.viewHome()
	}

	parts := []string{RenderTitle(m.pageTitle(page))}
	if n := RenderNotice(m.state.Notice); n != "" {
		parts = append(parts, n)
	}
	parts = append(parts, body, "", m.viewNav(page))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m AppModel) pageTitle(page router.PageID) string {
	switch page {
	case router.Alarms:
		return m.state.T("alarm_title")
	case router.Phonebook:
		return m.state.T("pb")
	case router.Configuration:
		return m.state.T("config")
	case router.Setup:
		return m.state.T("setup")
	default:
		return m.state.T("title")
	}
}

var navKeys = map[router.PageID]string{
	router.Home:          "1",
	router.Alarms:        "2",
	router.Phonebook:     "3",
	router.Configuration: "4",
	router.Setup:         "5",
}

var navLabels = map[router.PageID]string{
	router.Home:          "home",
	router.Alarms:        "alarms",
	router.Phonebook:     "pb",
	router.Configuration: "config",
	router.Setup:         "setup",
}

// viewNav renders the page links.
func (m AppModel) viewNav(active router.PageID) string {
	links := make([]string, 0, len(router.Pages))
	for _, p := range router.Pages {
		label := navKeys[p] + " " + m.state.T(navLabels[p])
		if p == active {
			links = append(links, NavActiveStyle.Render(label))
		} else {
			links = append(links, NavStyle.Render(label))
		}
	}
	return strings.Join(links, NavStyle.Render("  ·  "))
}

func (m AppModel) hostLabel() string {
	host := m.api.Host()
	if m.state.Status != nil && m.state.Status.IsAccessPoint() {
		host += " (AP)"
	}
	return host
}

func (m AppModel) helpView() string {
	return m.help.View(m.pageHelp())
}

func (m AppModel) pageHelp() pageHelp {
	g := m.keys.Global
	nav := g.navigation()
	general := []key.Binding{g.Dismiss, g.Help, g.Quit}

	var page []key.Binding
	switch m.history.Page() {
	case router.Alarms:
		k := m.keys.Alarms
		page = []key.Binding{k.Up, k.Down, k.Toggle, k.Ramp, k.Message, k.Later, k.Earlier, k.HourUp, k.HourDown, k.NextSound, k.PrevSound, k.Save}
	case router.Phonebook:
		k := m.keys.Phonebook
		if m.book.editing {
			page = []key.Binding{k.Done, k.Save}
		} else {
			page = []key.Binding{k.Up, k.Down, k.Edit, k.Save}
		}
	case router.Configuration:
		k := m.keys.Config
		page = []key.Binding{k.Up, k.Down, k.Decrease, k.Increase, k.Activate, k.Save, k.LogUp, k.LogDown}
	case router.Setup:
		k := m.keys.Setup
		if m.setup.passwordActive(&m.state.Setup) {
			page = []key.Binding{k.Connect, k.Cancel}
		} else {
			page = []key.Binding{k.Up, k.Down, k.Select}
		}
	default:
		k := m.keys.Home
		page = []key.Binding{k.Up, k.Down, k.Open, k.Language}
	}

	short := append(append([]key.Binding{}, page...), g.Help, g.Quit)
	if len(short) > 6 {
		short = append(append([]key.Binding{}, page[:4]...), g.Help, g.Quit)
	}
	return pageHelp{
		short: short,
		full:  [][]key.Binding{page, nav, general},
	}
}
