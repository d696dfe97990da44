package panel

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dial-a-charmer/charmer/internal/phonebook"
	"github.com/dial-a-charmer/charmer/internal/store"
)

// DeviceAPI is the device HTTP contract the panel consumes. *store.Client
// implements it.
type DeviceAPI interface {
	Host() string
	GetStatus(ctx context.Context) (*store.Status, error)
	GetSettings(ctx context.Context) (*store.Settings, error)
	SaveSettings(ctx context.Context, patch store.SettingsPatch) error
	GetPhonebook(ctx context.Context) (*phonebook.Book, error)
	SavePhonebook(ctx context.Context, book *phonebook.Book) error
	ScanWifi(ctx context.Context) ([]store.WifiNetwork, error)
	GetRingtones(ctx context.Context) ([]string, error)
	GetLogs(ctx context.Context) (*store.LogTail, error)
	GetTime(ctx context.Context) (*store.DeviceTime, error)
	PreviewSound(ctx context.Context, file string) error
}

var _ DeviceAPI = (*store.Client)(nil)

// saveOp names the mutating call behind a saveResultMsg.
type saveOp string

const (
	opLanguage  saveOp = "language"
	opAlarms    saveOp = "alarms"
	opConfig    saveOp = "configuration"
	opPhonebook saveOp = "phonebook"
	opWifi      saveOp = "wifi"
)

// Messages produced by commands

type startupMsg struct {
	status    *store.Status
	settings  *store.Settings
	ringtones []string
	err       error
}

type phonebookLoadedMsg struct {
	visit string
	book  *phonebook.Book
	err   error
}

type scanDoneMsg struct {
	networks []store.WifiNetwork
	err      error
}

type logsMsg struct {
	visit string
	tail  *store.LogTail
	err   error
}

type clockMsg struct {
	visit string
	time  *store.DeviceTime
	err   error
}

type saveResultMsg struct {
	op     saveOp
	book   *phonebook.Book
	reload bool
	err    error
}

type settingsReloadedMsg struct {
	settings *store.Settings
	err      error
}

type previewSentMsg struct {
	file string
	err  error
}

// Commands. Each issues its requests without a deadline: a hung request
// simply never delivers its message.

func startupCmd(api DeviceAPI) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		status, err := api.GetStatus(ctx)
		if err != nil {
			return startupMsg{err: err}
		}
		settings, err := api.GetSettings(ctx)
		if err != nil {
			return startupMsg{err: err}
		}
		ringtones, err := api.GetRingtones(ctx)
		if err != nil {
			return startupMsg{err: err}
		}
		return startupMsg{status: status, settings: settings, ringtones: ringtones}
	}
}

func fetchPhonebookCmd(api DeviceAPI, visit string) tea.Cmd {
	return func() tea.Msg {
		book, err := api.GetPhonebook(context.Background())
		return phonebookLoadedMsg{visit: visit, book: book, err: err}
	}
}

func scanWifiCmd(api DeviceAPI) tea.Cmd {
	return func() tea.Msg {
		networks, err := api.ScanWifi(context.Background())
		return scanDoneMsg{networks: networks, err: err}
	}
}

func fetchLogsCmd(api DeviceAPI, visit string) tea.Cmd {
	return func() tea.Msg {
		tail, err := api.GetLogs(context.Background())
		return logsMsg{visit: visit, tail: tail, err: err}
	}
}

func fetchClockCmd(api DeviceAPI, visit string) tea.Cmd {
	return func() tea.Msg {
		t, err := api.GetTime(context.Background())
		return clockMsg{visit: visit, time: t, err: err}
	}
}

func saveSettingsCmd(api DeviceAPI, op saveOp, patch store.SettingsPatch) tea.Cmd {
	reload := patch.Timezone != nil
	return func() tea.Msg {
		err := api.SaveSettings(context.Background(), patch)
		return saveResultMsg{op: op, reload: reload, err: err}
	}
}

func savePhonebookCmd(api DeviceAPI, book *phonebook.Book) tea.Cmd {
	return func() tea.Msg {
		err := api.SavePhonebook(context.Background(), book)
		return saveResultMsg{op: opPhonebook, book: book, err: err}
	}
}

func reloadSettingsCmd(api DeviceAPI) tea.Cmd {
	return func() tea.Msg {
		settings, err := api.GetSettings(context.Background())
		return settingsReloadedMsg{settings: settings, err: err}
	}
}

func previewCmd(api DeviceAPI, file string) tea.Cmd {
	return func() tea.Msg {
		err := api.PreviewSound(context.Background(), file)
		return previewSentMsg{file: file, err: err}
	}
}
