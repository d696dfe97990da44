package panel

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/dial-a-charmer/charmer/internal/logging"
	"github.com/dial-a-charmer/charmer/internal/router"
	"github.com/dial-a-charmer/charmer/internal/state"
)

// Effect is a side effect requested by a render pass.
type Effect int

const (
	StartLogPolling Effect = iota
	StopLogPolling
	StartClockPolling
	StopClockPolling
	FetchPhonebook
	ScanWifi
)

func (e Effect) String() string {
	switch e {
	case StartLogPolling:
		return "start-log-polling"
	case StopLogPolling:
		return "stop-log-polling"
	case StartClockPolling:
		return "start-clock-polling"
	case StopClockPolling:
		return "stop-clock-polling"
	case FetchPhonebook:
		return "fetch-phonebook"
	case ScanWifi:
		return "scan-wifi"
	default:
		return "unknown"
	}
}

// Effects returns the side effects of rendering page with s. It does not
// modify s. Both pollers always get a start or a stop so that at most the
// current page's timer runs. Nothing is fetched before startup completed.
func Effects(page router.PageID, s *state.ClientState) []Effect {
	if page == router.Unknown {
		page = router.Home
	}
	if s.Loading || s.FatalErr != nil {
		return []Effect{StopLogPolling, StopClockPolling}
	}

	effects := make([]Effect, 0, 3)
	if page == router.Configuration {
		effects = append(effects, StartLogPolling)
	} else {
		effects = append(effects, StopLogPolling)
	}
	if page == router.Alarms {
		effects = append(effects, StartClockPolling)
	} else {
		effects = append(effects, StopClockPolling)
	}
	if page == router.Phonebook && s.NeedsPhonebook() {
		effects = append(effects, FetchPhonebook)
	}
	if page == router.Setup && s.Setup.NeedsScan() {
		effects = append(effects, ScanWifi)
	}
	return effects
}

// runEffects performs effects against the model's state and returns the
// commands that carry them out.
func (m AppModel) runEffects(effects []Effect) tea.Cmd {
	var cmds []tea.Cmd
	for _, e := range effects {
		switch e {
		case StartLogPolling:
			cmds = append(cmds, m.state.LogPoller.Start())
		case StopLogPolling:
			m.state.LogPoller.Stop()
		case StartClockPolling:
			cmds = append(cmds, m.state.ClockPoller.Start())
		case StopClockPolling:
			m.state.ClockPoller.Stop()
		case FetchPhonebook:
			visit := m.state.BeginPhonebookFetch()
			cmds = append(cmds, fetchPhonebookCmd(m.api, visit))
		case ScanWifi:
			if err := m.state.Setup.BeginScan(); err != nil {
				logging.Debug("Scan not started", zap.Error(err))
				continue
			}
			cmds = append(cmds, scanWifiCmd(m.api))
		}
	}
	return tea.Batch(cmds...)
}
