package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dial-a-charmer/charmer/internal/provisioning"
	"github.com/dial-a-charmer/charmer/internal/store"
)

// setupPage is the network list cursor and the password input of the setup
// page. The flow itself lives in the client state.
type setupPage struct {
	cursor   int
	password textinput.Model
}

func newSetupPage() setupPage {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.CharLimit = 64
	ti.Width = 32
	return setupPage{password: ti}
}

// passwordActive reports whether the password input takes the keys.
func (p setupPage) passwordActive(f *provisioning.Flow) bool {
	return f.Selected != nil && (f.Phase == provisioning.ScanResult || f.Phase == provisioning.ConnectFailed)
}

func (m AppModel) updateSetup(msg tea.KeyMsg) (AppModel, tea.Cmd) {
	k := m.keys.Setup
	p := &m.setup
	flow := &m.state.Setup

	if p.passwordActive(flow) {
		switch {
		case key.Matches(msg, k.Cancel):
			flow.Cancel()
			p.password.Blur()
			return m, nil
		case key.Matches(msg, k.Connect):
			patch, err := flow.BeginConnect(p.password.Value())
			if err != nil {
				return m, nil
			}
			p.password.Blur()
			return m, m.saveSettings(opWifi, patch)
		}
		var cmd tea.Cmd
		p.password, cmd = p.password.Update(msg)
		return m, cmd
	}

	if flow.Phase != provisioning.ScanResult {
		return m, nil
	}
	switch {
	case key.Matches(msg, k.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, k.Down):
		if p.cursor < len(flow.Networks)-1 {
			p.cursor++
		}
	case key.Matches(msg, k.Select):
		if err := flow.Select(p.cursor); err != nil {
			return m, nil
		}
		if err := store.ValidateSSID(flow.Selected.SSID); err != nil {
			flow.Cancel()
			return m, nil
		}
		p.password.Reset()
		return m, p.password.Focus()
	}
	return m, nil
}

func (m AppModel) viewSetup() string {
	flow := m.state.Setup
	t := m.state.T
	var b strings.Builder

	switch flow.Phase {
	case provisioning.Idle, provisioning.Scanning:
		b.WriteString(m.spinner.View() + " " + t("scanning"))

	case provisioning.ScanError:
		b.WriteString(RenderError(t("scan_error") + ": " + store.ShortMessage(flow.Err)))
		b.WriteString("\n\n")
		b.WriteString(LabelStyle.Render(t("scan_retry")))

	case provisioning.Connecting:
		b.WriteString(m.spinner.View() + " " + t("connecting"))

	case provisioning.Connected:
		ssid := ""
		if flow.Selected != nil {
			ssid = flow.Selected.SSID
		}
		b.WriteString(RenderSuccess(t("connected") + " " + ssid))
		b.WriteString("\n\n")
		b.WriteString(t("connected_hint") + " " + ValueStyle.Render(provisioning.RestartURL()))

	default:
		if flow.Selected != nil {
			b.WriteString(t("connect_to") + " " + ValueStyle.Render(flow.Selected.SSID))
			b.WriteString("\n\n")
			b.WriteString(LabelStyle.Render(t("password")))
			b.WriteString("\n")
			b.WriteString(m.setup.password.View())
			if flow.Phase == provisioning.ConnectFailed && flow.Err != nil {
				b.WriteString("\n\n")
				b.WriteString(RenderError(t("network_error") + ": " + store.ShortMessage(flow.Err)))
			}
			break
		}
		b.WriteString(t("select_network"))
		b.WriteString("\n\n")
		if len(flow.Networks) == 0 {
			b.WriteString(LabelStyle.Render(t("no_networks")))
		}
		for i, n := range flow.Networks {
			b.WriteString(RenderMenuItem(formatNetwork(n), i == m.setup.cursor))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// formatNetwork renders a scan entry: lock for secured networks and the
// signal strength.
func formatNetwork(n store.WifiNetwork) string {
	lock := "  "
	if n.Secure() {
		lock = "🔒"
	}
	return fmt.Sprintf("%s %-32s %s", lock, n.SSID, LabelStyle.Render(fmt.Sprintf("(%d dBm)", n.RSSI)))
}
