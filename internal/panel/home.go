package panel

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dial-a-charmer/charmer/internal/i18n"
	"github.com/dial-a-charmer/charmer/internal/router"
	"github.com/dial-a-charmer/charmer/internal/store"
)

// homeMenu lists the pages reachable from the home menu.
var homeMenu = []router.PageID{router.Alarms, router.Phonebook, router.Configuration}

type homePage struct {
	cursor int
}

func (m AppModel) updateHome(msg tea.KeyMsg) (AppModel, tea.Cmd) {
	k := m.keys.Home
	switch {
	case key.Matches(msg, k.Up):
		if m.home.cursor > 0 {
			m.home.cursor--
		}
	case key.Matches(msg, k.Down):
		if m.home.cursor < len(homeMenu)-1 {
			m.home.cursor++
		}
	case key.Matches(msg, k.Open):
		return m.navigate(homeMenu[m.home.cursor].Path()), nil
	case key.Matches(msg, k.Language):
		return m, m.setLanguage(m.state.Language.Other())
	}
	return m, nil
}

// setLanguage switches the panel language and saves it on the device.
func (m AppModel) setLanguage(lang i18n.Language) tea.Cmd {
	return m.saveSettings(opLanguage, store.SettingsPatch{Language: store.Ptr(string(lang))})
}

func (m AppModel) viewHome() string {
	var b strings.Builder

	langs := []string{}
	for _, l := range []i18n.Language{i18n.German, i18n.English} {
		if l == m.state.Language {
			langs = append(langs, NavActiveStyle.Render(l.String()))
		} else {
			langs = append(langs, NavStyle.Render(l.String()))
		}
	}
	b.WriteString(LabelStyle.Render(m.state.T("language")+": ") + strings.Join(langs, NavStyle.Render(" | ")))
	b.WriteString("\n\n")
	b.WriteString(RenderSubtitle(m.state.T("subtitle")))
	b.WriteString("\n\n")

	for i, p := range homeMenu {
		b.WriteString(RenderMenuItem(strings.ToUpper(m.state.T(navLabels[p])), i == m.home.cursor))
		b.WriteString("\n")
	}

	if m.state.Settings.WifiSSID != "" {
		b.WriteString("\n")
		b.WriteString(LabelStyle.Render(m.state.T("wifi")+": ") + ValueStyle.Render(m.state.Settings.WifiSSID))
	}
	return b.String()
}
