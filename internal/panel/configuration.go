package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dial-a-charmer/charmer/internal/state"
	"github.com/dial-a-charmer/charmer/internal/store"
)

// logPlaceholder is shown while the log tail is empty.
const logPlaceholder = "READY>_"

type configField int

const (
	fieldTimezone configField = iota
	fieldVolume
	fieldHandset
	fieldRingtone
	fieldLampEnabled
	fieldLampDay
	fieldLampNight
	fieldLampDayStart
	fieldLampNightStart
	configFieldCount
)

// configPage is the edit form of the configuration page plus the log tail.
type configPage struct {
	cursor   configField
	tz       int // index into store.Timezones, -1 when the device zone is not listed
	volume   int
	handset  int
	ringtone string
	lamp     store.LampConfig
	log      viewport.Model
}

func newConfigPage(s *store.Settings, width int) configPage {
	p := configPage{
		tz:       store.TimezoneIndex(s.Timezone),
		volume:   s.Volume,
		handset:  s.HandsetVolume,
		ringtone: s.TimerRingtone,
		lamp:     s.Lamp,
		log:      viewport.New(logWidth(width), LogViewHeight),
	}
	p.setLog(nil)
	return p
}

func logWidth(width int) int {
	if width <= 0 {
		width = DefaultWidth
	}
	return max(width-10, 20)
}

func (p *configPage) resize(width int) {
	p.log.Width = logWidth(width)
}

// setLog shows lines in the log viewport, scrolled to the newest line.
func (p *configPage) setLog(lines []string) {
	if len(lines) == 0 {
		p.log.SetContent(logPlaceholder)
		return
	}
	p.log.SetContent(strings.Join(lines, "\n"))
	p.log.GotoBottom()
}

// adjust changes the selected field by one step in direction dir.
func (p *configPage) adjust(dir int, ringtones []string) (preview string) {
	tzs := store.Timezones()
	switch p.cursor {
	case fieldTimezone:
		if p.tz < 0 {
			p.tz = 0
		} else {
			p.tz = ((p.tz+dir)%len(tzs) + len(tzs)) % len(tzs)
		}
	case fieldVolume:
		p.volume = clampInt(p.volume+5*dir, 0, 100)
	case fieldHandset:
		p.handset = clampInt(p.handset+5*dir, 0, 100)
	case fieldRingtone:
		if len(ringtones) > 0 {
			p.ringtone = ringtones[cycleIndex(ringtones, p.ringtone, dir)]
			return p.ringtone
		}
	case fieldLampEnabled:
		p.lamp.Enabled = !p.lamp.Enabled
	case fieldLampDay:
		p.lamp.DayPercent = clampInt(p.lamp.DayPercent+5*dir, 0, 100)
	case fieldLampNight:
		p.lamp.NightPercent = clampInt(p.lamp.NightPercent+5*dir, 0, 100)
	case fieldLampDayStart:
		p.lamp.DayStart = (p.lamp.DayStart + dir + 24) % 24
	case fieldLampNightStart:
		p.lamp.NightStart = (p.lamp.NightStart + dir + 24) % 24
	}
	return ""
}

// timezonePatch saves only the selected zone.
func (p configPage) timezonePatch(s *store.Settings) store.SettingsPatch {
	if p.tz < 0 {
		return store.SettingsPatch{}
	}
	tz := store.Timezones()[p.tz]
	if tz.Value == s.Timezone {
		return store.SettingsPatch{}
	}
	return store.SettingsPatch{Timezone: store.Ptr(tz.Value)}
}

// patch returns the fields that differ from s.
func (p configPage) patch(s *store.Settings) store.SettingsPatch {
	out := p.timezonePatch(s)
	if p.volume != s.Volume {
		out.Volume = store.Ptr(p.volume)
	}
	if p.handset != s.HandsetVolume {
		out.HandsetVolume = store.Ptr(p.handset)
	}
	if p.ringtone != s.TimerRingtone {
		out.TimerRingtone = store.Ptr(p.ringtone)
	}
	if p.lamp.Enabled != s.Lamp.Enabled {
		out.LampEnabled = store.Ptr(p.lamp.Enabled)
	}
	if p.lamp.DayPercent != s.Lamp.DayPercent {
		out.LampDay = store.Ptr(p.lamp.DayPercent)
	}
	if p.lamp.NightPercent != s.Lamp.NightPercent {
		out.LampNight = store.Ptr(p.lamp.NightPercent)
	}
	if p.lamp.DayStart != s.Lamp.DayStart {
		out.LampDayStart = store.Ptr(p.lamp.DayStart)
	}
	if p.lamp.NightStart != s.Lamp.NightStart {
		out.LampNightStart = store.Ptr(p.lamp.NightStart)
	}
	return out
}

func (p configPage) validate() error {
	if err := store.ValidateVolume(store.FieldVolume, p.volume); err != nil {
		return err
	}
	if err := store.ValidateVolume(store.FieldHandsetVolume, p.handset); err != nil {
		return err
	}
	return store.ValidateLamp(p.lamp)
}

func (m AppModel) updateConfig(msg tea.KeyMsg) (AppModel, tea.Cmd) {
	k := m.keys.Config
	p := &m.config

	switch {
	case key.Matches(msg, k.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, k.Down):
		if p.cursor < configFieldCount-1 {
			p.cursor++
		}
	case key.Matches(msg, k.Increase):
		if file := p.adjust(1, m.state.Ringtones); file != "" {
			return m, m.requestPreview(file)
		}
	case key.Matches(msg, k.Decrease):
		if file := p.adjust(-1, m.state.Ringtones); file != "" {
			return m, m.requestPreview(file)
		}
	case key.Matches(msg, k.Activate):
		switch p.cursor {
		case fieldTimezone:
			return m, m.saveSettings(opConfig, p.timezonePatch(m.state.Settings))
		case fieldRingtone:
			return m, m.requestPreview(p.ringtone)
		case fieldLampEnabled:
			p.lamp.Enabled = !p.lamp.Enabled
		}
	case key.Matches(msg, k.Save):
		if err := p.validate(); err != nil {
			m.state.SetNotice(state.NoticeError, err.Error())
			return m, nil
		}
		return m, m.saveSettings(opConfig, p.patch(m.state.Settings))
	case key.Matches(msg, k.LogUp):
		p.log.PageUp()
	case key.Matches(msg, k.LogDown):
		p.log.PageDown()
	}
	return m, nil
}

func (m AppModel) viewConfig() string {
	p := m.config
	s := m.state.Settings
	t := m.state.T

	tzName := s.Timezone
	if p.tz >= 0 {
		tzName = store.Timezones()[p.tz].Name
	}
	currentTime := s.CurrentTime
	if currentTime == "" {
		currentTime = "--"
	}

	fields := []struct {
		label string
		value string
	}{
		{t("timezone"), tzName},
		{t("volume_base"), fmt.Sprintf("%d%%", p.volume)},
		{t("volume_handset"), fmt.Sprintf("%d%%", p.handset)},
		{t("timer_alarm") + " " + t("ringtone"), previewLabel(p.ringtone, m.state.Preview.Pending())},
		{t("lamp_enabled"), onOff(t, p.lamp.Enabled)},
		{t("lamp_day"), fmt.Sprintf("%d%%", p.lamp.DayPercent)},
		{t("lamp_night"), fmt.Sprintf("%d%%", p.lamp.NightPercent)},
		{t("lamp_day_start"), fmt.Sprintf("%02d:00", p.lamp.DayStart)},
		{t("lamp_night_start"), fmt.Sprintf("%02d:00", p.lamp.NightStart)},
	}

	var b strings.Builder
	b.WriteString(LabelStyle.Render(t("datetime")+"  ") + ValueStyle.Render(currentTime))
	b.WriteString("\n\n")
	for i, f := range fields {
		line := fmt.Sprintf("%-24s %s", f.label, ValueStyle.Render(f.value))
		b.WriteString(RenderMenuItem(line, configField(i) == p.cursor))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(LabelStyle.Render(t("logs")) + DisabledStyle.Render(logStatus(m.state)))
	b.WriteString("\n")
	b.WriteString(CRTStyle.Render(p.log.View()))
	return b.String()
}

// previewLabel marks a ringtone whose preview waits for the quiet interval.
func previewLabel(ringtone string, pending bool) string {
	if pending {
		return "♪ " + ringtone + " …"
	}
	return "♪ " + ringtone
}

// logStatus describes the tail size and, while polling, the refresh interval.
func logStatus(s *state.ClientState) string {
	status := fmt.Sprintf("  [%d]", s.LogLimit())
	if s.LogPoller.Running() {
		status += " ● " + s.LogPoller.Interval().String()
	}
	return status
}

func onOff(t func(string) string, on bool) string {
	if on {
		return t("on")
	}
	return t("off")
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
