package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dial-a-charmer/charmer/internal/i18n"
	"github.com/dial-a-charmer/charmer/internal/state"
	"github.com/dial-a-charmer/charmer/internal/store"
)

const minutesPerDay = 24 * 60

// alarmsPage is the edit form of the alarms page. rules holds the configured
// days in display order; a day without a rule has no alarm and no row.
type alarmsPage struct {
	rules  []store.AlarmRule
	cursor int // len(rules) selects the snooze row
	snooze int
}

func newAlarmsPage(s *store.Settings) alarmsPage {
	p := alarmsPage{snooze: s.Snooze}
	for _, day := range store.DisplayDays {
		if r, ok := s.AlarmFor(day); ok {
			r.Sound = r.SoundOrDefault()
			p.rules = append(p.rules, r)
		}
	}
	return p
}

func (p alarmsPage) onSnooze() bool {
	return p.cursor == len(p.rules)
}

// shift moves the selected alarm by minutes, wrapping around midnight.
func (p *alarmsPage) shift(minutes int) {
	r := &p.rules[p.cursor]
	t := (r.Hour*60 + r.Minute + minutes) % minutesPerDay
	if t < 0 {
		t += minutesPerDay
	}
	r.Hour, r.Minute = t/60, t%60
}

// cycleSound selects the next or previous ringtone and returns it.
func (p *alarmsPage) cycleSound(ringtones []string, step int) (string, bool) {
	if len(ringtones) == 0 {
		return "", false
	}
	r := &p.rules[p.cursor]
	next := cycleIndex(ringtones, r.Sound, step)
	r.Sound = ringtones[next]
	return r.Sound, true
}

// patch is the save payload: the whole alarm list plus the snooze time.
func (p alarmsPage) patch() store.SettingsPatch {
	rules := make([]store.AlarmRule, len(p.rules))
	copy(rules, p.rules)
	return store.SettingsPatch{Alarms: rules, Snooze: store.Ptr(p.snooze)}
}

func (p alarmsPage) validate() error {
	for _, r := range p.rules {
		if err := store.ValidateAlarm(r); err != nil {
			return err
		}
	}
	return store.ValidateSnooze(p.snooze)
}

func (m AppModel) updateAlarms(msg tea.KeyMsg) (AppModel, tea.Cmd) {
	k := m.keys.Alarms
	p := &m.alarms
	if len(p.rules) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, k.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, k.Down):
		if p.cursor < len(p.rules) {
			p.cursor++
		}
	case key.Matches(msg, k.Save):
		if err := p.validate(); err != nil {
			m.state.SetNotice(state.NoticeError, err.Error())
			return m, nil
		}
		return m, m.saveSettings(opAlarms, p.patch())
	case p.onSnooze():
		switch {
		case key.Matches(msg, k.Later), key.Matches(msg, k.NextSound):
			p.snooze = min(p.snooze+1, store.MaxSnooze)
		case key.Matches(msg, k.Earlier), key.Matches(msg, k.PrevSound):
			p.snooze = max(p.snooze-1, store.MinSnooze)
		}
	case key.Matches(msg, k.Toggle):
		p.rules[p.cursor].Enabled = !p.rules[p.cursor].Enabled
	case key.Matches(msg, k.Ramp):
		p.rules[p.cursor].VolumeRamp = !p.rules[p.cursor].VolumeRamp
	case key.Matches(msg, k.Message):
		p.rules[p.cursor].WithMessage = !p.rules[p.cursor].WithMessage
	case key.Matches(msg, k.Later):
		p.shift(5)
	case key.Matches(msg, k.Earlier):
		p.shift(-5)
	case key.Matches(msg, k.HourUp):
		p.shift(60)
	case key.Matches(msg, k.HourDown):
		p.shift(-60)
	case key.Matches(msg, k.NextSound):
		if file, ok := p.cycleSound(m.state.Ringtones, 1); ok {
			return m, m.requestPreview(file)
		}
	case key.Matches(msg, k.PrevSound):
		if file, ok := p.cycleSound(m.state.Ringtones, -1); ok {
			return m, m.requestPreview(file)
		}
	}
	return m, nil
}

func (m AppModel) viewAlarms() string {
	var b strings.Builder

	clock := m.state.ClockText
	if clock == "" {
		clock = "--:--:--"
	}
	b.WriteString(LabelStyle.Render(m.state.T("device_time")+"  ") + ValueStyle.Render(clock))
	b.WriteString("\n\n")

	p := m.alarms
	if len(p.rules) == 0 {
		b.WriteString(LabelStyle.Render(m.state.T("loading_alarms")))
		return b.String()
	}

	idx := 0
	for _, day := range store.DisplayDays {
		name := fmt.Sprintf("%-11s", i18n.DayName(m.state.Language, day))
		if idx >= len(p.rules) || p.rules[idx].Day != day {
			b.WriteString(MenuItemStyle.Render("  " + DisabledStyle.Render(name+" -- "+m.state.T("no_alarm"))))
			b.WriteString("\n")
			continue
		}
		r := p.rules[idx]
		line := strings.Join([]string{
			name,
			ValueStyle.Render(r.Clock()),
			RenderCheckbox(r.Enabled, m.state.T("active")),
			RenderCheckbox(r.VolumeRamp, m.state.T("fade")),
			RenderCheckbox(r.WithMessage, m.state.T("message")),
			"♪ " + r.Sound,
		}, "  ")
		b.WriteString(RenderMenuItem(line, idx == p.cursor))
		b.WriteString("\n")
		idx++
	}

	b.WriteString("\n")
	snooze := fmt.Sprintf("%s: %d %s", m.state.T("snooze"), p.snooze, m.state.T("min"))
	b.WriteString(RenderMenuItem(snooze, p.onSnooze()))
	return b.String()
}

// cycleIndex returns the index step positions away from current in list,
// wrapping around. An unknown current value starts from the first entry.
func cycleIndex(list []string, current string, step int) int {
	i := -1
	for j, v := range list {
		if v == current {
			i = j
			break
		}
	}
	if i < 0 {
		return 0
	}
	n := len(list)
	return ((i+step)%n + n) % n
}
