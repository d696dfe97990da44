package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Firmware defaults applied when a settings field is missing or malformed.
const (
	DefaultLanguage      = "de"
	DefaultVolume        = 60
	DefaultHandsetVolume = 50
	DefaultAlarmVolume   = 90
	DefaultAlarmMin      = 55
	DefaultSnooze        = 5
	DefaultTimerRingtone = "standard_ringtone.wav"
	DefaultAlarmSound    = "digital_alarm.wav"
	DefaultTimezone      = "CET-1CEST,M3.5.0,M10.5.0/3"

	MinSnooze = 1
	MaxSnooze = 20
)

// DefaultLamp is the lamp configuration of a factory-fresh device.
var DefaultLamp = LampConfig{Enabled: true, DayPercent: 100, NightPercent: 10, DayStart: 7, NightStart: 22}

// Settings field names on the wire.
const (
	FieldLanguage       = "lang"
	FieldWifiSSID       = "wifi_ssid"
	FieldWifiPass       = "wifi_pass"
	FieldVolume         = "volume"
	FieldHandsetVolume  = "volume_handset"
	FieldAlarmVolume    = "vol_alarm"
	FieldAlarmMin       = "vol_alarm_min"
	FieldSnooze         = "snooze_min"
	FieldTimerRingtone  = "timer_ringtone"
	FieldCurrentTime    = "current_time"
	FieldTimezone       = "timezone"
	FieldAlarms         = "alarms"
	FieldLampEnabled    = "led_enabled"
	FieldLampDay        = "led_day_pct"
	FieldLampNight      = "led_night_pct"
	FieldLampDayStart   = "led_day_start"
	FieldLampNightStart = "led_night_start"
)

// Settings is the typed snapshot returned by GET /api/settings.
type Settings struct {
	Language      string
	WifiSSID      string
	WifiPass      string
	Volume        int
	HandsetVolume int
	AlarmVolume   int
	AlarmMin      int
	Snooze        int
	TimerRingtone string
	CurrentTime   string
	Timezone      string
	Alarms        []AlarmRule
	Lamp          LampConfig

	// Extra holds fields this client does not know. Never sent back.
	Extra map[string]json.RawMessage

	gaps []string
}

// DefaultSettings returns the snapshot of a device that reported nothing.
func DefaultSettings() *Settings {
	s, _ := DecodeSettings([]byte(`{}`))
	return s
}

// DecodeSettings parses a settings document. Missing, null or ill-typed
// fields take their default value and are listed by Gaps; out-of-range
// numbers are clamped and also listed. Only a body that is not a JSON object
// is an error.
func DecodeSettings(data []byte) (*Settings, error) {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		raw = map[string]json.RawMessage{}
	}

	d := &fieldDecoder{raw: raw}
	s := &Settings{
		Language:      d.str(FieldLanguage, DefaultLanguage),
		WifiSSID:      d.str(FieldWifiSSID, ""),
		WifiPass:      d.str(FieldWifiPass, ""),
		Volume:        d.num(FieldVolume, DefaultVolume, 0, 100),
		HandsetVolume: d.num(FieldHandsetVolume, DefaultHandsetVolume, 0, 100),
		AlarmVolume:   d.num(FieldAlarmVolume, DefaultAlarmVolume, 0, 100),
		AlarmMin:      d.num(FieldAlarmMin, DefaultAlarmMin, 0, 100),
		Snooze:        d.num(FieldSnooze, DefaultSnooze, MinSnooze, MaxSnooze),
		TimerRingtone: d.str(FieldTimerRingtone, DefaultTimerRingtone),
		CurrentTime:   d.str(FieldCurrentTime, ""),
		Timezone:      d.str(FieldTimezone, DefaultTimezone),
		Alarms:        d.alarms(FieldAlarms),
		Lamp: LampConfig{
			Enabled:      d.flag(FieldLampEnabled, DefaultLamp.Enabled),
			DayPercent:   d.num(FieldLampDay, DefaultLamp.DayPercent, 0, 100),
			NightPercent: d.num(FieldLampNight, DefaultLamp.NightPercent, 0, 100),
			DayStart:     d.num(FieldLampDayStart, DefaultLamp.DayStart, 0, 23),
			NightStart:   d.num(FieldLampNightStart, DefaultLamp.NightStart, 0, 23),
		},
	}

	for k, v := range raw {
		if _, known := d.seen[k]; known {
			continue
		}
		if s.Extra == nil {
			s.Extra = make(map[string]json.RawMessage)
		}
		s.Extra[k] = v
	}
	sort.Strings(d.gaps)
	s.gaps = d.gaps
	return s, nil
}

// Gaps lists the fields that were missing or invalid and took a default.
func (s *Settings) Gaps() []string {
	return s.gaps
}

// HasNetwork reports whether a home network is configured.
func (s *Settings) HasNetwork() bool {
	return s != nil && s.WifiSSID != ""
}

// AlarmFor returns the rule for day. A missing day means no alarm.
func (s *Settings) AlarmFor(day int) (AlarmRule, bool) {
	for _, a := range s.Alarms {
		if a.Day == day {
			return a, true
		}
	}
	return AlarmRule{}, false
}

// Clone returns a deep copy.
func (s *Settings) Clone() *Settings {
	if s == nil {
		return nil
	}
	out := *s
	out.Alarms = append([]AlarmRule(nil), s.Alarms...)
	if s.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(s.Extra))
		for k, v := range s.Extra {
			out.Extra[k] = v
		}
	}
	out.gaps = append([]string(nil), s.gaps...)
	return &out
}

// Apply writes every field present in p into s. It is the optimistic local
// half of SaveSettings.
func (s *Settings) Apply(p SettingsPatch) {
	if p.Language != nil {
		s.Language = *p.Language
	}
	if p.WifiSSID != nil {
		s.WifiSSID = *p.WifiSSID
	}
	if p.WifiPass != nil {
		s.WifiPass = *p.WifiPass
	}
	if p.Volume != nil {
		s.Volume = clamp(*p.Volume, 0, 100)
	}
	if p.HandsetVolume != nil {
		s.HandsetVolume = clamp(*p.HandsetVolume, 0, 100)
	}
	if p.AlarmVolume != nil {
		s.AlarmVolume = clamp(*p.AlarmVolume, 0, 100)
	}
	if p.AlarmMin != nil {
		s.AlarmMin = clamp(*p.AlarmMin, 0, 100)
	}
	if p.Snooze != nil {
		s.Snooze = clamp(*p.Snooze, MinSnooze, MaxSnooze)
	}
	if p.TimerRingtone != nil {
		s.TimerRingtone = *p.TimerRingtone
	}
	if p.Timezone != nil {
		s.Timezone = *p.Timezone
	}
	if p.Alarms != nil {
		s.Alarms = append([]AlarmRule(nil), p.Alarms...)
	}
	if p.LampEnabled != nil {
		s.Lamp.Enabled = *p.LampEnabled
	}
	if p.LampDay != nil {
		s.Lamp.DayPercent = *p.LampDay
	}
	if p.LampNight != nil {
		s.Lamp.NightPercent = *p.LampNight
	}
	if p.LampDayStart != nil {
		s.Lamp.DayStart = *p.LampDayStart
	}
	if p.LampNightStart != nil {
		s.Lamp.NightStart = *p.LampNightStart
	}
	s.Lamp = s.Lamp.Clamp()
}

// MarshalJSON renders the snapshot with its wire field names, extras included.
func (s *Settings) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		FieldLanguage:       s.Language,
		FieldWifiSSID:       s.WifiSSID,
		FieldWifiPass:       s.WifiPass,
		FieldVolume:         s.Volume,
		FieldHandsetVolume:  s.HandsetVolume,
		FieldAlarmVolume:    s.AlarmVolume,
		FieldAlarmMin:       s.AlarmMin,
		FieldSnooze:         s.Snooze,
		FieldTimerRingtone:  s.TimerRingtone,
		FieldCurrentTime:    s.CurrentTime,
		FieldTimezone:       s.Timezone,
		FieldAlarms:         s.Alarms,
		FieldLampEnabled:    s.Lamp.Enabled,
		FieldLampDay:        s.Lamp.DayPercent,
		FieldLampNight:      s.Lamp.NightPercent,
		FieldLampDayStart:   s.Lamp.DayStart,
		FieldLampNightStart: s.Lamp.NightStart,
	}
	if s.Alarms == nil {
		m[FieldAlarms] = []AlarmRule{}
	}
	for k, v := range s.Extra {
		if _, ok := m[k]; !ok {
			m[k] = v
		}
	}
	return json.Marshal(m)
}

// SettingsPatch is a partial settings update. Only non-nil fields are sent.
type SettingsPatch struct {
	Language       *string     `json:"lang,omitempty"`
	WifiSSID       *string     `json:"wifi_ssid,omitempty"`
	WifiPass       *string     `json:"wifi_pass,omitempty"`
	Volume         *int        `json:"volume,omitempty"`
	HandsetVolume  *int        `json:"volume_handset,omitempty"`
	AlarmVolume    *int        `json:"vol_alarm,omitempty"`
	AlarmMin       *int        `json:"vol_alarm_min,omitempty"`
	Snooze         *int        `json:"snooze_min,omitempty"`
	TimerRingtone  *string     `json:"timer_ringtone,omitempty"`
	Timezone       *string     `json:"timezone,omitempty"`
	Alarms         []AlarmRule `json:"alarms,omitempty"`
	LampEnabled    *bool       `json:"led_enabled,omitempty"`
	LampDay        *int        `json:"led_day_pct,omitempty"`
	LampNight      *int        `json:"led_night_pct,omitempty"`
	LampDayStart   *int        `json:"led_day_start,omitempty"`
	LampNightStart *int        `json:"led_night_start,omitempty"`
}

// MarshalJSON encodes the non-nil fields. A non-nil but empty Alarms is
// sent as "alarms":[] so a patch can clear the week.
func (p SettingsPatch) MarshalJSON() ([]byte, error) {
	type plain SettingsPatch
	data, err := json.Marshal(plain(p))
	if err != nil || p.Alarms == nil || len(p.Alarms) > 0 {
		return data, err
	}
	empty := []byte(`"alarms":[]`)
	if bytes.Equal(data, []byte(`{}`)) {
		return append(append([]byte(`{`), empty...), '}'), nil
	}
	out := append([]byte(nil), data[:len(data)-1]...)
	out = append(out, ',')
	out = append(out, empty...)
	return append(out, '}'), nil
}

// Fields returns the wire names of the fields present in the patch, sorted.
func (p SettingsPatch) Fields() []string {
	data, err := json.Marshal(p)
	if err != nil {
		return nil
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	fields := make([]string, 0, len(m))
	for k := range m {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields
}

// IsEmpty reports whether the patch changes nothing.
func (p SettingsPatch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// fieldDecoder pulls typed values out of a raw settings object.
type fieldDecoder struct {
	raw  map[string]json.RawMessage
	seen map[string]struct{}
	gaps []string
}

// lookup marks name as known and returns its raw value, or false when the
// field is missing or null.
func (d *fieldDecoder) lookup(name string) (json.RawMessage, bool) {
	if d.seen == nil {
		d.seen = make(map[string]struct{})
	}
	d.seen[name] = struct{}{}
	v, ok := d.raw[name]
	if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		d.gaps = append(d.gaps, name)
		return nil, false
	}
	return v, true
}

func (d *fieldDecoder) str(name, def string) string {
	v, ok := d.lookup(name)
	if !ok {
		return def
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		d.gaps = append(d.gaps, name)
		return def
	}
	return s
}

func (d *fieldDecoder) num(name string, def, lo, hi int) int {
	v, ok := d.lookup(name)
	if !ok {
		return def
	}
	var f float64
	if err := json.Unmarshal(v, &f); err != nil {
		d.gaps = append(d.gaps, name)
		return def
	}
	n := int(f)
	if c := clamp(n, lo, hi); c != n {
		d.gaps = append(d.gaps, name)
		return c
	}
	return n
}

func (d *fieldDecoder) flag(name string, def bool) bool {
	v, ok := d.lookup(name)
	if !ok {
		return def
	}
	var b flexBool
	if err := json.Unmarshal(v, &b); err != nil {
		d.gaps = append(d.gaps, name)
		return def
	}
	return bool(b)
}

func (d *fieldDecoder) alarms(name string) []AlarmRule {
	v, ok := d.lookup(name)
	if !ok {
		return nil
	}
	var rules []AlarmRule
	if err := json.Unmarshal(v, &rules); err != nil {
		d.gaps = append(d.gaps, name)
		return nil
	}
	for i := range rules {
		if rules[i].Sound == "" {
			rules[i].Sound = DefaultAlarmSound
		}
	}
	return rules
}

// String summarizes the snapshot for logs.
func (s *Settings) String() string {
	return fmt.Sprintf("Settings{lang=%s ssid=%q volume=%d tz=%s alarms=%d}", s.Language, s.WifiSSID, s.Volume, s.Timezone, len(s.Alarms))
}
