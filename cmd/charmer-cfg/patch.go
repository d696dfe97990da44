package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dial-a-charmer/charmer/internal/i18n"
	"github.com/dial-a-charmer/charmer/internal/store"
)

// settingKeys maps accepted names for 'settings set' to wire field names.
var settingKeys = map[string]string{
	"lang":            store.FieldLanguage,
	"language":        store.FieldLanguage,
	"volume":          store.FieldVolume,
	"handset":         store.FieldHandsetVolume,
	"volume_handset":  store.FieldHandsetVolume,
	"alarm_volume":    store.FieldAlarmVolume,
	"vol_alarm":       store.FieldAlarmVolume,
	"alarm_min":       store.FieldAlarmMin,
	"vol_alarm_min":   store.FieldAlarmMin,
	"snooze":          store.FieldSnooze,
	"snooze_min":      store.FieldSnooze,
	"ringtone":        store.FieldTimerRingtone,
	"timer_ringtone":  store.FieldTimerRingtone,
	"tz":              store.FieldTimezone,
	"timezone":        store.FieldTimezone,
	"led":             store.FieldLampEnabled,
	"led_enabled":     store.FieldLampEnabled,
	"led_day":         store.FieldLampDay,
	"led_day_pct":     store.FieldLampDay,
	"led_night":       store.FieldLampNight,
	"led_night_pct":   store.FieldLampNight,
	"led_day_start":   store.FieldLampDayStart,
	"led_night_start": store.FieldLampNightStart,
}

// parseAssignments builds a settings patch from key=value arguments. Values
// are validated before anything is sent.
func parseAssignments(args []string) (store.SettingsPatch, error) {
	var p store.SettingsPatch
	if len(args) == 0 {
		return p, fmt.Errorf("nothing to set, pass key=value pairs")
	}

	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return p, fmt.Errorf("%q is not key=value", arg)
		}
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(value)

		if name == store.FieldWifiSSID || name == store.FieldWifiPass || name == "wifi" {
			return p, fmt.Errorf("use 'charmer-cfg wifi connect' to change the network")
		}
		field, known := settingKeys[name]
		if !known {
			return p, fmt.Errorf("unknown setting %q", name)
		}

		if err := applyAssignment(&p, field, value); err != nil {
			return p, err
		}
	}
	return p, nil
}

func applyAssignment(p *store.SettingsPatch, field, value string) error {
	switch field {
	case store.FieldLanguage:
		lang := strings.ToLower(value)
		if lang != string(i18n.German) && lang != string(i18n.English) {
			return fmt.Errorf("invalid %s: must be de or en, got %q", field, value)
		}
		p.Language = store.Ptr(lang)

	case store.FieldVolume, store.FieldHandsetVolume, store.FieldAlarmVolume, store.FieldAlarmMin:
		v, err := atoi(field, value)
		if err != nil {
			return err
		}
		if err := store.ValidateVolume(field, v); err != nil {
			return err
		}
		switch field {
		case store.FieldVolume:
			p.Volume = store.Ptr(v)
		case store.FieldHandsetVolume:
			p.HandsetVolume = store.Ptr(v)
		case store.FieldAlarmMin:
			p.AlarmMin = store.Ptr(v)
		default:
			p.AlarmVolume = store.Ptr(v)
		}

	case store.FieldSnooze:
		v, err := atoi(field, value)
		if err != nil {
			return err
		}
		if err := store.ValidateSnooze(v); err != nil {
			return err
		}
		p.Snooze = store.Ptr(v)

	case store.FieldTimerRingtone:
		if err := store.ValidatePreviewFile(value); err != nil {
			return err
		}
		p.TimerRingtone = store.Ptr(value)

	case store.FieldTimezone:
		tz, ok := store.LookupTimezone(value)
		if !ok {
			return fmt.Errorf("unknown timezone %q, see 'charmer-cfg settings timezones'", value)
		}
		p.Timezone = store.Ptr(tz.Value)

	case store.FieldLampEnabled:
		on, err := parseSwitch(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", field, err)
		}
		p.LampEnabled = store.Ptr(on)

	case store.FieldLampDay, store.FieldLampNight:
		v, err := atoi(field, value)
		if err != nil {
			return err
		}
		if err := store.ValidateVolume(field, v); err != nil {
			return err
		}
		if field == store.FieldLampDay {
			p.LampDay = store.Ptr(v)
		} else {
			p.LampNight = store.Ptr(v)
		}

	case store.FieldLampDayStart, store.FieldLampNightStart:
		v, err := atoi(field, value)
		if err != nil {
			return err
		}
		if v < 0 || v > 23 {
			return fmt.Errorf("invalid %s: hour must be 0-23, got %d", field, v)
		}
		if field == store.FieldLampDayStart {
			p.LampDayStart = store.Ptr(v)
		} else {
			p.LampNightStart = store.Ptr(v)
		}
	}
	return nil
}

func atoi(field, value string) (int, error) {
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q is not a number", field, value)
	}
	return v, nil
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	}
	return false, fmt.Errorf("%q is not on or off", s)
}

// dayNames accepts English and German weekday names and abbreviations.
var dayNames = map[string]int{
	"sun": 0, "sunday": 0, "so": 0, "sonntag": 0,
	"mon": 1, "monday": 1, "mo": 1, "montag": 1,
	"tue": 2, "tuesday": 2, "di": 2, "dienstag": 2,
	"wed": 3, "wednesday": 3, "mi": 3, "mittwoch": 3,
	"thu": 4, "thursday": 4, "do": 4, "donnerstag": 4,
	"fri": 5, "friday": 5, "fr": 5, "freitag": 5,
	"sat": 6, "saturday": 6, "sa": 6, "samstag": 6,
}

// parseDay resolves a weekday given as 0-6 (0 = Sunday) or by name.
func parseDay(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if d, ok := dayNames[s]; ok {
		return d, nil
	}
	if d, err := strconv.Atoi(s); err == nil && d >= 0 && d <= 6 {
		return d, nil
	}
	return 0, fmt.Errorf("unknown day %q (use 0-6 or a name like mon)", s)
}

// parseClock parses "H:MM" or "HH:MM".
func parseClock(s string) (hour, minute int, err error) {
	hs, ms, ok := strings.Cut(strings.TrimSpace(s), ":")
	if ok && len(ms) == 2 {
		h, err1 := strconv.Atoi(hs)
		m, err2 := strconv.Atoi(ms)
		if err1 == nil && err2 == nil && h >= 0 && h <= 23 && m >= 0 && m <= 59 {
			return h, m, nil
		}
	}
	return 0, 0, fmt.Errorf("invalid time %q (use HH:MM)", s)
}

// newLines returns the lines of cur that follow what prev already showed.
// The device keeps a fixed-size ring, so the overlap is the longest suffix
// of prev that is a prefix of cur.
func newLines(prev, cur []string) []string {
	maxK := min(len(prev), len(cur))
	for k := maxK; k > 0; k-- {
		if equalLines(prev[len(prev)-k:], cur[:k]) {
			return cur[k:]
		}
	}
	return cur
}

func equalLines(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
