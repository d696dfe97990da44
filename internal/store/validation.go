package store

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ValidationError reports an input the device would reject. It is produced
// before any request is sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ValidateVolume checks a speaker volume percentage (0-100).
func ValidateVolume(field string, v int) error {
	if v < 0 || v > 100 {
		return invalid(field, "must be 0-100, got %d", v)
	}
	return nil
}

// ValidateSnooze checks the snooze duration in minutes.
func ValidateSnooze(minutes int) error {
	if minutes < MinSnooze || minutes > MaxSnooze {
		return invalid(FieldSnooze, "must be %d-%d minutes, got %d", MinSnooze, MaxSnooze, minutes)
	}
	return nil
}

// ValidatePreviewFile checks a ringtone name before it is sent to
// /api/preview. The device only plays .wav files from its ringtone
// directory and answers 404 for anything else.
func ValidatePreviewFile(name string) error {
	switch {
	case name == "":
		return invalid("file", "ringtone name is empty")
	case strings.Contains(name, ".."):
		return invalid("file", "%q must not contain '..'", name)
	case strings.ContainsAny(name, "/\\"):
		return invalid("file", "%q must be a bare file name", name)
	case !strings.HasSuffix(strings.ToLower(name), ".wav"):
		return invalid("file", "%q is not a .wav file", name)
	}
	return nil
}

// ValidateAlarm checks one alarm rule.
func ValidateAlarm(a AlarmRule) error {
	if a.Day < 0 || a.Day > 6 {
		return invalid(FieldAlarms, "day must be 0-6, got %d", a.Day)
	}
	if a.Hour < 0 || a.Hour > 23 {
		return invalid(FieldAlarms, "hour must be 0-23, got %d", a.Hour)
	}
	if a.Minute < 0 || a.Minute > 59 {
		return invalid(FieldAlarms, "minute must be 0-59, got %d", a.Minute)
	}
	if a.Sound != "" {
		if err := ValidatePreviewFile(a.Sound); err != nil {
			return invalid(FieldAlarms, "sound %q is not a ringtone", a.Sound)
		}
	}
	return nil
}

// ValidateLamp checks a lamp configuration.
func ValidateLamp(l LampConfig) error {
	if l.DayPercent < 0 || l.DayPercent > 100 || l.NightPercent < 0 || l.NightPercent > 100 {
		return invalid("led", "brightness must be 0-100")
	}
	if l.DayStart < 0 || l.DayStart > 23 || l.NightStart < 0 || l.NightStart > 23 {
		return invalid("led", "start hours must be 0-23")
	}
	return nil
}

// ValidateSSID checks a WiFi network name (1-32 bytes).
func ValidateSSID(ssid string) error {
	if ssid == "" {
		return invalid(FieldWifiSSID, "cannot be empty")
	}
	if len(ssid) > 32 {
		return invalid(FieldWifiSSID, "too long (max 32 bytes): %d", len(ssid))
	}
	return nil
}

// ParseClock parses "HH:MM" into hour and minute.
func ParseClock(s string) (hour, minute int, err error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, 0, invalid("time", "%q is not HH:MM", s)
	}
	if hour, err = strconv.Atoi(hh); err != nil || hour < 0 || hour > 23 {
		return 0, 0, invalid("time", "hour in %q must be 0-23", s)
	}
	if minute, err = strconv.Atoi(mm); err != nil || minute < 0 || minute > 59 {
		return 0, 0, invalid("time", "minute in %q must be 0-59", s)
	}
	return hour, minute, nil
}
