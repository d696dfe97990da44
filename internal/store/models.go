package store

import (
	"encoding/json"
	"fmt"
)

// Status is the response of GET /api/status.
type Status struct {
	Status   string `json:"status"`
	Platform string `json:"platform,omitempty"`
	Mode     string `json:"mode"`
}

// ModeAccessPoint is the status mode reported while the device runs its own hotspot.
const ModeAccessPoint = "ap"

// IsAccessPoint reports whether the device is in provisioning hotspot mode
func (s *Status) IsAccessPoint() bool {
	return s != nil && s.Mode == ModeAccessPoint
}

// WifiNetwork is one entry of a WiFi scan result.
type WifiNetwork struct {
	SSID string `json:"ssid"`
	RSSI int    `json:"rssi"`
	Auth int    `json:"auth"`
}

// Secure reports whether the network needs a password
func (n WifiNetwork) Secure() bool {
	return n.Auth > 0
}

// LogTail is the response of GET /api/logs.
type LogTail struct {
	Lines []string `json:"lines"`
}

// Last returns at most n trailing lines.
func (l LogTail) Last(n int) []string {
	if n <= 0 || len(l.Lines) <= n {
		return l.Lines
	}
	return l.Lines[len(l.Lines)-n:]
}

// DeviceTime is the response of GET /api/time, formatted "HH:MM:SS".
type DeviceTime struct {
	Time string `json:"time"`
}

// AlarmRule is the alarm configured for one weekday.
type AlarmRule struct {
	Day         int    `json:"d"` // 0 = Sunday
	Hour        int    `json:"h"`
	Minute      int    `json:"m"`
	Enabled     bool   `json:"en"`
	VolumeRamp  bool   `json:"rmp"`
	WithMessage bool   `json:"msg"`
	Sound       string `json:"snd"`
}

// UnmarshalJSON accepts flags as JSON booleans or as 0/1 numbers, like the firmware.
func (a *AlarmRule) UnmarshalJSON(data []byte) error {
	var raw struct {
		Day         int      `json:"d"`
		Hour        int      `json:"h"`
		Minute      int      `json:"m"`
		Enabled     flexBool `json:"en"`
		VolumeRamp  flexBool `json:"rmp"`
		WithMessage flexBool `json:"msg"`
		Sound       string   `json:"snd"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = AlarmRule{
		Day:         raw.Day,
		Hour:        raw.Hour,
		Minute:      raw.Minute,
		Enabled:     bool(raw.Enabled),
		VolumeRamp:  bool(raw.VolumeRamp),
		WithMessage: bool(raw.WithMessage),
		Sound:       raw.Sound,
	}
	return nil
}

// Clock returns the alarm time as "HH:MM".
func (a AlarmRule) Clock() string {
	return fmt.Sprintf("%02d:%02d", a.Hour, a.Minute)
}

// SoundOrDefault returns the alarm sound, or DefaultAlarmSound when unset.
func (a AlarmRule) SoundOrDefault() string {
	if a.Sound == "" {
		return DefaultAlarmSound
	}
	return a.Sound
}

// DisplayDays is the weekday order alarms are presented in: Monday first.
var DisplayDays = []int{1, 2, 3, 4, 5, 6, 0}

// flexBool decodes true/false as well as numeric 1/0.
type flexBool bool

func (f *flexBool) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = flexBool(b)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected bool or number, got %s", data)
	}
	*f = n == 1
	return nil
}

// LampConfig is the day/night LED lamp configuration.
type LampConfig struct {
	Enabled      bool
	DayPercent   int
	NightPercent int
	DayStart     int // hour 0..23
	NightStart   int // hour 0..23
}

// Clamp forces percentages into 0..100 and hours into 0..23.
func (l LampConfig) Clamp() LampConfig {
	l.DayPercent = clamp(l.DayPercent, 0, 100)
	l.NightPercent = clamp(l.NightPercent, 0, 100)
	l.DayStart = clamp(l.DayStart, 0, 23)
	l.NightStart = clamp(l.NightStart, 0, 23)
	return l
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Ptr returns a pointer to v, for building a SettingsPatch.
func Ptr[T any](v T) *T {
	return &v
}
