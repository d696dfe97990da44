package config

import (
	"sort"
	"time"

	"github.com/dial-a-charmer/charmer/internal/i18n"
	"github.com/dial-a-charmer/charmer/internal/state"
)

// Registry represents the entire user configuration file.
// It stores known devices and panel preferences.
type Registry struct {
	Version     int                `yaml:"version"`
	Devices     map[string]*Device `yaml:"devices,omitempty"` // Keyed by host (mDNS name or IP)
	Preferences *Preferences       `yaml:"preferences,omitempty"`
}

// Device represents what the client remembers about one device.
type Device struct {
	Nickname string    `yaml:"nickname,omitempty"`  // User-friendly name
	LastIP   string    `yaml:"last_ip,omitempty"`   // Last resolved address
	Port     int       `yaml:"port,omitempty"`      // Web server port when not 80
	LastMode string    `yaml:"last_mode,omitempty"` // "ap" or "sta" at last contact
	LastSeen time.Time `yaml:"last_seen,omitempty"` // Last discovery/connection time
}

// Preferences represents panel and CLI defaults. Flags override them.
type Preferences struct {
	DefaultDevice     string `yaml:"default_device,omitempty"` // Host used when --device is not given
	Language          string `yaml:"language,omitempty"`       // "de" or "en" before the device reports one
	PreviewDebounceMS int    `yaml:"preview_debounce_ms"`      // Quiet period before a ringtone preview plays
	LogPollMS         int    `yaml:"log_poll_ms"`              // Log tail refresh on the configuration page
	ClockPollMS       int    `yaml:"clock_poll_ms"`            // Device clock refresh on the alarms page
	LogTailLines      int    `yaml:"log_tail_lines"`           // Log lines kept by the panel
	DiscoverTimeout   int    `yaml:"discover_timeout"`         // mDNS discovery timeout in seconds
}

// DefaultPreferences returns the preferences of a fresh install.
func DefaultPreferences() *Preferences {
	d := state.DefaultOptions()
	return &Preferences{
		PreviewDebounceMS: int(d.PreviewQuiet / time.Millisecond),
		LogPollMS:         int(d.LogPoll / time.Millisecond),
		ClockPollMS:       int(d.ClockPoll / time.Millisecond),
		LogTailLines:      d.LogTailLines,
		DiscoverTimeout:   5,
	}
}

// StateOptions converts the preferences to panel state options. Missing or
// non-positive values keep their defaults.
func (p *Preferences) StateOptions() state.Options {
	opts := state.DefaultOptions()
	if p == nil {
		return opts
	}
	if p.Language != "" {
		opts.Language = i18n.Parse(p.Language)
	}
	if p.PreviewDebounceMS > 0 {
		opts.PreviewQuiet = time.Duration(p.PreviewDebounceMS) * time.Millisecond
	}
	if p.LogPollMS > 0 {
		opts.LogPoll = time.Duration(p.LogPollMS) * time.Millisecond
	}
	if p.ClockPollMS > 0 {
		opts.ClockPoll = time.Duration(p.ClockPollMS) * time.Millisecond
	}
	if p.LogTailLines > 0 {
		opts.LogTailLines = p.LogTailLines
	}
	return opts
}

// DiscoverDuration returns the discovery timeout.
func (p *Preferences) DiscoverDuration() time.Duration {
	if p == nil || p.DiscoverTimeout <= 0 {
		return 5 * time.Second
	}
	return time.Duration(p.DiscoverTimeout) * time.Second
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:     1,
		Devices:     make(map[string]*Device),
		Preferences: DefaultPreferences(),
	}
}

// GetDevice retrieves device metadata by host.
// Returns nil if the device doesn't exist in the registry.
func (r *Registry) GetDevice(host string) *Device {
	return r.Devices[host]
}

// EnsureDevice ensures a device entry exists in the registry.
// Returns the device entry (existing or newly created).
func (r *Registry) EnsureDevice(host string) *Device {
	if r.Devices == nil {
		r.Devices = make(map[string]*Device)
	}

	if device, exists := r.Devices[host]; exists {
		return device
	}

	device := &Device{}
	r.Devices[host] = device
	return device
}

// UpdateDeviceLastSeen records a successful contact with a device.
func (r *Registry) UpdateDeviceLastSeen(host, ip, mode string) {
	device := r.EnsureDevice(host)
	device.LastSeen = time.Now()
	if ip != "" {
		device.LastIP = ip
	}
	if mode != "" {
		device.LastMode = mode
	}
}

// SetDeviceNickname sets a user-friendly nickname for a device.
func (r *Registry) SetDeviceNickname(host, nickname string) {
	device := r.EnsureDevice(host)
	device.Nickname = nickname
}

// Hosts returns the known device hosts, most recently seen first.
func (r *Registry) Hosts() []string {
	hosts := make([]string, 0, len(r.Devices))
	for h := range r.Devices {
		hosts = append(hosts, h)
	}
	sort.Slice(hosts, func(i, j int) bool {
		a, b := r.Devices[hosts[i]], r.Devices[hosts[j]]
		if !a.LastSeen.Equal(b.LastSeen) {
			return a.LastSeen.After(b.LastSeen)
		}
		return hosts[i] < hosts[j]
	})
	return hosts
}

// ResolveDevice picks the device host to talk to: the explicit flag value,
// else the default device preference, else fallback.
func (r *Registry) ResolveDevice(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	if r != nil && r.Preferences != nil && r.Preferences.DefaultDevice != "" {
		return r.Preferences.DefaultDevice
	}
	return fallback
}
