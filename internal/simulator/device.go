package simulator

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dial-a-charmer/charmer/internal/i18n"
	"github.com/dial-a-charmer/charmer/internal/phonebook"
	"github.com/dial-a-charmer/charmer/internal/store"
)

// logLineCount is the size of the device log ring.
const logLineCount = 20

// Options seed a simulated device. Zero fields take factory defaults.
type Options struct {
	// Mode is the status mode, store.ModeAccessPoint or "sta". Empty means
	// "ap" until a network is configured.
	Mode      string
	Settings  *store.Settings
	Phonebook *phonebook.Book
	Ringtones []string
	Networks  []store.WifiNetwork

	// Clock drives current_time and /api/time.
	Clock func() time.Time
}

// DefaultRingtones is the SD card content of a fresh device.
var DefaultRingtones = []string{
	store.DefaultTimerRingtone,
	store.DefaultAlarmSound,
	"classic_bell.wav",
	"cuckoo.wav",
}

// DefaultNetworks is what a scan finds when no networks were given.
var DefaultNetworks = []store.WifiNetwork{
	{SSID: "FRITZ!Box 7590", RSSI: -48, Auth: 3},
	{SSID: "Cafe Central", RSSI: -71, Auth: 0},
	{SSID: "Nachbar", RSSI: -83, Auth: 4},
}

// FactorySettings returns the settings of an unprovisioned device: no home
// network and a disabled 07:00 alarm on every day.
func FactorySettings() *store.Settings {
	s := store.DefaultSettings()
	for day := 0; day < 7; day++ {
		s.Alarms = append(s.Alarms, store.AlarmRule{Day: day, Hour: 7, Sound: store.DefaultAlarmSound})
	}
	return s
}

// FactoryPhonebook assigns every system slot its default dial code and name.
func FactoryPhonebook(lang i18n.Language) *phonebook.Book {
	book := phonebook.NewBook()
	for _, slot := range phonebook.Catalog(lang) {
		book.Set(slot.DefaultKey, slot.Entry(slot.DefaultName))
	}
	return book
}

// Device is the mutable state of a simulated device. It is safe for
// concurrent use.
type Device struct {
	mu        sync.Mutex
	mode      string
	settings  *store.Settings
	book      *phonebook.Book
	ringtones []string
	networks  []store.WifiNetwork
	clock     func() time.Time
	boot      time.Time
	logs      []string
	previews  []string
}

// NewDevice creates a device from opts.
func NewDevice(opts Options) *Device {
	d := &Device{
		mode:      opts.Mode,
		settings:  opts.Settings.Clone(),
		book:      opts.Phonebook,
		ringtones: opts.Ringtones,
		networks:  opts.Networks,
		clock:     opts.Clock,
	}
	if d.settings == nil {
		d.settings = FactorySettings()
	}
	if d.book == nil {
		d.book = FactoryPhonebook(i18n.Parse(d.settings.Language))
	} else {
		d.book = d.book.Clone()
	}
	if d.ringtones == nil {
		d.ringtones = DefaultRingtones
	}
	if d.networks == nil {
		d.networks = DefaultNetworks
	}
	if d.clock == nil {
		d.clock = time.Now
	}
	if d.mode == "" {
		d.mode = store.ModeAccessPoint
		if d.settings.HasNetwork() {
			d.mode = "sta"
		}
	}
	d.boot = d.clock()
	d.logf("I", "main", "Dial-A-Charmer booting, mode %s", d.mode)
	return d
}

// logf appends a firmware-style line to the log ring. Callers hold mu or
// are still constructing the device.
func (d *Device) logf(level, tag, format string, args ...any) {
	ms := d.clock().Sub(d.boot).Milliseconds()
	line := fmt.Sprintf("%s (%d) %s: %s", level, ms, tag, fmt.Sprintf(format, args...))
	d.logs = append(d.logs, line)
	if len(d.logs) > logLineCount {
		d.logs = d.logs[len(d.logs)-logLineCount:]
	}
}

// Status returns the /api/status document.
func (d *Device) Status() store.Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return store.Status{Status: "ok", Platform: "simulator", Mode: d.mode}
}

// Mode returns the current status mode.
func (d *Device) Mode() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

// Settings returns a snapshot as the device reports it: current_time filled
// in and the WiFi password withheld.
func (d *Device) Settings() *store.Settings {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.settings.Clone()
	s.CurrentTime = d.clock().Format("2006-01-02 15:04:05")
	s.WifiPass = ""
	return s
}

// StoredSettings returns the settings including the stored WiFi password.
func (d *Device) StoredSettings() *store.Settings {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.settings.Clone()
}

// ApplySettings stores the fields present in p. Alarm rules are merged by
// day, an empty SSID is ignored, and a new SSID switches the device to
// station mode the way the firmware restarts into it.
func (d *Device) ApplySettings(p store.SettingsPatch) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if p.WifiSSID != nil && *p.WifiSSID == "" {
		p.WifiSSID = nil
	}
	if p.Alarms != nil {
		p.Alarms = mergeAlarms(d.settings.Alarms, p.Alarms)
	}
	langChanged := p.Language != nil && *p.Language != d.settings.Language

	d.settings.Apply(p)
	d.logf("I", "WebManager", "Settings saved: %v", p.Fields())

	if langChanged {
		d.relabel(i18n.Parse(d.settings.Language))
	}
	if p.Timezone != nil {
		d.logf("I", "TimeManager", "Timezone set to %s", *p.Timezone)
	}
	if p.WifiSSID != nil {
		d.logf("I", "WebManager", "WiFi Settings changed. Restarting...")
		d.mode = "sta"
		d.boot = d.clock()
	}
}

// relabel renames system entries to their default names in lang, like the
// firmware reloading its phonebook defaults after a language switch.
func (d *Device) relabel(lang i18n.Language) {
	slots := phonebook.Catalog(lang)
	for _, key := range d.book.Keys() {
		e, _ := d.book.Get(key)
		for _, slot := range slots {
			if slot.Matches(e) {
				d.book.Set(key, slot.Entry(slot.DefaultName))
				break
			}
		}
	}
}

func mergeAlarms(current, updates []store.AlarmRule) []store.AlarmRule {
	byDay := make(map[int]store.AlarmRule, len(current)+len(updates))
	for _, a := range current {
		byDay[a.Day] = a
	}
	for _, a := range updates {
		if a.Day < 0 || a.Day > 6 {
			continue
		}
		byDay[a.Day] = a
	}
	out := make([]store.AlarmRule, 0, len(byDay))
	for _, a := range byDay {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

// Phonebook returns a copy of the stored book.
func (d *Device) Phonebook() *phonebook.Book {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.book.Clone()
}

// ReplacePhonebook stores book as the whole phonebook.
func (d *Device) ReplacePhonebook(book *phonebook.Book) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.book = book.Clone()
	d.logf("I", "Phonebook", "Saved %d entries", d.book.Len())
}

// Ringtones lists the ringtone files.
func (d *Device) Ringtones() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.ringtones...)
}

// Scan returns the visible networks.
func (d *Device) Scan() []store.WifiNetwork {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.logf("I", "WebManager", "WiFi scan found %d networks", len(d.networks))
	return append([]store.WifiNetwork(nil), d.networks...)
}

// Preview records a ringtone playback request.
func (d *Device) Preview(file string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.previews = append(d.previews, file)
	d.logf("I", "WebManager", "Preview request: /sdcard/ringtones/%s", file)
}

// Previews lists every file played so far, oldest first.
func (d *Device) Previews() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.previews...)
}

// Logs returns the log ring, oldest line first.
func (d *Device) Logs() store.LogTail {
	d.mu.Lock()
	defer d.mu.Unlock()
	return store.LogTail{Lines: append([]string{}, d.logs...)}
}

// Time returns the device clock as "HH:MM:SS".
func (d *Device) Time() store.DeviceTime {
	return store.DeviceTime{Time: d.clock().Format("15:04:05")}
}
