package config

import (
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/dial-a-charmer/charmer/internal/i18n"
	"github.com/dial-a-charmer/charmer/internal/state"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if !strings.Contains(configDir, "dial-a-charmer") {
		t.Errorf("GetConfigDir() = %v, should contain 'dial-a-charmer'", configDir)
	}

	switch runtime.GOOS {
	case "windows":
		if !strings.Contains(configDir, "AppData") && !strings.Contains(configDir, "Local") {
			t.Errorf("Windows config dir should contain 'AppData' or 'Local', got: %v", configDir)
		}
	case "darwin":
		if !strings.Contains(configDir, ".config") {
			t.Errorf("macOS config dir should contain '.config', got: %v", configDir)
		}
	}
}

func TestGetConfigPath_EnvOverride(t *testing.T) {
	want := filepath.Join(t.TempDir(), "custom.yaml")
	t.Setenv(EnvConfigPath, want)

	got, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	if got != want {
		t.Errorf("GetConfigPath() = %v, want %v", got, want)
	}
}

func TestGetConfigPath_Default(t *testing.T) {
	t.Setenv(EnvConfigPath, "")

	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() = %v, should end with config.yaml", configPath)
	}
}

func TestNewRegistry(t *testing.T) {
	registry := NewRegistry()

	if registry.Version != 1 {
		t.Errorf("NewRegistry().Version = %v, want 1", registry.Version)
	}
	if registry.Devices == nil {
		t.Error("NewRegistry().Devices is nil")
	}
	p := registry.Preferences
	if p.PreviewDebounceMS != 400 || p.LogPollMS != 1500 || p.ClockPollMS != 1000 || p.LogTailLines != 10 {
		t.Errorf("default preferences = %+v", p)
	}
	if p.DiscoverTimeout != 5 {
		t.Errorf("DiscoverTimeout = %d, want 5", p.DiscoverTimeout)
	}
}

func TestPreferences_StateOptions(t *testing.T) {
	tests := []struct {
		name  string
		prefs *Preferences
		want  func(state.Options) state.Options
	}{
		{
			name:  "nil keeps defaults",
			prefs: nil,
			want:  func(o state.Options) state.Options { return o },
		},
		{
			name:  "zero values keep defaults",
			prefs: &Preferences{},
			want:  func(o state.Options) state.Options { return o },
		},
		{
			name:  "overrides",
			prefs: &Preferences{Language: "en", PreviewDebounceMS: 250, LogPollMS: 3000, ClockPollMS: 500, LogTailLines: 20},
			want: func(o state.Options) state.Options {
				o.Language = i18n.English
				o.PreviewQuiet = 250 * time.Millisecond
				o.LogPoll = 3 * time.Second
				o.ClockPoll = 500 * time.Millisecond
				o.LogTailLines = 20
				return o
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := tt.want(state.DefaultOptions())
			if got := tt.prefs.StateOptions(); got != want {
				t.Errorf("StateOptions() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestPreferences_DiscoverDuration(t *testing.T) {
	var nilPrefs *Preferences
	if got := nilPrefs.DiscoverDuration(); got != 5*time.Second {
		t.Errorf("nil DiscoverDuration() = %v", got)
	}
	if got := (&Preferences{DiscoverTimeout: 2}).DiscoverDuration(); got != 2*time.Second {
		t.Errorf("DiscoverDuration() = %v, want 2s", got)
	}
}

func TestRegistryEnsureDevice(t *testing.T) {
	registry := &Registry{}

	device := registry.EnsureDevice("dial-a-charmer.local")
	if device == nil {
		t.Fatal("EnsureDevice() returned nil")
	}
	if again := registry.EnsureDevice("dial-a-charmer.local"); again != device {
		t.Error("EnsureDevice() should return existing device")
	}
	if registry.GetDevice("unknown") != nil {
		t.Error("GetDevice() should return nil for unknown host")
	}
}

func TestRegistryUpdateDeviceLastSeen(t *testing.T) {
	registry := NewRegistry()
	before := time.Now()

	registry.UpdateDeviceLastSeen("dial-a-charmer.local", "192.168.178.40", "sta")
	registry.UpdateDeviceLastSeen("dial-a-charmer.local", "", "")

	device := registry.GetDevice("dial-a-charmer.local")
	if device.LastIP != "192.168.178.40" {
		t.Errorf("LastIP = %v, empty update should keep it", device.LastIP)
	}
	if device.LastMode != "sta" {
		t.Errorf("LastMode = %v", device.LastMode)
	}
	if device.LastSeen.Before(before) {
		t.Error("LastSeen was not updated")
	}
}

func TestRegistryHosts(t *testing.T) {
	registry := NewRegistry()
	now := time.Now()
	registry.Devices["old.local"] = &Device{LastSeen: now.Add(-time.Hour)}
	registry.Devices["new.local"] = &Device{LastSeen: now}
	registry.Devices["b.local"] = &Device{}
	registry.Devices["a.local"] = &Device{}

	want := []string{"new.local", "old.local", "a.local", "b.local"}
	if got := registry.Hosts(); !reflect.DeepEqual(got, want) {
		t.Errorf("Hosts() = %v, want %v", got, want)
	}
}

func TestRegistryResolveDevice(t *testing.T) {
	registry := NewRegistry()
	if got := registry.ResolveDevice("", "fallback"); got != "fallback" {
		t.Errorf("ResolveDevice() = %v, want fallback", got)
	}
	registry.Preferences.DefaultDevice = "kitchen.local"
	if got := registry.ResolveDevice("", "fallback"); got != "kitchen.local" {
		t.Errorf("ResolveDevice() = %v, want preference", got)
	}
	if got := registry.ResolveDevice("192.168.4.1", "fallback"); got != "192.168.4.1" {
		t.Errorf("ResolveDevice() = %v, want flag", got)
	}
	var nilRegistry *Registry
	if got := nilRegistry.ResolveDevice("", "fallback"); got != "fallback" {
		t.Errorf("nil ResolveDevice() = %v", got)
	}
}

func TestRegistrySaveAndLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	registry := NewRegistry()
	registry.SetDeviceNickname("dial-a-charmer.local", "Flur")
	registry.UpdateDeviceLastSeen("dial-a-charmer.local", "192.168.178.40", "sta")
	registry.Preferences.Language = "en"

	if err := registry.SaveTo(configPath); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != 0600 {
		t.Errorf("config file mode = %v, want 0600", info.Mode().Perm())
	}
	if _, err := os.Stat(configPath + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	device := loaded.GetDevice("dial-a-charmer.local")
	if device == nil || device.Nickname != "Flur" || device.LastIP != "192.168.178.40" {
		t.Errorf("loaded device = %+v", device)
	}
	if loaded.Preferences.Language != "en" {
		t.Errorf("loaded language = %q", loaded.Preferences.Language)
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	registry, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if registry.Version != 1 || registry.Preferences == nil {
		t.Errorf("LoadFrom() = %+v, want default registry", registry)
	}
}

func TestLoadFrom_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad yaml", "version: [", "failed to parse"},
		{"wrong version", "version: 2\n", "unsupported config version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			_, err := LoadFrom(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadFrom() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestLoadFrom_MissingPreferencesGetDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("version: 1\n"), 0600); err != nil {
		t.Fatal(err)
	}
	registry, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(registry.Preferences, DefaultPreferences()) {
		t.Errorf("Preferences = %+v", registry.Preferences)
	}
	if registry.Devices == nil {
		t.Error("Devices map not initialized")
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv(EnvConfigPath, path)

	got, err := CreateDefaultConfig()
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}
	if got != path {
		t.Errorf("CreateDefaultConfig() path = %v, want %v", got, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "default_device: dial-a-charmer.local") {
		t.Errorf("default config missing default device:\n%s", data)
	}

	if _, err := CreateDefaultConfig(); err == nil {
		t.Error("CreateDefaultConfig() overwrote an existing file")
	}
}
