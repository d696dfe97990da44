package simulator

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/dial-a-charmer/charmer/internal/phonebook"
	"github.com/dial-a-charmer/charmer/internal/store"
)

var fixedTime = time.Date(2026, 3, 14, 6, 45, 30, 0, time.UTC)

func newTestServer(t *testing.T, opts Options) (*Server, *store.Client) {
	t.Helper()
	if opts.Clock == nil {
		opts.Clock = func() time.Time { return fixedTime }
	}
	sim := New(opts)
	ts := httptest.NewServer(sim)
	t.Cleanup(func() {
		sim.Hub().Close()
		ts.Close()
	})
	return sim, store.NewClientWithURL(ts.URL)
}

func TestFactoryDeviceIsInAccessPointMode(t *testing.T) {
	_, client := newTestServer(t, Options{})
	ctx := context.Background()

	st, err := client.GetStatus(ctx)
	if err != nil {
		t.Fatalf("GetStatus() error = %v", err)
	}
	if !st.IsAccessPoint() {
		t.Errorf("mode = %q, want ap", st.Mode)
	}

	s, err := client.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if s.HasNetwork() {
		t.Errorf("factory device has network %q", s.WifiSSID)
	}
	if len(s.Alarms) != 7 {
		t.Errorf("got %d alarms, want one per day", len(s.Alarms))
	}
	if s.CurrentTime != "2026-03-14 06:45:30" {
		t.Errorf("current_time = %q", s.CurrentTime)
	}
	if gaps := s.Gaps(); len(gaps) != 0 {
		t.Errorf("settings have gaps %v", gaps)
	}
}

func TestSaveSettingsMergesAlarmsByDay(t *testing.T) {
	sim, client := newTestServer(t, Options{})
	ctx := context.Background()

	patch := store.SettingsPatch{
		Alarms: []store.AlarmRule{{Day: 3, Hour: 6, Minute: 15, Enabled: true, Sound: "cuckoo.wav"}},
		Volume: store.Ptr(35),
	}
	if err := client.SaveSettings(ctx, patch); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}

	s := sim.Device().StoredSettings()
	if len(s.Alarms) != 7 {
		t.Fatalf("got %d alarms after merge, want 7", len(s.Alarms))
	}
	wed, _ := s.AlarmFor(3)
	if wed.Clock() != "06:15" || !wed.Enabled || wed.Sound != "cuckoo.wav" {
		t.Errorf("Wednesday = %+v", wed)
	}
	mon, _ := s.AlarmFor(1)
	if mon.Clock() != "07:00" || mon.Enabled {
		t.Errorf("Monday changed: %+v", mon)
	}
	if s.Volume != 35 {
		t.Errorf("volume = %d, want 35", s.Volume)
	}
	if s.HandsetVolume != store.DefaultHandsetVolume {
		t.Errorf("handset volume changed to %d", s.HandsetVolume)
	}
}

func TestSaveNetworkSwitchesToStation(t *testing.T) {
	sim, client := newTestServer(t, Options{})
	ctx := context.Background()

	if err := client.SaveSettings(ctx, store.SettingsPatch{WifiSSID: store.Ptr(""), Volume: store.Ptr(10)}); err != nil {
		t.Fatal(err)
	}
	if sim.Device().Mode() != store.ModeAccessPoint {
		t.Error("empty SSID left access-point mode")
	}

	err := client.SaveSettings(ctx, store.SettingsPatch{WifiSSID: store.Ptr("FRITZ!Box 7590"), WifiPass: store.Ptr("geheim")})
	if err != nil {
		t.Fatal(err)
	}
	if sim.Device().Mode() != "sta" {
		t.Errorf("mode = %q, want sta", sim.Device().Mode())
	}
	if got := sim.Device().StoredSettings().WifiPass; got != "geheim" {
		t.Errorf("stored password = %q", got)
	}

	s, err := client.GetSettings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if s.WifiPass != "" {
		t.Error("settings expose the WiFi password")
	}
	if s.WifiSSID != "FRITZ!Box 7590" {
		t.Errorf("ssid = %q", s.WifiSSID)
	}
}

func TestLanguageSwitchRelabelsSystemEntries(t *testing.T) {
	sim, client := newTestServer(t, Options{})
	ctx := context.Background()

	book := sim.Device().Phonebook()
	book.Set("42", phonebook.Entry{Name: "Oma", Type: phonebook.TypeTTS, Value: "Hallo Oma"})
	if err := client.SavePhonebook(ctx, book); err != nil {
		t.Fatal(err)
	}
	if err := client.SaveSettings(ctx, store.SettingsPatch{Language: store.Ptr("en")}); err != nil {
		t.Fatal(err)
	}

	got, err := client.GetPhonebook(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if e, _ := got.Get("999"); e.Name != "System Reboot" {
		t.Errorf("reboot entry name = %q, want English default", e.Name)
	}
	if e, _ := got.Get("42"); e.Name != "Oma" {
		t.Errorf("custom entry renamed to %q", e.Name)
	}
}

func TestPhonebookRoundTripKeepsOrder(t *testing.T) {
	_, client := newTestServer(t, Options{Phonebook: phonebook.NewBook()})
	ctx := context.Background()

	book := phonebook.NewBook()
	book.Set("9", phonebook.Entry{Name: "b", Type: phonebook.TypeTTS, Value: "x"})
	book.Set("1", phonebook.Entry{Name: "a", Type: phonebook.TypeTTS, Value: "y"})
	book.Set("50", phonebook.Entry{Name: "c", Type: phonebook.TypeAudio, Value: "z.wav"})
	if err := client.SavePhonebook(ctx, book); err != nil {
		t.Fatal(err)
	}

	got, err := client.GetPhonebook(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if keys := got.Keys(); !reflect.DeepEqual(keys, []string{"9", "1", "50"}) {
		t.Errorf("keys = %v, want insertion order", keys)
	}
}

func TestPreviewValidation(t *testing.T) {
	sim, client := newTestServer(t, Options{})
	ctx := context.Background()

	if err := client.PreviewSound(ctx, "cuckoo.wav"); err != nil {
		t.Fatalf("PreviewSound() error = %v", err)
	}

	tests := []string{"../secret.wav", "song.mp3", ""}
	for _, file := range tests {
		t.Run(file, func(t *testing.T) {
			err := client.PreviewSound(ctx, file)
			te, ok := store.AsTransportError(err)
			if !ok || te.StatusCode != http.StatusNotFound {
				t.Errorf("PreviewSound(%q) error = %v, want 404", file, err)
			}
		})
	}

	if got := sim.Device().Previews(); !reflect.DeepEqual(got, []string{"cuckoo.wav"}) {
		t.Errorf("previews = %v", got)
	}
}

func TestLogsAndTime(t *testing.T) {
	sim, client := newTestServer(t, Options{})
	ctx := context.Background()

	for i := 0; i < logLineCount; i++ {
		sim.Device().Preview("cuckoo.wav")
	}
	tail, err := client.GetLogs(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(tail.Lines) != logLineCount {
		t.Errorf("got %d log lines, want ring size %d", len(tail.Lines), logLineCount)
	}
	if !strings.Contains(tail.Lines[len(tail.Lines)-1], "Preview request: /sdcard/ringtones/cuckoo.wav") {
		t.Errorf("last line = %q", tail.Lines[len(tail.Lines)-1])
	}

	tm, err := client.GetTime(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if tm.Time != "06:45:30" {
		t.Errorf("time = %q", tm.Time)
	}
}

func TestFailInjection(t *testing.T) {
	sim, client := newTestServer(t, Options{})
	ctx := context.Background()

	sim.Fail(store.PathWifiScan, http.StatusInternalServerError)
	_, err := client.ScanWifi(ctx)
	if te, ok := store.AsTransportError(err); !ok || te.StatusCode != http.StatusInternalServerError {
		t.Fatalf("ScanWifi() error = %v, want HTTP 500", err)
	}

	sim.Fail(store.PathWifiScan, 0)
	networks, err := client.ScanWifi(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(networks, DefaultNetworks) {
		t.Errorf("networks = %v", networks)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	sim, _ := newTestServer(t, Options{})

	req := httptest.NewRequest(http.MethodDelete, store.PathSettings, nil)
	rec := httptest.NewRecorder()
	sim.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("DELETE settings = %d, want 405", rec.Code)
	}
}

func TestWatchReceivesEvents(t *testing.T) {
	sim := New(Options{Clock: func() time.Time { return fixedTime }})
	ts := httptest.NewServer(sim)
	defer ts.Close()
	client := store.NewClientWithURL(ts.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events := make(chan Event, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, ts.URL, func(ev Event) { events <- ev })
	}()

	for sim.Hub().Len() == 0 {
		select {
		case <-ctx.Done():
			t.Fatal("watcher never connected")
		case <-time.After(5 * time.Millisecond):
		}
	}

	if err := client.PreviewSound(ctx, "cuckoo.wav"); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-events:
		if ev.Method != http.MethodGet || ev.Path != store.PathPreview || ev.Status != http.StatusOK {
			t.Errorf("event = %+v", ev)
		}
		if ev.Query != "file=cuckoo.wav" {
			t.Errorf("query = %q", ev.Query)
		}
	case <-ctx.Done():
		t.Fatal("no event received")
	}

	sim.Hub().Close()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() error = %v", err)
		}
	case <-ctx.Done():
		t.Fatal("Watch did not return after the feed closed")
	}
}

func TestEventsURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://127.0.0.1:8080", "ws://127.0.0.1:8080/sim/events"},
		{"https://sim.example", "wss://sim.example/sim/events"},
		{"localhost:8080", "ws://localhost:8080/sim/events"},
	}
	for _, tt := range tests {
		got, err := EventsURL(tt.in)
		if err != nil {
			t.Errorf("EventsURL(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("EventsURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := EventsURL("ftp://x"); err == nil {
		t.Error("EventsURL accepted ftp")
	}
}
