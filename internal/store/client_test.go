package store

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dial-a-charmer/charmer/internal/phonebook"
)

const mockSettingsResponse = `{"lang":"en","wifi_ssid":"HomeNet","wifi_pass":"","volume":70,"volume_handset":40,"vol_alarm":90,"vol_alarm_min":55,"snooze_min":7,"timer_ringtone":"bell.wav","current_time":"2026-10-18 07:12:00","timezone":"UTC0","alarms":[{"d":1,"h":6,"m":30,"en":true,"rmp":false,"msg":true,"snd":"bell.wav"}]}`

func TestNewClient(t *testing.T) {
	client := NewClient("192.168.4.1", 80)

	if client.BaseURL != "http://192.168.4.1:80" {
		t.Errorf("BaseURL = %s, want http://192.168.4.1:80", client.BaseURL)
	}
	if client.HTTPClient == nil {
		t.Fatal("HTTPClient should not be nil")
	}
	if client.HTTPClient.Timeout != 0 {
		t.Errorf("HTTPClient.Timeout = %v, want none", client.HTTPClient.Timeout)
	}
	if client.Host() != "192.168.4.1" {
		t.Errorf("Host() = %s, want 192.168.4.1", client.Host())
	}
}

func TestNewClient_DefaultPortAndIPv6(t *testing.T) {
	if got := NewClient("dial-a-charmer.local", 0).BaseURL; got != "http://dial-a-charmer.local:80" {
		t.Errorf("BaseURL = %s", got)
	}
	c := NewClient("fe80::1", 8080)
	if c.BaseURL != "http://[fe80::1]:8080" {
		t.Errorf("BaseURL = %s", c.BaseURL)
	}
	if c.Host() != "fe80::1" {
		t.Errorf("Host() = %s", c.Host())
	}
}

func TestGetSettings_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != PathSettings {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(mockSettingsResponse))
	}))
	defer server.Close()

	client := NewClientWithURL(server.URL)
	s, err := client.GetSettings(context.Background())
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}

	if s.Language != "en" || s.WifiSSID != "HomeNet" || s.Volume != 70 || s.Snooze != 7 {
		t.Errorf("GetSettings() = %v", s)
	}
	if len(s.Alarms) != 1 || !s.Alarms[0].WithMessage {
		t.Errorf("Alarms = %+v", s.Alarms)
	}
}

func TestSaveSettings_SendsOnlyChangedFields(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %s", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("body is not JSON: %s", body)
		}
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	client := NewClientWithURL(server.URL)
	err := client.SaveSettings(context.Background(), SettingsPatch{Volume: Ptr(0), Language: Ptr("en")})
	if err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}

	want := map[string]any{"volume": float64(0), "lang": "en"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("body = %v, want %v", got, want)
	}
}

func TestGetPhonebook_KeepsOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"999":{"name":"Reboot","type":"FUNCTION","value":"REBOOT"},"1":{"name":"Persona","type":"FUNCTION","value":"COMPLIMENT_CAT","parameter":"1"}}`))
	}))
	defer server.Close()

	book, err := NewClientWithURL(server.URL).GetPhonebook(context.Background())
	if err != nil {
		t.Fatalf("GetPhonebook() error = %v", err)
	}
	if got := book.Keys(); !reflect.DeepEqual(got, []string{"999", "1"}) {
		t.Errorf("Keys() = %v", got)
	}
}

func TestSavePhonebook(t *testing.T) {
	var body string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		body = string(b)
	}))
	defer server.Close()

	book := phonebook.NewBook()
	book.Set("5", phonebook.Entry{Name: "Reboot", Type: phonebook.TypeFunction, Value: "REBOOT"})

	if err := NewClientWithURL(server.URL).SavePhonebook(context.Background(), book); err != nil {
		t.Fatalf("SavePhonebook() error = %v", err)
	}
	want := `{"5":{"name":"Reboot","type":"FUNCTION","value":"REBOOT","parameter":""}}`
	if body != want {
		t.Errorf("body = %s, want %s", body, want)
	}
}

func TestScanWifi(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"ssid":"Open","rssi":-40,"auth":0},{"ssid":"Locked","rssi":-70,"auth":3}]`))
	}))
	defer server.Close()

	nets, err := NewClientWithURL(server.URL).ScanWifi(context.Background())
	if err != nil {
		t.Fatalf("ScanWifi() error = %v", err)
	}
	if len(nets) != 2 || nets[0].Secure() || !nets[1].Secure() {
		t.Errorf("ScanWifi() = %+v", nets)
	}
}

func TestSimpleGetters(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(PathStatus, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok","platform":"esp-idf","mode":"ap"}`))
	})
	mux.HandleFunc(PathRingtones, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`["a.wav","b.wav"]`))
	})
	mux.HandleFunc(PathLogs, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"lines":["one","two"]}`))
	})
	mux.HandleFunc(PathTime, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"time":"07:15:00"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClientWithURL(server.URL)
	ctx := context.Background()

	st, err := client.GetStatus(ctx)
	if err != nil || !st.IsAccessPoint() {
		t.Errorf("GetStatus() = %+v, %v", st, err)
	}
	tones, err := client.GetRingtones(ctx)
	if err != nil || !reflect.DeepEqual(tones, []string{"a.wav", "b.wav"}) {
		t.Errorf("GetRingtones() = %v, %v", tones, err)
	}
	tail, err := client.GetLogs(ctx)
	if err != nil || len(tail.Lines) != 2 {
		t.Errorf("GetLogs() = %+v, %v", tail, err)
	}
	tm, err := client.GetTime(ctx)
	if err != nil || tm.Time != "07:15:00" {
		t.Errorf("GetTime() = %+v, %v", tm, err)
	}
}

func TestPreviewSound_EncodesFile(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query().Get("file")
	}))
	defer server.Close()

	if err := NewClientWithURL(server.URL).PreviewSound(context.Background(), "my tone&1.wav"); err != nil {
		t.Fatalf("PreviewSound() error = %v", err)
	}
	if got != "my tone&1.wav" {
		t.Errorf("file = %q", got)
	}
}

func TestClient_OneRequestPerCall(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClientWithURL(server.URL)
	_, err := client.GetSettings(context.Background())
	if !IsHTTPError(err) {
		t.Fatalf("GetSettings() error = %v, want HTTP error", err)
	}
	if calls.Load() != 1 {
		t.Errorf("server saw %d requests, want 1 (no retries)", calls.Load())
	}
	_, _ = client.GetSettings(context.Background())
	if calls.Load() != 2 {
		t.Errorf("server saw %d requests, want 2 (no caching)", calls.Load())
	}
}

func TestClient_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "File not found", http.StatusNotFound)
	}))
	defer server.Close()

	err := NewClientWithURL(server.URL).PreviewSound(context.Background(), "x.wav")
	te, ok := AsTransportError(err)
	if !ok {
		t.Fatalf("error = %T, want *TransportError", err)
	}
	if te.Kind != KindHTTP || te.StatusCode != http.StatusNotFound || te.Op != "preview sound" {
		t.Errorf("error = %+v", te)
	}
}

func TestClient_ParseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>captive portal</html>`))
	}))
	defer server.Close()

	client := NewClientWithURL(server.URL)
	if _, err := client.GetSettings(context.Background()); !IsParseError(err) {
		t.Errorf("GetSettings() error = %v, want parse error", err)
	}
	if _, err := client.GetPhonebook(context.Background()); !IsParseError(err) {
		t.Errorf("GetPhonebook() error = %v, want parse error", err)
	}
}

func TestClient_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClientWithURL(url).GetStatus(context.Background())
	if !IsNetworkError(err) {
		t.Errorf("GetStatus() error = %v, want network error", err)
	}
}

func TestClient_ContextDeadline(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewClientWithURL(server.URL).GetTime(ctx)
	if !IsTimeout(err) {
		t.Errorf("GetTime() error = %v, want timeout", err)
	}
}
