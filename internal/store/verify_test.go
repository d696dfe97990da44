package store

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func TestMismatches(t *testing.T) {
	got, err := DecodeSettings([]byte(mockSettingsResponse))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		patch SettingsPatch
		want  []string
	}{
		{
			name:  "applied",
			patch: SettingsPatch{Volume: Ptr(70), Snooze: Ptr(7), Timezone: Ptr("UTC0")},
		},
		{
			name:  "volume differs",
			patch: SettingsPatch{Volume: Ptr(40)},
			want:  []string{"volume: expected 40, got 70"},
		},
		{
			name:  "password is not compared",
			patch: SettingsPatch{WifiPass: Ptr("secret")},
		},
		{
			name:  "alarm matches by day",
			patch: SettingsPatch{Alarms: []AlarmRule{{Day: 1, Hour: 6, Minute: 30, Enabled: true, WithMessage: true, Sound: "bell.wav"}}},
		},
		{
			name:  "alarm missing",
			patch: SettingsPatch{Alarms: []AlarmRule{{Day: 3, Hour: 7}}},
			want:  []string{"alarm day 3: missing"},
		},
		{
			name:  "alarm differs",
			patch: SettingsPatch{Alarms: []AlarmRule{{Day: 1, Hour: 7, Minute: 0, Enabled: true, WithMessage: true, Sound: "bell.wav"}}},
			want:  []string{"alarm day 1: expected 07:00 on bell.wav, got 06:30 on bell.wav"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Mismatches(tt.patch, got)
			if strings.Join(m, "|") != strings.Join(tt.want, "|") {
				t.Errorf("Mismatches() = %q, want %q", m, tt.want)
			}
		})
	}
}

func TestSaveAndVerify(t *testing.T) {
	var reads atomic.Int32
	var saved SettingsPatch
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, &saved)
			return
		}
		// The first read still shows the old value.
		if reads.Add(1) == 1 {
			w.Write([]byte(mockSettingsResponse))
			return
		}
		s, _ := DecodeSettings([]byte(mockSettingsResponse))
		s.Apply(saved)
		json.NewEncoder(w).Encode(s)
	}))
	defer server.Close()

	client := NewClientWithURL(server.URL)
	v, err := client.SaveAndVerify(context.Background(), SettingsPatch{Volume: Ptr(30)}, VerifyOptions{Retries: 2})
	if err != nil {
		t.Fatalf("SaveAndVerify() error = %v", err)
	}
	if !v.OK() || v.Attempts != 2 {
		t.Errorf("verification = %+v, want OK after 2 attempts", v)
	}
	if v.Settings.Volume != 30 {
		t.Errorf("read back volume = %d", v.Settings.Volume)
	}
}

func TestSaveAndVerify_NeverMatches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Write([]byte(mockSettingsResponse))
		}
	}))
	defer server.Close()

	client := NewClientWithURL(server.URL)
	v, err := client.SaveAndVerify(context.Background(), SettingsPatch{Snooze: Ptr(12)}, VerifyOptions{Retries: 1})
	if err != nil {
		t.Fatalf("SaveAndVerify() error = %v", err)
	}
	if v.OK() || v.Attempts != 2 {
		t.Errorf("verification = %+v, want failure after 2 attempts", v)
	}
	if v.Summary() != "snooze_min: expected 12, got 7" {
		t.Errorf("Summary() = %q", v.Summary())
	}
}

func TestSaveAndVerify_SaveFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClientWithURL(server.URL)
	if _, err := client.SaveAndVerify(context.Background(), SettingsPatch{Volume: Ptr(1)}, VerifyOptions{}); err == nil {
		t.Fatal("SaveAndVerify() should return the save error")
	}
}
