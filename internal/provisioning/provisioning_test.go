package provisioning

import (
	"errors"
	"testing"

	"github.com/dial-a-charmer/charmer/internal/router"
	"github.com/dial-a-charmer/charmer/internal/store"
)

func settingsWith(ssid string) *store.Settings {
	s := store.DefaultSettings()
	s.WifiSSID = ssid
	return s
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		status   *store.Status
		settings *store.Settings
		host     string
		want     Decision
		reason   Reason
	}{
		{"ap mode", &store.Status{Mode: "ap"}, settingsWith("Home"), "dial-a-charmer.local", NeedsSetup, ReasonAccessPointMode},
		{"hotspot address", &store.Status{Mode: "sta"}, settingsWith("Home"), "192.168.4.1", NeedsSetup, ReasonHotspotAddress},
		{"no ssid", &store.Status{Mode: "sta"}, settingsWith(""), "10.0.0.5", NeedsSetup, ReasonNoNetwork},
		{"provisioned", &store.Status{Mode: "sta"}, settingsWith("Home"), "10.0.0.5", Provisioned, ""},
		{"other mode string", &store.Status{Mode: "station"}, settingsWith("Home"), "dial-a-charmer.local", Provisioned, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := Evaluate(tt.status, tt.settings, tt.host)
			if got != tt.want || reason != tt.reason {
				t.Errorf("Evaluate() = %s/%q, want %s/%q", got, reason, tt.want, tt.reason)
			}
		})
	}
}

func TestStartupRoute(t *testing.T) {
	for _, start := range []string{"/", "/alarm", "/phonebook", "/configuration", "/nope"} {
		h := router.NewHistory(start)
		if !StartupRoute(NeedsSetup, h) {
			t.Errorf("%s: expected redirect", start)
		}
		if h.Page() != router.Setup || h.Len() != 1 {
			t.Errorf("%s: Page() = %s, Len() = %d; want setup by replace", start, h.Page(), h.Len())
		}
	}

	h := router.NewHistory("/setup")
	if StartupRoute(NeedsSetup, h) {
		t.Error("already on setup: no redirect expected")
	}

	h = router.NewHistory("/alarm")
	if StartupRoute(Provisioned, h) || h.Page() != router.Alarms {
		t.Error("provisioned device must not be redirected")
	}
}

func TestFlow_ScanOnce(t *testing.T) {
	var f Flow
	if !f.NeedsScan() {
		t.Fatal("zero flow should need a scan")
	}
	if err := f.BeginScan(); err != nil {
		t.Fatalf("BeginScan() error = %v", err)
	}
	if f.NeedsScan() {
		t.Error("scan in flight: no second scan")
	}
	if err := f.BeginScan(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("second BeginScan() error = %v", err)
	}

	f.ScanSucceeded([]store.WifiNetwork{{SSID: "Home", Auth: 3}})
	if f.Phase != ScanResult || f.NeedsScan() {
		t.Errorf("Phase = %s after result", f.Phase)
	}
}

func TestFlow_ScanErrorIsTerminal(t *testing.T) {
	var f Flow
	_ = f.BeginScan()
	cause := errors.New("radio busy")
	f.ScanFailed(cause)

	var sf *ScanFailure
	if !errors.As(f.Err, &sf) || !errors.Is(f.Err, cause) {
		t.Errorf("Err = %v, want ScanFailure wrapping cause", f.Err)
	}
	if f.NeedsScan() || f.BeginScan() == nil {
		t.Error("scan error must not allow another scan")
	}
	if f.Select(0) == nil {
		t.Error("select after scan error must fail")
	}
}

func TestFlow_SelectConnect(t *testing.T) {
	f := Flow{}
	_ = f.BeginScan()
	f.ScanSucceeded([]store.WifiNetwork{{SSID: "Open"}, {SSID: "Home", Auth: 3}})

	if err := f.Select(5); err == nil {
		t.Error("Select out of range should fail")
	}
	if err := f.Select(1); err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	patch, err := f.BeginConnect("hunter22")
	if err != nil {
		t.Fatalf("BeginConnect() error = %v", err)
	}
	if f.Phase != Connecting {
		t.Errorf("Phase = %s, want connecting", f.Phase)
	}
	if *patch.WifiSSID != "Home" || *patch.WifiPass != "hunter22" {
		t.Errorf("patch = %v", patch.Fields())
	}

	f.ConnectDone(errors.New("timeout"))
	if f.Phase != ConnectFailed || f.Err == nil {
		t.Errorf("Phase = %s, want connect-failed", f.Phase)
	}

	if _, err := f.BeginConnect("again"); err != nil {
		t.Fatalf("retry BeginConnect() error = %v", err)
	}
	f.ConnectDone(nil)
	if f.Phase != Connected {
		t.Errorf("Phase = %s, want connected", f.Phase)
	}
}

func TestFlow_CancelAndConnectWithoutSelection(t *testing.T) {
	f := Flow{}
	_ = f.BeginScan()
	f.ScanSucceeded([]store.WifiNetwork{{SSID: "Home"}})

	if _, err := f.BeginConnect("x"); err == nil {
		t.Error("connect without selection should fail")
	}

	_ = f.Select(0)
	f.Cancel()
	if f.Selected != nil || f.Phase != ScanResult {
		t.Errorf("Cancel: Selected = %v, Phase = %s", f.Selected, f.Phase)
	}
}
