package panel

import (
	"net/http/httptest"
	"testing"

	"github.com/dial-a-charmer/charmer/internal/provisioning"
	"github.com/dial-a-charmer/charmer/internal/router"
	"github.com/dial-a-charmer/charmer/internal/simulator"
	"github.com/dial-a-charmer/charmer/internal/store"
)

func TestProvisioningAgainstSimulator(t *testing.T) {
	sim := simulator.New(simulator.Options{})
	ts := httptest.NewServer(sim)
	defer ts.Close()
	client := store.NewClientWithURL(ts.URL)

	m := NewAppModel(client, testOptions(router.PathHome))
	msgs := collect(startupCmd(client))
	if len(msgs) != 1 {
		t.Fatalf("startup produced %d messages", len(msgs))
	}
	m, cmd := update(t, m, msgs[0])
	if m.Page() != router.Setup {
		t.Fatalf("factory device opened %s, want setup", m.Page())
	}

	scan, ok := findMsg[scanDoneMsg](collect(cmd))
	if !ok {
		t.Fatal("no scan issued")
	}
	m, _ = update(t, m, scan)
	if got := len(m.State().Setup.Networks); got != len(simulator.DefaultNetworks) {
		t.Fatalf("got %d networks", got)
	}

	m, _ = update(t, m, press("enter"))
	for _, r := range "geheim" {
		m, _ = update(t, m, press(string(r)))
	}
	m, cmd = update(t, m, press("enter"))
	result, ok := findMsg[saveResultMsg](collect(cmd))
	if !ok {
		t.Fatal("connect did not save")
	}
	m, _ = update(t, m, result)

	if m.State().Setup.Phase != provisioning.Connected {
		t.Errorf("phase = %v, want connected", m.State().Setup.Phase)
	}
	stored := sim.Device().StoredSettings()
	if stored.WifiSSID != simulator.DefaultNetworks[0].SSID || stored.WifiPass != "geheim" {
		t.Errorf("device stored %q/%q", stored.WifiSSID, stored.WifiPass)
	}
	if sim.Device().Mode() != "sta" {
		t.Error("device still in access-point mode")
	}
}

func TestPhonebookAgainstSimulator(t *testing.T) {
	sim := simulator.New(simulator.Options{
		Settings: func() *store.Settings {
			s := simulator.FactorySettings()
			s.WifiSSID = "home"
			return s
		}(),
	})
	ts := httptest.NewServer(sim)
	defer ts.Close()
	client := store.NewClientWithURL(ts.URL)

	m := NewAppModel(client, testOptions(router.PathPhonebook))
	m, cmd := update(t, m, collect(startupCmd(client))[0])
	loaded, ok := findMsg[phonebookLoadedMsg](collect(cmd))
	if !ok {
		t.Fatal("phonebook not fetched")
	}
	m, _ = update(t, m, loaded)

	rows := m.book.rows
	reboot := rows[len(rows)-1]
	if !reboot.Assigned || reboot.AssignedKey != "999" {
		t.Fatalf("reboot row = %+v, want assigned to 999", reboot)
	}

	// Move reboot to 998.
	m.book.cursor = len(rows) - 1
	m, _ = update(t, m, press("enter"))
	m, _ = update(t, m, press("backspace"))
	m, _ = update(t, m, press("8"))
	m, cmd = update(t, m, press("ctrl+s"))
	result, ok := findMsg[saveResultMsg](collect(cmd))
	if !ok {
		t.Fatal("save not issued")
	}
	m, _ = update(t, m, result)

	book := sim.Device().Phonebook()
	if _, ok := book.Get("999"); ok {
		t.Error("old reboot key still assigned")
	}
	if e, ok := book.Get("998"); !ok || e.Value != "REBOOT" {
		t.Errorf("998 = %+v, want reboot entry", e)
	}
	if got := m.book.rows[len(m.book.rows)-1].AssignedKey; got != "998" {
		t.Errorf("panel shows %q after save", got)
	}
}
