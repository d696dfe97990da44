package provisioning

import (
	"errors"
	"fmt"

	"github.com/dial-a-charmer/charmer/internal/store"
)

// Phase is a step of the setup page.
type Phase int

const (
	Idle Phase = iota
	Scanning
	ScanResult
	ScanError
	Connecting
	Connected
	ConnectFailed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Scanning:
		return "scanning"
	case ScanResult:
		return "scan-result"
	case ScanError:
		return "scan-error"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case ConnectFailed:
		return "connect-failed"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// ScanFailure is the error of a rejected or failed WiFi scan.
type ScanFailure struct {
	Err error
}

func (e *ScanFailure) Error() string {
	return fmt.Sprintf("wifi scan failed: %v", e.Err)
}

func (e *ScanFailure) Unwrap() error {
	return e.Err
}

// ErrInvalidTransition is returned when an event does not apply to the
// current phase.
var ErrInvalidTransition = errors.New("invalid setup transition")

// Flow is the setup sub-flow state. The zero value is Idle.
type Flow struct {
	Phase    Phase
	Networks []store.WifiNetwork
	Selected *store.WifiNetwork
	Err      error
}

// NeedsScan reports whether the setup page should start a scan: nothing
// cached, nothing in flight, no earlier failure.
func (f *Flow) NeedsScan() bool {
	return f.Phase == Idle
}

// BeginScan marks a scan as in flight. It fails unless the flow is Idle, so
// at most one scan runs per panel run.
func (f *Flow) BeginScan() error {
	if f.Phase != Idle {
		return fmt.Errorf("%w: scan from %s", ErrInvalidTransition, f.Phase)
	}
	f.Phase = Scanning
	return nil
}

// ScanSucceeded stores the scan result.
func (f *Flow) ScanSucceeded(networks []store.WifiNetwork) {
	f.Phase = ScanResult
	f.Networks = networks
	f.Err = nil
}

// ScanFailed records the failure. ScanError is terminal.
func (f *Flow) ScanFailed(err error) {
	f.Phase = ScanError
	f.Err = &ScanFailure{Err: err}
}

// Select picks a network from the scan result by index.
func (f *Flow) Select(i int) error {
	if f.Phase != ScanResult && f.Phase != ConnectFailed {
		return fmt.Errorf("%w: select from %s", ErrInvalidTransition, f.Phase)
	}
	if i < 0 || i >= len(f.Networks) {
		return fmt.Errorf("%w: no network %d", ErrInvalidTransition, i)
	}
	n := f.Networks[i]
	f.Selected = &n
	f.Phase = ScanResult
	f.Err = nil
	return nil
}

// Cancel drops the selection and returns to the list.
func (f *Flow) Cancel() {
	if f.Phase == ScanResult || f.Phase == ConnectFailed {
		f.Selected = nil
		f.Phase = ScanResult
		f.Err = nil
	}
}

// BeginConnect starts saving the credentials of the selected network and
// returns the patch to send.
func (f *Flow) BeginConnect(password string) (store.SettingsPatch, error) {
	if f.Selected == nil || (f.Phase != ScanResult && f.Phase != ConnectFailed) {
		return store.SettingsPatch{}, fmt.Errorf("%w: connect from %s", ErrInvalidTransition, f.Phase)
	}
	f.Phase = Connecting
	return ConnectPatch(f.Selected.SSID, password), nil
}

// ConnectDone records the outcome of the credentials save.
func (f *Flow) ConnectDone(err error) {
	if err != nil {
		f.Phase = ConnectFailed
		f.Err = err
		return
	}
	f.Phase = Connected
	f.Err = nil
}

// ConnectPatch is the settings change that makes the device join ssid.
func ConnectPatch(ssid, password string) store.SettingsPatch {
	return store.SettingsPatch{WifiSSID: store.Ptr(ssid), WifiPass: store.Ptr(password)}
}

// RestartURL is where the device can be found after it joined the network.
func RestartURL() string {
	return "http://" + store.DefaultHost
}
