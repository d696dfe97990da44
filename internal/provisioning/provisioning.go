package provisioning

import (
	"github.com/dial-a-charmer/charmer/internal/router"
	"github.com/dial-a-charmer/charmer/internal/store"
)

// Decision is the startup provisioning outcome.
type Decision int

const (
	Unknown Decision = iota
	Provisioned
	NeedsSetup
)

func (d Decision) String() string {
	switch d {
	case Provisioned:
		return "provisioned"
	case NeedsSetup:
		return "needs-setup"
	default:
		return "unknown"
	}
}

// Reason explains a NeedsSetup decision.
type Reason string

const (
	ReasonAccessPointMode Reason = "device reports access-point mode"
	ReasonHotspotAddress  Reason = "connected through the setup hotspot address"
	ReasonNoNetwork       Reason = "no WiFi network configured"
)

// Evaluate applies the startup rule to the fetched status and settings. host
// is the address the panel uses to reach the device.
func Evaluate(status *store.Status, settings *store.Settings, host string) (Decision, Reason) {
	switch {
	case status.IsAccessPoint():
		return NeedsSetup, ReasonAccessPointMode
	case host == store.AccessPointAddress:
		return NeedsSetup, ReasonHotspotAddress
	case !settings.HasNetwork():
		return NeedsSetup, ReasonNoNetwork
	}
	return Provisioned, ""
}

// StartupRoute redirects h to the setup page when the decision requires it.
// The location is replaced, not pushed. It reports whether it redirected.
func StartupRoute(d Decision, h *router.History) bool {
	if d != NeedsSetup || h.Page() == router.Setup {
		return false
	}
	h.Replace(router.PathSetup)
	return true
}
