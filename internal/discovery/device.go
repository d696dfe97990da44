package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Device is a Dial-A-Charmer found on the network
type Device struct {
	// Instance is the advertised mDNS instance name (e.g., "Dial-A-Charmer")
	Instance string

	// Hostname is the mDNS hostname (e.g., "dial-a-charmer.local.")
	Hostname string

	// IP is the address the advertisement resolved to, IPv4 preferred
	IP string

	// Port is the HTTP port (typically 80)
	Port int

	// Metadata contains the TXT records ("path=/", "platform=esp-idf")
	Metadata map[string]string

	// DiscoveredAt is when the advertisement was received
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the device
func (d *Device) String() string {
	return fmt.Sprintf("%s (%s) at %s", d.Instance, d.Hostname, d.Address())
}

// Address returns "ip:port", bracketing IPv6 addresses.
func (d *Device) Address() string {
	return net.JoinHostPort(d.IP, strconv.Itoa(d.Port))
}

// BaseURL returns the HTTP base URL for the device
func (d *Device) BaseURL() string {
	return "http://" + d.Address()
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (d *Device) GetMetadata(key string) string {
	if d.Metadata == nil {
		return ""
	}
	return d.Metadata[key]
}
