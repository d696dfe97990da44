package discovery

import (
	"net"
	"strings"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"
)

func TestParseServiceEntry(t *testing.T) {
	tests := []struct {
		name     string
		entry    *zeroconf.ServiceEntry
		wantNil  bool
		wantIP   string
		wantPort int
	}{
		{
			name: "device with IPv4",
			entry: &zeroconf.ServiceEntry{
				HostName: "dial-a-charmer.local.",
				Port:     80,
				AddrIPv4: []net.IP{net.ParseIP("192.168.178.40")},
				Text:     []string{"path=/"},
			},
			wantIP:   "192.168.178.40",
			wantPort: 80,
		},
		{
			name: "suffixed hostname without trailing dot",
			entry: &zeroconf.ServiceEntry{
				HostName: "dial-a-charmer-sim.local",
				Port:     8080,
				AddrIPv4: []net.IP{net.ParseIP("10.0.0.5")},
			},
			wantIP:   "10.0.0.5",
			wantPort: 8080,
		},
		{
			name: "no port defaults to 80",
			entry: &zeroconf.ServiceEntry{
				HostName: "dial-a-charmer.local.",
				AddrIPv4: []net.IP{net.ParseIP("172.16.0.1")},
			},
			wantIP:   "172.16.0.1",
			wantPort: 80,
		},
		{
			name: "other http service",
			entry: &zeroconf.ServiceEntry{
				HostName: "printer.local.",
				Port:     80,
				AddrIPv4: []net.IP{net.ParseIP("192.168.1.1")},
			},
			wantNil: true,
		},
		{
			name:    "empty hostname",
			entry:   &zeroconf.ServiceEntry{AddrIPv4: []net.IP{net.ParseIP("192.168.1.1")}},
			wantNil: true,
		},
		{
			name:    "no address",
			entry:   &zeroconf.ServiceEntry{HostName: "dial-a-charmer.local."},
			wantNil: true,
		},
		{
			name: "IPv6 only",
			entry: &zeroconf.ServiceEntry{
				HostName: "dial-a-charmer.local.",
				AddrIPv6: []net.IP{net.ParseIP("fe80::1")},
			},
			wantIP:   "fe80::1",
			wantPort: 80,
		},
		{
			name: "IPv4 preferred over IPv6",
			entry: &zeroconf.ServiceEntry{
				HostName: "dial-a-charmer.local.",
				AddrIPv4: []net.IP{net.ParseIP("192.168.1.50")},
				AddrIPv6: []net.IP{net.ParseIP("fe80::2")},
			},
			wantIP:   "192.168.1.50",
			wantPort: 80,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			device := parseServiceEntry(tt.entry)

			if tt.wantNil {
				if device != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", device)
				}
				return
			}
			if device == nil {
				t.Fatal("parseServiceEntry() = nil, want device")
			}
			if device.IP != tt.wantIP {
				t.Errorf("device.IP = %v, want %v", device.IP, tt.wantIP)
			}
			if device.Port != tt.wantPort {
				t.Errorf("device.Port = %v, want %v", device.Port, tt.wantPort)
			}
			if device.Hostname != tt.entry.HostName {
				t.Errorf("device.Hostname = %v, want %v", device.Hostname, tt.entry.HostName)
			}
			if time.Since(device.DiscoveredAt) > time.Second {
				t.Errorf("device.DiscoveredAt is not recent: %v", device.DiscoveredAt)
			}
		})
	}
}

func TestParseServiceEntry_Metadata(t *testing.T) {
	entry := &zeroconf.ServiceEntry{
		HostName: "dial-a-charmer.local.",
		Port:     80,
		AddrIPv4: []net.IP{net.ParseIP("192.168.4.1")},
		Text:     []string{"path=/", "platform=esp-idf", "flag", "a=b=c"},
	}

	device := parseServiceEntry(entry)
	if device == nil {
		t.Fatal("parseServiceEntry() = nil, want device")
	}

	want := map[string]string{
		"path":     "/",
		"platform": "esp-idf",
		"flag":     "",
		"a":        "b=c",
	}
	if len(device.Metadata) != len(want) {
		t.Errorf("device.Metadata has %d entries, want %d", len(device.Metadata), len(want))
	}
	for k, v := range want {
		if got, ok := device.Metadata[k]; !ok || got != v {
			t.Errorf("device.Metadata[%q] = %q (present %v), want %q", k, got, ok, v)
		}
	}
}

func TestNewScanner(t *testing.T) {
	scanner := NewScanner()
	if scanner.Timeout != DefaultScanTimeout {
		t.Errorf("scanner.Timeout = %v, want %v", scanner.Timeout, DefaultScanTimeout)
	}
}

func TestIsDeviceHostname(t *testing.T) {
	tests := []struct {
		hostname string
		want     bool
	}{
		{"dial-a-charmer.local", true},
		{"dial-a-charmer.local.", true},
		{"Dial-A-Charmer.local.", true},
		{"dial-a-charmer-sim.local", true},
		{"dial-a-charmer-2.local.", true},
		{"dial-a-charmer", false},
		{"dial-a-charmerx.local", false},
		{"my-dial-a-charmer.local", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.hostname, func(t *testing.T) {
			if got := IsDeviceHostname(tt.hostname); got != tt.want {
				t.Errorf("IsDeviceHostname(%q) = %v, want %v", tt.hostname, got, tt.want)
			}
		})
	}
}

func TestAdvertise_RejectsForeignHost(t *testing.T) {
	_, err := Advertise(AdvertiseOptions{Host: "printer", IPs: []string{"127.0.0.1"}})
	if err == nil || !strings.Contains(err.Error(), HostPrefix) {
		t.Errorf("Advertise() error = %v, want host prefix error", err)
	}
}
