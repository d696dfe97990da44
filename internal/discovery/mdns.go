package discovery

import (
	"context"
	"fmt"
	"net"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/dial-a-charmer/charmer/internal/logging"
)

const (
	// ServiceType is the mDNS service type the device web server advertises
	ServiceType = "_http._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// HostPrefix is the mDNS host label of the device
	HostPrefix = "dial-a-charmer"

	// DefaultInstance is the advertised service instance name
	DefaultInstance = "Dial-A-Charmer"

	// DefaultScanTimeout is the default timeout for device discovery
	DefaultScanTimeout = 5 * time.Second

	// DefaultPort is the device web server port
	DefaultPort = 80
)

// hostPattern matches device hostnames: "dial-a-charmer.local" and suffixed
// variants like "dial-a-charmer-kitchen.local".
var hostPattern = regexp.MustCompile(`^dial-a-charmer(-[a-z0-9-]+)?\.local\.?$`)

// IsDeviceHostname reports whether an mDNS hostname belongs to a device.
func IsDeviceHostname(hostname string) bool {
	return hostPattern.MatchString(strings.ToLower(hostname))
}

// Scanner handles mDNS device discovery
type Scanner struct {
	// Timeout is the maximum time to wait for device discovery
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// Scan browses for devices until the timeout passes or ctx is done. Each
// hostname is reported once, with its first resolved address.
func (s *Scanner) Scan(ctx context.Context) ([]*Device, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		devices []*Device
		seen    = map[string]bool{}
	)
	err := s.browse(ctx, func(d *Device) bool {
		mu.Lock()
		defer mu.Unlock()
		if !seen[d.Hostname] {
			seen[d.Hostname] = true
			devices = append(devices, d)
			logging.Debug("Device discovered", zap.String("device", d.String()))
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	mu.Lock()
	defer mu.Unlock()
	return devices, nil
}

// WaitForDevice returns the first device whose hostname matches host
// ("dial-a-charmer.local" with or without the trailing dot). An empty host
// accepts any device.
func (s *Scanner) WaitForDevice(ctx context.Context, host string) (*Device, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	want := strings.TrimSuffix(strings.ToLower(host), ".")
	found := make(chan *Device, 1)

	err := s.browse(ctx, func(d *Device) bool {
		if want != "" && strings.TrimSuffix(strings.ToLower(d.Hostname), ".") != want {
			return true
		}
		select {
		case found <- d:
		default:
		}
		cancel()
		return false
	})
	if err != nil {
		return nil, err
	}

	select {
	case d := <-found:
		return d, nil
	default:
		if want == "" {
			return nil, fmt.Errorf("no device found within %s", s.Timeout)
		}
		return nil, fmt.Errorf("device %s not found within %s", host, s.Timeout)
	}
}

// browse feeds every device advertisement to fn until fn returns false or
// ctx is done. It returns once the consumer goroutine has exited.
func (s *Scanner) browse(ctx context.Context, fn func(*Device) bool) error {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case entry, ok := <-entries:
				if !ok {
					return
				}
				if d := parseServiceEntry(entry); d != nil && !fn(d) {
					return
				}
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()
	<-done
	return nil
}

// parseServiceEntry converts a zeroconf service entry to a Device.
// Returns nil if the entry is not a device or has no address.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Device {
	hostname := entry.HostName
	if hostname == "" || !IsDeviceHostname(hostname) {
		return nil
	}

	var ip string
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0].String()
	} else if len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		k, v, _ := strings.Cut(txt, "=")
		metadata[k] = v
	}

	return &Device{
		Instance:     entry.Instance,
		Hostname:     hostname,
		IP:           ip,
		Port:         port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// Advertisement is a running mDNS registration.
type Advertisement struct {
	server *zeroconf.Server
}

// Shutdown withdraws the advertisement.
func (a *Advertisement) Shutdown() {
	if a != nil && a.server != nil {
		a.server.Shutdown()
	}
}

// AdvertiseOptions describes the service to announce.
type AdvertiseOptions struct {
	Instance string
	Host     string // host label without ".local", e.g. "dial-a-charmer-sim"
	Port     int
	IPs      []string
	Text     []string
}

// Advertise announces a device web server under host.local the way the
// firmware does. With no IPs the non-loopback IPv4 addresses of this machine
// are used.
func Advertise(opts AdvertiseOptions) (*Advertisement, error) {
	if opts.Instance == "" {
		opts.Instance = DefaultInstance
	}
	if opts.Host == "" {
		opts.Host = HostPrefix
	}
	if !IsDeviceHostname(opts.Host + ".local") {
		return nil, fmt.Errorf("host %q must start with %q", opts.Host, HostPrefix)
	}
	if opts.Port == 0 {
		opts.Port = DefaultPort
	}
	if len(opts.Text) == 0 {
		opts.Text = []string{"path=/"}
	}
	if len(opts.IPs) == 0 {
		ips, err := localIPv4s()
		if err != nil {
			return nil, err
		}
		opts.IPs = ips
	}

	server, err := zeroconf.RegisterProxy(opts.Instance, ServiceType, ServiceDomain, opts.Port, opts.Host, opts.IPs, opts.Text, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}
	logging.Info("mDNS service registered",
		zap.String("instance", opts.Instance),
		zap.String("host", opts.Host+".local"),
		zap.Int("port", opts.Port),
		zap.Strings("ips", opts.IPs),
	)
	return &Advertisement{server: server}, nil
}

func localIPv4s() ([]string, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil, fmt.Errorf("failed to list interface addresses: %w", err)
	}
	var ips []string
	for _, a := range addrs {
		ipNet, ok := a.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() || ipNet.IP.To4() == nil {
			continue
		}
		ips = append(ips, ipNet.IP.String())
	}
	if len(ips) == 0 {
		return nil, fmt.Errorf("no non-loopback IPv4 address to advertise")
	}
	return ips, nil
}
