package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dial-a-charmer/charmer/internal/discovery"
	"github.com/dial-a-charmer/charmer/internal/logging"
	"github.com/dial-a-charmer/charmer/internal/store"
)

// session is the device a command talks to.
type session struct {
	host   string // registry key: the name the user knows the device by
	ip     string // resolved address when discovery found it
	client *store.Client
}

// openSession resolves the target device: --device, then the configured
// default device, then mDNS discovery.
func openSession(cmd *cobra.Command) (*session, error) {
	port := portFlag
	host := registry.ResolveDevice(deviceFlag, "")

	if host != "" {
		if d := registry.GetDevice(host); d != nil && d.Port != 0 && !cmd.Flags().Changed("port") {
			port = d.Port
		}
		logging.Debug("Using configured device", zap.String("host", host), zap.Int("port", port))
		return &session{host: host, client: store.NewClient(host, port)}, nil
	}

	if !printer.JSON() {
		printer.Println("No device specified, looking for one on the network...")
	}
	scanner := discovery.NewScanner()
	scanner.Timeout = registry.Preferences.DiscoverDuration()
	devices, err := scanner.Scan(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("discovery failed: %w", err)
	}

	switch len(devices) {
	case 0:
		return nil, fmt.Errorf("no devices found. Use --device to name one (a phone in setup mode is at %s)", store.AccessPointAddress)
	case 1:
	default:
		names := make([]string, len(devices))
		for i, d := range devices {
			names[i] = d.String()
		}
		return nil, fmt.Errorf("multiple devices found, pick one with --device:\n  %s", strings.Join(names, "\n  "))
	}

	d := devices[0]
	if !printer.JSON() {
		printer.Printf("Found %s\n\n", d)
	}
	host = strings.TrimSuffix(d.Hostname, ".")
	return &session{host: host, ip: d.IP, client: store.NewClient(d.IP, d.Port)}, nil
}

// requestContext bounds one device request by --timeout.
func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), requestTimeout)
}

// remember records a successful contact in the registry. Failing to save is
// logged, never fatal.
func (s *session) remember(mode string) {
	ip := s.ip
	if ip == "" {
		ip = s.client.Host()
	}
	registry.UpdateDeviceLastSeen(s.host, ip, mode)
	if err := registry.Save(); err != nil {
		logging.Warn("Failed to save configuration", zap.Error(err))
	}
}
