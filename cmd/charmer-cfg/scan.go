package main

import (
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dial-a-charmer/charmer/internal/discovery"
	"github.com/dial-a-charmer/charmer/internal/logging"
	"github.com/dial-a-charmer/charmer/internal/ui"
)

var scanTimeout time.Duration

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Find phones on the local network",
	Long: `Find Dial-A-Charmer phones using mDNS/DNS-SD discovery.

A phone on a home network announces itself as dial-a-charmer.local. Found
phones are remembered in the configuration file.`,
	Example: `  charmer-cfg scan
  charmer-cfg scan --scan-timeout 15s`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().DurationVar(&scanTimeout, "scan-timeout", 0, "How long to listen (default: config discover_timeout)")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	scanner := discovery.NewScanner()
	scanner.Timeout = registry.Preferences.DiscoverDuration()
	if scanTimeout > 0 {
		scanner.Timeout = scanTimeout
	}

	if !printer.JSON() {
		printer.Printf("Scanning for phones (timeout: %s)...\n\n", scanner.Timeout)
	}
	devices, err := scanner.Scan(cmd.Context())
	if err != nil {
		return err
	}

	for _, d := range devices {
		registry.UpdateDeviceLastSeen(strings.TrimSuffix(d.Hostname, "."), d.IP, "")
	}
	if len(devices) > 0 {
		if err := registry.Save(); err != nil {
			logging.Warn("Failed to save configuration", zap.Error(err))
		}
	}

	if printer.JSON() {
		return printer.PrintJSON(devices)
	}
	if len(devices) == 0 {
		printer.PrintWarning("No phones found",
			ui.F("Hint", "Phone powered on and on this network?"),
			ui.F("Setup mode", "Join its hotspot, then use --device 192.168.4.1"),
			ui.F("Slow network", "Try a longer --scan-timeout"),
		)
		return nil
	}

	t := ui.NewTable("NAME", "HOST", "ADDRESS")
	for _, d := range devices {
		t.AddRow(d.Instance, d.Hostname, d.Address())
	}
	printer.PrintTable(t)
	printer.Newline()
	printer.Println("Use 'charmer-cfg --device <host>' to open the control panel for one of them.")
	return nil
}
