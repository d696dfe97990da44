package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/dial-a-charmer/charmer/internal/provisioning"
	"github.com/dial-a-charmer/charmer/internal/store"
	"github.com/dial-a-charmer/charmer/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show device status and whether it needs setup",
	Long: `Ask the device for its status and settings and apply the same startup
check the control panel uses: a phone in access-point mode, reached through
its setup hotspot address, or without a configured WiFi network needs setup.`,
	Example: `  charmer-cfg status
  charmer-cfg status --device 192.168.4.1
  charmer-cfg status --format json`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

type statusReport struct {
	Device   string   `json:"device"`
	Status   string   `json:"status"`
	Platform string   `json:"platform,omitempty"`
	Mode     string   `json:"mode"`
	Network  string   `json:"network,omitempty"`
	Language string   `json:"language"`
	Time     string   `json:"time,omitempty"`
	Decision string   `json:"decision"`
	Reason   string   `json:"reason,omitempty"`
	Defaults []string `json:"defaulted_fields,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(cmd)
	defer cancel()

	st, err := s.client.GetStatus(ctx)
	if err != nil {
		return err
	}
	settings, err := s.client.GetSettings(ctx)
	if err != nil {
		return err
	}
	s.remember(st.Mode)

	decision, reason := provisioning.Evaluate(st, settings, s.client.Host())
	report := statusReport{
		Device:   s.client.BaseURL,
		Status:   st.Status,
		Platform: st.Platform,
		Mode:     st.Mode,
		Network:  settings.WifiSSID,
		Language: settings.Language,
		Time:     settings.CurrentTime,
		Decision: decision.String(),
		Reason:   string(reason),
		Defaults: settings.Gaps(),
	}
	if printer.JSON() {
		return printer.PrintJSON(report)
	}

	details := []ui.Field{
		ui.F("Device", report.Device),
		ui.F("Mode", modeLabel(st)),
		ui.F("Network", orDash(report.Network)),
		ui.F("Language", report.Language),
		ui.F("Device time", orDash(report.Time)),
	}
	if report.Platform != "" {
		details = append(details, ui.F("Platform", report.Platform))
	}

	if decision == provisioning.NeedsSetup {
		details = append(details,
			ui.F("Setup needed", report.Reason),
			ui.F("Next step", "charmer-cfg wifi connect <ssid>"),
		)
		printer.PrintWarning("Device needs setup", details...)
	} else {
		printer.PrintSuccess("Device is online", details...)
	}

	if len(report.Defaults) > 0 {
		printer.Printf("  Fields missing from the device answer, shown with defaults: %s\n", strings.Join(report.Defaults, ", "))
	}
	return nil
}

func modeLabel(st *store.Status) string {
	if st.IsAccessPoint() {
		return "access point (setup hotspot)"
	}
	return "station (" + st.Mode + ")"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
