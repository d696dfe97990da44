package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dial-a-charmer/charmer/internal/discovery"
	"github.com/dial-a-charmer/charmer/internal/provisioning"
	"github.com/dial-a-charmer/charmer/internal/store"
	"github.com/dial-a-charmer/charmer/internal/ui"
)

var wifiCmd = &cobra.Command{
	Use:   "wifi",
	Short: "Scan for networks or move the phone to a WiFi network",
}

var wifiScanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List the WiFi networks the phone can see",
	RunE:  runWifiScan,
}

// Flags of 'wifi connect'
var (
	wifiPassword string
	wifiYes      bool
	wifiWait     time.Duration
)

var wifiConnectCmd = &cobra.Command{
	Use:   "connect <ssid>",
	Short: "Send WiFi credentials to the phone",
	Long: `Send WiFi credentials to the phone. The phone restarts and joins the
network; this command then waits for it to show up as dial-a-charmer.local.

Without --password you are asked for it when the network is secured.`,
	Example: `  charmer-cfg wifi connect "FRITZ!Box 7590" --device 192.168.4.1
  charmer-cfg wifi connect Cafe --password "" --yes --wait 0`,
	Args: cobra.ExactArgs(1),
	RunE: runWifiConnect,
}

func init() {
	f := wifiConnectCmd.Flags()
	f.StringVar(&wifiPassword, "password", "", "Network password (prompted when not given)")
	f.BoolVarP(&wifiYes, "yes", "y", false, "Do not ask for confirmation")
	f.DurationVar(&wifiWait, "wait", 60*time.Second, "How long to wait for the phone on the new network (0 skips)")

	wifiCmd.AddCommand(wifiScanCmd, wifiConnectCmd)
	rootCmd.AddCommand(wifiCmd)
}

func runWifiScan(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(cmd)
	defer cancel()

	networks, err := s.client.ScanWifi(ctx)
	if err != nil {
		return err
	}
	if printer.JSON() {
		return printer.PrintJSON(networks)
	}
	if len(networks) == 0 {
		printer.Println("No networks found.")
		return nil
	}
	printer.PrintTable(networkTable(networks))
	return nil
}

func networkTable(networks []store.WifiNetwork) *ui.Table {
	t := ui.NewTable("SSID", "SIGNAL", "SECURITY")
	for _, n := range networks {
		sec := "open"
		if n.Secure() {
			sec = "🔒 secured"
		}
		t.AddRow(n.SSID, strconv.Itoa(n.RSSI)+" dBm", sec)
	}
	return t
}

func runWifiConnect(cmd *cobra.Command, args []string) error {
	ssid := args[0]
	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	var network *store.WifiNetwork
	{
		ctx, cancel := requestContext(cmd)
		networks, err := s.client.ScanWifi(ctx)
		cancel()
		if err != nil {
			return &provisioning.ScanFailure{Err: err}
		}
		for i := range networks {
			if networks[i].SSID == ssid {
				network = &networks[i]
				break
			}
		}
	}
	if network == nil && !printer.JSON() {
		printer.Printf("Warning: the phone does not see %q right now.\n\n", ssid)
	}

	if !cmd.Flags().Changed("password") && (network == nil || network.Secure()) {
		pw, err := promptPassword(ssid)
		if err != nil {
			return err
		}
		wifiPassword = pw
	}

	if !wifiYes {
		if !ui.NetworkChangeConfirmation(ssid).Ask(cmd.InOrStdin(), cmd.OutOrStdout()) {
			return errors.New("cancelled")
		}
	}

	steps := []string{"Send credentials", "Wait for phone on " + ssid}
	runner := ui.NewRunner(ui.RunnerConfig{
		Title:   "WiFi connect",
		Command: "charmer-cfg wifi connect",
		Params:  []ui.Field{ui.F("Device", s.client.BaseURL), ui.F("Network", ssid)},
		Steps:   steps,
		Hints:   hintLines,
		Output:  cmd.OutOrStdout(),
	})
	return runner.Run(cmd.Context(), func(ctx context.Context, step ui.StepFunc) ([]ui.Field, error) {
		step(1, ui.StepRunning, "")
		reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		err := s.client.SaveSettings(reqCtx, provisioning.ConnectPatch(ssid, wifiPassword))
		cancel()
		if err != nil {
			step(1, ui.StepFailed, store.ShortMessage(err))
			return nil, err
		}
		step(1, ui.StepComplete, "phone is restarting")

		details := []ui.Field{ui.F("Find it at", provisioning.RestartURL())}
		if wifiWait <= 0 {
			step(2, ui.StepSkipped, "--wait 0")
			return details, nil
		}

		step(2, ui.StepRunning, "")
		scanner := discovery.NewScanner()
		scanner.Timeout = wifiWait
		d, err := scanner.WaitForDevice(ctx, store.DefaultHost)
		if err != nil {
			step(2, ui.StepFailed, "not seen")
			return nil, fmt.Errorf("%w; check the password and that %q reaches this computer", err, ssid)
		}
		step(2, ui.StepComplete, d.IP)

		registry.UpdateDeviceLastSeen(store.DefaultHost, d.IP, "sta")
		if registry.Preferences != nil && registry.Preferences.DefaultDevice == "" {
			registry.Preferences.DefaultDevice = store.DefaultHost
		}
		if err := registry.Save(); err != nil {
			details = append(details, ui.F("Config", "not saved: "+err.Error()))
		}
		return append(details, ui.F("Address", d.Address())), nil
	})
}

// promptPassword reads a password without echo when stdin is a terminal.
func promptPassword(ssid string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("network %q needs a password, pass --password", ssid)
	}
	fmt.Printf("Password for %q: ", ssid)
	pw, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(pw), nil
}
