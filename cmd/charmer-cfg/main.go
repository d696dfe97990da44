// Charmer-cfg configures a Dial-A-Charmer rotary phone over its HTTP API.
//
// It opens an interactive control panel (the default) and offers direct
// commands for alarms, phonebook, WiFi, volumes and the device log.
//
// Usage:
//
//	charmer-cfg [command] [flags]
//
// Running without arguments launches the panel.
// See 'charmer-cfg --help' for available commands.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dial-a-charmer/charmer/internal/config"
	"github.com/dial-a-charmer/charmer/internal/logging"
	"github.com/dial-a-charmer/charmer/internal/store"
	"github.com/dial-a-charmer/charmer/internal/ui"
	"github.com/dial-a-charmer/charmer/internal/version"
)

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		reportError(err)
		os.Exit(1)
	}
}

// Global flags
var (
	deviceFlag     string
	portFlag       int
	langFlag       string
	logLevel       string
	logFile        string
	formatFlag     string
	requestTimeout time.Duration
)

// Set up by the root pre-run hook.
var (
	registry *config.Registry
	printer  *ui.Printer
)

var rootCmd = &cobra.Command{
	Use:   "charmer-cfg",
	Short: "Dial-A-Charmer Configuration Utility",
	Long: `A terminal control panel and command line tool for the Dial-A-Charmer,
a rotary phone that plays alarms, compliments and announcements.

It talks to the phone's built-in web server. On a phone fresh from the
factory, join its setup hotspot and use --device 192.168.4.1.

If no command is specified, the interactive control panel launches.`,
	Version:           version.Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runPanel,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&deviceFlag, "device", "", "Device host or IP (default: config default_device, then mDNS discovery)")
	pf.IntVar(&portFlag, "port", store.DefaultPort, "Device HTTP port")
	pf.StringVar(&langFlag, "lang", "", "Panel language before the device reports one (de, en)")
	pf.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); silent when unset")
	pf.StringVar(&logFile, "log-file", "", "Write logs to this file instead of stderr")
	pf.StringVar(&formatFlag, "format", "text", "Output format (text, json)")
	pf.DurationVar(&requestTimeout, "timeout", 10*time.Second, "Timeout for each device request")

	rootCmd.AddCommand(versionCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	if err := logging.InitializeWithOutput(logLevel, logFile); err != nil {
		return err
	}

	format, err := ui.ParseFormat(formatFlag)
	if err != nil {
		return err
	}
	printer = ui.NewPrinter(cmd.OutOrStdout(), format)

	registry, err = config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("charmer-cfg %s (commit: %s)\n", version.Version, version.Commit)
	},
}

// reportError prints err to stderr. Device errors get a failure box with
// troubleshooting tips.
func reportError(err error) {
	if te, ok := store.AsTransportError(err); ok {
		fmt.Fprintln(os.Stderr, ui.RenderFailure(store.ShortMessage(te), err, hintLines(err)...))
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

// hintLines turns store.TroubleshootingHint into bullet items.
func hintLines(err error) []string {
	var out []string
	for _, line := range strings.Split(store.TroubleshootingHint(err), "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "•"))
		if line == "" || line == "Troubleshooting:" {
			continue
		}
		out = append(out, line)
	}
	return out
}
