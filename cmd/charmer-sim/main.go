// Charmer-sim runs an in-memory Dial-A-Charmer for development.
//
// It answers the phone's HTTP API with firmware-like behavior, can announce
// itself over mDNS, and streams every request it handles over a websocket
// feed that 'charmer-sim watch' prints.
//
// Usage:
//
//	charmer-sim serve [flags]
//	charmer-sim watch [flags]
package main

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dial-a-charmer/charmer/internal/discovery"
	"github.com/dial-a-charmer/charmer/internal/logging"
	"github.com/dial-a-charmer/charmer/internal/phonebook"
	"github.com/dial-a-charmer/charmer/internal/simulator"
	"github.com/dial-a-charmer/charmer/internal/store"
	"github.com/dial-a-charmer/charmer/internal/version"
)

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "charmer-sim",
	Short: "Dial-A-Charmer device simulator",
	Long: `An in-memory Dial-A-Charmer that answers the phone's HTTP API.

Point charmer-cfg at it with --device and --port to try the control panel
without hardware. A fresh simulator is in setup (access-point) mode, like a
phone out of the box.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Initialize(logLevel)
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.AddCommand(serveCmd, watchCmd, versionCmd)
}

// Flags of 'serve'
var (
	addr          string
	ssid          string
	lang          string
	settingsFile  string
	phonebookFile string
	mdns          bool
	mdnsHost      string
	failures      []string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the simulator",
	Example: `  # Factory-fresh phone in setup mode
  charmer-sim serve

  # Phone already on a network, announced as dial-a-charmer-sim.local
  charmer-sim serve --ssid home --mdns

  # Make WiFi scans fail to exercise error handling
  charmer-sim serve --fail /api/wifi/scan=500

  # Start from a saved settings document
  charmer-sim serve --settings settings.json --phonebook phonebook.json`,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&addr, "addr", ":8080", "Listen address")
	f.StringVar(&ssid, "ssid", "", "Preconfigured WiFi network (starts in station mode)")
	f.StringVar(&lang, "lang", "", "Device language (de, en)")
	f.StringVar(&settingsFile, "settings", "", "JSON settings document to start from")
	f.StringVar(&phonebookFile, "phonebook", "", "JSON phonebook to start from")
	f.BoolVar(&mdns, "mdns", false, "Announce the simulator over mDNS")
	f.StringVar(&mdnsHost, "mdns-host", discovery.HostPrefix+"-sim", "mDNS host label (must start with "+discovery.HostPrefix+")")
	f.StringArrayVar(&failures, "fail", nil, "Answer a path with an HTTP error, as path=status (repeatable)")
}

func runServe(cmd *cobra.Command, args []string) error {
	opts, err := serveOptions()
	if err != nil {
		return err
	}
	sim := simulator.New(opts)

	for _, f := range failures {
		path, status, err := parseFailure(f)
		if err != nil {
			return err
		}
		sim.Fail(path, status)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var adv *discovery.Advertisement
	defer func() { adv.Shutdown() }()

	return sim.ListenAndServe(ctx, addr, func(a net.Addr) {
		fmt.Printf("Simulator listening on http://%s (mode %s)\n", a, sim.Device().Mode())
		fmt.Printf("Try: charmer-cfg --device %s\n", deviceArgs(a))
		if !mdns {
			return
		}
		port := 0
		if tcp, ok := a.(*net.TCPAddr); ok {
			port = tcp.Port
		}
		announced, err := discovery.Advertise(discovery.AdvertiseOptions{Host: mdnsHost, Port: port})
		if err != nil {
			logging.Warn("mDNS announcement failed", zap.Error(err))
			return
		}
		adv = announced
		fmt.Printf("Announced as %s.local\n", mdnsHost)
	})
}

func serveOptions() (simulator.Options, error) {
	var opts simulator.Options

	if settingsFile != "" {
		data, err := os.ReadFile(settingsFile)
		if err != nil {
			return opts, fmt.Errorf("failed to read settings: %w", err)
		}
		s, err := store.DecodeSettings(data)
		if err != nil {
			return opts, fmt.Errorf("failed to parse settings %s: %w", settingsFile, err)
		}
		if gaps := s.Gaps(); len(gaps) > 0 {
			logging.Info("Settings fields defaulted", zap.Strings("fields", gaps))
		}
		opts.Settings = s
	}

	if ssid != "" || lang != "" {
		if opts.Settings == nil {
			opts.Settings = simulator.FactorySettings()
		}
		if ssid != "" {
			opts.Settings.WifiSSID = ssid
		}
		if lang != "" {
			opts.Settings.Language = lang
		}
	}

	if phonebookFile != "" {
		data, err := os.ReadFile(phonebookFile)
		if err != nil {
			return opts, fmt.Errorf("failed to read phonebook: %w", err)
		}
		book := phonebook.NewBook()
		if err := json.Unmarshal(data, book); err != nil {
			return opts, fmt.Errorf("failed to parse phonebook %s: %w", phonebookFile, err)
		}
		opts.Phonebook = book
	}
	return opts, nil
}

// parseFailure parses "path=status".
func parseFailure(s string) (string, int, error) {
	path, code, ok := strings.Cut(s, "=")
	if !ok || !strings.HasPrefix(path, "/") {
		return "", 0, fmt.Errorf("invalid --fail %q, want /api/path=status", s)
	}
	status, err := strconv.Atoi(code)
	if err != nil || status < 400 || status > 599 {
		return "", 0, fmt.Errorf("invalid --fail status %q, want 400-599", code)
	}
	return path, status, nil
}

// deviceArgs renders the charmer-cfg flags that reach the listener at a.
func deviceArgs(a net.Addr) string {
	host, port, err := net.SplitHostPort(a.String())
	if err != nil {
		return a.String()
	}
	if ip := net.ParseIP(host); ip == nil || ip.IsUnspecified() {
		host = "localhost"
	}
	return host + " --port " + port
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("charmer-sim %s (commit: %s)\n", version.Version, version.Commit)
	},
}

// Flags of 'watch'
var (
	watchURL  string
	watchJSON bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the requests a running simulator handles",
	Example: `  charmer-sim watch
  charmer-sim watch --url http://localhost:9000 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		enc := json.NewEncoder(out)
		return simulator.Watch(ctx, watchURL, func(ev simulator.Event) {
			if watchJSON {
				_ = enc.Encode(ev)
				return
			}
			fmt.Fprintln(out, ev)
		})
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchURL, "url", "http://localhost:8080", "Simulator base URL")
	watchCmd.Flags().BoolVar(&watchJSON, "json", false, "Print events as JSON lines")
}
