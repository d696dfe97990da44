package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dial-a-charmer/charmer/internal/config"
	"github.com/dial-a-charmer/charmer/internal/i18n"
	"github.com/dial-a-charmer/charmer/internal/logging"
	"github.com/dial-a-charmer/charmer/internal/panel"
	"github.com/dial-a-charmer/charmer/internal/router"
)

var panelCmd = &cobra.Command{
	Use:   "panel [page]",
	Short: "Open the interactive control panel",
	Long: `Open the interactive control panel. It has the pages of the phone's web
interface: home, alarms, phonebook, configuration and setup.

A phone that still needs WiFi setup always opens on the setup page.`,
	Example: `  charmer-cfg
  charmer-cfg panel phonebook --device dial-a-charmer.local
  charmer-cfg panel /setup --device 192.168.4.1`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPanel,
}

func init() {
	rootCmd.AddCommand(panelCmd)
}

// startPath accepts a page name or a path: "alarms", "/alarm", "/settings".
// Unknown pages open home.
func startPath(arg string) string {
	if arg == "" {
		return router.PathHome
	}
	if arg[0] == '/' {
		return router.Page(arg).Path()
	}
	for _, p := range router.Pages {
		if strings.EqualFold(arg, p.String()) {
			return p.Path()
		}
	}
	return router.Page("/" + strings.ToLower(arg)).Path()
}

func runPanel(cmd *cobra.Command, args []string) error {
	// The terminal belongs to the panel; logs go to a file.
	if logFile == "" && (logLevel != "" || os.Getenv(logging.LogLevelEnvVar) != "") {
		dir, err := config.GetConfigDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
		if err := logging.InitializeWithOutput(logLevel, filepath.Join(dir, "panel.log")); err != nil {
			return err
		}
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	opts := panel.DefaultOptions()
	opts.State = registry.Preferences.StateOptions()
	if langFlag != "" {
		opts.State.Language = i18n.Parse(langFlag)
	}
	if len(args) > 0 {
		opts.StartPath = startPath(args[0])
	}

	model := panel.NewAppModel(s.client, opts)
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run(); err != nil {
		return fmt.Errorf("panel error: %w", err)
	}
	s.remember("")
	return nil
}
