package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dial-a-charmer/charmer/internal/logging"
	"github.com/dial-a-charmer/charmer/internal/store"
	"github.com/dial-a-charmer/charmer/internal/ui"
)

var ringtonesCmd = &cobra.Command{
	Use:   "ringtones",
	Short: "List the ringtones on the phone's SD card",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := requestContext(cmd)
		defer cancel()

		tones, err := s.client.GetRingtones(ctx)
		if err != nil {
			return err
		}
		if printer.JSON() {
			return printer.PrintJSON(tones)
		}
		for _, t := range tones {
			printer.Println("  " + t)
		}
		return nil
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview <ringtone.wav>",
	Short: "Play a ringtone on the phone",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.ValidatePreviewFile(args[0]); err != nil {
			return err
		}
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := requestContext(cmd)
		defer cancel()

		if err := s.client.PreviewSound(ctx, args[0]); err != nil {
			return err
		}
		if !printer.JSON() {
			printer.Printf("Playing %s\n", args[0])
		}
		return nil
	},
}

var timeCmd = &cobra.Command{
	Use:   "time",
	Short: "Show the phone's clock",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := requestContext(cmd)
		defer cancel()

		t, err := s.client.GetTime(ctx)
		if err != nil {
			return err
		}
		if printer.JSON() {
			return printer.PrintJSON(t)
		}
		printer.Println(t.Time)
		return nil
	},
}

// Flags of 'logs'
var (
	logsFollow bool
	logsLines  int
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show the phone's recent log lines",
	Long: `Show the phone's recent log lines. The phone keeps only the last few
lines; --follow polls it and prints new lines as they appear.`,
	Example: `  charmer-cfg logs
  charmer-cfg logs --follow`,
	RunE: runLogs,
}

func init() {
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "Keep polling for new lines")
	logsCmd.Flags().IntVarP(&logsLines, "lines", "n", 0, "Show at most this many lines (default: all)")

	rootCmd.AddCommand(ringtonesCmd, previewCmd, timeCmd, logsCmd)
}

func runLogs(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	fetch := func(ctx context.Context) ([]string, error) {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		tail, err := s.client.GetLogs(ctx)
		if err != nil {
			return nil, err
		}
		return tail.Lines, nil
	}

	lines, err := fetch(cmd.Context())
	if err != nil {
		return err
	}
	if printer.JSON() && !logsFollow {
		return printer.PrintJSON(store.LogTail{Lines: lines}.Last(logsLines))
	}
	if len(lines) == 0 && !printer.JSON() {
		printer.Println(ui.TableMutedStyle.Render("READY>_"))
	}
	printLogLines(store.LogTail{Lines: lines}.Last(logsLines))
	if !logsFollow {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	interval := registry.Preferences.StateOptions().LogPoll
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		cur, err := fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			// Polling failures are skipped; the next tick retries.
			logging.Debug("Log poll failed", zap.Error(err))
			continue
		}
		printLogLines(newLines(lines, cur))
		lines = cur
	}
}

func printLogLines(lines []string) {
	if printer.JSON() {
		for _, l := range lines {
			_ = printer.PrintJSON(l)
		}
		return
	}
	for _, l := range lines {
		printer.Println(ui.TableCellStyle.Render(l))
	}
}
