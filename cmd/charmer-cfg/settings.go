package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dial-a-charmer/charmer/internal/store"
	"github.com/dial-a-charmer/charmer/internal/ui"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change device settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show all device settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key=value>...",
	Short: "Change one or more settings",
	Long: `Change settings. Only the given fields are sent to the device.

Keys:
  lang             de or en
  volume           base speaker volume, 0-100
  handset          handset volume, 0-100
  alarm_volume     alarm volume, 0-100
  alarm_min        volume a ramping alarm starts at, 0-100
  snooze           snooze length in minutes, 1-20
  ringtone         timer ringtone file (.wav)
  timezone         timezone name or TZ string (see 'settings timezones')
  led              night lamp on/off
  led_day          lamp brightness by day, 0-100
  led_night        lamp brightness by night, 0-100
  led_day_start    hour the day brightness starts, 0-23
  led_night_start  hour the night brightness starts, 0-23`,
	Example: `  charmer-cfg settings set volume=45 handset=60
  charmer-cfg settings set timezone=Europe/London
  charmer-cfg settings set lang=en --verify`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSettingsSet,
}

var settingsTimezonesCmd = &cobra.Command{
	Use:   "timezones",
	Short: "List the timezones the device accepts",
	RunE: func(cmd *cobra.Command, args []string) error {
		zones := store.Timezones()
		if printer.JSON() {
			return printer.PrintJSON(zones)
		}
		t := ui.NewTable("NAME", "TZ")
		for _, tz := range zones {
			t.AddRow(tz.Name, tz.Value)
		}
		printer.PrintTable(t)
		return nil
	},
}

var verifySave bool

func init() {
	settingsSetCmd.Flags().BoolVar(&verifySave, "verify", false, "Read the settings back and confirm the device kept them")
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd, settingsTimezonesCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(cmd)
	defer cancel()

	settings, err := s.client.GetSettings(ctx)
	if err != nil {
		return err
	}
	if printer.JSON() {
		return printer.PrintJSON(settings)
	}

	tz := settings.Timezone
	if i := store.TimezoneIndex(tz); i >= 0 {
		tz = store.Timezones()[i].Name
	}
	lamp := "off"
	if settings.Lamp.Enabled {
		lamp = fmt.Sprintf("%d%% from %d:00, %d%% from %d:00",
			settings.Lamp.DayPercent, settings.Lamp.DayStart, settings.Lamp.NightPercent, settings.Lamp.NightStart)
	}

	printer.PrintHeader("Settings", s.client.BaseURL)
	printer.PrintFields(
		ui.F("Language", settings.Language),
		ui.F("Network", orDash(settings.WifiSSID)),
		ui.F("Volume", percent(settings.Volume)),
		ui.F("Handset volume", percent(settings.HandsetVolume)),
		ui.F("Alarm volume", percent(settings.AlarmVolume)),
		ui.F("Alarm ramp start", percent(settings.AlarmMin)),
		ui.F("Snooze", strconv.Itoa(settings.Snooze)+" min"),
		ui.F("Timer ringtone", settings.TimerRingtone),
		ui.F("Timezone", tz),
		ui.F("Device time", orDash(settings.CurrentTime)),
		ui.F("Night lamp", lamp),
	)
	if gaps := settings.Gaps(); len(gaps) > 0 {
		printer.Newline()
		printer.Printf("  Defaults used for: %v\n", gaps)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	patch, err := parseAssignments(args)
	if err != nil {
		return err
	}
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(cmd)
	defer cancel()

	if !verifySave {
		if err := s.client.SaveSettings(ctx, patch); err != nil {
			return err
		}
		if printer.JSON() {
			return printer.PrintJSON(map[string]any{"saved": patch.Fields()})
		}
		printer.PrintSuccess("Settings saved", ui.F("Fields", fmt.Sprint(patch.Fields())))
		return nil
	}

	v, err := s.client.SaveAndVerify(ctx, patch, store.DefaultVerifyOptions())
	if err != nil {
		return err
	}
	if printer.JSON() {
		return printer.PrintJSON(map[string]any{
			"saved":      patch.Fields(),
			"verified":   v.OK(),
			"attempts":   v.Attempts,
			"mismatches": v.Mismatches,
		})
	}
	if !v.OK() {
		printer.PrintWarning("Settings saved but not confirmed",
			ui.F("Fields", fmt.Sprint(patch.Fields())),
			ui.F("Reads", strconv.Itoa(v.Attempts)),
			ui.F("Differences", v.Summary()),
		)
		return nil
	}
	printer.PrintSuccess("Settings saved and verified",
		ui.F("Fields", fmt.Sprint(patch.Fields())),
		ui.F("Reads", strconv.Itoa(v.Attempts)),
	)
	return nil
}

func percent(v int) string {
	return strconv.Itoa(v) + "%"
}
