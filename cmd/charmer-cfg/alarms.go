package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dial-a-charmer/charmer/internal/i18n"
	"github.com/dial-a-charmer/charmer/internal/store"
	"github.com/dial-a-charmer/charmer/internal/ui"
)

var alarmsCmd = &cobra.Command{
	Use:   "alarms",
	Short: "Show or change the weekly alarms",
}

var alarmsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the alarm of every weekday",
	RunE:  runAlarmsShow,
}

// Flags of 'alarms set'
var (
	alarmTime    string
	alarmOn      bool
	alarmOff     bool
	alarmRamp    bool
	alarmMessage bool
	alarmSound   string
	alarmSnooze  int
)

var alarmsSetCmd = &cobra.Command{
	Use:   "set <day>",
	Short: "Change the alarm of one weekday",
	Long: `Change the alarm of one weekday. Days are 0-6 (0 = Sunday) or names
in English or German (mon, tuesday, mi, donnerstag...).

The whole alarm list is sent together with the snooze time, like the panel
does. A day without an alarm gets one at 07:00 with the default sound.`,
	Example: `  charmer-cfg alarms set mon --time 06:30 --on
  charmer-cfg alarms set sat --off
  charmer-cfg alarms set fri --sound cuckoo.wav --ramp=true
  charmer-cfg alarms set sun --snooze 10`,
	Args: cobra.ExactArgs(1),
	RunE: runAlarmsSet,
}

func init() {
	f := alarmsSetCmd.Flags()
	f.StringVar(&alarmTime, "time", "", "Alarm time HH:MM")
	f.BoolVar(&alarmOn, "on", false, "Enable the alarm")
	f.BoolVar(&alarmOff, "off", false, "Disable the alarm")
	f.BoolVar(&alarmRamp, "ramp", false, "Raise the volume gradually")
	f.BoolVar(&alarmMessage, "message", false, "Play a message after the ringtone")
	f.StringVar(&alarmSound, "sound", "", "Ringtone file (.wav)")
	f.IntVar(&alarmSnooze, "snooze", 0, "Snooze length in minutes (applies to all days)")
	alarmsSetCmd.MarkFlagsMutuallyExclusive("on", "off")

	alarmsCmd.AddCommand(alarmsShowCmd, alarmsSetCmd)
	rootCmd.AddCommand(alarmsCmd)
}

func runAlarmsShow(cmd *cobra.Command, args []string) error {
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
		return printer.PrintJSON(map[string]any{"alarms": settings.Alarms, "snooze_min": settings.Snooze})
	}

	lang := displayLanguage(settings)
	t := ui.NewTable("DAY", "TIME", "STATE", "RAMP", "MESSAGE", "SOUND")
	var enabled []bool
	for _, day := range store.DisplayDays {
		r, ok := settings.AlarmFor(day)
		if !ok {
			t.AddRow(i18n.DayName(lang, day), "--:--", "none", "", "", "")
			enabled = append(enabled, false)
			continue
		}
		t.AddRow(i18n.DayName(lang, day), r.Clock(), onOff(r.Enabled), yesNo(r.VolumeRamp), yesNo(r.WithMessage), r.SoundOrDefault())
		enabled = append(enabled, r.Enabled)
	}
	t.RowStyle = func(i int) lipgloss.Style {
		if enabled[i] {
			return ui.TableCellStyle
		}
		return ui.TableMutedStyle
	}
	printer.PrintTable(t)
	printer.Newline()
	printer.Printf("  Snooze: %d min   Device time: %s\n", settings.Snooze, orDash(settings.CurrentTime))
	return nil
}

// alarmChange holds the fields given on the command line; nil means keep.
type alarmChange struct {
	Hour, Minute *int
	Enabled      *bool
	Ramp         *bool
	Message      *bool
	Sound        *string
}

// editAlarm returns the alarm list with the rule for day changed, in
// display order. A day without a rule gets a disabled 07:00 default first.
func editAlarm(rules []store.AlarmRule, day int, c alarmChange) []store.AlarmRule {
	byDay := make(map[int]store.AlarmRule, len(rules))
	for _, r := range rules {
		byDay[r.Day] = r
	}
	r, ok := byDay[day]
	if !ok {
		r = store.AlarmRule{Day: day, Hour: 7, Sound: store.DefaultAlarmSound}
	}
	if c.Hour != nil {
		r.Hour, r.Minute = *c.Hour, *c.Minute
	}
	if c.Enabled != nil {
		r.Enabled = *c.Enabled
	}
	if c.Ramp != nil {
		r.VolumeRamp = *c.Ramp
	}
	if c.Message != nil {
		r.WithMessage = *c.Message
	}
	if c.Sound != nil {
		r.Sound = *c.Sound
	}
	byDay[day] = r

	out := make([]store.AlarmRule, 0, len(byDay))
	for _, d := range store.DisplayDays {
		if r, ok := byDay[d]; ok {
			out = append(out, r)
		}
	}
	return out
}

func runAlarmsSet(cmd *cobra.Command, args []string) error {
	day, err := parseDay(args[0])
	if err != nil {
		return err
	}

	var change alarmChange
	flags := cmd.Flags()
	if alarmTime != "" {
		h, m, err := parseClock(alarmTime)
		if err != nil {
			return err
		}
		change.Hour, change.Minute = &h, &m
	}
	switch {
	case alarmOn:
		change.Enabled = store.Ptr(true)
	case alarmOff:
		change.Enabled = store.Ptr(false)
	}
	if flags.Changed("ramp") {
		change.Ramp = store.Ptr(alarmRamp)
	}
	if flags.Changed("message") {
		change.Message = store.Ptr(alarmMessage)
	}
	if alarmSound != "" {
		change.Sound = store.Ptr(alarmSound)
	}
	if flags.Changed("snooze") {
		if err := store.ValidateSnooze(alarmSnooze); err != nil {
			return err
		}
	}

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
	rules := editAlarm(settings.Alarms, day, change)
	var saved store.AlarmRule
	for _, r := range rules {
		if r.Day == day {
			saved = r
		}
	}
	if err := store.ValidateAlarm(saved); err != nil {
		return err
	}
	snooze := settings.Snooze
	if flags.Changed("snooze") {
		snooze = alarmSnooze
	}

	if err := s.client.SaveSettings(ctx, store.SettingsPatch{Alarms: rules, Snooze: store.Ptr(snooze)}); err != nil {
		return err
	}

	if printer.JSON() {
		return printer.PrintJSON(map[string]any{"alarm": saved, "snooze_min": snooze})
	}
	lang := displayLanguage(settings)
	printer.PrintSuccess("Alarm saved",
		ui.F("Day", i18n.DayName(lang, day)),
		ui.F("Time", saved.Clock()),
		ui.F("State", onOff(saved.Enabled)),
		ui.F("Sound", saved.SoundOrDefault()),
		ui.F("Snooze", fmt.Sprintf("%d min", snooze)),
	)
	return nil
}

// displayLanguage is --lang when given, else the device language.
func displayLanguage(settings *store.Settings) i18n.Language {
	if langFlag != "" {
		return i18n.Parse(langFlag)
	}
	return i18n.Parse(settings.Language)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
