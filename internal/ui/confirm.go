package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Confirmation describes an operation that needs the user to type a phrase.
type Confirmation struct {
	Title    string
	Warnings []string
	Note     string // Muted paragraph under the warnings
	Phrase   string // What the user must type, e.g. "yes"
	Width    int
}

// Render returns the warning box shown before the prompt.
func (c Confirmation) Render() string {
	width := c.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	lines := []string{"", WarningTitleStyle.Render(fmt.Sprintf("   %s  WARNING  ─  %s", WarningMarker, c.Title)), ""}
	for _, w := range c.Warnings {
		lines = append(lines, lipgloss.NewStyle().Foreground(TextColor).Render("   • "+w))
	}
	lines = append(lines, "")
	if c.Note != "" {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true).
			Width(width-12).
			PaddingLeft(3).
			Render(c.Note), "")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(WarningColor).
		Width(width-2).
		Padding(0, 2).
		Render(strings.Join(lines, "\n"))
}

// Ask prints the box and the prompt to out and reads one line from in.
// It returns true only when the line equals the phrase, ignoring case and
// surrounding space.
func (c Confirmation) Ask(in io.Reader, out io.Writer) bool {
	_, _ = fmt.Fprintln(out, c.Render())
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprint(out, WarningTitleStyle.Render(fmt.Sprintf("To proceed, type %q and press Enter: ", c.Phrase)))

	input, err := bufio.NewReader(in).ReadString('\n')
	_, _ = fmt.Fprintln(out)
	if err != nil && input == "" {
		return false
	}
	if strings.EqualFold(strings.TrimSpace(input), c.Phrase) {
		return true
	}
	_, _ = fmt.Fprintln(out, lipgloss.NewStyle().Foreground(MutedColor).Render("  Operation cancelled."))
	return false
}

// NetworkChangeConfirmation is shown before new WiFi credentials are sent.
// The device restarts and leaves its setup hotspot, so a mistyped password
// means a trip back to factory setup.
func NetworkChangeConfirmation(ssid string) Confirmation {
	return Confirmation{
		Title: "CHANGE WIFI NETWORK",
		Warnings: []string{
			fmt.Sprintf("The device will restart and join %q", ssid),
			"Its setup hotspot disappears once it is connected",
			"A wrong password leaves it unreachable until it falls back to setup mode",
		},
		Note:   "After the restart look for the device at http://dial-a-charmer.local on the new network.",
		Phrase: "yes",
		Width:  GetTerminalWidth(),
	}
}
