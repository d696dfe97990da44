package panel

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dial-a-charmer/charmer/internal/state"
	"github.com/dial-a-charmer/charmer/internal/version"
)

// Application branding constants
const (
	AppName    = "DIAL-A-CHARMER CONTROL PANEL"
	ProjectURL = "github.com/dial-a-charmer/charmer"
)

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Layout constants
const (
	DefaultWidth  = 80
	DefaultHeight = 24
	LogViewHeight = 10
)

// Color palette
var (
	// Brass and ivory, like the device's web UI
	PrimaryColor   = lipgloss.Color("#D4AF37") // Gold
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	AccentColor    = lipgloss.Color("#FFC107") // Amber
	WarningColor   = lipgloss.Color("#FFA500") // Orange
	ErrorColor     = lipgloss.Color("#FF4136") // Red

	TextColor   = lipgloss.Color("#F0E6D2") // Ivory
	SubtleColor = lipgloss.Color("#888888") // Gray
	BorderColor = lipgloss.Color("#444444")
	CRTColor    = lipgloss.Color("#33FF33") // Phosphor green
)

// Common styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Italic(true)

	MenuItemStyle = lipgloss.NewStyle().
			PaddingLeft(4).
			Foreground(TextColor)

	SelectedMenuItemStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Foreground(PrimaryColor).
				Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	ValueStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	DisabledStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Faint(true)

	// Reboot and anything else that needs a second look
	CriticalStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ErrorColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SecondaryColor)

	InfoStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(AccentColor)

	SectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1).
			MarginBottom(1)

	CRTStyle = lipgloss.NewStyle().
			Foreground(CRTColor).
			Border(lipgloss.NormalBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	NavActiveStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Underline(true)

	NavStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)
)

// RenderTitle renders a page title
func RenderTitle(text string) string {
	return TitleStyle.Render(strings.ToUpper(text))
}

// RenderSubtitle renders a subtitle
func RenderSubtitle(text string) string {
	return SubtitleStyle.Render(text)
}

// RenderMenuItem renders a menu item with selection indicator
func RenderMenuItem(text string, selected bool) string {
	if selected {
		return SelectedMenuItemStyle.Render("→ " + text)
	}
	return MenuItemStyle.Render("  " + text)
}

// RenderError renders an error message
func RenderError(text string) string {
	return ErrorStyle.Render("✗ " + text)
}

// RenderSuccess renders a success message
func RenderSuccess(text string) string {
	return SuccessStyle.Render("✓ " + text)
}

// RenderInfo renders an informational message
func RenderInfo(text string) string {
	return InfoStyle.Render(text)
}

// RenderNotice renders the dismissible notice line.
func RenderNotice(n *state.Notice) string {
	if n == nil {
		return ""
	}
	switch n.Level {
	case state.NoticeError:
		return RenderError(n.Text)
	case state.NoticeSuccess:
		return RenderSuccess(n.Text)
	default:
		return RenderInfo(n.Text)
	}
}

// RenderCheckbox renders a boolean field.
func RenderCheckbox(on bool, label string) string {
	if on {
		return ValueStyle.Render("[x] ") + label
	}
	return LabelStyle.Render("[ ] ") + label
}

// BuildHeaderContent creates header content with app name and the device address
func BuildHeaderContent(host string) string {
	left := lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Bold(true).
		Render(AppName + " v" + AppVersion())

	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(host)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// BuildFooterContent creates footer content with help text
func BuildFooterContent(helpText string) string {
	return lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(helpText)
}

// RenderApplicationContainer wraps every page: header with name, version and
// device address, the page content and a footer with the key help. It fills
// the terminal using lipgloss.Place.
func RenderApplicationContainer(content, footerText, host string, terminalWidth, terminalHeight int) string {
	if terminalWidth <= 0 {
		terminalWidth = DefaultWidth
	}
	if terminalHeight <= 0 {
		terminalHeight = DefaultHeight
	}

	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1)

	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1)

	contentStyle := lipgloss.NewStyle().
		Width(terminalWidth-4).
		Padding(0, 1)

	innerContent := lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render(BuildHeaderContent(host)),
		contentStyle.Render(content),
		footerStyle.Render(BuildFooterContent(footerText)),
	)

	bordered := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(terminalWidth - 2).
		Height(terminalHeight - 2).
		AlignVertical(lipgloss.Top).
		Render(innerContent)

	return lipgloss.Place(
		terminalWidth,
		terminalHeight,
		lipgloss.Left,
		lipgloss.Top,
		bordered,
	)
}
