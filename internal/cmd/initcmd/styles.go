package initcmd

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// CertWatch brand colors.
var (
	colorPrimary   = lipgloss.Color("#0EA5E9") // Sky blue
	colorSuccess   = lipgloss.Color("#22C55E") // Green
	colorWarning   = lipgloss.Color("#F59E0B") // Amber
	colorError     = lipgloss.Color("#EF4444") // Red
	colorMuted     = lipgloss.Color("#6B7280") // Gray
	colorHighlight = lipgloss.Color("#A855F7") // Purple
	colorDark      = lipgloss.Color("#1F2937") // Dark gray
	colorLight     = lipgloss.Color("#F9FAFB") // Light gray
)

const sectionWidth = 40

// message renders a one-line status message: a symbol and the text in one color.
func message(symbol string, color lipgloss.Color, bold bool, msg string) string {
	return lipgloss.NewStyle().Foreground(color).Bold(bold).Render(symbol + " " + msg)
}

// CreateTheme returns a huh theme in the CertWatch colors.
func CreateTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = t.Focused.Title.Foreground(colorPrimary)
	t.Focused.Description = t.Focused.Description.Foreground(colorMuted)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(colorHighlight)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(colorPrimary)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(colorPrimary)
	t.Blurred.Title = t.Blurred.Title.Foreground(colorMuted)

	return t
}

// RenderHeader renders the banner shown when the wizard starts.
func RenderHeader() string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(colorLight).
		Background(colorPrimary).
		Padding(0, 2).
		Render(" CertWatch Certificate Scanner Setup ")
}

// RenderTitle renders a bold heading above a block of summary lines.
func RenderTitle(title string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).MarginBottom(1).Render(title)
}

// RenderSection renders a divider padded to a fixed width, never shorter
// than three rule characters.
func RenderSection(title string) string {
	rule := strings.Repeat("─", max(3, sectionWidth-utf8.RuneCountInString(title)))
	return lipgloss.NewStyle().
		Foreground(colorMuted).
		Margin(1, 0).
		Render("─── " + title + " " + rule)
}

func RenderSuccess(msg string) string { return message("✓", colorSuccess, true, msg) }
func RenderError(msg string) string   { return message("✗", colorError, true, msg) }
func RenderWarning(msg string) string { return message("!", colorWarning, false, msg) }
func RenderInfo(msg string) string    { return message("→", colorMuted, false, msg) }

// RenderField renders an indented summary line with the label in a
// fixed-width muted column.
func RenderField(label, value string) string {
	return "  " + lipgloss.NewStyle().Foreground(colorMuted).Width(16).Render(label+":") + value
}

// RenderCode renders a command the user can copy.
func RenderCode(code string) string {
	return lipgloss.NewStyle().Background(colorDark).Foreground(colorLight).Padding(0, 1).Render(code)
}
