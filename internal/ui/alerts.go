package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/flowdeck/internal/alerts"
)

const maxAlertLines = 5

// alertIcon returns the glyph for an intent; unknown intents get a dot.
func alertIcon(intent alerts.Intent) string {
	switch intent {
	case alerts.IntentSuccess:
		return "✔"
	case alerts.IntentWarning:
		return "⚠"
	case alerts.IntentError:
		return "✖"
	case alerts.IntentInfo:
		return "ℹ"
	default:
		return "•"
	}
}

// renderAlerts draws the alert panel. It returns "" when there is nothing
// to show.
func renderAlerts(list []alerts.Alert, theme Theme, width int) string {
	if len(list) == 0 {
		return ""
	}
	styles := theme.Styles()

	var lines []string
	shown := min(len(list), maxAlertLines)
	for i := 0; i < shown; i++ {
		a := list[i]
		icon := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.IntentColor(a.Intent))).Bold(true).Render(alertIcon(a.Intent))
		stamp := styles.FaintText.Render(a.CreatedAt.Format("15:04:05"))
		dismiss := styles.FaintText.Render(fmt.Sprintf("[%d]", i+1))
		room := max(width-lipgloss.Width(dismiss)-16, 10)
		msg := styles.Text.Render(truncate(strings.ReplaceAll(a.Message, "\n", " "), room))
		lines = append(lines, strings.Join([]string{icon, stamp, msg, dismiss}, " "))
	}

	var footer []string
	if hidden := len(list) - shown; hidden > 0 {
		footer = append(footer, fmt.Sprintf("+%d more", hidden))
	}
	footer = append(footer, "a dismiss newest", "1-9 dismiss one")
	if len(list) > 1 {
		footer = append(footer, fmt.Sprintf("A dismiss all (%d)", len(list)))
	}
	lines = append(lines, styles.MutedText.Render(strings.Join(footer, " · ")))

	return strings.Join(lines, "\n")
}
