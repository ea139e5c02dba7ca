package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is the interface for modal dialogs.
// Update returns the updated modal, a command, and whether the modal should close.
type Modal interface {
	Update(msg tea.KeyMsg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// confirmModal asks a yes/no question and runs onConfirm on yes.
type confirmModal struct {
	title     string
	prompt    string
	onConfirm tea.Cmd
}

func (c confirmModal) Update(msg tea.KeyMsg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Confirm):
		return c, c.onConfirm, true
	case key.Matches(msg, keys.Deny):
		return c, nil, true
	}
	return c, nil, false
}

func (c confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	body := styles.DangerText.Render(c.title) + "\n\n" +
		styles.Text.Render(c.prompt) + "\n\n" +
		styles.WarningText.Render("y") + styles.MutedText.Render(" confirm   ") +
		styles.WarningText.Render("n") + styles.MutedText.Render(" cancel")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Danger)).
		Padding(1, 2).
		Width(min(60, max(width-4, 20))).
		Render(body)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
