package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

var helpSectionTitles = []string{"Navigation", "Rows and columns", "Search, sort, filter", "Flows", "Runs", "General"}

// renderHelp renders the help overlay from the key map.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	groups := m.keys.FullHelp()
	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(12)
	for i, group := range groups {
		if i < len(helpSectionTitles) {
			b.WriteString(styles.AccentText.Bold(true).Render(helpSectionTitles[i]))
			b.WriteString("\n")
		}
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(keyStyle.Render(h.Key))
			b.WriteString(styles.Text.Render(h.Desc))
			b.WriteString("\n")
		}
		if i < len(groups)-1 {
			b.WriteString("\n")
		}
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(44)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

// footerBindings returns the short help for the current screen.
func (m Model) footerBindings() []key.Binding {
	k := m.keys
	out := []key.Binding{k.Search, k.Sort, k.CycleFilter}
	switch m.screen {
	case screenEnvironments:
		out = append([]key.Binding{k.Open}, out...)
	case screenFlows:
		out = append([]key.Binding{k.Open, k.Back}, out...)
		out = append(out, k.RunFlow, k.EnableFlow, k.DisableFlow, k.DeleteFlow)
	case screenDetail:
		out = append([]key.Binding{k.Back, k.NextTab}, out...)
		if m.tab == tabRuns {
			out = append(out, k.CancelRun, k.ResubmitRun)
		}
	}
	return append(out, k.Refresh, k.Help, k.Quit)
}

// shortHelp adapts footerBindings to help.KeyMap.
type shortHelp struct {
	bindings []key.Binding
	full     [][]key.Binding
}

func (s shortHelp) ShortHelp() []key.Binding  { return s.bindings }
func (s shortHelp) FullHelp() [][]key.Binding { return s.full }
