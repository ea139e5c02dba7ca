package ui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/flowdeck/internal/flowapi"
	"github.com/five82/flowdeck/internal/grid"
	"github.com/five82/flowdeck/internal/screens"
	"github.com/five82/flowdeck/internal/state"
)

// renderDetail renders the flow summary, tab bar and active tab grid.
func (m Model) renderDetail(width, height int) string {
	lines := []string{m.renderFlowSummary(width), m.renderTabs(width), ""}
	used := len(lines)
	g := m.activeGrid()
	body := g.Render(m.theme, width, max(height-used, 3), m.loading(m.tabKey()))
	return strings.Join(lines, "\n") + "\n" + body
}

// renderFlowSummary renders one line of flow facts.
func (m Model) renderFlowSummary(width int) string {
	styles := m.theme.Styles()
	rec := m.flow

	stateRaw := grid.Resolve(rec, "properties.state").String()
	stateText := screens.FlowState(grid.String(stateRaw), grid.Row{})
	stateStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.StatusColor(stateRaw))).Bold(true)

	parts := []string{
		styles.MutedText.Render("state ") + stateStyle.Render(stateText),
		styles.MutedText.Render("trigger ") + styles.Text.Render(valueOr(m.trigger, "-")),
		styles.MutedText.Render("modified ") + styles.Text.Render(screens.Date(grid.Resolve(rec, "properties.lastModifiedTime"), grid.Row{})),
	}
	if f, err := flowapi.Decode[flowapi.Flow](rec); err == nil && len(f.Properties.DefinitionSummary.Actions) > 0 {
		parts = append(parts, styles.MutedText.Render("actions ")+styles.Text.Render(fmt.Sprint(len(f.Properties.DefinitionSummary.Actions))))
	}
	if entry := m.snapshot(m.keyFor(state.KindFlow)); entry.IsOffline() {
		parts = append(parts, styles.DangerText.Render("offline"))
	}
	return truncateStyled(strings.Join(parts, "   "), width)
}

// renderTabs renders the detail tab bar with the active tab highlighted.
func (m Model) renderTabs(width int) string {
	styles := m.theme.Styles()
	active := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.SelectionText)).
		Background(lipgloss.Color(m.theme.SelectionBg)).
		Bold(true).
		Padding(0, 1)
	inactive := styles.MutedText.Padding(0, 1)

	tabs := make([]string, 0, len(tabTitles))
	for i, title := range tabTitles {
		if detailTab(i) == m.tab {
			tabs = append(tabs, active.Render(title))
		} else {
			tabs = append(tabs, inactive.Render(title))
		}
	}
	hint := styles.FaintText.Render("tab/shift+tab")
	return truncateStyled(strings.Join(tabs, " ")+"  "+hint, width)
}

func (m Model) snapshot(key state.Key) state.Entry {
	s := m.store()
	if s == nil {
		return state.Entry{}
	}
	return s.Snapshot(key)
}

// prettyJSON renders a record for the inspect pane.
func prettyJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("unable to render record: %v", err)
	}
	return string(data)
}

func valueOr(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// truncateStyled cuts a styled line to width cells.
func truncateStyled(s string, width int) string {
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
