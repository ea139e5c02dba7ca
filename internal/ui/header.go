package ui

import (
	"strings"
	"time"
)

// renderHeader renders the status bar: logo, account, breadcrumb, load state
// and token expiry.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Render("  ", styles.Text)

	compact := m.width < LayoutCompactWidth
	parts := []string{bg.Render("flowdeck", styles.Logo)}
	if m.account != "" && !compact {
		parts = append(parts, bg.Render(m.account, styles.MutedText))
	}
	parts = append(parts, bg.Render(m.breadcrumb(), styles.Text))

	key := m.activeKey()
	entry := m.snapshot(key)
	switch {
	case entry.Loading:
		parts = append(parts, bg.Render("loading...", styles.WarningText))
	case entry.IsOffline():
		parts = append(parts, bg.Render("OFFLINE", styles.DangerText))
	case !entry.LastUpdated.IsZero():
		parts = append(parts, bg.Render("updated "+entry.LastUpdated.Format("15:04:05"), styles.FaintText))
	}

	if exp := m.expiryLabel(); exp != "" {
		style := styles.FaintText
		if !m.expiresAt.After(m.now()) || m.expiresAt.Sub(m.now()) < 10*time.Minute {
			style = styles.DangerText
		}
		parts = append(parts, bg.Render(exp, style))
	}
	if !compact {
		parts = append(parts, bg.Render("T "+m.theme.Name, styles.FaintText))
	}

	return styles.Header.Width(m.width).MaxWidth(m.width).Render(strings.Join(parts, sep))
}

// breadcrumb names the navigation path to the current screen.
func (m Model) breadcrumb() string {
	crumbs := []string{"Environments"}
	if m.screen >= screenFlows {
		crumbs = append(crumbs, valueOr(m.envLabel, m.env))
	}
	if m.screen == screenDetail {
		crumbs = append(crumbs, m.flowLabel, tabTitles[m.tab])
	}
	return strings.Join(crumbs, " › ")
}

func (m Model) expiryLabel() string {
	if m.expiresAt.IsZero() {
		return ""
	}
	if !m.expiresAt.After(m.now()) {
		return "token expired"
	}
	return "token expires " + m.expiresAt.Local().Format("15:04")
}
