package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles
var (
	baseFg   = lipgloss.Color("#E6E6E6")
	dimFg    = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg = lipgloss.Color("#2DA44E")
	errFg    = lipgloss.Color("#E5534B")

	appStyle    = lipgloss.NewStyle().Foreground(baseFg).Padding(1, 2)
	titleStyle  = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	tabStyle    = lipgloss.NewStyle().Foreground(dimFg).Padding(0, 1)
	activeTab   = lipgloss.NewStyle().Foreground(accentFg).Bold(true).Padding(0, 1)
	statStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2).MarginRight(1)
	statNumber  = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(dimFg)
	errorStyle  = lipgloss.NewStyle().Foreground(errFg)
)

var tabNames = []string{"1 dashboard", "2 events", "3 businesses"}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("popmap admin"))
	b.WriteString("  ")
	for i, name := range tabNames {
		style := tabStyle
		if view(i) == m.view {
			style = activeTab
		}
		b.WriteString(style.Render(name))
	}
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n\n" + dimStyle.Render("r to retry, q to quit"))
	case m.loading:
		b.WriteString(m.spin.View() + " loading feed...")
	default:
		b.WriteString(m.contentView())
	}

	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(m.helpLine()))
	return appStyle.Render(b.String())
}

func (m model) contentView() string {
	switch m.view {
	case viewEvents:
		return m.lst.View()
	case viewBusinesses:
		return m.tbl.View()
	default:
		return m.dashboardView()
	}
}

func (m model) dashboardView() string {
	c := m.counts()
	stat := func(label string, n int) string {
		return statStyle.Render(fmt.Sprintf("%s\n%s", statNumber.Render(fmt.Sprintf("%d", n)), label))
	}
	top := lipgloss.JoinHorizontal(lipgloss.Top,
		stat("events", c.total),
		stat("active now", c.active),
		stat("businesses", c.businesses),
		stat("verified", c.verified),
	)
	breakdown := dimStyle.Render(fmt.Sprintf(
		"approved %d · pending %d · rejected %d", c.approved, c.pending, c.rejected))
	return top + "\n\n" + breakdown
}

func (m model) helpLine() string {
	if m.view == viewEvents {
		return "s cycle status · / filter · tab switch · r refresh · q quit"
	}
	return "tab switch · r refresh · q quit"
}
