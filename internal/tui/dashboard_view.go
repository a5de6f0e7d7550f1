package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/scopezero/scopezero/internal/engine"
	"github.com/scopezero/scopezero/internal/greenops"
)

const helpText = "←/→ or tab: switch view • 1-6: jump • r: reset to demo data • q: quit"

// View implements tea.Model.
func (m DashboardModel) View() string {
	if m.state == ViewStateQuitting {
		return ""
	}

	sections := []string{m.renderHeader(), m.renderTabs()}
	if m.tab == TabOverview {
		sections = append(sections, m.renderOverview())
	} else {
		sections = append(sections, m.renderTabBody())
	}
	sections = append(sections, SubtleStyle.Render(helpText))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DashboardModel) renderHeader() string {
	s := m.snapshot
	banner := InfoStyle.Padding(0, 1).Render("LIVE DATA")
	if s.IsFresh {
		banner = WarningStyle.Padding(0, 1).Render("DEMO DATA")
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("SCOPE 3 EMISSIONS"))
	b.WriteString("  ")
	b.WriteString(banner)
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s   %s %d\n",
		LabelStyle.Render("Total:"), ValueStyle.Render(engine.FormatKgRounded(s.TotalEmissions)),
		LabelStyle.Render("Records:"), len(s.Records))
	b.WriteString(SubtleStyle.Render(greenops.Describe(s.TotalEmissions)))
	return b.String()
}

func (m DashboardModel) renderTabs() string {
	tabs := make([]string, 0, numTabs)
	for t := range numTabs {
		style := TabStyle
		if t == m.tab {
			style = ActiveTabStyle
		}
		tabs = append(tabs, style.Render(fmt.Sprintf("%d %s", t+1, t)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m DashboardModel) renderOverview() string {
	s := m.snapshot
	var b strings.Builder

	b.WriteString(HeaderStyle.Render("BY CATEGORY"))
	b.WriteString("\n")
	for _, c := range s.Categories {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("■")
		fmt.Fprintf(&b, "%s %-12s %14s  %3.0f%%\n", swatch, c.Name, engine.FormatKgRounded(c.Value), c.Percentage)
	}

	if len(s.Suppliers) > 0 {
		top := s.Suppliers[0]
		fmt.Fprintf(&b, "\n%s %s (%s, %.0f%%)\n",
			LabelStyle.Render("Top supplier:"), top.Name, engine.FormatKgRounded(top.Emissions), top.Contribution)
	}
	if len(s.Recommendations) > 0 {
		fmt.Fprintf(&b, "%s %s across %d recommendation(s)\n",
			LabelStyle.Render("Potential reduction:"),
			engine.FormatKgRounded(s.PotentialReduction), len(s.Recommendations))
	}
	return b.String()
}

func (m DashboardModel) renderTabBody() string {
	if len(m.table.Rows()) == 0 {
		return SubtleStyle.Render(fmt.Sprintf("No %s data", strings.ToLower(m.tab.String())))
	}
	return m.table.View()
}
