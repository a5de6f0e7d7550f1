package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"

	"github.com/scopezero/scopezero/internal/engine"
)

// buildTable returns the list for the active tab. Overview has no rows.
func (m DashboardModel) buildTable() table.Model {
	var (
		columns []table.Column
		rows    []table.Row
	)
	s := m.snapshot

	switch m.tab {
	case TabSuppliers:
		columns = []table.Column{
			{Title: "Supplier", Width: 32},     //nolint:mnd // Column width.
			{Title: "Region", Width: 16},       //nolint:mnd // Column width.
			{Title: "Emissions", Width: 16},    //nolint:mnd // Column width.
			{Title: "Contribution", Width: 12}, //nolint:mnd // Column width.
		}
		for _, sup := range s.Suppliers {
			rows = append(rows, table.Row{
				sup.Name, sup.Region, engine.FormatKgRounded(sup.Emissions), fmt.Sprintf("%.0f%%", sup.Contribution),
			})
		}
	case TabMaterials:
		columns = []table.Column{
			{Title: "Material", Width: 24}, //nolint:mnd // Column width.
			{Title: "Share", Width: 8},     //nolint:mnd // Column width.
			{Title: "", Width: barWidth},
		}
		for _, mat := range s.Materials {
			rows = append(rows, table.Row{mat.Name, fmt.Sprintf("%.0f%%", mat.Percentage), bar(mat.Percentage, 100)})
		}
	case TabTransport:
		columns = []table.Column{
			{Title: "Mode", Width: 24},      //nolint:mnd // Column width.
			{Title: "Emissions", Width: 16}, //nolint:mnd // Column width.
			{Title: "", Width: barWidth},
		}
		peak := 0.0
		for _, t := range s.TransportModes {
			peak = max(peak, t.Value)
		}
		for _, t := range s.TransportModes {
			rows = append(rows, table.Row{t.Mode, engine.FormatKgRounded(t.Value), bar(t.Value, peak)})
		}
	case TabTrend:
		columns = []table.Column{
			{Title: "Month", Width: 10},     //nolint:mnd // Column width.
			{Title: "Emissions", Width: 16}, //nolint:mnd // Column width.
			{Title: "", Width: barWidth},
		}
		peak := 0.0
		for _, p := range s.Trend {
			peak = max(peak, p.Emissions)
		}
		for _, p := range s.Trend {
			rows = append(rows, table.Row{p.Month, engine.FormatKgRounded(p.Emissions), bar(p.Emissions, peak)})
		}
	case TabRecommendations:
		columns = []table.Column{
			{Title: "Recommendation", Width: 40}, //nolint:mnd // Column width.
			{Title: "Reduction", Width: 14},      //nolint:mnd // Column width.
			{Title: "Cost", Width: 10},           //nolint:mnd // Column width.
			{Title: "Savings", Width: 10},        //nolint:mnd // Column width.
		}
		for _, r := range s.Recommendations {
			rows = append(rows, table.Row{r.Title, engine.FormatKgRounded(r.Emissions), r.Cost, r.Savings})
		}
	case TabOverview, numTabs:
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-chromeHeight, minTableRows)),
	)

	st := table.DefaultStyles()
	st.Header = TableHeaderStyle
	st.Selected = TableSelectedStyle
	t.SetStyles(st)
	return t
}

// bar draws v relative to peak as a block bar of barWidth cells.
func bar(v, peak float64) string {
	if peak <= 0 || v <= 0 {
		return ""
	}
	return strings.Repeat("█", min(int(v/peak*barWidth+0.5), barWidth))
}
