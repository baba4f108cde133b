package render

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/clydenvis-afk/nutriaitracker/internal/service"
)

const (
	minChartWidth = 20
	chartHeight   = 12
)

// TrendChart draws one bar per trend point. Bars over target are red, the
// rest green; days with no net intake are muted.
func TrendChart(points []service.TrendPoint, target float64, width int) string {
	if width < minChartWidth {
		width = minChartWidth
	}
	chart := barchart.New(width, chartHeight)

	bars := make([]barchart.BarData, 0, len(points))
	for _, p := range points {
		status := barStatus(p.Net, target)
		bars = append(bars, barchart.BarData{
			Label: p.Label,
			Values: []barchart.BarValue{{
				Name:  p.Date,
				Value: p.Net,
				Style: statusStyle(status),
			}},
		})
	}
	chart.PushAll(bars)
	chart.Draw()

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Net calories"), "  ",
		mutedStyle.Render(fmt.Sprintf("target %.0f kcal", target)),
	)
	return lipgloss.JoinVertical(lipgloss.Left, header, chart.View(), chartLegend())
}

func barStatus(net, target float64) service.ConsistencyStatus {
	switch {
	case net <= 0:
		return service.StatusEmpty
	case net > target:
		return service.StatusRed
	default:
		return service.StatusGreen
	}
}

func chartLegend() string {
	return lipgloss.JoinHorizontal(lipgloss.Bottom,
		statusStyle(service.StatusGreen).Render("■ within target"), "  ",
		statusStyle(service.StatusRed).Render("■ over target"), "  ",
		statusStyle(service.StatusEmpty).Render("· none"),
	)
}

func Legend() string {
	return lipgloss.JoinHorizontal(lipgloss.Bottom,
		statusStyle(service.StatusGreen).Render("■ ≤110%"), "  ",
		statusStyle(service.StatusYellow).Render("■ ≤130%"), "  ",
		statusStyle(service.StatusRed).Render("■ >130%"), "  ",
		statusStyle(service.StatusEmpty).Render("· no data"),
	)
}

// MacroBar renders a proportional protein/carbs/fat strip of the given width.
func MacroBar(m service.MacroSummary, width int) string {
	if !m.HasData() {
		return mutedStyle.Render("no data")
	}
	p, c, _, _ := m.Shares()
	if width < 10 {
		width = 10
	}
	pw := int(p / 100 * float64(width))
	cw := int(c / 100 * float64(width))
	fw := width - pw - cw
	return lipgloss.NewStyle().Foreground(colorIntake).Render(strings.Repeat("█", pw)) +
		lipgloss.NewStyle().Foreground(colorSuccess).Render(strings.Repeat("█", cw)) +
		lipgloss.NewStyle().Foreground(colorWarning).Render(strings.Repeat("█", fw))
}
