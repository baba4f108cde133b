package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/clydenvis-afk/nutriaitracker/internal/service"
)

const cellWidth = 4

// Calendar lays the month out Sunday-first with each day coloured by its
// consistency status. today is underlined when it falls in the month.
func Calendar(cal service.CalendarMonth, today string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %d", cal.Month, cal.Year)))
	b.WriteString("\n")

	header := make([]string, 0, 7)
	for _, d := range []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"} {
		header = append(header, mutedStyle.Width(cellWidth).Render(d))
	}
	b.WriteString(strings.Join(header, ""))
	b.WriteString("\n")

	col := 0
	row := make([]string, 0, 7)
	blank := lipgloss.NewStyle().Width(cellWidth).Render("")
	for i := 0; i < cal.LeadingBlanks; i++ {
		row = append(row, blank)
		col++
	}
	for _, d := range cal.Days {
		style := statusStyle(d.Status).Width(cellWidth)
		if d.Date == today {
			style = style.Inherit(todayStyle)
		}
		row = append(row, style.Render(fmt.Sprintf("%d", d.Day)))
		col++
		if col == 7 {
			b.WriteString(strings.Join(row, ""))
			b.WriteString("\n")
			row = row[:0]
			col = 0
		}
	}
	if len(row) > 0 {
		b.WriteString(strings.Join(row, ""))
		b.WriteString("\n")
	}
	b.WriteString(Legend())
	return b.String()
}
