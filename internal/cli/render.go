package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/domain"
)

var (
	colorGreen  = lipgloss.Color("#8ec07c")
	colorDim    = lipgloss.Color("#928374")
	colorHeader = lipgloss.Color("#fe8019")

	styleOK     = lipgloss.NewStyle().Foreground(colorGreen)
	styleDone   = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	styleHeader = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
)

var weekdayLabels = [domain.DaysPerWeek]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

func paint(color bool, style lipgloss.Style, text string) string {
	if !color {
		return text
	}
	return style.Render(text)
}

// RenderMonth prints the grid as a 7 column Sunday-first calendar. Days with
// a recorded workout are marked with '*'.
func RenderMonth(ym domain.YearMonth, cells []domain.CalendarCell, color bool) string {
	var b strings.Builder

	b.WriteString(paint(color, styleHeader, ym.String()))
	b.WriteString("\n")

	labels := make([]string, len(weekdayLabels))
	for i, l := range weekdayLabels {
		labels[i] = fmt.Sprintf("%3s ", l)
	}
	b.WriteString(paint(color, styleDim, strings.TrimRight(strings.Join(labels, ""), " ")))
	b.WriteString("\n")

	performed := 0
	for i, cell := range cells {
		var text string
		switch {
		case cell.IsPadding():
			text = "    "
		case cell.Performed:
			performed++
			text = paint(color, styleDone, fmt.Sprintf("%3d*", cell.Day))
		default:
			text = fmt.Sprintf("%3d ", cell.Day)
		}
		b.WriteString(text)

		if (i+1)%domain.DaysPerWeek == 0 || i == len(cells)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString(paint(color, styleDim, fmt.Sprintf("%d workout days", performed)))
	b.WriteString("\n")
	return b.String()
}
