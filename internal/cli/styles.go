package cli

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
)

// UI styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Padding(0, 1).
			MarginBottom(1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(0, 2)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")).
			Width(16)

	profitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")).
			Italic(true)
)

// styles is the set used by one command run; all plain with --no-color.
type styles struct {
	title, panel, label, profit, loss, note lipgloss.Style
}

func newStyles(noColor bool) styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{
			title:  plain.MarginBottom(1),
			panel:  plain,
			label:  plain.Width(16),
			profit: plain,
			loss:   plain,
			note:   plain,
		}
	}
	return styles{
		title:  titleStyle,
		panel:  panelStyle,
		label:  labelStyle,
		profit: profitStyle,
		loss:   lossStyle,
		note:   noteStyle,
	}
}

func (s styles) signed(v float64, text string) string {
	if v < 0 {
		return s.loss.Render(text)
	}
	return s.profit.Render(text)
}

func (s styles) row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, s.label.Render(label), value)
}

func fmtRatio(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return "nan"
	}
	return fmt.Sprintf("%.4f", v)
}

func fmtOptRatio(p *float64) string {
	if p == nil {
		return "-"
	}
	return fmtRatio(*p)
}

func fmtPct(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}
