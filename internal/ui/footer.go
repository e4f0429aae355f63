package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/skipper/internal/skips"
)

// footerHeight is the rendered height of the selection bar: a top border
// and one content line.
const footerHeight = 2

// selectionSummary describes a selected skip on one line.
func selectionSummary(s skips.Skip) string {
	return fmt.Sprintf("%s – £%s – %d day hire", s.Label(), s.FormatTotal(), s.HirePeriodDays)
}

// renderFooter renders the bar shown while a skip is selected.
func (m Model) renderFooter(s skips.Skip) string {
	styles := m.theme.Styles()

	actions := styles.KeyHint.Render("b") + styles.MutedText.Render(" Back  ") +
		styles.KeyHint.Render("c") + styles.AccentText.Bold(true).Render(" Continue")
	inner := maxInt(m.width-2, 1)
	summaryWidth := maxInt(inner-lipgloss.Width(actions)-2, 1)
	summary := styles.Text.Bold(true).Render(truncate(selectionSummary(s), summaryWidth))

	fill := maxInt(inner-lipgloss.Width(summary)-lipgloss.Width(actions), 1)
	line := summary + lipgloss.NewStyle().Width(fill).Render("") + actions
	return styles.Footer.Width(m.width).Render(line)
}
