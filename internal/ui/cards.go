package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/skipper/internal/skips"
)

const (
	cardHeight   = 7 // five content lines plus the border
	cardGap      = 1
	minCardWidth = 28
	maxColumns   = 3
)

// gridColumns returns how many cards fit side by side in width.
func gridColumns(width int) int {
	for cols := maxColumns; cols > 1; cols-- {
		if width >= cols*minCardWidth+(cols-1)*cardGap {
			return cols
		}
	}
	return 1
}

// cardWidth returns the outer width of one card in a grid of cols.
func cardWidth(width, cols int) int {
	if cols < 1 {
		cols = 1
	}
	return maxInt((width-(cols-1)*cardGap)/cols, 8)
}

// renderGrid lays the visible skips out in rows. The card at m.cursor is
// highlighted; selected is nil when nothing is selected.
func (m Model) renderGrid(visible []skips.Skip, selected *skips.Skip, width int) string {
	if len(visible) == 0 {
		return m.renderEmpty(width)
	}

	cols := gridColumns(width)
	w := cardWidth(width, cols)
	gap := strings.Repeat(" ", cardGap)

	var rows []string
	for start := 0; start < len(visible); start += cols {
		end := min(start+cols, len(visible))
		var row []string
		for i := start; i < end; i++ {
			if i > start {
				row = append(row, gap)
			}
			isSelected := selected != nil && selected.ID == visible[i].ID
			row = append(row, m.renderCard(visible[i], w, i == m.cursor, isSelected))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return strings.Join(rows, "\n")
}

// renderCard renders one skip as a bordered card of the given outer width.
func (m Model) renderCard(s skips.Skip, width int, focused, selected bool) string {
	styles := m.theme.Styles()

	style := styles.Card
	if selected {
		style = styles.CardSelected
	}
	if focused {
		style = style.BorderForeground(lipgloss.Color(m.theme.BorderFocus))
	}
	// Border takes one column each side, padding another.
	textWidth := maxInt(width-4, 1)

	button := styles.MutedText.Render(truncate("Select this skip →", textWidth))
	if selected {
		button = styles.SuccessText.Render(truncate("✓ Selected", textWidth))
	}

	lines := []string{
		styles.Badge.Render(truncate(fmt.Sprintf("%d Yards", s.Size), maxInt(textWidth-2, 1))),
		styles.Title.Render(truncate(s.Label(), textWidth)),
		styles.MutedText.Render(truncate(fmt.Sprintf("%d day hire", s.HirePeriodDays), textWidth)),
		styles.Price.Render(truncate("£"+s.FormatTotal(), textWidth)),
		button,
	}
	return style.Width(width - 2).Render(strings.Join(lines, "\n"))
}

// renderEmpty renders the placeholder shown when the query hides every
// record.
func (m Model) renderEmpty(width int) string {
	styles := m.theme.Styles()
	box := styles.Card.Render(lipgloss.JoinVertical(lipgloss.Center,
		styles.Text.Bold(true).Render("No skip options found"),
		styles.MutedText.Render("Try adjusting your search term"),
	))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}

// cursorRowBounds returns the first and last content line of the grid
// row holding the cursor.
func cursorRowBounds(cursor, cols int) (top, bottom int) {
	row := cursor / maxInt(cols, 1)
	top = row * cardHeight
	return top, top + cardHeight - 1
}
