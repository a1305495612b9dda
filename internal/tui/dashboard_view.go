package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/findash/internal/dashboard"
	"github.com/rshade/findash/internal/marketdata"
)

// columnGap separates table columns.
const columnGap = "  "

// View implements tea.Model.
func (m DashboardModel) View() string {
	if m.quitting {
		return ""
	}

	button := ButtonStyle.Render("Fetch Data")
	if m.focus == focusButton {
		button = FocusedButtonStyle.Render("Fetch Data")
	}
	controls := lipgloss.JoinHorizontal(lipgloss.Center,
		LabelStyle.Render("Symbol: "),
		m.input.View(),
		"  ",
		button,
	)

	view := lipgloss.JoinVertical(lipgloss.Left,
		HeaderStyle.Render("Financial Dashboard"),
		"",
		controls,
		"",
		RenderTable(m.state.Rows()),
		"",
		m.help.View(m.keys),
	)
	return lipgloss.NewStyle().MaxWidth(m.width).Render(view)
}

// RenderTable renders rows as a styled table with the fixed header. An
// empty RowSet renders a single row spanning every column.
func RenderTable(rows []marketdata.Row) string {
	body := dashboard.Body(rows)
	widths := columnWidths(body)

	var b strings.Builder
	b.WriteString(renderCells(dashboard.Headers, widths, TableHeaderStyle))
	for _, row := range body {
		b.WriteString("\n")
		if row.IsPlaceholder() {
			b.WriteString(SubtleStyle.Width(spanWidth(widths)).Render(row.Cells[0]))
			continue
		}
		b.WriteString(renderCells(row.Cells, widths, TableCellStyle))
	}
	return b.String()
}

func renderCells(cells []string, widths []int, style lipgloss.Style) string {
	rendered := make([]string, len(cells))
	for i, cell := range cells {
		rendered[i] = style.Width(widths[i]).Render(cell)
	}
	return strings.Join(rendered, columnGap)
}

// columnWidths sizes each column to its widest header or data cell.
func columnWidths(body []dashboard.BodyRow) []int {
	widths := make([]int, len(dashboard.Headers))
	for i, h := range dashboard.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range body {
		if row.IsPlaceholder() {
			continue
		}
		for i, cell := range row.Cells {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// spanWidth is the width of all columns plus the gaps between them.
func spanWidth(widths []int) int {
	total := lipgloss.Width(columnGap) * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}
	return total
}
