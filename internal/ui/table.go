package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table renders aligned columns for list output (alarms, networks, phonebook).
type Table struct {
	Headers []string
	Rows    [][]string

	// RowStyle picks the style of a data row. Nil uses TableCellStyle.
	RowStyle func(row int) lipgloss.Style
}

// NewTable creates a table with the given column titles.
func NewTable(headers ...string) *Table {
	return &Table{Headers: headers}
}

// AddRow appends a row. Missing cells render empty; extra cells are dropped.
func (t *Table) AddRow(cells ...string) *Table {
	t.Rows = append(t.Rows, cells)
	return t
}

// Render returns the table as text, one line per row, indented two cells.
func (t *Table) Render() string {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < len(widths) && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(t.Rows)+2)
	lines = append(lines, TableHeaderStyle.Render(t.line(t.Headers, widths)))

	total := 0
	for _, w := range widths {
		total += w + 2
	}
	lines = append(lines, "  "+TableMutedStyle.Render(strings.Repeat("─", max(total-2, 1))))

	for i, row := range t.Rows {
		style := TableCellStyle
		if t.RowStyle != nil {
			style = t.RowStyle(i)
		}
		lines = append(lines, style.Render(t.line(row, widths)))
	}
	return strings.Join(lines, "\n")
}

func (t *Table) line(cells []string, widths []int) string {
	var b strings.Builder
	b.WriteString("  ")
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteString(cell)
		if i < len(widths)-1 {
			b.WriteString(strings.Repeat(" ", w-lipgloss.Width(cell)+2))
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// String implements fmt.Stringer
func (t *Table) String() string {
	return t.Render()
}
