package table

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
)

// DefaultPrecision is the number of decimals shown when Format leaves it unset.
const DefaultPrecision = 4

// Missing is how nil cells are shown.
const Missing = "n/a"

// Format controls human-readable rendering. It is passed per call.
type Format struct {
	Precision int // decimals for floats; <= 0 means DefaultPrecision
	MaxRows   int // 0 shows every row
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// FormatValue renders one cell as text.
func FormatValue(v any, precision int) string {
	if precision <= 0 {
		precision = DefaultPrecision
	}
	switch x := v.(type) {
	case nil:
		return Missing
	case float64:
		return strconv.FormatFloat(x, 'f', precision, 64)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// Render draws the table with lipgloss. Rows beyond MaxRows are summarised
// in a trailing line.
func (t *Table) Render(f Format) string {
	rows := t.Rows
	hidden := 0
	if f.MaxRows > 0 && len(rows) > f.MaxRows {
		hidden = len(rows) - f.MaxRows
		rows = rows[:f.MaxRows]
	}

	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = make([]string, len(row))
		for j, v := range row {
			cells[i][j] = FormatValue(v, f.Precision)
		}
	}

	lt := lgtable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(t.Columns...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return headerStyle
			}
			if row >= 0 && row < len(rows) && col < len(rows[row]) {
				if _, ok := toFloat(rows[row][col]); ok {
					return numberStyle
				}
			}
			return cellStyle
		})

	out := lt.String()
	if hidden > 0 {
		out += fmt.Sprintf("\n... %d more rows", hidden)
	}
	return out
}
