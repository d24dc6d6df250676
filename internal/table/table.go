// Package table provides the ordered result tables returned by analysis
// operations.
//
// Cell values are string, float64, int, bool, or nil for "not computable".
package table

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Table is an ordered list of named columns and rows of cell values.
type Table struct {
	Columns []string
	Rows    [][]any
}

// New returns an empty table with the given columns.
func New(columns ...string) *Table {
	return &Table{Columns: columns}
}

// Append adds a row. It panics if the number of values does not match the
// number of columns.
func (t *Table) Append(values ...any) {
	if len(values) != len(t.Columns) {
		panic(fmt.Sprintf("table: row has %d values, table has %d columns", len(values), len(t.Columns)))
	}
	t.Rows = append(t.Rows, values)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Index returns the position of the named column, or -1.
func (t *Table) Index(column string) int {
	for i, c := range t.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// Column returns every value of the named column, or nil if there is no
// such column.
func (t *Table) Column(column string) []any {
	idx := t.Index(column)
	if idx < 0 {
		return nil
	}
	out := make([]any, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out
}

// Value returns the cell at row i of the named column.
func (t *Table) Value(i int, column string) any {
	idx := t.Index(column)
	if idx < 0 || i < 0 || i >= len(t.Rows) {
		return nil
	}
	return t.Rows[i][idx]
}

// Float returns the cell at row i of the named column as a float64.
// ok is false for missing, nil, or non-numeric cells.
func (t *Table) Float(i int, column string) (float64, bool) {
	return toFloat(t.Value(i, column))
}

// Head returns a copy holding at most the first n rows. n < 0 keeps all.
func (t *Table) Head(n int) *Table {
	if n < 0 || n > len(t.Rows) {
		n = len(t.Rows)
	}
	out := &Table{Columns: append([]string(nil), t.Columns...)}
	out.Rows = append(out.Rows, t.Rows[:n]...)
	return out
}

// SortDesc stably sorts rows by the given columns, largest first. Later
// columns break ties in earlier ones. Nil cells sort last.
func (t *Table) SortDesc(columns ...string) {
	t.sortBy(columns, true)
}

// SortAsc is SortDesc in ascending order. Nil cells still sort last.
func (t *Table) SortAsc(columns ...string) {
	t.sortBy(columns, false)
}

func (t *Table) sortBy(columns []string, desc bool) {
	idx := make([]int, 0, len(columns))
	for _, c := range columns {
		if i := t.Index(c); i >= 0 {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(t.Rows, func(a, b int) bool {
		for _, i := range idx {
			c := compare(t.Rows[a][i], t.Rows[b][i], desc)
			if c != 0 {
				return c < 0
			}
		}
		return false
	})
}

// compare orders x before y (negative) or after (positive) in the requested
// direction. Nil and NaN always go last.
func compare(x, y any, desc bool) int {
	xMissing, yMissing := isMissing(x), isMissing(y)
	switch {
	case xMissing && yMissing:
		return 0
	case xMissing:
		return 1
	case yMissing:
		return -1
	}

	c := 0
	if fx, ok := toFloat(x); ok {
		if fy, ok := toFloat(y); ok {
			switch {
			case fx < fy:
				c = -1
			case fx > fy:
				c = 1
			}
			if desc {
				c = -c
			}
			return c
		}
	}
	c = strings.Compare(fmt.Sprint(x), fmt.Sprint(y))
	if desc {
		c = -c
	}
	return c
}

func isMissing(v any) bool {
	if v == nil {
		return true
	}
	if f, ok := v.(float64); ok && math.IsNaN(f) {
		return true
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, !math.IsNaN(x)
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}

// MarshalJSON encodes the table as an array of objects, one per row, with
// keys in column order. Non-finite floats become null.
func (t *Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for r, row := range t.Rows {
		if r > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for i, col := range t.Columns {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(col)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')

			val, err := json.Marshal(jsonValue(row[i]))
			if err != nil {
				return nil, fmt.Errorf("encoding column %q: %w", col, err)
			}
			buf.Write(val)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func jsonValue(v any) any {
	if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return nil
	}
	return v
}
