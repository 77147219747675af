package domain

import "fmt"

// Table is the in-memory form of one worksheet: an ordered list of column
// names plus data rows. Every cell is the display text of the underlying
// cell, so formula cells carry their computed value and numbers carry
// their formatted text.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int { return len(t.Columns) }

// RowCount returns the number of data rows.
func (t *Table) RowCount() int { return len(t.Rows) }

// AppendRow adds one row built from values keyed by column name. Columns
// absent from values become empty cells; keys that match no column are
// ignored. Cell order follows t.Columns.
func (t *Table) AppendRow(values map[string]string) {
	row := make([]string, len(t.Columns))
	for i, name := range t.Columns {
		row[i] = values[name]
	}
	t.Rows = append(t.Rows, row)
}

// NormalizeHeaders turns a raw header row into pairwise-distinct, non-empty
// column names. An empty cell at position i (0-based) becomes "col_{i+1}".
// The first occurrence of a name keeps it as-is; the k-th repeat becomes
// "{name}_{k}". So ["Name", "", "Name"] yields ["Name", "col_2", "Name_1"].
func NormalizeHeaders(raw []string) []string {
	names := make([]string, 0, len(raw))
	seen := make(map[string]int, len(raw))
	for i, cell := range raw {
		base := cell
		if base == "" {
			base = fmt.Sprintf("col_%d", i+1)
		}
		k := seen[base]
		seen[base]++
		if k == 0 {
			names = append(names, base)
		} else {
			names = append(names, fmt.Sprintf("%s_%d", base, k))
		}
	}
	return names
}
