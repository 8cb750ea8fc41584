package core

import "strconv"

// Row is one record of a collection. All durable values are strings; typed
// domain models decode them at the record-operations boundary.
type Row map[string]string

func (r Row) Clone() Row {
	c := make(Row, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// ID returns the row's surrogate id, or 0 if absent/unparsable.
func (r Row) ID() int {
	id, _ := strconv.Atoi(r["id"])
	return id
}

// Table is the full in-memory contents of a collection. Columns carry the
// durable column order; Rows are ordered as persisted.
type Table struct {
	Columns []string
	Rows    []Row
}

func NewTable(columns []string) Table {
	return Table{Columns: columns}
}

func (t Table) IsEmpty() bool { return len(t.Rows) == 0 }

func (t Table) Len() int { return len(t.Rows) }

func (t *Table) Append(rows ...Row) {
	t.Rows = append(t.Rows, rows...)
}

// Filter returns a new table holding the rows for which keep returns true.
func (t Table) Filter(keep func(Row) bool) Table {
	res := Table{Columns: t.Columns}
	for _, row := range t.Rows {
		if keep(row) {
			res.Rows = append(res.Rows, row)
		}
	}
	return res
}

func (t Table) Clone() Table {
	c := Table{Columns: append([]string(nil), t.Columns...)}
	c.Rows = make([]Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		c.Rows = append(c.Rows, row.Clone())
	}
	return c
}
