package dataset

import (
	"bufio"
	"database/sql"
	"io"
	"strings"
)

// Column describes one column of a Frame.
type Column struct {
	Name         string
	DatabaseType string //INT, VARCHAR, DECIMAL ...
	Nullable     bool
}

// Frame is the materialized result of one table query: named columns and
// rows of normalized values (int64, float64, string, bool, time.Time or nil).
type Frame struct {
	Table   string
	Sql     string
	Columns []Column
	Rows    [][]any
}

// Frames maps table names to their loaded frames.
type Frames map[string]*Frame

func (f *Frame) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Rows)
}

func (f *Frame) ColumnNames() []string {
	names := make([]string, len(f.Columns))
	for k, v := range f.Columns {
		names[k] = v.Name
	}
	return names
}

// ColumnIndex returns the position of the named column, or -1.
func (f *Frame) ColumnIndex(name string) int {
	return sliceContainIndex(f.ColumnNames(), name)
}

// Value returns the cell at row for the named column.
func (f *Frame) Value(row int, column string) (any, bool) {
	i := f.ColumnIndex(column)
	if i < 0 || row < 0 || row >= len(f.Rows) {
		return nil, false
	}
	return f.Rows[row][i], true
}

// Records returns the rows as column-keyed maps.
func (f *Frame) Records() []map[string]any {
	ret := make([]map[string]any, 0, len(f.Rows))
	for _, row := range f.Rows {
		rec := make(map[string]any, len(f.Columns))
		for k, c := range f.Columns {
			rec[c.Name] = row[k]
		}
		ret = append(ret, rec)
	}
	return ret
}

// Clone returns a deep copy of the frame's slices. Cell values are shared.
func (f *Frame) Clone() *Frame {
	if f == nil {
		return nil
	}
	c := &Frame{Table: f.Table, Sql: f.Sql}
	c.Columns = append([]Column(nil), f.Columns...)
	c.Rows = make([][]any, len(f.Rows))
	for k, row := range f.Rows {
		c.Rows[k] = append([]any(nil), row...)
	}
	return c
}

// WriteText writes a tab separated dump of the frame: a header line with
// the column names followed by one line per row.
func (f *Frame) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(f.ColumnNames(), "\t") + "\n"); err != nil {
		return err
	}
	cells := make([]string, len(f.Columns))
	for _, row := range f.Rows {
		for k, v := range row {
			cells[k] = formatCell(v)
		}
		if _, err := bw.WriteString(strings.Join(cells, "\t") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Clone deep copies every frame so stages can modify the result without
// touching frames held by the cache.
func (fs Frames) Clone() Frames {
	ret := make(Frames, len(fs))
	for k, v := range fs {
		ret[k] = v.Clone()
	}
	return ret
}

// scanFrame reads every row of rows into a Frame.
func scanFrame(rows *sql.Rows) (*Frame, error) {
	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	f := &Frame{Columns: make([]Column, len(columnTypes)), Rows: make([][]any, 0)}
	for k, v := range columnTypes {
		nullable, _ := v.Nullable()
		f.Columns[k] = Column{Name: v.Name(), DatabaseType: v.DatabaseTypeName(), Nullable: nullable}
	}

	var tempAddrs = make([]any, len(columnTypes))
	for k := range columnTypes {
		var temp any
		tempAddrs[k] = &temp
	}

	for rows.Next() {
		if err := rows.Scan(tempAddrs...); err != nil {
			return nil, err
		}
		row := make([]any, len(columnTypes))
		for k, v := range tempAddrs {
			row[k] = normalizeCell(*(v.(*any)), f.Columns[k].DatabaseType)
		}
		f.Rows = append(f.Rows, row)
	}
	return f, rows.Err()
}
