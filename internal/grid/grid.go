package grid

import (
	"strconv"
	"strings"
	"time"
)

// Kind identifies the variant stored in a Cell.
type Kind int

const (
	KindAbsent Kind = iota
	KindText
	KindNumber
	KindBool
	KindDate
)

// Cell is a single loosely-typed spreadsheet value. Absent cells and
// empty-text cells are equivalent: both mean "no value".
type Cell struct {
	kind    Kind
	text    string
	number  float64
	boolean bool
	date    time.Time
}

// Absent returns a cell with no value.
func Absent() Cell {
	return Cell{kind: KindAbsent}
}

// Text returns a text cell.
func Text(s string) Cell {
	return Cell{kind: KindText, text: s}
}

// Number returns a numeric cell.
func Number(f float64) Cell {
	return Cell{kind: KindNumber, number: f}
}

// Bool returns a boolean cell.
func Bool(b bool) Cell {
	return Cell{kind: KindBool, boolean: b}
}

// Date returns a date cell.
func Date(t time.Time) Cell {
	return Cell{kind: KindDate, date: t}
}

// Kind reports the variant stored in the cell.
func (c Cell) Kind() Kind {
	return c.kind
}

// IsEmpty reports whether the cell carries no value. Text cells that are
// blank after trimming count as empty.
func (c Cell) IsEmpty() bool {
	switch c.kind {
	case KindAbsent:
		return true
	case KindText:
		return strings.TrimSpace(c.text) == ""
	default:
		return false
	}
}

// String renders the cell as text. Numbers use the shortest representation
// that round-trips, dates use ISO format.
func (c Cell) String() string {
	switch c.kind {
	case KindText:
		return c.text
	case KindNumber:
		return strconv.FormatFloat(c.number, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(c.boolean)
	case KindDate:
		return c.date.Format("2006-01-02")
	default:
		return ""
	}
}

// Number reports the numeric value of a number cell.
func (c Cell) Number() (float64, bool) {
	if c.kind != KindNumber {
		return 0, false
	}
	return c.number, true
}

// Value returns the cell content as a dynamically typed value for export.
// Absent cells map to nil.
func (c Cell) Value() interface{} {
	switch c.kind {
	case KindText:
		return c.text
	case KindNumber:
		return c.number
	case KindBool:
		return c.boolean
	case KindDate:
		return c.date
	default:
		return nil
	}
}

// Row is an ordered sequence of cells. Rows within one grid may have
// different lengths; missing trailing cells are implicitly absent.
type Row []Cell

// At returns the cell at index i, or an absent cell when i is out of range.
func (r Row) At(i int) Cell {
	if i < 0 || i >= len(r) {
		return Absent()
	}
	return r[i]
}

// PopulatedCount reports how many cells in the row carry a value.
func (r Row) PopulatedCount() int {
	n := 0
	for _, c := range r {
		if !c.IsEmpty() {
			n++
		}
	}
	return n
}

// TextRow builds a row of text cells. Convenience for tests and header rows.
func TextRow(values ...string) Row {
	row := make(Row, len(values))
	for i, v := range values {
		row[i] = Text(v)
	}
	return row
}

// Grid is an ordered sequence of rows. After header location, row 0 is the
// header row.
type Grid []Row

// ColumnCount reports the widest row length in the grid.
func (g Grid) ColumnCount() int {
	max := 0
	for _, row := range g {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

// IsEmpty reports whether the grid has no populated cell at all.
func (g Grid) IsEmpty() bool {
	for _, row := range g {
		if row.PopulatedCount() > 0 {
			return false
		}
	}
	return true
}
