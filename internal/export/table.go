// Package export holds the tabular result type and the sinks that persist
// finished extracts (local CSV or xlsx, optionally mirrored to object
// storage).
package export

import (
	"strconv"
	"time"
)

// Table is a named tabular result: an ordered column list and
// string-rendered rows. A missing value renders as the empty cell, never a
// default domain value.
type Table struct {
	Columns []string
	Rows    [][]string
}

func NewTable(columns ...string) *Table {
	return &Table{Columns: columns}
}

func (t *Table) Append(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Cell rendering helpers. Nil pointers render as the empty cell.

func String(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func Int(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}

func Float(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func FloatVal(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func Timestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

func Date(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
