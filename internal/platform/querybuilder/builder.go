// Package querybuilder renders the small set of PostgreSQL statements the
// repositories issue, numbering placeholders as $1, $2, ...
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// sqlWriter accumulates statement text and its positional arguments.
type sqlWriter struct {
	buf  strings.Builder
	args []any
}

func (w *sqlWriter) raw(parts ...string) {
	for _, part := range parts {
		w.buf.WriteString(part)
	}
}

func (w *sqlWriter) bind(value any) {
	w.args = append(w.args, value)
	w.buf.WriteString("$")
	w.buf.WriteString(strconv.Itoa(len(w.args)))
}

func (w *sqlWriter) where(conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			w.raw(" WHERE ")
		} else {
			w.raw(" AND ")
		}
		c.writeTo(w)
	}
}

func (w *sqlWriter) result() (string, []any, error) {
	return w.buf.String(), w.args, nil
}

// Condition is one predicate of a WHERE clause. Predicates are joined with AND.
type Condition interface {
	writeTo(w *sqlWriter)
}

type eq struct {
	column string
	value  any
}

func Eq(column string, value any) Condition {
	return eq{column: column, value: value}
}

func (c eq) writeTo(w *sqlWriter) {
	w.raw(c.column, " = ")
	w.bind(c.value)
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(terms ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, terms...)
	return b
}

// Limit caps the row count; zero or less means no LIMIT clause.
func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var w sqlWriter
	w.raw("SELECT ", strings.Join(b.columns, ", "), " FROM ", b.table)
	w.where(b.where)
	if len(b.orderBy) > 0 {
		w.raw(" ORDER BY ", strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.raw(" LIMIT ", strconv.Itoa(b.limit))
	}
	return w.result()
}
