package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModel renders a single-row INSERT from the db-tagged exported fields
// of model. suffix is appended verbatim, typically an ON CONFLICT clause.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	if strings.TrimSpace(table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	columns, values, err := modelColumns(model)
	if err != nil {
		return "", nil, err
	}

	var w sqlWriter
	w.raw("INSERT INTO ", table, " (", strings.Join(columns, ", "), ") VALUES (")
	for i, value := range values {
		if i > 0 {
			w.raw(", ")
		}
		w.bind(value)
	}
	w.raw(")")
	if suffix = strings.TrimSpace(suffix); suffix != "" {
		w.raw(" ", suffix)
	}
	return w.result()
}

func modelColumns(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be a struct, got %s", value.Kind())
	}

	typ := value.Type()
	columns := make([]string, 0, typ.NumField())
	values := make([]any, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		column, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		column = strings.TrimSpace(column)
		if column == "" || column == "-" {
			continue
		}
		columns = append(columns, column)
		values = append(values, value.Field(i).Interface())
	}
	if len(columns) == 0 {
		return nil, nil, fmt.Errorf("model has no db columns")
	}
	return columns, values, nil
}

type assignment struct {
	column string
	value  any
	raw    string
}

type UpdateBuilder struct {
	table string
	sets  []assignment
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: value})
	return b
}

// SetRaw assigns an SQL expression such as NOW() without binding it.
func (b *UpdateBuilder) SetRaw(column, expr string) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, raw: expr})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update table is required")
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update sets are required")
	}
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("update of %s without a where clause", b.table)
	}

	var w sqlWriter
	w.raw("UPDATE ", b.table, " SET ")
	for i, set := range b.sets {
		if i > 0 {
			w.raw(", ")
		}
		w.raw(set.column, " = ")
		if set.raw != "" {
			w.raw(set.raw)
			continue
		}
		w.bind(set.value)
	}
	w.where(b.where)
	return w.result()
}
