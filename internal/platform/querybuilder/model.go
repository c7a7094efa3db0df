package querybuilder

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// modelColumn is one exported struct field carrying a db tag.
type modelColumn struct {
	name  string
	index int
}

// columnCache maps a struct type to its []modelColumn.
var columnCache sync.Map

// InsertModel builds a single-row insert from the db tags of model.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	return InsertModels(table, []any{model}, suffix)
}

// InsertModels builds one multi-row insert. All models must share one
// struct type so the column lists line up.
func InsertModels(table string, models []any, suffix string) (string, []any, error) {
	if len(models) == 0 {
		return "", nil, errors.New("insert: no models")
	}

	var (
		builder *InsertBuilder
		want    reflect.Type
		columns []modelColumn
	)
	for i, model := range models {
		value, err := structValue(model)
		if err != nil {
			return "", nil, fmt.Errorf("insert: model %d: %w", i, err)
		}
		if builder == nil {
			want = value.Type()
			if columns, err = columnsOf(want); err != nil {
				return "", nil, fmt.Errorf("insert: %w", err)
			}
			names := make([]string, len(columns))
			for j, c := range columns {
				names[j] = c.name
			}
			builder = InsertInto(table).Columns(names...)
		} else if value.Type() != want {
			return "", nil, fmt.Errorf("insert: model %d is %s, want %s", i, value.Type(), want)
		}

		row := make([]any, len(columns))
		for j, c := range columns {
			row[j] = value.Field(c.index).Interface()
		}
		builder.Values(row...)
	}

	return builder.Suffix(suffix).ToSQL()
}

// OnConflictDoUpdate renders an upsert suffix that overwrites updateCols
// with the incoming row when conflictCols collide. With no updateCols the
// conflicting row is left alone.
func OnConflictDoUpdate(conflictCols []string, updateCols ...string) string {
	target := "ON CONFLICT (" + strings.Join(conflictCols, ", ") + ")"
	if len(updateCols) == 0 {
		return target + " DO NOTHING"
	}

	sets := make([]string, len(updateCols))
	for i, col := range updateCols {
		sets[i] = col + " = EXCLUDED." + col
	}
	return target + " DO UPDATE SET " + strings.Join(sets, ", ")
}

func structValue(model any) (reflect.Value, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return reflect.Value{}, errors.New("nil model")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%s is not a struct", value.Kind())
	}
	return value, nil
}

func columnsOf(typ reflect.Type) ([]modelColumn, error) {
	if cached, ok := columnCache.Load(typ); ok {
		return cached.([]modelColumn), nil
	}

	columns := make([]modelColumn, 0, typ.NumField())
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		name = strings.TrimSpace(name)
		if name == "" || name == "-" {
			continue
		}
		columns = append(columns, modelColumn{name: name, index: i})
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%s has no db columns", typ)
	}

	columnCache.Store(typ, columns)
	return columns, nil
}
