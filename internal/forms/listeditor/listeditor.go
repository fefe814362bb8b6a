// Package listeditor manages the variable-length row sections of the main
// application form: examination records, institutions attended, employment
// history and references.
package listeditor

import (
	"fmt"

	"admissions-forms/internal/forms/schema"
)

// List edits the rows of one array field. Rows are kept dense: removing a
// row reindexes everything after it.
type List struct {
	rule schema.FieldRule
	rows []map[string]any
}

// New creates an editor over the given array field, seeded with any existing
// rows. When the rule configures MinRows, empty rows are added up to that
// minimum before the first interaction.
func New(rule schema.FieldRule, existing []map[string]any) (*List, error) {
	if rule.Kind != schema.KindArray {
		return nil, fmt.Errorf("field %s is not an array field", rule.Name)
	}
	rows := make([]map[string]any, 0, len(existing))
	for _, row := range existing {
		copied := make(map[string]any, len(row))
		for k, v := range row {
			copied[k] = v
		}
		rows = append(rows, copied)
	}
	for len(rows) < rule.MinRows {
		rows = append(rows, rule.Row.EmptyRow())
	}
	return &List{rule: rule, rows: rows}, nil
}

// Len returns the current row count.
func (l *List) Len() int {
	return len(l.rows)
}

// AddRow appends a schema-default empty row. It reports false once MaxRows
// is reached.
func (l *List) AddRow() bool {
	if l.rule.MaxRows > 0 && len(l.rows) >= l.rule.MaxRows {
		return false
	}
	l.rows = append(l.rows, l.rule.Row.EmptyRow())
	return true
}

// RemoveRow deletes the row at index and reindexes the rest. It reports
// false for out-of-range indexes and when the list is already at MinRows.
func (l *List) RemoveRow(index int) bool {
	if index < 0 || index >= len(l.rows) {
		return false
	}
	if l.rule.MinRows > 0 && len(l.rows) <= l.rule.MinRows {
		return false
	}
	l.rows = append(l.rows[:index], l.rows[index+1:]...)
	return true
}

// SetCell coerces and stores one cell value.
func (l *List) SetCell(index int, field string, value any) error {
	if index < 0 || index >= len(l.rows) {
		return fmt.Errorf("%s: row %d does not exist", l.rule.Name, index)
	}
	colRule, ok := l.rule.Row.Field(field)
	if !ok {
		return fmt.Errorf("%s: unknown column %s", l.rule.Name, field)
	}
	coerced, err := schema.CoerceValue(colRule, value)
	if err != nil {
		return err
	}
	l.rows[index][field] = coerced
	return nil
}

// Rows returns a copy of the current rows, suitable for merging into the
// wizard's form data through EditField.
func (l *List) Rows() []map[string]any {
	out := make([]map[string]any, 0, len(l.rows))
	for _, row := range l.rows {
		copied := make(map[string]any, len(row))
		for k, v := range row {
			copied[k] = v
		}
		out = append(out, copied)
	}
	return out
}

// Validate runs the row schema over every row independently and returns
// messages keyed by row index and column name. A failing row never blocks
// corrections to its siblings.
func (l *List) Validate() map[int]map[string]string {
	errs := make(map[int]map[string]string)
	for i, row := range l.rows {
		_, rowErrs := schema.ValidateFields(l.rule.Row.Fields, schema.RawData(row))
		for key := range row {
			if _, ok := l.rule.Row.Field(key); !ok {
				rowErrs[key] = "Field is not part of the form"
			}
		}
		if len(rowErrs) > 0 {
			errs[i] = map[string]string(rowErrs)
		}
	}
	return errs
}
