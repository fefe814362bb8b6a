package schema

import (
	"fmt"
	"regexp"
	"strings"
)

// RawData is applicant input before coercion: strings and bools straight off
// the wire, array fields as slices of raw rows. Kept distinct from FormData
// so the transform between the two stays explicit.
type RawData map[string]any

// FormData is validated, coerced form data: booleans are native bools and
// array fields are slices of coerced rows. Only schema field names appear
// as keys.
type FormData map[string]any

// FieldErrors maps a field path to a human-readable message. Array rows are
// addressed as name[index].column, e.g. references[1].email.
type FieldErrors map[string]string

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[\d\s\-()]{7,20}$`)
	dateRegex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Validate checks raw against the full schema. It returns the coerced data
// and an error map; the map is empty exactly when the input is valid. The
// input is never mutated, so validating the same data twice yields identical
// results.
func Validate(s *FormSchema, raw RawData) (FormData, FieldErrors) {
	data, errs := ValidateFields(s.Fields, raw)
	for key := range raw {
		if _, ok := s.rules[key]; !ok {
			errs[key] = "Field is not part of the form"
		}
	}
	return data, errs
}

// ValidateFields checks only the given field subset, ignoring any other keys
// present in raw. This is what makes step-local validation possible: the
// accumulated form data may already hold values for later steps.
func ValidateFields(fields []FieldRule, raw RawData) (FormData, FieldErrors) {
	data := make(FormData)
	errs := make(FieldErrors)
	for _, rule := range fields {
		value, present := raw[rule.Name]
		if !present {
			if rule.Required {
				errs[rule.Name] = fmt.Sprintf("%s is required", rule.Label)
			}
			continue
		}
		coerced, fieldErrs := validateField(rule, value)
		if len(fieldErrs) > 0 {
			for path, msg := range fieldErrs {
				errs[path] = msg
			}
			continue
		}
		if coerced != nil {
			data[rule.Name] = coerced
		}
	}
	return data, errs
}

// validateField validates a single field value. A nil coerced result with no
// errors means "optional and not provided".
func validateField(rule FieldRule, value any) (any, FieldErrors) {
	errs := make(FieldErrors)

	switch rule.Kind {
	case KindBoolean:
		b, ok := CoerceBool(value)
		if !ok {
			errs[rule.Name] = fmt.Sprintf("%s must be true or false", rule.Label)
			return nil, errs
		}
		if rule.RequireTrue && !b {
			errs[rule.Name] = fmt.Sprintf("%s must be accepted", rule.Label)
			return nil, errs
		}
		return b, errs

	case KindArray:
		return validateArray(rule, value)

	default:
		str, ok := value.(string)
		if !ok {
			errs[rule.Name] = fmt.Sprintf("%s must be text", rule.Label)
			return nil, errs
		}
		str = strings.TrimSpace(str)
		if str == "" {
			if rule.Required {
				errs[rule.Name] = fmt.Sprintf("%s is required", rule.Label)
			}
			// optional empty string means "not provided", which is valid
			return nil, errs
		}
		if msg := checkString(rule, str); msg != "" {
			errs[rule.Name] = msg
			return nil, errs
		}
		return str, errs
	}
}

func checkString(rule FieldRule, str string) string {
	switch rule.Kind {
	case KindEmail:
		if !emailRegex.MatchString(str) {
			return fmt.Sprintf("%s must be a valid email address", rule.Label)
		}
	case KindPhone:
		if !phoneRegex.MatchString(str) {
			return fmt.Sprintf("%s must be a valid phone number", rule.Label)
		}
	case KindDate:
		if !dateRegex.MatchString(str) {
			return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", rule.Label)
		}
	case KindEnum:
		for _, allowed := range rule.Enum {
			if str == allowed {
				return ""
			}
		}
		return fmt.Sprintf("%s must be one of: %s", rule.Label, strings.Join(rule.Enum, ", "))
	case KindText:
		if rule.Pattern != nil && !rule.Pattern.MatchString(str) {
			return fmt.Sprintf("%s has an invalid format", rule.Label)
		}
	}
	return ""
}

// validateArray validates each row independently; a failing row never
// invalidates its siblings, but any row error makes the field invalid.
func validateArray(rule FieldRule, value any) (any, FieldErrors) {
	errs := make(FieldErrors)

	rows, ok := toRows(value)
	if !ok {
		errs[rule.Name] = fmt.Sprintf("%s must be a list of entries", rule.Label)
		return nil, errs
	}
	if len(rows) == 0 {
		if rule.Required {
			errs[rule.Name] = fmt.Sprintf("%s is required", rule.Label)
		}
		return nil, errs
	}
	if rule.MinRows > 0 && len(rows) < rule.MinRows {
		errs[rule.Name] = fmt.Sprintf("%s requires at least %d entries", rule.Label, rule.MinRows)
	}
	if rule.MaxRows > 0 && len(rows) > rule.MaxRows {
		errs[rule.Name] = fmt.Sprintf("%s allows at most %d entries", rule.Label, rule.MaxRows)
	}

	coerced := make([]map[string]any, 0, len(rows))
	for i, row := range rows {
		rowData, rowErrs := ValidateFields(rule.Row.Fields, RawData(row))
		for key := range row {
			if _, ok := rule.Row.Field(key); !ok {
				rowErrs[key] = "Field is not part of the form"
			}
		}
		for path, msg := range rowErrs {
			errs[fmt.Sprintf("%s[%d].%s", rule.Name, i, path)] = msg
		}
		coerced = append(coerced, map[string]any(rowData))
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return coerced, errs
}

// toRows accepts both []map[string]any (native construction) and []any of
// objects (the shape encoding/json produces).
func toRows(value any) ([]map[string]any, bool) {
	switch v := value.(type) {
	case []map[string]any:
		return v, true
	case []any:
		rows := make([]map[string]any, 0, len(v))
		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, false
			}
			rows = append(rows, m)
		}
		return rows, true
	default:
		return nil, false
	}
}

// CoerceBool normalizes boolean input. DOM checkbox and radio values arrive
// as the literal strings "true"/"false", so both those and native bools are
// accepted.
func CoerceBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		switch strings.TrimSpace(v) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

// CoerceValue type-coerces a single field edit without running content
// validation: booleans are normalized, scalars must be strings and rows must
// be well-shaped objects with known columns. Content checks (email shape,
// enum membership) happen when the step is validated, not on every
// keystroke.
func CoerceValue(rule FieldRule, value any) (any, error) {
	switch rule.Kind {
	case KindBoolean:
		b, ok := CoerceBool(value)
		if !ok {
			return nil, fmt.Errorf("%s: expected a boolean, got %T", rule.Name, value)
		}
		return b, nil

	case KindArray:
		rows, ok := toRows(value)
		if !ok {
			return nil, fmt.Errorf("%s: expected a list of entries, got %T", rule.Name, value)
		}
		coerced := make([]map[string]any, 0, len(rows))
		for i, row := range rows {
			out := make(map[string]any, len(row))
			for key, cell := range row {
				colRule, ok := rule.Row.Field(key)
				if !ok {
					return nil, fmt.Errorf("%s[%d]: unknown column %s", rule.Name, i, key)
				}
				cellCoerced, err := CoerceValue(colRule, cell)
				if err != nil {
					return nil, err
				}
				out[key] = cellCoerced
			}
			coerced = append(coerced, out)
		}
		return coerced, nil

	default:
		str, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%s: expected text, got %T", rule.Name, value)
		}
		return str, nil
	}
}
