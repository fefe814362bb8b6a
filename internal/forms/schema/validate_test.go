package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func validIntroductionRaw() RawData {
	return RawData{
		"firstName":            "Amina",
		"lastName":             "Odhiambo",
		"email":                "amina.odhiambo@example.com",
		"phone":                "+254 700 111222",
		"dateOfBirth":          "1999-04-12",
		"gender":               "Female",
		"nationality":          "Kenyan",
		"city":                 "Nairobi",
		"programmeName":        "Diploma in Fiber Optics",
		"programmeLevel":       "Professional Diploma",
		"preferredSession":     "Evening",
		"highestQualification": "KCSE",
		"employmentStatus":     "Employed",
		"heardAboutUs":         "Radio",
		"isReturningStudent":   false,
	}
}

func validMainRaw() RawData {
	return RawData{
		"programmeName":         "Diploma in Fiber Optics",
		"programmeLevel":        "Professional Diploma",
		"preferredSession":      "Evening",
		"intakePeriod":          "September",
		"firstName":             "Amina",
		"lastName":              "Odhiambo",
		"dateOfBirth":           "1999-04-12",
		"gender":                "Female",
		"nationality":           "Kenyan",
		"idNumber":              "34218765",
		"email":                 "amina.odhiambo@example.com",
		"phone":                 "+254 700 111222",
		"postalAddress":         "P.O. Box 1234",
		"city":                  "Nairobi",
		"emergencyContactName":  "Grace Odhiambo",
		"emergencyContactPhone": "+254 722 333444",
		"highestQualification":  "KCSE",
		"examRecords": []map[string]any{
			{"examName": "KCSE", "year": "2016", "indexNumber": "12345678/001", "grade": "B+"},
		},
		"institutionsAttended": []map[string]any{
			{"institutionName": "Moi Girls High School", "startYear": "2013", "endYear": "2016", "qualification": "KCSE"},
		},
		"employmentStatus": "Employed",
		"references": []map[string]any{
			{"fullName": "John Mwangi", "relationship": "Former teacher", "phone": "+254 733 555666", "email": "j.mwangi@example.com"},
			{"fullName": "Mary Wanjiru", "relationship": "Employer", "phone": "+254 744 777888", "email": "m.wanjiru@example.com"},
		},
		"fundingSource":       "Self",
		"needsPaymentPlan":    false,
		"declarationAccepted": true,
		"signatureName":       "Amina Odhiambo",
		"declarationDate":     "2026-08-30",
	}
}

// ==========================
// Full-Form Validation Tests
// ==========================

func TestValidate_ValidSubmissions(t *testing.T) {
	tests := []struct {
		name   string
		schema *FormSchema
		raw    RawData
	}{
		{name: "introduction form with required fields only", schema: Introduction(), raw: validIntroductionRaw()},
		{name: "main application with all sections", schema: MainApplication(), raw: validMainRaw()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, errs := Validate(tt.schema, tt.raw)
			assert.Empty(t, errs)
			assert.NotEmpty(t, data)
		})
	}
}

func TestValidate_FieldFailures(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(raw RawData)
		wantPath string
		wantMsg  string
	}{
		{
			name:     "missing required field",
			mutate:   func(raw RawData) { delete(raw, "firstName") },
			wantPath: "firstName",
			wantMsg:  "First name is required",
		},
		{
			name:     "whitespace-only required field",
			mutate:   func(raw RawData) { raw["city"] = "   " },
			wantPath: "city",
			wantMsg:  "City of residence is required",
		},
		{
			name:     "malformed email",
			mutate:   func(raw RawData) { raw["email"] = "not-an-email" },
			wantPath: "email",
			wantMsg:  "Email address must be a valid email address",
		},
		{
			name:     "malformed phone",
			mutate:   func(raw RawData) { raw["phone"] = "abc" },
			wantPath: "phone",
			wantMsg:  "Phone number must be a valid phone number",
		},
		{
			name:     "malformed date",
			mutate:   func(raw RawData) { raw["dateOfBirth"] = "12/04/1999" },
			wantPath: "dateOfBirth",
			wantMsg:  "Date of birth must be a date in YYYY-MM-DD format",
		},
		{
			name:     "enum value outside allowed set",
			mutate:   func(raw RawData) { raw["intakePeriod"] = "March" },
			wantPath: "intakePeriod",
			wantMsg:  "Intake period must be one of: January, May, September",
		},
		{
			name:     "declaration not accepted",
			mutate:   func(raw RawData) { raw["declarationAccepted"] = false },
			wantPath: "declarationAccepted",
			wantMsg:  "Declaration must be accepted",
		},
		{
			name:     "unknown top-level field",
			mutate:   func(raw RawData) { raw["favouriteColour"] = "blue" },
			wantPath: "favouriteColour",
			wantMsg:  "Field is not part of the form",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validMainRaw()
			tt.mutate(raw)
			_, errs := Validate(MainApplication(), raw)
			require.Contains(t, errs, tt.wantPath)
			assert.Equal(t, tt.wantMsg, errs[tt.wantPath])
		})
	}
}

func TestValidate_OptionalEmptyFieldsAreValid(t *testing.T) {
	raw := validMainRaw()
	raw["otherNames"] = ""
	raw["altPhone"] = "  "

	data, errs := Validate(MainApplication(), raw)

	assert.Empty(t, errs)
	assert.NotContains(t, data, "otherNames")
	assert.NotContains(t, data, "altPhone")
}

func TestValidate_IsIdempotent(t *testing.T) {
	raw := validMainRaw()
	raw["email"] = "broken"

	_, first := Validate(MainApplication(), raw)
	_, second := Validate(MainApplication(), raw)

	assert.Equal(t, first, second)
}

// ==========================
// Array Field Tests
// ==========================

func TestValidate_ArrayRowErrors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(raw RawData)
		wantPaths []string
	}{
		{
			name: "bad email in second reference only",
			mutate: func(raw RawData) {
				rows := raw["references"].([]map[string]any)
				rows[1]["email"] = "nope"
			},
			wantPaths: []string{"references[1].email"},
		},
		{
			name: "missing columns reported per row",
			mutate: func(raw RawData) {
				rows := raw["references"].([]map[string]any)
				delete(rows[0], "phone")
				delete(rows[1], "fullName")
			},
			wantPaths: []string{"references[0].phone", "references[1].fullName"},
		},
		{
			name: "too few references",
			mutate: func(raw RawData) {
				rows := raw["references"].([]map[string]any)
				raw["references"] = rows[:1]
			},
			wantPaths: []string{"references"},
		},
		{
			name: "too many exam records",
			mutate: func(raw RawData) {
				row := map[string]any{"examName": "KCPE", "year": "2012", "indexNumber": "1", "grade": "A"}
				rows := make([]map[string]any, 0, 7)
				for i := 0; i < 7; i++ {
					rows = append(rows, row)
				}
				raw["examRecords"] = rows
			},
			wantPaths: []string{"examRecords"},
		},
		{
			name: "unknown row column",
			mutate: func(raw RawData) {
				rows := raw["examRecords"].([]map[string]any)
				rows[0]["score"] = "99"
			},
			wantPaths: []string{"examRecords[0].score"},
		},
		{
			name: "non-list value for array field",
			mutate: func(raw RawData) {
				raw["examRecords"] = "KCSE 2016"
			},
			wantPaths: []string{"examRecords"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validMainRaw()
			tt.mutate(raw)
			_, errs := Validate(MainApplication(), raw)
			for _, path := range tt.wantPaths {
				assert.Contains(t, errs, path)
			}
		})
	}
}

func TestValidate_ArrayAcceptsJSONShape(t *testing.T) {
	// encoding/json decodes arrays as []any of map[string]any.
	raw := validMainRaw()
	raw["references"] = []any{
		map[string]any{"fullName": "John Mwangi", "relationship": "Former teacher", "phone": "+254 733 555666", "email": "j.mwangi@example.com"},
		map[string]any{"fullName": "Mary Wanjiru", "relationship": "Employer", "phone": "+254 744 777888", "email": "m.wanjiru@example.com"},
	}

	_, errs := Validate(MainApplication(), raw)

	assert.Empty(t, errs)
}

// ==========================
// Step-Local Validation Tests
// ==========================

func TestValidateFields_IgnoresOtherSections(t *testing.T) {
	sections := SectionsOf(MainApplication())
	programmeInfo := sections[0]

	// Only first-section data is present; later required fields are absent.
	raw := RawData{
		"programmeName":    "Diploma in Fiber Optics",
		"programmeLevel":   "Professional Diploma",
		"preferredSession": "Day",
		"intakePeriod":     "January",
	}

	data, errs := ValidateFields(programmeInfo.Fields, raw)

	assert.Empty(t, errs)
	assert.Len(t, data, 4)
}

func TestValidateFields_ReportsOnlyOwnFields(t *testing.T) {
	sections := SectionsOf(MainApplication())
	programmeInfo := sections[0]

	// Data for a later section must not mask this section's failures.
	raw := RawData{
		"programmeLevel": "Doctorate",
		"firstName":      "Amina",
	}

	_, errs := ValidateFields(programmeInfo.Fields, raw)

	assert.Contains(t, errs, "programmeName")
	assert.Contains(t, errs, "programmeLevel")
	assert.NotContains(t, errs, "firstName")
}

// ==========================
// Coercion Tests
// ==========================

func TestCoerceBool(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		want   bool
		wantOK bool
	}{
		{name: "native true", input: true, want: true, wantOK: true},
		{name: "native false", input: false, want: false, wantOK: true},
		{name: "string true", input: "true", want: true, wantOK: true},
		{name: "string false", input: "false", want: false, wantOK: true},
		{name: "padded string", input: " true ", want: true, wantOK: true},
		{name: "arbitrary string", input: "yes", wantOK: false},
		{name: "number", input: 1, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CoerceBool(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCoerceValue_SkipsContentValidation(t *testing.T) {
	rule, ok := MainApplication().Rule("email")
	require.True(t, ok)

	// A half-typed address is storable; it only fails when the step advances.
	got, err := CoerceValue(rule, "amina@")
	require.NoError(t, err)
	assert.Equal(t, "amina@", got)

	_, err = CoerceValue(rule, 42)
	assert.Error(t, err)
}

func TestCoerceValue_ArrayRows(t *testing.T) {
	rule, ok := MainApplication().Rule("references")
	require.True(t, ok)

	got, err := CoerceValue(rule, []map[string]any{{"fullName": "John", "email": "partial"}})
	require.NoError(t, err)
	rows, ok := got.([]map[string]any)
	require.True(t, ok)
	require.Len(t, rows, 1)
	assert.Equal(t, "John", rows[0]["fullName"])

	_, err = CoerceValue(rule, []map[string]any{{"salary": "100"}})
	assert.Error(t, err)
}
