package listeditor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admissions-forms/internal/forms/schema"
)

func fieldRule(t *testing.T, name string) schema.FieldRule {
	rule, ok := schema.MainApplication().Rule(name)
	require.True(t, ok)
	return rule
}

func TestNew_RejectsNonArrayField(t *testing.T) {
	_, err := New(fieldRule(t, "firstName"), nil)
	assert.Error(t, err)
}

func TestNew_TopsUpToMinRows(t *testing.T) {
	list, err := New(fieldRule(t, "references"), nil)
	require.NoError(t, err)

	assert.Equal(t, 2, list.Len())
	for _, row := range list.Rows() {
		assert.Equal(t, "", row["fullName"])
		assert.Equal(t, "", row["email"])
	}
}

func TestNew_KeepsExistingRows(t *testing.T) {
	existing := []map[string]any{
		{"examName": "KCSE", "year": "2016", "indexNumber": "1", "grade": "B+"},
	}
	list, err := New(fieldRule(t, "examRecords"), existing)
	require.NoError(t, err)

	require.Equal(t, 1, list.Len())
	assert.Equal(t, "KCSE", list.Rows()[0]["examName"])

	// The editor works on its own copy.
	require.NoError(t, list.SetCell(0, "grade", "A"))
	assert.Equal(t, "B+", existing[0]["grade"])
}

func TestAddRow_StopsAtMaxRows(t *testing.T) {
	list, err := New(fieldRule(t, "references"), nil)
	require.NoError(t, err)
	require.Equal(t, 2, list.Len())

	assert.False(t, list.AddRow())
	assert.Equal(t, 2, list.Len())
}

func TestRemoveRow_Reindexes(t *testing.T) {
	list, err := New(fieldRule(t, "examRecords"), []map[string]any{
		{"examName": "KCPE", "year": "2012", "indexNumber": "1", "grade": "A"},
		{"examName": "KCSE", "year": "2016", "indexNumber": "2", "grade": "B+"},
		{"examName": "Diploma", "year": "2019", "indexNumber": "3", "grade": "Credit"},
	})
	require.NoError(t, err)

	require.True(t, list.RemoveRow(1))

	rows := list.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "KCPE", rows[0]["examName"])
	assert.Equal(t, "Diploma", rows[1]["examName"])

	assert.False(t, list.RemoveRow(5))
	assert.False(t, list.RemoveRow(-1))
}

func TestRemoveRow_StopsAtMinRows(t *testing.T) {
	list, err := New(fieldRule(t, "references"), nil)
	require.NoError(t, err)
	require.Equal(t, 2, list.Len())

	assert.False(t, list.RemoveRow(0))
	assert.Equal(t, 2, list.Len())
}

func TestSetCell(t *testing.T) {
	list, err := New(fieldRule(t, "references"), nil)
	require.NoError(t, err)

	require.NoError(t, list.SetCell(0, "fullName", "John Mwangi"))
	assert.Equal(t, "John Mwangi", list.Rows()[0]["fullName"])

	assert.Error(t, list.SetCell(0, "salary", "100"))
	assert.Error(t, list.SetCell(7, "fullName", "John"))
	assert.Error(t, list.SetCell(0, "fullName", 42))
}

func TestValidate_ErrorsKeyedByRowAndColumn(t *testing.T) {
	list, err := New(fieldRule(t, "references"), []map[string]any{
		{"fullName": "John Mwangi", "relationship": "Teacher", "phone": "+254 733 555666", "email": "j.mwangi@example.com"},
		{"fullName": "", "relationship": "Employer", "phone": "+254 744 777888", "email": "broken"},
	})
	require.NoError(t, err)

	errs := list.Validate()

	require.Len(t, errs, 1)
	assert.NotContains(t, errs, 0)
	assert.Contains(t, errs[1], "fullName")
	assert.Contains(t, errs[1], "email")
}

func TestValidate_FixingOneRowLeavesOthersAlone(t *testing.T) {
	list, err := New(fieldRule(t, "references"), nil)
	require.NoError(t, err)

	// Both empty rows fail; filling only the first clears only the first.
	errs := list.Validate()
	require.Contains(t, errs, 0)
	require.Contains(t, errs, 1)

	require.NoError(t, list.SetCell(0, "fullName", "John Mwangi"))
	require.NoError(t, list.SetCell(0, "relationship", "Teacher"))
	require.NoError(t, list.SetCell(0, "phone", "+254 733 555666"))
	require.NoError(t, list.SetCell(0, "email", "j.mwangi@example.com"))

	errs = list.Validate()
	assert.NotContains(t, errs, 0)
	assert.Contains(t, errs, 1)
}
