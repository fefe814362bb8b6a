package schema

import "regexp"

var yearPattern = regexp.MustCompile(`^(19|20)\d{2}$`)

var employmentStatusOptions = []string{"Employed", "Self-employed", "Unemployed", "Student"}

var fundingSourceOptions = []string{"Self", "Employer", "Scholarship", "Family"}

var examRecordRow = &RowSchema{Fields: []FieldRule{
	{Name: "examName", Label: "Examination", Kind: KindText, Required: true},
	{Name: "year", Label: "Year", Kind: KindText, Required: true, Pattern: yearPattern},
	{Name: "indexNumber", Label: "Index number", Kind: KindText, Required: true},
	{Name: "grade", Label: "Grade or result", Kind: KindText, Required: true},
}}

var institutionRow = &RowSchema{Fields: []FieldRule{
	{Name: "institutionName", Label: "Institution", Kind: KindText, Required: true},
	{Name: "startYear", Label: "From", Kind: KindText, Required: true, Pattern: yearPattern},
	{Name: "endYear", Label: "To", Kind: KindText, Required: true, Pattern: yearPattern},
	{Name: "qualification", Label: "Qualification obtained", Kind: KindText, Required: true},
}}

var employmentRow = &RowSchema{Fields: []FieldRule{
	{Name: "employer", Label: "Employer", Kind: KindText, Required: true},
	{Name: "position", Label: "Position held", Kind: KindText, Required: true},
	{Name: "startYear", Label: "From", Kind: KindText, Required: true, Pattern: yearPattern},
	{Name: "endYear", Label: "To", Kind: KindText, Required: false, Pattern: yearPattern},
}}

var referenceRow = &RowSchema{Fields: []FieldRule{
	{Name: "fullName", Label: "Full name", Kind: KindText, Required: true},
	{Name: "relationship", Label: "Relationship", Kind: KindText, Required: true},
	{Name: "phone", Label: "Phone number", Kind: KindPhone, Required: true},
	{Name: "email", Label: "Email address", Kind: KindEmail, Required: true},
}}

var mainApplicationSchema = newSchema(FormTypeMain, 1, []FieldRule{
	// Programme Info
	{Name: "programmeName", Label: "Programme applied for", Kind: KindText, Required: true},
	{Name: "programmeLevel", Label: "Programme level", Kind: KindEnum, Required: true, Enum: ProgrammeLevels},
	{Name: "preferredSession", Label: "Preferred session", Kind: KindEnum, Required: true, Enum: sessionOptions},
	{Name: "intakePeriod", Label: "Intake period", Kind: KindEnum, Required: true, Enum: []string{"January", "May", "September"}},

	// Personal Info
	{Name: "firstName", Label: "First name", Kind: KindText, Required: true},
	{Name: "lastName", Label: "Last name", Kind: KindText, Required: true},
	{Name: "otherNames", Label: "Other names", Kind: KindText, Required: false},
	{Name: "dateOfBirth", Label: "Date of birth", Kind: KindDate, Required: true},
	{Name: "gender", Label: "Gender", Kind: KindEnum, Required: true, Enum: genderOptions},
	{Name: "nationality", Label: "Nationality", Kind: KindText, Required: true},
	{Name: "idNumber", Label: "National ID or passport number", Kind: KindText, Required: true},
	{Name: "email", Label: "Email address", Kind: KindEmail, Required: true},
	{Name: "phone", Label: "Phone number", Kind: KindPhone, Required: true},
	{Name: "altPhone", Label: "Alternative phone number", Kind: KindPhone, Required: false},
	{Name: "postalAddress", Label: "Postal address", Kind: KindText, Required: true},
	{Name: "city", Label: "City of residence", Kind: KindText, Required: true},
	{Name: "emergencyContactName", Label: "Emergency contact name", Kind: KindText, Required: true},
	{Name: "emergencyContactPhone", Label: "Emergency contact phone", Kind: KindPhone, Required: true},

	// Academic Records
	{Name: "highestQualification", Label: "Highest qualification", Kind: KindText, Required: true},
	{Name: "examRecords", Label: "Examination records", Kind: KindArray, Required: true, MaxRows: 6, Row: examRecordRow},
	{Name: "institutionsAttended", Label: "Institutions attended", Kind: KindArray, Required: true, MaxRows: 5, Row: institutionRow},

	// Employment
	{Name: "employmentStatus", Label: "Employment status", Kind: KindEnum, Required: true, Enum: employmentStatusOptions},
	{Name: "employmentHistory", Label: "Employment history", Kind: KindArray, Required: false, MaxRows: 6, Row: employmentRow},
	{Name: "currentEmployer", Label: "Current employer", Kind: KindText, Required: false},
	{Name: "workEmail", Label: "Work email address", Kind: KindEmail, Required: false},

	// References
	{Name: "references", Label: "References", Kind: KindArray, Required: true, MinRows: 2, MaxRows: 2, Row: referenceRow},

	// Financial Support
	{Name: "fundingSource", Label: "Source of funding", Kind: KindEnum, Required: true, Enum: fundingSourceOptions},
	{Name: "sponsorName", Label: "Sponsor name", Kind: KindText, Required: false},
	{Name: "sponsorPhone", Label: "Sponsor phone number", Kind: KindPhone, Required: false},
	{Name: "needsPaymentPlan", Label: "Payment plan required", Kind: KindBoolean, Required: true},

	// Declaration
	{Name: "declarationAccepted", Label: "Declaration", Kind: KindBoolean, Required: true, RequireTrue: true},
	{Name: "signatureName", Label: "Name as signature", Kind: KindText, Required: true},
	{Name: "declarationDate", Label: "Date", Kind: KindDate, Required: true},
}, []sectionDef{
	{title: "Programme Info", fieldNames: []string{
		"programmeName", "programmeLevel", "preferredSession", "intakePeriod",
	}},
	{title: "Personal Info", fieldNames: []string{
		"firstName", "lastName", "otherNames", "dateOfBirth", "gender",
		"nationality", "idNumber", "email", "phone", "altPhone",
		"postalAddress", "city", "emergencyContactName", "emergencyContactPhone",
	}},
	{title: "Academic Records", fieldNames: []string{
		"highestQualification", "examRecords", "institutionsAttended",
	}},
	{title: "Employment", fieldNames: []string{
		"employmentStatus", "employmentHistory", "currentEmployer", "workEmail",
	}},
	{title: "References", fieldNames: []string{"references"}},
	{title: "Financial Support", fieldNames: []string{
		"fundingSource", "sponsorName", "sponsorPhone", "needsPaymentPlan",
	}},
	{title: "Declaration", fieldNames: []string{
		"declarationAccepted", "signatureName", "declarationDate",
	}},
})

// MainApplication returns the seven-section application schema.
func MainApplication() *FormSchema {
	return mainApplicationSchema
}
