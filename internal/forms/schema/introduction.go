package schema

// Programme levels offered by the institute. Shared by both forms.
var ProgrammeLevels = []string{
	"Certificate",
	"Professional Certificate",
	"Diploma",
	"Professional Diploma",
	"Advanced Diploma",
}

var sessionOptions = []string{"Day", "Evening", "Weekend"}

var genderOptions = []string{"Male", "Female", "Other", "Prefer not to say"}

var heardAboutUsOptions = []string{
	"Social media",
	"Search engine",
	"Radio",
	"Friend or family",
	"Former student",
	"Other",
}

var introductionSchema = newSchema(FormTypeIntroduction, 1, []FieldRule{
	{Name: "firstName", Label: "First name", Kind: KindText, Required: true},
	{Name: "lastName", Label: "Last name", Kind: KindText, Required: true},
	{Name: "email", Label: "Email address", Kind: KindEmail, Required: true},
	{Name: "phone", Label: "Phone number", Kind: KindPhone, Required: true},
	{Name: "dateOfBirth", Label: "Date of birth", Kind: KindDate, Required: true},
	{Name: "gender", Label: "Gender", Kind: KindEnum, Required: true, Enum: genderOptions},
	{Name: "nationality", Label: "Nationality", Kind: KindText, Required: true},
	{Name: "city", Label: "City of residence", Kind: KindText, Required: true},
	{Name: "postalAddress", Label: "Postal address", Kind: KindText, Required: false},
	{Name: "programmeName", Label: "Programme of interest", Kind: KindText, Required: true},
	{Name: "programmeLevel", Label: "Programme level", Kind: KindEnum, Required: true, Enum: ProgrammeLevels},
	{Name: "preferredSession", Label: "Preferred session", Kind: KindEnum, Required: true, Enum: sessionOptions},
	{Name: "highestQualification", Label: "Highest qualification", Kind: KindText, Required: true},
	{Name: "institutionName", Label: "Institution attended", Kind: KindText, Required: false},
	{Name: "yearCompleted", Label: "Year completed", Kind: KindText, Required: false, Pattern: yearPattern},
	{Name: "employmentStatus", Label: "Employment status", Kind: KindEnum, Required: true, Enum: employmentStatusOptions},
	{Name: "employerName", Label: "Employer name", Kind: KindText, Required: false},
	{Name: "heardAboutUs", Label: "How did you hear about us", Kind: KindEnum, Required: true, Enum: heardAboutUsOptions},
	{Name: "isReturningStudent", Label: "Returning student", Kind: KindBoolean, Required: true},
	{Name: "comments", Label: "Comments", Kind: KindText, Required: false},
}, []sectionDef{
	{title: "Registration", fieldNames: []string{
		"firstName", "lastName", "email", "phone", "dateOfBirth", "gender",
		"nationality", "city", "postalAddress", "programmeName", "programmeLevel",
		"preferredSession", "highestQualification", "institutionName",
		"yearCompleted", "employmentStatus", "employerName", "heardAboutUs",
		"isReturningStudent", "comments",
	}},
})

// Introduction returns the flat, single-section registration schema.
func Introduction() *FormSchema {
	return introductionSchema
}
