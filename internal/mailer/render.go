package mailer

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"admissions-forms/internal/forms/schema"
)

// sanitizer strips any markup from applicant-entered strings before they are
// embedded in the staff email.
var sanitizer = bluemonday.StrictPolicy()

// RenderSubmission builds the HTML body for the staff notification: one
// heading per schema section, a label/value table per section, and nested
// tables for array fields.
func RenderSubmission(s *schema.FormSchema, data schema.FormData) string {
	var b strings.Builder
	b.WriteString(`<html><body style="font-family: Arial, sans-serif; color: #222;">`)
	fmt.Fprintf(&b, "<h1>%s</h1>", escape(formTitle(s)))

	for _, sec := range schema.SectionsOf(s) {
		fmt.Fprintf(&b, "<h2>%s</h2>", escape(sec.Title))
		b.WriteString(`<table cellpadding="6" cellspacing="0" border="1" style="border-collapse: collapse;">`)
		for _, f := range sec.Fields {
			if f.Kind == schema.KindArray {
				continue
			}
			fmt.Fprintf(&b, "<tr><td><strong>%s</strong></td><td>%s</td></tr>",
				escape(f.Label), escape(renderValue(f, data[f.Name])))
		}
		b.WriteString("</table>")

		for _, f := range sec.Fields {
			if f.Kind != schema.KindArray {
				continue
			}
			renderTable(&b, f, data[f.Name])
		}
	}

	b.WriteString("</body></html>")
	return b.String()
}

// Subject builds the notification subject line from the applicant's name.
func Subject(s *schema.FormSchema, data schema.FormData) string {
	name := applicantName(data)
	switch s.Name {
	case schema.FormTypeIntroduction:
		return fmt.Sprintf("New Registration of Interest: %s", name)
	default:
		return fmt.Sprintf("New Admission Application: %s", name)
	}
}

// ApplicantEmail returns the applicant's address for the Reply-To header,
// empty when absent.
func ApplicantEmail(data schema.FormData) string {
	if v, ok := data["email"].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func applicantName(data schema.FormData) string {
	if v, ok := data["fullName"].(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	first, _ := data["firstName"].(string)
	last, _ := data["lastName"].(string)
	name := strings.TrimSpace(first + " " + last)
	if name == "" {
		return "Unknown Applicant"
	}
	return name
}

func formTitle(s *schema.FormSchema) string {
	switch s.Name {
	case schema.FormTypeIntroduction:
		return "Registration of Interest"
	default:
		return "Admission Application"
	}
}

func renderTable(b *strings.Builder, f schema.FieldRule, value any) {
	fmt.Fprintf(b, "<h3>%s</h3>", escape(f.Label))
	rows := asRows(value)
	if len(rows) == 0 {
		b.WriteString("<p>-</p>")
		return
	}

	b.WriteString(`<table cellpadding="6" cellspacing="0" border="1" style="border-collapse: collapse;"><tr>`)
	for _, col := range f.Row.Fields {
		fmt.Fprintf(b, "<th>%s</th>", escape(col.Label))
	}
	b.WriteString("</tr>")
	for _, row := range rows {
		b.WriteString("<tr>")
		for _, col := range f.Row.Fields {
			fmt.Fprintf(b, "<td>%s</td>", escape(renderValue(col, row[col.Name])))
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</table>")
}

func asRows(value any) []map[string]any {
	switch v := value.(type) {
	case []map[string]any:
		return v
	case []any:
		rows := make([]map[string]any, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				rows = append(rows, m)
			}
		}
		return rows
	default:
		return nil
	}
}

func renderValue(f schema.FieldRule, value any) string {
	if value == nil {
		return "-"
	}
	if f.Kind == schema.KindBoolean {
		if b, _ := value.(bool); b {
			return "Yes"
		}
		return "No"
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", value))
	if s == "" {
		return "-"
	}
	return s
}

func escape(s string) string {
	return sanitizer.Sanitize(s)
}
