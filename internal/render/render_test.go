package render

import (
	"strings"
	"testing"

	"smartcv-backend/internal/resumes"
)

func TestRenderOmitsEmptySections(t *testing.T) {
	doc := resumes.Document{
		FirstName: "Ada",
		Summary:   "Systems engineer.",
		WorkExperiences: []resumes.WorkExperience{
			{}, // fully empty entries never render
			{Company: "Acme", Position: "Engineer"},
		},
		Educations: []resumes.Education{{}},
	}
	tree := Render(doc)

	ids := make([]string, 0, len(tree.Sections))
	for _, s := range tree.Sections {
		ids = append(ids, s.ID)
	}
	if len(ids) != 2 || ids[0] != "summary" || ids[1] != "workExperiences" {
		t.Fatalf("sections = %v, want [summary workExperiences]", ids)
	}
	if len(tree.Sections[1].Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(tree.Sections[1].Entries))
	}
}

func TestRenderUnknownTemplateFallsBackToClassic(t *testing.T) {
	tree := Render(resumes.Document{Template: "polaroid"})
	if tree.Template != resumes.TemplateClassic {
		t.Fatalf("template = %q, want classic", tree.Template)
	}
}

func TestDateRange(t *testing.T) {
	tests := []struct {
		start, end, want string
	}{
		{"2020-01-15", "", "01/2020 – Present"},
		{"2020-01-15", "2023-06-01", "01/2020 – 06/2023"},
		{"", "2023-06-01", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		if got := DateRange(tt.start, tt.end); got != tt.want {
			t.Fatalf("DateRange(%q, %q) = %q, want %q", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestBorderRadius(t *testing.T) {
	tests := []struct {
		style resumes.BorderStyle
		want  string
	}{
		{resumes.BorderSquare, "0px"},
		{resumes.BorderCircle, "9999px"},
		{resumes.BorderSquircle, "10%"},
		{"", "10%"},
	}
	for _, tt := range tests {
		if got := BorderRadius(tt.style); got != tt.want {
			t.Fatalf("BorderRadius(%q) = %q, want %q", tt.style, got, tt.want)
		}
	}
}

func TestCreativeLayoutSurfacesAcademicBlock(t *testing.T) {
	doc := resumes.Document{
		Template:  resumes.TemplateCreative,
		Institute: "IIT Delhi",
		Degree:    "B.Tech",
	}
	tree := Render(doc)
	if tree.Header.Academic == nil || tree.Header.Academic.Institute != "IIT Delhi" {
		t.Fatalf("academic block = %+v, want institute", tree.Header.Academic)
	}

	doc.Template = resumes.TemplateClassic
	if got := Render(doc); got.Header.Academic != nil {
		t.Fatal("classic layout must not surface the academic block")
	}
}

func TestExportHTMLEscapesAndThemes(t *testing.T) {
	doc := resumes.Document{
		FirstName: "Ada",
		LastName:  "<script>",
		ColorHex:  "#336699",
		Summary:   "Builder of engines.",
	}
	html, err := ExportHTML(doc)
	if err != nil {
		t.Fatalf("ExportHTML: %v", err)
	}
	out := string(html)
	if strings.Contains(out, "<script>") {
		t.Fatal("user input must be escaped")
	}
	if !strings.Contains(out, "#336699") {
		t.Fatal("accent color missing from output")
	}
	if !strings.Contains(out, "Builder of engines.") {
		t.Fatal("summary missing from output")
	}
}
