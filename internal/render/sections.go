package render

import (
	"strings"

	"smartcv-backend/internal/resumes"
)

// Shared section builders. Layouts differ in ordering, titles and which
// header parts they draw; the per-collection entry shapes are identical.

func headerFor(doc resumes.Document, withPhoto, withAcademic bool) Header {
	h := Header{
		Name:     strings.TrimSpace(doc.FirstName + " " + doc.LastName),
		JobTitle: doc.JobTitle,
		Location: location(doc),
		Phone:    doc.Phone,
		Email:    doc.Email,
		Links:    links(doc),
	}
	if withPhoto && doc.Photo.State == resumes.PhotoStored {
		h.PhotoURL = doc.Photo.URL
	}
	if withAcademic {
		h.Academic = academic(doc)
	}
	return h
}

func location(doc resumes.Document) string {
	switch {
	case doc.City != "" && doc.Country != "":
		return doc.City + ", " + doc.Country
	case doc.City != "":
		return doc.City
	default:
		return doc.Country
	}
}

func links(doc resumes.Document) []Link {
	var out []Link
	for _, l := range []Link{
		{Label: "LinkedIn", URL: doc.LinkedIn},
		{Label: "GitHub", URL: doc.GitHub},
		{Label: "LeetCode", URL: doc.LeetCode},
		{Label: "Portfolio", URL: doc.Portfolio},
	} {
		if l.URL != "" {
			out = append(out, l)
		}
	}
	return out
}

func academic(doc resumes.Document) *Academic {
	a := Academic{
		RollNumber:     doc.RollNumber,
		Degree:         doc.Degree,
		Branch:         doc.Branch,
		Institute:      doc.Institute,
		InstituteEmail: doc.InstituteEmail,
	}
	if a == (Academic{}) {
		return nil
	}
	return &a
}

// add appends a section only when it has renderable content.
func add(sections []Section, s Section) []Section {
	if s.Text == "" && len(s.Entries) == 0 {
		return sections
	}
	return append(sections, s)
}

func summarySection(doc resumes.Document, title string) Section {
	return Section{ID: "summary", Title: title, Text: doc.Summary}
}

func workSection(doc resumes.Document, title string) Section {
	s := Section{ID: "workExperiences", Title: title}
	for _, w := range doc.WorkExperiences {
		if w.IsEmpty() {
			continue
		}
		s.Entries = append(s.Entries, Entry{
			Title:       w.Position,
			Subtitle:    w.Company,
			DateRange:   DateRange(w.StartDate, w.EndDate),
			Description: w.Description,
		})
	}
	return s
}

func educationSection(doc resumes.Document, title string) Section {
	s := Section{ID: "educations", Title: title}
	for _, e := range doc.Educations {
		if e.IsEmpty() {
			continue
		}
		s.Entries = append(s.Entries, Entry{
			Title:     e.Degree,
			Subtitle:  e.School,
			Detail:    cgpaDetail(e.CGPA),
			DateRange: DateRange(e.StartDate, e.EndDate),
		})
	}
	return s
}

func cgpaDetail(cgpa string) string {
	if cgpa == "" {
		return ""
	}
	return "CGPA: " + cgpa
}

func projectsSection(doc resumes.Document, title string) Section {
	s := Section{ID: "projects", Title: title}
	for _, p := range doc.Projects {
		if p.IsEmpty() {
			continue
		}
		entry := Entry{
			Title:       p.Name,
			DateRange:   DateRange(p.StartDate, p.EndDate),
			Description: p.Description,
			Tags:        p.Stack,
		}
		if p.URL != "" {
			entry.Links = append(entry.Links, Link{Label: "Live", URL: p.URL})
		}
		if p.GitHub != "" {
			entry.Links = append(entry.Links, Link{Label: "GitHub", URL: p.GitHub})
		}
		s.Entries = append(s.Entries, entry)
	}
	return s
}

func skillsSection(doc resumes.Document, title string) Section {
	s := Section{ID: "skills", Title: title}
	for _, g := range doc.Skills {
		if g.IsEmpty() {
			continue
		}
		s.Entries = append(s.Entries, Entry{Title: g.Category, Tags: nonEmpty(g.Values)})
	}
	return s
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func achievementsSection(doc resumes.Document, title string) Section {
	s := Section{ID: "achievements", Title: title}
	for _, a := range doc.Achievements {
		if a.IsEmpty() {
			continue
		}
		s.Entries = append(s.Entries, Entry{
			Title:     a.Title,
			Subtitle:  a.Issuer,
			DateRange: DateRange(a.StartDate, a.EndDate),
		})
	}
	return s
}

func certificatesSection(doc resumes.Document, title string) Section {
	s := Section{ID: "certificates", Title: title}
	for _, c := range doc.Certificates {
		if c.IsEmpty() {
			continue
		}
		entry := Entry{
			Title:     c.Name,
			Subtitle:  c.Issuer,
			DateRange: FormatMonth(c.Date),
		}
		if c.URL != "" {
			entry.Links = append(entry.Links, Link{Label: "Credential", URL: c.URL})
		}
		s.Entries = append(s.Entries, entry)
	}
	return s
}
