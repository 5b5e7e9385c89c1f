package resumes

import "time"

// Template selects the active layout variant.
type Template string

const (
	TemplateClassic  Template = "classic"
	TemplateModern   Template = "modern"
	TemplateMinimal  Template = "minimal"
	TemplateCreative Template = "creative"
)

// BorderStyle controls tag/badge and photo corner rounding.
type BorderStyle string

const (
	BorderSquare   BorderStyle = "square"
	BorderCircle   BorderStyle = "circle"
	BorderSquircle BorderStyle = "squircle"
)

// Document is the in-memory editable resume draft. Every scalar field is
// optional; a Document is valid at any completion state. Child collection
// order is display order and must round-trip through persistence.
type Document struct {
	ID string `json:"id,omitempty"`

	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	JobTitle  string `json:"jobTitle,omitempty"`
	City      string `json:"city,omitempty"`
	Country   string `json:"country,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`

	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	LeetCode  string `json:"leetcode,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`

	// Academic profile, surfaced only by the creative layout.
	RollNumber     string `json:"rollNumber,omitempty"`
	Degree         string `json:"degree,omitempty"`
	Branch         string `json:"branch,omitempty"`
	Institute      string `json:"institute,omitempty"`
	InstituteEmail string `json:"instituteEmail,omitempty"`

	Summary string `json:"summary,omitempty"`

	ColorHex    string      `json:"colorHex,omitempty"`
	BorderStyle BorderStyle `json:"borderStyle,omitempty"`
	Template    Template    `json:"template,omitempty"`

	Photo Photo `json:"photo,omitempty"`

	WorkExperiences []WorkExperience `json:"workExperiences,omitempty"`
	Educations      []Education      `json:"educations,omitempty"`
	Projects        []Project        `json:"projects,omitempty"`
	Skills          []SkillGroup     `json:"skills,omitempty"`
	Achievements    []Achievement    `json:"achievements,omitempty"`
	Certificates    []Certificate    `json:"certificates,omitempty"`
}

// WorkExperience is one entry in the work history. EndDate absent means the
// engagement is ongoing.
type WorkExperience struct {
	Company     string `json:"company,omitempty"`
	Position    string `json:"position,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
}

// Education is one entry in the education history.
type Education struct {
	School    string `json:"school,omitempty"`
	Degree    string `json:"degree,omitempty"`
	CGPA      string `json:"cgpa,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

// Project is one portfolio project.
type Project struct {
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	URL         string   `json:"url,omitempty"`
	GitHub      string   `json:"github,omitempty"`
	Stack       []string `json:"stack,omitempty"`
	StartDate   string   `json:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty"`
}

// SkillGroup is a named group of skill tags.
type SkillGroup struct {
	Category string   `json:"category,omitempty"`
	Values   []string `json:"values,omitempty"`
}

// Achievement is one award or recognition.
type Achievement struct {
	Title     string `json:"title,omitempty"`
	Issuer    string `json:"issuer,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

// Certificate is one earned certification.
type Certificate struct {
	Name   string `json:"name,omitempty"`
	Issuer string `json:"issuer,omitempty"`
	URL    string `json:"url,omitempty"`
	Date   string `json:"date,omitempty"`
}

// Resume is the durable counterpart of a Document, owned by a user.
// PhotoURL empty means no stored photo.
type Resume struct {
	ID     string
	UserID string

	Title       string
	Description string

	FirstName string
	LastName  string
	JobTitle  string
	City      string
	Country   string
	Phone     string
	Email     string

	LinkedIn  string
	GitHub    string
	LeetCode  string
	Portfolio string

	RollNumber     string
	Degree         string
	Branch         string
	Institute      string
	InstituteEmail string

	Summary string

	ColorHex    string
	BorderStyle BorderStyle
	Template    Template

	PhotoURL string

	WorkExperiences []WorkExperience
	Educations      []Education
	Projects        []Project
	Skills          []SkillGroup
	Achievements    []Achievement
	Certificates    []Certificate

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsEmpty reports whether every field of the entry is unset.
func (w WorkExperience) IsEmpty() bool {
	return w.Company == "" && w.Position == "" && w.StartDate == "" && w.EndDate == "" && w.Description == ""
}

// IsEmpty reports whether every field of the entry is unset.
func (e Education) IsEmpty() bool {
	return e.School == "" && e.Degree == "" && e.CGPA == "" && e.StartDate == "" && e.EndDate == ""
}

// IsEmpty reports whether every field of the entry is unset.
func (p Project) IsEmpty() bool {
	return p.Name == "" && p.Description == "" && p.URL == "" && p.GitHub == "" &&
		len(p.Stack) == 0 && p.StartDate == "" && p.EndDate == ""
}

// IsEmpty reports whether the group has neither a category nor tags.
func (s SkillGroup) IsEmpty() bool {
	if s.Category != "" {
		return false
	}
	for _, v := range s.Values {
		if v != "" {
			return false
		}
	}
	return true
}

// IsEmpty reports whether every field of the entry is unset.
func (a Achievement) IsEmpty() bool {
	return a.Title == "" && a.Issuer == "" && a.StartDate == "" && a.EndDate == ""
}

// IsEmpty reports whether every field of the entry is unset.
func (c Certificate) IsEmpty() bool {
	return c.Name == "" && c.Issuer == "" && c.URL == "" && c.Date == ""
}
