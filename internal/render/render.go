// Package render turns a resume document into a layout tree: an ordered list
// of sections the export and preview surfaces can walk without knowing any
// template-specific rules. Sections with no renderable content are omitted
// entirely rather than emitted empty.
package render

import (
	"smartcv-backend/internal/resumes"
	"smartcv-backend/internal/shared/metrics"
)

// Tree is the fully resolved render model for one document under one layout.
type Tree struct {
	Template resumes.Template `json:"template"`
	Theme    Theme            `json:"theme"`
	Header   Header           `json:"header"`
	Sections []Section        `json:"sections"`
}

// Theme carries the visual knobs shared by every layout.
type Theme struct {
	Color        string `json:"color"`
	BorderRadius string `json:"borderRadius"`
}

// Header is the identity block at the top of every layout.
type Header struct {
	Name     string    `json:"name,omitempty"`
	JobTitle string    `json:"jobTitle,omitempty"`
	Location string    `json:"location,omitempty"`
	Phone    string    `json:"phone,omitempty"`
	Email    string    `json:"email,omitempty"`
	PhotoURL string    `json:"photoUrl,omitempty"`
	Links    []Link    `json:"links,omitempty"`
	Academic *Academic `json:"academic,omitempty"`
}

// Academic is the institute block surfaced by the creative layout.
type Academic struct {
	RollNumber     string `json:"rollNumber,omitempty"`
	Degree         string `json:"degree,omitempty"`
	Branch         string `json:"branch,omitempty"`
	Institute      string `json:"institute,omitempty"`
	InstituteEmail string `json:"instituteEmail,omitempty"`
}

// Link is a labelled external reference.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Section is one titled block of entries.
type Section struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Text    string  `json:"text,omitempty"`
	Entries []Entry `json:"entries,omitempty"`
}

// Entry is one item inside a section. Layouts decide which of the optional
// parts they draw.
type Entry struct {
	Title       string   `json:"title,omitempty"`
	Subtitle    string   `json:"subtitle,omitempty"`
	Detail      string   `json:"detail,omitempty"`
	DateRange   string   `json:"dateRange,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Links       []Link   `json:"links,omitempty"`
}

// Layout builds a Tree for one template variant.
type Layout interface {
	Name() resumes.Template
	Build(doc resumes.Document) Tree
}

var layouts = map[resumes.Template]Layout{}

func register(l Layout) {
	layouts[l.Name()] = l
}

func init() {
	register(classicLayout{})
	register(modernLayout{})
	register(minimalLayout{})
	register(creativeLayout{})
}

// Render resolves the document's template and builds its tree. An unknown or
// empty template falls back to the classic layout.
func Render(doc resumes.Document) Tree {
	metrics.IncRender()
	layout, ok := layouts[doc.Template]
	if !ok {
		layout = layouts[resumes.TemplateClassic]
	}
	return layout.Build(doc)
}

// BorderRadius maps a border style onto the CSS radius every layout uses for
// badges and the photo.
func BorderRadius(style resumes.BorderStyle) string {
	switch style {
	case resumes.BorderSquare:
		return "0px"
	case resumes.BorderCircle:
		return "9999px"
	default:
		return "10%"
	}
}

const defaultColor = "#000000"

func theme(doc resumes.Document) Theme {
	color := doc.ColorHex
	if color == "" {
		color = defaultColor
	}
	return Theme{Color: color, BorderRadius: BorderRadius(doc.BorderStyle)}
}
