package render

import (
	"bytes"
	"fmt"
	"html/template"

	"smartcv-backend/internal/resumes"
)

// ExportHTML renders the document's layout tree into a single self-contained
// HTML page, suitable for printing to PDF from the browser.
func ExportHTML(doc resumes.Document) ([]byte, error) {
	tree := Render(doc)
	var buf bytes.Buffer
	if err := exportTemplate.Execute(&buf, tree); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

var exportTemplate = template.Must(template.New("resume").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Header.Name}}{{if .Header.Name}} – {{end}}Resume</title>
<style>
  :root { --accent: {{.Theme.Color}}; --radius: {{.Theme.BorderRadius}}; }
  body { font-family: Georgia, 'Times New Roman', serif; max-width: 52rem; margin: 2rem auto; padding: 0 1.5rem; color: #1a1a1a; }
  header { border-bottom: 3px solid var(--accent); padding-bottom: 1rem; margin-bottom: 1.25rem; }
  header img.photo { float: right; width: 96px; height: 96px; object-fit: cover; border-radius: var(--radius); }
  h1 { margin: 0; font-size: 1.8rem; color: var(--accent); }
  .job-title { font-size: 1.1rem; margin: 0.2rem 0; }
  .contact { font-size: 0.85rem; color: #444; }
  .contact span + span::before { content: " · "; }
  .academic { font-size: 0.85rem; color: #444; margin-top: 0.4rem; }
  section { margin-bottom: 1.1rem; }
  h2 { font-size: 1rem; text-transform: uppercase; letter-spacing: 0.06em; color: var(--accent); border-bottom: 1px solid #ddd; padding-bottom: 0.15rem; }
  .entry { margin-bottom: 0.7rem; }
  .entry-head { display: flex; justify-content: space-between; }
  .entry-title { font-weight: bold; }
  .entry-subtitle { font-style: italic; }
  .entry-date { color: #666; font-size: 0.85rem; white-space: nowrap; }
  .entry-desc { margin: 0.2rem 0 0; font-size: 0.9rem; white-space: pre-wrap; }
  .tags { margin-top: 0.25rem; }
  .tag { display: inline-block; background: var(--accent); color: #fff; border-radius: var(--radius); font-size: 0.75rem; padding: 0.1rem 0.5rem; margin: 0 0.25rem 0.25rem 0; }
  .links a { font-size: 0.8rem; margin-right: 0.6rem; color: var(--accent); }
  @media print { body { margin: 0; } }
</style>
</head>
<body>
<header>
  {{if .Header.PhotoURL}}<img class="photo" src="{{.Header.PhotoURL}}" alt="">{{end}}
  <h1>{{.Header.Name}}</h1>
  {{if .Header.JobTitle}}<p class="job-title">{{.Header.JobTitle}}</p>{{end}}
  <p class="contact">
    {{if .Header.Location}}<span>{{.Header.Location}}</span>{{end}}
    {{if .Header.Phone}}<span>{{.Header.Phone}}</span>{{end}}
    {{if .Header.Email}}<span>{{.Header.Email}}</span>{{end}}
  </p>
  {{if .Header.Links}}<p class="links">{{range .Header.Links}}<a href="{{.URL}}">{{.Label}}</a>{{end}}</p>{{end}}
  {{with .Header.Academic}}
  <p class="academic">
    {{if .Institute}}{{.Institute}}{{end}}
    {{if .Degree}} · {{.Degree}}{{end}}
    {{if .Branch}} · {{.Branch}}{{end}}
    {{if .RollNumber}} · Roll No. {{.RollNumber}}{{end}}
    {{if .InstituteEmail}} · {{.InstituteEmail}}{{end}}
  </p>
  {{end}}
</header>
{{range .Sections}}
<section>
  <h2>{{.Title}}</h2>
  {{if .Text}}<p class="entry-desc">{{.Text}}</p>{{end}}
  {{range .Entries}}
  <div class="entry">
    <div class="entry-head">
      <div>
        {{if .Title}}<span class="entry-title">{{.Title}}</span>{{end}}
        {{if .Subtitle}}<span class="entry-subtitle">{{if .Title}}, {{end}}{{.Subtitle}}</span>{{end}}
        {{if .Detail}}<span class="entry-detail"> ({{.Detail}})</span>{{end}}
      </div>
      {{if .DateRange}}<span class="entry-date">{{.DateRange}}</span>{{end}}
    </div>
    {{if .Description}}<p class="entry-desc">{{.Description}}</p>{{end}}
    {{if .Tags}}<div class="tags">{{range .Tags}}<span class="tag">{{.}}</span>{{end}}</div>{{end}}
    {{if .Links}}<div class="links">{{range .Links}}<a href="{{.URL}}">{{.Label}}</a>{{end}}</div>{{end}}
  </div>
  {{end}}
</section>
{{end}}
</body>
</html>
`))
