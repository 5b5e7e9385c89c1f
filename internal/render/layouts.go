package render

import "smartcv-backend/internal/resumes"

// classicLayout is the default single-column layout: photo header, then the
// sections in a conventional chronological order.
type classicLayout struct{}

func (classicLayout) Name() resumes.Template { return resumes.TemplateClassic }

func (classicLayout) Build(doc resumes.Document) Tree {
	var sections []Section
	sections = add(sections, summarySection(doc, "Professional Summary"))
	sections = add(sections, workSection(doc, "Work Experience"))
	sections = add(sections, educationSection(doc, "Education"))
	sections = add(sections, projectsSection(doc, "Projects"))
	sections = add(sections, skillsSection(doc, "Skills"))
	sections = add(sections, achievementsSection(doc, "Achievements"))
	sections = add(sections, certificatesSection(doc, "Certificates"))
	return Tree{
		Template: resumes.TemplateClassic,
		Theme:    theme(doc),
		Header:   headerFor(doc, true, false),
		Sections: sections,
	}
}

// modernLayout leads with skills so the stack is visible before the history.
type modernLayout struct{}

func (modernLayout) Name() resumes.Template { return resumes.TemplateModern }

func (modernLayout) Build(doc resumes.Document) Tree {
	var sections []Section
	sections = add(sections, summarySection(doc, "About"))
	sections = add(sections, skillsSection(doc, "Skills"))
	sections = add(sections, workSection(doc, "Experience"))
	sections = add(sections, projectsSection(doc, "Projects"))
	sections = add(sections, educationSection(doc, "Education"))
	sections = add(sections, certificatesSection(doc, "Certificates"))
	sections = add(sections, achievementsSection(doc, "Achievements"))
	return Tree{
		Template: resumes.TemplateModern,
		Theme:    theme(doc),
		Header:   headerFor(doc, true, false),
		Sections: sections,
	}
}

// minimalLayout drops the photo and keeps short section titles.
type minimalLayout struct{}

func (minimalLayout) Name() resumes.Template { return resumes.TemplateMinimal }

func (minimalLayout) Build(doc resumes.Document) Tree {
	var sections []Section
	sections = add(sections, summarySection(doc, "Summary"))
	sections = add(sections, workSection(doc, "Experience"))
	sections = add(sections, educationSection(doc, "Education"))
	sections = add(sections, projectsSection(doc, "Projects"))
	sections = add(sections, skillsSection(doc, "Skills"))
	sections = add(sections, achievementsSection(doc, "Achievements"))
	sections = add(sections, certificatesSection(doc, "Certificates"))
	return Tree{
		Template: resumes.TemplateMinimal,
		Theme:    theme(doc),
		Header:   headerFor(doc, false, false),
		Sections: sections,
	}
}

// creativeLayout is the campus variant: it surfaces the academic profile in
// the header and puts projects ahead of work history.
type creativeLayout struct{}

func (creativeLayout) Name() resumes.Template { return resumes.TemplateCreative }

func (creativeLayout) Build(doc resumes.Document) Tree {
	var sections []Section
	sections = add(sections, summarySection(doc, "Summary"))
	sections = add(sections, projectsSection(doc, "Projects"))
	sections = add(sections, workSection(doc, "Experience"))
	sections = add(sections, skillsSection(doc, "Technical Skills"))
	sections = add(sections, achievementsSection(doc, "Achievements"))
	sections = add(sections, certificatesSection(doc, "Certificates"))
	sections = add(sections, educationSection(doc, "Education"))
	return Tree{
		Template: resumes.TemplateCreative,
		Theme:    theme(doc),
		Header:   headerFor(doc, true, true),
		Sections: sections,
	}
}
