package llm

import (
	"fmt"
	"strings"

	"smartcv-backend/internal/resumes"
)

// SummaryPrompt builds the professional-summary prompt from the parts of the
// draft the model should see. Company and institution names are summarized
// away by instruction, not by omission, matching the editor's behavior.
func SummaryPrompt(doc resumes.Document) string {
	var b strings.Builder
	b.WriteString(`You are an expert resume writer trained in crafting high-impact, ATS-optimized summaries tailored to specific job roles. Your goal is to write a professional summary in 3-5 sentences that:

- Aligns closely with the provided job title using industry-relevant keywords
- Emphasizes technical or domain-specific skills, experience, and accomplishments
- References the candidate's project experience and education without naming companies, institutions, or specific projects
- Uses strong, active language and avoids personal pronouns
- Maintains a clean, professional tone suitable for Applicant Tracking Systems (ATS)

Format your response as a JSON object with a single key "summary". Do not include any formatting, explanation, or headings.

Use the following data to create the summary:

`)
	fmt.Fprintf(&b, "Job Title: %q\n\nWork Experiences:\n", doc.JobTitle)
	if len(doc.WorkExperiences) == 0 {
		b.WriteString("N/A\n")
	}
	for _, w := range doc.WorkExperiences {
		fmt.Fprintf(&b, "- Position: %s\n", orNA(w.Position))
	}
	b.WriteString("\nEducation:\n")
	if len(doc.Educations) == 0 {
		b.WriteString("N/A\n")
	}
	for _, e := range doc.Educations {
		fmt.Fprintf(&b, "- Degree: %s, Institution: %s\n", orNA(e.Degree), orNA(e.School))
	}
	b.WriteString("\nProjects:\n")
	if len(doc.Projects) == 0 {
		b.WriteString("N/A\n")
	}
	for _, p := range doc.Projects {
		fmt.Fprintf(&b, "- Description: %s\n", orNA(p.Description))
	}
	b.WriteString("\nSkills:\n")
	if len(doc.Skills) == 0 {
		b.WriteString("N/A\n")
	}
	for _, s := range doc.Skills {
		fmt.Fprintf(&b, "- %s: %s\n", orNA(s.Category), orNA(strings.Join(s.Values, ", ")))
	}
	b.WriteString("\nAchievements:\n")
	if len(doc.Achievements) == 0 {
		b.WriteString("N/A\n")
	}
	for _, a := range doc.Achievements {
		fmt.Fprintf(&b, "- %s (%s)\n", orNA(a.Title), orNA(a.Issuer))
	}
	return b.String()
}

// WorkExperiencePrompt asks for a full work-experience entry expanded from a
// rough description.
func WorkExperiencePrompt(description string) string {
	return `You are a job resume generator AI.
Your task: Return a JSON object with ALL of these fields:
- position (string)
- company (string)
- startDate (YYYY-MM-DD)
- endDate (YYYY-MM-DD)
- description (string) that contains at least 3 bullet points, each bullet starting with "- " and separated by "\n".

Guidelines for description:
- Make bullets detailed and professional.
- Include specific responsibilities, tools/technologies used, and measurable achievements.
- Expand on user input and infer additional realistic details if needed.
- Avoid generic filler like "worked hard" or "did my job".
- If dates are not given, add random dates.

User's provided description:
` + description + "\n"
}

// ProjectPrompt asks for a full project entry expanded from a rough
// description.
func ProjectPrompt(description string) string {
	return `You are a job resume generator AI.
Your task: Return a JSON object with ALL of these fields:
- name (string)
- description (string) that contains at least 3 bullet points, each bullet starting with "- " and separated by "\n".
- stack (array of strings)
- startDate (YYYY-MM-DD)
- endDate (YYYY-MM-DD)

Guidelines for description:
- Make bullets detailed and professional.
- Include specific responsibilities, tools/technologies used, and measurable achievements.
- Expand on user input and infer additional realistic details if needed.
- Avoid generic filler like "worked hard" or "did my job".
- If dates are not given, add random dates.

User's provided description:
` + description + "\n"
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
