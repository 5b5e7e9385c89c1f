package resumes

import "fmt"

// Move returns a copy of s with the element at index from relocated to
// index to; the relative order of all other elements is preserved and the
// input is never mutated. Moving an element onto itself returns the input
// unchanged.
func Move[T any](s []T, from, to int) ([]T, error) {
	if from < 0 || from >= len(s) {
		return nil, fmt.Errorf("%w: source index %d out of range", ErrInvalidInput, from)
	}
	if to < 0 || to >= len(s) {
		return nil, fmt.Errorf("%w: destination index %d out of range", ErrInvalidInput, to)
	}
	if from == to {
		return s, nil
	}

	out := make([]T, 0, len(s))
	out = append(out, s[:from]...)
	out = append(out, s[from+1:]...)
	moved := s[from]
	out = append(out[:to], append([]T{moved}, out[to:]...)...)
	return out, nil
}

// Section names accepted by MoveSection, matching the document's JSON keys.
const (
	SectionWorkExperiences = "workExperiences"
	SectionEducations      = "educations"
	SectionProjects        = "projects"
	SectionSkills          = "skills"
	SectionAchievements    = "achievements"
	SectionCertificates    = "certificates"
)

// MoveSection returns a copy of the document with one child collection
// reordered. The document itself is not mutated, so the result composes
// with snapshot-based dirty detection.
func MoveSection(d Document, section string, from, to int) (Document, error) {
	out := d.Clone()
	var err error
	switch section {
	case SectionWorkExperiences:
		out.WorkExperiences, err = Move(out.WorkExperiences, from, to)
	case SectionEducations:
		out.Educations, err = Move(out.Educations, from, to)
	case SectionProjects:
		out.Projects, err = Move(out.Projects, from, to)
	case SectionSkills:
		out.Skills, err = Move(out.Skills, from, to)
	case SectionAchievements:
		out.Achievements, err = Move(out.Achievements, from, to)
	case SectionCertificates:
		out.Certificates, err = Move(out.Certificates, from, to)
	default:
		return Document{}, fmt.Errorf("%w: unknown section %q", ErrInvalidInput, section)
	}
	if err != nil {
		return Document{}, err
	}
	return out, nil
}
