package resumes

import "slices"

// Clone returns a deep copy of the Document. Child collections are copied
// so later edits to the original cannot leak into a snapshot; photo blobs
// are shared because they are immutable once attached.
func (d Document) Clone() Document {
	out := d
	out.WorkExperiences = slices.Clone(d.WorkExperiences)
	out.Educations = slices.Clone(d.Educations)
	out.Projects = slices.Clone(d.Projects)
	for i := range out.Projects {
		out.Projects[i].Stack = slices.Clone(out.Projects[i].Stack)
	}
	out.Skills = slices.Clone(d.Skills)
	for i := range out.Skills {
		out.Skills[i].Values = slices.Clone(out.Skills[i].Values)
	}
	out.Achievements = slices.Clone(d.Achievements)
	out.Certificates = slices.Clone(d.Certificates)
	return out
}

// Equal reports full structural equality between two documents. The photo
// field is compared by its content-identity surrogate, not by bytes.
func (d Document) Equal(other Document) bool {
	if !d.Photo.Equal(other.Photo) {
		return false
	}
	if !scalarFieldsEqual(d, other) {
		return false
	}
	if !slices.Equal(d.WorkExperiences, other.WorkExperiences) {
		return false
	}
	if !slices.Equal(d.Educations, other.Educations) {
		return false
	}
	if !slices.EqualFunc(d.Projects, other.Projects, projectsEqual) {
		return false
	}
	if !slices.EqualFunc(d.Skills, other.Skills, skillGroupsEqual) {
		return false
	}
	if !slices.Equal(d.Achievements, other.Achievements) {
		return false
	}
	return slices.Equal(d.Certificates, other.Certificates)
}

func scalarFieldsEqual(a, b Document) bool {
	return a.ID == b.ID &&
		a.Title == b.Title &&
		a.Description == b.Description &&
		a.FirstName == b.FirstName &&
		a.LastName == b.LastName &&
		a.JobTitle == b.JobTitle &&
		a.City == b.City &&
		a.Country == b.Country &&
		a.Phone == b.Phone &&
		a.Email == b.Email &&
		a.LinkedIn == b.LinkedIn &&
		a.GitHub == b.GitHub &&
		a.LeetCode == b.LeetCode &&
		a.Portfolio == b.Portfolio &&
		a.RollNumber == b.RollNumber &&
		a.Degree == b.Degree &&
		a.Branch == b.Branch &&
		a.Institute == b.Institute &&
		a.InstituteEmail == b.InstituteEmail &&
		a.Summary == b.Summary &&
		a.ColorHex == b.ColorHex &&
		a.BorderStyle == b.BorderStyle &&
		a.Template == b.Template
}

func projectsEqual(a, b Project) bool {
	return a.Name == b.Name &&
		a.Description == b.Description &&
		a.URL == b.URL &&
		a.GitHub == b.GitHub &&
		slices.Equal(a.Stack, b.Stack) &&
		a.StartDate == b.StartDate &&
		a.EndDate == b.EndDate
}

func skillGroupsEqual(a, b SkillGroup) bool {
	return a.Category == b.Category && slices.Equal(a.Values, b.Values)
}
