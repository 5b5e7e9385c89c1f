package resumes

import "time"

// ResumeResponse is the wire shape for a saved resume: the document fields
// plus server-owned metadata. List responses reuse it with the child
// collections left empty.
type ResumeResponse struct {
	Document
	PhotoURL  string    `json:"photoUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewResumeResponse converts a persisted resume to its wire shape.
func NewResumeResponse(res Resume) ResumeResponse {
	return ResumeResponse{
		Document:  DocumentFromResume(res),
		PhotoURL:  res.PhotoURL,
		CreatedAt: res.CreatedAt,
		UpdatedAt: res.UpdatedAt,
	}
}

// DocumentFromResume rebuilds an editable draft from a persisted resume.
// A stored photo comes back as a URL reference, never as bytes.
func DocumentFromResume(res Resume) Document {
	return Document{
		ID:              res.ID,
		Title:           res.Title,
		Description:     res.Description,
		FirstName:       res.FirstName,
		LastName:        res.LastName,
		JobTitle:        res.JobTitle,
		City:            res.City,
		Country:         res.Country,
		Phone:           res.Phone,
		Email:           res.Email,
		LinkedIn:        res.LinkedIn,
		GitHub:          res.GitHub,
		LeetCode:        res.LeetCode,
		Portfolio:       res.Portfolio,
		RollNumber:      res.RollNumber,
		Degree:          res.Degree,
		Branch:          res.Branch,
		Institute:       res.Institute,
		InstituteEmail:  res.InstituteEmail,
		Summary:         res.Summary,
		ColorHex:        res.ColorHex,
		BorderStyle:     res.BorderStyle,
		Template:        res.Template,
		Photo:           StoredPhoto(res.PhotoURL),
		WorkExperiences: res.WorkExperiences,
		Educations:      res.Educations,
		Projects:        res.Projects,
		Skills:          res.Skills,
		Achievements:    res.Achievements,
		Certificates:    res.Certificates,
	}
}

// resumeRecord maps a draft onto a persistable row for a user. Photo and
// timestamps are owned by the service and left for it to fill in.
func resumeRecord(userID string, doc Document) Resume {
	return Resume{
		ID:              doc.ID,
		UserID:          userID,
		Title:           doc.Title,
		Description:     doc.Description,
		FirstName:       doc.FirstName,
		LastName:        doc.LastName,
		JobTitle:        doc.JobTitle,
		City:            doc.City,
		Country:         doc.Country,
		Phone:           doc.Phone,
		Email:           doc.Email,
		LinkedIn:        doc.LinkedIn,
		GitHub:          doc.GitHub,
		LeetCode:        doc.LeetCode,
		Portfolio:       doc.Portfolio,
		RollNumber:      doc.RollNumber,
		Degree:          doc.Degree,
		Branch:          doc.Branch,
		Institute:       doc.Institute,
		InstituteEmail:  doc.InstituteEmail,
		Summary:         doc.Summary,
		ColorHex:        doc.ColorHex,
		BorderStyle:     doc.BorderStyle,
		Template:        doc.Template,
		WorkExperiences: doc.WorkExperiences,
		Educations:      doc.Educations,
		Projects:        doc.Projects,
		Skills:          doc.Skills,
		Achievements:    doc.Achievements,
		Certificates:    doc.Certificates,
	}
}
