package resumes

import (
	"errors"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	dateLayout = "2006-01-02"

	// MaxPhotoBytes caps pending photo blobs at 4MB.
	MaxPhotoBytes = 4 << 20
)

// ValidateDocument checks the full document. Missing optional fields never
// fail; format and type violations fail with a FieldValidationError.
func ValidateDocument(d Document) error {
	checks := []func(Document) error{
		ValidateGeneralInfo,
		ValidatePersonalInfo,
		ValidateWorkExperiences,
		ValidateEducations,
		ValidateProjects,
		ValidateSkills,
		ValidateAchievements,
		ValidateCertificates,
		ValidateSummary,
	}
	for _, check := range checks {
		if err := check(d); err != nil {
			return err
		}
	}
	return nil
}

// ValidateGeneralInfo checks the title/description step.
func ValidateGeneralInfo(d Document) error {
	// Free-form text; nothing to reject. Kept so every editor step has a
	// commit gate with the same shape.
	_ = d
	return nil
}

// ValidatePersonalInfo checks identity, contact and photo fields.
func ValidatePersonalInfo(d Document) error {
	if d.Photo.State == PhotoPending && d.Photo.Blob != nil {
		blob := d.Photo.Blob
		if !strings.HasPrefix(blob.MimeType, "image/") {
			return &FieldValidationError{Field: "photo", Reason: "must be an image file"}
		}
		if blob.Size > MaxPhotoBytes {
			return &FieldValidationError{Field: "photo", Reason: "file must be less than 4MB"}
		}
	}
	err := validation.ValidateStruct(&d,
		validation.Field(&d.Template, validation.In(TemplateClassic, TemplateModern, TemplateMinimal, TemplateCreative)),
		validation.Field(&d.BorderStyle, validation.In(BorderSquare, BorderCircle, BorderSquircle)),
	)
	return fieldError(err)
}

// ValidateWorkExperiences checks date formats on each entry.
func ValidateWorkExperiences(d Document) error {
	err := validation.Validate(d.WorkExperiences, validation.Each(validation.By(func(value interface{}) error {
		w := value.(WorkExperience)
		return validation.ValidateStruct(&w,
			validation.Field(&w.StartDate, validation.Date(dateLayout)),
			validation.Field(&w.EndDate, validation.Date(dateLayout)),
		)
	})))
	return prefixedFieldError("workExperiences", err)
}

// ValidateEducations checks date formats on each entry.
func ValidateEducations(d Document) error {
	err := validation.Validate(d.Educations, validation.Each(validation.By(func(value interface{}) error {
		e := value.(Education)
		return validation.ValidateStruct(&e,
			validation.Field(&e.StartDate, validation.Date(dateLayout)),
			validation.Field(&e.EndDate, validation.Date(dateLayout)),
		)
	})))
	return prefixedFieldError("educations", err)
}

// ValidateProjects checks date formats on each entry.
func ValidateProjects(d Document) error {
	err := validation.Validate(d.Projects, validation.Each(validation.By(func(value interface{}) error {
		p := value.(Project)
		return validation.ValidateStruct(&p,
			validation.Field(&p.StartDate, validation.Date(dateLayout)),
			validation.Field(&p.EndDate, validation.Date(dateLayout)),
		)
	})))
	return prefixedFieldError("projects", err)
}

// ValidateSkills accepts any grouping; tags are free-form text.
func ValidateSkills(d Document) error {
	_ = d
	return nil
}

// ValidateAchievements checks date formats on each entry.
func ValidateAchievements(d Document) error {
	err := validation.Validate(d.Achievements, validation.Each(validation.By(func(value interface{}) error {
		a := value.(Achievement)
		return validation.ValidateStruct(&a,
			validation.Field(&a.StartDate, validation.Date(dateLayout)),
			validation.Field(&a.EndDate, validation.Date(dateLayout)),
		)
	})))
	return prefixedFieldError("achievements", err)
}

// ValidateCertificates checks the issue date format on each entry.
func ValidateCertificates(d Document) error {
	err := validation.Validate(d.Certificates, validation.Each(validation.By(func(value interface{}) error {
		c := value.(Certificate)
		return validation.ValidateStruct(&c,
			validation.Field(&c.Date, validation.Date(dateLayout)),
		)
	})))
	return prefixedFieldError("certificates", err)
}

// ValidateSummary accepts any text.
func ValidateSummary(d Document) error {
	_ = d
	return nil
}

// fieldError converts an ozzo validation error into a FieldValidationError
// identifying the deepest field path, e.g. "workExperiences.0.startDate".
func fieldError(err error) error {
	return prefixedFieldError("", err)
}

func prefixedFieldError(prefix string, err error) error {
	if err == nil {
		return nil
	}
	var ve validation.Errors
	if !errors.As(err, &ve) {
		return &FieldValidationError{Field: prefix, Reason: err.Error()}
	}
	field, reason := flattenErrors(ve)
	if prefix != "" {
		if field != "" {
			field = prefix + "." + field
		} else {
			field = prefix
		}
	}
	return &FieldValidationError{Field: field, Reason: reason}
}

func flattenErrors(ve validation.Errors) (string, string) {
	keys := make([]string, 0, len(ve))
	for k := range ve {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		inner := ve[k]
		var nested validation.Errors
		if errors.As(inner, &nested) {
			field, reason := flattenErrors(nested)
			if field == "" {
				return k, reason
			}
			return k + "." + field, reason
		}
		return k, inner.Error()
	}
	return "", "invalid value"
}
