package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PGRepo implements Repo using Postgres. Child collections are replaced
// wholesale on update inside one transaction; row order is preserved via an
// explicit sort_order column.
type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, user_id, title, description, first_name, last_name, job_title, city, country, phone, email, linkedin, github, leetcode, portfolio, roll_number, degree, branch, institute, institute_email, summary, color_hex, border_style, template, photo_url, created_at, updated_at`

// Create inserts a new resume with all child collections.
func (r *PGRepo) Create(ctx context.Context, res Resume) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	const query = `
INSERT INTO resumes (` + resumeColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)`

	if _, err := tx.ExecContext(ctx, query,
		res.ID,
		res.UserID,
		textArg(res.Title),
		textArg(res.Description),
		textArg(res.FirstName),
		textArg(res.LastName),
		textArg(res.JobTitle),
		textArg(res.City),
		textArg(res.Country),
		textArg(res.Phone),
		textArg(res.Email),
		textArg(res.LinkedIn),
		textArg(res.GitHub),
		textArg(res.LeetCode),
		textArg(res.Portfolio),
		textArg(res.RollNumber),
		textArg(res.Degree),
		textArg(res.Branch),
		textArg(res.Institute),
		textArg(res.InstituteEmail),
		textArg(res.Summary),
		textArg(res.ColorHex),
		textArg(string(res.BorderStyle)),
		textArg(string(res.Template)),
		textArg(res.PhotoURL),
		res.CreatedAt,
		res.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert resume: %w", err)
	}

	if err := insertChildren(ctx, tx, res); err != nil {
		return err
	}
	return tx.Commit()
}

// Update replaces the header fields and every child collection of an
// existing resume. A resume missing or owned by another user is ErrNotFound.
func (r *PGRepo) Update(ctx context.Context, res Resume) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	const query = `
UPDATE resumes
SET title = $1, description = $2, first_name = $3, last_name = $4, job_title = $5, city = $6, country = $7,
    phone = $8, email = $9, linkedin = $10, github = $11, leetcode = $12, portfolio = $13,
    roll_number = $14, degree = $15, branch = $16, institute = $17, institute_email = $18,
    summary = $19, color_hex = $20, border_style = $21, template = $22, photo_url = $23, updated_at = $24
WHERE id = $25 AND user_id = $26`

	result, err := tx.ExecContext(ctx, query,
		textArg(res.Title),
		textArg(res.Description),
		textArg(res.FirstName),
		textArg(res.LastName),
		textArg(res.JobTitle),
		textArg(res.City),
		textArg(res.Country),
		textArg(res.Phone),
		textArg(res.Email),
		textArg(res.LinkedIn),
		textArg(res.GitHub),
		textArg(res.LeetCode),
		textArg(res.Portfolio),
		textArg(res.RollNumber),
		textArg(res.Degree),
		textArg(res.Branch),
		textArg(res.Institute),
		textArg(res.InstituteEmail),
		textArg(res.Summary),
		textArg(res.ColorHex),
		textArg(string(res.BorderStyle)),
		textArg(string(res.Template)),
		textArg(res.PhotoURL),
		res.UpdatedAt,
		res.ID,
		res.UserID,
	)
	if err != nil {
		return fmt.Errorf("update resume: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update resume rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	for _, table := range []string{"work_experiences", "educations", "projects", "skills", "achievements", "certificates"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE resume_id = $1", res.ID); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}

	if err := insertChildren(ctx, tx, res); err != nil {
		return err
	}
	return tx.Commit()
}

// Get fetches a resume with all child collections for its owner.
func (r *PGRepo) Get(ctx context.Context, userID, id string) (Resume, error) {
	const query = `SELECT ` + resumeColumns + ` FROM resumes WHERE id = $1 AND user_id = $2`
	return r.fetch(ctx, query, id, userID)
}

// GetPublic fetches a resume by id without an ownership check.
func (r *PGRepo) GetPublic(ctx context.Context, id string) (Resume, error) {
	const query = `SELECT ` + resumeColumns + ` FROM resumes WHERE id = $1`
	return r.fetch(ctx, query, id)
}

// List returns resume headers for a user, most recently updated first.
// Child collections are not loaded; callers needing them fetch by id.
func (r *PGRepo) List(ctx context.Context, userID string) ([]Resume, error) {
	const query = `SELECT ` + resumeColumns + ` FROM resumes WHERE user_id = $1 ORDER BY updated_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	defer rows.Close()

	var out []Resume
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// Delete removes a resume; child rows go with it via ON DELETE CASCADE.
func (r *PGRepo) Delete(ctx context.Context, userID, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM resumes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete resume: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete resume rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) fetch(ctx context.Context, query string, args ...any) (Resume, error) {
	row := r.DB.QueryRowContext(ctx, query, args...)
	res, err := scanResume(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	if err := r.loadChildren(ctx, &res); err != nil {
		return Resume{}, err
	}
	return res, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var res Resume
	var (
		title, description, firstName, lastName, jobTitle, city, country, phone, email sql.NullString
		linkedin, github, leetcode, portfolio                                          sql.NullString
		rollNumber, degree, branch, institute, instituteEmail                          sql.NullString
		summary, colorHex, borderStyle, template, photoURL                             sql.NullString
	)
	if err := row.Scan(
		&res.ID,
		&res.UserID,
		&title,
		&description,
		&firstName,
		&lastName,
		&jobTitle,
		&city,
		&country,
		&phone,
		&email,
		&linkedin,
		&github,
		&leetcode,
		&portfolio,
		&rollNumber,
		&degree,
		&branch,
		&institute,
		&instituteEmail,
		&summary,
		&colorHex,
		&borderStyle,
		&template,
		&photoURL,
		&res.CreatedAt,
		&res.UpdatedAt,
	); err != nil {
		return Resume{}, err
	}
	res.Title = title.String
	res.Description = description.String
	res.FirstName = firstName.String
	res.LastName = lastName.String
	res.JobTitle = jobTitle.String
	res.City = city.String
	res.Country = country.String
	res.Phone = phone.String
	res.Email = email.String
	res.LinkedIn = linkedin.String
	res.GitHub = github.String
	res.LeetCode = leetcode.String
	res.Portfolio = portfolio.String
	res.RollNumber = rollNumber.String
	res.Degree = degree.String
	res.Branch = branch.String
	res.Institute = institute.String
	res.InstituteEmail = instituteEmail.String
	res.Summary = summary.String
	res.ColorHex = colorHex.String
	res.BorderStyle = BorderStyle(borderStyle.String)
	res.Template = Template(template.String)
	res.PhotoURL = photoURL.String
	return res, nil
}

func insertChildren(ctx context.Context, tx *sql.Tx, res Resume) error {
	const insertWork = `
INSERT INTO work_experiences (id, resume_id, sort_order, company, position, start_date, end_date, description)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for i, w := range res.WorkExperiences {
		if _, err := tx.ExecContext(ctx, insertWork,
			uuid.NewString(), res.ID, i,
			textArg(w.Company), textArg(w.Position), dateArg(w.StartDate), dateArg(w.EndDate), textArg(w.Description),
		); err != nil {
			return fmt.Errorf("insert work experience %d: %w", i, err)
		}
	}

	const insertEducation = `
INSERT INTO educations (id, resume_id, sort_order, school, degree, cgpa, start_date, end_date)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for i, e := range res.Educations {
		if _, err := tx.ExecContext(ctx, insertEducation,
			uuid.NewString(), res.ID, i,
			textArg(e.School), textArg(e.Degree), textArg(e.CGPA), dateArg(e.StartDate), dateArg(e.EndDate),
		); err != nil {
			return fmt.Errorf("insert education %d: %w", i, err)
		}
	}

	const insertProject = `
INSERT INTO projects (id, resume_id, sort_order, name, description, url, github, stack, start_date, end_date)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for i, p := range res.Projects {
		stack, err := jsonArg(p.Stack)
		if err != nil {
			return fmt.Errorf("encode project stack %d: %w", i, err)
		}
		if _, err := tx.ExecContext(ctx, insertProject,
			uuid.NewString(), res.ID, i,
			textArg(p.Name), textArg(p.Description), textArg(p.URL), textArg(p.GitHub), stack, dateArg(p.StartDate), dateArg(p.EndDate),
		); err != nil {
			return fmt.Errorf("insert project %d: %w", i, err)
		}
	}

	const insertSkill = `
INSERT INTO skills (id, resume_id, sort_order, category, items)
VALUES ($1, $2, $3, $4, $5)`
	for i, s := range res.Skills {
		items, err := jsonArg(s.Values)
		if err != nil {
			return fmt.Errorf("encode skill items %d: %w", i, err)
		}
		if _, err := tx.ExecContext(ctx, insertSkill,
			uuid.NewString(), res.ID, i, textArg(s.Category), items,
		); err != nil {
			return fmt.Errorf("insert skill %d: %w", i, err)
		}
	}

	const insertAchievement = `
INSERT INTO achievements (id, resume_id, sort_order, title, issuer, start_date, end_date)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for i, a := range res.Achievements {
		if _, err := tx.ExecContext(ctx, insertAchievement,
			uuid.NewString(), res.ID, i,
			textArg(a.Title), textArg(a.Issuer), dateArg(a.StartDate), dateArg(a.EndDate),
		); err != nil {
			return fmt.Errorf("insert achievement %d: %w", i, err)
		}
	}

	const insertCertificate = `
INSERT INTO certificates (id, resume_id, sort_order, name, issuer, url, issued_on)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for i, c := range res.Certificates {
		if _, err := tx.ExecContext(ctx, insertCertificate,
			uuid.NewString(), res.ID, i,
			textArg(c.Name), textArg(c.Issuer), textArg(c.URL), dateArg(c.Date),
		); err != nil {
			return fmt.Errorf("insert certificate %d: %w", i, err)
		}
	}

	return nil
}

func (r *PGRepo) loadChildren(ctx context.Context, res *Resume) error {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT company, position, start_date, end_date, description FROM work_experiences WHERE resume_id = $1 ORDER BY sort_order`, res.ID)
	if err != nil {
		return fmt.Errorf("load work experiences: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var company, position, description sql.NullString
		var start, end sql.NullTime
		if err := rows.Scan(&company, &position, &start, &end, &description); err != nil {
			return err
		}
		res.WorkExperiences = append(res.WorkExperiences, WorkExperience{
			Company:     company.String,
			Position:    position.String,
			StartDate:   dateString(start),
			EndDate:     dateString(end),
			Description: description.String,
		})
	}
	if err := rows.Err(); err != nil {
		return err
	}

	eduRows, err := r.DB.QueryContext(ctx,
		`SELECT school, degree, cgpa, start_date, end_date FROM educations WHERE resume_id = $1 ORDER BY sort_order`, res.ID)
	if err != nil {
		return fmt.Errorf("load educations: %w", err)
	}
	defer eduRows.Close()
	for eduRows.Next() {
		var school, degree, cgpa sql.NullString
		var start, end sql.NullTime
		if err := eduRows.Scan(&school, &degree, &cgpa, &start, &end); err != nil {
			return err
		}
		res.Educations = append(res.Educations, Education{
			School:    school.String,
			Degree:    degree.String,
			CGPA:      cgpa.String,
			StartDate: dateString(start),
			EndDate:   dateString(end),
		})
	}
	if err := eduRows.Err(); err != nil {
		return err
	}

	projRows, err := r.DB.QueryContext(ctx,
		`SELECT name, description, url, github, stack, start_date, end_date FROM projects WHERE resume_id = $1 ORDER BY sort_order`, res.ID)
	if err != nil {
		return fmt.Errorf("load projects: %w", err)
	}
	defer projRows.Close()
	for projRows.Next() {
		var name, description, url, github sql.NullString
		var stack []byte
		var start, end sql.NullTime
		if err := projRows.Scan(&name, &description, &url, &github, &stack, &start, &end); err != nil {
			return err
		}
		p := Project{
			Name:        name.String,
			Description: description.String,
			URL:         url.String,
			GitHub:      github.String,
			StartDate:   dateString(start),
			EndDate:     dateString(end),
		}
		if err := jsonList(stack, &p.Stack); err != nil {
			return fmt.Errorf("decode project stack: %w", err)
		}
		res.Projects = append(res.Projects, p)
	}
	if err := projRows.Err(); err != nil {
		return err
	}

	skillRows, err := r.DB.QueryContext(ctx,
		`SELECT category, items FROM skills WHERE resume_id = $1 ORDER BY sort_order`, res.ID)
	if err != nil {
		return fmt.Errorf("load skills: %w", err)
	}
	defer skillRows.Close()
	for skillRows.Next() {
		var category sql.NullString
		var items []byte
		if err := skillRows.Scan(&category, &items); err != nil {
			return err
		}
		s := SkillGroup{Category: category.String}
		if err := jsonList(items, &s.Values); err != nil {
			return fmt.Errorf("decode skill items: %w", err)
		}
		res.Skills = append(res.Skills, s)
	}
	if err := skillRows.Err(); err != nil {
		return err
	}

	achRows, err := r.DB.QueryContext(ctx,
		`SELECT title, issuer, start_date, end_date FROM achievements WHERE resume_id = $1 ORDER BY sort_order`, res.ID)
	if err != nil {
		return fmt.Errorf("load achievements: %w", err)
	}
	defer achRows.Close()
	for achRows.Next() {
		var title, issuer sql.NullString
		var start, end sql.NullTime
		if err := achRows.Scan(&title, &issuer, &start, &end); err != nil {
			return err
		}
		res.Achievements = append(res.Achievements, Achievement{
			Title:     title.String,
			Issuer:    issuer.String,
			StartDate: dateString(start),
			EndDate:   dateString(end),
		})
	}
	if err := achRows.Err(); err != nil {
		return err
	}

	certRows, err := r.DB.QueryContext(ctx,
		`SELECT name, issuer, url, issued_on FROM certificates WHERE resume_id = $1 ORDER BY sort_order`, res.ID)
	if err != nil {
		return fmt.Errorf("load certificates: %w", err)
	}
	defer certRows.Close()
	for certRows.Next() {
		var name, issuer, url sql.NullString
		var date sql.NullTime
		if err := certRows.Scan(&name, &issuer, &url, &date); err != nil {
			return err
		}
		res.Certificates = append(res.Certificates, Certificate{
			Name:   name.String,
			Issuer: issuer.String,
			URL:    url.String,
			Date:   dateString(date),
		})
	}
	return certRows.Err()
}

func textArg(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func dateArg(s string) any {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return t
}

func dateString(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}
	return t.Time.Format("2006-01-02")
}

func jsonArg(values []string) ([]byte, error) {
	if values == nil {
		values = []string{}
	}
	return json.Marshal(values)
}

func jsonList(data []byte, dest *[]string) error {
	if len(data) == 0 {
		return nil
	}
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	if len(values) > 0 {
		*dest = values
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
