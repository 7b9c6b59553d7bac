package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres. Structured sections live in jsonb
// columns so the document round-trips without a migration per field.
type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `
id, user_id, title, personal_info, professional_summary, experience,
education, projects, skills, template, accent_color, public, image_key,
created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	const query = `
INSERT INTO resumes (
	id, user_id, title, personal_info, professional_summary, experience,
	education, projects, skills, template, accent_color, public, image_key,
	created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	cols, err := marshalSections(resume)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.UserID,
		resume.Title,
		cols.personalInfo,
		resume.ProfessionalSummary,
		cols.experience,
		cols.education,
		cols.projects,
		cols.skills,
		resume.Template,
		resume.AccentColor,
		resume.Public,
		nullString(resume.ImageKey),
		resume.CreatedAt,
		resume.UpdatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE id = $1 LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, id)
	resume, err := scanResume(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Resume{}, ErrNotFound
	}
	return resume, err
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE user_id = $1 ORDER BY updated_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Resume, 0)
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, resume Resume) error {
	const query = `
UPDATE resumes SET
	title = $1, personal_info = $2, professional_summary = $3,
	experience = $4, education = $5, projects = $6, skills = $7,
	template = $8, accent_color = $9, public = $10, image_key = $11,
	updated_at = $12
WHERE id = $13 AND user_id = $14`

	cols, err := marshalSections(resume)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query,
		resume.Title,
		cols.personalInfo,
		resume.ProfessionalSummary,
		cols.experience,
		cols.education,
		cols.projects,
		cols.skills,
		resume.Template,
		resume.AccentColor,
		resume.Public,
		nullString(resume.ImageKey),
		resume.UpdatedAt,
		resume.ID,
		resume.UserID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM resumes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

type sectionColumns struct {
	personalInfo []byte
	experience   []byte
	education    []byte
	projects     []byte
	skills       []byte
}

func marshalSections(resume Resume) (sectionColumns, error) {
	var cols sectionColumns
	var err error
	if cols.personalInfo, err = json.Marshal(resume.PersonalInfo); err != nil {
		return cols, fmt.Errorf("marshal personal_info: %w", err)
	}
	if cols.experience, err = marshalList(resume.Experience); err != nil {
		return cols, fmt.Errorf("marshal experience: %w", err)
	}
	if cols.education, err = marshalList(resume.Education); err != nil {
		return cols, fmt.Errorf("marshal education: %w", err)
	}
	if cols.projects, err = marshalList(resume.Projects); err != nil {
		return cols, fmt.Errorf("marshal projects: %w", err)
	}
	if cols.skills, err = marshalList(resume.Skills); err != nil {
		return cols, fmt.Errorf("marshal skills: %w", err)
	}
	return cols, nil
}

// marshalList keeps empty sections as [] rather than null in jsonb.
func marshalList[T any](list []T) ([]byte, error) {
	if list == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(list)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var (
		resume       Resume
		personalInfo []byte
		experience   []byte
		education    []byte
		projects     []byte
		skills       []byte
		imageKey     sql.NullString
	)
	err := row.Scan(
		&resume.ID,
		&resume.UserID,
		&resume.Title,
		&personalInfo,
		&resume.ProfessionalSummary,
		&experience,
		&education,
		&projects,
		&skills,
		&resume.Template,
		&resume.AccentColor,
		&resume.Public,
		&imageKey,
		&resume.CreatedAt,
		&resume.UpdatedAt,
	)
	if err != nil {
		return Resume{}, err
	}
	resume.ImageKey = imageKey.String

	if err := json.Unmarshal(personalInfo, &resume.PersonalInfo); err != nil {
		return Resume{}, fmt.Errorf("unmarshal personal_info: %w", err)
	}
	if err := json.Unmarshal(experience, &resume.Experience); err != nil {
		return Resume{}, fmt.Errorf("unmarshal experience: %w", err)
	}
	if err := json.Unmarshal(education, &resume.Education); err != nil {
		return Resume{}, fmt.Errorf("unmarshal education: %w", err)
	}
	if err := json.Unmarshal(projects, &resume.Projects); err != nil {
		return Resume{}, fmt.Errorf("unmarshal projects: %w", err)
	}
	if err := json.Unmarshal(skills, &resume.Skills); err != nil {
		return Resume{}, fmt.Errorf("unmarshal skills: %w", err)
	}
	return resume, nil
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var _ Repo = (*PGRepo)(nil)
