package experiences

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres. skills_used is stored as JSONB.
type PGRepo struct {
	DB *sql.DB
}

const experienceColumns = `id, resume_id, company, title, start_date, end_date, description, skills_used`

// Create inserts a new experience.
func (r *PGRepo) Create(ctx context.Context, exp Experience) error {
	const query = `
INSERT INTO experiences (
    id,
    resume_id,
    company,
    title,
    start_date,
    end_date,
    description,
    skills_used
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	skills, err := marshalSkills(exp.SkillsUsed)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(
		ctx,
		query,
		exp.ID,
		exp.ResumeID,
		exp.Company,
		exp.Title,
		exp.StartDate,
		exp.EndDate,
		exp.Description,
		skills,
	)
	return err
}

// GetByID fetches an experience by id.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Experience, error) {
	const query = `
SELECT ` + experienceColumns + `
FROM experiences
WHERE id = $1
LIMIT 1`
	exp, err := scanExperience(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Experience{}, ErrNotFound
		}
		return Experience{}, err
	}
	return exp, nil
}

// List returns all experiences, most recent start date first.
func (r *PGRepo) List(ctx context.Context) ([]Experience, error) {
	const query = `
SELECT ` + experienceColumns + `
FROM experiences
ORDER BY start_date DESC, id`
	return r.query(ctx, query)
}

// ListByResume returns the experiences owned by a resume.
func (r *PGRepo) ListByResume(ctx context.Context, resumeID string) ([]Experience, error) {
	const query = `
SELECT ` + experienceColumns + `
FROM experiences
WHERE resume_id = $1
ORDER BY start_date DESC, id`
	return r.query(ctx, query, resumeID)
}

// Update rewrites an existing experience.
func (r *PGRepo) Update(ctx context.Context, exp Experience) error {
	const query = `
UPDATE experiences
SET resume_id = $1,
    company = $2,
    title = $3,
    start_date = $4,
    end_date = $5,
    description = $6,
    skills_used = $7
WHERE id = $8`

	skills, err := marshalSkills(exp.SkillsUsed)
	if err != nil {
		return err
	}
	out, err := r.DB.ExecContext(
		ctx,
		query,
		exp.ResumeID,
		exp.Company,
		exp.Title,
		exp.StartDate,
		exp.EndDate,
		exp.Description,
		skills,
		exp.ID,
	)
	if err != nil {
		return err
	}
	affected, err := out.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an experience.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	out, err := r.DB.ExecContext(ctx, `DELETE FROM experiences WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := out.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByResume removes all experiences owned by a resume.
func (r *PGRepo) DeleteByResume(ctx context.Context, resumeID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM experiences WHERE resume_id = $1`, resumeID)
	return err
}

func (r *PGRepo) query(ctx context.Context, query string, args ...any) ([]Experience, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Experience{}
	for rows.Next() {
		exp, err := scanExperience(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, exp)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExperience(row rowScanner) (Experience, error) {
	var exp Experience
	var skills []byte
	if err := row.Scan(
		&exp.ID,
		&exp.ResumeID,
		&exp.Company,
		&exp.Title,
		&exp.StartDate,
		&exp.EndDate,
		&exp.Description,
		&skills,
	); err != nil {
		return Experience{}, err
	}
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &exp.SkillsUsed); err != nil {
			return Experience{}, err
		}
	}
	return exp, nil
}

func marshalSkills(skills []string) ([]byte, error) {
	if skills == nil {
		skills = []string{}
	}
	return json.Marshal(skills)
}

var _ Repo = (*PGRepo)(nil)
