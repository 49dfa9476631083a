package skills

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const skillColumns = `id, resume_id, name, proficiency, category`

// Create inserts a new skill.
func (r *PGRepo) Create(ctx context.Context, s Skill) error {
	const query = `
INSERT INTO skills (
    id,
    resume_id,
    name,
    proficiency,
    category
) VALUES ($1, $2, $3, $4, $5)`

	_, err := r.DB.ExecContext(ctx, query, s.ID, s.ResumeID, s.Name, s.Proficiency, s.Category)
	return err
}

// GetByID fetches a skill by id.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Skill, error) {
	const query = `
SELECT ` + skillColumns + `
FROM skills
WHERE id = $1
LIMIT 1`
	s, err := scanSkill(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Skill{}, ErrNotFound
		}
		return Skill{}, err
	}
	return s, nil
}

// List returns all skills ordered by name.
func (r *PGRepo) List(ctx context.Context) ([]Skill, error) {
	const query = `
SELECT ` + skillColumns + `
FROM skills
ORDER BY name, id`
	return r.query(ctx, query)
}

// ListByResume returns the skills owned by a resume.
func (r *PGRepo) ListByResume(ctx context.Context, resumeID string) ([]Skill, error) {
	const query = `
SELECT ` + skillColumns + `
FROM skills
WHERE resume_id = $1
ORDER BY name, id`
	return r.query(ctx, query, resumeID)
}

// Update rewrites an existing skill.
func (r *PGRepo) Update(ctx context.Context, s Skill) error {
	const query = `
UPDATE skills
SET resume_id = $1,
    name = $2,
    proficiency = $3,
    category = $4
WHERE id = $5`

	out, err := r.DB.ExecContext(ctx, query, s.ResumeID, s.Name, s.Proficiency, s.Category, s.ID)
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

// Delete removes a skill.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	out, err := r.DB.ExecContext(ctx, `DELETE FROM skills WHERE id = $1`, id)
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

// DeleteByResume removes all skills owned by a resume.
func (r *PGRepo) DeleteByResume(ctx context.Context, resumeID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM skills WHERE resume_id = $1`, resumeID)
	return err
}

func (r *PGRepo) query(ctx context.Context, query string, args ...any) ([]Skill, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Skill{}
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSkill(row rowScanner) (Skill, error) {
	var s Skill
	if err := row.Scan(&s.ID, &s.ResumeID, &s.Name, &s.Proficiency, &s.Category); err != nil {
		return Skill{}, err
	}
	return s, nil
}

var _ Repo = (*PGRepo)(nil)
