package projects

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres. technologies is stored as JSONB.
type PGRepo struct {
	DB *sql.DB
}

const projectColumns = `id, resume_id, name, description, technologies, url, start_date, end_date`

// Create inserts a new project.
func (r *PGRepo) Create(ctx context.Context, p Project) error {
	const query = `
INSERT INTO projects (
    id,
    resume_id,
    name,
    description,
    technologies,
    url,
    start_date,
    end_date
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	tech, err := marshalTechnologies(p.Technologies)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(
		ctx,
		query,
		p.ID,
		p.ResumeID,
		p.Name,
		p.Description,
		tech,
		p.URL,
		p.StartDate,
		p.EndDate,
	)
	return err
}

// GetByID fetches a project by id.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Project, error) {
	const query = `
SELECT ` + projectColumns + `
FROM projects
WHERE id = $1
LIMIT 1`
	p, err := scanProject(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Project{}, ErrNotFound
		}
		return Project{}, err
	}
	return p, nil
}

// List returns all projects, most recent start date first.
func (r *PGRepo) List(ctx context.Context) ([]Project, error) {
	const query = `
SELECT ` + projectColumns + `
FROM projects
ORDER BY start_date DESC, id`
	return r.query(ctx, query)
}

// ListByResume returns the projects owned by a resume.
func (r *PGRepo) ListByResume(ctx context.Context, resumeID string) ([]Project, error) {
	const query = `
SELECT ` + projectColumns + `
FROM projects
WHERE resume_id = $1
ORDER BY start_date DESC, id`
	return r.query(ctx, query, resumeID)
}

// Update rewrites an existing project.
func (r *PGRepo) Update(ctx context.Context, p Project) error {
	const query = `
UPDATE projects
SET resume_id = $1,
    name = $2,
    description = $3,
    technologies = $4,
    url = $5,
    start_date = $6,
    end_date = $7
WHERE id = $8`

	tech, err := marshalTechnologies(p.Technologies)
	if err != nil {
		return err
	}
	out, err := r.DB.ExecContext(
		ctx,
		query,
		p.ResumeID,
		p.Name,
		p.Description,
		tech,
		p.URL,
		p.StartDate,
		p.EndDate,
		p.ID,
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

// Delete removes a project.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	out, err := r.DB.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
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

// DeleteByResume removes all projects owned by a resume.
func (r *PGRepo) DeleteByResume(ctx context.Context, resumeID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM projects WHERE resume_id = $1`, resumeID)
	return err
}

func (r *PGRepo) query(ctx context.Context, query string, args ...any) ([]Project, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (Project, error) {
	var p Project
	var tech []byte
	if err := row.Scan(
		&p.ID,
		&p.ResumeID,
		&p.Name,
		&p.Description,
		&tech,
		&p.URL,
		&p.StartDate,
		&p.EndDate,
	); err != nil {
		return Project{}, err
	}
	if len(tech) > 0 {
		if err := json.Unmarshal(tech, &p.Technologies); err != nil {
			return Project{}, err
		}
	}
	return p, nil
}

func marshalTechnologies(tech []string) ([]byte, error) {
	if tech == nil {
		tech = []string{}
	}
	return json.Marshal(tech)
}

var _ Repo = (*PGRepo)(nil)
