package education

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const educationColumns = `id, resume_id, institution, degree, start_date, end_date, gpa, description`

func (r *PGRepo) Create(ctx context.Context, edu Education) error {
	const query = `
INSERT INTO education (
    id,
    resume_id,
    institution,
    degree,
    start_date,
    end_date,
    gpa,
    description
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.ExecContext(
		ctx,
		query,
		edu.ID,
		edu.ResumeID,
		edu.Institution,
		edu.Degree,
		edu.StartDate,
		edu.EndDate,
		edu.GPA,
		edu.Description,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Education, error) {
	const query = `
SELECT ` + educationColumns + `
FROM education
WHERE id = $1
LIMIT 1`
	edu, err := scanEducation(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Education{}, ErrNotFound
		}
		return Education{}, err
	}
	return edu, nil
}

func (r *PGRepo) List(ctx context.Context) ([]Education, error) {
	const query = `
SELECT ` + educationColumns + `
FROM education
ORDER BY start_date DESC, id`
	return r.query(ctx, query)
}

func (r *PGRepo) ListByResume(ctx context.Context, resumeID string) ([]Education, error) {
	const query = `
SELECT ` + educationColumns + `
FROM education
WHERE resume_id = $1
ORDER BY start_date DESC, id`
	return r.query(ctx, query, resumeID)
}

func (r *PGRepo) Update(ctx context.Context, edu Education) error {
	const query = `
UPDATE education
SET resume_id = $1,
    institution = $2,
    degree = $3,
    start_date = $4,
    end_date = $5,
    gpa = $6,
    description = $7
WHERE id = $8`
	out, err := r.DB.ExecContext(
		ctx,
		query,
		edu.ResumeID,
		edu.Institution,
		edu.Degree,
		edu.StartDate,
		edu.EndDate,
		edu.GPA,
		edu.Description,
		edu.ID,
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

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	out, err := r.DB.ExecContext(ctx, `DELETE FROM education WHERE id = $1`, id)
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

func (r *PGRepo) DeleteByResume(ctx context.Context, resumeID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM education WHERE resume_id = $1`, resumeID)
	return err
}

func (r *PGRepo) query(ctx context.Context, query string, args ...any) ([]Education, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Education{}
	for rows.Next() {
		edu, err := scanEducation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, edu)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEducation(row rowScanner) (Education, error) {
	var edu Education
	if err := row.Scan(
		&edu.ID,
		&edu.ResumeID,
		&edu.Institution,
		&edu.Degree,
		&edu.StartDate,
		&edu.EndDate,
		&edu.GPA,
		&edu.Description,
	); err != nil {
		return Education{}, err
	}
	return edu, nil
}

var _ Repo = (*PGRepo)(nil)
