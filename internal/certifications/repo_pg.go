package certifications

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const certificationColumns = `id, resume_id, name, issuer, issue_date, expiry_date, credential_id, credential_url`

func (r *PGRepo) Create(ctx context.Context, cert Certification) error {
	const query = `
INSERT INTO certifications (
    id,
    resume_id,
    name,
    issuer,
    issue_date,
    expiry_date,
    credential_id,
    credential_url
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		cert.ID,
		cert.ResumeID,
		cert.Name,
		cert.Issuer,
		cert.IssueDate,
		cert.ExpiryDate,
		cert.CredentialID,
		cert.CredentialURL,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Certification, error) {
	const query = `
SELECT ` + certificationColumns + `
FROM certifications
WHERE id = $1
LIMIT 1`
	cert, err := scanCertification(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Certification{}, ErrNotFound
		}
		return Certification{}, err
	}
	return cert, nil
}

// List returns all certifications, most recent issue date first.
func (r *PGRepo) List(ctx context.Context) ([]Certification, error) {
	const query = `
SELECT ` + certificationColumns + `
FROM certifications
ORDER BY issue_date DESC, id`
	return r.query(ctx, query)
}

func (r *PGRepo) ListByResume(ctx context.Context, resumeID string) ([]Certification, error) {
	const query = `
SELECT ` + certificationColumns + `
FROM certifications
WHERE resume_id = $1
ORDER BY issue_date DESC, id`
	return r.query(ctx, query, resumeID)
}

func (r *PGRepo) Update(ctx context.Context, cert Certification) error {
	const query = `
UPDATE certifications
SET resume_id = $1,
    name = $2,
    issuer = $3,
    issue_date = $4,
    expiry_date = $5,
    credential_id = $6,
    credential_url = $7
WHERE id = $8`

	out, err := r.DB.ExecContext(
		ctx,
		query,
		cert.ResumeID,
		cert.Name,
		cert.Issuer,
		cert.IssueDate,
		cert.ExpiryDate,
		cert.CredentialID,
		cert.CredentialURL,
		cert.ID,
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
	out, err := r.DB.ExecContext(ctx, `DELETE FROM certifications WHERE id = $1`, id)
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
	_, err := r.DB.ExecContext(ctx, `DELETE FROM certifications WHERE resume_id = $1`, resumeID)
	return err
}

func (r *PGRepo) query(ctx context.Context, query string, args ...any) ([]Certification, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Certification{}
	for rows.Next() {
		cert, err := scanCertification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cert)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCertification(row rowScanner) (Certification, error) {
	var cert Certification
	if err := row.Scan(
		&cert.ID,
		&cert.ResumeID,
		&cert.Name,
		&cert.Issuer,
		&cert.IssueDate,
		&cert.ExpiryDate,
		&cert.CredentialID,
		&cert.CredentialURL,
	); err != nil {
		return Certification{}, err
	}
	return cert, nil
}

var _ Repo = (*PGRepo)(nil)
