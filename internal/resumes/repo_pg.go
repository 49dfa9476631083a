package resumes

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, full_name, email, phone, location, linkedin_url, github_url, summary, resume_file, original_filename, size_bytes, checksum, aadhar_document, pan_document, status, created_at, updated_at`

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// Create inserts a new resume.
func (r *PGRepo) Create(ctx context.Context, res Resume) error {
	const query = `
INSERT INTO resumes (
    id,
    full_name,
    email,
    phone,
    location,
    linkedin_url,
    github_url,
    summary,
    resume_file,
    original_filename,
    size_bytes,
    checksum,
    aadhar_document,
    pan_document,
    status,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	status := res.Status
	if status == "" {
		status = StatusPending
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		res.ID,
		res.FullName,
		res.Email,
		res.Phone,
		res.Location,
		res.LinkedInURL,
		res.GitHubURL,
		res.Summary,
		nullable(res.FileKey),
		res.OriginalFilename,
		res.SizeBytes,
		res.Checksum,
		nullable(res.AadharKey),
		nullable(res.PanKey),
		status,
		res.CreatedAt,
		res.UpdatedAt,
	)
	return err
}

// GetByID fetches a resume by id.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Resume, error) {
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
WHERE id = $1
LIMIT 1`
	res, err := scanResume(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return res, nil
}

// List returns all resumes, newest first.
func (r *PGRepo) List(ctx context.Context) ([]Resume, error) {
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
ORDER BY created_at DESC`
	return r.queryResumes(ctx, query)
}

// ListByStatus returns resumes with an exact status match, newest first.
func (r *PGRepo) ListByStatus(ctx context.Context, status Status) ([]Resume, error) {
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
WHERE status = $1
ORDER BY created_at DESC`
	return r.queryResumes(ctx, query, status)
}

// Update rewrites all mutable columns of an existing resume.
func (r *PGRepo) Update(ctx context.Context, res Resume) error {
	const query = `
UPDATE resumes
SET full_name = $1,
    email = $2,
    phone = $3,
    location = $4,
    linkedin_url = $5,
    github_url = $6,
    summary = $7,
    resume_file = $8,
    original_filename = $9,
    size_bytes = $10,
    checksum = $11,
    aadhar_document = $12,
    pan_document = $13,
    updated_at = $14
WHERE id = $15`

	out, err := r.DB.ExecContext(
		ctx,
		query,
		res.FullName,
		res.Email,
		res.Phone,
		res.Location,
		res.LinkedInURL,
		res.GitHubURL,
		res.Summary,
		nullable(res.FileKey),
		res.OriginalFilename,
		res.SizeBytes,
		res.Checksum,
		nullable(res.AadharKey),
		nullable(res.PanKey),
		res.UpdatedAt,
		res.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(out)
}

// UpdateStatus performs the targeted status transition update.
func (r *PGRepo) UpdateStatus(ctx context.Context, id string, status Status, updatedAt time.Time) error {
	const query = `
UPDATE resumes
SET status = $1, updated_at = $2
WHERE id = $3`
	out, err := r.DB.ExecContext(ctx, query, status, updatedAt, id)
	if err != nil {
		return err
	}
	return requireRow(out)
}

// Delete removes a resume row; child rows cascade via foreign keys.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM resumes WHERE id = $1`
	out, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return requireRow(out)
}

// Exists reports whether a resume row exists.
func (r *PGRepo) Exists(ctx context.Context, id string) (bool, error) {
	const query = `SELECT 1 FROM resumes WHERE id = $1 LIMIT 1`
	var one int
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *PGRepo) queryResumes(ctx context.Context, query string, args ...any) ([]Resume, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Resume{}
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var res Resume
	var fileKey, aadharKey, panKey sql.NullString
	if err := row.Scan(
		&res.ID,
		&res.FullName,
		&res.Email,
		&res.Phone,
		&res.Location,
		&res.LinkedInURL,
		&res.GitHubURL,
		&res.Summary,
		&fileKey,
		&res.OriginalFilename,
		&res.SizeBytes,
		&res.Checksum,
		&aadharKey,
		&panKey,
		&res.Status,
		&res.CreatedAt,
		&res.UpdatedAt,
	); err != nil {
		return Resume{}, err
	}
	res.FileKey = fileKey.String
	res.AadharKey = aadharKey.String
	res.PanKey = panKey.String
	return res, nil
}

func requireRow(out sql.Result) error {
	affected, err := out.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
