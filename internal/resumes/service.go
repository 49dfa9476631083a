package resumes

import (
	"bytes"
	"context"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"candidate-backend/internal/shared/metrics"
	"candidate-backend/internal/shared/storage/object"
	"candidate-backend/internal/shared/telemetry"
)

// storageDir is the directory under the media root where resume files live.
// Identity documents go under their own subdirectories.
const (
	storageDir = "resumes"
	aadharDir  = "documents/aadhar"
	panDir     = "documents/pan"
)

// Service contains business logic for resumes.
type Service struct {
	Repo           Repo
	Store          object.ObjectStore
	Experiences    ExperienceSource
	Education      EducationSource
	Skills         SkillSource
	Projects       ProjectSource
	Certifications CertificationSource
	Validator      FileValidator // optional; applied to .pdf uploads
}

// Attachment is a named file stream submitted for storage.
type Attachment struct {
	FileName string
	File     io.Reader
}

// Upload saves the file to the object store and creates a pending resume
// referencing it. The file is written first; if the record insert fails the
// stored object is deleted best-effort.
func (s *Service) Upload(ctx context.Context, fileName string, r io.Reader) (Resume, error) {
	if fileName == "" {
		return Resume{}, ErrInvalidInput
	}

	r, err := s.checkFile(fileName, r)
	if err != nil {
		return Resume{}, err
	}

	key, size, checksum, err := s.Store.Save(ctx, storageDir, fileName, r)
	if err != nil {
		return Resume{}, err
	}

	now := time.Now().UTC()
	res := Resume{
		ID:               uuid.NewString(),
		FileKey:          key,
		OriginalFilename: fileName,
		SizeBytes:        size,
		Checksum:         checksum,
		Status:           StatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.Repo.Create(ctx, res); err != nil {
		s.removeFile(ctx, key)
		return Resume{}, err
	}

	metrics.ObserveUploadSizeBytes(float64(size))
	return res, nil
}

// Create inserts a resume from metadata with an optional attached file.
func (s *Service) Create(ctx context.Context, res Resume, fileName string, file io.Reader) (Resume, error) {
	now := time.Now().UTC()
	res.ID = uuid.NewString()
	res.Status = StatusPending
	res.CreatedAt = now
	res.UpdatedAt = now

	if fileName != "" {
		r, err := s.checkFile(fileName, file)
		if err != nil {
			return Resume{}, err
		}
		key, size, checksum, err := s.Store.Save(ctx, storageDir, fileName, r)
		if err != nil {
			return Resume{}, err
		}
		res.FileKey = key
		res.OriginalFilename = fileName
		res.SizeBytes = size
		res.Checksum = checksum
	}

	if err := s.Repo.Create(ctx, res); err != nil {
		if res.FileKey != "" {
			s.removeFile(ctx, res.FileKey)
		}
		return Resume{}, err
	}
	return res, nil
}

// Get returns one resume by id.
func (s *Service) Get(ctx context.Context, id string) (Resume, error) {
	return s.Repo.GetByID(ctx, id)
}

// List returns all resumes, newest first.
func (s *Service) List(ctx context.Context) ([]Resume, error) {
	return s.Repo.List(ctx)
}

// ListByStatus returns resumes whose status exactly matches.
func (s *Service) ListByStatus(ctx context.Context, status Status) ([]Resume, error) {
	if !status.Valid() {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByStatus(ctx, status)
}

// ChildrenOf gathers the child rows of a resume for detail responses.
func (s *Service) ChildrenOf(ctx context.Context, resumeID string) (Children, error) {
	var out Children
	var err error
	if out.Experience, err = s.Experiences.ListByResume(ctx, resumeID); err != nil {
		return Children{}, err
	}
	if out.Education, err = s.Education.ListByResume(ctx, resumeID); err != nil {
		return Children{}, err
	}
	if out.Skills, err = s.Skills.ListByResume(ctx, resumeID); err != nil {
		return Children{}, err
	}
	if out.Projects, err = s.Projects.ListByResume(ctx, resumeID); err != nil {
		return Children{}, err
	}
	if out.Certifications, err = s.Certifications.ListByResume(ctx, resumeID); err != nil {
		return Children{}, err
	}
	return out, nil
}

// Update persists changed metadata for an existing resume. When fileName is
// non-empty a replacement file is stored and the previous one removed.
func (s *Service) Update(ctx context.Context, res Resume, fileName string, file io.Reader) (Resume, error) {
	oldKey := res.FileKey

	if fileName != "" {
		r, err := s.checkFile(fileName, file)
		if err != nil {
			return Resume{}, err
		}
		key, size, checksum, err := s.Store.Save(ctx, storageDir, fileName, r)
		if err != nil {
			return Resume{}, err
		}
		res.FileKey = key
		res.OriginalFilename = fileName
		res.SizeBytes = size
		res.Checksum = checksum
	}

	res.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, res); err != nil {
		if fileName != "" {
			s.removeFile(ctx, res.FileKey)
		}
		return Resume{}, err
	}

	if fileName != "" && oldKey != "" && oldKey != res.FileKey {
		s.removeFile(ctx, oldKey)
	}
	return res, nil
}

// UpdateStatus moves a resume to the given status. Transitions are
// unconstrained within the closed status set. It returns the updated resume
// and the status it held before.
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) (Resume, Status, error) {
	if !status.Valid() {
		return Resume{}, "", ErrInvalidInput
	}

	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Resume{}, "", err
	}

	now := time.Now().UTC()
	if err := s.Repo.UpdateStatus(ctx, id, status, now); err != nil {
		return Resume{}, "", err
	}

	updated := existing
	updated.Status = status
	updated.UpdatedAt = now

	metrics.IncStatusTransition()
	telemetry.Info("resume.status_updated", map[string]any{
		"resume_id": id,
		"from":      string(existing.Status),
		"to":        string(status),
	})
	return updated, existing.Status, nil
}

// Delete removes a resume, its child rows and its stored file. The row
// deletion wins: a failed file removal is logged, not surfaced.
func (s *Service) Delete(ctx context.Context, id string) error {
	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.Experiences.DeleteByResume(ctx, id); err != nil {
		return err
	}
	if err := s.Education.DeleteByResume(ctx, id); err != nil {
		return err
	}
	if err := s.Skills.DeleteByResume(ctx, id); err != nil {
		return err
	}
	if err := s.Projects.DeleteByResume(ctx, id); err != nil {
		return err
	}
	if err := s.Certifications.DeleteByResume(ctx, id); err != nil {
		return err
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	for _, key := range []string{existing.FileKey, existing.AadharKey, existing.PanKey} {
		if key != "" {
			s.removeFile(ctx, key)
		}
	}
	return nil
}

// SubmitDocuments stores the provided identity documents and records their
// keys on the resume. A nil attachment leaves that document untouched; a
// replaced document's previous file is removed best-effort.
func (s *Service) SubmitDocuments(ctx context.Context, id string, aadhar, pan *Attachment) (Resume, error) {
	res, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Resume{}, err
	}

	oldAadhar, oldPan := res.AadharKey, res.PanKey
	saved := []string{}

	if aadhar != nil {
		key, _, _, err := s.Store.Save(ctx, aadharDir, aadhar.FileName, aadhar.File)
		if err != nil {
			return Resume{}, err
		}
		res.AadharKey = key
		saved = append(saved, key)
	}
	if pan != nil {
		key, _, _, err := s.Store.Save(ctx, panDir, pan.FileName, pan.File)
		if err != nil {
			for _, key := range saved {
				s.removeFile(ctx, key)
			}
			return Resume{}, err
		}
		res.PanKey = key
		saved = append(saved, key)
	}

	res.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, res); err != nil {
		for _, key := range saved {
			s.removeFile(ctx, key)
		}
		return Resume{}, err
	}

	if aadhar != nil && oldAadhar != "" {
		s.removeFile(ctx, oldAadhar)
	}
	if pan != nil && oldPan != "" {
		s.removeFile(ctx, oldPan)
	}

	telemetry.Info("resume.documents_submitted", map[string]any{
		"resume_id": id,
		"aadhar":    aadhar != nil,
		"pan":       pan != nil,
	})
	return res, nil
}

// OpenFile opens the stored resume file for streaming. ErrNotFound is
// returned when the resume has no file attached.
func (s *Service) OpenFile(ctx context.Context, res Resume) (io.ReadCloser, error) {
	if res.FileKey == "" {
		return nil, ErrNotFound
	}
	return s.Store.Open(ctx, res.FileKey)
}

// FileURL resolves the public URL of a resume's stored file, or "" when none.
func (s *Service) FileURL(res Resume) string {
	if res.FileKey == "" {
		return ""
	}
	return s.Store.PublicURL(res.FileKey)
}

// DocumentURLs resolves the public URLs of the stored identity documents.
// Either value is "" when that document has not been submitted.
func (s *Service) DocumentURLs(res Resume) (aadhar, pan string) {
	if res.AadharKey != "" {
		aadhar = s.Store.PublicURL(res.AadharKey)
	}
	if res.PanKey != "" {
		pan = s.Store.PublicURL(res.PanKey)
	}
	return aadhar, pan
}

func (s *Service) checkFile(fileName string, r io.Reader) (io.Reader, error) {
	if s.Validator == nil || !strings.EqualFold(path.Ext(fileName), ".pdf") {
		return r, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if err := s.Validator.Validate(fileName, data); err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

func (s *Service) removeFile(ctx context.Context, key string) {
	if err := s.Store.Delete(ctx, key); err != nil {
		telemetry.Error("resume.file_cleanup_failed", map[string]any{
			"storage_key": key,
			"err":         err.Error(),
		})
	}
}
