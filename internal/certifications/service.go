package certifications

import (
	"context"

	"github.com/google/uuid"
)

// ParentChecker reports whether a parent resume exists.
type ParentChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Service contains business logic for certifications.
type Service struct {
	Repo    Repo
	Parents ParentChecker
}

func (s *Service) Create(ctx context.Context, cert Certification) (Certification, error) {
	if err := s.checkParent(ctx, cert.ResumeID); err != nil {
		return Certification{}, err
	}
	cert.ID = uuid.NewString()
	if err := s.Repo.Create(ctx, cert); err != nil {
		return Certification{}, err
	}
	return cert, nil
}

func (s *Service) Get(ctx context.Context, id string) (Certification, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Certification, error) {
	return s.Repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, cert Certification) (Certification, error) {
	if err := s.checkParent(ctx, cert.ResumeID); err != nil {
		return Certification{}, err
	}
	if err := s.Repo.Update(ctx, cert); err != nil {
		return Certification{}, err
	}
	return cert, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

func (s *Service) checkParent(ctx context.Context, resumeID string) error {
	ok, err := s.Parents.Exists(ctx, resumeID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrParentNotFound
	}
	return nil
}
