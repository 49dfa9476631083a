package education

import (
	"context"

	"github.com/google/uuid"
)

// ParentChecker reports whether a parent resume exists.
type ParentChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Service contains business logic for education entries.
type Service struct {
	Repo    Repo
	Parents ParentChecker
}

// Create validates the parent resume and inserts a new entry.
func (s *Service) Create(ctx context.Context, edu Education) (Education, error) {
	if err := s.checkParent(ctx, edu.ResumeID); err != nil {
		return Education{}, err
	}
	edu.ID = uuid.NewString()
	if err := s.Repo.Create(ctx, edu); err != nil {
		return Education{}, err
	}
	return edu, nil
}

func (s *Service) Get(ctx context.Context, id string) (Education, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Education, error) {
	return s.Repo.List(ctx)
}

// Update validates the parent resume and rewrites an existing entry.
func (s *Service) Update(ctx context.Context, edu Education) (Education, error) {
	if err := s.checkParent(ctx, edu.ResumeID); err != nil {
		return Education{}, err
	}
	if err := s.Repo.Update(ctx, edu); err != nil {
		return Education{}, err
	}
	return edu, nil
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
