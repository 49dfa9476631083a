package experiences

import (
	"context"

	"github.com/google/uuid"
)

// ParentChecker reports whether a parent resume exists.
type ParentChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Service contains business logic for experiences.
type Service struct {
	Repo    Repo
	Parents ParentChecker
}

// Create validates the parent resume and inserts a new experience.
func (s *Service) Create(ctx context.Context, exp Experience) (Experience, error) {
	if err := s.checkParent(ctx, exp.ResumeID); err != nil {
		return Experience{}, err
	}
	exp.ID = uuid.NewString()
	if err := s.Repo.Create(ctx, exp); err != nil {
		return Experience{}, err
	}
	return exp, nil
}

// Get returns one experience by id.
func (s *Service) Get(ctx context.Context, id string) (Experience, error) {
	return s.Repo.GetByID(ctx, id)
}

// List returns all experiences.
func (s *Service) List(ctx context.Context) ([]Experience, error) {
	return s.Repo.List(ctx)
}

// Update validates the parent resume and rewrites an existing experience.
func (s *Service) Update(ctx context.Context, exp Experience) (Experience, error) {
	if err := s.checkParent(ctx, exp.ResumeID); err != nil {
		return Experience{}, err
	}
	if err := s.Repo.Update(ctx, exp); err != nil {
		return Experience{}, err
	}
	return exp, nil
}

// Delete removes an experience.
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
