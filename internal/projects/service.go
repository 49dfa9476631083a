package projects

import (
	"context"

	"github.com/google/uuid"
)

// ParentChecker reports whether a parent resume exists.
type ParentChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Service contains business logic for projects.
type Service struct {
	Repo    Repo
	Parents ParentChecker
}

// Create validates the parent resume and inserts a new project.
func (s *Service) Create(ctx context.Context, p Project) (Project, error) {
	if err := s.checkParent(ctx, p.ResumeID); err != nil {
		return Project{}, err
	}
	p.ID = uuid.NewString()
	if err := s.Repo.Create(ctx, p); err != nil {
		return Project{}, err
	}
	return p, nil
}

// Get returns one project by id.
func (s *Service) Get(ctx context.Context, id string) (Project, error) {
	return s.Repo.GetByID(ctx, id)
}

// List returns all projects.
func (s *Service) List(ctx context.Context) ([]Project, error) {
	return s.Repo.List(ctx)
}

// Update validates the parent resume and rewrites an existing project.
func (s *Service) Update(ctx context.Context, p Project) (Project, error) {
	if err := s.checkParent(ctx, p.ResumeID); err != nil {
		return Project{}, err
	}
	if err := s.Repo.Update(ctx, p); err != nil {
		return Project{}, err
	}
	return p, nil
}

// Delete removes a project.
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
