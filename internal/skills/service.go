package skills

import (
	"context"

	"github.com/google/uuid"
)

// ParentChecker reports whether a parent resume exists.
type ParentChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Service contains business logic for skills.
type Service struct {
	Repo    Repo
	Parents ParentChecker
}

// Create validates the parent resume and inserts a new skill.
func (s *Service) Create(ctx context.Context, skill Skill) (Skill, error) {
	if err := s.checkParent(ctx, skill.ResumeID); err != nil {
		return Skill{}, err
	}
	skill.ID = uuid.NewString()
	if err := s.Repo.Create(ctx, skill); err != nil {
		return Skill{}, err
	}
	return skill, nil
}

// Get returns one skill by id.
func (s *Service) Get(ctx context.Context, id string) (Skill, error) {
	return s.Repo.GetByID(ctx, id)
}

// List returns all skills.
func (s *Service) List(ctx context.Context) ([]Skill, error) {
	return s.Repo.List(ctx)
}

// Update validates the parent resume and rewrites an existing skill.
func (s *Service) Update(ctx context.Context, skill Skill) (Skill, error) {
	if err := s.checkParent(ctx, skill.ResumeID); err != nil {
		return Skill{}, err
	}
	if err := s.Repo.Update(ctx, skill); err != nil {
		return Skill{}, err
	}
	return skill, nil
}

// Delete removes a skill.
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
