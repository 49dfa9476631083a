package skills

import "context"

// Repo abstracts skill persistence.
type Repo interface {
	Create(ctx context.Context, s Skill) error
	GetByID(ctx context.Context, id string) (Skill, error)
	List(ctx context.Context) ([]Skill, error)
	ListByResume(ctx context.Context, resumeID string) ([]Skill, error)
	Update(ctx context.Context, s Skill) error
	Delete(ctx context.Context, id string) error
	DeleteByResume(ctx context.Context, resumeID string) error
}
