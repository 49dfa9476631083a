package projects

import "context"

// Repo abstracts project persistence.
type Repo interface {
	Create(ctx context.Context, p Project) error
	GetByID(ctx context.Context, id string) (Project, error)
	List(ctx context.Context) ([]Project, error)
	ListByResume(ctx context.Context, resumeID string) ([]Project, error)
	Update(ctx context.Context, p Project) error
	Delete(ctx context.Context, id string) error
	DeleteByResume(ctx context.Context, resumeID string) error
}
