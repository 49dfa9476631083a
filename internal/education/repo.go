package education

import "context"

// Repo defines persistence operations for education entries.
type Repo interface {
	Create(ctx context.Context, edu Education) error
	GetByID(ctx context.Context, id string) (Education, error)
	List(ctx context.Context) ([]Education, error)
	ListByResume(ctx context.Context, resumeID string) ([]Education, error)
	Update(ctx context.Context, edu Education) error
	Delete(ctx context.Context, id string) error
	DeleteByResume(ctx context.Context, resumeID string) error
}
