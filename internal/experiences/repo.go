package experiences

import "context"

// Repo defines persistence operations for experiences.
type Repo interface {
	Create(ctx context.Context, exp Experience) error
	GetByID(ctx context.Context, id string) (Experience, error)
	List(ctx context.Context) ([]Experience, error)
	ListByResume(ctx context.Context, resumeID string) ([]Experience, error)
	Update(ctx context.Context, exp Experience) error
	Delete(ctx context.Context, id string) error
	DeleteByResume(ctx context.Context, resumeID string) error
}
