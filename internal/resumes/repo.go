package resumes

import (
	"context"
	"time"
)

// Repo defines persistence operations for resumes.
type Repo interface {
	Create(ctx context.Context, res Resume) error
	GetByID(ctx context.Context, id string) (Resume, error)
	List(ctx context.Context) ([]Resume, error)
	ListByStatus(ctx context.Context, status Status) ([]Resume, error)
	Update(ctx context.Context, res Resume) error
	UpdateStatus(ctx context.Context, id string, status Status, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}
