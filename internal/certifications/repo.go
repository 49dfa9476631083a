package certifications

import "context"

// Repo abstracts certification persistence.
type Repo interface {
	Create(ctx context.Context, cert Certification) error
	GetByID(ctx context.Context, id string) (Certification, error)
	List(ctx context.Context) ([]Certification, error)
	ListByResume(ctx context.Context, resumeID string) ([]Certification, error)
	Update(ctx context.Context, cert Certification) error
	Delete(ctx context.Context, id string) error
	DeleteByResume(ctx context.Context, resumeID string) error
}
