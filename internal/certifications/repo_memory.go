package certifications

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Certification
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Certification)}
}

func (r *MemoryRepo) Create(ctx context.Context, cert Certification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[cert.ID] = cert
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Certification, error) {
	if err := ctx.Err(); err != nil {
		return Certification{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	cert, ok := r.data[id]
	if !ok {
		return Certification{}, ErrNotFound
	}
	return cert, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Certification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Certification, 0, len(r.data))
	for _, cert := range r.data {
		out = append(out, cert)
	}
	sortCertifications(out)
	return out, nil
}

func (r *MemoryRepo) ListByResume(ctx context.Context, resumeID string) ([]Certification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Certification{}
	for _, cert := range r.data {
		if cert.ResumeID == resumeID {
			out = append(out, cert)
		}
	}
	sortCertifications(out)
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, cert Certification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[cert.ID]; !ok {
		return ErrNotFound
	}
	r.data[cert.ID] = cert
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return ErrNotFound
	}
	delete(r.data, id)
	return nil
}

func (r *MemoryRepo) DeleteByResume(ctx context.Context, resumeID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, cert := range r.data {
		if cert.ResumeID == resumeID {
			delete(r.data, id)
		}
	}
	return nil
}

func sortCertifications(out []Certification) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].IssueDate == out[j].IssueDate {
			return out[i].ID < out[j].ID
		}
		return out[i].IssueDate > out[j].IssueDate
	})
}

var _ Repo = (*MemoryRepo)(nil)
