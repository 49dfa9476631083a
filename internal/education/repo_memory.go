package education

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Education
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Education)}
}

func (r *MemoryRepo) Create(ctx context.Context, edu Education) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[edu.ID] = edu
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Education, error) {
	if err := ctx.Err(); err != nil {
		return Education{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	edu, ok := r.data[id]
	if !ok {
		return Education{}, ErrNotFound
	}
	return edu, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Education, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Education, 0, len(r.data))
	for _, edu := range r.data {
		out = append(out, edu)
	}
	sortEducation(out)
	return out, nil
}

func (r *MemoryRepo) ListByResume(ctx context.Context, resumeID string) ([]Education, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Education{}
	for _, edu := range r.data {
		if edu.ResumeID == resumeID {
			out = append(out, edu)
		}
	}
	sortEducation(out)
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, edu Education) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[edu.ID]; !ok {
		return ErrNotFound
	}
	r.data[edu.ID] = edu
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
	for id, edu := range r.data {
		if edu.ResumeID == resumeID {
			delete(r.data, id)
		}
	}
	return nil
}

func sortEducation(out []Education) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartDate == out[j].StartDate {
			return out[i].ID < out[j].ID
		}
		return out[i].StartDate > out[j].StartDate
	})
}

var _ Repo = (*MemoryRepo)(nil)
