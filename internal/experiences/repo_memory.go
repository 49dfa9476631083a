package experiences

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Experience
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Experience)}
}

func (r *MemoryRepo) Create(ctx context.Context, exp Experience) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[exp.ID] = exp
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Experience, error) {
	if err := ctx.Err(); err != nil {
		return Experience{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	exp, ok := r.data[id]
	if !ok {
		return Experience{}, ErrNotFound
	}
	return exp, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Experience, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Experience, 0, len(r.data))
	for _, exp := range r.data {
		out = append(out, exp)
	}
	sortExperiences(out)
	return out, nil
}

func (r *MemoryRepo) ListByResume(ctx context.Context, resumeID string) ([]Experience, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Experience{}
	for _, exp := range r.data {
		if exp.ResumeID == resumeID {
			out = append(out, exp)
		}
	}
	sortExperiences(out)
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, exp Experience) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[exp.ID]; !ok {
		return ErrNotFound
	}
	r.data[exp.ID] = exp
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
	for id, exp := range r.data {
		if exp.ResumeID == resumeID {
			delete(r.data, id)
		}
	}
	return nil
}

func sortExperiences(out []Experience) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartDate == out[j].StartDate {
			return out[i].ID < out[j].ID
		}
		return out[i].StartDate > out[j].StartDate
	})
}

var _ Repo = (*MemoryRepo)(nil)
