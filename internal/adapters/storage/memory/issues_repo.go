package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"lab-equipment-maintenance/internal/domain/issues"
)

type issuesRepo struct {
	mu   sync.RWMutex
	byID map[string]issues.IssueReport
}

func NewIssuesRepo() issues.Repository {
	return &issuesRepo{
		byID: make(map[string]issues.IssueReport),
	}
}

func (r *issuesRepo) Create(ctx context.Context, ir issues.IssueReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(ir.ID) == "" {
		return errors.New("issue id required")
	}
	if _, exists := r.byID[ir.ID]; exists {
		return errors.New("issue already exists")
	}
	r.byID[ir.ID] = ir
	return nil
}

func (r *issuesRepo) Update(ctx context.Context, ir issues.IssueReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(ir.ID) == "" {
		return errors.New("issue id required")
	}
	if _, exists := r.byID[ir.ID]; !exists {
		return ErrNotFound
	}
	r.byID[ir.ID] = ir
	return nil
}

func (r *issuesRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *issuesRepo) GetByID(ctx context.Context, id string) (issues.IssueReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ir, ok := r.byID[id]
	if !ok {
		return issues.IssueReport{}, ErrNotFound
	}
	return ir, nil
}

func (r *issuesRepo) List(ctx context.Context) ([]issues.IssueReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]issues.IssueReport, 0, len(r.byID))
	for _, ir := range r.byID {
		out = append(out, ir)
	}

	// más recientes primero, como el listado de la UI
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DateTime.Equal(out[j].DateTime) {
			return out[i].DateTime.After(out[j].DateTime)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}
