package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"lab-equipment-maintenance/internal/domain/notifications"
)

type notificationsRepo struct {
	mu   sync.RWMutex
	byID map[string]notifications.Notification
}

func NewNotificationsRepo() notifications.Repository {
	return &notificationsRepo{
		byID: make(map[string]notifications.Notification),
	}
}

func (r *notificationsRepo) Create(ctx context.Context, n notifications.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(n.ID) == "" {
		return errors.New("notification id required")
	}
	if _, exists := r.byID[n.ID]; exists {
		return errors.New("notification already exists")
	}
	r.byID[n.ID] = n
	return nil
}

func (r *notificationsRepo) Update(ctx context.Context, n notifications.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[n.ID]; !exists {
		return ErrNotFound
	}
	r.byID[n.ID] = n
	return nil
}

func (r *notificationsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *notificationsRepo) GetByID(ctx context.Context, id string) (notifications.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.byID[id]
	if !ok {
		return notifications.Notification{}, ErrNotFound
	}
	return n, nil
}

func (r *notificationsRepo) List(ctx context.Context) ([]notifications.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]notifications.Notification, 0, len(r.byID))
	for _, n := range r.byID {
		out = append(out, n)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}
