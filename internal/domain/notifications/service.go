package notifications

import (
	"context"
	"errors"
	"strings"

	"lab-equipment-maintenance/internal/domain/access"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("notification not found")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List devuelve el feed completo; las notificaciones son globales.
func (s *Service) List(ctx context.Context, actor access.Actor) ([]Notification, error) {
	if strings.TrimSpace(actor.ID) == "" {
		return nil, ErrForbidden
	}
	return s.repo.List(ctx)
}

// MarkRead es idempotente: marcar leída una notificación ya leída no
// es un error.
func (s *Service) MarkRead(ctx context.Context, actor access.Actor, id string) (Notification, error) {
	if strings.TrimSpace(actor.ID) == "" {
		return Notification{}, ErrForbidden
	}

	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Notification{}, ErrNotFound
	}
	if n.IsRead {
		return n, nil
	}

	n.IsRead = true
	if err := s.repo.Update(ctx, n); err != nil {
		return Notification{}, err
	}
	return n, nil
}

func (s *Service) Delete(ctx context.Context, actor access.Actor, id string) error {
	if !access.CanDeleteNotification(actor) {
		return ErrForbidden
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
