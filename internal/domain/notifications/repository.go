package notifications

import "context"

type Repository interface {
	Create(ctx context.Context, n Notification) error
	Update(ctx context.Context, n Notification) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Notification, error)
	List(ctx context.Context) ([]Notification, error)
}
