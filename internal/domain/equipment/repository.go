package equipment

import "context"

type Repository interface {
	Create(ctx context.Context, e Equipment) error
	Update(ctx context.Context, e Equipment) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Equipment, error)
	List(ctx context.Context) ([]Equipment, error)

	// AppendRecord agrega una entrada al historial (append-only).
	AppendRecord(ctx context.Context, equipmentID string, rec MaintenanceRecord) error
}
