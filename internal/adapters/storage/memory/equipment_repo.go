package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"lab-equipment-maintenance/internal/domain/equipment"
)

var (
	ErrNotFound = errors.New("not found")
)

type equipmentRepo struct {
	mu   sync.RWMutex
	byID map[string]equipment.Equipment
}

func NewEquipmentRepo() equipment.Repository {
	return &equipmentRepo{
		byID: make(map[string]equipment.Equipment),
	}
}

func (r *equipmentRepo) Create(ctx context.Context, e equipment.Equipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("equipment id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("equipment already exists")
	}
	r.byID[e.ID] = e
	return nil
}

func (r *equipmentRepo) Update(ctx context.Context, e equipment.Equipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("equipment id required")
	}
	current, exists := r.byID[e.ID]
	if !exists {
		return ErrNotFound
	}

	// el historial solo crece vía AppendRecord
	e.MaintenanceRecords = current.MaintenanceRecords
	r.byID[e.ID] = e
	return nil
}

func (r *equipmentRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *equipmentRepo) GetByID(ctx context.Context, id string) (equipment.Equipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return equipment.Equipment{}, ErrNotFound
	}
	return e, nil
}

func (r *equipmentRepo) List(ctx context.Context) ([]equipment.Equipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]equipment.Equipment, 0, len(r.byID))
	for _, e := range r.byID {
		out = append(out, e)
	}

	// Orden estable por created_at asc (solo para consistencia en dev)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *equipmentRepo) AppendRecord(ctx context.Context, equipmentID string, rec equipment.MaintenanceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byID[equipmentID]
	if !ok {
		return ErrNotFound
	}

	e.MaintenanceRecords = append(e.MaintenanceRecords, rec)
	r.byID[equipmentID] = e
	return nil
}
