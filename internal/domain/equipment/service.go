package equipment

import (
	"context"
	"errors"
	"strings"
	"time"

	"lab-equipment-maintenance/internal/domain/access"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("equipment not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name  string
	Brand string
	Model string

	LocationBuilding string
	LocationUnit     string

	LastMaintenanceDate *time.Time
	LastCalibrationDate *time.Time

	Frequency          FrequencyPayload
	CustomInstructions string
	Criticality        string

	AssignedUserID string
}

func (s *Service) Create(ctx context.Context, actor access.Actor, in CreateInput) (Equipment, error) {
	name := strings.TrimSpace(in.Name)
	unit := strings.TrimSpace(in.LocationUnit)
	if name == "" || unit == "" {
		return Equipment{}, ErrInvalidInput
	}

	crit, ok := parseCriticality(in.Criticality)
	if !ok {
		return Equipment{}, ErrInvalidInput
	}

	if !access.CanManageEquipment(actor, unit) {
		return Equipment{}, ErrForbidden
	}

	now := s.now()
	e := Equipment{
		ID:                   uuid.NewString(),
		Name:                 name,
		Brand:                strings.TrimSpace(in.Brand),
		Model:                strings.TrimSpace(in.Model),
		LocationBuilding:     strings.TrimSpace(in.LocationBuilding),
		LocationUnit:         unit,
		LastMaintenanceDate:  in.LastMaintenanceDate,
		LastCalibrationDate:  in.LastCalibrationDate,
		MaintenanceFrequency: NormalizeFrequency(in.Frequency),
		CustomInstructions:   strings.TrimSpace(in.CustomInstructions),
		Criticality:          crit,
		AssignedUserID:       strings.TrimSpace(in.AssignedUserID),
		MaintenanceRecords:   []MaintenanceRecord{},
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return Equipment{}, err
	}
	return e, nil
}

// Update reemplaza los campos mutables (metadata, fechas, frecuencia,
// encargado). El historial de mantención no se toca por esta vía.
func (s *Service) Update(ctx context.Context, actor access.Actor, id string, in CreateInput) (Equipment, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Equipment{}, ErrNotFound
	}

	name := strings.TrimSpace(in.Name)
	unit := strings.TrimSpace(in.LocationUnit)
	if name == "" || unit == "" {
		return Equipment{}, ErrInvalidInput
	}

	crit, ok := parseCriticality(in.Criticality)
	if !ok {
		return Equipment{}, ErrInvalidInput
	}

	// Debe poder gestionar la unidad actual y la de destino: un jefe
	// de unidad no mueve equipos hacia unidades ajenas.
	if !access.CanManageEquipment(actor, current.LocationUnit) || !access.CanManageEquipment(actor, unit) {
		return Equipment{}, ErrForbidden
	}

	current.Name = name
	current.Brand = strings.TrimSpace(in.Brand)
	current.Model = strings.TrimSpace(in.Model)
	current.LocationBuilding = strings.TrimSpace(in.LocationBuilding)
	current.LocationUnit = unit
	current.LastMaintenanceDate = in.LastMaintenanceDate
	current.LastCalibrationDate = in.LastCalibrationDate
	current.MaintenanceFrequency = NormalizeFrequency(in.Frequency)
	current.CustomInstructions = strings.TrimSpace(in.CustomInstructions)
	current.Criticality = crit
	current.AssignedUserID = strings.TrimSpace(in.AssignedUserID)
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return Equipment{}, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, actor access.Actor, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return ErrNotFound
	}
	if !access.CanDeleteEquipment(actor) {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

type RecordInput struct {
	Date        time.Time
	Description string
	PerformedBy string
	Attachments []Attachment
}

// AddMaintenanceRecord agrega una mantención realizada al historial y
// actualiza LastMaintenanceDate si la nueva fecha es más reciente.
func (s *Service) AddMaintenanceRecord(ctx context.Context, actor access.Actor, equipmentID string, in RecordInput) (Equipment, error) {
	current, err := s.repo.GetByID(ctx, equipmentID)
	if err != nil {
		return Equipment{}, ErrNotFound
	}

	if !access.CanManageEquipment(actor, current.LocationUnit) {
		return Equipment{}, ErrForbidden
	}

	if in.Date.IsZero() || strings.TrimSpace(in.Description) == "" {
		return Equipment{}, ErrInvalidInput
	}

	rec := MaintenanceRecord{
		ID:          uuid.NewString(),
		Date:        in.Date,
		Description: strings.TrimSpace(in.Description),
		PerformedBy: strings.TrimSpace(in.PerformedBy),
		Attachments: in.Attachments,
	}

	if err := s.repo.AppendRecord(ctx, equipmentID, rec); err != nil {
		return Equipment{}, err
	}

	if current.LastMaintenanceDate == nil || rec.Date.After(*current.LastMaintenanceDate) {
		d := rec.Date
		current.LastMaintenanceDate = &d
		current.UpdatedAt = s.now()
		if err := s.repo.Update(ctx, current); err != nil {
			return Equipment{}, err
		}
	}

	return s.repo.GetByID(ctx, equipmentID)
}

// GetForActor devuelve el equipo proyectado si el actor puede verlo.
func (s *Service) GetForActor(ctx context.Context, actor access.Actor, id string) (Projected, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Projected{}, ErrNotFound
	}

	ok, err := access.CanSeeEquipment(actor, e.LocationUnit, e.AssignedUserID)
	if err != nil {
		return Projected{}, err
	}
	if !ok {
		return Projected{}, ErrForbidden
	}

	return Project(e, s.now()), nil
}

// ListForActor devuelve los equipos visibles para el actor, ya
// proyectados con un mismo instante para toda la colección.
func (s *Service) ListForActor(ctx context.Context, actor access.Actor) ([]Projected, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	scoped, err := ScopeForActor(actor, items)
	if err != nil {
		return nil, err
	}

	return ProjectAll(scoped, s.now()), nil
}

func parseCriticality(raw string) (Criticality, bool) {
	switch Criticality(strings.ToUpper(strings.TrimSpace(raw))) {
	case CriticalityLow:
		return CriticalityLow, true
	case CriticalityMedium:
		return CriticalityMedium, true
	case CriticalityHigh:
		return CriticalityHigh, true
	default:
		return "", false
	}
}
