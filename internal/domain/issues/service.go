package issues

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
	ErrNotFound     = errors.New("issue not found")

	// ErrEquipmentNotFound distingue "la incidencia no existe" de
	// "el equipo referenciado no existe" al crear.
	ErrEquipmentNotFound = errors.New("equipment not found")
)

// EquipmentLookup evita importar el paquete equipment (rompe ciclos).
// Lo implementa equipment.Service.
type EquipmentLookup interface {
	VisibleEquipmentIDs(ctx context.Context, actor access.Actor) (map[string]struct{}, error)
	UnitOf(ctx context.Context, equipmentID string) (string, error)
}

type Service struct {
	repo      Repository
	equipment EquipmentLookup
	now       func() time.Time
}

func NewService(repo Repository, equipment EquipmentLookup) *Service {
	return &Service{
		repo:      repo,
		equipment: equipment,
		now:       time.Now,
	}
}

type CreateInput struct {
	EquipmentID string
	Description string
	Severity    string
	Attachments []Attachment
}

// Create registra una incidencia nueva. Cualquier actor autenticado
// puede reportar; el estado inicial siempre es OPEN y la fecha la pone
// el servidor.
func (s *Service) Create(ctx context.Context, actor access.Actor, in CreateInput) (IssueReport, error) {
	if !access.CanCreateIssue(actor) {
		return IssueReport{}, ErrForbidden
	}

	equipmentID := strings.TrimSpace(in.EquipmentID)
	description := strings.TrimSpace(in.Description)
	if equipmentID == "" || description == "" {
		return IssueReport{}, ErrInvalidInput
	}

	sev, ok := parseSeverity(in.Severity)
	if !ok {
		return IssueReport{}, ErrInvalidInput
	}

	if _, err := s.equipment.UnitOf(ctx, equipmentID); err != nil {
		return IssueReport{}, ErrEquipmentNotFound
	}

	ir := IssueReport{
		ID:          uuid.NewString(),
		EquipmentID: equipmentID,
		ReportedBy:  actor.ID,
		DateTime:    s.now(),
		Description: description,
		Severity:    sev,
		Status:      StatusOpen,
		Attachments: in.Attachments,
	}

	if err := s.repo.Create(ctx, ir); err != nil {
		return IssueReport{}, err
	}
	return ir, nil
}

type UpdateInput struct {
	Description string
	Severity    string
	Status      string
}

// Update edita los campos mutables (descripción, gravedad, estado).
// Permitido para ADMIN, o UNIT_MANAGER de la unidad del equipo.
func (s *Service) Update(ctx context.Context, actor access.Actor, id string, in UpdateInput) (IssueReport, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return IssueReport{}, ErrNotFound
	}

	unit, err := s.equipment.UnitOf(ctx, current.EquipmentID)
	if err != nil {
		return IssueReport{}, ErrEquipmentNotFound
	}
	if !access.CanManageIssue(actor, unit) {
		return IssueReport{}, ErrForbidden
	}

	description := strings.TrimSpace(in.Description)
	if description == "" {
		return IssueReport{}, ErrInvalidInput
	}
	sev, ok := parseSeverity(in.Severity)
	if !ok {
		return IssueReport{}, ErrInvalidInput
	}
	st, ok := parseStatus(in.Status)
	if !ok {
		return IssueReport{}, ErrInvalidInput
	}

	current.Description = description
	current.Severity = sev
	current.Status = st

	if err := s.repo.Update(ctx, current); err != nil {
		return IssueReport{}, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, actor access.Actor, id string) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}

	unit, err := s.equipment.UnitOf(ctx, current.EquipmentID)
	if err != nil {
		return ErrEquipmentNotFound
	}
	if !access.CanManageIssue(actor, unit) {
		return ErrForbidden
	}

	return s.repo.Delete(ctx, id)
}

// GetForActor devuelve la incidencia si el equipo referenciado es
// visible para el actor.
func (s *Service) GetForActor(ctx context.Context, actor access.Actor, id string) (IssueReport, error) {
	ir, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return IssueReport{}, ErrNotFound
	}

	visible, err := s.equipment.VisibleEquipmentIDs(ctx, actor)
	if err != nil {
		return IssueReport{}, err
	}
	if _, ok := visible[ir.EquipmentID]; !ok && actor.Role != access.RoleAdmin {
		return IssueReport{}, ErrForbidden
	}

	return ir, nil
}

// ListForActor devuelve las incidencias visibles, más recientes primero.
func (s *Service) ListForActor(ctx context.Context, actor access.Actor) ([]IssueReport, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	visible, err := s.equipment.VisibleEquipmentIDs(ctx, actor)
	if err != nil {
		return nil, err
	}

	return ScopeForActor(actor, items, visible)
}

func parseSeverity(raw string) (Severity, bool) {
	switch Severity(strings.ToUpper(strings.TrimSpace(raw))) {
	case SeverityMinor:
		return SeverityMinor, true
	case SeverityModerate:
		return SeverityModerate, true
	case SeverityCritical:
		return SeverityCritical, true
	default:
		return "", false
	}
}

func parseStatus(raw string) (Status, bool) {
	switch Status(strings.ToUpper(strings.TrimSpace(raw))) {
	case StatusOpen:
		return StatusOpen, true
	case StatusInProgress:
		return StatusInProgress, true
	case StatusResolved:
		return StatusResolved, true
	default:
		return "", false
	}
}
