package issues

import (
	"context"
	"errors"
	"testing"
	"time"

	"lab-equipment-maintenance/internal/domain/access"
)

type testRepo struct {
	byID map[string]IssueReport
	seq  []string
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]IssueReport{}}
}

func (r *testRepo) Create(_ context.Context, ir IssueReport) error {
	r.byID[ir.ID] = ir
	r.seq = append(r.seq, ir.ID)
	return nil
}

func (r *testRepo) Update(_ context.Context, ir IssueReport) error {
	if _, ok := r.byID[ir.ID]; !ok {
		return errors.New("not found")
	}
	r.byID[ir.ID] = ir
	return nil
}

func (r *testRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return errors.New("not found")
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (IssueReport, error) {
	ir, ok := r.byID[id]
	if !ok {
		return IssueReport{}, errors.New("not found")
	}
	return ir, nil
}

func (r *testRepo) List(_ context.Context) ([]IssueReport, error) {
	out := make([]IssueReport, 0, len(r.byID))
	for _, id := range r.seq {
		if ir, ok := r.byID[id]; ok {
			out = append(out, ir)
		}
	}
	return out, nil
}

// fakeLookup simula el módulo de equipos: unidad por equipo y
// visibilidad por actor.
type fakeLookup struct {
	units   map[string]string              // equipmentID -> unidad
	visible map[string]map[string]struct{} // actorID -> equipos visibles
}

func (f *fakeLookup) VisibleEquipmentIDs(_ context.Context, actor access.Actor) (map[string]struct{}, error) {
	if err := access.MisconfiguredScope(actor); err != nil {
		return nil, err
	}
	if actor.Role == access.RoleAdmin {
		all := make(map[string]struct{}, len(f.units))
		for id := range f.units {
			all[id] = struct{}{}
		}
		return all, nil
	}
	return f.visible[actor.ID], nil
}

func (f *fakeLookup) UnitOf(_ context.Context, equipmentID string) (string, error) {
	unit, ok := f.units[equipmentID]
	if !ok {
		return "", errors.New("not found")
	}
	return unit, nil
}

var (
	adminActor = access.Actor{ID: "admin-1", Role: access.RoleAdmin}
	microBoss  = access.Actor{ID: "boss-micro", Role: access.RoleUnitManager, Unit: "Microscopía"}
	citoBoss   = access.Actor{ID: "boss-cito", Role: access.RoleUnitManager, Unit: "Citometría"}
	techActor  = access.Actor{ID: "tech-1", Role: access.RoleEquipmentManager}
)

func newTestService(now time.Time) (*Service, *testRepo, *fakeLookup) {
	repo := newTestRepo()
	lookup := &fakeLookup{
		units: map[string]string{
			"eq-micro": "Microscopía",
			"eq-cito":  "Citometría",
		},
		visible: map[string]map[string]struct{}{
			microBoss.ID: {"eq-micro": {}},
			citoBoss.ID:  {"eq-cito": {}},
			techActor.ID: {"eq-micro": {}},
		},
	}
	svc := NewService(repo, lookup)
	svc.now = func() time.Time { return now }
	return svc, repo, lookup
}

func TestIssueCreate_ServerAssignsStateAndTime(t *testing.T) {
	now := time.Date(2024, time.June, 20, 10, 30, 0, 0, time.UTC)
	svc, _, _ := newTestService(now)

	ir, err := svc.Create(context.Background(), techActor, CreateInput{
		EquipmentID: "eq-micro",
		Description: "Pérdida de vacío en la cámara",
		Severity:    "critical", // case-insensitive
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ir.Status != StatusOpen {
		t.Fatalf("new issues are always OPEN, got %s", ir.Status)
	}
	if !ir.DateTime.Equal(now) {
		t.Fatalf("server assigns the timestamp, got %v", ir.DateTime)
	}
	if ir.ReportedBy != techActor.ID {
		t.Fatalf("expected reporter %s, got %s", techActor.ID, ir.ReportedBy)
	}
	if ir.Severity != SeverityCritical {
		t.Fatalf("expected CRITICAL, got %s", ir.Severity)
	}
}

func TestIssueCreate_Validation(t *testing.T) {
	svc, _, _ := newTestService(time.Now())
	ctx := context.Background()

	if _, err := svc.Create(ctx, techActor, CreateInput{EquipmentID: "eq-micro", Severity: "MINOR"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without description, got %v", err)
	}
	if _, err := svc.Create(ctx, techActor, CreateInput{EquipmentID: "eq-micro", Description: "x", Severity: "FATAL"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad severity, got %v", err)
	}
	if _, err := svc.Create(ctx, techActor, CreateInput{EquipmentID: "ghost", Description: "x", Severity: "MINOR"}); !errors.Is(err, ErrEquipmentNotFound) {
		t.Fatalf("expected ErrEquipmentNotFound, got %v", err)
	}
	if _, err := svc.Create(ctx, access.Actor{Role: access.RoleEquipmentManager}, CreateInput{EquipmentID: "eq-micro", Description: "x", Severity: "MINOR"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for anonymous actor, got %v", err)
	}
}

func TestIssueUpdate_Authorization(t *testing.T) {
	svc, _, _ := newTestService(time.Now())
	ctx := context.Background()

	ir, err := svc.Create(ctx, techActor, CreateInput{
		EquipmentID: "eq-micro",
		Description: "Sensor descalibrado",
		Severity:    "MODERATE",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	in := UpdateInput{Description: "Sensor descalibrado", Severity: "MODERATE", Status: "IN_PROGRESS"}

	// El jefe de otra unidad no gestiona incidencias ajenas
	if _, err := svc.Update(ctx, citoBoss, ir.ID, in); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign unit manager, got %v", err)
	}
	// El encargado reporta pero no gestiona
	if _, err := svc.Update(ctx, techActor, ir.ID, in); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for equipment manager, got %v", err)
	}

	got, err := svc.Update(ctx, microBoss, ir.ID, in)
	if err != nil {
		t.Fatalf("unit manager update: %v", err)
	}
	if got.Status != StatusInProgress {
		t.Fatalf("expected IN_PROGRESS, got %s", got.Status)
	}
}

func TestIssueDelete_Authorization(t *testing.T) {
	svc, _, _ := newTestService(time.Now())
	ctx := context.Background()

	ir, err := svc.Create(ctx, techActor, CreateInput{
		EquipmentID: "eq-micro",
		Description: "Fuga de helio",
		Severity:    "CRITICAL",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, techActor, ir.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for equipment manager, got %v", err)
	}
	if err := svc.Delete(ctx, microBoss, ir.ID); err != nil {
		t.Fatalf("unit manager of the unit deletes: %v", err)
	}
	if err := svc.Delete(ctx, adminActor, ir.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestIssueGetForActor_FollowsEquipmentVisibility(t *testing.T) {
	svc, _, _ := newTestService(time.Now())
	ctx := context.Background()

	ir, err := svc.Create(ctx, techActor, CreateInput{
		EquipmentID: "eq-micro",
		Description: "Ruido en el compresor",
		Severity:    "MINOR",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.GetForActor(ctx, microBoss, ir.ID); err != nil {
		t.Fatalf("unit manager of the unit should see it: %v", err)
	}
	if _, err := svc.GetForActor(ctx, adminActor, ir.ID); err != nil {
		t.Fatalf("admin should see it: %v", err)
	}
	if _, err := svc.GetForActor(ctx, citoBoss, ir.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign unit manager, got %v", err)
	}
}

func TestIssueListForActor_MisconfiguredScope(t *testing.T) {
	svc, _, _ := newTestService(time.Now())

	broken := access.Actor{ID: "boss-x", Role: access.RoleUnitManager}
	if _, err := svc.ListForActor(context.Background(), broken); !errors.Is(err, access.ErrUnitManagerWithoutUnit) {
		t.Fatalf("expected ErrUnitManagerWithoutUnit, got %v", err)
	}
}
