package issues

import (
	"errors"
	"testing"

	"lab-equipment-maintenance/internal/domain/access"
)

func scopeFixture() []IssueReport {
	return []IssueReport{
		{ID: "is-1", EquipmentID: "eq-micro"},
		{ID: "is-2", EquipmentID: "eq-cito"},
		{ID: "is-3", EquipmentID: "eq-micro"},
		{ID: "is-4", EquipmentID: "eq-prot"},
	}
}

func TestScopeForActor_AdminSeesAll(t *testing.T) {
	got, err := ScopeForActor(access.Actor{ID: "a", Role: access.RoleAdmin}, scopeFixture(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("admin should see all issues, got %d", len(got))
	}
}

func TestScopeForActor_FiltersByVisibleEquipment(t *testing.T) {
	visible := map[string]struct{}{"eq-micro": {}}

	got, err := ScopeForActor(access.Actor{ID: "m", Role: access.RoleUnitManager, Unit: "Microscopía"}, scopeFixture(), visible)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "is-1" || got[1].ID != "is-3" {
		t.Fatalf("expected issues of eq-micro only, got %v", got)
	}
}

func TestScopeForActor_UnitManagerWithoutUnit_FailsClosed(t *testing.T) {
	got, err := ScopeForActor(access.Actor{ID: "m", Role: access.RoleUnitManager}, scopeFixture(), map[string]struct{}{"eq-micro": {}})
	if !errors.Is(err, access.ErrUnitManagerWithoutUnit) {
		t.Fatalf("expected ErrUnitManagerWithoutUnit, got %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}
}

func TestScopeForActor_UnknownRole(t *testing.T) {
	if _, err := ScopeForActor(access.Actor{ID: "x", Role: "GUEST"}, scopeFixture(), nil); !errors.Is(err, access.ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
}
