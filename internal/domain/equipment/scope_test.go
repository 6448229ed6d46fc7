package equipment

import (
	"errors"
	"testing"

	"lab-equipment-maintenance/internal/domain/access"
)

func scopeFixture() []Equipment {
	return []Equipment{
		{ID: "eq-1", LocationUnit: "Microscopía", AssignedUserID: "tech-1"},
		{ID: "eq-2", LocationUnit: "Microscopía", AssignedUserID: "tech-2"},
		{ID: "eq-3", LocationUnit: "Citometría", AssignedUserID: "tech-1"},
		{ID: "eq-4", LocationUnit: "Citometría"},
		{ID: "eq-5", LocationUnit: "Proteómica", AssignedUserID: "tech-3"},
		{ID: "eq-6", LocationUnit: "Proteómica"},
		{ID: "eq-7", LocationUnit: "Microscopía"},
		{ID: "eq-8", LocationUnit: "Secuenciación", AssignedUserID: "tech-2"},
		{ID: "eq-9", LocationUnit: "Secuenciación"},
		{ID: "eq-10", LocationUnit: "Citometría", AssignedUserID: "tech-1"},
	}
}

func idsOf(items []Equipment) []string {
	out := make([]string, 0, len(items))
	for _, e := range items {
		out = append(out, e.ID)
	}
	return out
}

func TestScopeForActor_AdminSeesEverything(t *testing.T) {
	items := scopeFixture()

	got, err := ScopeForActor(access.Actor{ID: "a", Role: access.RoleAdmin}, items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(items) {
		t.Fatalf("admin should see all %d, got %d", len(items), len(got))
	}
}

func TestScopeForActor_UnitManagerSeesOnlyTheirUnit(t *testing.T) {
	got, err := ScopeForActor(access.Actor{ID: "m", Role: access.RoleUnitManager, Unit: "Microscopía"}, scopeFixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"eq-1", "eq-2", "eq-7"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, idsOf(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("expected %v, got %v", want, idsOf(got))
		}
	}
}

func TestScopeForActor_EquipmentManagerSeesOnlyAssigned(t *testing.T) {
	got, err := ScopeForActor(access.Actor{ID: "tech-1", Role: access.RoleEquipmentManager}, scopeFixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"eq-1", "eq-3", "eq-10"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, idsOf(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("expected %v, got %v", want, idsOf(got))
		}
	}
}

func TestScopeForActor_UnitManagerWithoutUnit_FailsClosed(t *testing.T) {
	got, err := ScopeForActor(access.Actor{ID: "m", Role: access.RoleUnitManager}, scopeFixture())

	// cero registros Y error reportable, nunca un vacío silencioso
	if !errors.Is(err, access.ErrUnitManagerWithoutUnit) {
		t.Fatalf("expected ErrUnitManagerWithoutUnit, got %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}
}

func TestScopeForActor_UnknownRole(t *testing.T) {
	_, err := ScopeForActor(access.Actor{ID: "x", Role: "SUPERUSER"}, scopeFixture())
	if !errors.Is(err, access.ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
}

func TestScopeForActor_DoesNotMutateInput(t *testing.T) {
	items := scopeFixture()
	before := idsOf(items)

	if _, err := ScopeForActor(access.Actor{ID: "tech-1", Role: access.RoleEquipmentManager}, items); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	after := idsOf(items)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("input mutated: %v -> %v", before, after)
		}
	}
}
