package access

import (
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	for _, raw := range []string{"ADMIN", "UNIT_MANAGER", "EQUIPMENT_MANAGER"} {
		if _, ok := ParseRole(raw); !ok {
			t.Fatalf("expected %q to parse", raw)
		}
	}

	for _, raw := range []string{"", "admin", "SUPERUSER", "Admin "} {
		if _, ok := ParseRole(raw); ok {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}

func TestCanSeeEquipment(t *testing.T) {
	cases := []struct {
		name     string
		actor    Actor
		unit     string
		assigned string
		want     bool
	}{
		{"admin ve todo", Actor{ID: "a", Role: RoleAdmin}, "Citometría", "", true},
		{"jefe su unidad", Actor{ID: "m", Role: RoleUnitManager, Unit: "Citometría"}, "Citometría", "", true},
		{"jefe otra unidad", Actor{ID: "m", Role: RoleUnitManager, Unit: "Citometría"}, "Proteómica", "", false},
		{"jefe sin unidad cierra", Actor{ID: "m", Role: RoleUnitManager}, "Citometría", "", false},
		{"jefe con unidad en blanco", Actor{ID: "m", Role: RoleUnitManager, Unit: "   "}, "Citometría", "", false},
		{"encargado asignado", Actor{ID: "t1", Role: RoleEquipmentManager}, "Citometría", "t1", true},
		{"encargado no asignado", Actor{ID: "t1", Role: RoleEquipmentManager}, "Citometría", "t2", false},
		{"encargado sin asignación", Actor{ID: "t1", Role: RoleEquipmentManager}, "Citometría", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CanSeeEquipment(tc.actor, tc.unit, tc.assigned)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCanSeeEquipment_UnknownRoleIsContractViolation(t *testing.T) {
	_, err := CanSeeEquipment(Actor{ID: "x", Role: "INTERN"}, "Citometría", "")
	if !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
}

func TestMisconfiguredScope(t *testing.T) {
	if err := MisconfiguredScope(Actor{Role: RoleUnitManager}); !errors.Is(err, ErrUnitManagerWithoutUnit) {
		t.Fatalf("expected ErrUnitManagerWithoutUnit, got %v", err)
	}
	if err := MisconfiguredScope(Actor{Role: RoleUnitManager, Unit: "Citometría"}); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if err := MisconfiguredScope(Actor{Role: RoleAdmin}); err != nil {
		t.Fatalf("admin is never misconfigured, got %v", err)
	}
}

func TestWriteRules(t *testing.T) {
	admin := Actor{ID: "a", Role: RoleAdmin}
	boss := Actor{ID: "m", Role: RoleUnitManager, Unit: "Citometría"}
	tech := Actor{ID: "t", Role: RoleEquipmentManager}

	if !CanManageEquipment(admin, "Proteómica") {
		t.Fatal("admin manages any unit")
	}
	if !CanManageEquipment(boss, "Citometría") || CanManageEquipment(boss, "Proteómica") {
		t.Fatal("unit manager manages only their unit")
	}
	if CanManageEquipment(tech, "Citometría") {
		t.Fatal("equipment manager does not manage equipment records")
	}

	if !CanDeleteEquipment(admin) || CanDeleteEquipment(boss) || CanDeleteEquipment(tech) {
		t.Fatal("only admin deletes equipment")
	}

	// Reportar incidencias: basta estar autenticado
	if !CanCreateIssue(tech) || !CanCreateIssue(boss) {
		t.Fatal("any authenticated actor reports issues")
	}
	if CanCreateIssue(Actor{Role: RoleEquipmentManager}) {
		t.Fatal("empty actor id cannot report")
	}

	if !CanManageIssue(admin, "Proteómica") {
		t.Fatal("admin manages any issue")
	}
	if !CanManageIssue(boss, "Citometría") || CanManageIssue(boss, "Proteómica") {
		t.Fatal("unit manager manages only issues of their unit")
	}
	if CanManageIssue(tech, "Citometría") {
		t.Fatal("equipment manager does not manage issues")
	}

	if !CanDeleteNotification(admin) || CanDeleteNotification(boss) {
		t.Fatal("only admin deletes notifications")
	}
}
