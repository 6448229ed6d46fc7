package reporting

import (
	"testing"
	"time"

	"lab-equipment-maintenance/internal/domain/equipment"
	"lab-equipment-maintenance/internal/domain/issues"
)

func dayPtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func projected(id, name string, st equipment.Status, due *time.Time) equipment.Projected {
	return equipment.Projected{
		Equipment:           equipment.Equipment{ID: id, Name: name},
		Status:              st,
		NextMaintenanceDate: due,
	}
}

func issue(id, equipmentID string, st issues.Status) issues.IssueReport {
	return issues.IssueReport{ID: id, EquipmentID: equipmentID, Status: st}
}

func TestAggregate_CountsAndOpenIssues(t *testing.T) {
	eq := []equipment.Projected{
		projected("eq-1", "TEM", equipment.StatusOverdue, dayPtr(2024, time.May, 1)),
		projected("eq-2", "SEM", equipment.StatusOnTrack, dayPtr(2024, time.December, 1)),
		projected("eq-3", "HPLC", equipment.StatusUpcoming, dayPtr(2024, time.July, 1)),
		projected("eq-4", "NMR", equipment.StatusOnTrack, nil),
	}
	rep := []issues.IssueReport{
		issue("is-1", "eq-1", issues.StatusOpen),
		issue("is-2", "eq-1", issues.StatusResolved),
		issue("is-3", "eq-3", issues.StatusInProgress),
		issue("is-4", "eq-3", issues.StatusOpen),
	}

	s := Aggregate(eq, rep)

	if s.TotalEquipment != 4 {
		t.Fatalf("total: got %d, want 4", s.TotalEquipment)
	}
	if s.StatusCounts[equipment.StatusOnTrack] != 2 ||
		s.StatusCounts[equipment.StatusUpcoming] != 1 ||
		s.StatusCounts[equipment.StatusOverdue] != 1 {
		t.Fatalf("unexpected status counts: %v", s.StatusCounts)
	}
	// Solo OPEN cuenta como abierta; IN_PROGRESS ya está tomada
	if s.OpenIssueCount != 2 {
		t.Fatalf("open issues: got %d, want 2", s.OpenIssueCount)
	}
}

func TestAggregate_UpcomingRankingOrderAndCap(t *testing.T) {
	eq := []equipment.Projected{
		projected("eq-b", "B", equipment.StatusUpcoming, dayPtr(2024, time.July, 5)),
		projected("eq-a", "A", equipment.StatusUpcoming, dayPtr(2024, time.July, 5)),
		projected("eq-c", "C", equipment.StatusUpcoming, dayPtr(2024, time.July, 1)),
		projected("eq-d", "D", equipment.StatusUpcoming, dayPtr(2024, time.July, 10)),
		projected("eq-e", "E", equipment.StatusUpcoming, dayPtr(2024, time.July, 3)),
		projected("eq-f", "F", equipment.StatusUpcoming, dayPtr(2024, time.July, 2)),
		projected("eq-x", "X", equipment.StatusOverdue, dayPtr(2024, time.June, 1)),
	}

	s := Aggregate(eq, nil)

	if len(s.Upcoming) != 5 {
		t.Fatalf("upcoming capped at 5, got %d", len(s.Upcoming))
	}
	// fecha ascendente, empate por ID; eq-d (el más lejano) queda fuera
	want := []string{"eq-c", "eq-f", "eq-e", "eq-a", "eq-b"}
	for i, id := range want {
		if s.Upcoming[i].ID != id {
			got := make([]string, 0, len(s.Upcoming))
			for _, p := range s.Upcoming {
				got = append(got, p.ID)
			}
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestAggregate_IncidentRankingExcludesZeroAndForeign(t *testing.T) {
	eq := []equipment.Projected{
		projected("eq-1", "TEM", equipment.StatusOnTrack, nil),
		projected("eq-2", "SEM", equipment.StatusOnTrack, nil),
		projected("eq-3", "HPLC", equipment.StatusOnTrack, nil),
	}
	rep := []issues.IssueReport{
		issue("is-1", "eq-2", issues.StatusOpen),
		issue("is-2", "eq-2", issues.StatusResolved),
		issue("is-3", "eq-1", issues.StatusOpen),
		// incidencia de un equipo fuera del alcance proyectado
		issue("is-4", "eq-ghost", issues.StatusOpen),
	}

	s := Aggregate(eq, rep)

	if len(s.TopIncidentProne) != 2 {
		t.Fatalf("expected 2 entries (no zero bars, no foreign equipment), got %v", s.TopIncidentProne)
	}
	if s.TopIncidentProne[0].EquipmentID != "eq-2" || s.TopIncidentProne[0].Count != 2 {
		t.Fatalf("expected eq-2 first with 2, got %+v", s.TopIncidentProne[0])
	}
	if s.TopIncidentProne[1].EquipmentID != "eq-1" || s.TopIncidentProne[1].Count != 1 {
		t.Fatalf("expected eq-1 second with 1, got %+v", s.TopIncidentProne[1])
	}
}

func TestAggregate_IncidentRankingTieBreaksByID(t *testing.T) {
	eq := []equipment.Projected{
		projected("eq-b", "B", equipment.StatusOnTrack, nil),
		projected("eq-a", "A", equipment.StatusOnTrack, nil),
	}
	rep := []issues.IssueReport{
		issue("is-1", "eq-b", issues.StatusOpen),
		issue("is-2", "eq-a", issues.StatusOpen),
	}

	s := Aggregate(eq, rep)
	if s.TopIncidentProne[0].EquipmentID != "eq-a" {
		t.Fatalf("tie should break by ID asc, got %+v", s.TopIncidentProne)
	}
}

func TestAggregate_EmptyInputs(t *testing.T) {
	s := Aggregate(nil, nil)

	if s.TotalEquipment != 0 || s.OpenIssueCount != 0 {
		t.Fatalf("unexpected totals: %+v", s)
	}
	if s.Upcoming == nil || s.TopIncidentProne == nil {
		t.Fatal("rankings must be empty slices, not nil")
	}
	if len(s.Upcoming) != 0 || len(s.TopIncidentProne) != 0 {
		t.Fatalf("expected empty rankings, got %+v", s)
	}
}

func TestAggregate_Deterministic(t *testing.T) {
	eq := []equipment.Projected{
		projected("eq-1", "TEM", equipment.StatusUpcoming, dayPtr(2024, time.July, 1)),
		projected("eq-2", "SEM", equipment.StatusUpcoming, dayPtr(2024, time.July, 1)),
	}
	rep := []issues.IssueReport{
		issue("is-1", "eq-1", issues.StatusOpen),
		issue("is-2", "eq-2", issues.StatusOpen),
	}

	a := Aggregate(eq, rep)
	b := Aggregate(eq, rep)

	for i := range a.Upcoming {
		if a.Upcoming[i].ID != b.Upcoming[i].ID {
			t.Fatal("upcoming order not deterministic")
		}
	}
	for i := range a.TopIncidentProne {
		if a.TopIncidentProne[i].EquipmentID != b.TopIncidentProne[i].EquipmentID {
			t.Fatal("incident ranking not deterministic")
		}
	}
}
