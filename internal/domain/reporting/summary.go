package reporting

import (
	"sort"

	"lab-equipment-maintenance/internal/domain/equipment"
	"lab-equipment-maintenance/internal/domain/issues"
)

// topN acota los rankings del dashboard.
const topN = 5

// IncidentCount es una barra del ranking de equipos con más incidencias.
type IncidentCount struct {
	EquipmentID string
	Name        string
	Count       int
}

// Summary son los agregados del dashboard. Todo se recalcula a pedido
// sobre colecciones ya filtradas por rol y proyectadas con un mismo
// instante; acá no se mantiene ningún contador incremental.
type Summary struct {
	TotalEquipment int
	StatusCounts   map[equipment.Status]int
	OpenIssueCount int

	// Upcoming: equipos UPCOMING por fecha de próxima mantención
	// ascendente, desempate por ID, máximo topN.
	Upcoming []equipment.Projected

	// TopIncidentProne: equipos por cantidad de incidencias
	// descendente, desempate por ID, máximo topN. Los equipos sin
	// incidencias no aparecen (nada de barras en cero).
	TopIncidentProne []IncidentCount
}

// Aggregate pliega las colecciones en los totales del dashboard.
// Función pura: no muta sus entradas y dos llamadas con los mismos
// insumos dan el mismo resultado.
func Aggregate(projected []equipment.Projected, reports []issues.IssueReport) Summary {
	counts := map[equipment.Status]int{
		equipment.StatusOnTrack:  0,
		equipment.StatusUpcoming: 0,
		equipment.StatusOverdue:  0,
	}

	upcoming := make([]equipment.Projected, 0)
	for _, p := range projected {
		counts[p.Status]++
		if p.Status == equipment.StatusUpcoming {
			upcoming = append(upcoming, p)
		}
	}

	sort.Slice(upcoming, func(i, j int) bool {
		a, b := upcoming[i], upcoming[j]
		// ambos UPCOMING, así que NextMaintenanceDate nunca es nil
		if !a.NextMaintenanceDate.Equal(*b.NextMaintenanceDate) {
			return a.NextMaintenanceDate.Before(*b.NextMaintenanceDate)
		}
		return a.ID < b.ID
	})
	if len(upcoming) > topN {
		upcoming = upcoming[:topN]
	}

	open := 0
	perEquipment := map[string]int{}
	for _, ir := range reports {
		if ir.Status == issues.StatusOpen {
			open++
		}
		perEquipment[ir.EquipmentID]++
	}

	prone := make([]IncidentCount, 0, len(perEquipment))
	for _, p := range projected {
		if n := perEquipment[p.ID]; n > 0 {
			prone = append(prone, IncidentCount{
				EquipmentID: p.ID,
				Name:        p.Name,
				Count:       n,
			})
		}
	}
	sort.Slice(prone, func(i, j int) bool {
		if prone[i].Count != prone[j].Count {
			return prone[i].Count > prone[j].Count
		}
		return prone[i].EquipmentID < prone[j].EquipmentID
	})
	if len(prone) > topN {
		prone = prone[:topN]
	}

	return Summary{
		TotalEquipment:   len(projected),
		StatusCounts:     counts,
		OpenIssueCount:   open,
		Upcoming:         upcoming,
		TopIncidentProne: prone,
	}
}
