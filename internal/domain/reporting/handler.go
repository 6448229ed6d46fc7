package reporting

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"lab-equipment-maintenance/internal/domain/access"
	"lab-equipment-maintenance/internal/domain/equipment"
	"lab-equipment-maintenance/internal/domain/issues"
	"lab-equipment-maintenance/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, equipmentSvc *equipment.Service, issuesSvc *issues.Service) {
	r.Get("/dashboard/summary", summaryHandler(equipmentSvc, issuesSvc))
}

type statusCountsResponse struct {
	OnTrack  int `json:"on_track"`
	Upcoming int `json:"upcoming"`
	Overdue  int `json:"overdue"`
}

type upcomingItemResponse struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	LocationUnit        string     `json:"location_unit"`
	NextMaintenanceDate *time.Time `json:"next_maintenance_date"`
}

type incidentCountResponse struct {
	EquipmentID string `json:"equipment_id"`
	Name        string `json:"name"`
	Count       int    `json:"count"`
}

type summaryResponse struct {
	TotalEquipment   int                     `json:"total_equipment"`
	StatusCounts     statusCountsResponse    `json:"status_counts"`
	OpenIssueCount   int                     `json:"open_issue_count"`
	Upcoming         []upcomingItemResponse  `json:"upcoming"`
	TopIncidentProne []incidentCountResponse `json:"top_incident_prone"`
}

// summaryHandler godoc
// @Summary Resumen del dashboard
// @Description Agregados para el panel: conteos por estado, incidencias abiertas, próximas mantenciones y equipos con más incidencias. Todo calculado sobre el alcance del actor y un único snapshot.
// @Tags reporting
// @Produce json
// @Success 200 {object} summaryResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "actor mal configurado"
// @Router /dashboard/summary [get]
func summaryHandler(equipmentSvc *equipment.Service, issuesSvc *issues.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// Un solo snapshot para ambas colecciones: mezclar un listado
		// de equipos de un instante con incidencias de otro produce
		// conteos cruzados inconsistentes.
		projected, err := equipmentSvc.ListForActor(r.Context(), actor)
		if err != nil {
			writeSummaryError(w, err)
			return
		}
		reports, err := issuesSvc.ListForActor(r.Context(), actor)
		if err != nil {
			writeSummaryError(w, err)
			return
		}

		s := Aggregate(projected, reports)

		up := make([]upcomingItemResponse, 0, len(s.Upcoming))
		for _, p := range s.Upcoming {
			up = append(up, upcomingItemResponse{
				ID:                  p.ID,
				Name:                p.Name,
				LocationUnit:        p.LocationUnit,
				NextMaintenanceDate: p.NextMaintenanceDate,
			})
		}

		prone := make([]incidentCountResponse, 0, len(s.TopIncidentProne))
		for _, ic := range s.TopIncidentProne {
			prone = append(prone, incidentCountResponse{
				EquipmentID: ic.EquipmentID,
				Name:        ic.Name,
				Count:       ic.Count,
			})
		}

		writeJSON(w, http.StatusOK, summaryResponse{
			TotalEquipment: s.TotalEquipment,
			StatusCounts: statusCountsResponse{
				OnTrack:  s.StatusCounts[equipment.StatusOnTrack],
				Upcoming: s.StatusCounts[equipment.StatusUpcoming],
				Overdue:  s.StatusCounts[equipment.StatusOverdue],
			},
			OpenIssueCount:   s.OpenIssueCount,
			Upcoming:         up,
			TopIncidentProne: prone,
		})
	}
}

func writeSummaryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, access.ErrUnitManagerWithoutUnit):
		http.Error(w, "actor misconfigured: unit manager without unit", http.StatusForbidden)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON duplicado a propósito (ver nota en equipment/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
