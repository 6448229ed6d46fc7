package issues

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"lab-equipment-maintenance/internal/domain/access"
	"lab-equipment-maintenance/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/issues", func(ir chi.Router) {
		ir.Post("/", createIssueHandler(svc))
		ir.Get("/", listIssuesHandler(svc))

		ir.Get("/{issueID}", getIssueHandler(svc))
		ir.Put("/{issueID}", updateIssueHandler(svc))
		ir.Delete("/{issueID}", deleteIssueHandler(svc))
	})
}

type attachmentPayload struct {
	Name    string `json:"name"`
	Locator string `json:"locator"`
}

type createIssueRequest struct {
	EquipmentID string              `json:"equipment_id"`
	Description string              `json:"description"`
	Severity    string              `json:"severity" enums:"MINOR,MODERATE,CRITICAL"`
	Attachments []attachmentPayload `json:"attachments"`
}

type updateIssueRequest struct {
	Description string `json:"description"`
	Severity    string `json:"severity" enums:"MINOR,MODERATE,CRITICAL"`
	Status      string `json:"status" enums:"OPEN,IN_PROGRESS,RESOLVED"`
}

type issueResponse struct {
	ID          string              `json:"id"`
	EquipmentID string              `json:"equipment_id"`
	ReportedBy  string              `json:"reported_by"`
	DateTime    time.Time           `json:"date_time"`
	Description string              `json:"description"`
	Severity    string              `json:"severity"`
	Status      string              `json:"status"`
	Attachments []attachmentPayload `json:"attachments"`
}

// createIssueHandler godoc
// @Summary Reportar incidencia
// @Description Crea una incidencia sobre un equipo. Cualquier actor autenticado puede reportar; el estado inicial es OPEN y la fecha la asigna el servidor.
// @Tags issues
// @Accept json
// @Produce json
// @Param payload body createIssueRequest true "Datos de la incidencia"
// @Success 201 {object} issueResponse
// @Failure 400 {string} string "invalid json / datos inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "equipment not found"
// @Router /issues [post]
func createIssueHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createIssueRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		atts := make([]Attachment, 0, len(req.Attachments))
		for _, a := range req.Attachments {
			atts = append(atts, Attachment{Name: a.Name, Locator: a.Locator})
		}

		ir, err := svc.Create(r.Context(), actor, CreateInput{
			EquipmentID: req.EquipmentID,
			Description: req.Description,
			Severity:    req.Severity,
			Attachments: atts,
		})
		if err != nil {
			writeIssueError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toIssueResponse(ir))
	}
}

func listIssuesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListForActor(r.Context(), actor)
		if err != nil {
			writeIssueError(w, err)
			return
		}

		out := make([]issueResponse, 0, len(items))
		for _, ir := range items {
			out = append(out, toIssueResponse(ir))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getIssueHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		ir, err := svc.GetForActor(r.Context(), actor, chi.URLParam(r, "issueID"))
		if err != nil {
			writeIssueError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toIssueResponse(ir))
	}
}

func updateIssueHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updateIssueRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ir, err := svc.Update(r.Context(), actor, chi.URLParam(r, "issueID"), UpdateInput{
			Description: req.Description,
			Severity:    req.Severity,
			Status:      req.Status,
		})
		if err != nil {
			writeIssueError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toIssueResponse(ir))
	}
}

func deleteIssueHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), actor, chi.URLParam(r, "issueID")); err != nil {
			writeIssueError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func toIssueResponse(ir IssueReport) issueResponse {
	atts := make([]attachmentPayload, 0, len(ir.Attachments))
	for _, a := range ir.Attachments {
		atts = append(atts, attachmentPayload{Name: a.Name, Locator: a.Locator})
	}
	return issueResponse{
		ID:          ir.ID,
		EquipmentID: ir.EquipmentID,
		ReportedBy:  ir.ReportedBy,
		DateTime:    ir.DateTime,
		Description: ir.Description,
		Severity:    string(ir.Severity),
		Status:      string(ir.Status),
		Attachments: atts,
	}
}

func writeIssueError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "issue not found", http.StatusNotFound)
	case errors.Is(err, ErrEquipmentNotFound):
		http.Error(w, "equipment not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
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
