package equipment

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"lab-equipment-maintenance/internal/domain/access"
	"lab-equipment-maintenance/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/equipment", func(er chi.Router) {
		er.Post("/", createEquipmentHandler(svc))
		er.Get("/", listEquipmentHandler(svc))

		er.Get("/{equipmentID}", getEquipmentHandler(svc))
		er.Put("/{equipmentID}", updateEquipmentHandler(svc))
		er.Delete("/{equipmentID}", deleteEquipmentHandler(svc))

		// Historial de mantención (append-only)
		er.Post("/{equipmentID}/maintenance", addMaintenanceRecordHandler(svc))
	})
}

// createEquipmentRequest acepta la frecuencia en cualquiera de sus dos
// formas (anidada o aplanada); el normalizador resuelve cuál usar.
type createEquipmentRequest struct {
	Name  string `json:"name"`
	Brand string `json:"brand"`
	Model string `json:"model"`

	LocationBuilding string `json:"location_building"`
	LocationUnit     string `json:"location_unit"`

	LastMaintenanceDate string `json:"last_maintenance_date"` // YYYY-MM-DD opcional
	LastCalibrationDate string `json:"last_calibration_date"` // YYYY-MM-DD opcional

	Frequency      *FrequencyFields `json:"maintenance_frequency"`
	FrequencyValue any              `json:"maintenance_frequency_value"`
	FrequencyUnit  string           `json:"maintenance_frequency_unit"`

	CustomInstructions string `json:"custom_instructions"`
	Criticality        string `json:"criticality" enums:"LOW,MEDIUM,HIGH"`
	AssignedUserID     string `json:"assigned_user_id"`
}

type frequencyResponse struct {
	Value int    `json:"value"`
	Unit  string `json:"unit"`
}

type attachmentPayload struct {
	Name    string `json:"name"`
	Locator string `json:"locator"`
}

type recordResponse struct {
	ID          string              `json:"id"`
	Date        time.Time           `json:"date"`
	Description string              `json:"description"`
	PerformedBy string              `json:"performed_by"`
	Attachments []attachmentPayload `json:"attachments"`
}

// equipmentResponse incluye siempre los campos derivados; nunca salen
// de la base de datos sino del proyector.
type equipmentResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Brand string `json:"brand"`
	Model string `json:"model"`

	LocationBuilding string `json:"location_building"`
	LocationUnit     string `json:"location_unit"`

	LastMaintenanceDate *time.Time `json:"last_maintenance_date,omitempty"`
	LastCalibrationDate *time.Time `json:"last_calibration_date,omitempty"`

	MaintenanceFrequency *frequencyResponse `json:"maintenance_frequency,omitempty"`
	CustomInstructions   string             `json:"custom_instructions,omitempty"`
	Criticality          string             `json:"criticality"`
	AssignedUserID       string             `json:"assigned_user_id,omitempty"`

	MaintenanceRecords []recordResponse `json:"maintenance_records"`

	Status              string     `json:"status"`
	NextMaintenanceDate *time.Time `json:"next_maintenance_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// createEquipmentHandler godoc
// @Summary Registrar equipo
// @Description Crea un equipo nuevo. Permitido para ADMIN, o UNIT_MANAGER dentro de su propia unidad. La respuesta incluye status y next_maintenance_date derivados.
// @Tags equipment
// @Accept json
// @Produce json
// @Param payload body createEquipmentRequest true "Datos del equipo; fechas en formato YYYY-MM-DD"
// @Success 201 {object} equipmentResponse
// @Failure 400 {string} string "invalid json / datos inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /equipment [post]
func createEquipmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createEquipmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in, err := toCreateInput(req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		e, err := svc.Create(r.Context(), actor, in)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		p, err := svc.GetForActor(r.Context(), actor, e.ID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toEquipmentResponse(p))
	}
}

// listEquipmentHandler godoc
// @Summary Listar equipos
// @Description Devuelve los equipos visibles para el actor (ADMIN: todos; UNIT_MANAGER: su unidad; EQUIPMENT_MANAGER: los asignados), proyectados con estado y próxima mantención.
// @Tags equipment
// @Produce json
// @Success 200 {array} equipmentResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "actor mal configurado"
// @Router /equipment [get]
func listEquipmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListForActor(r.Context(), actor)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		out := make([]equipmentResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toEquipmentResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getEquipmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.GetForActor(r.Context(), actor, chi.URLParam(r, "equipmentID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toEquipmentResponse(p))
	}
}

func updateEquipmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createEquipmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in, err := toCreateInput(req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		id := chi.URLParam(r, "equipmentID")
		if _, err := svc.Update(r.Context(), actor, id, in); err != nil {
			writeDomainError(w, err)
			return
		}

		p, err := svc.GetForActor(r.Context(), actor, id)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toEquipmentResponse(p))
	}
}

func deleteEquipmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), actor, chi.URLParam(r, "equipmentID")); err != nil {
			writeDomainError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

type addRecordRequest struct {
	Date        string              `json:"date"` // YYYY-MM-DD
	Description string              `json:"description"`
	PerformedBy string              `json:"performed_by"`
	Attachments []attachmentPayload `json:"attachments"`
}

// addMaintenanceRecordHandler godoc
// @Summary Registrar mantención realizada
// @Description Agrega una entrada al historial del equipo. El historial es append-only. Si la fecha es más reciente que la última mantención, la actualiza (y con ella el estado derivado).
// @Tags equipment
// @Accept json
// @Produce json
// @Param equipmentID path string true "ID del equipo"
// @Param payload body addRecordRequest true "Mantención realizada; date en formato YYYY-MM-DD"
// @Success 201 {object} equipmentResponse
// @Failure 400 {string} string "invalid json / datos inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "equipment not found"
// @Router /equipment/{equipmentID}/maintenance [post]
func addMaintenanceRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActor(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req addRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		date, err := time.Parse("2006-01-02", strings.TrimSpace(req.Date))
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		atts := make([]Attachment, 0, len(req.Attachments))
		for _, a := range req.Attachments {
			atts = append(atts, Attachment{Name: a.Name, Locator: a.Locator})
		}

		id := chi.URLParam(r, "equipmentID")
		if _, err := svc.AddMaintenanceRecord(r.Context(), actor, id, RecordInput{
			Date:        date,
			Description: req.Description,
			PerformedBy: req.PerformedBy,
			Attachments: atts,
		}); err != nil {
			writeDomainError(w, err)
			return
		}

		p, err := svc.GetForActor(r.Context(), actor, id)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toEquipmentResponse(p))
	}
}

func toCreateInput(req createEquipmentRequest) (CreateInput, error) {
	lastMaint, err := parseOptionalDate(req.LastMaintenanceDate)
	if err != nil {
		return CreateInput{}, errors.New("last_maintenance_date must be YYYY-MM-DD")
	}
	lastCal, err := parseOptionalDate(req.LastCalibrationDate)
	if err != nil {
		return CreateInput{}, errors.New("last_calibration_date must be YYYY-MM-DD")
	}

	return CreateInput{
		Name:                req.Name,
		Brand:               req.Brand,
		Model:               req.Model,
		LocationBuilding:    req.LocationBuilding,
		LocationUnit:        req.LocationUnit,
		LastMaintenanceDate: lastMaint,
		LastCalibrationDate: lastCal,
		Frequency: FrequencyPayload{
			Frequency:      req.Frequency,
			FrequencyValue: req.FrequencyValue,
			FrequencyUnit:  req.FrequencyUnit,
		},
		CustomInstructions: req.CustomInstructions,
		Criticality:        req.Criticality,
		AssignedUserID:     req.AssignedUserID,
	}, nil
}

func parseOptionalDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toEquipmentResponse(p Projected) equipmentResponse {
	var freq *frequencyResponse
	if p.MaintenanceFrequency != nil {
		freq = &frequencyResponse{
			Value: p.MaintenanceFrequency.Value,
			Unit:  string(p.MaintenanceFrequency.Unit),
		}
	}

	recs := make([]recordResponse, 0, len(p.MaintenanceRecords))
	for _, rec := range p.MaintenanceRecords {
		atts := make([]attachmentPayload, 0, len(rec.Attachments))
		for _, a := range rec.Attachments {
			atts = append(atts, attachmentPayload{Name: a.Name, Locator: a.Locator})
		}
		recs = append(recs, recordResponse{
			ID:          rec.ID,
			Date:        rec.Date,
			Description: rec.Description,
			PerformedBy: rec.PerformedBy,
			Attachments: atts,
		})
	}

	return equipmentResponse{
		ID:                   p.ID,
		Name:                 p.Name,
		Brand:                p.Brand,
		Model:                p.Model,
		LocationBuilding:     p.LocationBuilding,
		LocationUnit:         p.LocationUnit,
		LastMaintenanceDate:  p.LastMaintenanceDate,
		LastCalibrationDate:  p.LastCalibrationDate,
		MaintenanceFrequency: freq,
		CustomInstructions:   p.CustomInstructions,
		Criticality:          string(p.Criticality),
		AssignedUserID:       p.AssignedUserID,
		MaintenanceRecords:   recs,
		Status:               string(p.Status),
		NextMaintenanceDate:  p.NextMaintenanceDate,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

// writeDomainError mapea los sentinels del dominio a códigos HTTP.
// El actor mal configurado (jefe de unidad sin unidad) se reporta como
// 403 explícito, nunca como lista vacía silenciosa.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "equipment not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, access.ErrUnitManagerWithoutUnit):
		http.Error(w, "actor misconfigured: unit manager without unit", http.StatusForbidden)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos
// módulos para evitar crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
