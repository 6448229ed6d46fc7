package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"lab-equipment-maintenance/internal/domain/equipment"
)

type EquipmentRepo struct {
	db *sql.DB
}

func NewEquipmentRepo(db *sql.DB) *EquipmentRepo {
	return &EquipmentRepo{db: db}
}

func (r *EquipmentRepo) Create(ctx context.Context, e equipment.Equipment) error {
	freqVal, freqUnit := toNullFrequency(e.MaintenanceFrequency)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO equipment (
			id, name, brand, model,
			location_building, location_unit,
			last_maintenance_date, last_calibration_date,
			maintenance_frequency_value, maintenance_frequency_unit,
			custom_instructions, criticality, assigned_user_id,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`,
		e.ID,
		e.Name,
		e.Brand,
		e.Model,
		e.LocationBuilding,
		e.LocationUnit,
		toNullDate(e.LastMaintenanceDate),
		toNullDate(e.LastCalibrationDate),
		freqVal,
		freqUnit,
		e.CustomInstructions,
		string(e.Criticality),
		e.AssignedUserID,
		e.CreatedAt,
		e.UpdatedAt,
	)
	return err
}

func (r *EquipmentRepo) Update(ctx context.Context, e equipment.Equipment) error {
	freqVal, freqUnit := toNullFrequency(e.MaintenanceFrequency)

	res, err := r.db.ExecContext(ctx, `
		UPDATE equipment
		SET
			name = $2,
			brand = $3,
			model = $4,
			location_building = $5,
			location_unit = $6,
			last_maintenance_date = $7,
			last_calibration_date = $8,
			maintenance_frequency_value = $9,
			maintenance_frequency_unit = $10,
			custom_instructions = $11,
			criticality = $12,
			assigned_user_id = $13,
			updated_at = $14
		WHERE id = $1
	`,
		e.ID,
		e.Name,
		e.Brand,
		e.Model,
		e.LocationBuilding,
		e.LocationUnit,
		toNullDate(e.LastMaintenanceDate),
		toNullDate(e.LastCalibrationDate),
		freqVal,
		freqUnit,
		e.CustomInstructions,
		string(e.Criticality),
		e.AssignedUserID,
		e.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EquipmentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EquipmentRepo) GetByID(ctx context.Context, id string) (equipment.Equipment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return equipment.Equipment{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, name, brand, model,
			location_building, location_unit,
			last_maintenance_date, last_calibration_date,
			maintenance_frequency_value, maintenance_frequency_unit,
			custom_instructions, criticality, assigned_user_id,
			created_at, updated_at
		FROM equipment
		WHERE id = $1
	`, id)

	e, err := scanEquipment(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return equipment.Equipment{}, ErrNotFound
		}
		return equipment.Equipment{}, err
	}

	recs, err := r.recordsFor(ctx, id)
	if err != nil {
		return equipment.Equipment{}, err
	}
	e.MaintenanceRecords = recs

	return e, nil
}

func (r *EquipmentRepo) List(ctx context.Context) ([]equipment.Equipment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, name, brand, model,
			location_building, location_unit,
			last_maintenance_date, last_calibration_date,
			maintenance_frequency_value, maintenance_frequency_unit,
			custom_instructions, criticality, assigned_user_id,
			created_at, updated_at
		FROM equipment
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]equipment.Equipment, 0)
	index := map[string]int{}
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		e.MaintenanceRecords = []equipment.MaintenanceRecord{}
		index[e.ID] = len(out)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// historial en una sola pasada adicional, no una query por equipo
	recRows, err := r.db.QueryContext(ctx, `
		SELECT id, equipment_id, date, description, performed_by, attachments
		FROM maintenance_records
		ORDER BY date ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer recRows.Close()

	for recRows.Next() {
		var equipmentID string
		rec, err := scanRecord(recRows, &equipmentID)
		if err != nil {
			return nil, err
		}
		if i, ok := index[equipmentID]; ok {
			out[i].MaintenanceRecords = append(out[i].MaintenanceRecords, rec)
		}
	}

	return out, recRows.Err()
}

func (r *EquipmentRepo) AppendRecord(ctx context.Context, equipmentID string, rec equipment.MaintenanceRecord) error {
	atts, err := json.Marshal(rec.Attachments)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO maintenance_records (id, equipment_id, date, description, performed_by, attachments)
		SELECT $1, $2, $3, $4, $5, $6
		WHERE EXISTS (SELECT 1 FROM equipment WHERE id = $2)
	`,
		rec.ID,
		equipmentID,
		rec.Date,
		rec.Description,
		rec.PerformedBy,
		atts,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EquipmentRepo) recordsFor(ctx context.Context, equipmentID string) ([]equipment.MaintenanceRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, equipment_id, date, description, performed_by, attachments
		FROM maintenance_records
		WHERE equipment_id = $1
		ORDER BY date ASC, id ASC
	`, equipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]equipment.MaintenanceRecord, 0)
	for rows.Next() {
		var equipmentID string
		rec, err := scanRecord(rows, &equipmentID)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEquipment(row rowScanner) (equipment.Equipment, error) {
	var e equipment.Equipment
	var lastMaint, lastCal sql.NullTime
	var freqVal sql.NullInt64
	var freqUnit sql.NullString

	if err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Brand,
		&e.Model,
		&e.LocationBuilding,
		&e.LocationUnit,
		&lastMaint,
		&lastCal,
		&freqVal,
		&freqUnit,
		&e.CustomInstructions,
		&e.Criticality,
		&e.AssignedUserID,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return equipment.Equipment{}, err
	}

	if lastMaint.Valid {
		t := lastMaint.Time
		e.LastMaintenanceDate = &t
	}
	if lastCal.Valid {
		t := lastCal.Time
		e.LastCalibrationDate = &t
	}

	// Filas antiguas pueden traer la unidad como etiqueta en español;
	// el normalizador resuelve ambas formas igual que en el wire.
	if freqVal.Valid && freqUnit.Valid {
		e.MaintenanceFrequency = equipment.NormalizeFrequency(equipment.FrequencyPayload{
			FrequencyValue: freqVal.Int64,
			FrequencyUnit:  freqUnit.String,
		})
	}

	return e, nil
}

func scanRecord(row rowScanner, equipmentID *string) (equipment.MaintenanceRecord, error) {
	var rec equipment.MaintenanceRecord
	var atts []byte

	if err := row.Scan(
		&rec.ID,
		equipmentID,
		&rec.Date,
		&rec.Description,
		&rec.PerformedBy,
		&atts,
	); err != nil {
		return equipment.MaintenanceRecord{}, err
	}

	if len(atts) > 0 {
		if err := json.Unmarshal(atts, &rec.Attachments); err != nil {
			return equipment.MaintenanceRecord{}, err
		}
	}

	return rec, nil
}

// las fechas de mantención/calibración son DATE; NullTime simplifica
func toNullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func toNullFrequency(f *equipment.MaintenanceFrequency) (sql.NullInt64, sql.NullString) {
	if f == nil {
		return sql.NullInt64{}, sql.NullString{}
	}
	return sql.NullInt64{Int64: int64(f.Value), Valid: true},
		sql.NullString{String: string(f.Unit), Valid: true}
}
