package equipment

import "time"

// MaintenanceFrequency es el par canónico (valor, unidad).
// Inmutable una vez construido; value >= 1 siempre.
type MaintenanceFrequency struct {
	Value int
	Unit  FrequencyUnit
}

// Attachment es solo metadata del archivo adjunto; el almacenamiento
// real de archivos queda fuera de este servicio.
type Attachment struct {
	Name    string
	Locator string
}

// MaintenanceRecord es una entrada del historial de mantención.
// El historial es append-only: nunca se edita ni se borra.
type MaintenanceRecord struct {
	ID          string
	Date        time.Time
	Description string
	PerformedBy string
	Attachments []Attachment
}

// Equipment representa un equipo científico registrado en el sistema.
type Equipment struct {
	ID    string
	Name  string
	Brand string
	Model string

	LocationBuilding string
	LocationUnit     string

	LastMaintenanceDate *time.Time
	LastCalibrationDate *time.Time

	MaintenanceFrequency *MaintenanceFrequency
	CustomInstructions   string
	Criticality          Criticality

	// AssignedUserID es el encargado del equipo (rol EQUIPMENT_MANAGER).
	AssignedUserID string

	MaintenanceRecords []MaintenanceRecord

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Projected es un Equipment enriquecido con los campos derivados.
// Status y NextMaintenanceDate son función pura de
// (LastMaintenanceDate, MaintenanceFrequency, now); ver Project.
type Projected struct {
	Equipment

	Status              Status
	NextMaintenanceDate *time.Time
}
