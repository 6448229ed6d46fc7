package issues

import "time"

// Attachment es metadata del adjunto; el archivo vive fuera del servicio.
type Attachment struct {
	Name    string
	Locator string
}

// IssueReport es una incidencia reportada sobre un equipo. Referencia
// al equipo por ID, nunca lo embebe.
type IssueReport struct {
	ID          string
	EquipmentID string

	ReportedBy  string
	DateTime    time.Time
	Description string

	Severity Severity
	Status   Status

	Attachments []Attachment
}
