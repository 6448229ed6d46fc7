package notifications

import "time"

// Kind clasifica la notificación para la UI.
// @Enum info, warning, error, success
type Kind string

const (
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
	KindSuccess Kind = "success"
)

// Notification es un aviso del sistema. Este módulo solo lo exhibe y
// administra; la generación y el envío quedan fuera del servicio.
type Notification struct {
	ID      string
	Kind    Kind
	Message string
	Details string
	Link    string

	Timestamp time.Time
	IsRead    bool
}
