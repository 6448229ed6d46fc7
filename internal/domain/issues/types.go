package issues

// Severity define la gravedad de una incidencia.
// @Enum MINOR, MODERATE, CRITICAL
type Severity string

const (
	SeverityMinor    Severity = "MINOR"
	SeverityModerate Severity = "MODERATE"
	SeverityCritical Severity = "CRITICAL"
)

// Status define el ciclo de vida de una incidencia.
// @Enum OPEN, IN_PROGRESS, RESOLVED
type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusResolved   Status = "RESOLVED"
)
