package equipment

// FrequencyUnit define las unidades de frecuencia de mantención soportadas.
// @Enum DAYS, WEEKS, MONTHS, YEARS
type FrequencyUnit string

const (
	UnitDays   FrequencyUnit = "DAYS"
	UnitWeeks  FrequencyUnit = "WEEKS"
	UnitMonths FrequencyUnit = "MONTHS"
	UnitYears  FrequencyUnit = "YEARS"
)

// Criticality define la criticidad operacional del equipo.
// @Enum LOW, MEDIUM, HIGH
type Criticality string

const (
	CriticalityLow    Criticality = "LOW"
	CriticalityMedium Criticality = "MEDIUM"
	CriticalityHigh   Criticality = "HIGH"
)

// Status es el estado de mantención derivado. Nunca se persiste:
// se recalcula en cada lectura a partir de la última mantención,
// la frecuencia y el instante de evaluación.
type Status string

const (
	StatusOnTrack  Status = "ON_TRACK"
	StatusUpcoming Status = "UPCOMING"
	StatusOverdue  Status = "OVERDUE"
)
