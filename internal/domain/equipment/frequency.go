package equipment

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FrequencyFields es la forma anidada {value, unit} del wire.
// Value queda como any porque los clientes antiguos mandan números,
// strings numéricos o basura; todo eso se resuelve a nil, no a error.
type FrequencyFields struct {
	Value any    `json:"value"`
	Unit  string `json:"unit"`
}

// FrequencyPayload reúne las dos formas en que un cliente puede enviar
// la frecuencia de mantención: anidada (forma nueva) o aplanada en dos
// campos sueltos (forma antigua). Se prefiere la anidada si viene bien
// formada; si no, se arma desde los campos aplanados.
type FrequencyPayload struct {
	Frequency      *FrequencyFields `json:"maintenance_frequency,omitempty"`
	FrequencyValue any              `json:"maintenance_frequency_value,omitempty"`
	FrequencyUnit  string           `json:"maintenance_frequency_unit,omitempty"`
}

// unitAliases mapea cada alias reconocido (símbolo o etiqueta en
// español de la UI antigua) a exactamente una unidad canónica.
// Las claves van en minúsculas; se listan las variantes con y sin tilde.
var unitAliases = map[string]FrequencyUnit{
	"days": UnitDays, "day": UnitDays,
	"días": UnitDays, "dias": UnitDays, "día": UnitDays, "dia": UnitDays,

	"weeks": UnitWeeks, "week": UnitWeeks,
	"semanas": UnitWeeks, "semana": UnitWeeks,

	"months": UnitMonths, "month": UnitMonths,
	"meses": UnitMonths, "mes": UnitMonths,

	"years": UnitYears, "year": UnitYears,
	"años": UnitYears, "anos": UnitYears, "año": UnitYears, "ano": UnitYears,
}

// NormalizeFrequency convierte cualquiera de las formas del wire al par
// canónico. Devuelve nil cuando no hay frecuencia utilizable: unidad
// desconocida, valor no numérico o valor < 1. Nunca falla.
func NormalizeFrequency(p FrequencyPayload) *MaintenanceFrequency {
	if p.Frequency != nil {
		if f := normalizePair(p.Frequency.Value, p.Frequency.Unit); f != nil {
			return f
		}
	}
	return normalizePair(p.FrequencyValue, p.FrequencyUnit)
}

func normalizePair(value any, unit string) *MaintenanceFrequency {
	u, ok := parseUnit(unit)
	if !ok {
		return nil
	}
	v, ok := coerceValue(value)
	if !ok || v < 1 {
		return nil
	}
	return &MaintenanceFrequency{Value: v, Unit: u}
}

func parseUnit(raw string) (FrequencyUnit, bool) {
	u, ok := unitAliases[strings.ToLower(strings.TrimSpace(raw))]
	return u, ok
}

// coerceValue acepta los tipos con que json y los repos entregan el
// valor. Solo enteros: 6.5 mantenciones no significa nada.
func coerceValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
