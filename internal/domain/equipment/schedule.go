package equipment

import "time"

// Este archivo concentra toda la aritmética de fechas de mantención.
// Hubo versiones anteriores que aproximaban un mes a 30 días; eso
// corre la fecha varios días por ciclo y se acumula en historiales de
// años, así que acá solo hay aritmética de calendario real.

// maxYear acota el resultado del cálculo; más allá de esto la fecha
// no es un dato sino un error de captura (p.ej. value = 99999 años).
const maxYear = 9999

// NextDueDate calcula la próxima mantención avanzando la última fecha
// según la frecuencia. Devuelve nil si falta cualquiera de los dos
// insumos o si el resultado queda fuera de rango: un equipo sin
// historial no es un error, es un estado válido y común.
func NextDueDate(last *time.Time, f *MaintenanceFrequency) *time.Time {
	if last == nil || f == nil || f.Value < 1 {
		return nil
	}

	base := truncateToDay(*last)

	var due time.Time
	switch f.Unit {
	case UnitDays:
		due = base.AddDate(0, 0, f.Value)
	case UnitWeeks:
		due = base.AddDate(0, 0, f.Value*7)
	case UnitMonths:
		due = addMonthsClamped(base, f.Value)
	case UnitYears:
		due = addMonthsClamped(base, f.Value*12)
	default:
		return nil
	}

	if due.Year() < 1 || due.Year() > maxYear {
		return nil
	}
	return &due
}

// ClassifyStatus asigna el estado según la próxima fecha de mantención.
// Sin fecha => ON_TRACK (no se puede juzgar vencido lo que nunca se ha
// mantenido). La comparación es por día calendario, no por hora, para
// que el estado no cambie dentro del mismo día. Bordes:
//
//	due <  hoy          => OVERDUE
//	hoy <= due < hoy+1m => UPCOMING (due == hoy cuenta como UPCOMING)
//	due >= hoy+1m       => ON_TRACK
func ClassifyStatus(nextDue *time.Time, now time.Time) Status {
	if nextDue == nil {
		return StatusOnTrack
	}

	today := truncateToDay(now)
	due := truncateToDay(*nextDue)
	horizon := addMonthsClamped(today, 1)

	switch {
	case due.Before(today):
		return StatusOverdue
	case due.Before(horizon):
		return StatusUpcoming
	default:
		return StatusOnTrack
	}
}

// Project es el único punto de composición de los campos derivados.
// Toda superficie que lea equipos (listado, detalle, dashboard) debe
// pasar por acá; reimplementar el cálculo en otro lado es justamente
// el bug que esta función elimina.
func Project(e Equipment, now time.Time) Projected {
	due := NextDueDate(e.LastMaintenanceDate, e.MaintenanceFrequency)
	return Projected{
		Equipment:           e,
		Status:              ClassifyStatus(due, now),
		NextMaintenanceDate: due,
	}
}

// ProjectAll proyecta una colección con el mismo instante para todas.
func ProjectAll(items []Equipment, now time.Time) []Projected {
	out := make([]Projected, 0, len(items))
	for _, e := range items {
		out = append(out, Project(e, now))
	}
	return out
}

// addMonthsClamped suma meses calendario ajustando el día al largo del
// mes destino: 31-ene + 1m => 28/29-feb, 29-feb + 12m => 28-feb en año
// no bisiesto. time.AddDate normaliza el desborde (31-ene + 1m daría
// 2/3-mar), por eso el ajuste se hace a mano.
func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()

	total := y*12 + int(m) - 1 + months
	ny, nm := total/12, time.Month(total%12+1)

	if last := daysIn(ny, nm); d > last {
		d = last
	}
	return time.Date(ny, nm, d, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	// día 0 del mes siguiente == último día del mes
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
