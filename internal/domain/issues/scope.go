package issues

import "lab-equipment-maintenance/internal/domain/access"

// ScopeForActor filtra incidencias al subconjunto cuyo equipo el actor
// puede ver. El conjunto de equipos visibles viene del módulo de
// equipos (mismo filtro que el listado) para que ambas superficies
// nunca discrepen. Mismas reglas de cierre que el filtro de equipos:
// UNIT_MANAGER sin unidad => cero registros + error reportable.
func ScopeForActor(a access.Actor, items []IssueReport, visibleEquipmentIDs map[string]struct{}) ([]IssueReport, error) {
	if err := access.MisconfiguredScope(a); err != nil {
		return []IssueReport{}, err
	}

	if a.Role == access.RoleAdmin {
		out := make([]IssueReport, len(items))
		copy(out, items)
		return out, nil
	}

	if _, ok := access.ParseRole(string(a.Role)); !ok {
		return nil, access.ErrUnknownRole
	}

	out := make([]IssueReport, 0, len(items))
	for _, ir := range items {
		if _, ok := visibleEquipmentIDs[ir.EquipmentID]; ok {
			out = append(out, ir)
		}
	}
	return out, nil
}
