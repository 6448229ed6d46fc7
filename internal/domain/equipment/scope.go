package equipment

import "lab-equipment-maintenance/internal/domain/access"

// ScopeForActor filtra la colección al subconjunto que el actor puede
// ver. Es el único filtro de visibilidad de equipos: listado, detalle
// y dashboard pasan por acá para que nunca discrepen entre sí.
//
// Un UNIT_MANAGER sin unidad recibe cero registros y además se
// devuelve ErrUnitManagerWithoutUnit para que el caller reporte la
// configuración inválida (fail closed, nunca "todo" ni un "nada"
// silencioso). Un rol desconocido aborta con ErrUnknownRole.
func ScopeForActor(a access.Actor, items []Equipment) ([]Equipment, error) {
	if err := access.MisconfiguredScope(a); err != nil {
		return []Equipment{}, err
	}

	out := make([]Equipment, 0, len(items))
	for _, e := range items {
		ok, err := access.CanSeeEquipment(a, e.LocationUnit, e.AssignedUserID)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, e)
		}
	}
	return out, nil
}
