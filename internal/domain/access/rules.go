package access

import "strings"

// Las reglas trabajan sobre strings planos (unidad, encargado) y no
// sobre los tipos de equipment/issues, para que esos paquetes puedan
// importar este sin ciclos. La visibilidad tiene un único punto de
// verdad (CanSeeEquipment); los filtros por colección viven junto a
// cada tipo de registro y delegan acá.

// CanSeeEquipment decide si el actor puede ver un equipo dados su
// unidad y su encargado. UNIT_MANAGER sin unidad => false para todo
// (fail closed); rol desconocido => ErrUnknownRole.
func CanSeeEquipment(a Actor, locationUnit, assignedUserID string) (bool, error) {
	switch a.Role {
	case RoleAdmin:
		return true, nil
	case RoleUnitManager:
		unit := strings.TrimSpace(a.Unit)
		if unit == "" {
			return false, nil
		}
		return unit == locationUnit, nil
	case RoleEquipmentManager:
		return a.ID != "" && a.ID == assignedUserID, nil
	default:
		return false, ErrUnknownRole
	}
}

// MisconfiguredScope detecta la configuración inválida que los filtros
// deben reportar (además de cerrar el acceso).
func MisconfiguredScope(a Actor) error {
	if a.Role == RoleUnitManager && strings.TrimSpace(a.Unit) == "" {
		return ErrUnitManagerWithoutUnit
	}
	return nil
}

// --- Autorización de escritura ---
// Independiente del alcance de lectura: poder ver un registro no
// implica poder mutarlo.

// CanManageEquipment: crear/editar equipos y agregar registros de
// mantención. Admin siempre; jefe de unidad solo dentro de su unidad.
func CanManageEquipment(a Actor, locationUnit string) bool {
	switch a.Role {
	case RoleAdmin:
		return true
	case RoleUnitManager:
		unit := strings.TrimSpace(a.Unit)
		return unit != "" && unit == locationUnit
	default:
		return false
	}
}

// CanDeleteEquipment: solo el administrador elimina equipos.
func CanDeleteEquipment(a Actor) bool {
	return a.Role == RoleAdmin
}

// CanCreateIssue: cualquier actor autenticado puede reportar una incidencia.
func CanCreateIssue(a Actor) bool {
	return strings.TrimSpace(a.ID) != ""
}

// CanManageIssue: editar/eliminar incidencias. Admin siempre; jefe de
// unidad solo para incidencias de equipos de su unidad.
func CanManageIssue(a Actor, equipmentUnit string) bool {
	switch a.Role {
	case RoleAdmin:
		return true
	case RoleUnitManager:
		unit := strings.TrimSpace(a.Unit)
		return unit != "" && unit == equipmentUnit
	default:
		return false
	}
}

// CanDeleteNotification: solo el administrador borra notificaciones.
func CanDeleteNotification(a Actor) bool {
	return a.Role == RoleAdmin
}
