package access

import "errors"

// Role define los roles cerrados del sistema.
// @Enum ADMIN, UNIT_MANAGER, EQUIPMENT_MANAGER
type Role string

const (
	// RoleAdmin administra toda la plataforma.
	RoleAdmin Role = "ADMIN"
	// RoleUnitManager gestiona los equipos de su unidad (requiere Unit).
	RoleUnitManager Role = "UNIT_MANAGER"
	// RoleEquipmentManager es el encargado de equipos asignados a su persona.
	RoleEquipmentManager Role = "EQUIPMENT_MANAGER"
)

var (
	// ErrUnknownRole indica una violación de contrato del caller
	// (valor de rol fuera del enum), no una variación normal de datos.
	ErrUnknownRole = errors.New("unknown role")

	// ErrUnitManagerWithoutUnit es un error de configuración: un jefe
	// de unidad sin unidad asignada. El filtro cierra el acceso (cero
	// registros) y devuelve este error para que el caller lo reporte.
	ErrUnitManagerWithoutUnit = errors.New("unit manager without unit")
)

// ParseRole valida un rol que viene del exterior (token, header dev).
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleAdmin, RoleUnitManager, RoleEquipmentManager:
		return Role(raw), true
	default:
		return "", false
	}
}

// Actor es quien consulta o muta registros. Solo entra como insumo de
// los filtros y chequeos; este paquete no lo persiste ni lo administra.
type Actor struct {
	ID   string
	Role Role

	// Unit es obligatoria solo para UNIT_MANAGER.
	Unit string
}
