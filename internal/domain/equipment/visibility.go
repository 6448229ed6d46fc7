package equipment

import (
	"context"

	"lab-equipment-maintenance/internal/domain/access"
)

// Estos métodos existen para que el módulo de incidencias consulte
// visibilidad y unidad sin importar este paquete (rompe ciclos,
// mismo patrón que un lookup por interfaz pequeña).

// VisibleEquipmentIDs devuelve el conjunto de IDs de equipos que el
// actor puede ver, usando exactamente el mismo filtro que el listado.
func (s *Service) VisibleEquipmentIDs(ctx context.Context, actor access.Actor) (map[string]struct{}, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	scoped, err := ScopeForActor(actor, items)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]struct{}, len(scoped))
	for _, e := range scoped {
		ids[e.ID] = struct{}{}
	}
	return ids, nil
}

// UnitOf expone la unidad de un equipo (para chequeos de escritura
// sobre incidencias).
func (s *Service) UnitOf(ctx context.Context, equipmentID string) (string, error) {
	e, err := s.repo.GetByID(ctx, equipmentID)
	if err != nil {
		return "", ErrNotFound
	}
	return e.LocationUnit, nil
}
