package inventory

import (
	"sort"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// Prioridad de descuento al entregar una comanda: primero bodega, luego trastienda, al final piso.
var fulfillmentPriority = map[entity.LocationKind]int{
	entity.LocationWarehouse: 0,
	entity.LocationBackroom:  1,
	entity.LocationFloor:     2,
}

// Prioridad de exhibición (inversa): el cliente interactúa primero con el piso de venta.
var displayPriority = map[entity.LocationKind]int{
	entity.LocationFloor:     0,
	entity.LocationBackroom:  1,
	entity.LocationWarehouse: 2,
}

// TotalStock suma las cantidades de todas las ubicaciones del producto.
func TotalStock(locations []entity.Location) int {
	total := 0
	for _, l := range locations {
		total += l.Quantity
	}
	return total
}

// StockByKind agrupa el stock por tipo de ubicación. Solo incluye los tipos presentes.
func StockByKind(locations []entity.Location) map[entity.LocationKind]int {
	out := make(map[entity.LocationKind]int, 3)
	for _, l := range locations {
		out[l.Kind] += l.Quantity
	}
	return out
}

// SortForFulfillment devuelve una copia ordenada bodega → trastienda → piso.
// Dentro de cada tipo conserva el orden de creación; tipos desconocidos van al final.
func SortForFulfillment(locations []entity.Location) []entity.Location {
	return sortByPriority(locations, fulfillmentPriority)
}

// SortForDisplay devuelve una copia ordenada piso → trastienda → bodega.
func SortForDisplay(locations []entity.Location) []entity.Location {
	return sortByPriority(locations, displayPriority)
}

// DisplayLocation elige la ubicación a mostrar al cliente (pasillo/rack y foto del área):
// la primera en prioridad de exhibición que tenga foto; si ninguna tiene, la primera.
// Devuelve nil si el producto no tiene ubicaciones.
func DisplayLocation(locations []entity.Location) *entity.Location {
	if len(locations) == 0 {
		return nil
	}
	sorted := SortForDisplay(locations)
	for i := range sorted {
		if len(sorted[i].Photos) > 0 {
			return &sorted[i]
		}
	}
	return &sorted[0]
}

func sortByPriority(locations []entity.Location, priority map[entity.LocationKind]int) []entity.Location {
	out := make([]entity.Location, len(locations))
	copy(out, locations)
	rank := func(k entity.LocationKind) int {
		if p, ok := priority[k]; ok {
			return p
		}
		return len(priority)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return rank(out[i].Kind) < rank(out[j].Kind)
	})
	return out
}
