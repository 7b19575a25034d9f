package inventory

import "github.com/jhoicas/bodega-api/internal/domain/entity"

// Deduction cantidad a descontar de una ubicación concreta.
type Deduction struct {
	LocationID string
	Quantity   int
}

// PlanDeductions calcula de qué ubicaciones sale la cantidad solicitada.
// Recorre en prioridad de entrega, toma min(stock, pendiente) de cada ubicación con stock
// y se detiene al cubrir lo pedido. Devuelve el plan y la cantidad que quedó sin cubrir.
// No modifica locations.
func PlanDeductions(requested int, locations []entity.Location) ([]Deduction, int) {
	outstanding := requested
	var plan []Deduction
	for _, loc := range SortForFulfillment(locations) {
		if outstanding <= 0 {
			break
		}
		if loc.Quantity <= 0 {
			continue
		}
		take := min(loc.Quantity, outstanding)
		plan = append(plan, Deduction{LocationID: loc.ID, Quantity: take})
		outstanding -= take
	}
	if outstanding < 0 {
		outstanding = 0
	}
	return plan, outstanding
}

// ApplyDeductions aplica el plan sobre las ubicaciones (en memoria) y devuelve las afectadas
// con su nueva cantidad. El plan debe venir de PlanDeductions sobre las mismas ubicaciones.
func ApplyDeductions(locations []entity.Location, plan []Deduction) []entity.Location {
	byID := make(map[string]int, len(locations))
	for i := range locations {
		byID[locations[i].ID] = i
	}
	changed := make([]entity.Location, 0, len(plan))
	for _, d := range plan {
		i, ok := byID[d.LocationID]
		if !ok {
			continue
		}
		locations[i].Quantity -= d.Quantity
		changed = append(changed, locations[i])
	}
	return changed
}
