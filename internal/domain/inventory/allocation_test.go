package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/inventory"
)

func TestPlanDeductions_BodegaPrimeroLuegoPiso(t *testing.T) {
	locs := []entity.Location{
		loc("piso", entity.LocationFloor, 2),
		loc("bod", entity.LocationWarehouse, 3),
		loc("tras", entity.LocationBackroom, 0),
	}
	plan, outstanding := inventory.PlanDeductions(4, locs)

	assert.Equal(t, 0, outstanding)
	assert.Equal(t, []inventory.Deduction{
		{LocationID: "bod", Quantity: 3},
		{LocationID: "piso", Quantity: 1},
	}, plan)
}

func TestPlanDeductions_StockInsuficienteDejaPendiente(t *testing.T) {
	plan, outstanding := inventory.PlanDeductions(4, []entity.Location{loc("bod", entity.LocationWarehouse, 1)})

	assert.Equal(t, 3, outstanding)
	assert.Equal(t, []inventory.Deduction{{LocationID: "bod", Quantity: 1}}, plan)
}

func TestPlanDeductions_VisitaVariasUbicacionesDelMismoTipo(t *testing.T) {
	locs := []entity.Location{
		loc("bod1", entity.LocationWarehouse, 1),
		loc("bod2", entity.LocationWarehouse, 2),
		loc("piso", entity.LocationFloor, 5),
	}
	plan, outstanding := inventory.PlanDeductions(3, locs)

	assert.Equal(t, 0, outstanding)
	assert.Equal(t, []inventory.Deduction{
		{LocationID: "bod1", Quantity: 1},
		{LocationID: "bod2", Quantity: 2},
	}, plan, "no debe tocar el piso si la bodega alcanza")
}

func TestPlanDeductions_SinUbicaciones(t *testing.T) {
	plan, outstanding := inventory.PlanDeductions(2, nil)
	assert.Empty(t, plan)
	assert.Equal(t, 2, outstanding)
}

func TestApplyDeductions_ConservaTotalMenosDescontado(t *testing.T) {
	locs := []entity.Location{
		loc("bod", entity.LocationWarehouse, 3),
		loc("piso", entity.LocationFloor, 2),
	}
	before := inventory.TotalStock(locs)
	plan, _ := inventory.PlanDeductions(4, locs)
	changed := inventory.ApplyDeductions(locs, plan)

	assert.Len(t, changed, 2)
	assert.Equal(t, 0, locs[0].Quantity)
	assert.Equal(t, 1, locs[1].Quantity)
	assert.Equal(t, before-4, inventory.TotalStock(locs))
}
