package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/inventory"
)

func loc(id string, kind entity.LocationKind, qty int, photos ...string) entity.Location {
	return entity.Location{ID: id, ProductID: "p1", Kind: kind, Quantity: qty, Photos: photos}
}

func TestTotalStock_SumaTodasLasUbicaciones(t *testing.T) {
	locs := []entity.Location{
		loc("a", entity.LocationWarehouse, 3),
		loc("b", entity.LocationBackroom, 0),
		loc("c", entity.LocationFloor, 2),
		loc("d", entity.LocationFloor, 7),
	}
	assert.Equal(t, 12, inventory.TotalStock(locs))
	assert.Equal(t, 0, inventory.TotalStock(nil))
}

func TestStockByKind_AgrupaPorTipo(t *testing.T) {
	locs := []entity.Location{
		loc("a", entity.LocationWarehouse, 3),
		loc("b", entity.LocationFloor, 2),
		loc("c", entity.LocationFloor, 5),
	}
	byKind := inventory.StockByKind(locs)
	assert.Equal(t, 3, byKind[entity.LocationWarehouse])
	assert.Equal(t, 7, byKind[entity.LocationFloor])
	_, ok := byKind[entity.LocationBackroom]
	assert.False(t, ok, "no debe incluir tipos ausentes")
}

func TestSortForFulfillment_BodegaTrastiendaPiso(t *testing.T) {
	locs := []entity.Location{
		loc("piso1", entity.LocationFloor, 1),
		loc("bod1", entity.LocationWarehouse, 1),
		loc("tras", entity.LocationBackroom, 1),
		loc("bod2", entity.LocationWarehouse, 1),
	}
	sorted := inventory.SortForFulfillment(locs)
	ids := make([]string, 0, len(sorted))
	for _, l := range sorted {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []string{"bod1", "bod2", "tras", "piso1"}, ids)
	assert.Equal(t, "piso1", locs[0].ID, "no debe mutar el slice original")
}

func TestDisplayLocation_PrefiereFotoEnPrioridadDeExhibicion(t *testing.T) {
	locs := []entity.Location{
		loc("bod", entity.LocationWarehouse, 10, "bod.jpg"),
		loc("piso", entity.LocationFloor, 1),
		loc("tras", entity.LocationBackroom, 1, "tras.jpg"),
	}
	got := inventory.DisplayLocation(locs)
	require.NotNil(t, got)
	assert.Equal(t, "tras", got.ID, "trastienda con foto gana a piso sin foto")
}

func TestDisplayLocation_SinFotosDevuelvePrimeraEnPrioridad(t *testing.T) {
	locs := []entity.Location{
		loc("bod", entity.LocationWarehouse, 10),
		loc("tras", entity.LocationBackroom, 1),
	}
	got := inventory.DisplayLocation(locs)
	require.NotNil(t, got)
	assert.Equal(t, "tras", got.ID)
}

func TestDisplayLocation_SinUbicaciones(t *testing.T) {
	assert.Nil(t, inventory.DisplayLocation(nil))
}
