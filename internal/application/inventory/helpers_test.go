package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testStaffID = "00000000-0000-0000-0000-0000000000aa"

// addProduct crea un producto con una ubicación por cada par (tipo, cantidad), en ese orden.
func addProduct(t *testing.T, s *memory.Store, sku string, locs ...any) *entity.Product {
	t.Helper()
	ctx := context.Background()
	p := &entity.Product{SKU: sku, Name: "Producto " + sku, CreatedAt: time.Now()}
	require.NoError(t, s.Products().Create(ctx, p))
	for i := 0; i+1 < len(locs); i += 2 {
		l := &entity.Location{
			ProductID: p.ID,
			Kind:      locs[i].(entity.LocationKind),
			Quantity:  locs[i+1].(int),
		}
		require.NoError(t, s.Locations().Create(ctx, l))
	}
	return p
}

func addOrder(t *testing.T, s *memory.Store, items ...entity.OrderItem) *entity.Order {
	t.Helper()
	o := &entity.Order{
		RequestedBy:  "ana@tienda.com",
		RequestedFor: "10:00",
		Status:       entity.OrderStatusPending,
		CreatedAt:    time.Now(),
		Items:        items,
	}
	require.NoError(t, s.Orders().Create(context.Background(), o))
	return o
}

// quantities cantidades por tipo de ubicación, en orden de creación.
func quantities(t *testing.T, s *memory.Store, productID string) map[entity.LocationKind][]int {
	t.Helper()
	locs, err := s.Locations().ListByProduct(context.Background(), productID)
	require.NoError(t, err)
	out := map[entity.LocationKind][]int{}
	for _, l := range locs {
		out[l.Kind] = append(out[l.Kind], l.Quantity)
	}
	return out
}

func totalStock(t *testing.T, s *memory.Store, productID string) int {
	t.Helper()
	n := 0
	for _, qs := range quantities(t, s, productID) {
		for _, q := range qs {
			n += q
		}
	}
	return n
}
