package repository

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// LocationRepository define el puerto para las ubicaciones de stock de cada producto.
// Las listas se devuelven en orden de creación.
type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	ListByProduct(ctx context.Context, productID string) ([]entity.Location, error)
	// ListByProductForUpdate bloquea las ubicaciones del producto hasta el fin de la tx (SELECT FOR UPDATE).
	ListByProductForUpdate(ctx context.Context, productID string) ([]entity.Location, error)
	ListByProducts(ctx context.Context, productIDs []string) (map[string][]entity.Location, error)
	UpdateQuantity(ctx context.Context, locationID string, quantity int) error
	DistinctAisles(ctx context.Context) ([]string, error)
}
