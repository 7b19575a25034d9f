package repository

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los métodos Get* devuelven (nil, nil) cuando no existe el registro.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	// Search busca por nombre o SKU (contiene, sin distinguir mayúsculas).
	// Si term son 4 dígitos también coincide con los SKU que terminan en term.
	Search(ctx context.Context, term string, limit int) ([]*entity.Product, error)
	Count(ctx context.Context) (int, error)
}
