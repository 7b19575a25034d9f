package repository

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para comandas y sus líneas.
type OrderRepository interface {
	// Create persiste la comanda junto con sus Items.
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetByIDForUpdate bloquea la fila de la comanda hasta el fin de la tx.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Order, error)
	// SaveFulfillment persiste estado, fecha/usuario de entrega y las cantidades pendientes de cada ítem.
	SaveFulfillment(ctx context.Context, order *entity.Order) error
	List(ctx context.Context, status string, limit, offset int) ([]*entity.Order, error)
	CountByStatus(ctx context.Context, status string) (int, error)
}
