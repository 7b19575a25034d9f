package repository

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// InventoryMovementRepository define el puerto del libro de movimientos.
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	ListByTransaction(ctx context.Context, transactionID string) ([]entity.InventoryMovement, error)
}
