package inventory

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error (o el contexto se cancela) no se persiste nada de lo hecho en fn.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		locationRepo repository.LocationRepository,
		orderRepo repository.OrderRepository,
		movRepo repository.InventoryMovementRepository,
	) error) error
}

// OrderLocker exclusión mutua por comanda entre réplicas del servicio.
// Si otra réplica tiene el candado devuelve domain.ErrConcurrencyConflict.
type OrderLocker interface {
	Lock(ctx context.Context, orderID string) (unlock func(), err error)
}

// NoopLocker candado vacío: la transacción con bloqueo de filas ya serializa las entregas.
type NoopLocker struct{}

// Lock no bloquea nada.
func (NoopLocker) Lock(context.Context, string) (func(), error) { return func() {}, nil }
