package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*MovementRepo)(nil)

// MovementRepo bitácora de movimientos en memoria (solo inserción).
type MovementRepo struct{ base }

func (r *MovementRepo) Create(_ context.Context, movement *entity.InventoryMovement) error {
	return r.with(func(st *state) error {
		if movement.ID == "" {
			movement.ID = uuid.New().String()
		}
		st.movements = append(st.movements, *movement)
		return nil
	})
}

func (r *MovementRepo) ListByTransaction(_ context.Context, transactionID string) ([]entity.InventoryMovement, error) {
	var out []entity.InventoryMovement
	err := r.with(func(st *state) error {
		for _, m := range st.movements {
			if m.TransactionID == transactionID {
				out = append(out, m)
			}
		}
		return nil
	})
	return out, err
}
