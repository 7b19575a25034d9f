package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo comandas en memoria.
type OrderRepo struct{ base }

// Create guarda la comanda con sus líneas y asigna IDs faltantes.
func (r *OrderRepo) Create(_ context.Context, order *entity.Order) error {
	return r.with(func(st *state) error {
		if order.ID == "" {
			order.ID = uuid.New().String()
		}
		if _, ok := st.orders[order.ID]; ok {
			return domain.ErrDuplicate
		}
		for i := range order.Items {
			if order.Items[i].ID == "" {
				order.Items[i].ID = uuid.New().String()
			}
			order.Items[i].OrderID = order.ID
		}
		st.orders[order.ID] = copyOrder(*order)
		st.orderOrder = append(st.orderOrder, order.ID)
		return nil
	})
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.with(func(st *state) error {
		if o, ok := st.orders[id]; ok {
			c := copyOrder(o)
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *OrderRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

// SaveFulfillment persiste estado, datos de entrega y cantidades pendientes de las líneas.
func (r *OrderRepo) SaveFulfillment(_ context.Context, order *entity.Order) error {
	return r.with(func(st *state) error {
		cur, ok := st.orders[order.ID]
		if !ok {
			return domain.ErrNotFound
		}
		qty := make(map[string]int, len(order.Items))
		for _, it := range order.Items {
			qty[it.ID] = it.Quantity
		}
		cur.Status = order.Status
		cur.DeliveredBy = order.DeliveredBy
		if order.DeliveredAt != nil {
			t := *order.DeliveredAt
			cur.DeliveredAt = &t
		}
		for i := range cur.Items {
			if q, ok := qty[cur.Items[i].ID]; ok {
				cur.Items[i].Quantity = q
			}
		}
		st.orders[order.ID] = cur
		return nil
	})
}

// List del más nuevo al más antiguo; status vacío devuelve todas.
func (r *OrderRepo) List(_ context.Context, status string, limit, offset int) ([]*entity.Order, error) {
	var out []*entity.Order
	err := r.with(func(st *state) error {
		skipped := 0
		for i := len(st.orderOrder) - 1; i >= 0; i-- {
			o := st.orders[st.orderOrder[i]]
			if status != "" && o.Status != status {
				continue
			}
			if skipped < offset {
				skipped++
				continue
			}
			if limit > 0 && len(out) >= limit {
				break
			}
			c := copyOrder(o)
			out = append(out, &c)
		}
		return nil
	})
	return out, err
}

func (r *OrderRepo) CountByStatus(_ context.Context, status string) (int, error) {
	n := 0
	err := r.with(func(st *state) error {
		for _, o := range st.orders {
			if status == "" || o.Status == status {
				n++
			}
		}
		return nil
	})
	return n, err
}
