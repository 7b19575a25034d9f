package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, requested_by, requested_for, status, created_at, delivered_at, COALESCE(delivered_by, '')`

// OrderRepo comandas y sus líneas sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta la cabecera y las líneas. Usar dentro de una tx para que sea atómico.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO orders (id, requested_by, requested_for, status, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		order.ID, order.RequestedBy, order.RequestedFor, order.Status, order.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	for i, it := range order.Items {
		photos := it.Photos
		if photos == nil {
			photos = []string{}
		}
		_, err := r.q.Exec(ctx, `
			INSERT INTO order_items (id, order_id, position, sku, name, quantity, photos)
			VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)`,
			it.ID, order.ID, i, it.SKU, it.Name, it.Quantity, photos,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
		order.Items[i].OrderID = order.ID
	}
	return nil
}

// GetByID obtiene la comanda con sus líneas.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// GetByIDForUpdate como GetByID pero bloquea la cabecera hasta el fin de la tx.
func (r *OrderRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *OrderRepo) get(ctx context.Context, query, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidTextRepresentation(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	items, err := r.itemsByOrder(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return o, nil
}

// SaveFulfillment persiste estado, datos de entrega y la cantidad pendiente de cada línea.
func (r *OrderRepo) SaveFulfillment(ctx context.Context, order *entity.Order) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE orders SET status = $2, delivered_at = $3, delivered_by = NULLIF($4, '')
		WHERE id = $1`,
		order.ID, order.Status, order.DeliveredAt, order.DeliveredBy,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	for _, it := range order.Items {
		if _, err := r.q.Exec(ctx, `UPDATE order_items SET quantity = $2 WHERE id = $1`, it.ID, it.Quantity); err != nil {
			return fmt.Errorf("update order item: %w", err)
		}
	}
	return nil
}

// List comandas de la más nueva a la más antigua; status vacío = todas.
func (r *OrderRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`,
		status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	var ids []string
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	items, err := r.itemsByOrder(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, o := range list {
		o.Items = items[o.ID]
	}
	return list, nil
}

// CountByStatus cuenta comandas en un estado (vacío = todas).
func (r *OrderRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM orders WHERE ($1 = '' OR status = $1)`, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

func (r *OrderRepo) itemsByOrder(ctx context.Context, orderIDs []string) (map[string][]entity.OrderItem, error) {
	out := make(map[string][]entity.OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, COALESCE(sku, ''), name, quantity, photos
		FROM order_items WHERE order_id = ANY($1::uuid[]) ORDER BY order_id, position`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.SKU, &it.Name, &it.Quantity, &it.Photos); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out, rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	if err := row.Scan(&o.ID, &o.RequestedBy, &o.RequestedFor, &o.Status, &o.CreatedAt, &o.DeliveredAt, &o.DeliveredBy); err != nil {
		return nil, err
	}
	return &o, nil
}
