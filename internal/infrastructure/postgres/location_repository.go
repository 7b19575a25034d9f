package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

const locationColumns = `id, product_id, kind, aisle, rack, quantity, photos, created_at`

// LocationRepo ubicaciones de stock por producto. El orden de creación lo da la columna seq.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create agrega una ubicación. Nunca fusiona con ubicaciones existentes.
func (r *LocationRepo) Create(ctx context.Context, location *entity.Location) error {
	photos := location.Photos
	if photos == nil {
		photos = []string{}
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO product_locations (`+locationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		location.ID, location.ProductID, string(location.Kind), location.Aisle, location.Rack,
		location.Quantity, photos, location.CreatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: ubicación inválida", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// ListByProduct ubicaciones del producto en orden de creación.
func (r *LocationRepo) ListByProduct(ctx context.Context, productID string) ([]entity.Location, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+locationColumns+` FROM product_locations WHERE product_id = $1 ORDER BY seq`, productID)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return collectLocations(rows)
}

// ListByProductForUpdate como ListByProduct pero bloquea las filas hasta el fin de la tx (SELECT FOR UPDATE).
func (r *LocationRepo) ListByProductForUpdate(ctx context.Context, productID string) ([]entity.Location, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+locationColumns+` FROM product_locations WHERE product_id = $1 ORDER BY seq FOR UPDATE`, productID)
	if err != nil {
		return nil, fmt.Errorf("lock locations: %w", err)
	}
	return collectLocations(rows)
}

// ListByProducts ubicaciones de varios productos en una sola consulta.
func (r *LocationRepo) ListByProducts(ctx context.Context, productIDs []string) (map[string][]entity.Location, error) {
	out := make(map[string][]entity.Location, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+locationColumns+` FROM product_locations WHERE product_id = ANY($1::uuid[]) ORDER BY seq`, productIDs)
	if err != nil {
		return nil, fmt.Errorf("list locations by products: %w", err)
	}
	locs, err := collectLocations(rows)
	if err != nil {
		return nil, err
	}
	for _, l := range locs {
		out[l.ProductID] = append(out[l.ProductID], l)
	}
	return out, nil
}

// UpdateQuantity fija la cantidad de una ubicación (la columna tiene CHECK quantity >= 0).
func (r *LocationRepo) UpdateQuantity(ctx context.Context, locationID string, quantity int) error {
	cmd, err := r.q.Exec(ctx, `UPDATE product_locations SET quantity = $2 WHERE id = $1`, locationID, quantity)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: cantidad negativa", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update location quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DistinctAisles pasillos con al menos una ubicación, ordenados.
func (r *LocationRepo) DistinctAisles(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT aisle FROM product_locations WHERE aisle <> '' ORDER BY aisle`)
	if err != nil {
		return nil, fmt.Errorf("list aisles: %w", err)
	}
	aisles, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan aisle: %w", err)
	}
	return aisles, nil
}

func collectLocations(rows pgx.Rows) ([]entity.Location, error) {
	defer rows.Close()
	var list []entity.Location
	for rows.Next() {
		var l entity.Location
		var kind string
		if err := rows.Scan(&l.ID, &l.ProductID, &kind, &l.Aisle, &l.Rack, &l.Quantity, &l.Photos, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		l.Kind = entity.LocationKind(kind)
		list = append(list, l)
	}
	return list, rows.Err()
}
