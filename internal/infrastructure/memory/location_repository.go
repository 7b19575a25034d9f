package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo ubicaciones en memoria, en orden de creación por producto.
type LocationRepo struct{ base }

func (r *LocationRepo) Create(_ context.Context, location *entity.Location) error {
	return r.with(func(st *state) error {
		if _, ok := st.products[location.ProductID]; !ok {
			return domain.ErrNotFound
		}
		if location.Quantity < 0 {
			return fmt.Errorf("%w: cantidad negativa", domain.ErrInvalidInput)
		}
		if location.ID == "" {
			location.ID = uuid.New().String()
		}
		st.locations[location.ID] = copyLocation(*location)
		st.locsByProduct[location.ProductID] = append(st.locsByProduct[location.ProductID], location.ID)
		return nil
	})
}

func (r *LocationRepo) ListByProduct(_ context.Context, productID string) ([]entity.Location, error) {
	var out []entity.Location
	err := r.with(func(st *state) error {
		out = listLocations(st, productID)
		return nil
	})
	return out, err
}

// ListByProductForUpdate en memoria el mutex de la tx ya da exclusividad.
func (r *LocationRepo) ListByProductForUpdate(ctx context.Context, productID string) ([]entity.Location, error) {
	return r.ListByProduct(ctx, productID)
}

func (r *LocationRepo) ListByProducts(_ context.Context, productIDs []string) (map[string][]entity.Location, error) {
	out := make(map[string][]entity.Location, len(productIDs))
	err := r.with(func(st *state) error {
		for _, id := range productIDs {
			if locs := listLocations(st, id); len(locs) > 0 {
				out[id] = locs
			}
		}
		return nil
	})
	return out, err
}

func (r *LocationRepo) UpdateQuantity(_ context.Context, locationID string, quantity int) error {
	return r.with(func(st *state) error {
		loc, ok := st.locations[locationID]
		if !ok {
			return domain.ErrNotFound
		}
		if quantity < 0 {
			return fmt.Errorf("%w: cantidad negativa", domain.ErrInvalidInput)
		}
		loc.Quantity = quantity
		st.locations[locationID] = loc
		return nil
	})
}

func (r *LocationRepo) DistinctAisles(_ context.Context) ([]string, error) {
	var out []string
	err := r.with(func(st *state) error {
		seen := map[string]bool{}
		for _, l := range st.locations {
			if l.Aisle != "" && !seen[l.Aisle] {
				seen[l.Aisle] = true
				out = append(out, l.Aisle)
			}
		}
		return nil
	})
	sort.Strings(out)
	return out, err
}

func listLocations(st *state, productID string) []entity.Location {
	ids := st.locsByProduct[productID]
	out := make([]entity.Location, 0, len(ids))
	for _, id := range ids {
		out = append(out, copyLocation(st.locations[id]))
	}
	return out
}
