package memory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct{ base }

// Create inserta un producto; SKU repetido devuelve domain.ErrDuplicate.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	return r.with(func(st *state) error {
		if _, ok := st.skuIndex[product.SKU]; ok {
			return domain.ErrDuplicate
		}
		if product.ID == "" {
			product.ID = uuid.New().String()
		}
		st.products[product.ID] = *product
		st.productOrder = append(st.productOrder, product.ID)
		st.skuIndex[product.SKU] = product.ID
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.with(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	var out *entity.Product
	err := r.with(func(st *state) error {
		if id, ok := st.skuIndex[sku]; ok {
			p := st.products[id]
			out = &p
		}
		return nil
	})
	return out, err
}

// Update reemplaza los campos editables. El SKU no cambia.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	return r.with(func(st *state) error {
		cur, ok := st.products[product.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Name = product.Name
		cur.Category = product.Category
		cur.Notes = product.Notes
		cur.ImageURL = product.ImageURL
		cur.ImageFile = product.ImageFile
		cur.UpdatedAt = product.UpdatedAt
		st.products[product.ID] = cur
		return nil
	})
}

// List devuelve los productos del más nuevo al más antiguo.
func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.with(func(st *state) error {
		for i := len(st.productOrder) - 1 - offset; i >= 0; i-- {
			if limit > 0 && len(out) >= limit {
				break
			}
			p := st.products[st.productOrder[i]]
			out = append(out, &p)
		}
		return nil
	})
	return out, err
}

// Search coincidencia sin distinguir mayúsculas en nombre o SKU, en orden de alta.
func (r *ProductRepo) Search(_ context.Context, term string, limit int) ([]*entity.Product, error) {
	needle := strings.ToLower(term)
	var out []*entity.Product
	err := r.with(func(st *state) error {
		for _, id := range st.productOrder {
			if limit > 0 && len(out) >= limit {
				break
			}
			p := st.products[id]
			if strings.Contains(strings.ToLower(p.Name), needle) || strings.Contains(strings.ToLower(p.SKU), needle) {
				out = append(out, &p)
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Count(_ context.Context) (int, error) {
	n := 0
	err := r.with(func(st *state) error {
		n = len(st.products)
		return nil
	})
	return n, err
}
