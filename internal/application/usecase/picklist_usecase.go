package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/inventory"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// PickListRenderer genera el documento imprimible de la hoja de recolección.
type PickListRenderer interface {
	RenderPickList(ctx context.Context, list *dto.PickList) ([]byte, error)
}

// PickListUseCase arma la hoja de recolección de una comanda: por cada línea, la ubicación de
// la que se descontaría primero al entregarla.
type PickListUseCase struct {
	orders    repository.OrderRepository
	products  repository.ProductRepository
	locations repository.LocationRepository
	renderer  PickListRenderer
}

func NewPickListUseCase(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	locations repository.LocationRepository,
	renderer PickListRenderer,
) *PickListUseCase {
	return &PickListUseCase{orders: orders, products: products, locations: locations, renderer: renderer}
}

// Build datos de la hoja sin renderizar.
func (uc *PickListUseCase) Build(ctx context.Context, orderID string) (*dto.PickList, error) {
	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	list := &dto.PickList{
		OrderID:      order.ID,
		RequestedBy:  order.RequestedBy,
		RequestedFor: order.RequestedFor,
		Status:       order.Status,
		CreatedAt:    order.CreatedAt,
		Lines:        make([]dto.PickLine, 0, len(order.Items)),
	}
	for _, it := range order.Items {
		line := dto.PickLine{SKU: it.SKU, Name: it.Name, Quantity: it.Quantity}
		if it.SKU != "" {
			p, err := uc.products.GetBySKU(ctx, it.SKU)
			if err != nil {
				return nil, err
			}
			if p != nil {
				locs, err := uc.locations.ListByProduct(ctx, p.ID)
				if err != nil {
					return nil, err
				}
				line.Stock = inventory.TotalStock(locs)
				for _, l := range inventory.SortForFulfillment(locs) {
					if l.Quantity > 0 {
						line.Kind, line.Aisle, line.Rack = string(l.Kind), l.Aisle, l.Rack
						break
					}
				}
			}
		}
		list.Lines = append(list.Lines, line)
	}
	return list, nil
}

// Generate devuelve el PDF y el nombre de archivo sugerido.
func (uc *PickListUseCase) Generate(ctx context.Context, orderID string) ([]byte, string, error) {
	list, err := uc.Build(ctx, orderID)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.renderer.RenderPickList(ctx, list)
	if err != nil {
		return nil, "", fmt.Errorf("picklist: generar pdf: %w", err)
	}
	return pdf, fmt.Sprintf("comanda-%s.pdf", shortID(list.OrderID)), nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
