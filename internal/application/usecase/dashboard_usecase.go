package usecase

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// DashboardUseCase contadores del panel de administración.
type DashboardUseCase struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
}

func NewDashboardUseCase(products repository.ProductRepository, orders repository.OrderRepository) *DashboardUseCase {
	return &DashboardUseCase{products: products, orders: orders}
}

// Summary total de productos y comandas pendientes.
func (uc *DashboardUseCase) Summary(ctx context.Context) (*dto.DashboardSummary, error) {
	products, err := uc.products.Count(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := uc.orders.CountByStatus(ctx, entity.OrderStatusPending)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardSummary{Products: products, PendingOrders: pending}, nil
}
