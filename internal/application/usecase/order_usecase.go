package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	appinventory "github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
	"github.com/jhoicas/bodega-api/pkg/logger"
)

// Viewer quién consulta una comanda. ReadAll lo tiene el personal de bodega; el resto solo ve
// las comandas cuyo requested_by es su email.
type Viewer struct {
	Email   string
	ReadAll bool
}

// OrderUseCase alta y consulta de comandas. La entrega vive en inventory.FulfillOrderUseCase.
type OrderUseCase struct {
	orders    repository.OrderRepository
	products  repository.ProductRepository
	locations repository.LocationRepository
	txRunner  appinventory.TxRunner
	log       *logger.Logger
	now       func() time.Time
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	locations repository.LocationRepository,
	txRunner appinventory.TxRunner,
	log *logger.Logger,
) *OrderUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &OrderUseCase{orders: orders, products: products, locations: locations, txRunner: txRunner, log: log, now: time.Now}
}

// Create registra una comanda pendiente. No toca stock.
func (uc *OrderUseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if !entity.IsValidTimeSlot(in.RequestedFor) {
		return nil, fmt.Errorf("%w: franja horaria %q", domain.ErrInvalidInput, in.RequestedFor)
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	requestedBy := strings.TrimSpace(in.RequestedBy)
	if requestedBy == "" {
		requestedBy = entity.DefaultRequester
	}

	order := &entity.Order{
		ID:           uuid.New().String(),
		RequestedBy:  requestedBy,
		RequestedFor: in.RequestedFor,
		Status:       entity.OrderStatusPending,
		CreatedAt:    uc.now(),
		Items:        make([]entity.OrderItem, 0, len(in.Items)),
	}
	for i, it := range in.Items {
		qty := 1
		if it.Quantity != nil {
			qty = *it.Quantity
		}
		if qty <= 0 {
			return nil, fmt.Errorf("%w: línea %d con cantidad %d", domain.ErrInvalidInput, i, qty)
		}
		sku := strings.TrimSpace(it.SKU)
		name := strings.TrimSpace(it.Name)
		if sku == "" && name == "" {
			return nil, fmt.Errorf("%w: línea %d sin sku ni nombre", domain.ErrInvalidInput, i)
		}
		order.Items = append(order.Items, entity.OrderItem{
			ID:       uuid.New().String(),
			OrderID:  order.ID,
			SKU:      sku,
			Name:     name,
			Quantity: qty,
			Photos:   it.Photos,
		})
	}

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.LocationRepository,
		orderRepo repository.OrderRepository,
		_ repository.InventoryMovementRepository,
	) error {
		// Completa el nombre desde el catálogo cuando solo vino el SKU.
		for i := range order.Items {
			it := &order.Items[i]
			if it.Name != "" || it.SKU == "" {
				continue
			}
			p, err := productRepo.GetBySKU(ctx, it.SKU)
			if err != nil {
				return err
			}
			if p != nil {
				it.Name = p.Name
			} else {
				// SKU fuera del catálogo: el propio SKU queda como etiqueta.
				it.Name = it.SKU
			}
		}
		return orderRepo.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", order.ID).Int("lineas", len(order.Items)).Str("franja", order.RequestedFor).Msg("comanda creada")
	return toOrderResponse(order, nil), nil
}

// GetByID comanda con la foto del área de cada línea. domain.ErrForbidden si el viewer no puede verla.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string, viewer Viewer) (*dto.OrderResponse, error) {
	order, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if !viewer.ReadAll && (viewer.Email == "" || !strings.EqualFold(viewer.Email, order.RequestedBy)) {
		return nil, domain.ErrForbidden
	}
	photos, err := uc.areaPhotos(ctx, order.Items)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, photos), nil
}

// List comandas de la más nueva a la más antigua; status vacío = todas.
func (uc *OrderUseCase) List(ctx context.Context, status string, page dto.PageRequest) (*dto.OrderListResponse, error) {
	switch status {
	case "", entity.OrderStatusPending, entity.OrderStatusDelivered:
	default:
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	page.DefaultPage()
	list, err := uc.orders.List(ctx, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.orders.CountByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o, nil))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// TimeSlots franjas horarias válidas para requested_for.
func (uc *OrderUseCase) TimeSlots() []string {
	return entity.TimeSlots()
}

// areaPhotos foto del área donde el cliente ve cada producto (piso o trastienda, nunca bodega).
func (uc *OrderUseCase) areaPhotos(ctx context.Context, items []entity.OrderItem) (map[string]string, error) {
	out := map[string]string{}
	for _, it := range items {
		if it.SKU == "" {
			continue
		}
		if _, done := out[it.SKU]; done {
			continue
		}
		p, err := uc.products.GetBySKU(ctx, it.SKU)
		if err != nil {
			return nil, err
		}
		if p == nil {
			continue
		}
		locs, err := uc.locations.ListByProduct(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		for _, l := range locs {
			if l.Kind == entity.LocationWarehouse || len(l.Photos) == 0 {
				continue
			}
			out[it.SKU] = l.Photos[0]
			break
		}
	}
	return out, nil
}

func toOrderResponse(o *entity.Order, areaPhotos map[string]string) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		photos := it.Photos
		if photos == nil {
			photos = []string{}
		}
		items = append(items, dto.OrderItemResponse{
			ID:        it.ID,
			SKU:       it.SKU,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Photos:    photos,
			AreaPhoto: areaPhotos[it.SKU],
		})
	}
	return &dto.OrderResponse{
		ID:           o.ID,
		RequestedBy:  o.RequestedBy,
		RequestedFor: o.RequestedFor,
		Status:       o.Status,
		CreatedAt:    o.CreatedAt,
		DeliveredAt:  o.DeliveredAt,
		DeliveredBy:  o.DeliveredBy,
		Items:        items,
	}
}
