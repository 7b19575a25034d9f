package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/inventory"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
	"github.com/jhoicas/bodega-api/pkg/logger"
	"github.com/jhoicas/bodega-api/pkg/metrics"
)

var tracer = otel.Tracer("github.com/jhoicas/bodega-api/internal/application/inventory")

// FulfillOrderUseCase marca una comanda como entregada y descuenta el stock de las ubicaciones
// (bodega → trastienda → piso) en una sola transacción.
type FulfillOrderUseCase struct {
	txRunner TxRunner
	locker   OrderLocker
	metrics  *metrics.StockMetrics
	log      *logger.Logger
	now      func() time.Time
}

// NewFulfillOrderUseCase construye el caso de uso. locker puede ser nil (NoopLocker).
func NewFulfillOrderUseCase(txRunner TxRunner, locker OrderLocker, m *metrics.StockMetrics, log *logger.Logger) *FulfillOrderUseCase {
	if locker == nil {
		locker = NoopLocker{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &FulfillOrderUseCase{txRunner: txRunner, locker: locker, metrics: m, log: log, now: time.Now}
}

// productStock ubicaciones bloqueadas de un producto durante la tx. Varias líneas con el
// mismo SKU comparten el mismo slice, así la segunda ve lo que descontó la primera.
type productStock struct {
	product   *entity.Product
	locations []entity.Location
}

// Fulfill entrega la comanda orderID. Una comanda ya entregada devuelve AlreadyDelivered sin
// tocar cantidades. Con stock insuficiente la comanda igual pasa a delivered y las líneas
// pendientes se informan en Shortages.
func (uc *FulfillOrderUseCase) Fulfill(ctx context.Context, orderID, userID string) (*dto.FulfillResult, error) {
	ctx, span := tracer.Start(ctx, "inventory.FulfillOrder", trace.WithAttributes(attribute.String("order.id", orderID)))
	defer span.End()
	started := uc.now()

	if orderID == "" {
		return nil, domain.ErrInvalidInput
	}

	unlock, err := uc.locker.Lock(ctx, orderID)
	if err != nil {
		uc.fail(span, orderID, err, started)
		return nil, err
	}
	defer unlock()

	var result *dto.FulfillResult
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		locationRepo repository.LocationRepository,
		orderRepo repository.OrderRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		// Bloquea la comanda: una segunda entrega concurrente espera y luego la ve delivered.
		order, err := orderRepo.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.IsDelivered() {
			result = &dto.FulfillResult{OrderID: order.ID, Status: order.Status, AlreadyDelivered: true}
			return nil
		}

		now := uc.now()
		res, err := uc.allocate(ctx, order, userID, now, productRepo, locationRepo, movRepo)
		if err != nil {
			return err
		}

		order.Status = entity.OrderStatusDelivered
		order.DeliveredAt = &now
		order.DeliveredBy = userID
		if err := orderRepo.SaveFulfillment(ctx, order); err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		uc.fail(span, orderID, err, started)
		return nil, err
	}

	outcome := metrics.OutcomeComplete
	switch {
	case result.AlreadyDelivered:
		outcome = metrics.OutcomeAlreadyDelivered
	case result.Partial():
		outcome = metrics.OutcomePartial
	}
	uc.metrics.ObserveFulfillment(outcome, result.UnitsDeducted(), result.UnitsOutstanding(), uc.now().Sub(started))
	span.SetAttributes(
		attribute.String("fulfillment.outcome", outcome),
		attribute.Int("fulfillment.units_deducted", result.UnitsDeducted()),
		attribute.Int("fulfillment.units_outstanding", result.UnitsOutstanding()),
	)

	if result.Partial() {
		uc.log.Warn().
			Str("order_id", orderID).
			Int("items_pendientes", len(result.Shortages)).
			Int("unidades_pendientes", result.UnitsOutstanding()).
			Msg("comanda entregada con faltantes")
	} else if !result.AlreadyDelivered {
		uc.log.Info().Str("order_id", orderID).Int("unidades", result.UnitsDeducted()).Msg("comanda entregada")
	}
	return result, nil
}

// allocate resuelve productos, bloquea sus ubicaciones en orden de SKU (evita deadlocks entre
// comandas que comparten productos), planifica y persiste los descuentos.
func (uc *FulfillOrderUseCase) allocate(
	ctx context.Context,
	order *entity.Order,
	userID string,
	now time.Time,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	movRepo repository.InventoryMovementRepository,
) (*dto.FulfillResult, error) {
	skus := distinctSKUs(order.Items)
	stocks := make(map[string]*productStock, len(skus))
	for _, sku := range skus {
		product, err := productRepo.GetBySKU(ctx, sku)
		if err != nil {
			return nil, err
		}
		if product == nil {
			continue
		}
		locs, err := locationRepo.ListByProductForUpdate(ctx, product.ID)
		if err != nil {
			return nil, err
		}
		stocks[sku] = &productStock{product: product, locations: locs}
	}

	result := &dto.FulfillResult{
		OrderID:    order.ID,
		Status:     entity.OrderStatusDelivered,
		Deductions: []dto.LocationDeduction{},
		Shortages:  []dto.ItemShortage{},
	}
	dirty := map[string]int{}
	var dirtyOrder []string

	for i := range order.Items {
		item := &order.Items[i]
		requested := item.Quantity
		if item.SKU == "" {
			addShortage(result, item, requested, dto.ShortageNoSKU)
			continue
		}
		ps, ok := stocks[item.SKU]
		if !ok {
			addShortage(result, item, requested, dto.ShortageUnknownSKU)
			continue
		}

		plan, outstanding := inventory.PlanDeductions(item.Quantity, ps.locations)
		kinds := kindByID(ps.locations)
		for _, loc := range inventory.ApplyDeductions(ps.locations, plan) {
			if _, seen := dirty[loc.ID]; !seen {
				dirtyOrder = append(dirtyOrder, loc.ID)
			}
			dirty[loc.ID] = loc.Quantity
		}
		for _, d := range plan {
			result.Deductions = append(result.Deductions, dto.LocationDeduction{
				ItemID:     item.ID,
				ProductID:  ps.product.ID,
				SKU:        item.SKU,
				LocationID: d.LocationID,
				Kind:       string(kinds[d.LocationID]),
				Quantity:   d.Quantity,
			})
			mov := &entity.InventoryMovement{
				TransactionID: order.ID,
				ProductID:     ps.product.ID,
				LocationID:    d.LocationID,
				Type:          entity.MovementTypeOUT,
				Quantity:      -d.Quantity,
				CreatedAt:     now,
				CreatedBy:     userID,
			}
			if err := movRepo.Create(ctx, mov); err != nil {
				return nil, err
			}
		}

		item.Quantity = outstanding
		if outstanding > 0 {
			addShortage(result, item, requested, dto.ShortageInsufficientStock)
		}
	}

	for _, id := range dirtyOrder {
		if dirty[id] < 0 {
			return nil, fmt.Errorf("ubicación %s: cantidad negativa tras descuento", id)
		}
		if err := locationRepo.UpdateQuantity(ctx, id, dirty[id]); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (uc *FulfillOrderUseCase) fail(span trace.Span, orderID string, err error, started time.Time) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	outcome := metrics.OutcomeError
	if errors.Is(err, domain.ErrConcurrencyConflict) {
		outcome = metrics.OutcomeConflict
	}
	uc.metrics.ObserveFulfillment(outcome, 0, 0, uc.now().Sub(started))
	if errors.Is(err, domain.ErrNotFound) {
		return
	}
	uc.log.Error().Err(err).Str("order_id", orderID).Msg("entrega de comanda fallida")
}

func addShortage(result *dto.FulfillResult, item *entity.OrderItem, requested int, reason string) {
	if item.Quantity <= 0 {
		return
	}
	result.Shortages = append(result.Shortages, dto.ItemShortage{
		ItemID:      item.ID,
		SKU:         item.SKU,
		Name:        item.Name,
		Requested:   requested,
		Outstanding: item.Quantity,
		Reason:      reason,
	})
}

func distinctSKUs(items []entity.OrderItem) []string {
	seen := map[string]bool{}
	var out []string
	for _, it := range items {
		if it.SKU == "" || seen[it.SKU] {
			continue
		}
		seen[it.SKU] = true
		out = append(out, it.SKU)
	}
	sort.Strings(out)
	return out
}

func kindByID(locations []entity.Location) map[string]entity.LocationKind {
	out := make(map[string]entity.LocationKind, len(locations))
	for _, l := range locations {
		out[l.ID] = l.Kind
	}
	return out
}
