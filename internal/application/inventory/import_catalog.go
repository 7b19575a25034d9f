package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
	"github.com/jhoicas/bodega-api/pkg/logger"
	"github.com/jhoicas/bodega-api/pkg/metrics"
)

// ImportCatalogUseCase fusiona filas de una planilla en el catálogo: crea o actualiza el producto
// por SKU y, si la planilla trae columnas de ubicación, agrega una ubicación nueva por fila.
type ImportCatalogUseCase struct {
	txRunner TxRunner
	metrics  *metrics.StockMetrics
	log      *logger.Logger
	now      func() time.Time
}

// NewImportCatalogUseCase construye el caso de uso.
func NewImportCatalogUseCase(txRunner TxRunner, m *metrics.StockMetrics, log *logger.Logger) *ImportCatalogUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ImportCatalogUseCase{txRunner: txRunner, metrics: m, log: log, now: time.Now}
}

// importRow fila ya validada, lista para persistir.
type importRow struct {
	sku, name, category, notes string
	withLocation               bool
	kind                       entity.LocationKind
	aisle, rack                string
	quantity                   int
}

// Import procesa rows en orden. Un fallo en una fila se acumula en Errors y no detiene el lote;
// cada fila corre en su propia transacción. Si faltan las columnas sku o name en toda la entrada
// devuelve domain.ErrMissingImportColumns sin tocar nada.
//
// Actualizar un producto sobrescribe name, category y notes (no fusiona). Las ubicaciones nunca se
// fusionan con existentes: reimportar la misma planilla acumula ubicaciones duplicadas.
func (uc *ImportCatalogUseCase) Import(ctx context.Context, rows []map[string]any, userID string) (*dto.ImportSummary, error) {
	ctx, span := tracer.Start(ctx, "inventory.ImportCatalog", trace.WithAttributes(attribute.Int("import.rows", len(rows))))
	defer span.End()

	canon := make([]map[string]any, len(rows))
	columns := map[string]bool{}
	for i, r := range rows {
		canon[i] = canonicalRow(r)
		for c := range canon[i] {
			columns[c] = true
		}
	}
	if !columns[colSKU] || !columns[colName] {
		return nil, domain.ErrMissingImportColumns
	}
	withLocation := false
	for _, c := range locationColumns {
		if columns[c] {
			withLocation = true
			break
		}
	}

	summary := &dto.ImportSummary{BatchID: uuid.New().String(), Errors: []domain.ImportRowError{}}
	for i, cells := range canon {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, rowErr := parseImportRow(i, cells, withLocation)
		if rowErr != nil {
			summary.Errors = append(summary.Errors, *rowErr)
			uc.metrics.IncImportRow(metrics.ImportError)
			continue
		}
		created, err := uc.applyRow(ctx, summary.BatchID, userID, row)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			summary.Errors = append(summary.Errors, domain.ImportRowError{Row: i, SKU: row.sku, Message: rowMessage(err)})
			uc.metrics.IncImportRow(metrics.ImportError)
			continue
		}
		if created {
			summary.Created++
			uc.metrics.IncImportRow(metrics.ImportCreated)
		} else {
			summary.Updated++
			uc.metrics.IncImportRow(metrics.ImportUpdated)
		}
		if row.withLocation {
			summary.LocationsAdded++
		}
	}

	span.SetAttributes(
		attribute.Int("import.created", summary.Created),
		attribute.Int("import.updated", summary.Updated),
		attribute.Int("import.errors", len(summary.Errors)),
	)
	uc.log.Info().
		Str("batch_id", summary.BatchID).
		Int("creados", summary.Created).
		Int("actualizados", summary.Updated).
		Int("ubicaciones", summary.LocationsAdded).
		Int("errores", len(summary.Errors)).
		Msg("importación de catálogo finalizada")
	return summary, nil
}

func parseImportRow(index int, cells map[string]any, withLocation bool) (*importRow, *domain.ImportRowError) {
	sku, ok := cellString(cells[colSKU])
	if !ok {
		return nil, &domain.ImportRowError{Row: index, Message: "sku requerido"}
	}
	name, ok := cellString(cells[colName])
	if !ok {
		return nil, &domain.ImportRowError{Row: index, SKU: sku, Message: "name requerido"}
	}
	row := &importRow{sku: sku, name: name, withLocation: withLocation}
	row.category, _ = cellString(cells[colCategory])
	row.notes, _ = cellString(cells[colNotes])
	if !withLocation {
		return row, nil
	}

	row.kind = entity.LocationFloor
	if raw, ok := cellString(cells[colKind]); ok {
		kind, valid := entity.ParseLocationKind(raw)
		if !valid {
			return nil, &domain.ImportRowError{Row: index, SKU: sku, Message: "tipo de ubicación inválido: " + raw}
		}
		row.kind = kind
	}
	row.aisle, _ = cellString(cells[colAisle])
	row.rack, _ = cellString(cells[colRack])
	// Una cantidad ilegible se toma como 0; una negativa rompe el invariante de stock.
	if qty, ok := parseQuantity(cells[colQuantity]); ok {
		if qty < 0 {
			return nil, &domain.ImportRowError{Row: index, SKU: sku, Message: "cantidad negativa"}
		}
		row.quantity = qty
	}
	return row, nil
}

// applyRow persiste una fila en su propia transacción. Devuelve true si creó el producto.
func (uc *ImportCatalogUseCase) applyRow(ctx context.Context, batchID, userID string, row *importRow) (bool, error) {
	created := false
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		locationRepo repository.LocationRepository,
		_ repository.OrderRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		now := uc.now()
		product, err := productRepo.GetBySKU(ctx, row.sku)
		if err != nil {
			return err
		}
		if product != nil {
			product.Name = row.name
			product.Category = row.category
			product.Notes = row.notes
			product.UpdatedAt = now
			if err := productRepo.Update(ctx, product); err != nil {
				return err
			}
		} else {
			product = &entity.Product{
				ID:        uuid.New().String(),
				SKU:       row.sku,
				Name:      row.name,
				Category:  row.category,
				Notes:     row.notes,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := productRepo.Create(ctx, product); err != nil {
				return err
			}
			created = true
		}

		if !row.withLocation {
			return nil
		}
		loc := &entity.Location{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Kind:      row.kind,
			Aisle:     row.aisle,
			Rack:      row.rack,
			Quantity:  row.quantity,
			CreatedAt: now,
		}
		if err := locationRepo.Create(ctx, loc); err != nil {
			return err
		}
		return movRepo.Create(ctx, &entity.InventoryMovement{
			TransactionID: batchID,
			ProductID:     product.ID,
			LocationID:    loc.ID,
			Type:          entity.MovementTypeIN,
			Quantity:      row.quantity,
			CreatedAt:     now,
			CreatedBy:     userID,
		})
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

func rowMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		return "sku duplicado (creado en paralelo)"
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return "conflicto de concurrencia, reintente la fila"
	default:
		return err.Error()
	}
}
