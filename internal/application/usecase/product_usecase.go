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
	"github.com/jhoicas/bodega-api/internal/domain/inventory"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// SearchLimit máximo de resultados del buscador público.
const SearchLimit = 12

// ProductUseCase catálogo: alta y edición de productos, ubicaciones y consultas de stock.
// El stock solo cambia por ubicaciones nuevas, entregas de comandas o importaciones.
type ProductUseCase struct {
	products  repository.ProductRepository
	locations repository.LocationRepository
	txRunner  appinventory.TxRunner
	now       func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(products repository.ProductRepository, locations repository.LocationRepository, txRunner appinventory.TxRunner) *ProductUseCase {
	return &ProductUseCase{products: products, locations: locations, txRunner: txRunner, now: time.Now}
}

// Create crea un producto sin ubicaciones. SKU repetido devuelve domain.ErrDuplicate.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	sku := strings.TrimSpace(in.SKU)
	name := strings.TrimSpace(in.Name)
	if sku == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		SKU:       sku,
		Name:      name,
		Category:  strings.TrimSpace(in.Category),
		Notes:     in.Notes,
		ImageURL:  in.ImageURL,
		ImageFile: in.ImageFile,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product, nil), nil
}

// Update edita nombre, categoría, notas e imagen. Solo cambia lo que viene en la petición.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = name
	}
	if in.Category != nil {
		product.Category = strings.TrimSpace(*in.Category)
	}
	if in.Notes != nil {
		product.Notes = *in.Notes
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	if in.ImageFile != nil {
		product.ImageFile = *in.ImageFile
	}
	product.UpdatedAt = uc.now()
	if err := uc.products.Update(ctx, product); err != nil {
		return nil, err
	}
	locs, err := uc.locations.ListByProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, locs), nil
}

// AddLocation agrega una ubicación con su cantidad inicial y registra el movimiento de entrada.
// Nunca fusiona con una ubicación existente del mismo tipo y pasillo.
func (uc *ProductUseCase) AddLocation(ctx context.Context, productID string, in dto.AddLocationRequest, userID string) (*dto.LocationResponse, error) {
	kind, ok := entity.ParseLocationKind(in.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: tipo de ubicación %q", domain.ErrInvalidInput, in.Kind)
	}
	if in.Quantity < 0 {
		return nil, fmt.Errorf("%w: cantidad negativa", domain.ErrInvalidInput)
	}

	var loc *entity.Location
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		locationRepo repository.LocationRepository,
		_ repository.OrderRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		product, err := productRepo.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		now := uc.now()
		loc = &entity.Location{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Kind:      kind,
			Aisle:     strings.TrimSpace(in.Aisle),
			Rack:      strings.TrimSpace(in.Rack),
			Quantity:  in.Quantity,
			Photos:    in.Photos,
			CreatedAt: now,
		}
		if err := locationRepo.Create(ctx, loc); err != nil {
			return err
		}
		return movRepo.Create(ctx, &entity.InventoryMovement{
			TransactionID: loc.ID,
			ProductID:     product.ID,
			LocationID:    loc.ID,
			Type:          entity.MovementTypeIN,
			Quantity:      in.Quantity,
			CreatedAt:     now,
			CreatedBy:     userID,
		})
	})
	if err != nil {
		return nil, err
	}
	out := toLocationResponse(*loc)
	return &out, nil
}

// GetDetail producto con sus ubicaciones (orden de exhibición) y stock agregado.
func (uc *ProductUseCase) GetDetail(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	locs, err := uc.locations.ListByProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, locs), nil
}

// List inventario del más nuevo al más antiguo con stock total por producto.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.products.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.products.Count(ctx)
	if err != nil {
		return nil, err
	}
	locs, err := uc.locations.ListByProducts(ctx, productIDs(list))
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p, locs[p.ID]))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Search buscador público por nombre o SKU (un término de 4 dígitos encuentra el SKU por sus
// últimos dígitos). Incluye stock y dónde encontrar el producto en tienda.
func (uc *ProductUseCase) Search(ctx context.Context, term string) ([]dto.SearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []dto.SearchResult{}, nil
	}
	found, err := uc.products.Search(ctx, term, SearchLimit)
	if err != nil {
		return nil, err
	}
	locs, err := uc.locations.ListByProducts(ctx, productIDs(found))
	if err != nil {
		return nil, err
	}
	out := make([]dto.SearchResult, 0, len(found))
	for _, p := range found {
		r := dto.SearchResult{
			ID:           p.ID,
			SKU:          p.SKU,
			Name:         p.Name,
			Stock:        inventory.TotalStock(locs[p.ID]),
			ProductImage: productImage(p),
		}
		if loc := inventory.DisplayLocation(locs[p.ID]); loc != nil {
			r.Aisle = loc.Aisle
			r.Rack = loc.Rack
			if len(loc.Photos) > 0 {
				r.AreaPhoto = loc.Photos[0]
			}
		}
		out = append(out, r)
	}
	return out, nil
}

// Aisles pasillos con productos ubicados.
func (uc *ProductUseCase) Aisles(ctx context.Context) ([]string, error) {
	aisles, err := uc.locations.DistinctAisles(ctx)
	if err != nil {
		return nil, err
	}
	if aisles == nil {
		aisles = []string{}
	}
	return aisles, nil
}

// Stock total de un producto.
func (uc *ProductUseCase) Stock(ctx context.Context, id string) (*dto.StockResponse, error) {
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	locs, err := uc.locations.ListByProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	return &dto.StockResponse{ProductID: product.ID, Stock: inventory.TotalStock(locs)}, nil
}

func productIDs(list []*entity.Product) []string {
	ids := make([]string, 0, len(list))
	for _, p := range list {
		ids = append(ids, p.ID)
	}
	return ids
}

// productImage la URL externa tiene prioridad sobre el archivo subido.
func productImage(p *entity.Product) string {
	if p.ImageURL != "" {
		return p.ImageURL
	}
	return p.ImageFile
}

func toProductResponse(p *entity.Product, locs []entity.Location) *dto.ProductResponse {
	byKind := map[string]int{}
	for k, q := range inventory.StockByKind(locs) {
		byKind[string(k)] = q
	}
	sorted := inventory.SortForDisplay(locs)
	locations := make([]dto.LocationResponse, 0, len(sorted))
	for _, l := range sorted {
		locations = append(locations, toLocationResponse(l))
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Category:    p.Category,
		Notes:       p.Notes,
		ImageURL:    p.ImageURL,
		ImageFile:   p.ImageFile,
		TotalStock:  inventory.TotalStock(locs),
		StockByKind: byKind,
		Locations:   locations,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toLocationResponse(l entity.Location) dto.LocationResponse {
	photos := l.Photos
	if photos == nil {
		photos = []string{}
	}
	return dto.LocationResponse{
		ID:        l.ID,
		Kind:      string(l.Kind),
		Aisle:     l.Aisle,
		Rack:      l.Rack,
		Quantity:  l.Quantity,
		Photos:    photos,
		CreatedAt: l.CreatedAt,
	}
}
