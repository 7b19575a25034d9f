package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/usecase"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newProducts(s *memory.Store) *usecase.ProductUseCase {
	return usecase.NewProductUseCase(s.Products(), s.Locations(), s)
}

func newOrders(s *memory.Store) *usecase.OrderUseCase {
	return usecase.NewOrderUseCase(s.Orders(), s.Products(), s.Locations(), s, nil)
}

func intPtr(n int) *int { return &n }

func mustProduct(t *testing.T, uc *usecase.ProductUseCase, sku, name string) *dto.ProductResponse {
	t.Helper()
	p, err := uc.Create(context.Background(), dto.CreateProductRequest{SKU: sku, Name: name})
	require.NoError(t, err)
	return p
}

func mustLocation(t *testing.T, uc *usecase.ProductUseCase, productID, kind string, qty int, photos ...string) {
	t.Helper()
	_, err := uc.AddLocation(context.Background(), productID, dto.AddLocationRequest{
		Kind: kind, Aisle: "7", Rack: "C", Quantity: qty, Photos: photos,
	}, "staff")
	require.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProduct_CreateSKUDuplicado(t *testing.T) {
	uc := newProducts(memory.NewStore())
	mustProduct(t, uc, "A1", "Tornillo")

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{SKU: "A1", Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(context.Background(), dto.CreateProductRequest{SKU: "  ", Name: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProduct_DetalleConStockPorTipo(t *testing.T) {
	uc := newProducts(memory.NewStore())
	p := mustProduct(t, uc, "A1", "Tornillo")
	mustLocation(t, uc, p.ID, "bodega", 3)
	mustLocation(t, uc, p.ID, "floor", 2, "pasillo7.jpg")

	got, err := uc.GetDetail(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.TotalStock)
	assert.Equal(t, map[string]int{"warehouse": 3, "floor": 2}, got.StockByKind)
	require.Len(t, got.Locations, 2)
	assert.Equal(t, "floor", got.Locations[0].Kind, "el detalle muestra primero el piso")

	stock, err := uc.Stock(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stock.Stock)
}

func TestProduct_AddLocationValida(t *testing.T) {
	uc := newProducts(memory.NewStore())
	p := mustProduct(t, uc, "A1", "Tornillo")
	ctx := context.Background()

	_, err := uc.AddLocation(ctx, p.ID, dto.AddLocationRequest{Kind: "sotano"}, "staff")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AddLocation(ctx, p.ID, dto.AddLocationRequest{Kind: "floor", Quantity: -1}, "staff")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AddLocation(ctx, "no-existe", dto.AddLocationRequest{Kind: "floor"}, "staff")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProduct_UpdateParcial(t *testing.T) {
	uc := newProducts(memory.NewStore())
	p, err := uc.Create(context.Background(), dto.CreateProductRequest{SKU: "A1", Name: "Tornillo", Category: "Ferretería"})
	require.NoError(t, err)

	name := "Tornillo 1/4"
	got, err := uc.Update(context.Background(), p.ID, dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Tornillo 1/4", got.Name)
	assert.Equal(t, "Ferretería", got.Category)
	assert.Equal(t, "A1", got.SKU)

	_, err = uc.Update(context.Background(), "no-existe", dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProduct_SearchPorSufijoYUbicacionVisible(t *testing.T) {
	uc := newProducts(memory.NewStore())
	p := mustProduct(t, uc, "MAR-004521", "Martillo")
	mustProduct(t, uc, "TOR-1", "Tornillo")
	mustLocation(t, uc, p.ID, "warehouse", 10)
	mustLocation(t, uc, p.ID, "floor", 2, "area-7.jpg")

	res, err := uc.Search(context.Background(), "4521")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, 12, res[0].Stock)
	assert.Equal(t, "7", res[0].Aisle)
	assert.Equal(t, "area-7.jpg", res[0].AreaPhoto)

	res, err = uc.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestProduct_ListYPasillos(t *testing.T) {
	uc := newProducts(memory.NewStore())
	a := mustProduct(t, uc, "A1", "Tornillo")
	mustProduct(t, uc, "B2", "Martillo")
	mustLocation(t, uc, a.ID, "floor", 4)

	list, err := uc.List(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, 2, list.Page.Total)
	assert.Equal(t, 20, list.Page.Limit)
	assert.Equal(t, "B2", list.Items[0].SKU)
	assert.Equal(t, 4, list.Items[1].TotalStock)

	aisles, err := uc.Aisles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"7"}, aisles)
}

// ──────────────────────────────────────────────────────────────────────────────
// Comandas
// ──────────────────────────────────────────────────────────────────────────────

func TestOrder_CreateAplicaValoresPorDefecto(t *testing.T) {
	s := memory.NewStore()
	mustProduct(t, newProducts(s), "A1", "Tornillo")

	o, err := newOrders(s).Create(context.Background(), dto.CreateOrderRequest{
		RequestedFor: "10:30",
		Items:        []dto.CreateOrderItemRequest{{SKU: "A1"}, {Name: "Cinta", Quantity: intPtr(3)}},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.DefaultRequester, o.RequestedBy)
	assert.Equal(t, entity.OrderStatusPending, o.Status)
	require.Len(t, o.Items, 2)
	assert.Equal(t, 1, o.Items[0].Quantity)
	assert.Equal(t, "Tornillo", o.Items[0].Name, "el nombre se completa desde el catálogo")
	assert.Equal(t, 3, o.Items[1].Quantity)
}

func TestOrder_CreateSKUDesconocidoSinNombreUsaElSKU(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	uc := newOrders(s)

	o, err := uc.Create(ctx, dto.CreateOrderRequest{
		RequestedFor: "10:00",
		Items:        []dto.CreateOrderItemRequest{{SKU: "NO-EXISTE", Quantity: intPtr(2)}},
	})
	require.NoError(t, err)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "NO-EXISTE", o.Items[0].Name)

	stored, err := uc.GetByID(ctx, o.ID, usecase.Viewer{ReadAll: true})
	require.NoError(t, err)
	assert.Equal(t, "NO-EXISTE", stored.Items[0].Name, "la línea guardada nunca queda sin nombre")
}

func TestOrder_CreateRechazaEntradasInvalidas(t *testing.T) {
	uc := newOrders(memory.NewStore())
	ctx := context.Background()
	item := []dto.CreateOrderItemRequest{{SKU: "A1"}}

	_, err := uc.Create(ctx, dto.CreateOrderRequest{RequestedFor: "10:30"})
	assert.ErrorIs(t, err, domain.ErrEmptyOrder)

	_, err = uc.Create(ctx, dto.CreateOrderRequest{RequestedFor: "07:00", Items: item})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateOrderRequest{RequestedFor: "10:30", Items: []dto.CreateOrderItemRequest{{SKU: "A1", Quantity: intPtr(0)}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateOrderRequest{RequestedFor: "10:30", Items: []dto.CreateOrderItemRequest{{}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrder_GetByIDSoloPersonalOSolicitante(t *testing.T) {
	s := memory.NewStore()
	products := newProducts(s)
	p := mustProduct(t, products, "A1", "Tornillo")
	mustLocation(t, products, p.ID, "warehouse", 5, "bodega.jpg")
	mustLocation(t, products, p.ID, "backroom", 1, "tras.jpg")
	uc := newOrders(s)
	ctx := context.Background()

	o, err := uc.Create(ctx, dto.CreateOrderRequest{RequestedBy: "ana@tienda.com", RequestedFor: "09:00",
		Items: []dto.CreateOrderItemRequest{{SKU: "A1"}}})
	require.NoError(t, err)

	got, err := uc.GetByID(ctx, o.ID, usecase.Viewer{Email: "ANA@tienda.com"})
	require.NoError(t, err)
	assert.Equal(t, "tras.jpg", got.Items[0].AreaPhoto, "la foto de bodega no se muestra al cliente")

	_, err = uc.GetByID(ctx, o.ID, usecase.Viewer{Email: "otro@tienda.com"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.GetByID(ctx, o.ID, usecase.Viewer{ReadAll: true})
	assert.NoError(t, err)

	_, err = uc.GetByID(ctx, "no-existe", usecase.Viewer{ReadAll: true})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrder_ListPorEstadoYDashboard(t *testing.T) {
	s := memory.NewStore()
	uc := newOrders(s)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := uc.Create(ctx, dto.CreateOrderRequest{RequestedFor: "12:00", Items: []dto.CreateOrderItemRequest{{Name: "x"}}})
		require.NoError(t, err)
	}

	list, err := uc.List(ctx, entity.OrderStatusPending, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, 3, list.Page.Total)

	_, err = uc.List(ctx, "perdida", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	mustProduct(t, newProducts(s), "A1", "Tornillo")
	sum, err := usecase.NewDashboardUseCase(s.Products(), s.Orders()).Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, dto.DashboardSummary{Products: 1, PendingOrders: 3}, *sum)

	assert.Len(t, uc.TimeSlots(), 26)
}

// ──────────────────────────────────────────────────────────────────────────────
// Hoja de recolección
// ──────────────────────────────────────────────────────────────────────────────

type captureRenderer struct{ got *dto.PickList }

func (r *captureRenderer) RenderPickList(_ context.Context, list *dto.PickList) ([]byte, error) {
	r.got = list
	return []byte("%PDF-fake"), nil
}

func TestPickList_SugiereUbicacionDeEntrega(t *testing.T) {
	s := memory.NewStore()
	products := newProducts(s)
	p := mustProduct(t, products, "A1", "Tornillo")
	mustLocation(t, products, p.ID, "floor", 2)
	mustLocation(t, products, p.ID, "warehouse", 0)
	mustLocation(t, products, p.ID, "backroom", 3)
	o, err := newOrders(s).Create(context.Background(), dto.CreateOrderRequest{RequestedFor: "11:00",
		Items: []dto.CreateOrderItemRequest{{SKU: "A1", Quantity: intPtr(2)}, {Name: "Sin código"}}})
	require.NoError(t, err)

	r := &captureRenderer{}
	uc := usecase.NewPickListUseCase(s.Orders(), s.Products(), s.Locations(), r)
	out, name, err := uc.Generate(context.Background(), o.ID)
	require.NoError(t, err)

	assert.Equal(t, []byte("%PDF-fake"), out)
	assert.Equal(t, "comanda-"+o.ID[:8]+".pdf", name)
	require.Len(t, r.got.Lines, 2)
	assert.Equal(t, "backroom", r.got.Lines[0].Kind, "bodega vacía: se sugiere la trastienda")
	assert.Equal(t, 5, r.got.Lines[0].Stock)
	assert.Empty(t, r.got.Lines[1].Kind)

	_, _, err = uc.Generate(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
