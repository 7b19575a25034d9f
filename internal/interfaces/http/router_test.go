package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-api/internal/application/auth"
	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/internal/application/usecase"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/bodega-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers: API completa sobre el almacén en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeRenderer struct{}

func (fakeRenderer) RenderPickList(_ context.Context, list *dto.PickList) ([]byte, error) {
	return []byte("%PDF-fake " + list.OrderID), nil
}

type testAPI struct {
	app   *fiber.App
	store *memory.Store
	authz *auth.AuthUseCase
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	store := memory.NewStore()
	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}, nil)
	orderUC := usecase.NewOrderUseCase(store.Orders(), store.Products(), store.Locations(), store, nil)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:   usecase.NewProductUseCase(store.Products(), store.Locations(), store),
		OrderUC:     orderUC,
		PickListUC:  usecase.NewPickListUseCase(store.Orders(), store.Products(), store.Locations(), fakeRenderer{}),
		DashboardUC: usecase.NewDashboardUseCase(store.Products(), store.Orders()),
		Fulfill:     inventory.NewFulfillOrderUseCase(store, nil, nil, nil),
		Import:      inventory.NewImportCatalogUseCase(store, nil, nil),
		AuthUC:      authUC,
		JWTSecret:   testJWTSecret,
	})
	return &testAPI{app: app, store: store, authz: authUC}
}

// userToken crea el usuario y devuelve "Bearer <token>" obtenido por login HTTP.
func (a *testAPI) userToken(t *testing.T, email, role string) string {
	t.Helper()
	_, err := a.authz.CreateUser(context.Background(), dto.CreateUserRequest{Email: email, Password: "secreto123", Role: role})
	require.NoError(t, err)

	var out dto.LoginResponse
	resp := a.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: "secreto123"}, &out)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, out.Token)
	return "Bearer " + out.Token
}

// do envía body como JSON y decodifica la respuesta en out (si no es nil).
func (a *testAPI) do(t *testing.T, method, path, token string, body, out any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth y usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_LoginCredencialesInvalidas(t *testing.T) {
	api := newTestAPI(t)
	api.userToken(t, "staff@example.com", entity.RoleWarehouseStaff)

	var errOut dto.ErrorResponse
	resp := api.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "staff@example.com", Password: "otra"}, &errOut)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_CREDENTIALS", errOut.Code)

	resp = api.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "nadie@example.com", Password: "x"}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_LoginValidaCuerpo(t *testing.T) {
	api := newTestAPI(t)

	var errOut dto.ErrorResponse
	resp := api.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "no-es-email"}, &errOut)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errOut.Code)
	assert.Contains(t, errOut.Details, "email")
	assert.Contains(t, errOut.Details, "password")
}

func TestRouter_UsuariosSoloAdmin(t *testing.T) {
	api := newTestAPI(t)
	admin := api.userToken(t, "admin@example.com", entity.RoleAdmin)
	staff := api.userToken(t, "staff@example.com", entity.RoleWarehouseStaff)

	newUser := dto.CreateUserRequest{Email: "pedro@example.com", Password: "secreto123"}
	resp := api.do(t, http.MethodPost, "/api/users", staff, newUser, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var created dto.UserResponse
	resp = api.do(t, http.MethodPost, "/api/users", admin, newUser, &created)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, entity.RoleRequester, created.Role)

	resp = api.do(t, http.MethodPost, "/api/users", admin, newUser, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var users []dto.UserResponse
	resp = api.do(t, http.MethodGet, "/api/users", admin, nil, &users)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, users, 3)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_CatalogoCrearUbicarYBuscar(t *testing.T) {
	api := newTestAPI(t)
	staff := api.userToken(t, "staff@example.com", entity.RoleWarehouseStaff)
	requester := api.userToken(t, "ana@example.com", entity.RoleRequester)

	body := dto.CreateProductRequest{SKU: "7801234", Name: "Tornillo 3mm"}
	resp := api.do(t, http.MethodPost, "/api/products", requester, body, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var product dto.ProductResponse
	resp = api.do(t, http.MethodPost, "/api/products", staff, body, &product)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = api.do(t, http.MethodPost, "/api/products", staff, body, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "SKU duplicado")

	var errOut dto.ErrorResponse
	resp = api.do(t, http.MethodPost, "/api/products", staff, map[string]string{"sku": "X"}, &errOut)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errOut.Details, "name")

	loc := dto.AddLocationRequest{Kind: "bodega", Aisle: "3", Rack: "B", Quantity: 4}
	resp = api.do(t, http.MethodPost, "/api/products/"+product.ID+"/locations", staff, loc, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = api.do(t, http.MethodPost, "/api/products/"+product.ID+"/locations", staff, dto.AddLocationRequest{Kind: "techo", Quantity: 1}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var stock dto.StockResponse
	resp = api.do(t, http.MethodGet, "/api/stock/"+product.ID, "", nil, &stock)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 4, stock.Stock)

	var results []dto.SearchResult
	resp = api.do(t, http.MethodGet, "/api/search?q=1234", "", nil, &results)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, results, 1)
	assert.Equal(t, "7801234", results[0].SKU)

	var aisles []string
	api.do(t, http.MethodGet, "/api/aisles", "", nil, &aisles)
	assert.Equal(t, []string{"3"}, aisles)

	name := "Tornillo 3mm zincado"
	var updated dto.ProductResponse
	resp = api.do(t, http.MethodPut, "/api/products/"+product.ID, staff, dto.UpdateProductRequest{Name: &name}, &updated)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, 4, updated.TotalStock)

	resp = api.do(t, http.MethodGet, "/api/products/no-existe", staff, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_ImportarCatalogo(t *testing.T) {
	api := newTestAPI(t)
	staff := api.userToken(t, "staff@example.com", entity.RoleWarehouseStaff)

	rows := map[string]any{"rows": []map[string]any{
		{"SKU": "A1", "Nombre": "Martillo", "Tipo": "bodega", "Cantidad": 5},
		{"SKU": "", "Nombre": "Sin sku"},
	}}
	var summary dto.ImportSummary
	resp := api.do(t, http.MethodPost, "/api/catalog/import", staff, rows, &summary)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 1, summary.LocationsAdded)
	require.Len(t, summary.Errors, 1)
	assert.Equal(t, 1, summary.Errors[0].Row)

	var errOut dto.ErrorResponse
	resp = api.do(t, http.MethodPost, "/api/catalog/import", staff, map[string]any{"rows": []map[string]any{{"Nombre": "x"}}}, &errOut)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "MISSING_COLUMNS", errOut.Code)

	resp = api.do(t, http.MethodPost, "/api/catalog/import", api.userToken(t, "ana@example.com", entity.RoleRequester), rows, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Comandas
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_ComandaCrearEntregarYRepetir(t *testing.T) {
	api := newTestAPI(t)
	staff := api.userToken(t, "staff@example.com", entity.RoleWarehouseStaff)

	rows := map[string]any{"rows": []map[string]any{
		{"sku": "A1", "name": "Martillo", "kind": "floor", "quantity": 2},
		{"sku": "A1", "name": "Martillo", "kind": "warehouse", "quantity": 1},
	}}
	resp := api.do(t, http.MethodPost, "/api/catalog/import", staff, rows, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	qty := 4
	var order dto.OrderResponse
	resp = api.do(t, http.MethodPost, "/api/orders", "", dto.CreateOrderRequest{
		RequestedFor: "09:30",
		Items:        []dto.CreateOrderItemRequest{{SKU: "A1", Quantity: &qty}},
	}, &order)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, entity.DefaultRequester, order.RequestedBy)
	assert.Equal(t, "Martillo", order.Items[0].Name, "el nombre se completa desde el catálogo")

	var result dto.FulfillResult
	resp = api.do(t, http.MethodPost, "/api/orders/"+order.ID+"/deliver", staff, nil, &result)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.OrderStatusDelivered, result.Status)
	assert.Equal(t, 3, result.UnitsDeducted())
	assert.Equal(t, 1, result.UnitsOutstanding())
	require.Len(t, result.Shortages, 1)
	assert.Equal(t, dto.ShortageInsufficientStock, result.Shortages[0].Reason)

	var again dto.FulfillResult
	resp = api.do(t, http.MethodPost, "/api/orders/"+order.ID+"/deliver", staff, nil, &again)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, again.AlreadyDelivered)
	assert.Empty(t, again.Deductions)

	var list dto.OrderListResponse
	resp = api.do(t, http.MethodGet, "/api/orders?status=delivered", staff, nil, &list)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, list.Items, 1)
	assert.Equal(t, 1, list.Items[0].Items[0].Quantity, "queda la cantidad pendiente")

	resp = api.do(t, http.MethodGet, "/api/orders?status=perdida", staff, nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = api.do(t, http.MethodPost, "/api/orders/no-existe/deliver", staff, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_ComandaValidaciones(t *testing.T) {
	api := newTestAPI(t)

	var slots []string
	resp := api.do(t, http.MethodGet, "/api/orders/time-slots", "", nil, &slots)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.TimeSlots(), slots)

	resp = api.do(t, http.MethodPost, "/api/orders", "", dto.CreateOrderRequest{
		RequestedFor: "07:00",
		Items:        []dto.CreateOrderItemRequest{{Name: "Cinta"}},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "franja fuera de horario")

	var errOut dto.ErrorResponse
	resp = api.do(t, http.MethodPost, "/api/orders", "", map[string]any{"requested_for": "09:00", "items": []any{}}, &errOut)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errOut.Details, "items")
}

func TestRouter_ComandaVisibleSoloParaSolicitanteOBodega(t *testing.T) {
	api := newTestAPI(t)
	staff := api.userToken(t, "staff@example.com", entity.RoleWarehouseStaff)
	ana := api.userToken(t, "ana@example.com", entity.RoleRequester)
	luis := api.userToken(t, "luis@example.com", entity.RoleRequester)

	var order dto.OrderResponse
	resp := api.do(t, http.MethodPost, "/api/orders", ana, dto.CreateOrderRequest{
		RequestedFor: "10:00",
		Items:        []dto.CreateOrderItemRequest{{Name: "Cinta"}},
	}, &order)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "ana@example.com", order.RequestedBy, "con token se usa el email")

	assert.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/orders/"+order.ID, ana, nil, nil).StatusCode)
	assert.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/orders/"+order.ID, staff, nil, nil).StatusCode)
	assert.Equal(t, http.StatusForbidden, api.do(t, http.MethodGet, "/api/orders/"+order.ID, luis, nil, nil).StatusCode)
	assert.Equal(t, http.StatusForbidden, api.do(t, http.MethodGet, "/api/orders", ana, nil, nil).StatusCode)
	assert.Equal(t, http.StatusForbidden, api.do(t, http.MethodPost, "/api/orders/"+order.ID+"/deliver", ana, nil, nil).StatusCode)
}

func TestRouter_ComandaImpresaYPanel(t *testing.T) {
	api := newTestAPI(t)
	admin := api.userToken(t, "admin@example.com", entity.RoleAdmin)
	staff := api.userToken(t, "staff@example.com", entity.RoleWarehouseStaff)

	var order dto.OrderResponse
	resp := api.do(t, http.MethodPost, "/api/orders", "", dto.CreateOrderRequest{
		RequestedFor: "12:00",
		Items:        []dto.CreateOrderItemRequest{{Name: "Guantes"}},
	}, &order)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = api.do(t, http.MethodGet, "/api/orders/"+order.ID+"/picklist", staff, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "comanda-")
	pdf, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	resp = api.do(t, http.MethodGet, "/api/dashboard", staff, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var summary dto.DashboardSummary
	resp = api.do(t, http.MethodGet, "/api/dashboard", admin, nil, &summary)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, summary.PendingOrders)
	assert.Equal(t, 0, summary.Products)
}
