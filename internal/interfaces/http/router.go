package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-api/internal/application/auth"
	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/internal/application/usecase"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	OrderUC     *usecase.OrderUseCase
	PickListUC  *usecase.PickListUseCase
	DashboardUC *usecase.DashboardUseCase
	Fulfill     *inventory.FulfillOrderUseCase
	Import      *inventory.ImportCatalogUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC)
	productHandler := NewProductHandler(deps.ProductUC)
	orderHandler := NewOrderHandler(deps.OrderUC, deps.Fulfill, deps.PickListUC)
	importHandler := NewImportHandler(deps.Import)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)

	// Público
	api.Post("/auth/login", authHandler.Login)
	api.Get("/search", productHandler.Search)
	api.Get("/aisles", productHandler.Aisles)
	api.Get("/stock/:id", productHandler.Stock)
	api.Get("/orders/time-slots", orderHandler.TimeSlots)
	api.Post("/orders", OptionalAuth(deps.JWTSecret), orderHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequireCapability(auth.CapCatalogWrite), productHandler.Create)
	products.Put("/:id", RequireCapability(auth.CapCatalogWrite), productHandler.Update)
	products.Post("/:id/locations", RequireCapability(auth.CapCatalogWrite), productHandler.AddLocation)

	protected.Post("/catalog/import", RequireCapability(auth.CapCatalogImport), importHandler.Import)

	orders := protected.Group("/orders")
	orders.Get("/", RequireCapability(auth.CapOrdersReadAll), orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/deliver", RequireCapability(auth.CapOrdersFulfill), orderHandler.Deliver)
	orders.Get("/:id/picklist", RequireCapability(auth.CapOrdersFulfill), orderHandler.PickList)

	users := protected.Group("/users", RequireCapability(auth.CapUsersManage))
	users.Post("/", authHandler.CreateUser)
	users.Get("/", authHandler.ListUsers)

	protected.Get("/dashboard", RequireRole(entity.RoleAdmin), dashboardHandler.Summary)
}
