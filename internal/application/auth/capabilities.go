package auth

import "github.com/jhoicas/bodega-api/internal/domain/entity"

// Capacidades que exigen las rutas protegidas.
const (
	CapCatalogWrite  = "catalog:write"
	CapCatalogImport = "catalog:import"
	CapOrdersFulfill = "orders:fulfill"
	CapOrdersReadAll = "orders:read-all"
	CapUsersManage   = "users:manage"
)

var roleCapabilities = map[string]map[string]bool{
	entity.RoleAdmin: {
		CapCatalogWrite:  true,
		CapCatalogImport: true,
		CapOrdersFulfill: true,
		CapOrdersReadAll: true,
		CapUsersManage:   true,
	},
	entity.RoleWarehouseStaff: {
		CapCatalogWrite:  true,
		CapCatalogImport: true,
		CapOrdersFulfill: true,
		CapOrdersReadAll: true,
	},
	entity.RoleRequester: {},
}

// Can indica si role tiene la capacidad. Roles desconocidos no tienen ninguna.
func Can(role, capability string) bool {
	return roleCapabilities[role][capability]
}
