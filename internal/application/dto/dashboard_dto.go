package dto

// DashboardSummary contadores del panel de administración.
type DashboardSummary struct {
	Products      int `json:"products"`
	PendingOrders int `json:"pending_orders"`
}
