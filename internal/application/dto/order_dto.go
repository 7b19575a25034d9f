package dto

import "time"

// CreateOrderItemRequest línea de una comanda nueva. Quantity nil = 1.
type CreateOrderItemRequest struct {
	SKU      string   `json:"sku" validate:"max=64"`
	Name     string   `json:"name" validate:"max=200"`
	Quantity *int     `json:"quantity"`
	Photos   []string `json:"photos" validate:"dive,max=255"`
}

// CreateOrderRequest entrada para crear una comanda.
type CreateOrderRequest struct {
	RequestedBy  string                   `json:"requested_by" validate:"max=120"`
	RequestedFor string                   `json:"requested_for" validate:"required"`
	Items        []CreateOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// OrderItemResponse salida de una línea de comanda.
type OrderItemResponse struct {
	ID        string   `json:"id"`
	SKU       string   `json:"sku,omitempty"`
	Name      string   `json:"name"`
	Quantity  int      `json:"quantity"`
	Photos    []string `json:"photos"`
	AreaPhoto string   `json:"area_photo,omitempty"`
}

// OrderResponse salida de una comanda.
type OrderResponse struct {
	ID           string              `json:"id"`
	RequestedBy  string              `json:"requested_by"`
	RequestedFor string              `json:"requested_for"`
	Status       string              `json:"status"`
	CreatedAt    time.Time           `json:"created_at"`
	DeliveredAt  *time.Time          `json:"delivered_at,omitempty"`
	DeliveredBy  string              `json:"delivered_by,omitempty"`
	Items        []OrderItemResponse `json:"items"`
}

// OrderListResponse lista paginada de comandas.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// Motivos por los que una línea queda con cantidad pendiente tras la entrega.
const (
	ShortageInsufficientStock = "insufficient_stock"
	ShortageUnknownSKU        = "unknown_sku"
	ShortageNoSKU             = "no_sku"
)

// LocationDeduction descuento aplicado a una ubicación durante la entrega.
type LocationDeduction struct {
	ItemID     string `json:"item_id"`
	ProductID  string `json:"product_id"`
	SKU        string `json:"sku"`
	LocationID string `json:"location_id"`
	Kind       string `json:"kind"`
	Quantity   int    `json:"quantity"`
}

// ItemShortage línea que quedó con cantidad pendiente.
type ItemShortage struct {
	ItemID      string `json:"item_id"`
	SKU         string `json:"sku,omitempty"`
	Name        string `json:"name"`
	Requested   int    `json:"requested"`
	Outstanding int    `json:"outstanding"`
	Reason      string `json:"reason"`
}

// FulfillResult resultado de marcar una comanda como entregada.
// La comanda pasa a delivered aunque haya faltantes; Shortages permite avisar al usuario.
type FulfillResult struct {
	OrderID          string              `json:"order_id"`
	Status           string              `json:"status"`
	AlreadyDelivered bool                `json:"already_delivered"`
	Deductions       []LocationDeduction `json:"deductions"`
	Shortages        []ItemShortage      `json:"shortages"`
}

// Partial indica si alguna línea quedó pendiente.
func (r *FulfillResult) Partial() bool { return len(r.Shortages) > 0 }

// UnitsDeducted total de unidades descontadas.
func (r *FulfillResult) UnitsDeducted() int {
	n := 0
	for _, d := range r.Deductions {
		n += d.Quantity
	}
	return n
}

// UnitsOutstanding total de unidades pendientes.
func (r *FulfillResult) UnitsOutstanding() int {
	n := 0
	for _, s := range r.Shortages {
		n += s.Outstanding
	}
	return n
}
