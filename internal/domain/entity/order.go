package entity

import (
	"fmt"
	"time"
)

// Estados de una comanda. Solo se permite pending → delivered.
const (
	OrderStatusPending   = "pending"
	OrderStatusDelivered = "delivered"
)

// DefaultRequester se usa cuando la comanda llega sin solicitante.
const DefaultRequester = "anonimo"

// Order comanda de retiro/entrega de productos.
type Order struct {
	ID           string
	RequestedBy  string // nombre o email del solicitante
	RequestedFor string // franja horaria (ver TimeSlots)
	Status       string
	CreatedAt    time.Time
	DeliveredAt  *time.Time
	DeliveredBy  string
	Items        []OrderItem
}

// IsDelivered indica si la comanda ya fue entregada.
func (o *Order) IsDelivered() bool { return o.Status == OrderStatusDelivered }

// OrderItem línea de una comanda. SKU puede estar vacío o no existir en el catálogo.
// Tras la entrega, Quantity representa lo que quedó pendiente (0 si se cubrió completo).
type OrderItem struct {
	ID       string
	OrderID  string
	SKU      string
	Name     string
	Quantity int
	Photos   []string
}

// TimeSlots devuelve las franjas horarias válidas: 08:00 a 20:30 cada media hora.
func TimeSlots() []string {
	slots := make([]string, 0, 26)
	for h := 8; h <= 20; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h), fmt.Sprintf("%02d:30", h))
	}
	return slots
}

// IsValidTimeSlot indica si s es una de las franjas de TimeSlots.
func IsValidTimeSlot(s string) bool {
	for _, slot := range TimeSlots() {
		if slot == s {
			return true
		}
	}
	return false
}
