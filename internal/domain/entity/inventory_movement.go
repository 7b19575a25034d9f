package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeIN  = "IN"  // alta de ubicación por importación o captura manual
	MovementTypeOUT = "OUT" // descuento por entrega de comanda
)

// InventoryMovement registro del libro de movimientos: una fila por ubicación afectada.
type InventoryMovement struct {
	ID            string
	TransactionID string // ID de la comanda o del lote de importación
	ProductID     string
	LocationID    string
	Type          string
	Quantity      int // positivo entrada, negativo salida
	CreatedAt     time.Time
	CreatedBy     string
}
