package dto

import "time"

// PickLine línea de la hoja de recolección: de dónde sacar cada producto.
type PickLine struct {
	SKU      string
	Name     string
	Quantity int
	Kind     string // ubicación sugerida (vacío si no hay stock)
	Aisle    string
	Rack     string
	Stock    int
}

// PickList datos para imprimir la hoja de recolección de una comanda.
type PickList struct {
	OrderID      string
	RequestedBy  string
	RequestedFor string
	Status       string
	CreatedAt    time.Time
	Lines        []PickLine
}
