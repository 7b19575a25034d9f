package entity

import (
	"strings"
	"time"
)

// LocationKind tipo de ubicación física del stock.
type LocationKind string

// Tipos de ubicación válidos.
const (
	LocationWarehouse LocationKind = "warehouse" // bodega
	LocationBackroom  LocationKind = "backroom"  // trastienda
	LocationFloor     LocationKind = "floor"     // piso de venta
)

// Alias heredados del sistema anterior (planillas en español).
var locationKindAliases = map[string]LocationKind{
	"warehouse":  LocationWarehouse,
	"bodega":     LocationWarehouse,
	"backroom":   LocationBackroom,
	"trastienda": LocationBackroom,
	"floor":      LocationFloor,
	"piso":       LocationFloor,
}

// ParseLocationKind normaliza un tipo de ubicación (acepta alias en español).
func ParseLocationKind(s string) (LocationKind, bool) {
	k, ok := locationKindAliases[strings.ToLower(strings.TrimSpace(s))]
	return k, ok
}

// Valid indica si el tipo es uno de los tres soportados.
func (k LocationKind) Valid() bool {
	switch k {
	case LocationWarehouse, LocationBackroom, LocationFloor:
		return true
	}
	return false
}

// Location stock de un producto en un lugar físico. Pueden coexistir varias con el mismo
// tipo/pasillo/rack para un producto: la identidad es el ID.
type Location struct {
	ID        string
	ProductID string
	Kind      LocationKind
	Aisle     string
	Rack      string
	Quantity  int      // nunca negativo
	Photos    []string // nombres de archivo de fotos del área
	CreatedAt time.Time
}
