package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrUserNotFound         = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists   = errors.New("el email ya está registrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrConcurrencyConflict  = errors.New("conflicto de concurrencia, reintente la operación")
	ErrEmptyOrder           = fmt.Errorf("%w: la comanda debe tener al menos un producto", ErrInvalidInput)
	ErrMissingImportColumns = fmt.Errorf("%w: faltan columnas requeridas (sku, name)", ErrInvalidInput)
)

// ImportRowError describe el fallo de una fila durante la importación del catálogo.
// No aborta el lote: se acumula en el resumen.
type ImportRowError struct {
	Row     int    `json:"row"` // índice de la fila en la entrada (base 0)
	SKU     string `json:"sku,omitempty"`
	Message string `json:"message"`
}

func (e ImportRowError) Error() string {
	if e.SKU != "" {
		return fmt.Sprintf("fila %d (sku %s): %s", e.Row, e.SKU, e.Message)
	}
	return fmt.Sprintf("fila %d: %s", e.Row, e.Message)
}
