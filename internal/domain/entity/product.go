package entity

import "time"

// Product representa un producto del catálogo identificado por SKU.
// Sus ubicaciones (Location) se consultan por ProductID; el producto no guarda punteros a ellas.
type Product struct {
	ID        string
	SKU       string // único e inmutable
	Name      string
	Category  string
	Notes     string
	ImageURL  string // imagen externa (URL)
	ImageFile string // nombre opaco devuelto por el almacenamiento de archivos
	CreatedAt time.Time
	UpdatedAt time.Time
}
