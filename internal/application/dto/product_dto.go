package dto

import "time"

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU       string `json:"sku" validate:"required,min=1,max=64"`
	Name      string `json:"name" validate:"required,min=1,max=200"`
	Category  string `json:"category" validate:"max=100"`
	Notes     string `json:"notes"`
	ImageURL  string `json:"image_url" validate:"omitempty,url,max=500"`
	ImageFile string `json:"image_file" validate:"max=255"`
}

// UpdateProductRequest entrada para editar un producto (el SKU es inmutable).
type UpdateProductRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=200"`
	Category  *string `json:"category" validate:"omitempty,max=100"`
	Notes     *string `json:"notes"`
	ImageURL  *string `json:"image_url" validate:"omitempty,url,max=500"`
	ImageFile *string `json:"image_file" validate:"omitempty,max=255"`
}

// AddLocationRequest entrada para agregar una ubicación de stock a un producto.
type AddLocationRequest struct {
	Kind     string   `json:"kind" validate:"required"`
	Aisle    string   `json:"aisle" validate:"max=50"`
	Rack     string   `json:"rack" validate:"max=50"`
	Quantity int      `json:"quantity" validate:"min=0"`
	Photos   []string `json:"photos" validate:"dive,max=255"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Aisle     string    `json:"aisle,omitempty"`
	Rack      string    `json:"rack,omitempty"`
	Quantity  int       `json:"quantity"`
	Photos    []string  `json:"photos"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductResponse salida de un producto con su stock agregado.
type ProductResponse struct {
	ID          string             `json:"id"`
	SKU         string             `json:"sku"`
	Name        string             `json:"name"`
	Category    string             `json:"category,omitempty"`
	Notes       string             `json:"notes,omitempty"`
	ImageURL    string             `json:"image_url,omitempty"`
	ImageFile   string             `json:"image_file,omitempty"`
	TotalStock  int                `json:"total_stock"`
	StockByKind map[string]int     `json:"stock_by_kind"`
	Locations   []LocationResponse `json:"locations"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// StockResponse stock total de un producto.
type StockResponse struct {
	ProductID string `json:"product_id"`
	Stock     int    `json:"stock"`
}

// SearchResult resultado del buscador público.
type SearchResult struct {
	ID           string `json:"id"`
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	Stock        int    `json:"stock"`
	Aisle        string `json:"aisle,omitempty"`
	Rack         string `json:"rack,omitempty"`
	AreaPhoto    string `json:"area_photo,omitempty"`
	ProductImage string `json:"product_image,omitempty"`
}
