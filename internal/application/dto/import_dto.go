package dto

import "github.com/jhoicas/bodega-api/internal/domain"

// ImportCatalogRequest filas ya parseadas de una planilla (columna → valor crudo).
type ImportCatalogRequest struct {
	Rows []map[string]any `json:"rows" validate:"required"`
}

// ImportSummary resumen de una importación de catálogo.
type ImportSummary struct {
	BatchID        string                  `json:"batch_id"`
	Created        int                     `json:"created"`
	Updated        int                     `json:"updated"`
	LocationsAdded int                     `json:"locations_added"`
	Errors         []domain.ImportRowError `json:"errors"`
}
