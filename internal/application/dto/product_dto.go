package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
// Category es el nombre de la categoría (opcional); se resuelve a su ID.
type CreateProductRequest struct {
	Name           string          `json:"name"`
	Brand          string          `json:"brand,omitempty"`
	Price          decimal.Decimal `json:"price"`
	Size           string          `json:"size"`
	Color          string          `json:"color"`
	Category       string          `json:"category,omitempty"`
	AlertThreshold *int            `json:"alert_threshold,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id. Campos nil/vacíos no se tocan.
type UpdateProductRequest struct {
	Name           string           `json:"name,omitempty"`
	Brand          *string          `json:"brand,omitempty"`
	Price          *decimal.Decimal `json:"price,omitempty"`
	Size           string           `json:"size,omitempty"`
	Color          string           `json:"color,omitempty"`
	Category       *string          `json:"category,omitempty"`
	AlertThreshold *int             `json:"alert_threshold,omitempty"`
}

// ProductResponse producto con su categoría resuelta.
type ProductResponse struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Brand          string            `json:"brand"`
	Price          decimal.Decimal   `json:"price"`
	Size           string            `json:"size"`
	Color          string            `json:"color"`
	AlertThreshold *int              `json:"alert_threshold,omitempty"`
	Category       *CategoryResponse `json:"category,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// ProductSummary campos de resumen del producto para read-models de stock/historial.
type ProductSummary struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Brand string          `json:"brand"`
	Price decimal.Decimal `json:"price"`
	Size  string          `json:"size"`
	Color string          `json:"color"`
}
