package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa una prenda del catálogo. Price es el precio de venta
// unitario; el stock disponible vive en Stock (una fila por producto).
// AlertThreshold, si está definido, dispara la alerta de stock bajo.
type Product struct {
	ID             string
	Name           string
	Brand          string
	Price          decimal.Decimal
	Size           string
	Color          string
	CategoryID     *string
	AlertThreshold *int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
