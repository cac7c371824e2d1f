package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/stock/movements.
type RegisterMovementRequest struct {
	ProductID        string          `json:"product_id"`
	Quantity         int             `json:"quantity"`
	Type             string          `json:"type"` // in | out
	TransactionPrice decimal.Decimal `json:"transaction_price"`
	SupplierOrBuyer  string          `json:"supplier_or_buyer"`
}

// RegisterReturnRequest body para POST /api/returns.
type RegisterReturnRequest struct {
	TransactionID string `json:"transaction_id"`
}

// ExchangeItem nuevo producto entregado en una troca.
type ExchangeItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// RegisterExchangeRequest body para POST /api/exchanges.
type RegisterExchangeRequest struct {
	TransactionID string         `json:"transaction_id"`
	NewItems      []ExchangeItem `json:"new_items"`
}

// TransactionResponse una fila del historial de transacciones.
type TransactionResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	Type             string          `json:"type"`
	SupplierOrBuyer  string          `json:"supplier_or_buyer"`
	Quantity         int             `json:"quantity"`
	TransactionPrice decimal.Decimal `json:"transaction_price"`
	TransactionDate  time.Time       `json:"transaction_date"`
	IsReturned       bool            `json:"is_returned"`
	UserID           string          `json:"user_id"`
}

// ExchangeResponse transacciones creadas por una troca: las exchange_out en el
// orden de los ítems de entrada y al final la exchange_in del producto original.
type ExchangeResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// StockRow una fila del listado de stock con el resumen del producto.
type StockRow struct {
	StockID   string         `json:"stock_id"`
	ProductID string         `json:"product_id"`
	Quantity  int            `json:"quantity"`
	Product   ProductSummary `json:"product"`
}

// TransactionRow una fila del historial con producto y usuario resueltos.
type TransactionRow struct {
	TransactionResponse
	Product ProductSummary `json:"product"`
	User    UserSummary    `json:"user"`
}

// UserSummary campos de resumen del usuario para read-models.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
