package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción del historial.
const (
	TransactionIn          = "in"           // compra / entrada
	TransactionOut         = "out"          // venta / salida
	TransactionReturn      = "return"       // devolución
	TransactionExchangeOut = "exchange_out" // producto entregado en una troca
	TransactionExchangeIn  = "exchange_in"  // producto recibido de vuelta en una troca
)

// ValidTransactionType indica si el tipo pertenece al conjunto permitido.
func ValidTransactionType(t string) bool {
	switch t {
	case TransactionIn, TransactionOut, TransactionReturn, TransactionExchangeOut, TransactionExchangeIn:
		return true
	}
	return false
}

// Transaction es un registro inmutable del historial de transacciones.
// Las filas solo se insertan; la única mutación permitida es el flip de
// IsReturned sobre la transacción original cuando se devuelve o se troca.
// TransactionPrice es el total de la línea (no unitario).
type Transaction struct {
	ID               string
	ProductID        string
	Type             string // in, out, return, exchange_out, exchange_in
	SupplierOrBuyer  string
	Quantity         int
	TransactionPrice decimal.Decimal
	TransactionDate  time.Time
	IsReturned       bool
	UserID           string
	CreatedAt        time.Time
}
