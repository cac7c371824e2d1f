package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// TransactionRepository define el puerto de persistencia para el historial de
// transacciones (append-only salvo el flip de is_returned).
type TransactionRepository interface {
	Create(transaction *entity.Transaction) error
	GetByID(id string) (*entity.Transaction, error)
	// GetForUpdate bloquea la fila para serializar devoluciones/trocas concurrentes.
	GetForUpdate(id string) (*entity.Transaction, error)
	// MarkReturned pone is_returned = true. Devuelve domain.ErrNotFound si no existe la fila.
	MarkReturned(id string) error
	// ListWithRefs devuelve el historial ordenado por fecha descendente con
	// el resumen del producto y del usuario que registró cada transacción.
	ListWithRefs() ([]*TransactionWithRefs, error)
}

// TransactionWithRefs read-model de transacción con producto y usuario resueltos.
type TransactionWithRefs struct {
	Transaction entity.Transaction
	Product     entity.Product
	User        UserSummary
}

// UserSummary campos públicos del usuario para read-models.
type UserSummary struct {
	ID    string
	Name  string
	Email string
}

// DashboardRepository define el puerto de agregados de solo lectura para el dashboard.
type DashboardRepository interface {
	// SumPriceByType suma transaction_price de las transacciones del tipo dado.
	SumPriceByType(transactionType string) (decimal.Decimal, error)
	// CountByType cuenta transacciones del tipo dado.
	CountByType(transactionType string) (int, error)
	// TopProduct devuelve el producto más vendido (mayor suma de quantity en
	// transacciones out) o nil si no hay ventas.
	TopProduct() (*TopProductRow, error)
	// MonthlySalesSeries devuelve el total vendido por mes de los últimos n meses.
	MonthlySalesSeries(months int) ([]MonthTotal, error)
}

// TopProductRow producto más vendido con unidades acumuladas.
type TopProductRow struct {
	Product   entity.Product
	UnitsSold int
}

// MonthTotal total monetario agrupado por mes (formato YYYY-MM).
type MonthTotal struct {
	Month string
	Total decimal.Decimal
}
