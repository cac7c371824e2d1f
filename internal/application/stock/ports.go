package stock

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad entre el stock y el
// historial de transacciones: o se confirman todas las escrituras o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		txRepo repository.TransactionRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// LowStockAlert señal de stock bajo tras aplicar un movimiento.
type LowStockAlert struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Threshold   int    `json:"threshold"`
}

// LowStockNotifier publica alertas de stock bajo. Es best-effort: un fallo del
// notificador nunca debe fallar el movimiento que lo originó.
type LowStockNotifier interface {
	NotifyLowStock(ctx context.Context, alert LowStockAlert) error
}
