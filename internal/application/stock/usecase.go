package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// UseCase implementa el libro de inventario: registro de movimientos,
// devoluciones, trocas y los listados de stock e historial. Toda escritura
// corre dentro de una transacción del TxRunner con bloqueo de fila
// (SELECT FOR UPDATE) sobre el stock.
type UseCase struct {
	txRunner  TxRunner
	stockRepo repository.StockRepository
	txRepo    repository.TransactionRepository
	notifier  LowStockNotifier
}

// NewUseCase construye el caso de uso del libro de inventario.
// stockRepo y txRepo van atados al pool (solo lecturas fuera de transacción).
func NewUseCase(
	txRunner TxRunner,
	stockRepo repository.StockRepository,
	txRepo repository.TransactionRepository,
	notifier LowStockNotifier,
) *UseCase {
	return &UseCase{txRunner: txRunner, stockRepo: stockRepo, txRepo: txRepo, notifier: notifier}
}

// applyMovement carga (o crea) la fila de stock del producto con bloqueo de
// fila y aplica el delta. Para salidas verifica Quantity >= quantity sobre la
// fila bloqueada, de modo que el stock nunca se persiste negativo. Devuelve la
// cantidad resultante.
func applyMovement(stockRepo repository.StockRepository, productID string, quantity int, direction string, now time.Time) (int, error) {
	st, err := stockRepo.GetForUpdate(productID)
	if err != nil {
		return 0, err
	}
	switch direction {
	case entity.OperationIn:
		st.Quantity += quantity
	case entity.OperationOut:
		if st.Quantity < quantity {
			return 0, fmt.Errorf("%w para el producto ID %s", domain.ErrInsufficientStock, productID)
		}
		st.Quantity -= quantity
	default:
		return 0, fmt.Errorf("%w: dirección %q", domain.ErrInvalidInput, direction)
	}
	st.OperationType = direction
	st.UpdatedAt = now
	if err := stockRepo.Upsert(st); err != nil {
		return 0, err
	}
	return st.Quantity, nil
}

// lowStockAlert devuelve la alerta si el producto define umbral y la cantidad
// resultante quedó en o por debajo de él; nil en caso contrario.
func lowStockAlert(product *entity.Product, quantity int) *LowStockAlert {
	if product == nil || product.AlertThreshold == nil {
		return nil
	}
	if quantity > *product.AlertThreshold {
		return nil
	}
	return &LowStockAlert{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    quantity,
		Threshold:   *product.AlertThreshold,
	}
}

// notify publica las alertas de stock bajo después del Commit, fuera de la
// petición. Un fallo del notificador no afecta la operación ya confirmada.
func (uc *UseCase) notify(alerts []LowStockAlert) {
	if uc.notifier == nil || len(alerts) == 0 {
		return
	}
	go func(alerts []LowStockAlert) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for _, a := range alerts {
			_ = uc.notifier.NotifyLowStock(ctx, a) // best-effort; el notificador loguea sus fallos
		}
	}(alerts)
}
