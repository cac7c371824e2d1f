package stock

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// ListStock devuelve todas las filas de stock con el resumen de su producto.
func (uc *UseCase) ListStock(ctx context.Context) ([]*repository.StockWithProduct, error) {
	return uc.stockRepo.ListWithProduct()
}

// ListTransactions devuelve el historial completo ordenado por fecha
// descendente, con producto y usuario resueltos.
func (uc *UseCase) ListTransactions(ctx context.Context) ([]*repository.TransactionWithRefs, error) {
	return uc.txRepo.ListWithRefs()
}
