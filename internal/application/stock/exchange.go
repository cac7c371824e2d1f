package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// ExchangeItem producto nuevo entregado en una troca.
type ExchangeItem struct {
	ProductID string
	Quantity  int
}

// RegisterExchange troca una venta por uno o más productos de valor total
// exactamente igual. Precondiciones, en orden y cada una con rollback total:
// la transacción original existe, es de tipo out y no fue devuelta/trocada;
// todos los productos nuevos existen; la suma de price*quantity redondeada a
// 2 decimales coincide al centavo con el precio original; y hay stock
// suficiente para cada ítem. Los efectos (marcar la original, descontar stock
// y registrar exchange_out por ítem, restaurar el stock original y registrar
// una exchange_in) se aplican en una sola transacción.
//
// Devuelve las transacciones creadas: las exchange_out en el orden de los
// ítems y al final la exchange_in.
func (uc *UseCase) RegisterExchange(ctx context.Context, userID, transactionID string, items []ExchangeItem) ([]*entity.Transaction, error) {
	if transactionID == "" || len(items) == 0 {
		return nil, fmt.Errorf("%w: transaction_id y new_items son obligatorios", domain.ErrInvalidInput)
	}
	for _, it := range items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: cada ítem requiere product_id y quantity mayor que cero", domain.ErrInvalidInput)
		}
	}
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now()
	var created []*entity.Transaction
	var alerts []LowStockAlert

	err := uc.txRunner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error {
		original, err := txRepo.GetForUpdate(transactionID)
		if err != nil {
			return err
		}
		if original == nil {
			return fmt.Errorf("%w: transacción original %s", domain.ErrNotFound, transactionID)
		}
		if original.Type != entity.TransactionOut {
			return fmt.Errorf("%w: solo transacciones de salida pueden ser trocadas", domain.ErrInvalidState)
		}
		if original.IsReturned {
			return fmt.Errorf("%w: la transacción ya fue devuelta/trocada", domain.ErrInvalidState)
		}

		// Resuelve productos y acumula el valor total de los ítems nuevos.
		products := make([]*entity.Product, len(items))
		total := decimal.Zero
		for i, it := range items {
			product, err := productRepo.GetByID(it.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: producto con ID %s", domain.ErrNotFound, it.ProductID)
			}
			products[i] = product
			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}

		// La troca es de valor neutro: debe coincidir al centavo, sin
		// reembolsos ni cobros parciales.
		if !total.Round(2).Equal(original.TransactionPrice.Round(2)) {
			return fmt.Errorf("%w: la suma de los nuevos productos debe ser igual al valor de la transacción original", domain.ErrValueMismatch)
		}

		// Verifica stock de todos los ítems (bloqueando las filas) antes de
		// mutar nada: si uno falla, ningún ítem del lote queda aplicado.
		for _, it := range items {
			st, err := stockRepo.GetForUpdate(it.ProductID)
			if err != nil {
				return err
			}
			if st.Quantity < it.Quantity {
				return fmt.Errorf("%w para el producto ID %s", domain.ErrInsufficientStock, it.ProductID)
			}
		}

		if err := txRepo.MarkReturned(original.ID); err != nil {
			return err
		}

		// Salida de cada producto nuevo + registro exchange_out con el precio de línea.
		for i, it := range items {
			newQty, err := applyMovement(stockRepo, it.ProductID, it.Quantity, entity.OperationOut, now)
			if err != nil {
				return err
			}
			if a := lowStockAlert(products[i], newQty); a != nil {
				alerts = append(alerts, *a)
			}
			linePrice := products[i].Price.Mul(decimal.NewFromInt(int64(it.Quantity))).Round(2)
			out := &entity.Transaction{
				ID:               uuid.New().String(),
				ProductID:        it.ProductID,
				Type:             entity.TransactionExchangeOut,
				SupplierOrBuyer:  original.SupplierOrBuyer,
				Quantity:         it.Quantity,
				TransactionPrice: linePrice,
				TransactionDate:  now,
				IsReturned:       false,
				UserID:           userID,
				CreatedAt:        now,
			}
			if err := txRepo.Create(out); err != nil {
				return err
			}
			created = append(created, out)
		}

		// Regresa el producto original al stock (creando la fila si no existe).
		if _, err := applyMovement(stockRepo, original.ProductID, original.Quantity, entity.OperationIn, now); err != nil {
			return err
		}
		in := &entity.Transaction{
			ID:               uuid.New().String(),
			ProductID:        original.ProductID,
			Type:             entity.TransactionExchangeIn,
			SupplierOrBuyer:  original.SupplierOrBuyer,
			Quantity:         original.Quantity,
			TransactionPrice: original.TransactionPrice,
			TransactionDate:  now,
			IsReturned:       true,
			UserID:           userID,
			CreatedAt:        now,
		}
		if err := txRepo.Create(in); err != nil {
			return err
		}
		created = append(created, in)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notify(alerts)
	return created, nil
}
