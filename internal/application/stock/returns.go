package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// RegisterReturn revierte una venta: marca la transacción original como
// devuelta, restaura el stock del producto (creando la fila si no existe) y
// agrega un registro de tipo return copiando producto, cantidad, precio y
// contraparte de la original. Todo dentro de una transacción; devuelve el
// registro return creado.
//
// Una transacción solo puede devolverse una vez: si is_returned ya está en
// true se rechaza con ErrInvalidState, igual que en las trocas.
func (uc *UseCase) RegisterReturn(ctx context.Context, userID, transactionID string) (*entity.Transaction, error) {
	if transactionID == "" {
		return nil, fmt.Errorf("%w: transaction_id es obligatorio", domain.ErrInvalidInput)
	}
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now()
	var created *entity.Transaction
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
			return fmt.Errorf("%w: transacción %s", domain.ErrNotFound, transactionID)
		}
		if original.IsReturned {
			return fmt.Errorf("%w: la transacción ya fue devuelta/trocada", domain.ErrInvalidState)
		}

		if err := txRepo.MarkReturned(original.ID); err != nil {
			return err
		}

		// Restaura el stock. El producto puede haber salido del catálogo;
		// la devolución procede igual, solo sin alerta de stock bajo.
		newQty, err := applyMovement(stockRepo, original.ProductID, original.Quantity, entity.OperationIn, now)
		if err != nil {
			return err
		}
		product, err := productRepo.GetByID(original.ProductID)
		if err != nil {
			return err
		}
		if a := lowStockAlert(product, newQty); a != nil {
			alerts = append(alerts, *a)
		}

		ret := &entity.Transaction{
			ID:               uuid.New().String(),
			ProductID:        original.ProductID,
			Type:             entity.TransactionReturn,
			SupplierOrBuyer:  original.SupplierOrBuyer,
			Quantity:         original.Quantity,
			TransactionPrice: original.TransactionPrice,
			TransactionDate:  now,
			IsReturned:       false,
			UserID:           userID,
			CreatedAt:        now,
		}
		if err := txRepo.Create(ret); err != nil {
			return err
		}
		created = ret
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notify(alerts)
	return created, nil
}
