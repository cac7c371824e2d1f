package stock

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// MovementInput entrada para registrar un movimiento de stock (entrada o salida).
// TransactionPrice es el total de la línea, no el precio unitario.
type MovementInput struct {
	UserID           string
	ProductID        string
	Type             string // in | out
	Quantity         int
	TransactionPrice decimal.Decimal
	SupplierOrBuyer  string
}

// Validate devuelve la lista de violaciones de la entrada; vacía si es válida.
// El resultado tipado mantiene lineal el flujo del caso de uso.
func (in MovementInput) Validate() []string {
	var violations []string
	if in.ProductID == "" {
		violations = append(violations, "product_id es obligatorio")
	}
	if in.Type != entity.OperationIn && in.Type != entity.OperationOut {
		violations = append(violations, `type debe ser "in" o "out"`)
	}
	if in.Quantity <= 0 {
		violations = append(violations, "quantity debe ser mayor que cero")
	}
	if !in.TransactionPrice.GreaterThan(decimal.Zero) {
		violations = append(violations, "transaction_price debe ser mayor que cero")
	}
	if strings.TrimSpace(in.SupplierOrBuyer) == "" {
		violations = append(violations, "supplier_or_buyer es obligatorio")
	}
	return violations
}

// RegisterMovement registra una entrada o salida de stock: localiza el
// producto, aplica el delta sobre la fila de stock bloqueada y agrega el
// registro inmutable al historial, todo en una transacción. Devuelve la
// transacción creada.
func (uc *UseCase) RegisterMovement(ctx context.Context, in MovementInput) (*entity.Transaction, error) {
	if violations := in.Validate(); len(violations) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(violations, "; "))
	}
	if in.UserID == "" {
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
		product, err := productRepo.GetByID(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: producto con ID %s", domain.ErrNotFound, in.ProductID)
		}

		newQty, err := applyMovement(stockRepo, in.ProductID, in.Quantity, in.Type, now)
		if err != nil {
			return err
		}
		if a := lowStockAlert(product, newQty); a != nil {
			alerts = append(alerts, *a)
		}

		tx := &entity.Transaction{
			ID:               uuid.New().String(),
			ProductID:        in.ProductID,
			Type:             in.Type,
			SupplierOrBuyer:  in.SupplierOrBuyer,
			Quantity:         in.Quantity,
			TransactionPrice: in.TransactionPrice.Round(2),
			TransactionDate:  now,
			IsReturned:       false,
			UserID:           in.UserID,
			CreatedAt:        now,
		}
		if err := txRepo.Create(tx); err != nil {
			return err
		}
		created = tx
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notify(alerts)
	return created, nil
}
