package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación sobre PostgreSQL del historial de
// transacciones (usable con pool o tx). Las filas solo se insertan; la única
// actualización permitida es MarkReturned.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionColumns = `id, product_id, type, supplier_or_buyer, quantity, transaction_price, transaction_date, is_returned, user_id, created_at`

// Create persiste un registro del historial.
func (r *TransactionRepo) Create(t *entity.Transaction) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	query := `
		INSERT INTO transaction_history (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.ProductID, t.Type, t.SupplierOrBuyer, t.Quantity,
		t.TransactionPrice, t.TransactionDate, t.IsReturned, t.UserID, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una transacción por ID (nil si no existe).
func (r *TransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transaction_history WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene una transacción bloqueando la fila (SELECT FOR UPDATE)
// para serializar devoluciones/trocas concurrentes contra la misma venta.
func (r *TransactionRepo) GetForUpdate(id string) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transaction_history WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

func (r *TransactionRepo) scanOne(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	err := row.Scan(
		&t.ID, &t.ProductID, &t.Type, &t.SupplierOrBuyer, &t.Quantity,
		&t.TransactionPrice, &t.TransactionDate, &t.IsReturned, &t.UserID, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &t, nil
}

// MarkReturned pone is_returned = true sobre exactamente una fila existente.
func (r *TransactionRepo) MarkReturned(id string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE transaction_history SET is_returned = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark returned: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transacción %s", domain.ErrNotFound, id)
	}
	return nil
}

// ListWithRefs devuelve el historial ordenado por fecha descendente con el
// resumen del producto y del usuario (join explícito).
func (r *TransactionRepo) ListWithRefs() ([]*repository.TransactionWithRefs, error) {
	// LEFT JOIN: el producto pudo salir del catálogo después de la venta y el
	// historial debe seguir mostrando la fila completa.
	query := `
		SELECT t.id, t.product_id, t.type, t.supplier_or_buyer, t.quantity,
		       t.transaction_price, t.transaction_date, t.is_returned, t.user_id, t.created_at,
		       COALESCE(p.id, ''), COALESCE(p.name, ''), COALESCE(p.brand, ''),
		       COALESCE(p.price, 0), COALESCE(p.size, ''), COALESCE(p.color, ''),
		       COALESCE(u.id, ''), COALESCE(u.name, ''), COALESCE(u.email, '')
		FROM transaction_history t
		LEFT JOIN products p ON p.id = t.product_id
		LEFT JOIN users u ON u.id = t.user_id
		ORDER BY t.transaction_date DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var list []*repository.TransactionWithRefs
	for rows.Next() {
		var row repository.TransactionWithRefs
		if err := rows.Scan(
			&row.Transaction.ID, &row.Transaction.ProductID, &row.Transaction.Type,
			&row.Transaction.SupplierOrBuyer, &row.Transaction.Quantity,
			&row.Transaction.TransactionPrice, &row.Transaction.TransactionDate,
			&row.Transaction.IsReturned, &row.Transaction.UserID, &row.Transaction.CreatedAt,
			&row.Product.ID, &row.Product.Name, &row.Product.Brand, &row.Product.Price,
			&row.Product.Size, &row.Product.Color,
			&row.User.ID, &row.User.Name, &row.User.Email,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}
