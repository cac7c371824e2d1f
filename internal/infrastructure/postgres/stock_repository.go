package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de un producto. Si no hay fila devuelve una en cero.
func (r *StockRepo) Get(productID string) (*entity.Stock, error) {
	query := `
		SELECT id, product_id, quantity, operation_type, updated_at
		FROM stock WHERE product_id = $1`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&s.ID, &s.ProductID, &s.Quantity, &s.OperationType, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ProductID: productID}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
// Si el producto aún no tiene fila devuelve una en cero sin bloquear nada; la
// creará el Upsert posterior dentro de la misma transacción.
func (r *StockRepo) GetForUpdate(productID string) (*entity.Stock, error) {
	query := `
		SELECT id, product_id, quantity, operation_type, updated_at
		FROM stock WHERE product_id = $1
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&s.ID, &s.ProductID, &s.Quantity, &s.OperationType, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ProductID: productID}, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la fila de stock del producto. El CHECK
// (quantity >= 0) de la tabla respalda el invariante verificado en el caso de uso.
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	if stock.ID == "" {
		stock.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock (id, product_id, quantity, operation_type, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, operation_type = EXCLUDED.operation_type, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, stock.ID, stock.ProductID, stock.Quantity, stock.OperationType)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListWithProduct devuelve todas las filas de stock con el resumen del producto (join explícito).
func (r *StockRepo) ListWithProduct() ([]*repository.StockWithProduct, error) {
	query := `
		SELECT s.id, s.product_id, s.quantity, s.operation_type, s.updated_at,
		       p.id, p.name, p.brand, p.price, p.size, p.color
		FROM stock s
		JOIN products p ON p.id = s.product_id
		ORDER BY p.name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var list []*repository.StockWithProduct
	for rows.Next() {
		var row repository.StockWithProduct
		if err := rows.Scan(
			&row.Stock.ID, &row.Stock.ProductID, &row.Stock.Quantity, &row.Stock.OperationType, &row.Stock.UpdatedAt,
			&row.Product.ID, &row.Product.Name, &row.Product.Brand, &row.Product.Price, &row.Product.Size, &row.Product.Color,
		); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}

// CountBelowThreshold cuenta productos cuyo stock está en o por debajo de su umbral de alerta.
func (r *StockRepo) CountBelowThreshold() (int, error) {
	query := `
		SELECT COUNT(*)
		FROM stock s
		JOIN products p ON p.id = s.product_id
		WHERE p.alert_threshold IS NOT NULL AND s.quantity <= p.alert_threshold`
	var count int
	if err := r.q.QueryRow(context.Background(), query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return count, nil
}
