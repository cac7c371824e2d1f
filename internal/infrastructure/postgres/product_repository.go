package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, brand, price, size, color, category_id, alert_threshold, created_at, updated_at`

// Create persiste un producto.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, p.Brand, p.Price, p.Size, p.Color, p.CategoryID, p.AlertThreshold,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID (nil si no existe).
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.Brand, &p.Price, &p.Size, &p.Color, &p.CategoryID, &p.AlertThreshold,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update actualiza todos los campos editables del producto.
func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, brand = $3, price = $4, size = $5, color = $6,
		    category_id = $7, alert_threshold = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, p.Brand, p.Price, p.Size, p.Color, p.CategoryID, p.AlertThreshold, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto. Devuelve ErrInvalidState si el historial de
// transacciones aún lo referencia.
func (r *ProductRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidState
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListWithCategory devuelve los productos con su categoría resuelta (LEFT JOIN explícito).
func (r *ProductRepo) ListWithCategory() ([]*repository.ProductWithCategory, error) {
	query := `
		SELECT p.id, p.name, p.brand, p.price, p.size, p.color, p.category_id, p.alert_threshold,
		       p.created_at, p.updated_at,
		       c.id, c.name, c.created_at
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		ORDER BY p.name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*repository.ProductWithCategory
	for rows.Next() {
		var row repository.ProductWithCategory
		var catID, catName *string
		var catCreatedAt *time.Time
		if err := rows.Scan(
			&row.Product.ID, &row.Product.Name, &row.Product.Brand, &row.Product.Price,
			&row.Product.Size, &row.Product.Color, &row.Product.CategoryID, &row.Product.AlertThreshold,
			&row.Product.CreatedAt, &row.Product.UpdatedAt,
			&catID, &catName, &catCreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if catID != nil {
			row.Category = &entity.Category{ID: *catID, Name: *catName, CreatedAt: *catCreatedAt}
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}
