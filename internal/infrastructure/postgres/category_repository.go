package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una categoría.
func (r *CategoryRepo) Create(c *entity.Category) error {
	query := `INSERT INTO categories (id, name, created_at) VALUES ($1, $2, $3)`
	_, err := r.q.Exec(context.Background(), query, c.ID, c.Name, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID (nil si no existe).
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	return r.getBy(`SELECT id, name, created_at FROM categories WHERE id = $1`, id)
}

// GetByName obtiene una categoría por nombre exacto (nil si no existe).
func (r *CategoryRepo) GetByName(name string) (*entity.Category, error) {
	return r.getBy(`SELECT id, name, created_at FROM categories WHERE name = $1`, name)
}

func (r *CategoryRepo) getBy(query string, arg any) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query, arg).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// Delete elimina una categoría.
func (r *CategoryRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListWithProductCount devuelve las categorías con su número de productos.
func (r *CategoryRepo) ListWithProductCount() ([]*repository.CategoryProductCount, error) {
	query := `
		SELECT c.id, c.name, c.created_at, COUNT(p.id)
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		GROUP BY c.id, c.name, c.created_at
		ORDER BY c.name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var list []*repository.CategoryProductCount
	for rows.Next() {
		var row repository.CategoryProductCount
		if err := rows.Scan(&row.Category.ID, &row.Category.Name, &row.Category.CreatedAt, &row.Products); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}

// CountProducts cuenta los productos que referencian la categoría.
func (r *CategoryRepo) CountProducts(categoryID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM products WHERE category_id = $1`, categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count products by category: %w", err)
	}
	return count, nil
}
