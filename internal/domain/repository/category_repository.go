package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByName(name string) (*entity.Category, error)
	Delete(id string) error
	// ListWithProductCount devuelve las categorías con el número de productos asociados.
	ListWithProductCount() ([]*CategoryProductCount, error)
	// CountProducts cuenta los productos que referencian la categoría.
	CountProducts(categoryID string) (int, error)
}

// CategoryProductCount read-model de categoría con conteo de productos.
type CategoryProductCount struct {
	Category entity.Category
	Products int
}
