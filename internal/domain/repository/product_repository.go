package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
	// ListWithCategory devuelve los productos con su categoría resuelta (join explícito).
	ListWithCategory() ([]*ProductWithCategory, error)
}

// ProductWithCategory read-model de producto con su categoría (nil si no tiene).
type ProductWithCategory struct {
	Product  entity.Product
	Category *entity.Category
}
