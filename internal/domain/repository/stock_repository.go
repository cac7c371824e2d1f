package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// StockRepository define el puerto para consultar/actualizar el stock por producto.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	Get(productID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE). Si el
	// producto aún no tiene fila de stock devuelve una fila en cero sin ID.
	GetForUpdate(productID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	// ListWithProduct devuelve todas las filas de stock con el resumen del producto.
	ListWithProduct() ([]*StockWithProduct, error)
	// CountBelowThreshold cuenta productos cuyo stock está en o por debajo de su umbral de alerta.
	CountBelowThreshold() (int, error)
}

// StockWithProduct read-model de stock con los campos de resumen del producto.
type StockWithProduct struct {
	Stock   entity.Stock
	Product entity.Product
}
