package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	Delete(id string) error
	List() ([]*entity.User, error)
	CountByMonth(months int) ([]MonthCount, error)
}

// MonthCount cuenta filas agrupadas por mes (formato YYYY-MM).
type MonthCount struct {
	Month string
	Total int
}
