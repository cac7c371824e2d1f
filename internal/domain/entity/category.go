package entity

import "time"

// Category agrupa productos del catálogo (ej. camisas, pantalones).
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
