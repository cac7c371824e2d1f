package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// SessionRepository define el puerto para las sesiones activas (una por usuario).
type SessionRepository interface {
	// Upsert crea o reemplaza la sesión del usuario.
	Upsert(session *entity.Session) error
	GetByUserID(userID string) (*entity.Session, error)
	DeleteByUserID(userID string) error
}
