package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo implementación de SessionRepository sobre PostgreSQL.
// La tabla active_sessions tiene una fila por usuario (PK user_id).
type SessionRepo struct {
	q Querier
}

// NewSessionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSessionRepository(q Querier) *SessionRepo {
	return &SessionRepo{q: q}
}

// Upsert crea o reemplaza la sesión activa del usuario.
func (r *SessionRepo) Upsert(s *entity.Session) error {
	query := `
		INSERT INTO active_sessions (user_id, user_email, token, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id)
		DO UPDATE SET user_email = EXCLUDED.user_email, token = EXCLUDED.token, expires_at = EXCLUDED.expires_at`
	_, err := r.q.Exec(context.Background(), query, s.UserID, s.UserEmail, s.Token, s.ExpiresAt)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

// GetByUserID obtiene la sesión activa del usuario (nil si no existe).
func (r *SessionRepo) GetByUserID(userID string) (*entity.Session, error) {
	query := `SELECT user_id, user_email, token, expires_at FROM active_sessions WHERE user_id = $1`
	var s entity.Session
	err := r.q.QueryRow(context.Background(), query, userID).Scan(&s.UserID, &s.UserEmail, &s.Token, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &s, nil
}

// DeleteByUserID elimina la sesión del usuario. Sin error si no existía.
func (r *SessionRepo) DeleteByUserID(userID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM active_sessions WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
