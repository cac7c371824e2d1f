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

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, name, email, password_hash, access_level, created_at, updated_at`

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.AccessLevel,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID (nil si no existe).
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	return r.getBy(`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email (nil si no existe).
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	return r.getBy(`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepo) getBy(query string, arg any) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.AccessLevel, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// Update actualiza los campos editables del usuario.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users
		SET name = $2, email = $3, password_hash = $4, access_level = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.AccessLevel, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// List devuelve todos los usuarios ordenados por nombre.
func (r *UserRepo) List() ([]*entity.User, error) {
	rows, err := r.q.Query(context.Background(), `SELECT `+userColumns+` FROM users ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.AccessLevel, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// CountByMonth cuenta usuarios registrados por mes en los últimos n meses.
func (r *UserRepo) CountByMonth(months int) ([]repository.MonthCount, error) {
	query := `
		SELECT to_char(date_trunc('month', created_at), 'YYYY-MM') AS month, COUNT(*)
		FROM users
		WHERE created_at >= date_trunc('month', now()) - make_interval(months => $1 - 1)
		GROUP BY month
		ORDER BY month`
	rows, err := r.q.Query(context.Background(), query, months)
	if err != nil {
		return nil, fmt.Errorf("count users by month: %w", err)
	}
	defer rows.Close()

	var list []repository.MonthCount
	for rows.Next() {
		var mc repository.MonthCount
		if err := rows.Scan(&mc.Month, &mc.Total); err != nil {
			return nil, fmt.Errorf("scan month count: %w", err)
		}
		list = append(list, mc)
	}
	return list, rows.Err()
}
