package entity

import "time"

// Niveles de acceso de usuario.
const (
	AccessAdmin = "admin"
	AccessUser  = "user"
	AccessGuest = "guest"
)

// User representa un usuario del back office.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	AccessLevel  string // admin, user, guest
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin indica si el usuario tiene nivel de acceso admin.
func (u *User) IsAdmin() bool {
	return u.AccessLevel == AccessAdmin
}
