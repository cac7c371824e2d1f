package entity

import "time"

// Session representa la sesión activa de un usuario (una por usuario).
// El token emitido en login debe coincidir con el token presentado en cada
// petición; si no coincide o la sesión no existe, la petición se rechaza.
type Session struct {
	UserID    string
	UserEmail string
	Token     string
	ExpiresAt time.Time
}

// Expired indica si la sesión ya venció.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
