package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInvalidState       = errors.New("estado inválido de la transacción")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrValueMismatch      = errors.New("el valor total no coincide")
	ErrSessionNotFound    = errors.New("sesión activa no encontrada")
	ErrSessionMismatch    = errors.New("el token de sesión no corresponde")
)
