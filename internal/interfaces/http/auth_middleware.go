package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/pkg/jwt"
)

// Locals keys para los datos del usuario autenticado en Fiber.
const (
	LocalUserID      = "user_id"
	LocalEmail       = "email"
	LocalAccessLevel = "access_level"
)

// SessionGate resuelve un token ya verificado a un usuario con sesión activa.
// Implementado por auth.UseCase. Con nil el middleware valida solo el JWT
// (útil en tests).
type SessionGate interface {
	ResolveToken(userID, token string) (*entity.User, error)
}

// AuthMiddleware valida el Bearer Token JWT, verifica la sesión activa contra
// el gate y carga user_id, email y access_level en c.Locals.
func AuthMiddleware(jwtSecret string, gate SessionGate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, email, accessLevel, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		if gate != nil {
			user, err := gate.ResolveToken(userID, tokenString)
			if err != nil {
				return mapError(c, err)
			}
			// La sesión es la fuente de verdad del nivel de acceso vigente.
			accessLevel = user.AccessLevel
			email = user.Email
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalEmail, email)
		c.Locals(LocalAccessLevel, accessLevel)
		return c.Next()
	}
}

// RequireRole autoriza solo a usuarios cuyo nivel de acceso esté en la lista.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		level := GetAccessLevel(c)
		for _, role := range allowed {
			if level == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	}
}

// RequireAdmin autoriza solo a administradores.
func RequireAdmin() fiber.Handler {
	return RequireRole(entity.AccessAdmin)
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetEmail devuelve el email del contexto.
func GetEmail(c *fiber.Ctx) string {
	return localString(c, LocalEmail)
}

// GetAccessLevel devuelve el nivel de acceso del contexto.
func GetAccessLevel(c *fiber.Ctx) string {
	return localString(c, LocalAccessLevel)
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
