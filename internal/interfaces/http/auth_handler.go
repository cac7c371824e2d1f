package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/pkg/jwt"
)

// AuthHandler maneja login, logout y verificación de sesión.
type AuthHandler struct {
	uc        *auth.UseCase
	jwtSecret string
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase, jwtSecret string) *AuthHandler {
	return &AuthHandler{uc: uc, jwtSecret: jwtSecret}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email y password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	resp, err := h.uc.Login(in)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(resp)
}

// Logout godoc
// @Summary      Cerrar sesión (invalida la sesión activa)
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(GetUserID(c)); err != nil {
		return mapError(c, err)
	}
	return c.JSON(fiber.Map{"message": "sesión cerrada"})
}

// Session godoc
// @Summary      Verificar la sesión activa del token presentado
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/auth/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	// Ruta pública: valida por sí misma el token y la sesión activa, para que
	// el front pueda distinguir "token vencido" de "sesión reemplazada".
	authHeader := c.Get("Authorization")
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" || token == authHeader {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
	}
	userID, _, _, err := jwt.Parse(h.jwtSecret, token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
	}
	user, err := h.uc.ResolveToken(userID, token)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(auth.ToUserResponse(user))
}
