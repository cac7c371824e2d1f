package auth

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticación: login, logout y resolución de la
// credencial a un usuario con sesión activa. La sesión activa (una por
// usuario) guarda el token emitido; una petición solo es válida si su token
// coincide con el de la sesión vigente.
type UseCase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	jwtCfg      JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{userRepo: userRepo, sessionRepo: sessionRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password, genera el JWT, registra la sesión activa
// (reemplazando cualquier sesión previa del usuario) y retorna token + usuario.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.AccessLevel, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	session := &entity.Session{
		UserID:    user.ID,
		UserEmail: user.Email,
		Token:     token,
		ExpiresAt: time.Now().Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute),
	}
	if err := uc.sessionRepo.Upsert(session); err != nil {
		return nil, fmt.Errorf("registrar sesión: %w", err)
	}

	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

// Logout elimina la sesión activa del usuario. Idempotente.
func (uc *UseCase) Logout(userID string) error {
	return uc.sessionRepo.DeleteByUserID(userID)
}

// ResolveToken valida un token ya verificado criptográficamente contra la
// sesión activa y devuelve el usuario. Es el contrato del gate de sesión:
// sin sesión, sesión vencida o token distinto al de la sesión => rechazo.
func (uc *UseCase) ResolveToken(userID, token string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	session, err := uc.sessionRepo.GetByUserID(user.ID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.Expired(time.Now()) {
		return nil, domain.ErrSessionNotFound
	}
	if session.Token != token {
		return nil, domain.ErrSessionMismatch
	}
	return user, nil
}

// ToUserResponse mapea la entidad a su representación pública.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		AccessLevel: u.AccessLevel,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
