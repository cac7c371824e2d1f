package usecase

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// UserUseCase administración de usuarios (solo admin).
type UserUseCase struct {
	userRepo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

func validAccessLevel(level string) bool {
	switch level {
	case entity.AccessAdmin, entity.AccessUser, entity.AccessGuest:
		return true
	}
	return false
}

// Register crea un usuario: hashea la contraseña con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *UserUseCase) Register(in dto.RegisterUserRequest) (*dto.UserResponse, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" || in.AccessLevel == "" {
		return nil, domain.ErrInvalidInput
	}
	if !validAccessLevel(in.AccessLevel) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		AccessLevel:  in.AccessLevel,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// Update modifica los campos provistos de un usuario existente. La contraseña,
// si viene, se vuelve a hashear.
func (uc *UserUseCase) Update(id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Email != "" && in.Email != user.Email {
		other, err := uc.userRepo.GetByEmail(in.Email)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, domain.ErrEmailAlreadyExists
		}
		user.Email = in.Email
	}
	if in.AccessLevel != "" {
		if !validAccessLevel(in.AccessLevel) {
			return nil, domain.ErrInvalidInput
		}
		user.AccessLevel = in.AccessLevel
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// Delete elimina un usuario por ID.
func (uc *UserUseCase) Delete(id string) error {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return uc.userRepo.Delete(id)
}

// List devuelve todos los usuarios (sin hashes).
func (uc *UserUseCase) List() ([]*dto.UserResponse, error) {
	users, err := uc.userRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, auth.ToUserResponse(u))
	}
	return out, nil
}
