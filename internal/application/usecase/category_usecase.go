package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// CategoryUseCase administración de categorías del catálogo.
type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(categoryRepo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo}
}

// Create crea una categoría. El nombre es único (comparado ya recortado).
func (uc *CategoryUseCase) Create(in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.categoryRepo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	category := &entity.Category{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := uc.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: category.ID, Name: category.Name}, nil
}

// List devuelve todas las categorías con su número de productos.
func (uc *CategoryUseCase) List() ([]*dto.CategoryResponse, error) {
	rows, err := uc.categoryRepo.ListWithProductCount()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CategoryResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, &dto.CategoryResponse{
			ID:       row.Category.ID,
			Name:     row.Category.Name,
			Products: row.Products,
		})
	}
	return out, nil
}

// Delete elimina una categoría. Se rechaza con ErrInvalidState mientras
// existan productos que la referencien.
func (uc *CategoryUseCase) Delete(id string) error {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	count, err := uc.categoryRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrInvalidState
	}
	return uc.categoryRepo.Delete(id)
}
