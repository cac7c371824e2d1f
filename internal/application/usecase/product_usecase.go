package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// ProductUseCase administración del catálogo de prendas.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, categoryRepo: categoryRepo}
}

// Create crea un producto. La categoría, si viene, se resuelve por nombre y
// debe existir.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Size == "" || in.Color == "" || !in.Price.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var category *entity.Category
	if in.Category != "" {
		var err error
		category, err = uc.categoryRepo.GetByName(in.Category)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Brand:          in.Brand,
		Price:          in.Price.Round(2),
		Size:           in.Size,
		Color:          in.Color,
		AlertThreshold: in.AlertThreshold,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if category != nil {
		product.CategoryID = &category.ID
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product, category), nil
}

// Update modifica los campos provistos de un producto existente.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		product.Name = in.Name
	}
	if in.Brand != nil {
		product.Brand = *in.Brand
	}
	if in.Price != nil {
		if !in.Price.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.Price = in.Price.Round(2)
	}
	if in.Size != "" {
		product.Size = in.Size
	}
	if in.Color != "" {
		product.Color = in.Color
	}
	if in.AlertThreshold != nil {
		product.AlertThreshold = in.AlertThreshold
	}

	var category *entity.Category
	if in.Category != nil {
		if *in.Category == "" {
			product.CategoryID = nil
		} else {
			category, err = uc.categoryRepo.GetByName(*in.Category)
			if err != nil {
				return nil, err
			}
			if category == nil {
				return nil, domain.ErrNotFound
			}
			product.CategoryID = &category.ID
		}
	} else if product.CategoryID != nil {
		category, err = uc.categoryRepo.GetByID(*product.CategoryID)
		if err != nil {
			return nil, err
		}
	}

	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product, category), nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.Delete(id)
}

// List devuelve todos los productos con su categoría resuelta.
func (uc *ProductUseCase) List() ([]*dto.ProductResponse, error) {
	rows, err := uc.productRepo.ListWithCategory()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toProductResponse(&row.Product, row.Category))
	}
	return out, nil
}

func toProductResponse(p *entity.Product, c *entity.Category) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Brand:          p.Brand,
		Price:          p.Price,
		Size:           p.Size,
		Color:          p.Color,
		AlertThreshold: p.AlertThreshold,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if c != nil {
		resp.Category = &dto.CategoryResponse{ID: c.ID, Name: c.Name}
	}
	return resp
}
