package dto

// CreateCategoryRequest body para POST /api/categories.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse categoría con conteo opcional de productos.
type CategoryResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Products int    `json:"products,omitempty"`
}
