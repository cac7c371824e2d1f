package dto

// RegisterUserRequest body para POST /api/users (solo admin).
type RegisterUserRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	AccessLevel string `json:"access_level"`
}

// UpdateUserRequest body para PUT /api/users/:id. Campos vacíos no se tocan.
type UpdateUserRequest struct {
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	Password    string `json:"password,omitempty"`
	AccessLevel string `json:"access_level,omitempty"`
}
