package dto

import "time"

// CreateCompanyRequest body para POST /api/companies.
type CreateCompanyRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
	Code string `json:"code" validate:"required,min=1,max=50"`
}

// CompanyResponse compañía en respuestas.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest entrada para login por compañía (nombre + código).
type LoginRequest struct {
	Name string `json:"name" validate:"required"`
	Code string `json:"code" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token   string          `json:"token"`
	Company CompanyResponse `json:"company"`
}
