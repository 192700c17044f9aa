package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service é um item do catálogo de serviços do negócio
type Service struct {
	ID          string          `json:"id"`
	OwnerID     int             `json:"owner_id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Duration    int             `json:"duration"`
	Category    string          `json:"category"`
	Active      bool            `json:"active"`
	Malformed   bool            `json:"malformed,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type CreateServiceRequest struct {
	Name        string          `json:"name" validate:"required,max=120"`
	Description *string         `json:"description" validate:"omitempty,max=500"`
	Price       decimal.Decimal `json:"price"`
	Duration    int             `json:"duration" validate:"required,gt=0"`
	Category    string          `json:"category" validate:"required,max=60"`
	Active      *bool           `json:"active"`
}

type UpdateServiceRequest struct {
	Name        *string          `json:"name" validate:"omitempty,max=120"`
	Description *string          `json:"description" validate:"omitempty,max=500"`
	Price       *decimal.Decimal `json:"price"`
	Duration    *int             `json:"duration" validate:"omitempty,gt=0"`
	Category    *string          `json:"category" validate:"omitempty,max=60"`
	Active      *bool            `json:"active"`
}
