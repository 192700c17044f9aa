package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
)

// Sale é uma entrada do livro de vendas; nunca é alterada depois de gravada
type Sale struct {
	ID            string          `json:"id"`
	OwnerID       int             `json:"owner_id"`
	CustomerName  string          `json:"customer_name"`
	ServiceName   string          `json:"service_name"`
	Amount        decimal.Decimal `json:"amount"`
	SaleDate      time.Time       `json:"sale_date"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	Malformed     bool            `json:"malformed,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

type CreateSaleRequest struct {
	CustomerName  string          `json:"customer_name" validate:"required,max=120"`
	ServiceName   string          `json:"service_name" validate:"required,max=120"`
	Amount        decimal.Decimal `json:"amount"`
	SaleDate      string          `json:"sale_date" validate:"omitempty,datetime=2006-01-02"`
	PaymentStatus PaymentStatus   `json:"payment_status" validate:"omitempty,oneof=paid pending completed"`
}
