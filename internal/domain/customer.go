package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

type Customer struct {
	ID                string          `json:"id"`
	OwnerID           int             `json:"owner_id"`
	Name              string          `json:"name"`
	Email             string          `json:"email"`
	Phone             *string         `json:"phone"`
	ServiceBooked     *string         `json:"service_booked"`
	TotalSpent        decimal.Decimal `json:"total_spent"`
	TotalAppointments int             `json:"total_appointments"`
	Status            CustomerStatus  `json:"status"`
	JoinDate          time.Time       `json:"join_date"`
	Malformed         bool            `json:"malformed,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

type CreateCustomerRequest struct {
	Name          string  `json:"name" validate:"required,max=120"`
	Email         string  `json:"email" validate:"required,email"`
	Phone         *string `json:"phone" validate:"omitempty,max=30"`
	ServiceBooked *string `json:"service_booked" validate:"omitempty,max=120"`
}

type UpdateCustomerRequest struct {
	Name          *string         `json:"name" validate:"omitempty,max=120"`
	Email         *string         `json:"email" validate:"omitempty,email"`
	Phone         *string         `json:"phone" validate:"omitempty,max=30"`
	ServiceBooked *string         `json:"service_booked" validate:"omitempty,max=120"`
	Status        *CustomerStatus `json:"status" validate:"omitempty,oneof=active inactive"`
}
