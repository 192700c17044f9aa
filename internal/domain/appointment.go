package domain

import "time"

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// Appointment guarda a data como data civil (meia-noite UTC) e o horário como HH:MM
type Appointment struct {
	ID            string            `json:"id"`
	OwnerID       int               `json:"owner_id"`
	CustomerName  string            `json:"customer_name"`
	CustomerEmail *string           `json:"customer_email"`
	ServiceName   string            `json:"service_name"`
	Date          time.Time         `json:"date"`
	Time          string            `json:"time"`
	Duration      int               `json:"duration"`
	Status        AppointmentStatus `json:"status"`
	Notes         *string           `json:"notes"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

type AppointmentScope string

const (
	AppointmentScopeAll      AppointmentScope = ""
	AppointmentScopeToday    AppointmentScope = "today"
	AppointmentScopeUpcoming AppointmentScope = "upcoming"
)

type CreateAppointmentRequest struct {
	CustomerName  string  `json:"customer_name" validate:"required,max=120"`
	CustomerEmail *string `json:"customer_email" validate:"omitempty,email"`
	ServiceName   string  `json:"service_name" validate:"required,max=120"`
	Date          string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time          string  `json:"time" validate:"required,datetime=15:04"`
	Duration      int     `json:"duration" validate:"required,gt=0"`
	Notes         *string `json:"notes" validate:"omitempty,max=500"`
}

type UpdateAppointmentStatusRequest struct {
	Status AppointmentStatus `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}

// AppointmentFilter restringe a listagem pela data do agendamento; campos nil não filtram
type AppointmentFilter struct {
	From *time.Time
	To   *time.Time
}
