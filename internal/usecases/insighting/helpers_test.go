package insighting

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
)

func date(value string) time.Time {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		panic(err)
	}
	return t
}

func sale(service string, amount string, day string) *domain.Sale {
	return &domain.Sale{
		ServiceName: service,
		Amount:      decimal.RequireFromString(amount),
		SaleDate:    date(day),
	}
}

func appointment(service string, status domain.AppointmentStatus, day string) *domain.Appointment {
	return &domain.Appointment{
		ServiceName: service,
		Status:      status,
		Date:        date(day),
	}
}

func appointmentsWith(total, cancelled, completed int) []*domain.Appointment {
	appointments := make([]*domain.Appointment, 0, total)
	for i := 0; i < total; i++ {
		status := domain.AppointmentStatusConfirmed
		switch {
		case i < cancelled:
			status = domain.AppointmentStatusCancelled
		case i < cancelled+completed:
			status = domain.AppointmentStatusCompleted
		}
		appointments = append(appointments, appointment("Hair", status, "2024-03-01"))
	}
	return appointments
}
