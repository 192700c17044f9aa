package insighting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
)

func TestSummarize(t *testing.T) {
	now := time.Date(2024, 3, 10, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		snapshot *domain.Snapshot
		validate func(t *testing.T, summary domain.Summary)
	}{
		{
			name:     "Snapshot vazio zera tudo",
			snapshot: &domain.Snapshot{},
			validate: func(t *testing.T, summary domain.Summary) {
				assert.Zero(t, summary.TotalCustomers)
				assert.Zero(t, summary.TotalAppointments)
				assert.True(t, summary.TotalRevenue.IsZero())
				assert.True(t, summary.AverageTransaction.IsZero())
				assert.Zero(t, summary.CompletionRate)
				assert.Zero(t, summary.CancellationRate)
			},
		},
		{
			name: "Totais e média por transação",
			snapshot: &domain.Snapshot{
				Customers: []*domain.Customer{{Name: "Sarah"}, {Name: "Mike"}},
				Sales: []*domain.Sale{
					sale("Hair", "100", "2024-03-01"),
					sale("Hair", "50", "2024-02-15"),
					sale("Nails", "30", "2024-03-09"),
				},
			},
			validate: func(t *testing.T, summary domain.Summary) {
				assert.Equal(t, 2, summary.TotalCustomers)
				assert.Equal(t, 3, summary.TotalTransactions)
				assert.Equal(t, "180.00", summary.TotalRevenue.StringFixed(2))
				assert.Equal(t, "60.00", summary.AverageTransaction.StringFixed(2))
				assert.Equal(t, "130.00", summary.ThisMonthRevenue.StringFixed(2))
			},
		},
		{
			name: "Agendamentos de hoje e futuros",
			snapshot: &domain.Snapshot{
				Appointments: []*domain.Appointment{
					appointment("Hair", domain.AppointmentStatusCompleted, "2024-03-09"),
					appointment("Hair", domain.AppointmentStatusConfirmed, "2024-03-10"),
					appointment("Hair", domain.AppointmentStatusPending, "2024-03-10"),
					appointment("Hair", domain.AppointmentStatusCancelled, "2024-03-11"),
				},
			},
			validate: func(t *testing.T, summary domain.Summary) {
				assert.Equal(t, 4, summary.TotalAppointments)
				assert.Equal(t, 2, summary.AppointmentsToday)
				assert.Equal(t, 1, summary.UpcomingAppointments)
				assert.Equal(t, 25.0, summary.CompletionRate)
				assert.Equal(t, 25.0, summary.CancellationRate)
			},
		},
		{
			name: "Registros inválidos são contados e valem zero",
			snapshot: &domain.Snapshot{
				Customers: []*domain.Customer{{Name: "Sarah", Malformed: true}},
				Services:  []*domain.Service{{Name: "Hair", Malformed: true}, {Name: "Nails"}},
				Sales: []*domain.Sale{
					{ServiceName: "Hair", Amount: decimal.Zero, SaleDate: date("2024-03-01"), Malformed: true},
					sale("Hair", "-20", "2024-03-01"),
					sale("Hair", "40", "2024-03-01"),
				},
			},
			validate: func(t *testing.T, summary domain.Summary) {
				assert.Equal(t, 4, summary.MalformedRecords)
				assert.Equal(t, "40.00", summary.TotalRevenue.StringFixed(2))
				assert.Equal(t, "13.33", summary.AverageTransaction.StringFixed(2))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, Summarize(tt.snapshot, now))
		})
	}
}

func TestSummarize_HojeNoFusoDoUsuario(t *testing.T) {
	snapshot := &domain.Snapshot{
		Appointments: []*domain.Appointment{
			appointment("Hair", domain.AppointmentStatusConfirmed, "2024-03-09"),
			appointment("Hair", domain.AppointmentStatusConfirmed, "2024-03-10"),
		},
	}

	// 01:00 UTC do dia 10 ainda é dia 9 em São Paulo
	instant := time.Date(2024, 3, 10, 1, 0, 0, 0, time.UTC)
	saoPaulo := time.FixedZone("BRT", -3*60*60)

	inUTC := Summarize(snapshot, instant)
	assert.Equal(t, 1, inUTC.AppointmentsToday)
	assert.Equal(t, 0, inUTC.UpcomingAppointments)

	local := Summarize(snapshot, instant.In(saoPaulo))
	assert.Equal(t, 1, local.AppointmentsToday)
	assert.Equal(t, 1, local.UpcomingAppointments)
}

func TestSummarize_Nil(t *testing.T) {
	summary := Summarize(nil, time.Now())
	assert.True(t, summary.AverageTransaction.IsZero())
	assert.Zero(t, summary.TotalCustomers)
}

func TestSummarize_IgnoraRegistrosNulos(t *testing.T) {
	snapshot := &domain.Snapshot{
		Customers: []*domain.Customer{{ID: "c1"}, nil},
		Sales: []*domain.Sale{
			sale("Hair", "100", "2024-03-01"),
			nil,
			sale("Color", "50", "2024-03-02"),
			nil,
		},
		Appointments: []*domain.Appointment{
			appointment("Hair", domain.AppointmentStatusCancelled, "2024-03-01"),
			nil,
		},
	}

	summary := Summarize(snapshot, time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))

	assert.Equal(t, 1, summary.TotalCustomers)
	assert.Equal(t, 2, summary.TotalTransactions)
	assert.Equal(t, "75", summary.AverageTransaction.String())
	assert.Equal(t, 1, summary.TotalAppointments)
	assert.Equal(t, 100.0, summary.CancellationRate)
}
