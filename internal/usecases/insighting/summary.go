package insighting

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
	"github.com/vfg2006/business-dashboard-api/pkg/utils"
)

// Summarize calcula os contadores do painel. now precisa estar no fuso de quem visualiza.
func Summarize(snapshot *domain.Snapshot, now time.Time) domain.Summary {
	summary := domain.Summary{
		TotalRevenue:       decimal.Zero,
		AverageTransaction: decimal.Zero,
		ThisMonthRevenue:   decimal.Zero,
	}
	if snapshot == nil {
		return summary
	}

	today := dateOnly(now)


	for _, sale := range snapshot.Sales {
		if sale == nil {
			continue
		}
		summary.TotalTransactions++
		if sale.Malformed || sale.Amount.IsNegative() {
			summary.MalformedRecords++
		}

		amount := saleAmount(sale)
		summary.TotalRevenue = summary.TotalRevenue.Add(amount)

		day := dateOnly(sale.SaleDate)
		if day.Year() == today.Year() && day.Month() == today.Month() {
			summary.ThisMonthRevenue = summary.ThisMonthRevenue.Add(amount)
		}
	}

	if summary.TotalTransactions > 0 {
		summary.AverageTransaction = summary.TotalRevenue.
			Div(decimal.NewFromInt(int64(summary.TotalTransactions))).
			Round(2)
	}

	completed, cancelled := 0, 0
	for _, appointment := range snapshot.Appointments {
		if appointment == nil {
			continue
		}
		summary.TotalAppointments++

		day := dateOnly(appointment.Date)
		switch {
		case day.Equal(today):
			summary.AppointmentsToday++
		case day.After(today):
			summary.UpcomingAppointments++
		}

		switch appointment.Status {
		case domain.AppointmentStatusCompleted:
			completed++
		case domain.AppointmentStatusCancelled:
			cancelled++
		}
	}

	if summary.TotalAppointments > 0 {
		total := float64(summary.TotalAppointments)
		summary.CompletionRate = utils.RoundWithTwoDecimalPlace(float64(completed) / total * 100)
		summary.CancellationRate = utils.RoundWithTwoDecimalPlace(float64(cancelled) / total * 100)
	}

	for _, customer := range snapshot.Customers {
		if customer == nil {
			continue
		}
		summary.TotalCustomers++
		if customer.Malformed {
			summary.MalformedRecords++
		}
	}

	for _, service := range snapshot.Services {
		if service != nil && service.Malformed {
			summary.MalformedRecords++
		}
	}

	return summary
}
