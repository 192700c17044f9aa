package insighting

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
)

// DemoSource devolve um negócio de exemplo fixo, com datas relativas ao relógio informado
type DemoSource struct {
	now func() time.Time
}

func NewDemoSource(now func() time.Time) *DemoSource {
	if now == nil {
		now = time.Now
	}
	return &DemoSource{now: now}
}

type demoService struct {
	name     string
	price    int64
	duration int
	category string
	share    int64
}

var demoServices = []demoService{
	{name: "Hair Styling", price: 85, duration: 60, category: "Hair", share: 35},
	{name: "Massage", price: 120, duration: 60, category: "Wellness", share: 25},
	{name: "Manicure", price: 45, duration: 45, category: "Nails", share: 20},
	{name: "Facial", price: 75, duration: 60, category: "Skin", share: 15},
	{name: "Consultation", price: 0, duration: 30, category: "Other", share: 5},
}

// receita dos cinco meses anteriores ao mês corrente
var demoMonthlyRevenue = []int64{8400, 9200, 10100, 11200, 10800}

type demoCustomer struct {
	name    string
	email   string
	service string
	spent   int64
	visits  int
	time    string
	status  domain.AppointmentStatus
}

var demoCustomers = []demoCustomer{
	{name: "Sarah Johnson", email: "sarah.johnson@example.com", service: "Hair Styling", spent: 1250, visits: 14, time: "10:00", status: domain.AppointmentStatusConfirmed},
	{name: "Mike Chen", email: "mike.chen@example.com", service: "Massage", spent: 1480, visits: 11, time: "11:30", status: domain.AppointmentStatusPending},
	{name: "Emily Davis", email: "emily.davis@example.com", service: "Manicure", spent: 540, visits: 12, time: "14:00", status: domain.AppointmentStatusConfirmed},
	{name: "David Wilson", email: "david.wilson@example.com", service: "Consultation", spent: 0, visits: 1, time: "15:30", status: domain.AppointmentStatusConfirmed},
	{name: "Lisa Brown", email: "lisa.brown@example.com", service: "Facial", spent: 675, visits: 9, time: "16:30", status: domain.AppointmentStatusCompleted},
}

func (s *DemoSource) Fetch(_ context.Context, ownerID int) (*domain.Snapshot, error) {
	now := s.now()
	today := dateOnly(now)
	firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	snapshot := &domain.Snapshot{}

	for i, svc := range demoServices {
		snapshot.Services = append(snapshot.Services, &domain.Service{
			ID:       fmt.Sprintf("demo-svc-%d", i+1),
			OwnerID:  ownerID,
			Name:     svc.name,
			Price:    decimal.NewFromInt(svc.price),
			Duration: svc.duration,
			Category: svc.category,
			Active:   true,
		})
	}

	for i, c := range demoCustomers {
		email := c.email
		service := c.service
		snapshot.Customers = append(snapshot.Customers, &domain.Customer{
			ID:                fmt.Sprintf("demo-cus-%d", i+1),
			OwnerID:           ownerID,
			Name:              c.name,
			Email:             c.email,
			ServiceBooked:     &service,
			TotalSpent:        decimal.NewFromInt(c.spent),
			TotalAppointments: c.visits,
			Status:            domain.CustomerStatusActive,
			JoinDate:          firstOfMonth.AddDate(0, -6, i*3),
		})

		snapshot.Appointments = append(snapshot.Appointments, &domain.Appointment{
			ID:            fmt.Sprintf("demo-apt-%d", i+1),
			OwnerID:       ownerID,
			CustomerName:  c.name,
			CustomerEmail: &email,
			ServiceName:   c.service,
			Date:          today,
			Time:          c.time,
			Duration:      60,
			Status:        c.status,
		})
	}

	// histórico mensal distribuído entre os serviços pelo mix de receita
	saleID := 0
	for i, revenue := range demoMonthlyRevenue {
		saleDate := firstOfMonth.AddDate(0, i-len(demoMonthlyRevenue), 14)
		for _, svc := range demoServices {
			saleID++
			snapshot.Sales = append(snapshot.Sales, &domain.Sale{
				ID:            fmt.Sprintf("demo-sale-%d", saleID),
				OwnerID:       ownerID,
				CustomerName:  demoCustomers[saleID%len(demoCustomers)].name,
				ServiceName:   svc.name,
				Amount:        decimal.NewFromInt(revenue * svc.share / 100),
				SaleDate:      saleDate,
				PaymentStatus: domain.PaymentStatusPaid,
			})
		}
	}

	recent := []struct {
		customer string
		service  string
		amount   int64
		daysAgo  int
		status   domain.PaymentStatus
	}{
		{"Sarah Johnson", "Hair Styling", 85, 0, domain.PaymentStatusPaid},
		{"Mike Chen", "Massage", 120, 0, domain.PaymentStatusPaid},
		{"Emily Davis", "Manicure", 45, 1, domain.PaymentStatusPending},
		{"David Wilson", "Consultation", 0, 1, domain.PaymentStatusCompleted},
		{"Lisa Brown", "Facial", 75, 2, domain.PaymentStatusPaid},
	}

	for _, r := range recent {
		saleID++
		snapshot.Sales = append(snapshot.Sales, &domain.Sale{
			ID:            fmt.Sprintf("demo-sale-%d", saleID),
			OwnerID:       ownerID,
			CustomerName:  r.customer,
			ServiceName:   r.service,
			Amount:        decimal.NewFromInt(r.amount),
			SaleDate:      today.AddDate(0, 0, -r.daysAgo),
			PaymentStatus: r.status,
		})
	}

	return snapshot, nil
}
