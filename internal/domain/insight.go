package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
)

func (g Granularity) IsValid() bool {
	return g == GranularityDaily || g == GranularityWeekly || g == GranularityMonthly
}

type InsightType string

const (
	InsightTypeTrend          InsightType = "trend"
	InsightTypeRecommendation InsightType = "recommendation"
	InsightTypePrediction     InsightType = "prediction"
)

type Impact string

const (
	ImpactHigh   Impact = "High"
	ImpactMedium Impact = "Medium"
)

// Snapshot é o conjunto completo das quatro coleções de um dono no momento da busca
type Snapshot struct {
	Customers    []*Customer
	Services     []*Service
	Appointments []*Appointment
	Sales        []*Sale
}

// RevenueBucket cobre o intervalo semiaberto [Start, End)
type RevenueBucket struct {
	Label        string          `json:"label"`
	Start        time.Time       `json:"start"`
	End          time.Time       `json:"end"`
	Revenue      decimal.Decimal `json:"revenue"`
	Transactions int             `json:"transactions"`
	Projected    decimal.Decimal `json:"projected"`
}

type ServiceRevenue struct {
	ServiceName  string          `json:"service_name"`
	Revenue      decimal.Decimal `json:"revenue"`
	Count        int             `json:"count"`
	SharePercent float64         `json:"share_percent"`
}

type Insight struct {
	Type        InsightType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Confidence  int         `json:"confidence"`
	Impact      Impact      `json:"impact"`
	Related     []string    `json:"related,omitempty"`
}

type Summary struct {
	TotalCustomers       int             `json:"total_customers"`
	TotalAppointments    int             `json:"total_appointments"`
	TotalRevenue         decimal.Decimal `json:"total_revenue"`
	TotalTransactions    int             `json:"total_transactions"`
	AverageTransaction   decimal.Decimal `json:"average_transaction"`
	AppointmentsToday    int             `json:"appointments_today"`
	UpcomingAppointments int             `json:"upcoming_appointments"`
	CompletionRate       float64         `json:"completion_rate"`
	CancellationRate     float64         `json:"cancellation_rate"`
	ThisMonthRevenue     decimal.Decimal `json:"this_month_revenue"`
	MalformedRecords     int             `json:"malformed_records"`
}

type Dashboard struct {
	BusinessName string           `json:"business_name"`
	GeneratedAt  time.Time        `json:"generated_at"`
	Summary      Summary          `json:"summary"`
	Daily        []RevenueBucket  `json:"daily"`
	Weekly       []RevenueBucket  `json:"weekly"`
	Monthly      []RevenueBucket  `json:"monthly"`
	Services     []ServiceRevenue `json:"services"`
	Insights     []Insight        `json:"insights"`
	Stale        bool             `json:"stale"`
}

// RevenueSeries devolve a série da granularidade pedida
func (d *Dashboard) RevenueSeries(g Granularity) []RevenueBucket {
	switch g {
	case GranularityDaily:
		return d.Daily
	case GranularityWeekly:
		return d.Weekly
	default:
		return d.Monthly
	}
}
