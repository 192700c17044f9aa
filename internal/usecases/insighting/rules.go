package insighting

import (
	"strings"

	"github.com/vfg2006/business-dashboard-api/internal/domain"
	"golang.org/x/text/message"
)

// RuleInput é tudo que uma regra pode consultar
type RuleInput struct {
	Snapshot *domain.Snapshot
	Config   EngineConfig
	Printer  *message.Printer
}

// Rule é um par predicado + formatador. Evaluate devolve false quando a regra não dispara.
type Rule struct {
	Name     string
	Evaluate func(in RuleInput) (domain.Insight, bool)
}

// DefaultRules retorna as regras na ordem em que os cards são exibidos
func DefaultRules() []Rule {
	return []Rule{
		{Name: "top_service", Evaluate: topServiceRule},
		{Name: "cancellation_rate", Evaluate: cancellationRateRule},
		{Name: "high_value_customers", Evaluate: highValueCustomersRule},
		{Name: "unused_services", Evaluate: unusedServicesRule},
	}
}

// GenerateInsights avalia todas as regras registradas; nenhuma regra lê a saída de outra
func (e *Engine) GenerateInsights(snapshot *domain.Snapshot) []domain.Insight {
	insights := make([]domain.Insight, 0, len(e.rules))
	if snapshot == nil {
		return insights
	}

	in := RuleInput{
		Snapshot: snapshot,
		Config:   e.cfg,
		Printer:  e.printer,
	}

	for _, rule := range e.rules {
		if insight, ok := rule.Evaluate(in); ok {
			insights = append(insights, insight)
		}
	}

	return insights
}

func topServiceRule(in RuleInput) (domain.Insight, bool) {
	top, ok := topService(RevenueByService(in.Snapshot.Sales))
	if !ok {
		return domain.Insight{}, false
	}

	return domain.Insight{
		Type:  domain.InsightTypeTrend,
		Title: "Top Performing Service",
		Description: in.Printer.Sprintf(
			"%s is your top performing service, generating $%s from %d sales.",
			top.ServiceName, top.Revenue.StringFixed(2), top.Count,
		),
		Confidence: 90,
		Impact:     domain.ImpactHigh,
		Related:    []string{top.ServiceName},
	}, true
}

func cancellationRateRule(in RuleInput) (domain.Insight, bool) {
	appointments := in.Snapshot.Appointments
	total := countPresent(appointments)
	if total == 0 {
		return domain.Insight{}, false
	}

	cancelled := countByStatus(appointments, domain.AppointmentStatusCancelled)
	rate := float64(cancelled) / float64(total)

	if rate > in.Config.CancellationThreshold {
		return domain.Insight{
			Type:  domain.InsightTypePrediction,
			Title: "High Cancellation Rate",
			Description: in.Printer.Sprintf(
				"%.1f%% of your appointments were cancelled (%d of %d). Sending reminders the day before can reduce cancellations.",
				rate*100, cancelled, total,
			),
			Confidence: 85,
			Impact:     domain.ImpactMedium,
		}, true
	}

	completed := countByStatus(appointments, domain.AppointmentStatusCompleted)
	completedRate := float64(completed) / float64(total)

	return domain.Insight{
		Type:  domain.InsightTypeRecommendation,
		Title: "Strong Completion Rate",
		Description: in.Printer.Sprintf(
			"%.1f%% of your appointments were completed (%d of %d). Keep following up with customers to maintain it.",
			completedRate*100, completed, total,
		),
		Confidence: 92,
		Impact:     domain.ImpactHigh,
	}, true
}

func highValueCustomersRule(in RuleInput) (domain.Insight, bool) {
	customers := in.Snapshot.Customers
	if len(customers) == 0 {
		return domain.Insight{}, false
	}

	count := 0
	for _, customer := range customers {
		if customer == nil || customer.Malformed {
			continue
		}
		if customer.TotalSpent.GreaterThan(in.Config.HighValueThreshold) {
			count++
		}
	}

	return domain.Insight{
		Type:  domain.InsightTypePrediction,
		Title: "High-Value Customers",
		Description: in.Printer.Sprintf(
			"You have %d customers who spent more than $%s. A loyalty offer can help keep them coming back.",
			count, in.Config.HighValueThreshold.StringFixed(2),
		),
		Confidence: 88,
		Impact:     domain.ImpactHigh,
	}, true
}

func unusedServicesRule(in RuleInput) (domain.Insight, bool) {
	services := in.Snapshot.Services
	appointments := in.Snapshot.Appointments
	if len(services) == 0 || len(appointments) == 0 {
		return domain.Insight{}, false
	}

	booked := make(map[string]struct{}, len(appointments))
	for _, appointment := range appointments {
		if appointment == nil {
			continue
		}
		booked[appointment.ServiceName] = struct{}{}
	}

	unused := make([]string, 0)
	for _, service := range services {
		if service == nil {
			continue
		}
		if _, ok := booked[service.Name]; !ok {
			unused = append(unused, service.Name)
		}
	}

	if len(unused) == 0 {
		return domain.Insight{}, false
	}

	return domain.Insight{
		Type:  domain.InsightTypeRecommendation,
		Title: "Unused Services",
		Description: in.Printer.Sprintf(
			"%d services have no appointments: %s. Consider promoting them or reviewing the catalog.",
			len(unused), strings.Join(unused, ", "),
		),
		Confidence: 80,
		Impact:     domain.ImpactMedium,
		Related:    unused,
	}, true
}

func countPresent(appointments []*domain.Appointment) int {
	count := 0
	for _, appointment := range appointments {
		if appointment != nil {
			count++
		}
	}
	return count
}

func countByStatus(appointments []*domain.Appointment, status domain.AppointmentStatus) int {
	count := 0
	for _, appointment := range appointments {
		if appointment != nil && appointment.Status == status {
			count++
		}
	}
	return count
}
