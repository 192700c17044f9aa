package insighting

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
)

const monthLabelLayout = "2006-01"

// dateOnly descarta o horário mantendo a data civil do instante no seu próprio fuso
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// weekStart retorna a segunda-feira da semana de day
func weekStart(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func windowLength(granularity domain.Granularity) int {
	switch granularity {
	case domain.GranularityDaily:
		return DailyWindow
	case domain.GranularityWeekly:
		return WeeklyWindow
	default:
		return MonthlyWindow
	}
}

// Window retorna o intervalo semiaberto [start, end) coberto pela série da granularidade
func Window(granularity domain.Granularity, now time.Time) (time.Time, time.Time) {
	today := dateOnly(now)

	switch granularity {
	case domain.GranularityDaily:
		return today.AddDate(0, 0, -(DailyWindow - 1)), today.AddDate(0, 0, 1)
	case domain.GranularityWeekly:
		monday := weekStart(today)
		return monday.AddDate(0, 0, -7*(WeeklyWindow-1)), monday.AddDate(0, 0, 7)
	default:
		firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		return firstOfMonth.AddDate(0, -(MonthlyWindow - 1), 0), firstOfMonth.AddDate(0, 1, 0)
	}
}

func bucketBounds(granularity domain.Granularity, first time.Time, i int) (time.Time, time.Time, string) {
	switch granularity {
	case domain.GranularityDaily:
		start := first.AddDate(0, 0, i)
		return start, start.AddDate(0, 0, 1), start.Format(time.DateOnly)
	case domain.GranularityWeekly:
		start := first.AddDate(0, 0, 7*i)
		return start, start.AddDate(0, 0, 7), start.Format(time.DateOnly)
	default:
		start := first.AddDate(0, i, 0)
		return start, start.AddDate(0, 1, 0), start.Format(monthLabelLayout)
	}
}

// bucketIndex localiza o bucket de day; day precisa estar dentro da janela
func bucketIndex(granularity domain.Granularity, first, day time.Time) int {
	switch granularity {
	case domain.GranularityDaily:
		return int(day.Sub(first).Hours() / 24)
	case domain.GranularityWeekly:
		return int(day.Sub(first).Hours()/24) / 7
	default:
		return (day.Year()-first.Year())*12 + int(day.Month()) - int(first.Month())
	}
}

// BucketSales particiona as vendas da janela em buckets cronológicos.
// Todos os buckets da janela estão presentes, inclusive os vazios.
func (e *Engine) BucketSales(sales []*domain.Sale, granularity domain.Granularity, now time.Time) []domain.RevenueBucket {
	length := windowLength(granularity)
	first, last := Window(granularity, now)
	multiplier := decimal.NewFromInt(1).Add(e.cfg.GrowthRate)

	buckets := make([]domain.RevenueBucket, length)
	for i := range buckets {
		start, end, label := bucketBounds(granularity, first, i)
		buckets[i] = domain.RevenueBucket{
			Label:     label,
			Start:     start,
			End:       end,
			Revenue:   decimal.Zero,
			Projected: decimal.Zero,
		}
	}

	for _, sale := range sales {
		if sale == nil {
			continue
		}

		day := dateOnly(sale.SaleDate)
		if day.Before(first) || !day.Before(last) {
			continue
		}

		idx := bucketIndex(granularity, first, day)
		buckets[idx].Revenue = buckets[idx].Revenue.Add(saleAmount(sale))
		buckets[idx].Transactions++
	}

	for i := range buckets {
		buckets[i].Projected = buckets[i].Revenue.Mul(multiplier).Round(2)
	}

	return buckets
}

// saleAmount é o valor que a venda contribui para as somas; registros inválidos valem zero
func saleAmount(sale *domain.Sale) decimal.Decimal {
	if sale.Malformed || sale.Amount.IsNegative() {
		return decimal.Zero
	}
	return sale.Amount
}
