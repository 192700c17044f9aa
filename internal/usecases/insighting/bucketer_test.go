package insighting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
)

func TestEngine_BucketSales_TamanhoDaJanela(t *testing.T) {
	engine := NewEngine(DefaultEngineConfig())
	now := time.Date(2024, 3, 13, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		granularity domain.Granularity
		sales       []*domain.Sale
		expected    int
	}{
		{name: "Diário sem vendas", granularity: domain.GranularityDaily, sales: nil, expected: 30},
		{name: "Semanal sem vendas", granularity: domain.GranularityWeekly, sales: nil, expected: 12},
		{name: "Mensal sem vendas", granularity: domain.GranularityMonthly, sales: nil, expected: 12},
		{
			name:        "Diário com vendas esparsas",
			granularity: domain.GranularityDaily,
			sales:       []*domain.Sale{sale("Hair", "10", "2024-03-13"), sale("Hair", "10", "2023-01-01")},
			expected:    30,
		},
		{
			name:        "Mensal com vendas fora da janela",
			granularity: domain.GranularityMonthly,
			sales:       []*domain.Sale{sale("Hair", "10", "2021-03-13")},
			expected:    12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buckets := engine.BucketSales(tt.sales, tt.granularity, now)
			assert.Len(t, buckets, tt.expected)

			for i := 1; i < len(buckets); i++ {
				assert.True(t, buckets[i-1].Start.Before(buckets[i].Start), "buckets devem estar em ordem cronológica")
				assert.True(t, buckets[i-1].End.Equal(buckets[i].Start), "buckets devem ser contíguos")
			}
		})
	}
}

func TestEngine_BucketSales_SemVendasTudoZerado(t *testing.T) {
	engine := NewEngine(DefaultEngineConfig())
	buckets := engine.BucketSales(nil, domain.GranularityDaily, time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC))

	require.Len(t, buckets, DailyWindow)
	for _, bucket := range buckets {
		assert.True(t, bucket.Revenue.IsZero())
		assert.True(t, bucket.Projected.IsZero())
		assert.Zero(t, bucket.Transactions)
	}
}

func TestEngine_BucketSales_Particao(t *testing.T) {
	engine := NewEngine(DefaultEngineConfig())
	now := time.Date(2024, 3, 13, 9, 0, 0, 0, time.UTC)

	// uma venda por dia ao longo de dois anos, valores variados
	sales := make([]*domain.Sale, 0)
	day := date("2022-03-01")
	for i := 0; !day.After(date("2024-04-30")); i++ {
		sales = append(sales, &domain.Sale{
			ServiceName: "Hair",
			Amount:      decimal.NewFromInt(int64(i%97 + 1)).Div(decimal.NewFromInt(4)),
			SaleDate:    day,
		})
		day = day.AddDate(0, 0, 1)
	}

	for _, granularity := range []domain.Granularity{domain.GranularityDaily, domain.GranularityWeekly, domain.GranularityMonthly} {
		t.Run(string(granularity), func(t *testing.T) {
			start, end := Window(granularity, now)

			expected := decimal.Zero
			expectedCount := 0
			for _, s := range sales {
				if !s.SaleDate.Before(start) && s.SaleDate.Before(end) {
					expected = expected.Add(s.Amount)
					expectedCount++
				}
			}

			total := decimal.Zero
			count := 0
			for _, bucket := range engine.BucketSales(sales, granularity, now) {
				total = total.Add(bucket.Revenue)
				count += bucket.Transactions
			}

			assert.True(t, expected.Equal(total), "esperado %s, obtido %s", expected, total)
			assert.Equal(t, expectedCount, count)
		})
	}
}

func TestEngine_BucketSales_SemanaSemiaberta(t *testing.T) {
	engine := NewEngine(DefaultEngineConfig())
	// quarta-feira; a semana corrente começa na segunda 2024-03-11
	now := time.Date(2024, 3, 13, 12, 0, 0, 0, time.UTC)

	sales := []*domain.Sale{
		sale("Hair", "10", "2024-03-10"), // domingo, semana anterior
		sale("Hair", "20", "2024-03-11"), // segunda, semana corrente
		sale("Hair", "40", "2024-03-17"), // domingo, último dia da semana corrente
		sale("Hair", "80", "2024-03-18"), // fora da janela
	}

	buckets := engine.BucketSales(sales, domain.GranularityWeekly, now)
	require.Len(t, buckets, WeeklyWindow)

	last := buckets[len(buckets)-1]
	previous := buckets[len(buckets)-2]

	assert.Equal(t, "2024-03-11", last.Label)
	assert.Equal(t, date("2024-03-18"), last.End)
	assert.True(t, decimal.NewFromInt(60).Equal(last.Revenue))
	assert.Equal(t, 2, last.Transactions)

	assert.Equal(t, "2024-03-04", previous.Label)
	assert.True(t, decimal.NewFromInt(10).Equal(previous.Revenue))
	assert.Equal(t, 1, previous.Transactions)
}

func TestEngine_BucketSales_Projecao(t *testing.T) {
	engine := NewEngine(EngineConfig{
		GrowthRate:            decimal.RequireFromString("0.1"),
		HighValueThreshold:    decimal.NewFromInt(1000),
		CancellationThreshold: 0.15,
	})

	buckets := engine.BucketSales(
		[]*domain.Sale{sale("Hair", "100", "2024-03-01"), sale("Hair", "33.33", "2024-03-02")},
		domain.GranularityMonthly,
		time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
	)

	march := buckets[len(buckets)-1]
	assert.Equal(t, "2024-03", march.Label)
	assert.Equal(t, "146.66", march.Projected.StringFixed(2))
}

func TestEngine_BucketSales_VendaInvalidaValeZero(t *testing.T) {
	engine := NewEngine(DefaultEngineConfig())

	malformed := sale("Hair", "999", "2024-03-05")
	malformed.Malformed = true

	buckets := engine.BucketSales(
		[]*domain.Sale{malformed, sale("Hair", "-5", "2024-03-05"), sale("Hair", "12", "2024-03-05")},
		domain.GranularityMonthly,
		time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
	)

	march := buckets[len(buckets)-1]
	assert.True(t, decimal.NewFromInt(12).Equal(march.Revenue))
	assert.Equal(t, 3, march.Transactions)
}

func TestWindow(t *testing.T) {
	now := time.Date(2024, 3, 13, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		name          string
		granularity   domain.Granularity
		expectedStart time.Time
		expectedEnd   time.Time
	}{
		{name: "Diário", granularity: domain.GranularityDaily, expectedStart: date("2024-02-13"), expectedEnd: date("2024-03-14")},
		{name: "Semanal", granularity: domain.GranularityWeekly, expectedStart: date("2023-12-25"), expectedEnd: date("2024-03-18")},
		{name: "Mensal", granularity: domain.GranularityMonthly, expectedStart: date("2023-04-01"), expectedEnd: date("2024-04-01")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := Window(tt.granularity, now)
			assert.Equal(t, tt.expectedStart, start)
			assert.Equal(t, tt.expectedEnd, end)
		})
	}
}
