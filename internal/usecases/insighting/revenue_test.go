package insighting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
)

func TestRevenueByService(t *testing.T) {
	tests := []struct {
		name     string
		sales    []*domain.Sale
		validate func(t *testing.T, groups []domain.ServiceRevenue)
	}{
		{
			name:  "Lista vazia",
			sales: nil,
			validate: func(t *testing.T, groups []domain.ServiceRevenue) {
				assert.NotNil(t, groups)
				assert.Empty(t, groups)
			},
		},
		{
			name: "Participações somam 100",
			sales: []*domain.Sale{
				sale("Hair", "10", "2024-03-01"),
				sale("Nails", "10", "2024-03-01"),
				sale("Facial", "10", "2024-03-01"),
			},
			validate: func(t *testing.T, groups []domain.ServiceRevenue) {
				total := 0.0
				for _, g := range groups {
					total += g.SharePercent
				}
				assert.InDelta(t, 100.0, total, 0.1)
			},
		},
		{
			name: "Receita total zero deixa todas as participações em zero",
			sales: []*domain.Sale{
				sale("Consultation", "0", "2024-03-01"),
				sale("Hair", "0", "2024-03-02"),
			},
			validate: func(t *testing.T, groups []domain.ServiceRevenue) {
				require.Len(t, groups, 2)
				for _, g := range groups {
					assert.Zero(t, g.SharePercent)
				}
				assert.Equal(t, 1, groups[0].Count)
			},
		},
		{
			name: "Ordem da primeira ocorrência",
			sales: []*domain.Sale{
				sale("Nails", "5", "2024-03-01"),
				sale("Hair", "50", "2024-03-02"),
				sale("Nails", "5", "2024-03-03"),
			},
			validate: func(t *testing.T, groups []domain.ServiceRevenue) {
				require.Len(t, groups, 2)
				assert.Equal(t, "Nails", groups[0].ServiceName)
				assert.Equal(t, "Hair", groups[1].ServiceName)
				assert.Equal(t, 2, groups[0].Count)
				assert.Equal(t, "10", groups[0].Revenue.String())
			},
		},
		{
			name: "Nome do serviço diferencia maiúsculas",
			sales: []*domain.Sale{
				sale("hair", "5", "2024-03-01"),
				sale("Hair", "5", "2024-03-01"),
			},
			validate: func(t *testing.T, groups []domain.ServiceRevenue) {
				assert.Len(t, groups, 2)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, RevenueByService(tt.sales))
		})
	}
}

func TestRevenueByService_Estavel(t *testing.T) {
	sales := []*domain.Sale{
		sale("Hair", "100", "2024-03-01"),
		sale("Massage", "120", "2024-03-02"),
		sale("Hair", "85", "2024-03-03"),
		sale("Facial", "75", "2024-03-04"),
	}

	assert.Equal(t, RevenueByService(sales), RevenueByService(sales))
}

func TestTopService_EmpateFicaComPrimeiro(t *testing.T) {
	groups := RevenueByService([]*domain.Sale{
		sale("Nails", "50", "2024-03-01"),
		sale("Hair", "50", "2024-03-02"),
	})

	top, ok := topService(groups)
	require.True(t, ok)
	assert.Equal(t, "Nails", top.ServiceName)

	_, ok = topService(nil)
	assert.False(t, ok)
}
