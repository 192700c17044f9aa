package insighting

import (
	"github.com/shopspring/decimal"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// RevenueByService agrupa o livro de vendas pelo nome exato do serviço, na ordem da primeira ocorrência
func RevenueByService(sales []*domain.Sale) []domain.ServiceRevenue {
	groups := make([]domain.ServiceRevenue, 0)
	indexByName := make(map[string]int)
	total := decimal.Zero

	for _, sale := range sales {
		if sale == nil {
			continue
		}

		idx, ok := indexByName[sale.ServiceName]
		if !ok {
			idx = len(groups)
			indexByName[sale.ServiceName] = idx
			groups = append(groups, domain.ServiceRevenue{
				ServiceName: sale.ServiceName,
				Revenue:     decimal.Zero,
			})
		}

		amount := saleAmount(sale)
		groups[idx].Revenue = groups[idx].Revenue.Add(amount)
		groups[idx].Count++
		total = total.Add(amount)
	}

	if total.IsZero() {
		return groups
	}

	for i := range groups {
		groups[i].SharePercent = groups[i].Revenue.Div(total).Mul(hundred).InexactFloat64()
	}

	return groups
}

// topService retorna o grupo de maior receita; empates ficam com a primeira ocorrência
func topService(groups []domain.ServiceRevenue) (domain.ServiceRevenue, bool) {
	if len(groups) == 0 {
		return domain.ServiceRevenue{}, false
	}

	top := groups[0]
	for _, group := range groups[1:] {
		if group.Revenue.GreaterThan(top.Revenue) {
			top = group
		}
	}

	return top, true
}
