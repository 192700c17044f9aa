package insighting

import (
	"time"

	"github.com/vfg2006/business-dashboard-api/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Engine transforma um snapshot completo nos dados do painel. Não guarda estado entre chamadas.
type Engine struct {
	cfg     EngineConfig
	rules   []Rule
	printer *message.Printer
}

// NewEngine cria o motor; sem regras explícitas usa DefaultRules
func NewEngine(cfg EngineConfig, rules ...Rule) *Engine {
	if len(rules) == 0 {
		rules = DefaultRules()
	}

	return &Engine{
		cfg:     cfg,
		rules:   rules,
		printer: message.NewPrinter(language.English),
	}
}

func (e *Engine) Config() EngineConfig {
	return e.cfg
}

// Compute monta o painel completo de um snapshot
func (e *Engine) Compute(snapshot *domain.Snapshot, now time.Time) *domain.Dashboard {
	if snapshot == nil {
		snapshot = &domain.Snapshot{}
	}

	return &domain.Dashboard{
		GeneratedAt: now,
		Summary:     Summarize(snapshot, now),
		Daily:       e.BucketSales(snapshot.Sales, domain.GranularityDaily, now),
		Weekly:      e.BucketSales(snapshot.Sales, domain.GranularityWeekly, now),
		Monthly:     e.BucketSales(snapshot.Sales, domain.GranularityMonthly, now),
		Services:    RevenueByService(snapshot.Sales),
		Insights:    e.GenerateInsights(snapshot),
	}
}
