package insighting

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/business-dashboard-api/internal/config"
)

const (
	DailyWindow   = 30
	WeeklyWindow  = 12
	MonthlyWindow = 12
)

// EngineConfig reúne os parâmetros fixos do motor de insights
type EngineConfig struct {
	GrowthRate            decimal.Decimal
	HighValueThreshold    decimal.Decimal
	CancellationThreshold float64
}

func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		GrowthRate:            decimal.NewFromFloat(0.1),
		HighValueThreshold:    decimal.NewFromInt(1000),
		CancellationThreshold: 0.15,
	}
}

// EngineConfigFrom converte a seção Insights da configuração da aplicação. Textos vazios
// mantêm o padrão e valores ilegíveis são ignorados com aviso. CancellationThreshold é
// usado como veio, zero inclusive.
func EngineConfigFrom(cfg config.Insights) EngineConfig {
	engineConfig := DefaultEngineConfig()

	if rate, ok := parseDecimalSetting("INSIGHTS_GROWTH_RATE", cfg.GrowthRate); ok {
		engineConfig.GrowthRate = rate
	}

	if threshold, ok := parseDecimalSetting("INSIGHTS_HIGH_VALUE_THRESHOLD", cfg.HighValueThreshold); ok {
		engineConfig.HighValueThreshold = threshold
	}

	engineConfig.CancellationThreshold = cfg.CancellationThreshold

	return engineConfig
}

func parseDecimalSetting(name, raw string) (decimal.Decimal, bool) {
	if raw == "" {
		return decimal.Zero, false
	}

	value, err := decimal.NewFromString(raw)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"setting": name,
			"value":   raw,
		}).Warn("Valor de configuração inválido, usando o padrão")
		return decimal.Zero, false
	}

	return value, true
}
