package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App                   App                   `mapstructure:",squash"`
	Server                Server                `mapstructure:",squash"`
	Database              Database              `mapstructure:",squash"`
	Redis                 Redis                 `mapstructure:",squash"`
	Auth                  Auth                  `mapstructure:",squash"`
	Insights              Insights              `mapstructure:",squash"`
	Answering             Answering             `mapstructure:",squash"`
	DashboardSnapshotSync DashboardSnapshotSync `mapstructure:",squash"`
	SecretKey             string                `mapstructure:"secret_key"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	LoginRateLimit int      `mapstructure:"login_rate_limit"`
	FAQRateLimit   int      `mapstructure:"faq_rate_limit"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Redis struct {
	Addr     string        `mapstructure:"redis_addr"`
	Password string        `mapstructure:"redis_password"`
	DB       int           `mapstructure:"redis_db"`
	CacheTTL time.Duration `mapstructure:"redis_cache_ttl"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Timezone string `mapstructure:"app_timezone"`
	DemoMode bool   `mapstructure:"app_demo_mode"`
}

type Auth struct {
	TokenTTL time.Duration `mapstructure:"auth_token_ttl"`
}

// Insights guarda os parâmetros do motor; valores monetários como texto para não perder precisão
type Insights struct {
	GrowthRate            string  `mapstructure:"insights_growth_rate"`
	HighValueThreshold    string  `mapstructure:"insights_high_value_threshold"`
	CancellationThreshold float64 `mapstructure:"insights_cancellation_threshold"`
}

type Answering struct {
	ResponseDelay time.Duration `mapstructure:"faq_response_delay"`
}

type DashboardSnapshotSync struct {
	CronSchedule      string `mapstructure:"dashboard_snapshot_sync_cron"`
	MaxConcurrentJobs int    `mapstructure:"dashboard_snapshot_sync_max_concurrent_jobs"`
	RetentionDays     int    `mapstructure:"dashboard_snapshot_sync_retention_days"`
	Enabled           bool   `mapstructure:"dashboard_snapshot_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	viper.SetDefault("LOGIN_RATE_LIMIT", 10) // requisições por minuto por IP
	viper.SetDefault("FAQ_RATE_LIMIT", 30)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/business?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("REDIS_ADDR", "") // vazio desabilita o cache
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_CACHE_TTL", "5m")

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("AUTH_TOKEN_TTL", "24h")

	viper.SetDefault("APP_TIMEZONE", "UTC")
	viper.SetDefault("APP_DEMO_MODE", false)

	viper.SetDefault("INSIGHTS_GROWTH_RATE", "0.1")
	viper.SetDefault("INSIGHTS_HIGH_VALUE_THRESHOLD", "1000")
	viper.SetDefault("INSIGHTS_CANCELLATION_THRESHOLD", 0.15)

	viper.SetDefault("FAQ_RESPONSE_DELAY", "0s")

	viper.SetDefault("DASHBOARD_SNAPSHOT_SYNC_CRON", "0 2 * * *")        // Todos os dias às 2h da manhã
	viper.SetDefault("DASHBOARD_SNAPSHOT_SYNC_MAX_CONCURRENT_JOBS", 3)   // 3 donos processados em paralelo
	viper.SetDefault("DASHBOARD_SNAPSHOT_SYNC_RETENTION_DAYS", 365)      // 1 ano de histórico
	viper.SetDefault("DASHBOARD_SNAPSHOT_SYNC_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Validate verifica os valores que não têm como ser corrigidos em tempo de execução
func (c *Config) Validate() error {
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("APP_TIMEZONE inválido %q: %w", c.App.Timezone, err)
	}

	if _, err := decimal.NewFromString(c.Insights.GrowthRate); err != nil {
		return fmt.Errorf("INSIGHTS_GROWTH_RATE inválido %q: %w", c.Insights.GrowthRate, err)
	}

	if threshold, err := decimal.NewFromString(c.Insights.HighValueThreshold); err != nil {
		return fmt.Errorf("INSIGHTS_HIGH_VALUE_THRESHOLD inválido %q: %w", c.Insights.HighValueThreshold, err)
	} else if threshold.IsNegative() {
		return fmt.Errorf("INSIGHTS_HIGH_VALUE_THRESHOLD não pode ser negativo, recebido %s", c.Insights.HighValueThreshold)
	}

	if c.Insights.CancellationThreshold < 0 || c.Insights.CancellationThreshold > 1 {
		return fmt.Errorf("INSIGHTS_CANCELLATION_THRESHOLD deve estar entre 0 e 1, recebido %v", c.Insights.CancellationThreshold)
	}

	if c.DashboardSnapshotSync.Enabled && c.DashboardSnapshotSync.MaxConcurrentJobs <= 0 {
		return fmt.Errorf("DASHBOARD_SNAPSHOT_SYNC_MAX_CONCURRENT_JOBS deve ser maior que zero")
	}

	return nil
}

// Location retorna o fuso padrão da aplicação
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
