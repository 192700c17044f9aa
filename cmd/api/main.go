package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/business-dashboard-api/infrastructure/cache"
	"github.com/vfg2006/business-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/business-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/business-dashboard-api/internal/api"
	"github.com/vfg2006/business-dashboard-api/internal/api/handler"
	"github.com/vfg2006/business-dashboard-api/internal/config"
	"github.com/vfg2006/business-dashboard-api/internal/scheduler"
	"github.com/vfg2006/business-dashboard-api/internal/usecases/answering"
	"github.com/vfg2006/business-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/business-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/business-dashboard-api/internal/usecases/managing"
	"github.com/vfg2006/business-dashboard-api/pkg/log"

	_ "time/tzdata"
)

func main() {
	chdirToSource()

	// valores monetários saem como número no JSON
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	ownerRepo := repository.NewOwnerRepository(pgConn)
	customerRepo := repository.NewCustomerRepository(pgConn)
	serviceRepo := repository.NewServiceRepository(pgConn)
	appointmentRepo := repository.NewAppointmentRepository(pgConn)
	saleRepo := repository.NewSaleRepository(pgConn)
	snapshotRepo := repository.NewDashboardSnapshotRepository(pgConn)

	var dashboardCache insighting.DashboardCache
	if redisClient := redisCache(ctx, cfg.Redis); redisClient != nil {
		defer redisClient.Close()
		dashboardCache = redisClient
	}

	var source insighting.SnapshotSource = insighting.NewRepositorySource(customerRepo, serviceRepo, appointmentRepo, saleRepo)
	if cfg.App.DemoMode {
		logrus.Warn("APP_DEMO_MODE ativo: o painel usa dados de demonstração")
		source = insighting.NewDemoSource(time.Now)
	}

	engine := insighting.NewEngine(insighting.EngineConfigFrom(cfg.Insights))
	insightService := insighting.NewService(engine, source, dashboardCache, snapshotRepo)

	authenticator := authenticating.NewService(ownerRepo, cfg)
	manager := managing.NewService(customerRepo, serviceRepo, appointmentRepo, saleRepo, insightService)
	answerer := answering.NewService(cfg.Answering.ResponseDelay)

	snapshotSyncService := scheduler.NewDashboardSnapshotSyncService(ownerRepo, snapshotRepo, insightService, cfg)
	if err := snapshotSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de snapshots do painel")
	} else {
		logrus.Info("Agendador de snapshots do painel iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Services{
		Authenticator:  authenticator,
		Manager:        manager,
		InsightService: insightService,
		Answerer:       answerer,
		CronJobs: handler.CronJobServices{
			DashboardSnapshotSync: snapshotSyncService,
		},
	}, cancel)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// chdirToSource permite que o .env ao lado do código seja encontrado
func chdirToSource() {
	_, file, _, _ := runtime.Caller(0)
	os.Chdir(path.Dir(file))
}

func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

// redisCache devolve nil quando REDIS_ADDR não está definido ou o Redis não responde
func redisCache(ctx context.Context, redisConfig config.Redis) *cache.Cache {
	c, err := cache.New(ctx, redisConfig)
	if err != nil {
		logrus.WithError(err).Warn("Redis indisponível, painel sem cache")
		return nil
	}

	if c == nil {
		logrus.Info("REDIS_ADDR não definido, painel sem cache")
		return nil
	}

	logrus.WithField("addr", redisConfig.Addr).Info("Cache do painel conectado ao Redis")
	return c
}
