package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/business-dashboard-api/internal/api/handler"
	"github.com/vfg2006/business-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/business-dashboard-api/internal/config"
	"github.com/vfg2006/business-dashboard-api/internal/usecases/answering"
	"github.com/vfg2006/business-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/business-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/business-dashboard-api/internal/usecases/managing"
	"github.com/vfg2006/business-dashboard-api/pkg/log"
	"github.com/vfg2006/business-dashboard-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
	onShutdown []func()
}

// Services agrupa as dependências expostas pela API
type Services struct {
	Authenticator  authenticating.Authenticator
	Manager        managing.Manager
	InsightService insighting.Insighter
	Answerer       answering.Answerer
	CronJobs       handler.CronJobServices
}

// NewHandler monta o router e a cadeia de middlewares globais
func NewHandler(cfg *config.Config, services Services) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Authentication(services.Authenticator, cfg.Server.LoginRateLimit)...),
		router.WithRoutes(handler.Customers(services.Manager, services.Authenticator)...),
		router.WithRoutes(handler.Services(services.Manager, services.Authenticator)...),
		router.WithRoutes(handler.Appointments(services.Manager, services.Authenticator)...),
		router.WithRoutes(handler.Sales(services.Manager, services.Authenticator)...),
		router.WithRoutes(handler.Dashboard(services.InsightService, services.Authenticator)...),
		router.WithRoutes(handler.FAQ(services.Answerer, cfg.Server.FAQRateLimit)...),
		router.WithRoutes(handler.CronJobs(services.CronJobs)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.SecureHeaders(log.IsDevelopment()),
		middleware.Cors(cfg.Server.AllowedOrigins),
		middleware.AuthMiddleware(services.Authenticator),
	}

	return alice.New(middlewares...).Then(rt)
}

func New(cfg *config.Config, services Services, onShutdown ...func()) (*Server, error) {
	if services.Authenticator == nil || services.Manager == nil || services.InsightService == nil || services.Answerer == nil {
		return nil, fmt.Errorf("serviços obrigatórios da API não informados")
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           NewHandler(cfg, services),
			ReadHeaderTimeout: 2 * time.Second,
		},
		onShutdown: onShutdown,
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("Executando operações de limpeza após o desligamento")
	for _, cleanup := range s.onShutdown {
		cleanup()
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
