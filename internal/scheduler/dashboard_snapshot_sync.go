package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/business-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/business-dashboard-api/internal/config"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
	"github.com/vfg2006/business-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/business-dashboard-api/pkg/utils"
)

// DashboardSnapshotSyncConfig representa a configuração do agendador de snapshots do painel
type DashboardSnapshotSyncConfig struct {
	CronSchedule      string
	MaxConcurrentJobs int
	RetentionDays     int
	SyncEnabled       bool
}

// DashboardSnapshotSyncService grava diariamente o resumo do painel de cada dono ativo
type DashboardSnapshotSyncService struct {
	scheduler           *gocron.Scheduler
	config              DashboardSnapshotSyncConfig
	defaultLocation     *time.Location
	ownerRepo           repository.OwnerRepository
	snapshotRepo        repository.DashboardSnapshotRepository
	insightService      insighting.Insighter
	now                 func() time.Time
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncFailures    int
}

func NewDashboardSnapshotSyncService(
	ownerRepo repository.OwnerRepository,
	snapshotRepo repository.DashboardSnapshotRepository,
	insightService insighting.Insighter,
	appConfig *config.Config,
) *DashboardSnapshotSyncService {
	syncConfig := DashboardSnapshotSyncConfig{
		CronSchedule:      appConfig.DashboardSnapshotSync.CronSchedule,
		MaxConcurrentJobs: appConfig.DashboardSnapshotSync.MaxConcurrentJobs,
		RetentionDays:     appConfig.DashboardSnapshotSync.RetentionDays,
		SyncEnabled:       appConfig.DashboardSnapshotSync.Enabled,
	}

	if syncConfig.MaxConcurrentJobs <= 0 {
		syncConfig.MaxConcurrentJobs = 1
	}

	location := appConfig.Location()

	logrus.WithFields(logrus.Fields{
		"cron_schedule":       syncConfig.CronSchedule,
		"max_concurrent_jobs": syncConfig.MaxConcurrentJobs,
		"retention_days":      syncConfig.RetentionDays,
		"sync_enabled":        syncConfig.SyncEnabled,
		"timezone":            location.String(),
	}).Info("Configuração do agendador de snapshots do painel carregada")

	return &DashboardSnapshotSyncService{
		scheduler:       gocron.NewScheduler(location),
		config:          syncConfig,
		defaultLocation: location,
		ownerRepo:       ownerRepo,
		snapshotRepo:    snapshotRepo,
		insightService:  insightService,
		now:             time.Now,
	}
}

// Start inicia o agendador
func (s *DashboardSnapshotSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de snapshots do painel desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de snapshots do painel")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllSnapshots(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de snapshots do painel: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de snapshots do painel")
		s.scheduler.Stop()
	}()

	return nil
}

// syncAllSnapshots grava o snapshot do dia de todos os donos ativos e aplica a retenção
func (s *DashboardSnapshotSyncService) syncAllSnapshots(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de snapshots do painel já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	startTime := s.now()
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando sincronização de snapshots do painel para todos os donos ativos")

	owners, err := s.ownerRepo.ListOwners(ctx, true)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar donos para sincronização de snapshots do painel")
		return
	}

	failures := 0
	if len(owners) == 0 {
		logrus.Info("Nenhum dono ativo encontrado para sincronização de snapshots do painel")
	} else {
		failures = s.processOwners(ctx, owners)
	}

	s.applyRetention(ctx)

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = s.now()
	s.lastSyncFailures = failures
	s.syncMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"duration": time.Since(startTime).String(),
		"owners":   len(owners),
		"failures": failures,
	}).Info("Sincronização de snapshots do painel concluída")
}

// processOwners limita a concorrência com um semáforo e devolve a quantidade de falhas
func (s *DashboardSnapshotSyncService) processOwners(ctx context.Context, owners []*domain.Owner) int {
	semaphore := make(chan struct{}, s.config.MaxConcurrentJobs)
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures int
	)

	for _, owner := range owners {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(o *domain.Owner) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			if err := s.processOwnerSnapshot(ctx, o); err != nil {
				mu.Lock()
				failures++
				mu.Unlock()
			}
		}(owner)
	}

	wg.Wait()
	return failures
}

func (s *DashboardSnapshotSyncService) processOwnerSnapshot(ctx context.Context, owner *domain.Owner) error {
	session := domain.NewSession(owner, "", s.defaultLocation)

	now := s.now().In(session.Location)
	date := utils.CivilDate(now)

	dashboard, err := s.insightService.GetDashboard(ctx, session, now)
	if err != nil {
		// um painel stale não representa o dia e não é gravado
		logrus.WithFields(logrus.Fields{
			"owner_id": owner.ID,
			"date":     date.Format(time.DateOnly),
			"error":    err.Error(),
		}).Error("Erro ao calcular painel para snapshot")
		return err
	}

	if dashboard == nil {
		return errors.New("painel vazio")
	}

	summary := dashboard.Summary
	entry := &domain.DashboardSnapshotEntry{
		OwnerID:  owner.ID,
		Date:     date,
		Summary:  &summary,
		Services: dashboard.Services,
	}

	if err := s.snapshotRepo.SaveOrUpdate(ctx, entry); err != nil {
		logrus.WithFields(logrus.Fields{
			"owner_id": owner.ID,
			"date":     date.Format(time.DateOnly),
			"error":    err.Error(),
		}).Error("Erro ao salvar snapshot do painel no banco de dados")
		return err
	}

	logrus.WithFields(logrus.Fields{
		"owner_id": owner.ID,
		"date":     date.Format(time.DateOnly),
	}).Debug("Snapshot do painel salvo com sucesso")

	return nil
}

func (s *DashboardSnapshotSyncService) applyRetention(ctx context.Context) {
	if s.config.RetentionDays <= 0 {
		return
	}

	removed, err := s.snapshotRepo.DeleteOlderThan(ctx, s.config.RetentionDays)
	if err != nil {
		logrus.WithError(err).Error("Erro ao aplicar retenção de snapshots do painel")
		return
	}

	logrus.WithFields(logrus.Fields{
		"retention_days": s.config.RetentionDays,
		"removed":        removed,
	}).Info("Retenção de snapshots do painel aplicada")
}

// TriggerManualSync inicia manualmente uma sincronização em segundo plano
func (s *DashboardSnapshotSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de snapshots do painel já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual de snapshots do painel")
	go s.syncAllSnapshots(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *DashboardSnapshotSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	retention := "dados mantidos permanentemente"
	if s.config.RetentionDays > 0 {
		retention = fmt.Sprintf("%d dias", s.config.RetentionDays)
	}

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_max_concurrent":    s.config.MaxConcurrentJobs,
		"sync_running":           s.syncRunning,
		"retention_policy":       retention,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_failures":     s.lastSyncFailures,
	}
}
