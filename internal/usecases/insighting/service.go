package insighting

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/business-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
	"golang.org/x/sync/singleflight"
)

// Insighter expõe o painel calculado de um dono
type Insighter interface {
	// GetDashboard calcula o painel; now define o "hoje" e o fuso de quem visualiza.
	// Em caso de falha devolve ErrSnapshotUnavailable junto do último painel válido, marcado como stale.
	GetDashboard(ctx context.Context, session domain.Session, now time.Time) (*domain.Dashboard, error)
	GetHistory(ctx context.Context, session domain.Session, filters *domain.HistoryFilters) ([]*domain.DashboardSnapshotEntry, error)
	Invalidate(ctx context.Context, ownerID int) error
}

// DashboardCache é o cache versionado por dono
type DashboardCache interface {
	BuildKey(ctx context.Context, ownerID int, parts ...string) (string, error)
	FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error
	Bump(ctx context.Context, ownerID int) error
}

type lastGood struct {
	seq       uint64
	dashboard *domain.Dashboard
}

type Service struct {
	engine       *Engine
	source       SnapshotSource
	cache        DashboardCache
	snapshotRepo repository.DashboardSnapshotRepository

	group    singleflight.Group
	fetchSeq atomic.Uint64
	mu       sync.RWMutex
	lastGood map[int]lastGood
}

func NewService(
	engine *Engine,
	source SnapshotSource,
	cache DashboardCache,
	snapshotRepo repository.DashboardSnapshotRepository,
) *Service {
	return &Service{
		engine:       engine,
		source:       source,
		cache:        cache,
		snapshotRepo: snapshotRepo,
		lastGood:     make(map[int]lastGood),
	}
}

func (s *Service) GetDashboard(ctx context.Context, session domain.Session, now time.Time) (*domain.Dashboard, error) {
	flightKey := fmt.Sprintf("%d:%s:%s", session.OwnerID, now.Format(time.DateOnly), now.Location().String())

	resultChan := s.group.DoChan(flightKey, func() (any, error) {
		return s.build(context.WithoutCancel(ctx), session.OwnerID, now)
	})

	var (
		dashboard *domain.Dashboard
		err       error
	)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-resultChan:
		if res.Err != nil {
			err = res.Err
		} else {
			dashboard = res.Val.(*domain.Dashboard)
		}
	}

	if err != nil {
		logrus.WithFields(logrus.Fields{
			"owner_id": session.OwnerID,
			"error":    err.Error(),
		}).Error("Erro ao montar o painel, usando último painel válido")

		stale := s.lastGoodFor(session.OwnerID)
		if stale != nil {
			stale.BusinessName = session.BusinessName
			stale.Stale = true
		}
		return stale, fmt.Errorf("%w: %w", ErrSnapshotUnavailable, err)
	}

	// o resultado do singleflight é compartilhado entre chamadas
	result := *dashboard
	result.BusinessName = session.BusinessName
	return &result, nil
}

// build busca o snapshot completo e calcula o painel, passando pelo cache quando disponível
func (s *Service) build(ctx context.Context, ownerID int, now time.Time) (*domain.Dashboard, error) {
	seq := s.fetchSeq.Add(1)

	loader := func(ctx context.Context) (any, error) {
		snapshot, err := s.source.Fetch(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		return s.engine.Compute(snapshot, now), nil
	}

	var (
		dashboard *domain.Dashboard
		err       error
	)

	if s.cache != nil {
		key, keyErr := s.cache.BuildKey(ctx, ownerID, "dashboard", now.Format(time.DateOnly), now.Location().String())
		if keyErr == nil {
			dashboard = &domain.Dashboard{}
			err = s.cache.FetchJSON(ctx, key, dashboard, loader)
		} else {
			logrus.WithError(keyErr).Warn("Cache indisponível, calculando painel diretamente")
		}
	}

	if dashboard == nil {
		var value any
		value, err = loader(ctx)
		if err == nil {
			dashboard = value.(*domain.Dashboard)
		}
	}

	if err != nil {
		return nil, err
	}

	s.storeLastGood(ownerID, seq, dashboard)
	return dashboard, nil
}

// storeLastGood só substitui o painel guardado por um de busca mais recente
func (s *Service) storeLastGood(ownerID int, seq uint64, dashboard *domain.Dashboard) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.lastGood[ownerID]
	if ok && current.seq > seq {
		return
	}

	s.lastGood[ownerID] = lastGood{seq: seq, dashboard: dashboard}
}

func (s *Service) lastGoodFor(ownerID int) *domain.Dashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.lastGood[ownerID]
	if !ok {
		return nil
	}

	dashboard := *entry.dashboard
	return &dashboard
}

func (s *Service) GetHistory(ctx context.Context, session domain.Session, filters *domain.HistoryFilters) ([]*domain.DashboardSnapshotEntry, error) {
	if s.snapshotRepo == nil {
		return []*domain.DashboardSnapshotEntry{}, nil
	}

	today := dateOnly(session.Now())
	start, end := today.AddDate(0, 0, -30), today

	if filters != nil {
		if filters.StartDate != nil {
			start = *filters.StartDate
		}
		if filters.EndDate != nil {
			end = *filters.EndDate
		}
	}

	if start.After(end) {
		return nil, ErrInvalidDateRange
	}

	entries, err := s.snapshotRepo.GetByDateRange(ctx, session.OwnerID, start, end)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar histórico do painel: %w", err)
	}

	return entries, nil
}

// Invalidate descarta os painéis em cache do dono após uma escrita
func (s *Service) Invalidate(ctx context.Context, ownerID int) error {
	if s.cache == nil {
		return nil
	}

	if err := s.cache.Bump(ctx, ownerID); err != nil {
		logrus.WithFields(logrus.Fields{
			"owner_id": strconv.Itoa(ownerID),
			"error":    err.Error(),
		}).Warn("Erro ao invalidar cache do painel")
		return err
	}

	return nil
}
