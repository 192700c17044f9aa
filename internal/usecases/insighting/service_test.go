package insighting

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/business-dashboard-api/infrastructure/cache"
	"github.com/vfg2006/business-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
	"go.uber.org/mock/gomock"
)

type fakeSource struct {
	mu       sync.Mutex
	calls    int
	err      error
	snapshot *domain.Snapshot
	started  chan struct{}
	release  chan struct{}
}

func (f *fakeSource) Fetch(ctx context.Context, ownerID int) (*domain.Snapshot, error) {
	f.mu.Lock()
	f.calls++
	err := f.err
	snapshot := f.snapshot
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}

	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (f *fakeSource) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testSession() domain.Session {
	return domain.Session{OwnerID: 1, BusinessName: "Studio Bella", Location: time.UTC}
}

func testSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Customers: []*domain.Customer{{Name: "Sarah"}},
		Sales: []*domain.Sale{
			sale("Hair", "100", "2024-03-01"),
			sale("Nails", "30", "2024-03-20"),
		},
	}
}

func TestService_GetDashboard(t *testing.T) {
	now := time.Date(2024, 3, 25, 10, 0, 0, 0, time.UTC)
	source := &fakeSource{snapshot: testSnapshot()}
	service := NewService(NewEngine(DefaultEngineConfig()), source, nil, nil)

	dashboard, err := service.GetDashboard(context.Background(), testSession(), now)
	require.NoError(t, err)

	assert.Equal(t, "Studio Bella", dashboard.BusinessName)
	assert.False(t, dashboard.Stale)
	assert.Equal(t, "130", dashboard.Summary.TotalRevenue.String())
	assert.Equal(t, 1, source.callCount())
}

func TestService_GetDashboard_FalhaUsaUltimoPainelValido(t *testing.T) {
	now := time.Date(2024, 3, 25, 10, 0, 0, 0, time.UTC)
	source := &fakeSource{snapshot: testSnapshot()}
	service := NewService(NewEngine(DefaultEngineConfig()), source, nil, nil)

	t.Run("Sem painel anterior", func(t *testing.T) {
		source.setErr(errors.New("banco indisponível"))
		defer source.setErr(nil)

		dashboard, err := service.GetDashboard(context.Background(), testSession(), now)
		assert.ErrorIs(t, err, ErrSnapshotUnavailable)
		assert.Nil(t, dashboard)
	})

	t.Run("Com painel anterior", func(t *testing.T) {
		good, err := service.GetDashboard(context.Background(), testSession(), now)
		require.NoError(t, err)

		source.setErr(errors.New("banco indisponível"))

		stale, err := service.GetDashboard(context.Background(), testSession(), now)
		assert.ErrorIs(t, err, ErrSnapshotUnavailable)
		require.NotNil(t, stale)
		assert.True(t, stale.Stale)
		assert.Equal(t, good.Summary, stale.Summary)
		assert.False(t, good.Stale, "o painel já entregue não pode ser alterado")
	})
}

func TestService_GetDashboard_ChamadasConcorrentesCompartilhamBusca(t *testing.T) {
	now := time.Date(2024, 3, 25, 10, 0, 0, 0, time.UTC)
	source := &fakeSource{
		snapshot: testSnapshot(),
		started:  make(chan struct{}, 2),
		release:  make(chan struct{}),
	}
	service := NewService(NewEngine(DefaultEngineConfig()), source, nil, nil)

	var wg sync.WaitGroup
	results := make([]*domain.Dashboard, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], _ = service.GetDashboard(context.Background(), testSession(), now)
	}()
	<-source.started

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[1], _ = service.GetDashboard(context.Background(), testSession(), now)
	}()

	// dá tempo da segunda chamada entrar no mesmo voo
	time.Sleep(50 * time.Millisecond)
	close(source.release)
	wg.Wait()

	assert.Equal(t, 1, source.callCount())
	require.NotNil(t, results[0])
	require.NotNil(t, results[1])
	assert.Equal(t, results[0].Summary, results[1].Summary)
}

func TestService_GetDashboard_ContextoCancelado(t *testing.T) {
	now := time.Date(2024, 3, 25, 10, 0, 0, 0, time.UTC)
	source := &fakeSource{
		snapshot: testSnapshot(),
		started:  make(chan struct{}, 1),
		release:  make(chan struct{}),
	}
	service := NewService(NewEngine(DefaultEngineConfig()), source, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := service.GetDashboard(ctx, testSession(), now)
		done <- err
	}()

	<-source.started
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	close(source.release)
}

func TestService_GetDashboard_Cache(t *testing.T) {
	now := time.Date(2024, 3, 25, 10, 0, 0, 0, time.UTC)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	source := &fakeSource{snapshot: testSnapshot()}
	service := NewService(NewEngine(DefaultEngineConfig()), source, cache.NewWithClient(client, time.Minute), nil)
	ctx := context.Background()

	first, err := service.GetDashboard(ctx, testSession(), now)
	require.NoError(t, err)

	second, err := service.GetDashboard(ctx, testSession(), now)
	require.NoError(t, err)

	assert.Equal(t, 1, source.callCount(), "segunda leitura deve vir do cache")
	assert.True(t, first.Summary.TotalRevenue.Equal(second.Summary.TotalRevenue))
	assert.Len(t, second.Monthly, MonthlyWindow)

	require.NoError(t, service.Invalidate(ctx, 1))

	_, err = service.GetDashboard(ctx, testSession(), now)
	require.NoError(t, err)
	assert.Equal(t, 2, source.callCount(), "invalidação força nova busca")
}

func TestService_GetHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSnapshotRepo := mocks.NewMockDashboardSnapshotRepository(ctrl)
	service := NewService(NewEngine(DefaultEngineConfig()), &fakeSource{}, nil, mockSnapshotRepo)

	start := date("2024-03-01")
	end := date("2024-03-10")

	tests := []struct {
		name     string
		filters  *domain.HistoryFilters
		setup    func()
		validate func(t *testing.T, entries []*domain.DashboardSnapshotEntry, err error)
	}{
		{
			name:    "Intervalo informado",
			filters: &domain.HistoryFilters{StartDate: &start, EndDate: &end},
			setup: func() {
				mockSnapshotRepo.EXPECT().
					GetByDateRange(gomock.Any(), 1, start, end).
					Return([]*domain.DashboardSnapshotEntry{{OwnerID: 1, Date: start}}, nil)
			},
			validate: func(t *testing.T, entries []*domain.DashboardSnapshotEntry, err error) {
				require.NoError(t, err)
				assert.Len(t, entries, 1)
			},
		},
		{
			name:    "Sem filtros usa os últimos 30 dias",
			filters: nil,
			setup: func() {
				mockSnapshotRepo.EXPECT().
					GetByDateRange(gomock.Any(), 1, gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ int, s, e time.Time) ([]*domain.DashboardSnapshotEntry, error) {
						assert.Equal(t, 30*24*time.Hour, e.Sub(s))
						return []*domain.DashboardSnapshotEntry{}, nil
					})
			},
			validate: func(t *testing.T, entries []*domain.DashboardSnapshotEntry, err error) {
				require.NoError(t, err)
				assert.Empty(t, entries)
			},
		},
		{
			name:    "Início depois do fim",
			filters: &domain.HistoryFilters{StartDate: &end, EndDate: &start},
			setup:   func() {},
			validate: func(t *testing.T, entries []*domain.DashboardSnapshotEntry, err error) {
				assert.ErrorIs(t, err, ErrInvalidDateRange)
			},
		},
		{
			name:    "Erro do repositório",
			filters: &domain.HistoryFilters{StartDate: &start, EndDate: &end},
			setup: func() {
				mockSnapshotRepo.EXPECT().
					GetByDateRange(gomock.Any(), 1, start, end).
					Return(nil, errors.New("timeout"))
			},
			validate: func(t *testing.T, entries []*domain.DashboardSnapshotEntry, err error) {
				assert.Error(t, err)
				assert.Nil(t, entries)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			entries, err := service.GetHistory(context.Background(), testSession(), tt.filters)
			tt.validate(t, entries, err)
		})
	}
}
