package managing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/business-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
	"github.com/vfg2006/business-dashboard-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func TestService_CreateService(t *testing.T) {
	tests := []struct {
		name     string
		req      *domain.CreateServiceRequest
		setup    func(f *fixture)
		validate func(t *testing.T, f *fixture, service *domain.Service, err error)
	}{
		{
			name: "Serviço ativo por padrão",
			req:  &domain.CreateServiceRequest{Name: "Hair", Price: decimal.RequireFromString("75"), Duration: 60, Category: "Beauty"},
			setup: func(f *fixture) {
				f.serviceRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, s *domain.Service) (*domain.Service, error) { return s, nil })
			},
			validate: func(t *testing.T, f *fixture, service *domain.Service, err error) {
				require.NoError(t, err)
				assert.True(t, service.Active)
				assert.Equal(t, 7, service.OwnerID)
				assert.Equal(t, []int{7}, f.invalidator.calls)
			},
		},
		{
			name: "Serviço criado inativo",
			req:  &domain.CreateServiceRequest{Name: "Nails", Price: decimal.RequireFromString("30"), Duration: 30, Category: "Beauty", Active: ptr(false)},
			setup: func(f *fixture) {
				f.serviceRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, s *domain.Service) (*domain.Service, error) { return s, nil })
			},
			validate: func(t *testing.T, f *fixture, service *domain.Service, err error) {
				require.NoError(t, err)
				assert.False(t, service.Active)
			},
		},
		{
			name:  "Preço negativo",
			req:   &domain.CreateServiceRequest{Name: "Hair", Price: decimal.RequireFromString("-1"), Duration: 60, Category: "Beauty"},
			setup: func(f *fixture) {},
			validate: func(t *testing.T, f *fixture, service *domain.Service, err error) {
				assert.Nil(t, service)
				assert.ErrorIs(t, err, ErrInvalidAmount)
				assert.Equal(t, apiErrors.ErrInvalidFormat, managingCode(t, err))
				assert.Empty(t, f.invalidator.calls)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)
			service, err := f.service.CreateService(context.Background(), testSession, tt.req)
			tt.validate(t, f, service, err)
		})
	}
}

func TestService_UpdateService(t *testing.T) {
	f := newFixture(t)

	price := decimal.RequireFromString("80")
	f.serviceRepo.EXPECT().GetByID(gomock.Any(), 7, "s1").
		Return(&domain.Service{ID: "s1", OwnerID: 7, Name: "Hair", Price: decimal.RequireFromString("75"), Active: true}, nil)
	f.serviceRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	service, err := f.service.UpdateService(context.Background(), testSession, "s1", &domain.UpdateServiceRequest{
		Price:  &price,
		Active: ptr(false),
	})
	require.NoError(t, err)
	assert.True(t, service.Price.Equal(price))
	assert.False(t, service.Active)
	assert.Equal(t, "Hair", service.Name)
}

func TestService_DeleteService_Inexistente(t *testing.T) {
	f := newFixture(t)

	f.serviceRepo.EXPECT().Delete(gomock.Any(), 7, "s9").Return(repository.ErrNotFound)

	err := f.service.DeleteService(context.Background(), testSession, "s9")
	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.Equal(t, apiErrors.ErrResourceNotFound, managingCode(t, err))
}
