package managing

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/business-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
	"github.com/vfg2006/business-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/business-dashboard-api/pkg/utils"
	"go.uber.org/mock/gomock"
)

func TestService_CreateCustomer(t *testing.T) {
	f := newFixture(t)

	f.customerRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *domain.Customer) (*domain.Customer, error) {
			return c, nil
		})

	customer, err := f.service.CreateCustomer(context.Background(), testSession, &domain.CreateCustomerRequest{
		Name:  "  Sarah Johnson ",
		Email: "Sarah@Example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "abc123def456", customer.ID)
	assert.Equal(t, 7, customer.OwnerID)
	assert.Equal(t, "Sarah Johnson", customer.Name)
	assert.Equal(t, "sarah@example.com", customer.Email)
	assert.Equal(t, domain.CustomerStatusActive, customer.Status)
	assert.True(t, customer.TotalSpent.Equal(decimal.Zero))
	assert.Equal(t, 0, customer.TotalAppointments)
	assert.Equal(t, utils.Today(testSession.Location), customer.JoinDate)
	assert.Equal(t, []int{7}, f.invalidator.calls)
}

func TestService_CreateCustomer_EmailDuplicado(t *testing.T) {
	f := newFixture(t)

	f.customerRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, repository.ErrDuplicate)

	_, err := f.service.CreateCustomer(context.Background(), testSession, &domain.CreateCustomerRequest{
		Name:  "Sarah",
		Email: "sarah@example.com",
	})

	assert.ErrorIs(t, err, ErrDuplicateRecord)
	assert.Equal(t, apiErrors.ErrResourceConflict, managingCode(t, err))
	assert.Empty(t, f.invalidator.calls)
}

func TestService_UpdateCustomer(t *testing.T) {
	tests := []struct {
		name     string
		req      *domain.UpdateCustomerRequest
		setup    func(f *fixture)
		validate func(t *testing.T, f *fixture, customer *domain.Customer, err error)
	}{
		{
			name: "Atualiza apenas os campos informados",
			req:  &domain.UpdateCustomerRequest{Phone: ptr("555-0101"), Status: ptr(domain.CustomerStatusInactive)},
			setup: func(f *fixture) {
				f.customerRepo.EXPECT().GetByID(gomock.Any(), 7, "c1").
					Return(&domain.Customer{ID: "c1", OwnerID: 7, Name: "Sarah", Email: "sarah@example.com", Status: domain.CustomerStatusActive}, nil)
				f.customerRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, f *fixture, customer *domain.Customer, err error) {
				require.NoError(t, err)
				assert.Equal(t, "Sarah", customer.Name)
				assert.Equal(t, "555-0101", *customer.Phone)
				assert.Equal(t, domain.CustomerStatusInactive, customer.Status)
				assert.Equal(t, []int{7}, f.invalidator.calls)
			},
		},
		{
			name: "Cliente inexistente",
			req:  &domain.UpdateCustomerRequest{Name: ptr("Outro")},
			setup: func(f *fixture) {
				f.customerRepo.EXPECT().GetByID(gomock.Any(), 7, "c1").Return(nil, nil)
			},
			validate: func(t *testing.T, f *fixture, customer *domain.Customer, err error) {
				assert.Nil(t, customer)
				assert.ErrorIs(t, err, ErrCustomerNotFound)
				assert.Equal(t, apiErrors.ErrResourceNotFound, managingCode(t, err))
				assert.Empty(t, f.invalidator.calls)
			},
		},
		{
			name: "Status inválido",
			req:  &domain.UpdateCustomerRequest{Status: ptr(domain.CustomerStatus("vip"))},
			setup: func(f *fixture) {
				f.customerRepo.EXPECT().GetByID(gomock.Any(), 7, "c1").
					Return(&domain.Customer{ID: "c1", OwnerID: 7}, nil)
			},
			validate: func(t *testing.T, f *fixture, customer *domain.Customer, err error) {
				assert.ErrorIs(t, err, ErrInvalidStatus)
				assert.Equal(t, apiErrors.ErrInvalidFormat, managingCode(t, err))
			},
		},
		{
			name: "Erro do banco ao gravar",
			req:  &domain.UpdateCustomerRequest{Name: ptr("Sarah J")},
			setup: func(f *fixture) {
				f.customerRepo.EXPECT().GetByID(gomock.Any(), 7, "c1").
					Return(&domain.Customer{ID: "c1", OwnerID: 7}, nil)
				f.customerRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(errors.New("conexão perdida"))
			},
			validate: func(t *testing.T, f *fixture, customer *domain.Customer, err error) {
				assert.ErrorIs(t, err, ErrDatabaseOperation)
				assert.Equal(t, apiErrors.ErrDatabaseOperation, managingCode(t, err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)
			customer, err := f.service.UpdateCustomer(context.Background(), testSession, "c1", tt.req)
			tt.validate(t, f, customer, err)
		})
	}
}

func TestService_DeleteCustomer(t *testing.T) {
	f := newFixture(t)

	f.customerRepo.EXPECT().Delete(gomock.Any(), 7, "c1").Return(nil)
	f.customerRepo.EXPECT().Delete(gomock.Any(), 7, "c2").Return(repository.ErrNotFound)

	require.NoError(t, f.service.DeleteCustomer(context.Background(), testSession, "c1"))

	err := f.service.DeleteCustomer(context.Background(), testSession, "c2")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
	assert.Equal(t, []int{7}, f.invalidator.calls)
}

func TestService_ListCustomers_RemoveEspacosDaBusca(t *testing.T) {
	f := newFixture(t)

	f.customerRepo.EXPECT().ListByOwner(gomock.Any(), 7, "sarah").Return([]*domain.Customer{{Name: "Sarah"}}, nil)

	customers, err := f.service.ListCustomers(context.Background(), testSession, "  sarah ")
	require.NoError(t, err)
	assert.Len(t, customers, 1)
}

func TestService_InvalidacaoComFalhaNaoDerrubaEscrita(t *testing.T) {
	f := newFixture(t)
	f.invalidator.err = errors.New("redis fora do ar")

	f.customerRepo.EXPECT().Delete(gomock.Any(), 7, "c1").Return(nil)

	assert.NoError(t, f.service.DeleteCustomer(context.Background(), testSession, "c1"))
	assert.Equal(t, []int{7}, f.invalidator.calls)
}
