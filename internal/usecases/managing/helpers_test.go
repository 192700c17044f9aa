package managing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vfg2006/business-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
	"go.uber.org/mock/gomock"
)

type fakeInvalidator struct {
	calls []int
	err   error
}

func (f *fakeInvalidator) Invalidate(_ context.Context, ownerID int) error {
	f.calls = append(f.calls, ownerID)
	return f.err
}

type fixture struct {
	customerRepo    *mocks.MockCustomerRepository
	serviceRepo     *mocks.MockServiceRepository
	appointmentRepo *mocks.MockAppointmentRepository
	saleRepo        *mocks.MockSaleRepository
	invalidator     *fakeInvalidator
	service         *Service
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	f := &fixture{
		customerRepo:    mocks.NewMockCustomerRepository(ctrl),
		serviceRepo:     mocks.NewMockServiceRepository(ctrl),
		appointmentRepo: mocks.NewMockAppointmentRepository(ctrl),
		saleRepo:        mocks.NewMockSaleRepository(ctrl),
		invalidator:     &fakeInvalidator{},
	}
	f.service = NewService(f.customerRepo, f.serviceRepo, f.appointmentRepo, f.saleRepo, f.invalidator)
	f.service.generateID = func() (string, error) { return "abc123def456", nil }

	return f
}

var testSession = domain.Session{
	OwnerID:      7,
	OwnerName:    "Maria",
	BusinessName: "Studio Maria",
	Location:     time.UTC,
}

func managingCode(t *testing.T, err error) string {
	t.Helper()

	var managingErr *ManagingError
	if !errors.As(err, &managingErr) {
		t.Fatalf("esperava ManagingError, recebeu %v", err)
	}
	return managingErr.Code
}

func ptr[T any](v T) *T {
	return &v
}
