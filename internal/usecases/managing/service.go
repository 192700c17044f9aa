package managing

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/business-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
	"github.com/vfg2006/business-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/business-dashboard-api/pkg/utils"
)

// Invalidator é avisado depois de cada escrita para descartar painéis em cache
type Invalidator interface {
	Invalidate(ctx context.Context, ownerID int) error
}

type Manager interface {
	ListCustomers(ctx context.Context, session domain.Session, search string) ([]*domain.Customer, error)
	GetCustomer(ctx context.Context, session domain.Session, id string) (*domain.Customer, error)
	CreateCustomer(ctx context.Context, session domain.Session, req *domain.CreateCustomerRequest) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, session domain.Session, id string, req *domain.UpdateCustomerRequest) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, session domain.Session, id string) error

	ListServices(ctx context.Context, session domain.Session) ([]*domain.Service, error)
	CreateService(ctx context.Context, session domain.Session, req *domain.CreateServiceRequest) (*domain.Service, error)
	UpdateService(ctx context.Context, session domain.Session, id string, req *domain.UpdateServiceRequest) (*domain.Service, error)
	DeleteService(ctx context.Context, session domain.Session, id string) error

	ListAppointments(ctx context.Context, session domain.Session, scope domain.AppointmentScope) ([]*domain.Appointment, error)
	CreateAppointment(ctx context.Context, session domain.Session, req *domain.CreateAppointmentRequest) (*domain.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, session domain.Session, id string, status domain.AppointmentStatus) error
	DeleteAppointment(ctx context.Context, session domain.Session, id string) error

	ListSales(ctx context.Context, session domain.Session) ([]*domain.Sale, error)
	CreateSale(ctx context.Context, session domain.Session, req *domain.CreateSaleRequest) (*domain.Sale, error)
}

type Service struct {
	customerRepo    repository.CustomerRepository
	serviceRepo     repository.ServiceRepository
	appointmentRepo repository.AppointmentRepository
	saleRepo        repository.SaleRepository
	invalidator     Invalidator
	generateID      func() (string, error)
}

func NewService(
	customerRepo repository.CustomerRepository,
	serviceRepo repository.ServiceRepository,
	appointmentRepo repository.AppointmentRepository,
	saleRepo repository.SaleRepository,
	invalidator Invalidator,
) *Service {
	return &Service{
		customerRepo:    customerRepo,
		serviceRepo:     serviceRepo,
		appointmentRepo: appointmentRepo,
		saleRepo:        saleRepo,
		invalidator:     invalidator,
		generateID:      utils.GenerateID,
	}
}

func (s *Service) newID() (string, error) {
	id, err := s.generateID()
	if err != nil {
		return "", NewManagingError(ErrGenerateID, apiErrors.ErrInternalServer, "Falha ao gerar identificador único")
	}
	return id, nil
}

// invalidate não falha a escrita; no pior caso o painel fica desatualizado até o TTL do cache
func (s *Service) invalidate(ctx context.Context, ownerID int) {
	if s.invalidator == nil {
		return
	}

	if err := s.invalidator.Invalidate(ctx, ownerID); err != nil {
		logrus.WithFields(logrus.Fields{
			"owner_id": ownerID,
			"error":    err.Error(),
		}).Warn("Painel não invalidado após escrita")
	}
}

// writeError traduz os erros de repositório para o código de API correspondente
func writeError(err error, notFound error, recordID string, details string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return NewManagingErrorWithID(notFound, apiErrors.ErrResourceNotFound, recordID, details)
	case errors.Is(err, repository.ErrDuplicate):
		return NewManagingErrorWithID(ErrDuplicateRecord, apiErrors.ErrResourceConflict, recordID, details)
	default:
		logrus.WithFields(logrus.Fields{
			"record_id": recordID,
			"error":     err.Error(),
		}).Error(details)
		return NewManagingErrorWithID(errors.Wrap(ErrDatabaseOperation, err.Error()), apiErrors.ErrDatabaseOperation, recordID, details)
	}
}

func today(session domain.Session) time.Time {
	return utils.Today(session.Location)
}
