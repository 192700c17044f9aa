package insighting

import (
	"context"
	"fmt"

	"github.com/vfg2006/business-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
	"golang.org/x/sync/errgroup"
)

// SnapshotSource entrega as quatro coleções completas de um dono, ou erro
type SnapshotSource interface {
	Fetch(ctx context.Context, ownerID int) (*domain.Snapshot, error)
}

// RepositorySource lê o snapshot dos repositórios em paralelo
type RepositorySource struct {
	customerRepo    repository.CustomerRepository
	serviceRepo     repository.ServiceRepository
	appointmentRepo repository.AppointmentRepository
	saleRepo        repository.SaleRepository
}

func NewRepositorySource(
	customerRepo repository.CustomerRepository,
	serviceRepo repository.ServiceRepository,
	appointmentRepo repository.AppointmentRepository,
	saleRepo repository.SaleRepository,
) *RepositorySource {
	return &RepositorySource{
		customerRepo:    customerRepo,
		serviceRepo:     serviceRepo,
		appointmentRepo: appointmentRepo,
		saleRepo:        saleRepo,
	}
}

// Fetch só devolve o snapshot quando as quatro leituras terminam sem erro
func (s *RepositorySource) Fetch(ctx context.Context, ownerID int) (*domain.Snapshot, error) {
	var (
		customers    []*domain.Customer
		services     []*domain.Service
		appointments []*domain.Appointment
		sales        []*domain.Sale
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		customers, err = s.customerRepo.ListByOwner(gctx, ownerID, "")
		if err != nil {
			return fmt.Errorf("erro ao buscar clientes: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		services, err = s.serviceRepo.ListByOwner(gctx, ownerID)
		if err != nil {
			return fmt.Errorf("erro ao buscar serviços: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		appointments, err = s.appointmentRepo.ListByOwner(gctx, ownerID, domain.AppointmentFilter{})
		if err != nil {
			return fmt.Errorf("erro ao buscar agendamentos: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		sales, err = s.saleRepo.ListByOwner(gctx, ownerID)
		if err != nil {
			return fmt.Errorf("erro ao buscar vendas: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.Snapshot{
		Customers:    customers,
		Services:     services,
		Appointments: appointments,
		Sales:        sales,
	}, nil
}
