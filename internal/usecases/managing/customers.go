package managing

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
	"github.com/vfg2006/business-dashboard-api/pkg/apiErrors"
)

func (s *Service) ListCustomers(ctx context.Context, session domain.Session, search string) ([]*domain.Customer, error) {
	customers, err := s.customerRepo.ListByOwner(ctx, session.OwnerID, strings.TrimSpace(search))
	if err != nil {
		return nil, writeError(err, ErrCustomerNotFound, "", "Erro ao listar clientes")
	}
	return customers, nil
}

func (s *Service) GetCustomer(ctx context.Context, session domain.Session, id string) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, session.OwnerID, id)
	if err != nil {
		return nil, writeError(err, ErrCustomerNotFound, id, "Erro ao buscar cliente")
	}
	if customer == nil {
		return nil, NewManagingErrorWithID(ErrCustomerNotFound, apiErrors.ErrResourceNotFound, id, "Cliente não encontrado")
	}
	return customer, nil
}

// CreateCustomer cria o cliente ativo, com contadores zerados e entrada hoje
func (s *Service) CreateCustomer(ctx context.Context, session domain.Session, req *domain.CreateCustomerRequest) (*domain.Customer, error) {
	id, err := s.newID()
	if err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.Create(ctx, &domain.Customer{
		ID:                id,
		OwnerID:           session.OwnerID,
		Name:              strings.TrimSpace(req.Name),
		Email:             strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:             req.Phone,
		ServiceBooked:     req.ServiceBooked,
		TotalSpent:        decimal.Zero,
		TotalAppointments: 0,
		Status:            domain.CustomerStatusActive,
		JoinDate:          today(session),
	})
	if err != nil {
		return nil, writeError(err, ErrCustomerNotFound, id, "Erro ao criar cliente")
	}

	s.invalidate(ctx, session.OwnerID)
	return customer, nil
}

func (s *Service) UpdateCustomer(ctx context.Context, session domain.Session, id string, req *domain.UpdateCustomerRequest) (*domain.Customer, error) {
	customer, err := s.GetCustomer(ctx, session, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		customer.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		customer.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		customer.Phone = req.Phone
	}
	if req.ServiceBooked != nil {
		customer.ServiceBooked = req.ServiceBooked
	}
	if req.Status != nil {
		if *req.Status != domain.CustomerStatusActive && *req.Status != domain.CustomerStatusInactive {
			return nil, NewManagingErrorWithID(ErrInvalidStatus, apiErrors.ErrInvalidFormat, id, "Status do cliente deve ser active ou inactive")
		}
		customer.Status = *req.Status
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, writeError(err, ErrCustomerNotFound, id, "Erro ao atualizar cliente")
	}

	s.invalidate(ctx, session.OwnerID)
	return customer, nil
}

func (s *Service) DeleteCustomer(ctx context.Context, session domain.Session, id string) error {
	if err := s.customerRepo.Delete(ctx, session.OwnerID, id); err != nil {
		return writeError(err, ErrCustomerNotFound, id, "Erro ao remover cliente")
	}

	s.invalidate(ctx, session.OwnerID)
	return nil
}
