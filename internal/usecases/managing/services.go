package managing

import (
	"context"
	"strings"

	"github.com/vfg2006/business-dashboard-api/internal/domain"
	"github.com/vfg2006/business-dashboard-api/pkg/apiErrors"
)

func (s *Service) ListServices(ctx context.Context, session domain.Session) ([]*domain.Service, error) {
	services, err := s.serviceRepo.ListByOwner(ctx, session.OwnerID)
	if err != nil {
		return nil, writeError(err, ErrServiceNotFound, "", "Erro ao listar serviços")
	}
	return services, nil
}

func (s *Service) CreateService(ctx context.Context, session domain.Session, req *domain.CreateServiceRequest) (*domain.Service, error) {
	if req.Price.IsNegative() {
		return nil, NewManagingError(ErrInvalidAmount, apiErrors.ErrInvalidFormat, "O preço do serviço não pode ser negativo")
	}

	id, err := s.newID()
	if err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	service, err := s.serviceRepo.Create(ctx, &domain.Service{
		ID:          id,
		OwnerID:     session.OwnerID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
		Category:    strings.TrimSpace(req.Category),
		Active:      active,
	})
	if err != nil {
		return nil, writeError(err, ErrServiceNotFound, id, "Erro ao criar serviço")
	}

	s.invalidate(ctx, session.OwnerID)
	return service, nil
}

func (s *Service) UpdateService(ctx context.Context, session domain.Session, id string, req *domain.UpdateServiceRequest) (*domain.Service, error) {
	service, err := s.serviceRepo.GetByID(ctx, session.OwnerID, id)
	if err != nil {
		return nil, writeError(err, ErrServiceNotFound, id, "Erro ao buscar serviço")
	}
	if service == nil {
		return nil, NewManagingErrorWithID(ErrServiceNotFound, apiErrors.ErrResourceNotFound, id, "Serviço não encontrado")
	}

	if req.Name != nil {
		service.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		service.Description = req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, NewManagingErrorWithID(ErrInvalidAmount, apiErrors.ErrInvalidFormat, id, "O preço do serviço não pode ser negativo")
		}
		service.Price = *req.Price
	}
	if req.Duration != nil {
		service.Duration = *req.Duration
	}
	if req.Category != nil {
		service.Category = strings.TrimSpace(*req.Category)
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := s.serviceRepo.Update(ctx, service); err != nil {
		return nil, writeError(err, ErrServiceNotFound, id, "Erro ao atualizar serviço")
	}

	s.invalidate(ctx, session.OwnerID)
	return service, nil
}

func (s *Service) DeleteService(ctx context.Context, session domain.Session, id string) error {
	if err := s.serviceRepo.Delete(ctx, session.OwnerID, id); err != nil {
		return writeError(err, ErrServiceNotFound, id, "Erro ao remover serviço")
	}

	s.invalidate(ctx, session.OwnerID)
	return nil
}
