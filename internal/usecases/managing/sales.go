package managing

import (
	"context"
	"strings"
	"time"

	"github.com/vfg2006/business-dashboard-api/internal/domain"
	"github.com/vfg2006/business-dashboard-api/pkg/apiErrors"
)

func (s *Service) ListSales(ctx context.Context, session domain.Session) ([]*domain.Sale, error) {
	sales, err := s.saleRepo.ListByOwner(ctx, session.OwnerID)
	if err != nil {
		return nil, writeError(err, ErrDatabaseOperation, "", "Erro ao listar vendas")
	}
	return sales, nil
}

// CreateSale registra a venda; sem data usa hoje e sem status usa paid
func (s *Service) CreateSale(ctx context.Context, session domain.Session, req *domain.CreateSaleRequest) (*domain.Sale, error) {
	if req.Amount.IsNegative() {
		return nil, NewManagingError(ErrInvalidAmount, apiErrors.ErrInvalidFormat, "O valor da venda não pode ser negativo")
	}

	saleDate := today(session)
	if req.SaleDate != "" {
		parsed, err := time.Parse(time.DateOnly, req.SaleDate)
		if err != nil {
			return nil, NewManagingError(ErrInvalidDate, apiErrors.ErrInvalidFormat, "Data da venda deve estar no formato YYYY-MM-DD")
		}
		saleDate = parsed
	}

	paymentStatus := req.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = domain.PaymentStatusPaid
	}

	id, err := s.newID()
	if err != nil {
		return nil, err
	}

	sale, err := s.saleRepo.Create(ctx, &domain.Sale{
		ID:            id,
		OwnerID:       session.OwnerID,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		ServiceName:   strings.TrimSpace(req.ServiceName),
		Amount:        req.Amount.Round(2),
		SaleDate:      saleDate,
		PaymentStatus: paymentStatus,
	})
	if err != nil {
		return nil, writeError(err, ErrDatabaseOperation, id, "Erro ao registrar venda")
	}

	s.invalidate(ctx, session.OwnerID)
	return sale, nil
}
