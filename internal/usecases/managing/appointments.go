package managing

import (
	"context"
	"strings"
	"time"

	"github.com/vfg2006/business-dashboard-api/internal/domain"
	"github.com/vfg2006/business-dashboard-api/pkg/apiErrors"
)

// ListAppointments lista por data e horário; today e upcoming usam o "hoje" do fuso da sessão
func (s *Service) ListAppointments(ctx context.Context, session domain.Session, scope domain.AppointmentScope) ([]*domain.Appointment, error) {
	filter := domain.AppointmentFilter{}
	day := today(session)

	switch scope {
	case domain.AppointmentScopeAll:
	case domain.AppointmentScopeToday:
		filter.From = &day
		filter.To = &day
	case domain.AppointmentScopeUpcoming:
		tomorrow := day.AddDate(0, 0, 1)
		filter.From = &tomorrow
	default:
		return nil, NewManagingError(ErrInvalidScope, apiErrors.ErrInvalidFormat, "Escopo deve ser today ou upcoming")
	}

	appointments, err := s.appointmentRepo.ListByOwner(ctx, session.OwnerID, filter)
	if err != nil {
		return nil, writeError(err, ErrAppointmentNotFound, "", "Erro ao listar agendamentos")
	}
	return appointments, nil
}

// CreateAppointment grava o agendamento como pending
func (s *Service) CreateAppointment(ctx context.Context, session domain.Session, req *domain.CreateAppointmentRequest) (*domain.Appointment, error) {
	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		return nil, NewManagingError(ErrInvalidDate, apiErrors.ErrInvalidFormat, "Data deve estar no formato YYYY-MM-DD")
	}

	if _, err := time.Parse("15:04", req.Time); err != nil {
		return nil, NewManagingError(ErrInvalidDate, apiErrors.ErrInvalidFormat, "Horário deve estar no formato HH:MM")
	}

	id, err := s.newID()
	if err != nil {
		return nil, err
	}

	appointment, err := s.appointmentRepo.Create(ctx, &domain.Appointment{
		ID:            id,
		OwnerID:       session.OwnerID,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerEmail: req.CustomerEmail,
		ServiceName:   strings.TrimSpace(req.ServiceName),
		Date:          date,
		Time:          req.Time,
		Duration:      req.Duration,
		Status:        domain.AppointmentStatusPending,
		Notes:         req.Notes,
	})
	if err != nil {
		return nil, writeError(err, ErrAppointmentNotFound, id, "Erro ao criar agendamento")
	}

	s.invalidate(ctx, session.OwnerID)
	return appointment, nil
}

func (s *Service) UpdateAppointmentStatus(ctx context.Context, session domain.Session, id string, status domain.AppointmentStatus) error {
	if !status.IsValid() {
		return NewManagingErrorWithID(ErrInvalidStatus, apiErrors.ErrInvalidFormat, id, "Status deve ser pending, confirmed, completed ou cancelled")
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, session.OwnerID, id, status); err != nil {
		return writeError(err, ErrAppointmentNotFound, id, "Erro ao atualizar status do agendamento")
	}

	s.invalidate(ctx, session.OwnerID)
	return nil
}

func (s *Service) DeleteAppointment(ctx context.Context, session domain.Session, id string) error {
	if err := s.appointmentRepo.Delete(ctx, session.OwnerID, id); err != nil {
		return writeError(err, ErrAppointmentNotFound, id, "Erro ao remover agendamento")
	}

	s.invalidate(ctx, session.OwnerID)
	return nil
}
