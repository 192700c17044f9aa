package managing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/business-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
	"github.com/vfg2006/business-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/business-dashboard-api/pkg/utils"
	"go.uber.org/mock/gomock"
)

func TestService_ListAppointments(t *testing.T) {
	today := utils.Today(testSession.Location)
	tomorrow := today.AddDate(0, 0, 1)

	tests := []struct {
		name    string
		scope   domain.AppointmentScope
		filter  *domain.AppointmentFilter
		wantErr error
	}{
		{name: "Todos", scope: domain.AppointmentScopeAll, filter: &domain.AppointmentFilter{}},
		{name: "Hoje", scope: domain.AppointmentScopeToday, filter: &domain.AppointmentFilter{From: &today, To: &today}},
		{name: "Próximos começam amanhã", scope: domain.AppointmentScopeUpcoming, filter: &domain.AppointmentFilter{From: &tomorrow}},
		{name: "Escopo inválido", scope: domain.AppointmentScope("yesterday"), wantErr: ErrInvalidScope},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			if tt.filter != nil {
				f.appointmentRepo.EXPECT().ListByOwner(gomock.Any(), 7, *tt.filter).
					Return([]*domain.Appointment{{ID: "a1"}}, nil)
			}

			appointments, err := f.service.ListAppointments(context.Background(), testSession, tt.scope)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, appointments, 1)
		})
	}
}

func TestService_CreateAppointment(t *testing.T) {
	tests := []struct {
		name     string
		req      *domain.CreateAppointmentRequest
		setup    func(f *fixture)
		validate func(t *testing.T, f *fixture, appointment *domain.Appointment, err error)
	}{
		{
			name: "Agendamento criado como pending",
			req: &domain.CreateAppointmentRequest{
				CustomerName: "Sarah Johnson",
				ServiceName:  "Hair",
				Date:         "2024-03-15",
				Time:         "14:30",
				Duration:     60,
			},
			setup: func(f *fixture) {
				f.appointmentRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) { return a, nil })
			},
			validate: func(t *testing.T, f *fixture, appointment *domain.Appointment, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.AppointmentStatusPending, appointment.Status)
				assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), appointment.Date)
				assert.Equal(t, "14:30", appointment.Time)
				assert.Equal(t, []int{7}, f.invalidator.calls)
			},
		},
		{
			name:  "Data inválida",
			req:   &domain.CreateAppointmentRequest{CustomerName: "Sarah", ServiceName: "Hair", Date: "15/03/2024", Time: "14:30", Duration: 60},
			setup: func(f *fixture) {},
			validate: func(t *testing.T, f *fixture, appointment *domain.Appointment, err error) {
				assert.ErrorIs(t, err, ErrInvalidDate)
				assert.Equal(t, apiErrors.ErrInvalidFormat, managingCode(t, err))
			},
		},
		{
			name:  "Horário inválido",
			req:   &domain.CreateAppointmentRequest{CustomerName: "Sarah", ServiceName: "Hair", Date: "2024-03-15", Time: "25:00", Duration: 60},
			setup: func(f *fixture) {},
			validate: func(t *testing.T, f *fixture, appointment *domain.Appointment, err error) {
				assert.ErrorIs(t, err, ErrInvalidDate)
				assert.Empty(t, f.invalidator.calls)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)
			appointment, err := f.service.CreateAppointment(context.Background(), testSession, tt.req)
			tt.validate(t, f, appointment, err)
		})
	}
}

func TestService_UpdateAppointmentStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   domain.AppointmentStatus
		setup    func(f *fixture)
		wantErr  error
		wantCode string
	}{
		{
			name:   "Confirmado",
			status: domain.AppointmentStatusConfirmed,
			setup: func(f *fixture) {
				f.appointmentRepo.EXPECT().UpdateStatus(gomock.Any(), 7, "a1", domain.AppointmentStatusConfirmed).Return(nil)
			},
		},
		{
			name:     "Status desconhecido",
			status:   domain.AppointmentStatus("no-show"),
			setup:    func(f *fixture) {},
			wantErr:  ErrInvalidStatus,
			wantCode: apiErrors.ErrInvalidFormat,
		},
		{
			name:   "Agendamento inexistente",
			status: domain.AppointmentStatusCancelled,
			setup: func(f *fixture) {
				f.appointmentRepo.EXPECT().UpdateStatus(gomock.Any(), 7, "a1", domain.AppointmentStatusCancelled).Return(repository.ErrNotFound)
			},
			wantErr:  ErrAppointmentNotFound,
			wantCode: apiErrors.ErrResourceNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			err := f.service.UpdateAppointmentStatus(context.Background(), testSession, "a1", tt.status)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.wantCode, managingCode(t, err))
				assert.Empty(t, f.invalidator.calls)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []int{7}, f.invalidator.calls)
		})
	}
}
