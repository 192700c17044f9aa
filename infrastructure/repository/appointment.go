package repository

//go:generate mockgen -source=appointment.go -destination=mocks/appointment.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/business-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
)

const (
	appointmentsTable = "appointments"
)

type AppointmentRepository interface {
	// ListByOwner retorna os agendamentos em ordem de data e horário
	ListByOwner(ctx context.Context, ownerID int, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
	// Create grava o agendamento e incrementa total_appointments do cliente de mesmo nome
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, ownerID int, id string, status domain.AppointmentStatus) error
	Delete(ctx context.Context, ownerID int, id string) error
}

type appointmentRepository struct {
	conn postgres.Conn
}

func NewAppointmentRepository(conn postgres.Conn) AppointmentRepository {
	return &appointmentRepository{
		conn: conn,
	}
}

func (r *appointmentRepository) ListByOwner(ctx context.Context, ownerID int, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	queryBuilder := squirrel.
		Select("id", "owner_id", "customer_name", "customer_email", "service_name", "date", "time", "duration", "status", "notes", "created_at", "updated_at").
		From(appointmentsTable).
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("date ASC", "time ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.From != nil {
		queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"date": filter.From.Format(time.DateOnly)})
	}

	if filter.To != nil {
		queryBuilder = queryBuilder.Where(squirrel.LtOrEq{"date": filter.To.Format(time.DateOnly)})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		appointment := &domain.Appointment{}
		if err := rows.Scan(
			&appointment.ID,
			&appointment.OwnerID,
			&appointment.CustomerName,
			&appointment.CustomerEmail,
			&appointment.ServiceName,
			&appointment.Date,
			&appointment.Time,
			&appointment.Duration,
			&appointment.Status,
			&appointment.Notes,
			&appointment.CreatedAt,
			&appointment.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear agendamento: %w", err)
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return appointments, nil
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	insertSQL, insertArgs, err := squirrel.
		Insert(appointmentsTable).
		Columns("id", "owner_id", "customer_name", "customer_email", "service_name", "date", "time", "duration", "status", "notes").
		Values(
			appointment.ID,
			appointment.OwnerID,
			appointment.CustomerName,
			appointment.CustomerEmail,
			appointment.ServiceName,
			appointment.Date.Format(time.DateOnly),
			appointment.Time,
			appointment.Duration,
			appointment.Status,
			appointment.Notes,
		).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	counterSQL, counterArgs, err := squirrel.
		Update(customersTable).
		Set("total_appointments", squirrel.Expr("total_appointments + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"owner_id": appointment.OwnerID, "name": appointment.CustomerName}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.RunInTransaction(ctx, func(tx postgres.Queryer) error {
		if err := tx.QueryRow(ctx, insertSQL, insertArgs...).Scan(&appointment.CreatedAt, &appointment.UpdatedAt); err != nil {
			return wrapPQError(err)
		}

		if _, err := tx.Exec(ctx, counterSQL, counterArgs...); err != nil {
			return fmt.Errorf("erro ao atualizar contador do cliente: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return appointment, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, ownerID int, id string, status domain.AppointmentStatus) error {
	query, args, err := squirrel.
		Update(appointmentsTable).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"owner_id": ownerID, "id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return checkAffected(result)
}

func (r *appointmentRepository) Delete(ctx context.Context, ownerID int, id string) error {
	query, args, err := squirrel.
		Delete(appointmentsTable).
		Where(squirrel.Eq{"owner_id": ownerID, "id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return checkAffected(result)
}
