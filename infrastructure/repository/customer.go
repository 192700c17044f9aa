package repository

//go:generate mockgen -source=customer.go -destination=mocks/customer.go -package=mocks

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/business-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
)

const (
	customersTable = "customers"
)

var customerColumns = []string{
	"id", "owner_id", "name", "email", "phone", "service_booked", "total_spent",
	"total_appointments", "status", "join_date", "created_at", "updated_at",
}

type CustomerRepository interface {
	// ListByOwner lista os clientes do dono; search filtra por nome ou email
	ListByOwner(ctx context.Context, ownerID int, search string) ([]*domain.Customer, error)
	GetByID(ctx context.Context, ownerID int, id string) (*domain.Customer, error)
	Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, ownerID int, id string) error
}

type customerRepository struct {
	conn postgres.Conn
}

func NewCustomerRepository(conn postgres.Conn) CustomerRepository {
	return &customerRepository{
		conn: conn,
	}
}

func (r *customerRepository) ListByOwner(ctx context.Context, ownerID int, search string) ([]*domain.Customer, error) {
	queryBuilder := squirrel.
		Select(customerColumns...).
		From(customersTable).
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("join_date ASC", "name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if term := strings.TrimSpace(search); term != "" {
		pattern := "%" + term + "%"
		queryBuilder = queryBuilder.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"email": pattern},
		})
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

	customers := make([]*domain.Customer, 0)
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear cliente: %w", err)
		}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return customers, nil
}

func (r *customerRepository) GetByID(ctx context.Context, ownerID int, id string) (*domain.Customer, error) {
	query, args, err := squirrel.
		Select(customerColumns...).
		From(customersTable).
		Where(squirrel.Eq{"owner_id": ownerID, "id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	customer, err := scanCustomer(r.conn.QueryRow(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao escanear cliente: %w", err)
	}

	return customer, nil
}

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	query, args, err := squirrel.
		Insert(customersTable).
		Columns("id", "owner_id", "name", "email", "phone", "service_booked", "total_spent", "total_appointments", "status", "join_date").
		Values(
			customer.ID,
			customer.OwnerID,
			customer.Name,
			customer.Email,
			customer.Phone,
			customer.ServiceBooked,
			customer.TotalSpent.String(),
			customer.TotalAppointments,
			customer.Status,
			customer.JoinDate.Format("2006-01-02"),
		).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(ctx, query, args...).Scan(&customer.CreatedAt, &customer.UpdatedAt)
	if err != nil {
		return nil, wrapPQError(err)
	}

	return customer, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	query, args, err := squirrel.
		Update(customersTable).
		Set("name", customer.Name).
		Set("email", customer.Email).
		Set("phone", customer.Phone).
		Set("service_booked", customer.ServiceBooked).
		Set("status", customer.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"owner_id": customer.OwnerID, "id": customer.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return wrapPQError(err)
	}

	return checkAffected(result)
}

func (r *customerRepository) Delete(ctx context.Context, ownerID int, id string) error {
	query, args, err := squirrel.
		Delete(customersTable).
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (*domain.Customer, error) {
	customer := &domain.Customer{}
	var totalSpent sql.NullString

	err := row.Scan(
		&customer.ID,
		&customer.OwnerID,
		&customer.Name,
		&customer.Email,
		&customer.Phone,
		&customer.ServiceBooked,
		&totalSpent,
		&customer.TotalAppointments,
		&customer.Status,
		&customer.JoinDate,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	customer.TotalSpent, customer.Malformed = parseNumeric(totalSpent, customersTable, customer.ID, "total_spent")
	return customer, nil
}
