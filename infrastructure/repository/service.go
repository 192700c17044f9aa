package repository

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/business-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
)

const (
	servicesTable = "services"
)

var serviceColumns = []string{
	"id", "owner_id", "name", "description", "price", "duration", "category", "active", "created_at", "updated_at",
}

type ServiceRepository interface {
	// ListByOwner retorna o catálogo ordenado por nome
	ListByOwner(ctx context.Context, ownerID int) ([]*domain.Service, error)
	GetByID(ctx context.Context, ownerID int, id string) (*domain.Service, error)
	Create(ctx context.Context, service *domain.Service) (*domain.Service, error)
	Update(ctx context.Context, service *domain.Service) error
	Delete(ctx context.Context, ownerID int, id string) error
}

type serviceRepository struct {
	conn postgres.Conn
}

func NewServiceRepository(conn postgres.Conn) ServiceRepository {
	return &serviceRepository{
		conn: conn,
	}
}

func (r *serviceRepository) ListByOwner(ctx context.Context, ownerID int) ([]*domain.Service, error) {
	query, args, err := squirrel.
		Select(serviceColumns...).
		From(servicesTable).
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear serviço: %w", err)
		}
		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return services, nil
}

func (r *serviceRepository) GetByID(ctx context.Context, ownerID int, id string) (*domain.Service, error) {
	query, args, err := squirrel.
		Select(serviceColumns...).
		From(servicesTable).
		Where(squirrel.Eq{"owner_id": ownerID, "id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	service, err := scanService(r.conn.QueryRow(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao escanear serviço: %w", err)
	}

	return service, nil
}

func (r *serviceRepository) Create(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	query, args, err := squirrel.
		Insert(servicesTable).
		Columns("id", "owner_id", "name", "description", "price", "duration", "category", "active").
		Values(
			service.ID,
			service.OwnerID,
			service.Name,
			service.Description,
			service.Price.String(),
			service.Duration,
			service.Category,
			service.Active,
		).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(ctx, query, args...).Scan(&service.CreatedAt, &service.UpdatedAt)
	if err != nil {
		return nil, wrapPQError(err)
	}

	return service, nil
}

func (r *serviceRepository) Update(ctx context.Context, service *domain.Service) error {
	query, args, err := squirrel.
		Update(servicesTable).
		Set("name", service.Name).
		Set("description", service.Description).
		Set("price", service.Price.String()).
		Set("duration", service.Duration).
		Set("category", service.Category).
		Set("active", service.Active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"owner_id": service.OwnerID, "id": service.ID}).
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

func (r *serviceRepository) Delete(ctx context.Context, ownerID int, id string) error {
	query, args, err := squirrel.
		Delete(servicesTable).
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

func scanService(row rowScanner) (*domain.Service, error) {
	service := &domain.Service{}
	var price sql.NullString

	err := row.Scan(
		&service.ID,
		&service.OwnerID,
		&service.Name,
		&service.Description,
		&price,
		&service.Duration,
		&service.Category,
		&service.Active,
		&service.CreatedAt,
		&service.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	service.Price, service.Malformed = parseNumeric(price, servicesTable, service.ID, "price")
	return service, nil
}
