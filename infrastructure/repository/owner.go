package repository

//go:generate mockgen -source=owner.go -destination=mocks/owner.go -package=mocks

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/business-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
)

const (
	ownersTable = "owners"
)

var ownerColumns = []string{
	"id", "name", "email", "password_hash", "business_name", "timezone", "active", "role_id", "created_at", "updated_at",
}

type OwnerRepository interface {
	CreateOwner(ctx context.Context, owner *domain.Owner) (*domain.Owner, error)
	UpdateOwner(ctx context.Context, owner *domain.Owner) error
	GetOwnerByEmail(ctx context.Context, email string) (*domain.Owner, error)
	GetOwnerByID(ctx context.Context, ownerID int) (*domain.Owner, error)
	ListOwners(ctx context.Context, onlyActive bool) ([]*domain.Owner, error)
}

type ownerRepository struct {
	conn postgres.Conn
}

func NewOwnerRepository(conn postgres.Conn) OwnerRepository {
	return &ownerRepository{
		conn: conn,
	}
}

func (r *ownerRepository) CreateOwner(ctx context.Context, owner *domain.Owner) (*domain.Owner, error) {
	query, args, err := squirrel.
		Insert(ownersTable).
		Columns("name", "email", "password_hash", "business_name", "timezone", "active", "role_id").
		Values(owner.Name, owner.Email, owner.PasswordHash, owner.BusinessName, owner.Timezone, owner.Active, owner.RoleID).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.conn.QueryRow(ctx, query, args...).Scan(&owner.ID, &owner.CreatedAt, &owner.UpdatedAt)
	if err != nil {
		return nil, wrapPQError(err)
	}

	return owner, nil
}

func (r *ownerRepository) UpdateOwner(ctx context.Context, owner *domain.Owner) error {
	queryBuilder := squirrel.
		Update(ownersTable).
		Set("active", owner.Active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": owner.ID})

	if owner.Name != "" {
		queryBuilder = queryBuilder.Set("name", owner.Name)
	}

	if owner.Email != "" {
		queryBuilder = queryBuilder.Set("email", owner.Email)
	}

	if owner.PasswordHash != "" {
		queryBuilder = queryBuilder.Set("password_hash", owner.PasswordHash)
	}

	if owner.BusinessName != "" {
		queryBuilder = queryBuilder.Set("business_name", owner.BusinessName)
	}

	if owner.Timezone != "" {
		queryBuilder = queryBuilder.Set("timezone", owner.Timezone)
	}

	if owner.RoleID != 0 {
		queryBuilder = queryBuilder.Set("role_id", owner.RoleID)
	}

	if owner.Deleted {
		queryBuilder = queryBuilder.Set("deleted", true)
		queryBuilder = queryBuilder.Set("deleted_at", owner.DeletedAt)
	}

	query, args, err := queryBuilder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return err
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return wrapPQError(err)
	}

	return checkAffected(result)
}

func (r *ownerRepository) GetOwnerByEmail(ctx context.Context, email string) (*domain.Owner, error) {
	return r.getOwner(ctx, squirrel.Eq{"email": email, "deleted": false})
}

func (r *ownerRepository) GetOwnerByID(ctx context.Context, ownerID int) (*domain.Owner, error) {
	return r.getOwner(ctx, squirrel.Eq{"id": ownerID, "deleted": false})
}

func (r *ownerRepository) getOwner(ctx context.Context, where squirrel.Eq) (*domain.Owner, error) {
	query, args, err := squirrel.
		Select(ownerColumns...).
		From(ownersTable).
		Where(where).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	owner, err := scanOwner(r.conn.QueryRow(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return owner, nil
}

func (r *ownerRepository) ListOwners(ctx context.Context, onlyActive bool) ([]*domain.Owner, error) {
	queryBuilder := squirrel.
		Select(ownerColumns...).
		From(ownersTable).
		Where(squirrel.Eq{"deleted": false}).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if onlyActive {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	owners := make([]*domain.Owner, 0)
	for rows.Next() {
		owner, err := scanOwner(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear dono: %w", err)
		}
		owner.PasswordHash = ""
		owners = append(owners, owner)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return owners, nil
}

func scanOwner(row rowScanner) (*domain.Owner, error) {
	owner := &domain.Owner{}
	err := row.Scan(
		&owner.ID,
		&owner.Name,
		&owner.Email,
		&owner.PasswordHash,
		&owner.BusinessName,
		&owner.Timezone,
		&owner.Active,
		&owner.RoleID,
		&owner.CreatedAt,
		&owner.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return owner, nil
}
