package repository

//go:generate mockgen -source=sale.go -destination=mocks/sale.go -package=mocks

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/business-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
)

const (
	salesTable = "sales"
)

type SaleRepository interface {
	// ListByOwner retorna o livro de vendas em ordem de data
	ListByOwner(ctx context.Context, ownerID int) ([]*domain.Sale, error)
	// Create grava a venda e soma o valor em total_spent do cliente de mesmo nome
	Create(ctx context.Context, sale *domain.Sale) (*domain.Sale, error)
}

type saleRepository struct {
	conn postgres.Conn
}

func NewSaleRepository(conn postgres.Conn) SaleRepository {
	return &saleRepository{
		conn: conn,
	}
}

func (r *saleRepository) ListByOwner(ctx context.Context, ownerID int) ([]*domain.Sale, error) {
	query, args, err := squirrel.
		Select("id", "owner_id", "customer_name", "service_name", "amount", "sale_date", "payment_status", "created_at").
		From(salesTable).
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("sale_date ASC", "created_at ASC").
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

	sales := make([]*domain.Sale, 0)
	for rows.Next() {
		sale := &domain.Sale{}
		var amount sql.NullString

		if err := rows.Scan(
			&sale.ID,
			&sale.OwnerID,
			&sale.CustomerName,
			&sale.ServiceName,
			&amount,
			&sale.SaleDate,
			&sale.PaymentStatus,
			&sale.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear venda: %w", err)
		}

		sale.Amount, sale.Malformed = parseNumeric(amount, salesTable, sale.ID, "amount")
		sales = append(sales, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return sales, nil
}

func (r *saleRepository) Create(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	insertSQL, insertArgs, err := squirrel.
		Insert(salesTable).
		Columns("id", "owner_id", "customer_name", "service_name", "amount", "sale_date", "payment_status").
		Values(
			sale.ID,
			sale.OwnerID,
			sale.CustomerName,
			sale.ServiceName,
			sale.Amount.String(),
			sale.SaleDate.Format(time.DateOnly),
			sale.PaymentStatus,
		).
		Suffix("RETURNING created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	spentSQL, spentArgs, err := squirrel.
		Update(customersTable).
		Set("total_spent", squirrel.Expr("total_spent + ?::numeric", sale.Amount.String())).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"owner_id": sale.OwnerID, "name": sale.CustomerName}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.RunInTransaction(ctx, func(tx postgres.Queryer) error {
		if err := tx.QueryRow(ctx, insertSQL, insertArgs...).Scan(&sale.CreatedAt); err != nil {
			return wrapPQError(err)
		}

		if _, err := tx.Exec(ctx, spentSQL, spentArgs...); err != nil {
			return fmt.Errorf("erro ao atualizar total gasto do cliente: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return sale, nil
}
