package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

const customerColumns = `id, full_name, date_of_birth, registration_date`

type customerRepository struct {
	tx *sqlx.Tx
}

func (r customerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	customers := make([]domain.Customer, 0)
	if err := r.tx.SelectContext(ctx, &customers, `SELECT `+customerColumns+` FROM customers ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

func (r customerRepository) Get(ctx context.Context, id int64) (domain.Customer, error) {
	var customer domain.Customer
	err := r.tx.GetContext(ctx, &customer, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, domain.ErrCustomerNotFound
		}
		return domain.Customer{}, fmt.Errorf("select customer: %w", err)
	}
	return customer, nil
}

func (r customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	query, args, err := r.tx.BindNamed(`
		INSERT INTO customers (full_name, date_of_birth, registration_date)
		VALUES (:full_name, :date_of_birth, :registration_date)
		RETURNING id
	`, customer)
	if err != nil {
		return fmt.Errorf("bind insert customer: %w", err)
	}
	if err := r.tx.QueryRowxContext(ctx, query, args...).Scan(&customer.ID); err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// Update не трогает registration_date: она задаётся один раз при создании.
func (r customerRepository) Update(ctx context.Context, customer domain.Customer) error {
	res, err := r.tx.NamedExecContext(ctx, `
		UPDATE customers
		SET full_name = :full_name, date_of_birth = :date_of_birth
		WHERE id = :id
	`, customer)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return expectAffected(res, domain.ErrCustomerNotFound)
}

func (r customerRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.tx.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return expectAffected(res, domain.ErrCustomerNotFound)
}

func expectAffected(res sql.Result, notFound error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}

var _ domain.CustomerRepository = customerRepository{}
