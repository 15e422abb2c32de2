package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

type reportRepository struct {
	tx *sqlx.Tx
}

func (r reportRepository) BirthdayCelebrants(ctx context.Context, on domain.Date) ([]domain.Customer, error) {
	customers := make([]domain.Customer, 0)
	err := r.tx.SelectContext(ctx, &customers, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE EXTRACT(MONTH FROM date_of_birth) = $1
		  AND EXTRACT(DAY FROM date_of_birth) = $2
		ORDER BY id
	`, int(on.Month()), on.Day())
	if err != nil {
		return nil, fmt.Errorf("select birthday celebrants: %w", err)
	}
	return customers, nil
}

func (r reportRepository) RecentBuyers(ctx context.Context, cutoff domain.Date) ([]domain.RecentBuyer, error) {
	buyers := make([]domain.RecentBuyer, 0)
	err := r.tx.SelectContext(ctx, &buyers, `
		SELECT c.id AS customer_id, c.full_name, MAX(p.purchase_date) AS last_purchase_date
		FROM purchases p
		JOIN customers c ON c.id = p.customer_id
		WHERE p.purchase_date >= $1
		GROUP BY c.id, c.full_name
		ORDER BY c.id
	`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("select recent buyers: %w", err)
	}
	return buyers, nil
}

// PopularCategories сортирует категории по байтам (COLLATE "C"), как и in-memory хранилище.
func (r reportRepository) PopularCategories(ctx context.Context, customerID int64) ([]domain.CategoryUnits, error) {
	categories := make([]domain.CategoryUnits, 0)
	err := r.tx.SelectContext(ctx, &categories, `
		SELECT pr.category, SUM(pi.quantity)::BIGINT AS total_units
		FROM purchase_items pi
		JOIN purchases p ON p.id = pi.purchase_id
		JOIN products pr ON pr.id = pi.product_id
		WHERE p.customer_id = $1
		GROUP BY pr.category
		ORDER BY total_units DESC, pr.category COLLATE "C" ASC
	`, customerID)
	if err != nil {
		return nil, fmt.Errorf("select popular categories: %w", err)
	}
	return categories, nil
}

var _ domain.ReportRepository = reportRepository{}
