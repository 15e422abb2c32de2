package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

const productColumns = `id, name, category, sku, price`

type productRepository struct {
	tx *sqlx.Tx
}

func (r productRepository) List(ctx context.Context) ([]domain.Product, error) {
	products := make([]domain.Product, 0)
	if err := r.tx.SelectContext(ctx, &products, `SELECT `+productColumns+` FROM products ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (r productRepository) Get(ctx context.Context, id int64) (domain.Product, error) {
	var product domain.Product
	err := r.tx.GetContext(ctx, &product, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("select product: %w", err)
	}
	return product, nil
}

func (r productRepository) GetMany(ctx context.Context, ids []int64) ([]domain.Product, error) {
	products := make([]domain.Product, 0, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	query, args, err := sqlx.In(`SELECT `+productColumns+` FROM products WHERE id IN (?) ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("build products query: %w", err)
	}
	if err := r.tx.SelectContext(ctx, &products, r.tx.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	return products, nil
}

func (r productRepository) Create(ctx context.Context, product *domain.Product) error {
	query, args, err := r.tx.BindNamed(`
		INSERT INTO products (name, category, sku, price)
		VALUES (:name, :category, :sku, :price)
		RETURNING id
	`, product)
	if err != nil {
		return fmt.Errorf("bind insert product: %w", err)
	}
	if err := r.tx.QueryRowxContext(ctx, query, args...).Scan(&product.ID); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r productRepository) Update(ctx context.Context, product domain.Product) error {
	res, err := r.tx.NamedExecContext(ctx, `
		UPDATE products
		SET name = :name, category = :category, sku = :sku, price = :price
		WHERE id = :id
	`, product)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return expectAffected(res, domain.ErrProductNotFound)
}

// Delete опирается на ограничение ON DELETE RESTRICT у purchase_items.
func (r productRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.tx.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if constraint, ok := foreignKeyViolation(err); ok && constraint == fkItemProduct {
			return domain.ErrProductInUse
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return expectAffected(res, domain.ErrProductNotFound)
}

var _ domain.ProductRepository = productRepository{}
