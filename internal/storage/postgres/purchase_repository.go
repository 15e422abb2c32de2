package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

const (
	purchaseColumns = `id, purchase_date AS "date", total_cost, customer_id`
	itemColumns     = `id, purchase_id, product_id, quantity`
)

type purchaseRepository struct {
	tx *sqlx.Tx
}

func (r purchaseRepository) List(ctx context.Context) ([]domain.Purchase, error) {
	purchases := make([]domain.Purchase, 0)
	if err := r.tx.SelectContext(ctx, &purchases, `SELECT `+purchaseColumns+` FROM purchases ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	if len(purchases) == 0 {
		return purchases, nil
	}

	ids := make([]int64, 0, len(purchases))
	for _, p := range purchases {
		ids = append(ids, p.ID)
	}
	items, err := r.loadItems(ctx, ids...)
	if err != nil {
		return nil, err
	}

	byPurchase := make(map[int64][]domain.PurchaseItem, len(purchases))
	for _, item := range items {
		byPurchase[item.PurchaseID] = append(byPurchase[item.PurchaseID], item)
	}
	for i := range purchases {
		purchases[i].Items = byPurchase[purchases[i].ID]
		if purchases[i].Items == nil {
			purchases[i].Items = []domain.PurchaseItem{}
		}
	}
	return purchases, nil
}

func (r purchaseRepository) Get(ctx context.Context, id int64) (domain.Purchase, error) {
	var purchase domain.Purchase
	err := r.tx.GetContext(ctx, &purchase, `SELECT `+purchaseColumns+` FROM purchases WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Purchase{}, domain.ErrPurchaseNotFound
		}
		return domain.Purchase{}, fmt.Errorf("select purchase: %w", err)
	}

	items, err := r.loadItems(ctx, id)
	if err != nil {
		return domain.Purchase{}, err
	}
	purchase.Items = items
	return purchase, nil
}

func (r purchaseRepository) Create(ctx context.Context, purchase *domain.Purchase) error {
	err := r.tx.QueryRowxContext(ctx, `
		INSERT INTO purchases (purchase_date, total_cost, customer_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`, purchase.Date, purchase.TotalCost, purchase.CustomerID).Scan(&purchase.ID)
	if err != nil {
		return mapWriteError("insert purchase", err)
	}

	for i := range purchase.Items {
		item := &purchase.Items[i]
		item.PurchaseID = purchase.ID
		if err := r.insertItem(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

func (r purchaseRepository) Update(ctx context.Context, purchase domain.Purchase) error {
	res, err := r.tx.ExecContext(ctx, `
		UPDATE purchases
		SET purchase_date = $2, total_cost = $3, customer_id = $4
		WHERE id = $1
	`, purchase.ID, purchase.Date, purchase.TotalCost, purchase.CustomerID)
	if err != nil {
		return mapWriteError("update purchase", err)
	}
	return expectAffected(res, domain.ErrPurchaseNotFound)
}

func (r purchaseRepository) ApplyItems(ctx context.Context, purchaseID int64, plan domain.ItemsPlan) ([]domain.PurchaseItem, error) {
	if len(plan.Delete) > 0 {
		query, args, err := sqlx.In(`DELETE FROM purchase_items WHERE purchase_id = ? AND id IN (?)`, purchaseID, plan.Delete)
		if err != nil {
			return nil, fmt.Errorf("build delete items query: %w", err)
		}
		if _, err := r.tx.ExecContext(ctx, r.tx.Rebind(query), args...); err != nil {
			return nil, fmt.Errorf("delete purchase items: %w", err)
		}
	}

	for _, item := range plan.Update {
		res, err := r.tx.ExecContext(ctx, `
			UPDATE purchase_items
			SET product_id = $3, quantity = $4
			WHERE id = $1 AND purchase_id = $2
		`, item.ID, purchaseID, item.ProductID, item.Quantity)
		if err != nil {
			return nil, mapWriteError("update purchase item", err)
		}
		if err := expectAffected(res, fmt.Errorf("purchase item %d does not belong to purchase %d", item.ID, purchaseID)); err != nil {
			return nil, err
		}
	}

	for i := range plan.Insert {
		item := plan.Insert[i]
		item.PurchaseID = purchaseID
		if err := r.insertItem(ctx, &item); err != nil {
			return nil, err
		}
	}

	return r.loadItems(ctx, purchaseID)
}

// Delete полагается на ON DELETE CASCADE для позиций.
func (r purchaseRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.tx.ExecContext(ctx, `DELETE FROM purchases WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete purchase: %w", err)
	}
	return expectAffected(res, domain.ErrPurchaseNotFound)
}

func (r purchaseRepository) insertItem(ctx context.Context, item *domain.PurchaseItem) error {
	query, args, err := r.tx.BindNamed(`
		INSERT INTO purchase_items (purchase_id, product_id, quantity)
		VALUES (:purchase_id, :product_id, :quantity)
		RETURNING id
	`, item)
	if err != nil {
		return fmt.Errorf("bind insert purchase item: %w", err)
	}
	if err := r.tx.QueryRowxContext(ctx, query, args...).Scan(&item.ID); err != nil {
		return mapWriteError("insert purchase item", err)
	}
	return nil
}

func (r purchaseRepository) loadItems(ctx context.Context, purchaseIDs ...int64) ([]domain.PurchaseItem, error) {
	query, args, err := sqlx.In(`SELECT `+itemColumns+` FROM purchase_items WHERE purchase_id IN (?) ORDER BY id`, purchaseIDs)
	if err != nil {
		return nil, fmt.Errorf("build items query: %w", err)
	}
	items := make([]domain.PurchaseItem, 0)
	if err := r.tx.SelectContext(ctx, &items, r.tx.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select purchase items: %w", err)
	}
	return items, nil
}

// mapWriteError превращает нарушения внешних ключей в доменные ошибки.
func mapWriteError(operation string, err error) error {
	if constraint, ok := foreignKeyViolation(err); ok {
		switch constraint {
		case fkPurchaseCustomer:
			return domain.ErrCustomerNotFound
		case fkItemProduct:
			return domain.ErrProductNotFound
		}
	}
	return fmt.Errorf("%s: %w", operation, err)
}

var _ domain.PurchaseRepository = purchaseRepository{}
