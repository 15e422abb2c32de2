package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgForeignKeyViolation = "23503"

	fkPurchaseCustomer = "purchases_customer_id_fkey"
	fkItemProduct      = "purchase_items_product_id_fkey"
)

// foreignKeyViolation возвращает имя нарушенного внешнего ключа.
func foreignKeyViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}
