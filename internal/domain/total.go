package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MissingProductError сообщает о позиции, ссылающейся на несуществующий товар.
type MissingProductError struct {
	ProductID int64
}

func (e *MissingProductError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

func (e *MissingProductError) Unwrap() error { return ErrProductNotFound }

// CalculateTotal считает сумму покупки: Σ quantity × price по текущим ценам.
// Позиция с неизвестным товаром прерывает расчёт с MissingProductError,
// а не считается нулевой, как делала прежняя версия сервиса.
func CalculateTotal(items []PurchaseItem, prices map[int64]decimal.Decimal) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, item := range items {
		price, ok := prices[item.ProductID]
		if !ok {
			return decimal.Zero, &MissingProductError{ProductID: item.ProductID}
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return RoundMoney(total), nil
}

// PriceIndex строит карту id → цена.
func PriceIndex(products []Product) map[int64]decimal.Decimal {
	prices := make(map[int64]decimal.Decimal, len(products))
	for _, p := range products {
		prices[p.ID] = p.Price
	}
	return prices
}
