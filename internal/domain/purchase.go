package domain

import "github.com/shopspring/decimal"

// PurchaseItem - строка покупки: товар и количество.
type PurchaseItem struct {
	ID         int64 `json:"id" db:"id"`
	PurchaseID int64 `json:"-" db:"purchase_id"`
	ProductID  int64 `json:"product_id" db:"product_id"`
	Quantity   int   `json:"quantity" db:"quantity"`
}

// Purchase - одна покупка клиента с вычисленной итоговой суммой.
type Purchase struct {
	ID         int64           `json:"id" db:"id"`
	Date       Date            `json:"date" db:"date"`
	TotalCost  decimal.Decimal `json:"total_cost" db:"total_cost"`
	CustomerID int64           `json:"customer_id" db:"customer_id"`
	Items      []PurchaseItem  `json:"items" db:"-"`
}

// PurchaseItemInput - желаемая строка покупки.
// ID == 0 означает новую строку, иначе - обновление существующей.
type PurchaseItemInput struct {
	ID        int64 `json:"id,omitempty"`
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// PurchaseCreate - данные для оформления покупки.
type PurchaseCreate struct {
	CustomerID int64               `json:"customer_id"`
	Items      []PurchaseItemInput `json:"items"`
}

// PurchaseUpdate - частичное обновление покупки.
// Items == nil оставляет позиции и сумму без изменений;
// непустой список сверяется с текущими позициями по ID.
type PurchaseUpdate struct {
	Date       *Date               `json:"date"`
	CustomerID *int64              `json:"customer_id"`
	Items      []PurchaseItemInput `json:"items"`
}

// ApplyTo переносит скалярные поля; позиции сверяются отдельно через ReconcileItems.
func (u PurchaseUpdate) ApplyTo(p *Purchase) {
	if u.Date != nil {
		p.Date = *u.Date
	}
	if u.CustomerID != nil {
		p.CustomerID = *u.CustomerID
	}
}

// ItemsChanged сообщает, передан ли новый набор позиций.
func (u PurchaseUpdate) ItemsChanged() bool {
	return u.Items != nil
}

// ProductIDs возвращает уникальные идентификаторы товаров в порядке появления.
func ProductIDs[T interface{ productID() int64 }](items []T) []int64 {
	seen := make(map[int64]struct{}, len(items))
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		id := item.productID()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

func (i PurchaseItem) productID() int64      { return i.ProductID }
func (i PurchaseItemInput) productID() int64 { return i.ProductID }
