package domain

import "github.com/shopspring/decimal"

// Product - позиция каталога.
type Product struct {
	ID       int64           `json:"id" db:"id"`
	Name     string          `json:"name" db:"name"`
	Category string          `json:"category" db:"category"`
	SKU      string          `json:"sku" db:"sku"`
	Price    decimal.Decimal `json:"price" db:"price"`
}

// ProductCreate - поля нового товара.
type ProductCreate struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	SKU      string          `json:"sku"`
	Price    decimal.Decimal `json:"price"`
}

// ProductUpdate - частичное обновление товара.
type ProductUpdate struct {
	Name     *string          `json:"name"`
	Category *string          `json:"category"`
	SKU      *string          `json:"sku"`
	Price    *decimal.Decimal `json:"price"`
}

// ApplyTo переносит заданные поля на существующую запись.
func (u ProductUpdate) ApplyTo(p *Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.SKU != nil {
		p.SKU = *u.SKU
	}
	if u.Price != nil {
		p.Price = RoundMoney(*u.Price)
	}
}
