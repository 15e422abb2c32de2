package domain

import "github.com/shopspring/decimal"

// MoneyScale - количество знаков после запятой для цен и сумм.
const MoneyScale = 2

func init() {
	// Цены отдаём в JSON числом, а не строкой.
	decimal.MarshalJSONWithoutQuotes = true
}

// MaxMoney - наибольшая сумма, которую хранит колонка NUMERIC(10,2).
var MaxMoney = decimal.New(9999999999, -MoneyScale)

// RoundMoney приводит сумму к двум знакам после запятой.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}
