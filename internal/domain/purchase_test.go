package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestPurchaseUpdate_ApplyTo(t *testing.T) {
	p := Purchase{ID: 1, Date: NewDate(2024, 1, 1), CustomerID: 1, TotalCost: decimal.NewFromInt(25)}

	newDate := NewDate(2024, 2, 2)
	PurchaseUpdate{Date: &newDate}.ApplyTo(&p)
	require.True(t, p.Date.Equal(newDate))
	require.Equal(t, int64(1), p.CustomerID)

	customerID := int64(7)
	PurchaseUpdate{CustomerID: &customerID}.ApplyTo(&p)
	require.Equal(t, int64(7), p.CustomerID)
	require.True(t, p.TotalCost.Equal(decimal.NewFromInt(25)))
}

func TestPurchaseUpdate_ItemsChanged(t *testing.T) {
	var absent PurchaseUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-01-01"}`), &absent))
	require.False(t, absent.ItemsChanged())

	var present PurchaseUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"items":[]}`), &present))
	require.True(t, present.ItemsChanged())
}

func TestCustomerUpdate_ApplyTo(t *testing.T) {
	c := Customer{ID: 1, FullName: "Anna", DateOfBirth: NewDate(1990, 3, 15), RegistrationDate: NewDate(2024, 1, 1)}

	name := "Anna K."
	CustomerUpdate{FullName: &name}.ApplyTo(&c)

	require.Equal(t, "Anna K.", c.FullName)
	require.True(t, c.DateOfBirth.Equal(NewDate(1990, 3, 15)))
	require.True(t, c.RegistrationDate.Equal(NewDate(2024, 1, 1)))
}

func TestProductUpdate_ApplyTo(t *testing.T) {
	p := Product{ID: 1, Name: "Tea", Category: "Drinks", SKU: "T-1", Price: decimal.NewFromInt(3)}

	price := decimal.RequireFromString("4.567")
	ProductUpdate{Price: &price}.ApplyTo(&p)

	require.Equal(t, "Tea", p.Name)
	require.True(t, p.Price.Equal(decimal.RequireFromString("4.57")))
}

func TestProductIDs(t *testing.T) {
	ids := ProductIDs([]PurchaseItemInput{
		{ProductID: 3},
		{ProductID: 1},
		{ProductID: 3},
	})
	require.Equal(t, []int64{3, 1}, ids)
}

func TestProduct_PriceJSONNumber(t *testing.T) {
	data, err := json.Marshal(Product{ID: 1, Price: decimal.RequireFromString("10.50")})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.IsType(t, float64(0), raw["price"])
	require.InDelta(t, 10.5, raw["price"], 0.0001)
}

func TestErrors(t *testing.T) {
	require.True(t, IsNotFound(ErrCustomerNotFound))
	require.True(t, IsNotFound(&MissingProductError{ProductID: 1}))
	require.False(t, IsNotFound(ErrProductInUse))

	verr := NewValidationError(FieldError{Field: "full_name", Message: "must not be empty"})
	got, ok := AsValidation(verr)
	require.True(t, ok)
	require.Len(t, got.Fields, 1)
	require.Contains(t, verr.Error(), "full_name")
}
