package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/storage/memory"
)

type fixture struct {
	customer domain.Customer
	tea      domain.Product
	cake     domain.Product
	purchase domain.Purchase
}

func seed(t *testing.T, store *memory.Store) fixture {
	t.Helper()

	var f fixture
	err := store.Do(context.Background(), func(ctx context.Context, repos domain.Repositories) error {
		f.customer = domain.Customer{FullName: "Anna", DateOfBirth: domain.NewDate(1990, 3, 15), RegistrationDate: domain.NewDate(2024, 1, 1)}
		if err := repos.Customers().Create(ctx, &f.customer); err != nil {
			return err
		}
		f.tea = domain.Product{Name: "Tea", Category: "Drinks", SKU: "T-1", Price: decimal.NewFromInt(10)}
		if err := repos.Products().Create(ctx, &f.tea); err != nil {
			return err
		}
		f.cake = domain.Product{Name: "Cake", Category: "Bakery", SKU: "C-1", Price: decimal.NewFromInt(5)}
		if err := repos.Products().Create(ctx, &f.cake); err != nil {
			return err
		}
		f.purchase = domain.Purchase{
			Date:       domain.NewDate(2024, 3, 1),
			CustomerID: f.customer.ID,
			TotalCost:  decimal.NewFromInt(25),
			Items: []domain.PurchaseItem{
				{ProductID: f.tea.ID, Quantity: 2},
				{ProductID: f.cake.ID, Quantity: 1},
			},
		}
		return repos.Purchases().Create(ctx, &f.purchase)
	})
	require.NoError(t, err)
	return f
}

func TestStore_CreateAssignsIDs(t *testing.T) {
	store := memory.NewStore()
	f := seed(t, store)

	require.Equal(t, int64(1), f.customer.ID)
	require.Equal(t, int64(1), f.tea.ID)
	require.Equal(t, int64(2), f.cake.ID)
	require.Equal(t, int64(1), f.purchase.ID)
	for _, item := range f.purchase.Items {
		require.NotZero(t, item.ID)
		require.Equal(t, f.purchase.ID, item.PurchaseID)
	}

	err := store.Do(context.Background(), func(ctx context.Context, repos domain.Repositories) error {
		stored, err := repos.Purchases().Get(ctx, f.purchase.ID)
		require.NoError(t, err)
		require.Len(t, stored.Items, 2)
		require.True(t, stored.TotalCost.Equal(decimal.NewFromInt(25)))
		return nil
	})
	require.NoError(t, err)
}

func TestStore_RollbackOnError(t *testing.T) {
	store := memory.NewStore()
	f := seed(t, store)
	boom := errors.New("boom")

	err := store.Do(context.Background(), func(ctx context.Context, repos domain.Repositories) error {
		renamed := f.customer
		renamed.FullName = "Changed"
		require.NoError(t, repos.Customers().Update(ctx, renamed))
		return boom
	})
	require.ErrorIs(t, err, boom)

	err = store.Do(context.Background(), func(ctx context.Context, repos domain.Repositories) error {
		stored, err := repos.Customers().Get(ctx, f.customer.ID)
		require.NoError(t, err)
		require.Equal(t, "Anna", stored.FullName)
		return nil
	})
	require.NoError(t, err)
}

func TestStore_CanceledContext(t *testing.T) {
	store := memory.NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := store.Do(ctx, func(context.Context, domain.Repositories) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, called)
}

func TestStore_NotFound(t *testing.T) {
	store := memory.NewStore()

	err := store.Do(context.Background(), func(ctx context.Context, repos domain.Repositories) error {
		_, err := repos.Customers().Get(ctx, 42)
		require.ErrorIs(t, err, domain.ErrCustomerNotFound)
		_, err = repos.Products().Get(ctx, 42)
		require.ErrorIs(t, err, domain.ErrProductNotFound)
		_, err = repos.Purchases().Get(ctx, 42)
		require.ErrorIs(t, err, domain.ErrPurchaseNotFound)
		require.ErrorIs(t, repos.Customers().Delete(ctx, 42), domain.ErrCustomerNotFound)
		require.ErrorIs(t, repos.Purchases().Update(ctx, domain.Purchase{ID: 42}), domain.ErrPurchaseNotFound)
		return nil
	})
	require.NoError(t, err)
}

func TestStore_CustomerDeleteCascades(t *testing.T) {
	store := memory.NewStore()
	f := seed(t, store)

	err := store.Do(context.Background(), func(ctx context.Context, repos domain.Repositories) error {
		require.NoError(t, repos.Customers().Delete(ctx, f.customer.ID))

		purchases, err := repos.Purchases().List(ctx)
		require.NoError(t, err)
		require.Empty(t, purchases)

		// Позиции удалены вместе с покупкой, поэтому товар снова можно удалить.
		require.NoError(t, repos.Products().Delete(ctx, f.tea.ID))
		return nil
	})
	require.NoError(t, err)
}

func TestStore_ProductInUse(t *testing.T) {
	store := memory.NewStore()
	f := seed(t, store)

	err := store.Do(context.Background(), func(ctx context.Context, repos domain.Repositories) error {
		return repos.Products().Delete(ctx, f.tea.ID)
	})
	require.ErrorIs(t, err, domain.ErrProductInUse)
}

func TestStore_ApplyItems(t *testing.T) {
	store := memory.NewStore()
	f := seed(t, store)

	var teaItem domain.PurchaseItem
	for _, item := range f.purchase.Items {
		if item.ProductID == f.tea.ID {
			teaItem = item
		}
	}

	err := store.Do(context.Background(), func(ctx context.Context, repos domain.Repositories) error {
		current, err := repos.Purchases().Get(ctx, f.purchase.ID)
		require.NoError(t, err)

		plan := domain.ReconcileItems(f.purchase.ID, current.Items, []domain.PurchaseItemInput{
			{ID: teaItem.ID, ProductID: f.tea.ID, Quantity: 1},
		})
		items, err := repos.Purchases().ApplyItems(ctx, f.purchase.ID, plan)
		require.NoError(t, err)
		require.Equal(t, []domain.PurchaseItem{
			{ID: teaItem.ID, PurchaseID: f.purchase.ID, ProductID: f.tea.ID, Quantity: 1},
		}, items)
		return nil
	})
	require.NoError(t, err)

	err = store.Do(context.Background(), func(ctx context.Context, repos domain.Repositories) error {
		require.NoError(t, repos.Products().Delete(ctx, f.cake.ID))
		return nil
	})
	require.NoError(t, err)
}

func TestStore_ApplyItemsUnknownProduct(t *testing.T) {
	store := memory.NewStore()
	f := seed(t, store)

	err := store.Do(context.Background(), func(ctx context.Context, repos domain.Repositories) error {
		_, err := repos.Purchases().ApplyItems(ctx, f.purchase.ID, domain.ItemsPlan{
			Insert: []domain.PurchaseItem{{ProductID: 999, Quantity: 1}},
		})
		return err
	})
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestStore_Reports(t *testing.T) {
	store := memory.NewStore()
	f := seed(t, store)

	err := store.Do(context.Background(), func(ctx context.Context, repos domain.Repositories) error {
		celebrants, err := repos.Reports().BirthdayCelebrants(ctx, domain.NewDate(2025, 3, 15))
		require.NoError(t, err)
		require.Len(t, celebrants, 1)
		require.Equal(t, f.customer.ID, celebrants[0].ID)

		buyers, err := repos.Reports().RecentBuyers(ctx, domain.NewDate(2024, 2, 25))
		require.NoError(t, err)
		require.Len(t, buyers, 1)
		require.Equal(t, "Anna", buyers[0].FullName)

		buyers, err = repos.Reports().RecentBuyers(ctx, domain.NewDate(2024, 3, 2))
		require.NoError(t, err)
		require.Empty(t, buyers)

		categories, err := repos.Reports().PopularCategories(ctx, f.customer.ID)
		require.NoError(t, err)
		require.Equal(t, []domain.CategoryUnits{
			{Category: "Drinks", TotalUnits: 2},
			{Category: "Bakery", TotalUnits: 1},
		}, categories)

		_, err = repos.Reports().PopularCategories(ctx, 99)
		require.ErrorIs(t, err, domain.ErrCustomerNotFound)
		return nil
	})
	require.NoError(t, err)
}

func TestStore_GetManySkipsMissing(t *testing.T) {
	store := memory.NewStore()
	f := seed(t, store)

	err := store.Do(context.Background(), func(ctx context.Context, repos domain.Repositories) error {
		products, err := repos.Products().GetMany(ctx, []int64{f.cake.ID, 77, f.cake.ID})
		require.NoError(t, err)
		require.Len(t, products, 1)
		require.Equal(t, f.cake.ID, products[0].ID)
		return nil
	})
	require.NoError(t, err)
}
