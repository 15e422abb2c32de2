package memory

import (
	"context"
	"sort"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

type reportRepository struct {
	state *state
}

func (r reportRepository) BirthdayCelebrants(_ context.Context, on domain.Date) ([]domain.Customer, error) {
	result := make([]domain.Customer, 0)
	for _, c := range r.state.customers {
		if domain.MatchesBirthday(c.DateOfBirth, on) {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r reportRepository) RecentBuyers(_ context.Context, cutoff domain.Date) ([]domain.RecentBuyer, error) {
	purchases := make([]domain.Purchase, 0, len(r.state.purchases))
	for _, p := range r.state.purchases {
		purchases = append(purchases, p)
	}
	return domain.CollectRecentBuyers(purchases, r.state.customers, cutoff), nil
}

func (r reportRepository) PopularCategories(_ context.Context, customerID int64) ([]domain.CategoryUnits, error) {
	if _, ok := r.state.customers[customerID]; !ok {
		return nil, domain.ErrCustomerNotFound
	}

	units := make(map[string]int64)
	for _, item := range r.state.items {
		p, ok := r.state.purchases[item.PurchaseID]
		if !ok || p.CustomerID != customerID {
			continue
		}
		product, ok := r.state.products[item.ProductID]
		if !ok {
			continue
		}
		units[product.Category] += int64(item.Quantity)
	}
	return domain.RankCategories(units), nil
}

var _ domain.ReportRepository = reportRepository{}
