package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

type purchaseRepository struct {
	state *state
}

func (r purchaseRepository) List(context.Context) ([]domain.Purchase, error) {
	result := make([]domain.Purchase, 0, len(r.state.purchases))
	for _, p := range r.state.purchases {
		p.Items = r.state.itemsOf(p.ID)
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r purchaseRepository) Get(_ context.Context, id int64) (domain.Purchase, error) {
	p, ok := r.state.purchases[id]
	if !ok {
		return domain.Purchase{}, domain.ErrPurchaseNotFound
	}
	p.Items = r.state.itemsOf(id)
	return p, nil
}

func (r purchaseRepository) Create(_ context.Context, purchase *domain.Purchase) error {
	if _, ok := r.state.customers[purchase.CustomerID]; !ok {
		return domain.ErrCustomerNotFound
	}

	r.state.purchaseSeq++
	purchase.ID = r.state.purchaseSeq

	for i := range purchase.Items {
		item := &purchase.Items[i]
		item.PurchaseID = purchase.ID
		if err := r.state.insertItem(item); err != nil {
			return err
		}
	}

	header := *purchase
	header.Items = nil
	r.state.purchases[purchase.ID] = header
	return nil
}

func (r purchaseRepository) Update(_ context.Context, purchase domain.Purchase) error {
	if _, ok := r.state.purchases[purchase.ID]; !ok {
		return domain.ErrPurchaseNotFound
	}
	if _, ok := r.state.customers[purchase.CustomerID]; !ok {
		return domain.ErrCustomerNotFound
	}
	purchase.Items = nil
	r.state.purchases[purchase.ID] = purchase
	return nil
}

func (r purchaseRepository) ApplyItems(_ context.Context, purchaseID int64, plan domain.ItemsPlan) ([]domain.PurchaseItem, error) {
	if _, ok := r.state.purchases[purchaseID]; !ok {
		return nil, domain.ErrPurchaseNotFound
	}

	for _, id := range plan.Delete {
		if item, ok := r.state.items[id]; ok && item.PurchaseID == purchaseID {
			delete(r.state.items, id)
		}
	}
	for _, item := range plan.Update {
		current, ok := r.state.items[item.ID]
		if !ok || current.PurchaseID != purchaseID {
			return nil, fmt.Errorf("purchase item %d does not belong to purchase %d", item.ID, purchaseID)
		}
		if _, ok := r.state.products[item.ProductID]; !ok {
			return nil, domain.ErrProductNotFound
		}
		item.PurchaseID = purchaseID
		r.state.items[item.ID] = item
	}
	for _, item := range plan.Insert {
		item.PurchaseID = purchaseID
		if err := r.state.insertItem(&item); err != nil {
			return nil, err
		}
	}

	return r.state.itemsOf(purchaseID), nil
}

func (r purchaseRepository) Delete(_ context.Context, id int64) error {
	if _, ok := r.state.purchases[id]; !ok {
		return domain.ErrPurchaseNotFound
	}
	r.state.deletePurchase(id)
	return nil
}

func (s *state) insertItem(item *domain.PurchaseItem) error {
	if _, ok := s.products[item.ProductID]; !ok {
		return domain.ErrProductNotFound
	}
	s.itemSeq++
	item.ID = s.itemSeq
	s.items[item.ID] = *item
	return nil
}

func (s *state) itemsOf(purchaseID int64) []domain.PurchaseItem {
	result := make([]domain.PurchaseItem, 0)
	for _, item := range s.items {
		if item.PurchaseID == purchaseID {
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (s *state) deletePurchase(id int64) {
	for itemID, item := range s.items {
		if item.PurchaseID == id {
			delete(s.items, itemID)
		}
	}
	delete(s.purchases, id)
}

var _ domain.PurchaseRepository = purchaseRepository{}
