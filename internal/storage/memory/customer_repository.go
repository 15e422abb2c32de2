package memory

import (
	"context"
	"sort"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

type customerRepository struct {
	state *state
}

func (r customerRepository) List(context.Context) ([]domain.Customer, error) {
	result := make([]domain.Customer, 0, len(r.state.customers))
	for _, c := range r.state.customers {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r customerRepository) Get(_ context.Context, id int64) (domain.Customer, error) {
	c, ok := r.state.customers[id]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return c, nil
}

func (r customerRepository) Create(_ context.Context, customer *domain.Customer) error {
	r.state.customerSeq++
	customer.ID = r.state.customerSeq
	r.state.customers[customer.ID] = *customer
	return nil
}

func (r customerRepository) Update(_ context.Context, customer domain.Customer) error {
	if _, ok := r.state.customers[customer.ID]; !ok {
		return domain.ErrCustomerNotFound
	}
	r.state.customers[customer.ID] = customer
	return nil
}

// Delete каскадно удаляет покупки клиента и их позиции.
func (r customerRepository) Delete(_ context.Context, id int64) error {
	if _, ok := r.state.customers[id]; !ok {
		return domain.ErrCustomerNotFound
	}
	for purchaseID, p := range r.state.purchases {
		if p.CustomerID == id {
			r.state.deletePurchase(purchaseID)
		}
	}
	delete(r.state.customers, id)
	return nil
}

var _ domain.CustomerRepository = customerRepository{}
