package memory

import (
	"context"
	"sort"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

type productRepository struct {
	state *state
}

func (r productRepository) List(context.Context) ([]domain.Product, error) {
	result := make([]domain.Product, 0, len(r.state.products))
	for _, p := range r.state.products {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r productRepository) Get(_ context.Context, id int64) (domain.Product, error) {
	p, ok := r.state.products[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

func (r productRepository) GetMany(_ context.Context, ids []int64) ([]domain.Product, error) {
	result := make([]domain.Product, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if p, ok := r.state.products[id]; ok {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r productRepository) Create(_ context.Context, product *domain.Product) error {
	r.state.productSeq++
	product.ID = r.state.productSeq
	r.state.products[product.ID] = *product
	return nil
}

func (r productRepository) Update(_ context.Context, product domain.Product) error {
	if _, ok := r.state.products[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.state.products[product.ID] = product
	return nil
}

func (r productRepository) Delete(_ context.Context, id int64) error {
	if _, ok := r.state.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	for _, item := range r.state.items {
		if item.ProductID == id {
			return domain.ErrProductInUse
		}
	}
	delete(r.state.products, id)
	return nil
}

var _ domain.ProductRepository = productRepository{}
