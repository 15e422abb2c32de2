package memory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// Store - in-memory хранилище для локальной разработки и тестов.
// Каждая единица работы выполняется над копией состояния, которая
// подменяет текущее только при успешном завершении.
type Store struct {
	mu    sync.Mutex
	state *state
}

// NewStore возвращает пустое хранилище.
func NewStore() *Store {
	return &Store{state: newState()}
}

// Do выполняет fn атомарно. Ошибка или паника отбрасывают все изменения.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context, repos domain.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.state.clone()
	if err := fn(ctx, repositories{state: working}); err != nil {
		return err
	}
	s.state = working
	return nil
}

// Ping всегда успешен: памяти недоступной не бывает.
func (s *Store) Ping(context.Context) error { return nil }

// Close ничего не освобождает.
func (s *Store) Close() error { return nil }

type state struct {
	customers map[int64]domain.Customer
	products  map[int64]domain.Product
	purchases map[int64]domain.Purchase
	items     map[int64]domain.PurchaseItem

	customerSeq int64
	productSeq  int64
	purchaseSeq int64
	itemSeq     int64
}

func newState() *state {
	return &state{
		customers: make(map[int64]domain.Customer),
		products:  make(map[int64]domain.Product),
		purchases: make(map[int64]domain.Purchase),
		items:     make(map[int64]domain.PurchaseItem),
	}
}

// clone копирует карты; записи хранятся по значению, а Purchase.Items
// в карте purchases всегда пуст, так что глубокое копирование не нужно.
func (s *state) clone() *state {
	c := &state{
		customers:   make(map[int64]domain.Customer, len(s.customers)),
		products:    make(map[int64]domain.Product, len(s.products)),
		purchases:   make(map[int64]domain.Purchase, len(s.purchases)),
		items:       make(map[int64]domain.PurchaseItem, len(s.items)),
		customerSeq: s.customerSeq,
		productSeq:  s.productSeq,
		purchaseSeq: s.purchaseSeq,
		itemSeq:     s.itemSeq,
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.purchases {
		c.purchases[k] = v
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	return c
}

type repositories struct {
	state *state
}

func (r repositories) Customers() domain.CustomerRepository { return customerRepository{state: r.state} }
func (r repositories) Products() domain.ProductRepository   { return productRepository{state: r.state} }
func (r repositories) Purchases() domain.PurchaseRepository { return purchaseRepository{state: r.state} }
func (r repositories) Reports() domain.ReportRepository     { return reportRepository{state: r.state} }

var _ domain.Store = (*Store)(nil)
