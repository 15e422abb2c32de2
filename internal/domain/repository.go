package domain

import "context"

// CustomerRepository описывает хранение клиентов.
type CustomerRepository interface {
	List(ctx context.Context) ([]Customer, error)
	// Get возвращает клиента или ErrCustomerNotFound.
	Get(ctx context.Context, id int64) (Customer, error)
	// Create сохраняет клиента и проставляет ему ID.
	Create(ctx context.Context, customer *Customer) error
	Update(ctx context.Context, customer Customer) error
	// Delete удаляет клиента вместе с его покупками.
	Delete(ctx context.Context, id int64) error
}

// ProductRepository описывает хранение каталога.
type ProductRepository interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int64) (Product, error)
	// GetMany возвращает найденные товары; отсутствующие ID просто пропускаются.
	GetMany(ctx context.Context, ids []int64) ([]Product, error)
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product Product) error
	// Delete возвращает ErrProductInUse, если товар есть в позициях покупок.
	Delete(ctx context.Context, id int64) error
}

// PurchaseRepository описывает хранение покупок и их позиций.
type PurchaseRepository interface {
	// List и Get возвращают покупки вместе с позициями.
	List(ctx context.Context) ([]Purchase, error)
	Get(ctx context.Context, id int64) (Purchase, error)
	// Create сохраняет покупку с позициями и проставляет ID всем записям.
	Create(ctx context.Context, purchase *Purchase) error
	// Update перезаписывает дату, сумму и клиента; позиции не трогает.
	Update(ctx context.Context, purchase Purchase) error
	// ApplyItems применяет план сверки и возвращает итоговый набор позиций.
	ApplyItems(ctx context.Context, purchaseID int64, plan ItemsPlan) ([]PurchaseItem, error)
	// Delete удаляет покупку вместе с позициями.
	Delete(ctx context.Context, id int64) error
}

// ReportRepository выполняет аналитические выборки.
type ReportRepository interface {
	BirthdayCelebrants(ctx context.Context, on Date) ([]Customer, error)
	RecentBuyers(ctx context.Context, cutoff Date) ([]RecentBuyer, error)
	PopularCategories(ctx context.Context, customerID int64) ([]CategoryUnits, error)
}

// Repositories - репозитории, привязанные к одной единице работы.
type Repositories interface {
	Customers() CustomerRepository
	Products() ProductRepository
	Purchases() PurchaseRepository
	Reports() ReportRepository
}

// UnitOfWork выполняет fn атомарно: либо фиксируются все изменения, либо ни одного.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

// Store - хранилище целиком: единицы работы плюс проверка доступности.
type Store interface {
	UnitOfWork
	Ping(ctx context.Context) error
	Close() error
}
