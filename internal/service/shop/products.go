package shop

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// ProductService управляет каталогом товаров.
type ProductService struct {
	deps Deps
}

// NewProductService конструирует сервис каталога.
func NewProductService(deps Deps) *ProductService {
	return &ProductService{deps: deps.withDefaults("product-service")}
}

// List возвращает все товары по возрастанию id.
func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := s.deps.Store.Do(ctx, func(ctx context.Context, repos domain.Repositories) error {
		var err error
		products, err = repos.Products().List(ctx)
		return err
	})
	if err != nil {
		return nil, s.fail(err, "list", 0)
	}
	return products, nil
}

// Get возвращает товар по id или ErrProductNotFound.
func (s *ProductService) Get(ctx context.Context, id int64) (domain.Product, error) {
	var product domain.Product
	err := s.deps.Store.Do(ctx, func(ctx context.Context, repos domain.Repositories) error {
		var err error
		product, err = repos.Products().Get(ctx, id)
		return err
	})
	if err != nil {
		return domain.Product{}, s.fail(err, "get", id)
	}
	return product, nil
}

// Create регистрирует товар, предварительно округлив цену до копеек.
func (s *ProductService) Create(ctx context.Context, in domain.ProductCreate) (domain.Product, error) {
	product := domain.Product{
		Name:     in.Name,
		Category: in.Category,
		SKU:      in.SKU,
		Price:    domain.RoundMoney(in.Price),
	}
	if err := s.deps.Validator.Product(product); err != nil {
		return domain.Product{}, err
	}

	err := s.deps.Store.Do(ctx, func(ctx context.Context, repos domain.Repositories) error {
		return repos.Products().Create(ctx, &product)
	})
	if err != nil {
		return domain.Product{}, s.fail(err, "create", 0)
	}

	s.deps.Logger.WithField("product_id", product.ID).Info("product created")
	return product, nil
}

// Update меняет только переданные поля. Суммы уже оформленных покупок не пересчитываются.
func (s *ProductService) Update(ctx context.Context, id int64, in domain.ProductUpdate) (domain.Product, error) {
	var product domain.Product
	err := s.deps.Store.Do(ctx, func(ctx context.Context, repos domain.Repositories) error {
		current, err := repos.Products().Get(ctx, id)
		if err != nil {
			return err
		}
		in.ApplyTo(&current)
		if err := s.deps.Validator.Product(current); err != nil {
			return err
		}
		if err := repos.Products().Update(ctx, current); err != nil {
			return err
		}
		product = current
		return nil
	})
	if err != nil {
		return domain.Product{}, s.fail(err, "update", id)
	}
	return product, nil
}

// Delete удаляет товар; ErrProductInUse, если он есть в покупках.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	err := s.deps.Store.Do(ctx, func(ctx context.Context, repos domain.Repositories) error {
		return repos.Products().Delete(ctx, id)
	})
	if err != nil {
		return s.fail(err, "delete", id)
	}
	s.deps.Logger.WithField("product_id", id).Info("product deleted")
	return nil
}

func (s *ProductService) fail(err error, operation string, id int64) error {
	return failWith(s.deps.Logger, err, operation, log.Fields{"product_id": id})
}
