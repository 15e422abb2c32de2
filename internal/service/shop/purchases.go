package shop

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/validation"
)

// PurchaseService оформляет покупки, пересчитывает суммы и сверяет позиции.
type PurchaseService struct {
	deps Deps
}

// NewPurchaseService конструирует сервис покупок.
func NewPurchaseService(deps Deps) *PurchaseService {
	return &PurchaseService{deps: deps.withDefaults("purchase-service")}
}

// List возвращает все покупки вместе с позициями.
func (s *PurchaseService) List(ctx context.Context) ([]domain.Purchase, error) {
	var purchases []domain.Purchase
	err := s.deps.Store.Do(ctx, func(ctx context.Context, repos domain.Repositories) error {
		var err error
		purchases, err = repos.Purchases().List(ctx)
		return err
	})
	if err != nil {
		return nil, s.fail(err, "list", 0)
	}
	return purchases, nil
}

// Get возвращает покупку с позициями или ErrPurchaseNotFound.
func (s *PurchaseService) Get(ctx context.Context, id int64) (domain.Purchase, error) {
	var purchase domain.Purchase
	err := s.deps.Store.Do(ctx, func(ctx context.Context, repos domain.Repositories) error {
		var err error
		purchase, err = repos.Purchases().Get(ctx, id)
		return err
	})
	if err != nil {
		return domain.Purchase{}, s.fail(err, "get", id)
	}
	return purchase, nil
}

// Create оформляет покупку сегодняшним числом и считает сумму по текущим ценам.
func (s *PurchaseService) Create(ctx context.Context, in domain.PurchaseCreate) (domain.Purchase, error) {
	var purchase domain.Purchase
	err := s.deps.Store.Do(ctx, func(ctx context.Context, repos domain.Repositories) error {
		prices, err := s.deps.Validator.Purchase(ctx, repos, validation.PurchaseInput{
			CustomerID:    in.CustomerID,
			Items:         in.Items,
			ItemsRequired: true,
		})
		if err != nil {
			return err
		}

		items := domain.ItemsFromInput(0, in.Items)
		total, err := totalOf(items, in.Items, prices)
		if err != nil {
			return err
		}

		purchase = domain.Purchase{
			Date:       s.deps.today(),
			TotalCost:  total,
			CustomerID: in.CustomerID,
			Items:      items,
		}
		return repos.Purchases().Create(ctx, &purchase)
	})
	if err != nil {
		return domain.Purchase{}, s.fail(err, "create", 0)
	}

	s.deps.Metrics.RecordPurchaseCreated()
	s.deps.Logger.WithFields(log.Fields{
		"purchase_id": purchase.ID,
		"customer_id": purchase.CustomerID,
		"total_cost":  purchase.TotalCost.StringFixed(domain.MoneyScale),
	}).Info("purchase created")
	return purchase, nil
}

// Update перезаписывает переданные поля. Если передан список позиций, он сверяется
// с сохранёнными по ID, после чего сумма пересчитывается в той же транзакции.
func (s *PurchaseService) Update(ctx context.Context, id int64, in domain.PurchaseUpdate) (domain.Purchase, error) {
	var (
		purchase domain.Purchase
		plan     domain.ItemsPlan
	)
	err := s.deps.Store.Do(ctx, func(ctx context.Context, repos domain.Repositories) error {
		current, err := repos.Purchases().Get(ctx, id)
		if err != nil {
			return err
		}
		in.ApplyTo(&current)

		prices, err := s.deps.Validator.Purchase(ctx, repos, validation.PurchaseInput{
			CustomerID: current.CustomerID,
			Items:      in.Items,
		})
		if err != nil {
			return err
		}

		if in.ItemsChanged() {
			plan = domain.ReconcileItems(id, current.Items, in.Items)
			items, err := repos.Purchases().ApplyItems(ctx, id, plan)
			if err != nil {
				return fmt.Errorf("apply items: %w", err)
			}
			total, err := totalOf(items, in.Items, prices)
			if err != nil {
				return err
			}
			current.Items = items
			current.TotalCost = total
		}

		if err := repos.Purchases().Update(ctx, current); err != nil {
			return err
		}
		purchase = current
		return nil
	})
	if err != nil {
		return domain.Purchase{}, s.fail(err, "update", id)
	}

	if !plan.Empty() {
		s.deps.Metrics.RecordItemsReconciled(len(plan.Delete), len(plan.Update), len(plan.Insert))
		s.deps.Logger.WithFields(log.Fields{
			"purchase_id": id,
			"deleted":     len(plan.Delete),
			"updated":     len(plan.Update),
			"inserted":    len(plan.Insert),
		}).Info("purchase items reconciled")
	}
	return purchase, nil
}

// Delete удаляет покупку вместе с позициями.
func (s *PurchaseService) Delete(ctx context.Context, id int64) error {
	err := s.deps.Store.Do(ctx, func(ctx context.Context, repos domain.Repositories) error {
		return repos.Purchases().Delete(ctx, id)
	})
	if err != nil {
		return s.fail(err, "delete", id)
	}
	s.deps.Logger.WithField("purchase_id", id).Info("purchase deleted")
	return nil
}

// totalOf считает сумму; неизвестный товар превращается в ошибку валидации
// на соответствующей входной позиции.
func totalOf(items []domain.PurchaseItem, inputs []domain.PurchaseItemInput, prices map[int64]decimal.Decimal) (decimal.Decimal, error) {
	total, err := domain.CalculateTotal(items, prices)
	if err == nil {
		if total.GreaterThan(domain.MaxMoney) {
			return decimal.Zero, domain.NewValidationError(domain.FieldError{
				Field:   "items",
				Message: "total cost must be at most " + domain.MaxMoney.StringFixed(domain.MoneyScale),
			})
		}
		return total, nil
	}

	var missing *domain.MissingProductError
	if !errors.As(err, &missing) {
		return decimal.Zero, err
	}
	field := "items"
	for i, in := range inputs {
		if in.ProductID == missing.ProductID {
			field = fmt.Sprintf("items[%d].product_id", i)
			break
		}
	}
	return decimal.Zero, domain.NewValidationError(domain.FieldError{Field: field, Message: "product does not exist"})
}

func (s *PurchaseService) fail(err error, operation string, id int64) error {
	if errors.Is(err, domain.ErrCustomerNotFound) && (operation == "create" || operation == "update") {
		// Клиент пропал между проверкой и записью.
		return domain.NewValidationError(domain.FieldError{Field: "customer_id", Message: "customer does not exist"})
	}
	return failWith(s.deps.Logger, err, operation, log.Fields{"purchase_id": id})
}
