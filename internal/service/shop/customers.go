package shop

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/validation"
)

// CustomerService управляет клиентами и строит отчёты по ним.
type CustomerService struct {
	deps Deps
}

// NewCustomerService конструирует сервис клиентов.
func NewCustomerService(deps Deps) *CustomerService {
	return &CustomerService{deps: deps.withDefaults("customer-service")}
}

// List возвращает всех клиентов по возрастанию id.
func (s *CustomerService) List(ctx context.Context) ([]domain.Customer, error) {
	var customers []domain.Customer
	err := s.deps.Store.Do(ctx, func(ctx context.Context, repos domain.Repositories) error {
		var err error
		customers, err = repos.Customers().List(ctx)
		return err
	})
	if err != nil {
		return nil, s.fail(err, "list", 0)
	}
	return customers, nil
}

// Get возвращает клиента по id или ErrCustomerNotFound.
func (s *CustomerService) Get(ctx context.Context, id int64) (domain.Customer, error) {
	var customer domain.Customer
	err := s.deps.Store.Do(ctx, func(ctx context.Context, repos domain.Repositories) error {
		var err error
		customer, err = repos.Customers().Get(ctx, id)
		return err
	})
	if err != nil {
		return domain.Customer{}, s.fail(err, "get", id)
	}
	return customer, nil
}

// Create регистрирует клиента; дата регистрации - сегодняшний день по часам сервера.
func (s *CustomerService) Create(ctx context.Context, in domain.CustomerCreate) (domain.Customer, error) {
	customer := domain.Customer{
		FullName:         in.FullName,
		DateOfBirth:      in.DateOfBirth,
		RegistrationDate: s.deps.today(),
	}
	if err := s.deps.Validator.Customer(customer); err != nil {
		return domain.Customer{}, err
	}

	err := s.deps.Store.Do(ctx, func(ctx context.Context, repos domain.Repositories) error {
		return repos.Customers().Create(ctx, &customer)
	})
	if err != nil {
		return domain.Customer{}, s.fail(err, "create", 0)
	}

	s.deps.Logger.WithField("customer_id", customer.ID).Info("customer created")
	return customer, nil
}

// Update применяет переданные поля; дата регистрации не меняется.
func (s *CustomerService) Update(ctx context.Context, id int64, in domain.CustomerUpdate) (domain.Customer, error) {
	var customer domain.Customer
	err := s.deps.Store.Do(ctx, func(ctx context.Context, repos domain.Repositories) error {
		current, err := repos.Customers().Get(ctx, id)
		if err != nil {
			return err
		}
		in.ApplyTo(&current)
		if err := s.deps.Validator.Customer(current); err != nil {
			return err
		}
		if err := repos.Customers().Update(ctx, current); err != nil {
			return err
		}
		customer = current
		return nil
	})
	if err != nil {
		return domain.Customer{}, s.fail(err, "update", id)
	}
	return customer, nil
}

// Delete удаляет клиента вместе с его покупками.
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	err := s.deps.Store.Do(ctx, func(ctx context.Context, repos domain.Repositories) error {
		return repos.Customers().Delete(ctx, id)
	})
	if err != nil {
		return s.fail(err, "delete", id)
	}
	s.deps.Logger.WithField("customer_id", id).Info("customer deleted")
	return nil
}

// BirthdayCelebrants возвращает клиентов, у которых день рождения совпадает с on (год не важен).
func (s *CustomerService) BirthdayCelebrants(ctx context.Context, on domain.Date) ([]domain.Customer, error) {
	var customers []domain.Customer
	err := s.deps.Store.Do(ctx, func(ctx context.Context, repos domain.Repositories) error {
		var err error
		customers, err = repos.Reports().BirthdayCelebrants(ctx, on)
		return err
	})
	if err != nil {
		return nil, s.fail(err, "birthday_celebrants", 0)
	}
	return customers, nil
}

// RecentBuyers возвращает клиентов с покупками за последние days дней.
func (s *CustomerService) RecentBuyers(ctx context.Context, days int) ([]domain.RecentBuyer, error) {
	if err := validation.Days(days); err != nil {
		return nil, err
	}

	cutoff := domain.RecentCutoff(s.deps.today(), days)
	var buyers []domain.RecentBuyer
	err := s.deps.Store.Do(ctx, func(ctx context.Context, repos domain.Repositories) error {
		var err error
		buyers, err = repos.Reports().RecentBuyers(ctx, cutoff)
		return err
	})
	if err != nil {
		return nil, s.fail(err, "recent_buyers", 0)
	}
	return buyers, nil
}

// PopularCategories возвращает категории, купленные клиентом, по убыванию количества единиц.
func (s *CustomerService) PopularCategories(ctx context.Context, customerID int64) ([]domain.CategoryUnits, error) {
	var categories []domain.CategoryUnits
	err := s.deps.Store.Do(ctx, func(ctx context.Context, repos domain.Repositories) error {
		if _, err := repos.Customers().Get(ctx, customerID); err != nil {
			return err
		}
		var err error
		categories, err = repos.Reports().PopularCategories(ctx, customerID)
		return err
	})
	if err != nil {
		return nil, s.fail(err, "popular_categories", customerID)
	}
	return categories, nil
}

// fail логирует ошибку хранилища; ожидаемые ошибки (не найдено, валидация) возвращаются как есть.
func (s *CustomerService) fail(err error, operation string, id int64) error {
	return failWith(s.deps.Logger, err, operation, log.Fields{"customer_id": id})
}

func failWith(logger *log.Entry, err error, operation string, fields log.Fields) error {
	if _, ok := domain.AsValidation(err); ok {
		return err
	}
	entry := logger.WithError(err).WithFields(fields).WithField("operation", operation)
	switch {
	case domain.IsNotFound(err), errors.Is(err, domain.ErrProductInUse):
		entry.Warn("operation rejected")
		return err
	default:
		entry.Error("operation failed")
		return fmt.Errorf("%s: %w", operation, err)
	}
}
