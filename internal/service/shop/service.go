// Package shop содержит бизнес-операции магазина: клиенты, товары, покупки и отчёты.
// Каждая операция выполняется в одной единице работы хранилища.
package shop

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/metrics"
	"github.com/vladislavdragonenkov/shop/internal/validation"
)

// Clock возвращает текущее время; в тестах подменяется фиксированным.
type Clock func() time.Time

// Deps - общие зависимости сервисов.
type Deps struct {
	Store     domain.UnitOfWork
	Validator *validation.Validator
	Metrics   *metrics.ShopMetrics
	Logger    *log.Entry
	Clock     Clock
}

func (d Deps) withDefaults(component string) Deps {
	if d.Validator == nil {
		d.Validator = validation.New()
	}
	if d.Logger == nil {
		d.Logger = log.New().WithField("component", component)
	} else {
		d.Logger = d.Logger.WithField("component", component)
	}
	if d.Clock == nil {
		d.Clock = time.Now
	}
	return d
}

func (d Deps) today() domain.Date {
	return domain.DateOf(d.Clock().UTC())
}

// Services объединяет все сервисы для передачи в HTTP-слой.
type Services struct {
	Customers *CustomerService
	Products  *ProductService
	Purchases *PurchaseService
}

// New создаёт все сервисы над общими зависимостями.
func New(deps Deps) Services {
	return Services{
		Customers: NewCustomerService(deps),
		Products:  NewProductService(deps),
		Purchases: NewPurchaseService(deps),
	}
}
