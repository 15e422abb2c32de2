// Package validation проверяет входные данные до обращения к бизнес-операциям.
// Все нарушения одного запроса собираются в единый domain.ValidationError.
package validation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// Validator применяет правила к клиентам, товарам и покупкам.
type Validator struct {
	v *validator.Validate
}

// New создаёт валидатор, который называет поля так же, как JSON API.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v}
}

type customerRules struct {
	FullName    string `json:"full_name" validate:"required,max=100"`
	DateOfBirth bool   `json:"date_of_birth" validate:"required"`
}

type productRules struct {
	Name     string `json:"name" validate:"required,max=100"`
	Category string `json:"category" validate:"required,max=50"`
	SKU      string `json:"sku" validate:"required,max=20"`
}

type itemRules struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int   `json:"quantity" validate:"gte=1,lte=2147483647"`
}

type purchaseRules struct {
	CustomerID int64       `json:"customer_id" validate:"required"`
	Items      []itemRules `json:"items" validate:"omitnil,min=1,dive"`
}

// Customer проверяет итоговое состояние клиента (после создания или применения обновления).
func (v *Validator) Customer(c domain.Customer) error {
	fields := v.structFields(customerRules{
		FullName:    strings.TrimSpace(c.FullName),
		DateOfBirth: !c.DateOfBirth.IsZero(),
	})
	return asError(fields)
}

// Product проверяет итоговое состояние товара.
func (v *Validator) Product(p domain.Product) error {
	fields := v.structFields(productRules{
		Name:     strings.TrimSpace(p.Name),
		Category: strings.TrimSpace(p.Category),
		SKU:      strings.TrimSpace(p.SKU),
	})
	switch {
	case !p.Price.GreaterThan(decimal.Zero):
		fields = append(fields, domain.FieldError{Field: "price", Message: "must be greater than 0"})
	case p.Price.GreaterThan(domain.MaxMoney):
		fields = append(fields, domain.FieldError{Field: "price", Message: "must be at most " + domain.MaxMoney.StringFixed(domain.MoneyScale)})
	}
	return asError(fields)
}

// PurchaseInput - то, что проверяется при создании или обновлении покупки.
// Items == nil означает, что позиции не передавались.
type PurchaseInput struct {
	CustomerID int64
	Items      []domain.PurchaseItemInput
	// ItemsRequired требует хотя бы одну позицию даже при Items == nil.
	ItemsRequired bool
}

// Purchase проверяет клиента и позиции, включая их существование в хранилище.
// Возвращает цены найденных товаров, чтобы посчитать сумму без повторного чтения.
func (v *Validator) Purchase(ctx context.Context, repos domain.Repositories, in PurchaseInput) (map[int64]decimal.Decimal, error) {
	rules := purchaseRules{CustomerID: in.CustomerID}
	if in.Items != nil || in.ItemsRequired {
		rules.Items = make([]itemRules, 0, len(in.Items))
		for _, item := range in.Items {
			rules.Items = append(rules.Items, itemRules{ProductID: item.ProductID, Quantity: item.Quantity})
		}
	}
	fields := v.structFields(rules)

	if in.CustomerID != 0 {
		if _, err := repos.Customers().Get(ctx, in.CustomerID); err != nil {
			if !errors.Is(err, domain.ErrCustomerNotFound) {
				return nil, fmt.Errorf("check customer %d: %w", in.CustomerID, err)
			}
			fields = append(fields, domain.FieldError{Field: "customer_id", Message: "customer does not exist"})
		}
	}

	seenIDs := make(map[int64]struct{}, len(in.Items))
	for i, item := range in.Items {
		if item.ID == 0 {
			continue
		}
		if _, dup := seenIDs[item.ID]; dup {
			fields = append(fields, domain.FieldError{Field: fmt.Sprintf("items[%d].id", i), Message: "duplicate item id"})
			continue
		}
		seenIDs[item.ID] = struct{}{}
	}

	var prices map[int64]decimal.Decimal
	if len(in.Items) > 0 {
		products, err := repos.Products().GetMany(ctx, domain.ProductIDs(in.Items))
		if err != nil {
			return nil, fmt.Errorf("load products: %w", err)
		}
		prices = domain.PriceIndex(products)
		for i, item := range in.Items {
			if item.ProductID == 0 {
				continue
			}
			if _, ok := prices[item.ProductID]; !ok {
				fields = append(fields, domain.FieldError{Field: fmt.Sprintf("items[%d].product_id", i), Message: "product does not exist"})
			}
		}
	}

	if err := asError(fields); err != nil {
		return nil, err
	}
	return prices, nil
}

// MaxDays ограничивает окно отчёта о недавних покупателях ста годами.
const MaxDays = 36500

// Days проверяет размер окна для отчёта о недавних покупателях.
func Days(days int) error {
	switch {
	case days < 0:
		return domain.NewValidationError(domain.FieldError{Field: "days", Message: "must be greater than or equal to 0"})
	case days > MaxDays:
		return domain.NewValidationError(domain.FieldError{Field: "days", Message: fmt.Sprintf("must be at most %d", MaxDays)})
	}
	return nil
}

func (v *Validator) structFields(s any) []domain.FieldError {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []domain.FieldError{{Field: "", Message: err.Error()}}
	}

	fields := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, domain.FieldError{Field: fieldPath(fe.Namespace()), Message: message(fe)})
	}
	return fields
}

// fieldPath отрезает имя корневой структуры: "purchaseRules.items[0].quantity" → "items[0].quantity".
func fieldPath(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if fe.Kind() == reflect.Slice {
			return "must contain at least one item"
		}
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return "must contain at least one item"
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q rule", fe.Tag())
	}
}

func asError(fields []domain.FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return domain.NewValidationError(fields...)
}
