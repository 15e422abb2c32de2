package domain

// Customer - покупатель магазина.
type Customer struct {
	ID               int64  `json:"id" db:"id"`
	FullName         string `json:"full_name" db:"full_name"`
	DateOfBirth      Date   `json:"date_of_birth" db:"date_of_birth"`
	RegistrationDate Date   `json:"registration_date" db:"registration_date"`
}

// CustomerCreate - поля, которые клиент передаёт при регистрации.
// Дата регистрации проставляется сервером.
type CustomerCreate struct {
	FullName    string `json:"full_name"`
	DateOfBirth Date   `json:"date_of_birth"`
}

// CustomerUpdate - частичное обновление: nil означает "оставить как есть".
type CustomerUpdate struct {
	FullName    *string `json:"full_name"`
	DateOfBirth *Date   `json:"date_of_birth"`
}

// ApplyTo переносит заданные поля на существующую запись.
func (u CustomerUpdate) ApplyTo(c *Customer) {
	if u.FullName != nil {
		c.FullName = *u.FullName
	}
	if u.DateOfBirth != nil {
		c.DateOfBirth = *u.DateOfBirth
	}
}
