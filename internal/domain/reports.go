package domain

import "sort"

// RecentBuyer - клиент с датой последней покупки в окне.
type RecentBuyer struct {
	CustomerID       int64  `json:"customer_id" db:"customer_id"`
	FullName         string `json:"full_name" db:"full_name"`
	LastPurchaseDate Date   `json:"last_purchase_date" db:"last_purchase_date"`
}

// CategoryUnits - сколько единиц товаров категории купил клиент.
type CategoryUnits struct {
	Category   string `json:"category" db:"category"`
	TotalUnits int64  `json:"total_units" db:"total_units"`
}

// MatchesBirthday сравнивает только месяц и день, год игнорируется.
func MatchesBirthday(dateOfBirth, on Date) bool {
	return dateOfBirth.Month() == on.Month() && dateOfBirth.Day() == on.Day()
}

// RecentCutoff - первая дата окна "последние days дней"; days == 0 оставляет только сегодня.
func RecentCutoff(today Date, days int) Date {
	return today.AddDays(-days)
}

// CollectRecentBuyers группирует покупки не раньше cutoff по клиентам
// и возвращает максимальную дату покупки для каждого, по возрастанию ID клиента.
func CollectRecentBuyers(purchases []Purchase, customers map[int64]Customer, cutoff Date) []RecentBuyer {
	latest := make(map[int64]Date)
	for _, p := range purchases {
		if p.Date.Before(cutoff) {
			continue
		}
		if last, ok := latest[p.CustomerID]; !ok || p.Date.After(last) {
			latest[p.CustomerID] = p.Date
		}
	}

	result := make([]RecentBuyer, 0, len(latest))
	for customerID, last := range latest {
		customer, ok := customers[customerID]
		if !ok {
			continue
		}
		result = append(result, RecentBuyer{
			CustomerID:       customerID,
			FullName:         customer.FullName,
			LastPurchaseDate: last,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CustomerID < result[j].CustomerID })
	return result
}

// RankCategories сортирует категории по убыванию купленных единиц,
// при равенстве - по имени категории.
func RankCategories(units map[string]int64) []CategoryUnits {
	result := make([]CategoryUnits, 0, len(units))
	for category, total := range units {
		result = append(result, CategoryUnits{Category: category, TotalUnits: total})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].TotalUnits != result[j].TotalUnits {
			return result[i].TotalUnits > result[j].TotalUnits
		}
		return result[i].Category < result[j].Category
	})
	return result
}
