package domain

// ItemsPlan - набор изменений, переводящий сохранённые позиции в желаемые.
type ItemsPlan struct {
	Delete []int64
	Update []PurchaseItem
	Insert []PurchaseItem
}

// Empty сообщает, что план ничего не меняет.
func (p ItemsPlan) Empty() bool {
	return len(p.Delete) == 0 && len(p.Update) == 0 && len(p.Insert) == 0
}

// ReconcileItems сравнивает позиции по идентичности, а не по порядку:
// сохранённые ID, отсутствующие в desired, удаляются; совпавшие перезаписываются
// на месте; записи без совпадающего ID добавляются как новые (ID == 0).
func ReconcileItems(purchaseID int64, current []PurchaseItem, desired []PurchaseItemInput) ItemsPlan {
	persisted := make(map[int64]PurchaseItem, len(current))
	for _, item := range current {
		persisted[item.ID] = item
	}

	wanted := make(map[int64]struct{}, len(desired))
	for _, in := range desired {
		if in.ID != 0 {
			wanted[in.ID] = struct{}{}
		}
	}

	var plan ItemsPlan
	for _, item := range current {
		if _, ok := wanted[item.ID]; !ok {
			plan.Delete = append(plan.Delete, item.ID)
		}
	}

	for _, in := range desired {
		if existing, ok := persisted[in.ID]; ok && in.ID != 0 {
			existing.ProductID = in.ProductID
			existing.Quantity = in.Quantity
			plan.Update = append(plan.Update, existing)
			continue
		}
		plan.Insert = append(plan.Insert, PurchaseItem{
			PurchaseID: purchaseID,
			ProductID:  in.ProductID,
			Quantity:   in.Quantity,
		})
	}

	return plan
}

// ItemsFromInput превращает входные позиции новой покупки в записи без ID.
func ItemsFromInput(purchaseID int64, inputs []PurchaseItemInput) []PurchaseItem {
	items := make([]PurchaseItem, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, PurchaseItem{
			PurchaseID: purchaseID,
			ProductID:  in.ProductID,
			Quantity:   in.Quantity,
		})
	}
	return items
}
