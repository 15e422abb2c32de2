package metrics

import "github.com/prometheus/client_golang/prometheus"

// ShopMetrics - бизнес-счётчики магазина.
type ShopMetrics struct {
	purchasesCreated prometheus.Counter
	itemsReconciled  *prometheus.CounterVec
}

// NewShopMetrics регистрирует метрики в DefaultRegisterer.
func NewShopMetrics() *ShopMetrics {
	return NewShopMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewShopMetricsWithRegisterer регистрирует метрики в указанном реестре.
func NewShopMetricsWithRegisterer(registerer prometheus.Registerer) *ShopMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &ShopMetrics{
		purchasesCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shop_purchases_created_total",
			Help: "Total number of purchases created",
		}),
		itemsReconciled: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "shop_purchase_items_reconciled_total",
			Help: "Purchase items touched by reconciliation, by action",
		}, []string{"action"}),
	}
}

// RecordPurchaseCreated увеличивает счётчик созданных покупок.
func (m *ShopMetrics) RecordPurchaseCreated() {
	if m == nil {
		return
	}
	m.purchasesCreated.Inc()
}

// RecordItemsReconciled учитывает результат сверки позиций.
func (m *ShopMetrics) RecordItemsReconciled(deleted, updated, inserted int) {
	if m == nil {
		return
	}
	m.itemsReconciled.WithLabelValues("delete").Add(float64(deleted))
	m.itemsReconciled.WithLabelValues("update").Add(float64(updated))
	m.itemsReconciled.WithLabelValues("insert").Add(float64(inserted))
}
