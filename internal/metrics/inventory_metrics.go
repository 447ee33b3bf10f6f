package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// InventoryMetrics содержит метрики батчевых списаний инвентаря и кешей.
type InventoryMetrics struct {
	// Счётчики исходов батчей
	adjustStarted    prometheus.Counter
	adjustSucceeded  prometheus.Counter
	adjustFailed     prometheus.Counter
	adjustRolledBack prometheus.Counter

	// Гистограммы времени выполнения
	adjustDuration prometheus.Histogram
	lockWait       prometheus.Histogram

	// Счётчики попаданий/промахов кешей по имени кеша
	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec

	// Gauge для активных батчей
	activeAdjustments prometheus.Gauge
}

// NewInventoryMetrics создаёт метрики с регистрацией в DefaultRegisterer.
func NewInventoryMetrics() *InventoryMetrics {
	return newInventoryMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newInventoryMetricsWithRegisterer(registerer prometheus.Registerer) *InventoryMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &InventoryMetrics{
		adjustStarted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "catalog_inventory_adjustments_started_total",
			Help: "Total number of inventory adjustment batches started",
		}),
		adjustSucceeded: registerCounter(registerer, prometheus.CounterOpts{
			Name: "catalog_inventory_adjustments_succeeded_total",
			Help: "Total number of inventory adjustment batches applied in full",
		}),
		adjustFailed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "catalog_inventory_adjustments_failed_total",
			Help: "Total number of inventory adjustment batches rejected",
		}),
		adjustRolledBack: registerCounter(registerer, prometheus.CounterOpts{
			Name: "catalog_inventory_rollbacks_total",
			Help: "Total number of batches that required rollback of applied deductions",
		}),
		adjustDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "catalog_inventory_adjustment_duration_seconds",
			Help:    "Duration of inventory adjustment batches in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		lockWait: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "catalog_inventory_lock_wait_seconds",
			Help:    "Time spent waiting for a single product inventory lock",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		}),
		cacheHits: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "catalog_cache_hits_total",
			Help: "Total number of cache hits by cache name",
		}, []string{"cache"}),
		cacheMisses: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "catalog_cache_misses_total",
			Help: "Total number of cache misses by cache name",
		}, []string{"cache"}),
		activeAdjustments: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "catalog_inventory_active_adjustments",
			Help: "Number of inventory adjustment batches currently in flight",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

// RecordAdjustmentStarted увеличивает счётчик запущенных батчей.
func (m *InventoryMetrics) RecordAdjustmentStarted() {
	m.adjustStarted.Inc()
	m.activeAdjustments.Inc()
}

// RecordAdjustmentFinished уменьшает количество активных батчей.
func (m *InventoryMetrics) RecordAdjustmentFinished() {
	m.activeAdjustments.Dec()
}

// RecordAdjustmentSucceeded увеличивает счётчик применённых батчей.
func (m *InventoryMetrics) RecordAdjustmentSucceeded() {
	m.adjustSucceeded.Inc()
}

// RecordAdjustmentFailed увеличивает счётчик отклонённых батчей.
func (m *InventoryMetrics) RecordAdjustmentFailed() {
	m.adjustFailed.Inc()
}

// RecordRollback увеличивает счётчик батчей, потребовавших отката.
func (m *InventoryMetrics) RecordRollback() {
	m.adjustRolledBack.Inc()
}

// RecordAdjustmentDuration записывает время выполнения батча.
func (m *InventoryMetrics) RecordAdjustmentDuration(duration time.Duration) {
	m.adjustDuration.Observe(duration.Seconds())
}

// RecordLockWait записывает время ожидания одного замка.
func (m *InventoryMetrics) RecordLockWait(duration time.Duration) {
	m.lockWait.Observe(duration.Seconds())
}

// RecordCacheHit увеличивает счётчик попаданий для именованного кеша.
func (m *InventoryMetrics) RecordCacheHit(cacheName string) {
	m.cacheHits.WithLabelValues(cacheName).Inc()
}

// RecordCacheMiss увеличивает счётчик промахов для именованного кеша.
func (m *InventoryMetrics) RecordCacheMiss(cacheName string) {
	m.cacheMisses.WithLabelValues(cacheName).Inc()
}
