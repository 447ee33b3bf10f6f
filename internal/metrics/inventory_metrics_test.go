package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewInventoryMetrics(t *testing.T) {
	metrics := NewInventoryMetrics()

	if metrics == nil {
		t.Fatal("NewInventoryMetrics should not return nil")
	}

	if metrics.adjustStarted == nil {
		t.Error("adjustStarted counter should not be nil")
	}

	if metrics.adjustSucceeded == nil {
		t.Error("adjustSucceeded counter should not be nil")
	}

	if metrics.adjustFailed == nil {
		t.Error("adjustFailed counter should not be nil")
	}

	if metrics.adjustRolledBack == nil {
		t.Error("adjustRolledBack counter should not be nil")
	}

	if metrics.adjustDuration == nil {
		t.Error("adjustDuration histogram should not be nil")
	}

	if metrics.lockWait == nil {
		t.Error("lockWait histogram should not be nil")
	}

	if metrics.cacheHits == nil {
		t.Error("cacheHits counter vec should not be nil")
	}

	if metrics.cacheMisses == nil {
		t.Error("cacheMisses counter vec should not be nil")
	}

	if metrics.activeAdjustments == nil {
		t.Error("activeAdjustments gauge should not be nil")
	}
}

func TestRegisterTwiceReturnsExistingCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	first := newInventoryMetricsWithRegisterer(reg)
	second := newInventoryMetricsWithRegisterer(reg)

	if first.adjustStarted != second.adjustStarted {
		t.Error("repeated registration should return the existing counter")
	}

	if first.activeAdjustments != second.activeAdjustments {
		t.Error("repeated registration should return the existing gauge")
	}

	if first.cacheHits != second.cacheHits {
		t.Error("repeated registration should return the existing counter vec")
	}
}

func TestRecordAdjustmentStarted(t *testing.T) {
	reg := prometheus.NewRegistry()

	adjustStarted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_adjustments_started_total",
		Help: "Test counter",
	})
	activeAdjustments := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "test_active_adjustments",
		Help: "Test gauge",
	})

	reg.MustRegister(adjustStarted, activeAdjustments)

	metrics := &InventoryMetrics{
		adjustStarted:     adjustStarted,
		activeAdjustments: activeAdjustments,
	}

	metrics.RecordAdjustmentStarted()

	metric := &dto.Metric{}
	if err := adjustStarted.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}

	if metric.Counter.GetValue() != 1.0 {
		t.Errorf("expected counter value 1.0, got %f", metric.Counter.GetValue())
	}

	gaugeMetric := &dto.Metric{}
	if err := activeAdjustments.Write(gaugeMetric); err != nil {
		t.Fatalf("failed to write gauge: %v", err)
	}

	if gaugeMetric.Gauge.GetValue() != 1.0 {
		t.Errorf("expected active adjustments 1.0, got %f", gaugeMetric.Gauge.GetValue())
	}
}

func TestRecordAdjustmentOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()

	adjustSucceeded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_adjustments_succeeded_total",
		Help: "Test counter",
	})
	adjustFailed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_adjustments_failed_total",
		Help: "Test counter",
	})
	adjustRolledBack := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_rollbacks_total",
		Help: "Test counter",
	})

	reg.MustRegister(adjustSucceeded, adjustFailed, adjustRolledBack)

	metrics := &InventoryMetrics{
		adjustSucceeded:  adjustSucceeded,
		adjustFailed:     adjustFailed,
		adjustRolledBack: adjustRolledBack,
	}

	metrics.RecordAdjustmentSucceeded()
	metrics.RecordAdjustmentSucceeded()
	metrics.RecordAdjustmentFailed()
	metrics.RecordRollback()

	succeeded := &dto.Metric{}
	if err := adjustSucceeded.Write(succeeded); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}

	if succeeded.Counter.GetValue() != 2.0 {
		t.Errorf("expected 2 succeeded batches, got %f", succeeded.Counter.GetValue())
	}

	failed := &dto.Metric{}
	if err := adjustFailed.Write(failed); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}

	if failed.Counter.GetValue() != 1.0 {
		t.Errorf("expected 1 failed batch, got %f", failed.Counter.GetValue())
	}

	rolledBack := &dto.Metric{}
	if err := adjustRolledBack.Write(rolledBack); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}

	if rolledBack.Counter.GetValue() != 1.0 {
		t.Errorf("expected 1 rollback, got %f", rolledBack.Counter.GetValue())
	}
}

func TestRecordAdjustmentDuration(t *testing.T) {
	reg := prometheus.NewRegistry()

	adjustDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "test_adjustment_duration_seconds",
		Help:    "Test histogram",
		Buckets: prometheus.DefBuckets,
	})

	reg.MustRegister(adjustDuration)

	metrics := &InventoryMetrics{
		adjustDuration: adjustDuration,
	}

	metrics.RecordAdjustmentDuration(100 * time.Millisecond)
	metrics.RecordAdjustmentDuration(500 * time.Millisecond)
	metrics.RecordAdjustmentDuration(1 * time.Second)

	metric := &dto.Metric{}
	if err := adjustDuration.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}

	if metric.Histogram.GetSampleCount() != 3 {
		t.Errorf("expected 3 samples, got %d", metric.Histogram.GetSampleCount())
	}

	// Check sum is approximately correct (0.1 + 0.5 + 1.0 = 1.6)
	sum := metric.Histogram.GetSampleSum()
	if sum < 1.5 || sum > 1.7 {
		t.Errorf("expected sum around 1.6, got %f", sum)
	}
}

func TestRecordLockWait(t *testing.T) {
	reg := prometheus.NewRegistry()

	lockWait := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "test_lock_wait_seconds",
		Help:    "Test histogram",
		Buckets: []float64{0.001, 0.01, 0.1, 1.0},
	})

	reg.MustRegister(lockWait)

	metrics := &InventoryMetrics{
		lockWait: lockWait,
	}

	metrics.RecordLockWait(5 * time.Millisecond)
	metrics.RecordLockWait(50 * time.Millisecond)

	metric := &dto.Metric{}
	if err := lockWait.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}

	if metric.Histogram.GetSampleCount() != 2 {
		t.Errorf("expected 2 samples, got %d", metric.Histogram.GetSampleCount())
	}
}

func TestRecordCacheHitAndMiss(t *testing.T) {
	reg := prometheus.NewRegistry()

	cacheHits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "test_cache_hits_total",
		Help: "Test counter vec",
	}, []string{"cache"})
	cacheMisses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "test_cache_misses_total",
		Help: "Test counter vec",
	}, []string{"cache"})

	reg.MustRegister(cacheHits, cacheMisses)

	metrics := &InventoryMetrics{
		cacheHits:   cacheHits,
		cacheMisses: cacheMisses,
	}

	metrics.RecordCacheHit("product")
	metrics.RecordCacheHit("product")
	metrics.RecordCacheHit("search")
	metrics.RecordCacheMiss("product")

	productHits := &dto.Metric{}
	counter, err := cacheHits.GetMetricWithLabelValues("product")
	if err != nil {
		t.Fatalf("failed to get counter: %v", err)
	}
	if err := counter.Write(productHits); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}

	if productHits.Counter.GetValue() != 2.0 {
		t.Errorf("expected 2 product cache hits, got %f", productHits.Counter.GetValue())
	}

	productMisses := &dto.Metric{}
	counter, err = cacheMisses.GetMetricWithLabelValues("product")
	if err != nil {
		t.Fatalf("failed to get counter: %v", err)
	}
	if err := counter.Write(productMisses); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}

	if productMisses.Counter.GetValue() != 1.0 {
		t.Errorf("expected 1 product cache miss, got %f", productMisses.Counter.GetValue())
	}
}

func TestAdjustmentLifecycle(t *testing.T) {
	reg := prometheus.NewRegistry()

	activeAdjustments := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "test_lifecycle_active",
		Help: "Test gauge",
	})
	adjustStarted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_lifecycle_started",
		Help: "Test counter",
	})
	adjustSucceeded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_lifecycle_succeeded",
		Help: "Test counter",
	})

	reg.MustRegister(activeAdjustments, adjustStarted, adjustSucceeded)

	metrics := &InventoryMetrics{
		activeAdjustments: activeAdjustments,
		adjustStarted:     adjustStarted,
		adjustSucceeded:   adjustSucceeded,
	}

	metrics.RecordAdjustmentStarted() // active: 1
	metrics.RecordAdjustmentStarted() // active: 2
	metrics.RecordAdjustmentStarted() // active: 3

	metrics.RecordAdjustmentSucceeded()
	metrics.RecordAdjustmentFinished() // active: 2
	metrics.RecordAdjustmentSucceeded()
	metrics.RecordAdjustmentFinished() // active: 1

	gaugeMetric := &dto.Metric{}
	if err := activeAdjustments.Write(gaugeMetric); err != nil {
		t.Fatalf("failed to write gauge: %v", err)
	}

	if gaugeMetric.Gauge.GetValue() != 1.0 {
		t.Errorf("expected 1 active adjustment, got %f", gaugeMetric.Gauge.GetValue())
	}

	startedMetric := &dto.Metric{}
	if err := adjustStarted.Write(startedMetric); err != nil {
		t.Fatalf("failed to write started metric: %v", err)
	}

	if startedMetric.Counter.GetValue() != 3.0 {
		t.Errorf("expected 3 started adjustments, got %f", startedMetric.Counter.GetValue())
	}
}
