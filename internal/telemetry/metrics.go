package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics: Prometheus коллекторы Kannon.
//
// Все методы безопасны для nil *Metrics (метрики отключены).
type Metrics struct {
	tasks        *prometheus.CounterVec
	taskDuration prometheus.Histogram
	gateWait     prometheus.Histogram
	workers      prometheus.Gauge
	exclusive    prometheus.Gauge
}

// NewMetrics регистрирует коллекторы в reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		tasks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kannon_tasks_total",
			Help: "Tasks processed, by final status",
		}, []string{"status"}),
		taskDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "kannon_task_duration_seconds",
			Help:    "Wall time of a single task body",
			Buckets: prometheus.DefBuckets,
		}),
		gateWait: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "kannon_gate_wait_seconds",
			Help:    "Time spent waiting for the exclusive region",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		workers: factory.NewGauge(prometheus.GaugeOpts{
			Name: "kannon_workers_active",
			Help: "Workers currently consuming from the task queue",
		}),
		exclusive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "kannon_exclusive_region_active",
			Help: "1 while a task holds the exclusive region",
		}),
	}
}

// TaskFinished учитывает завершённую задачу.
func (m *Metrics) TaskFinished(status string, d time.Duration) {
	if m == nil {
		return
	}
	m.tasks.WithLabelValues(status).Inc()
	m.taskDuration.Observe(d.Seconds())
}

// GateWaited учитывает ожидание эксклюзивной области.
func (m *Metrics) GateWaited(d time.Duration) {
	if m == nil {
		return
	}
	m.gateWait.Observe(d.Seconds())
}

// WorkerStarted / WorkerStopped ведут счётчик активных воркеров.
func (m *Metrics) WorkerStarted() {
	if m == nil {
		return
	}
	m.workers.Inc()
}

func (m *Metrics) WorkerStopped() {
	if m == nil {
		return
	}
	m.workers.Dec()
}

// RegionEntered / RegionLeft отмечают занятость эксклюзивной области.
func (m *Metrics) RegionEntered() {
	if m == nil {
		return
	}
	m.exclusive.Set(1)
}

func (m *Metrics) RegionLeft() {
	if m == nil {
		return
	}
	m.exclusive.Set(0)
}
