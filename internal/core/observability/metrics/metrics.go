package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zeusync/skyfire/internal/core/observability/interfaces"
)

const namespace = "skyfire"

var (
	_ interfaces.Recorder = (*Prometheus)(nil)
	_ interfaces.Recorder = Nop{}
)

// Prometheus records simulation telemetry on its own registry so several
// games (tests, benchmarks) can coexist in one process.
type Prometheus struct {
	registry *prometheus.Registry

	spawned    *prometheus.CounterVec
	despawned  *prometheus.CounterVec
	collisions *prometheus.CounterVec
	alive      prometheus.Gauge
	published  *prometheus.CounterVec
	missed     *prometheus.CounterVec
	tick       prometheus.Histogram
	system     *prometheus.HistogramVec
}

func NewPrometheus() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		spawned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entities_spawned_total",
			Help:      "Entities created, by kind.",
		}, []string{"kind"}),
		despawned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entities_despawned_total",
			Help:      "Entities removed, by kind and reason.",
		}, []string{"kind", "reason"}),
		collisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "collisions_total",
			Help:      "Resolved laser hits, by target faction.",
		}, []string{"target"}),
		alive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "entities_alive",
			Help:      "Entities alive at the end of the last tick.",
		}),
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Events appended to a stream.",
		}, []string{"stream"}),
		missed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_missed_total",
			Help:      "Events dropped from a stream before a reader consumed them.",
		}, []string{"stream", "reader"}),
		tick: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Wall time spent simulating one tick.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
		system: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "system_duration_seconds",
			Help:      "Wall time spent in one system update.",
			Buckets:   prometheus.ExponentialBuckets(0.000001, 4, 8),
		}, []string{"system"}),
	}

	p.registry.MustRegister(p.spawned, p.despawned, p.collisions, p.alive, p.published, p.missed, p.tick, p.system)
	return p
}

// Registry exposes the underlying registry, mostly for tests.
func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }

// Handler serves the registry in the Prometheus text format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

func (p *Prometheus) EntitySpawned(kind string) {
	p.spawned.WithLabelValues(kind).Inc()
}

func (p *Prometheus) EntityDespawned(kind, reason string) {
	p.despawned.WithLabelValues(kind, reason).Inc()
}

func (p *Prometheus) Collision(target string) {
	p.collisions.WithLabelValues(target).Inc()
}

func (p *Prometheus) EntitiesAlive(n int) {
	p.alive.Set(float64(n))
}

func (p *Prometheus) EventsPublished(stream string, n int) {
	p.published.WithLabelValues(stream).Add(float64(n))
}

func (p *Prometheus) EventsMissed(stream, reader string, n int) {
	p.missed.WithLabelValues(stream, reader).Add(float64(n))
}

func (p *Prometheus) TickDuration(d time.Duration) {
	p.tick.Observe(d.Seconds())
}

func (p *Prometheus) SystemDuration(system string, d time.Duration) {
	p.system.WithLabelValues(system).Observe(d.Seconds())
}

// Nop discards everything.
type Nop struct{}

func (Nop) EntitySpawned(string)                 {}
func (Nop) EntityDespawned(string, string)       {}
func (Nop) Collision(string)                     {}
func (Nop) EntitiesAlive(int)                    {}
func (Nop) EventsPublished(string, int)          {}
func (Nop) EventsMissed(string, string, int)     {}
func (Nop) TickDuration(time.Duration)           {}
func (Nop) SystemDuration(string, time.Duration) {}
