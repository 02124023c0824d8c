// Package metrics records transformation and replication activity.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Lockout kinds
const (
	LockoutFatigue    = "fatigue"
	LockoutExhaustion = "exhaustion"
)

// Sync outcomes
const (
	SyncSent          = "sent"
	SyncSendFailed    = "send_failed"
	SyncApplied       = "applied"
	SyncUnknownEntity = "unknown_entity"
	SyncAuthoritative = "authoritative"
	SyncMalformed     = "malformed"
)

// Recorder receives domain measurements. Implementations must be safe for
// concurrent use.
type Recorder interface {
	TransformApplied(form, branch string)
	TransformRejected(form, reason string)
	FormCleared(form string)
	LockoutApplied(kind string)
	MasteryAdvanced(track string)
	Sync(outcome string)
	SessionEntities(count int)
	TickDuration(d time.Duration)
}

// Noop discards every measurement
type Noop struct{}

func (Noop) TransformApplied(string, string)  {}
func (Noop) TransformRejected(string, string) {}
func (Noop) FormCleared(string)               {}
func (Noop) LockoutApplied(string)            {}
func (Noop) MasteryAdvanced(string)           {}
func (Noop) Sync(string)                      {}
func (Noop) SessionEntities(int)              {}
func (Noop) TickDuration(time.Duration)       {}

// Prometheus exports measurements as prometheus collectors
type Prometheus struct {
	applied   *prometheus.CounterVec
	rejected  *prometheus.CounterVec
	cleared   *prometheus.CounterVec
	lockouts  *prometheus.CounterVec
	mastery   *prometheus.CounterVec
	sync      *prometheus.CounterVec
	entities  prometheus.Gauge
	tickTimes prometheus.Histogram
}

// NewPrometheus creates the collectors and registers them with reg
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	p := &Prometheus{
		applied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "forms",
			Name:      "transforms_applied_total",
			Help:      "Forms entered, by form and branch.",
		}, []string{"form", "branch"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "forms",
			Name:      "transforms_rejected_total",
			Help:      "Transform requests refused, by form and reason.",
		}, []string{"form", "reason"}),
		cleared: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "forms",
			Name:      "forms_cleared_total",
			Help:      "Forms left through power-down or switching.",
		}, []string{"form"}),
		lockouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "forms",
			Name:      "lockouts_applied_total",
			Help:      "Fatigue and exhaustion lockouts applied.",
		}, []string{"kind"}),
		mastery: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "forms",
			Name:      "mastery_increments_total",
			Help:      "Mastery level increments, by track.",
		}, []string{"track"}),
		sync: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "forms",
			Name:      "sync_messages_total",
			Help:      "Form sync messages, by outcome.",
		}, []string{"outcome"}),
		entities: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "forms",
			Name:      "session_entities",
			Help:      "Entities joined to the session.",
		}),
		tickTimes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "forms",
			Name:      "tick_duration_seconds",
			Help:      "Time spent advancing one simulation tick.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 2, 12),
		}),
	}

	for _, c := range []prometheus.Collector{
		p.applied, p.rejected, p.cleared, p.lockouts, p.mastery, p.sync, p.entities, p.tickTimes,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func (p *Prometheus) TransformApplied(form, branch string) {
	p.applied.WithLabelValues(form, branch).Inc()
}

func (p *Prometheus) TransformRejected(form, reason string) {
	p.rejected.WithLabelValues(form, reason).Inc()
}

func (p *Prometheus) FormCleared(form string) {
	p.cleared.WithLabelValues(form).Inc()
}

func (p *Prometheus) LockoutApplied(kind string) {
	p.lockouts.WithLabelValues(kind).Inc()
}

func (p *Prometheus) MasteryAdvanced(track string) {
	p.mastery.WithLabelValues(track).Inc()
}

func (p *Prometheus) Sync(outcome string) {
	p.sync.WithLabelValues(outcome).Inc()
}

func (p *Prometheus) SessionEntities(count int) {
	p.entities.Set(float64(count))
}

func (p *Prometheus) TickDuration(d time.Duration) {
	p.tickTimes.Observe(d.Seconds())
}
