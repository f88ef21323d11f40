// Package promhook exports storage events as Prometheus counters.
package promhook

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/unkn0wn-root/cachestore"
)

// Hooks counts events. Keys are never used as label values.
type Hooks struct {
	connects prometheus.Counter
	dropped  *prometheus.CounterVec
	renewed  prometheus.Counter
	renewTTL prometheus.Histogram
	flushes  prometheus.Counter
	cleaned  prometheus.Counter
}

var _ cachestore.Hooks = (*Hooks)(nil)

// New registers the collectors with reg. A nil reg uses the default
// registerer.
func New(reg prometheus.Registerer, namespace string) (*Hooks, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	h := &Hooks{
		connects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cachestore",
			Name:      "connects_total",
			Help:      "Successful transport connections.",
		}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cachestore",
			Name:      "entries_dropped_total",
			Help:      "Entries deleted on read, by reason.",
		}, []string{"reason"}),
		renewed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cachestore",
			Name:      "entries_renewed_total",
			Help:      "Sliding entries whose TTL was reset on read.",
		}),
		renewTTL: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "cachestore",
			Name:      "renew_ttl_seconds",
			Help:      "TTL applied when renewing sliding entries.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		flushes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cachestore",
			Name:      "flushes_total",
			Help:      "Clean(All) flushes.",
		}),
		cleaned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cachestore",
			Name:      "journal_cleaned_keys_total",
			Help:      "Keys deleted by journal-driven Clean.",
		}),
	}
	for _, c := range []prometheus.Collector{h.connects, h.dropped, h.renewed, h.renewTTL, h.flushes, h.cleaned} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *Hooks) Connected(string) { h.connects.Inc() }

func (h *Hooks) EntryDropped(_ string, reason string) {
	h.dropped.WithLabelValues(reason).Inc()
}

func (h *Hooks) EntryRenewed(_ string, delta time.Duration) {
	h.renewed.Inc()
	h.renewTTL.Observe(delta.Seconds())
}

func (h *Hooks) Flushed() { h.flushes.Inc() }

func (h *Hooks) JournalCleaned(count int) { h.cleaned.Add(float64(count)) }
