package metrics

import (
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/akyairhashvil/stoplicht/internal/models"
)

const namespace = "stoplicht"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	starts         prom.Counter
	startedMinutes prom.Histogram
	outcomes       *prom.CounterVec
	rejected       prom.Counter
	chimeFailures  prom.Counter
	remaining      prom.Gauge
}

// NewPrometheusRecorder registers the timer metrics on reg; a nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		starts: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "timer_starts_total",
			Help:      "Countdowns started",
		}),
		startedMinutes: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "timer_requested_minutes",
			Help:      "Minutes requested per countdown",
			Buckets:   []float64{1, 2, 5, 10, 15, 20, 30, 45, 59},
		}),
		outcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "timer_outcomes_total",
			Help:      "Countdowns ended, by outcome",
		}, []string{"outcome"}),
		rejected: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "timer_rejected_inputs_total",
			Help:      "Start requests refused for invalid minutes",
		}),
		chimeFailures: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "chime_failures_total",
			Help:      "Chimes that could not be played",
		}),
		remaining: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "timer_remaining_seconds",
			Help:      "Seconds left on the running countdown",
		}),
	}
	reg.MustRegister(pr.starts, pr.startedMinutes, pr.outcomes, pr.rejected, pr.chimeFailures, pr.remaining)
	return pr
}

func (p *PrometheusRecorder) IncStart(minutes int) {
	if p == nil {
		return
	}
	p.starts.Inc()
	p.startedMinutes.Observe(float64(minutes))
}

func (p *PrometheusRecorder) IncOutcome(outcome models.SessionOutcome) {
	if p == nil {
		return
	}
	p.outcomes.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncRejected() {
	if p == nil {
		return
	}
	p.rejected.Inc()
}

func (p *PrometheusRecorder) IncChimeFailure() {
	if p == nil {
		return
	}
	p.chimeFailures.Inc()
}

func (p *PrometheusRecorder) SetRemaining(seconds int) {
	if p == nil {
		return
	}
	p.remaining.Set(float64(seconds))
}

// HTTPHandler serves the metrics of reg.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
