package status_poller

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is optional; every method is a no-op on a nil receiver.
type Metrics struct {
	probes       *prometheus.CounterVec
	skippedTicks prometheus.Counter
	connectedG   prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		probes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "status_poller",
			Name:      "probes_total",
			Help:      "Completed probes by result",
		}, []string{"result"}),
		skippedTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "status_poller",
			Name:      "skipped_ticks_total",
			Help:      "Ticks skipped because a probe was still in flight",
		}),
		connectedG: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "status_poller",
			Name:      "backend_connected",
			Help:      "1 when the last probe reached the backend, 0 otherwise",
		}),
	}
	for _, c := range []prometheus.Collector{m.probes, m.skippedTicks, m.connectedG} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func probeResultLabel(state ConnectionState) string {
	if state.Connected {
		return "success"
	}
	var probeErr *ProbeError
	if errors.As(state.Err, &probeErr) {
		return string(probeErr.Kind)
	}
	return "error"
}

func (m *Metrics) probed(state ConnectionState) {
	if m == nil {
		return
	}
	m.probes.WithLabelValues(probeResultLabel(state)).Inc()
}

func (m *Metrics) skipped() {
	if m == nil {
		return
	}
	m.skippedTicks.Inc()
}

func (m *Metrics) connected(connected bool) {
	if m == nil {
		return
	}
	if connected {
		m.connectedG.Set(1)
	} else {
		m.connectedG.Set(0)
	}
}
