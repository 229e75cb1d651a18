package socialhttp

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts settings outcomes.
type Metrics struct {
	saves       *prometheus.CounterVec
	disconnects *prometheus.CounterVec
}

// NewMetrics registers the counters with reg (prometheus.DefaultRegisterer
// when nil). Registering twice on one registry reuses the existing counters.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	saves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sociallogin_settings_saves_total",
		Help: "Admin settings saves by result.",
	}, []string{"result"}) // saved|rejected|invalid_request|failed
	disconnects := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sociallogin_disconnects_total",
		Help: "Social login disconnects by result.",
	}, []string{"result"}) // ok|invalid_request_token|failed

	var err error
	if saves, err = registerCounter(reg, saves); err != nil {
		return nil, err
	}
	if disconnects, err = registerCounter(reg, disconnects); err != nil {
		return nil, err
	}
	return &Metrics{saves: saves, disconnects: disconnects}, nil
}

func registerCounter(reg prometheus.Registerer, c *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return c, nil
}

// ObserveSave counts one admin settings save. Nil receivers are no-ops.
func (m *Metrics) ObserveSave(result string) {
	if m != nil {
		m.saves.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) ObserveDisconnect(result string) {
	if m != nil {
		m.disconnects.WithLabelValues(result).Inc()
	}
}
