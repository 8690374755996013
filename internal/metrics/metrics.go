// Package metrics holds the prometheus collectors of the session layer.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/go-chat-client/models"
)

const (
	namespace = "chat_client"

	ResultSuccess = "success"
	ResultFailure = "failure"
)

type Metrics struct {
	refreshTotal            *prometheus.CounterVec
	refreshQueuedCalls      prometheus.Counter
	connectionState         prometheus.Gauge
	connectsTotal           prometheus.Counter
	malformedPayloads       prometheus.Counter
	notificationsDispatched *prometheus.CounterVec
}

// New creates the collectors and registers them on registry. Collectors that
// are already registered are reused.
func New(registry prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		refreshTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "refresh_total",
			Help:      "Number of token refresh cycles by result.",
		}, []string{"result"}),
		refreshQueuedCalls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "refresh_queued_calls_total",
			Help:      "Number of calls that waited for an in-flight refresh.",
		}),
		connectionState: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "realtime",
			Name:      "connection_state",
			Help:      "Realtime connection state: 0 disconnected, 1 connecting, 2 connected.",
		}),
		connectsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "realtime",
			Name:      "connects_total",
			Help:      "Number of connected events, reconnects included.",
		}),
		malformedPayloads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "realtime",
			Name:      "malformed_payloads_total",
			Help:      "Number of inbound payloads dropped because they could not be decoded.",
		}),
		notificationsDispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "realtime",
			Name:      "notifications_dispatched_total",
			Help:      "Number of notifications fanned out by category.",
		}, []string{"category"}),
	}

	var err error
	if m.refreshTotal, err = register(registry, m.refreshTotal); err != nil {
		return nil, err
	}
	if m.refreshQueuedCalls, err = register(registry, m.refreshQueuedCalls); err != nil {
		return nil, err
	}
	if m.connectionState, err = register(registry, m.connectionState); err != nil {
		return nil, err
	}
	if m.connectsTotal, err = register(registry, m.connectsTotal); err != nil {
		return nil, err
	}
	if m.malformedPayloads, err = register(registry, m.malformedPayloads); err != nil {
		return nil, err
	}
	if m.notificationsDispatched, err = register(registry, m.notificationsDispatched); err != nil {
		return nil, err
	}

	return m, nil
}

func register[C prometheus.Collector](registry prometheus.Registerer, c C) (C, error) {
	var alreadyRegistered prometheus.AlreadyRegisteredError
	err := registry.Register(c)
	if err == nil {
		return c, nil
	}
	if errors.As(err, &alreadyRegistered) {
		if existing, ok := alreadyRegistered.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	return c, err
}

func (m *Metrics) RefreshSucceeded() {
	if m == nil {
		return
	}
	m.refreshTotal.WithLabelValues(ResultSuccess).Inc()
}

func (m *Metrics) RefreshFailed() {
	if m == nil {
		return
	}
	m.refreshTotal.WithLabelValues(ResultFailure).Inc()
}

func (m *Metrics) RefreshQueued() {
	if m == nil {
		return
	}
	m.refreshQueuedCalls.Inc()
}

// SetConnectionState records the current state; a transition to Connected
// also counts a connect.
func (m *Metrics) SetConnectionState(s models.ConnectionState) {
	if m == nil {
		return
	}
	m.connectionState.Set(float64(s))
	if s == models.Connected {
		m.connectsTotal.Inc()
	}
}

func (m *Metrics) MalformedPayload() {
	if m == nil {
		return
	}
	m.malformedPayloads.Inc()
}

func (m *Metrics) NotificationDispatched(category models.NotificationCategory) {
	if m == nil {
		return
	}
	m.notificationsDispatched.WithLabelValues(string(category)).Inc()
}
