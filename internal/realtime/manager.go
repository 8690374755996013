// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package realtime

import (
	"slices"
	"sync"

	"github.com/MKhiriev/go-chat-client/internal/adapter"
	"github.com/MKhiriev/go-chat-client/internal/logger"
	"github.com/MKhiriev/go-chat-client/internal/metrics"
	"github.com/MKhiriev/go-chat-client/internal/utils"
	"github.com/MKhiriev/go-chat-client/models"
)

// Handler receives every message delivered on a topic.
type Handler func(models.Message)

// Subscriber is the topic-level surface of [Manager] used by the dispatcher
// and the conversation helpers.
type Subscriber interface {
	Subscribe(topic string, h Handler)
	Unsubscribe(topic string)
}

type subscription struct {
	id      string
	handler Handler
}

type pendingTopic struct {
	topic    string
	handlers []Handler
}

type route struct {
	topic   string
	handler Handler
}

// Manager owns the realtime connection of the process. All state is guarded
// by one mutex; user callbacks run without it.
type Manager struct {
	transport Transport
	tokens    adapter.TokenSource
	ids       *utils.UUIDGenerator
	metrics   *metrics.Metrics
	log       *logger.Logger

	mu      sync.Mutex
	state   models.ConnectionState
	onReady []func()
	pending []*pendingTopic
	active  map[string]subscription

	// activated is set by Connect and cleared by Disconnect; connect events
	// arriving while it is unset are stale.
	activated bool

	// routes are the topics to restore after every (re)connect, in the
	// order they were first subscribed, each with its latest handler.
	routes []route
}

// NewManager wires the manager to transport and installs its lifecycle
// callbacks.
func NewManager(transport Transport, tokens adapter.TokenSource, m *metrics.Metrics, log *logger.Logger) *Manager {
	mgr := &Manager{
		transport: transport,
		tokens:    tokens,
		ids:       utils.NewUUIDGenerator(),
		metrics:   m,
		log:       log.Component("realtime"),
		active:    make(map[string]subscription),
	}
	transport.SetLifecycle(mgr.handleConnect, mgr.handleClose)
	m.SetConnectionState(models.Disconnected)
	return mgr
}

// State returns the current connection state.
func (m *Manager) State() models.ConnectionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Connect opens the connection when it is disconnected. onReady, when not
// nil, runs once the connection is established; immediately when it
// already is.
func (m *Manager) Connect(onReady func()) {
	m.mu.Lock()
	switch m.state {
	case models.Connected:
		m.mu.Unlock()
		if onReady != nil {
			onReady()
		}
		return
	case models.Connecting:
		if onReady != nil {
			m.onReady = append(m.onReady, onReady)
		}
		m.mu.Unlock()
		return
	}

	token := m.tokens.AccessToken()
	if token == "" {
		m.mu.Unlock()
		m.log.Warn().Err(ErrNoCredential).Msg("connect skipped")
		return
	}

	if onReady != nil {
		m.onReady = append(m.onReady, onReady)
	}
	m.activated = true
	m.setState(models.Connecting)
	m.transport.Activate(map[string]string{"Authorization": "Bearer " + token})
	m.mu.Unlock()

	m.log.Info().Msg("connecting")
}

// Disconnect closes the connection. A forced disconnect always deactivates
// the transport and also discards queued subscriptions and onReady
// callbacks. Topics that were active are restored by the next connect.
func (m *Manager) Disconnect(force bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if force || m.transport.Active() {
		m.transport.Deactivate()
	}
	if force {
		m.onReady = nil
		m.pending = nil
	}
	m.activated = false
	clear(m.active)
	m.setState(models.Disconnected)

	m.log.Info().Bool("force", force).Msg("disconnected")
}

// Shutdown disconnects and forgets every topic, so a later connect starts
// from scratch. It is used on logout.
func (m *Manager) Shutdown() {
	m.Disconnect(true)

	m.mu.Lock()
	m.routes = nil
	m.mu.Unlock()
}

// Subscribe attaches h to topic. While not connected the request is queued
// and a connect is started; it is replayed once the connection is ready.
// A topic that is already active is left untouched.
func (m *Manager) Subscribe(topic string, h Handler) {
	m.mu.Lock()
	if m.state != models.Connected {
		// a queued subscription replaces the restore entry
		m.dropRoute(topic)
		m.enqueue(topic, h)
		m.mu.Unlock()

		m.log.Debug().Str("topic", topic).Msg("subscription queued until connected")
		m.Connect(nil)
		return
	}
	m.subscribeLocked(topic, h)
	m.mu.Unlock()
}

// Unsubscribe cancels the subscription to topic and forgets it for later
// reconnects.
func (m *Manager) Unsubscribe(topic string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.dropRoute(topic)
	m.pending = slices.DeleteFunc(m.pending, func(p *pendingTopic) bool { return p.topic == topic })

	sub, ok := m.active[topic]
	if !ok {
		return
	}
	delete(m.active, topic)
	if err := m.transport.Unsubscribe(sub.id); err != nil {
		m.log.Warn().Err(err).Str("topic", topic).Msg("unsubscribe failed")
		return
	}
	m.log.Debug().Str("topic", topic).Msg("unsubscribed")
}

// Subscribed reports whether topic has an active subscription.
func (m *Manager) Subscribed(topic string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.active[topic]
	return ok
}

// Topics returns the actively subscribed topics, sorted.
func (m *Manager) Topics() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	topics := make([]string, 0, len(m.active))
	for topic := range m.active {
		topics = append(topics, topic)
	}
	slices.Sort(topics)
	return topics
}

func (m *Manager) handleConnect() {
	m.mu.Lock()
	if !m.activated {
		m.mu.Unlock()
		m.log.Debug().Msg("connect event after disconnect ignored")
		return
	}
	m.setState(models.Connected)
	ready := m.onReady
	m.onReady = nil
	m.mu.Unlock()

	m.log.Info().Msg("connected")

	for _, fn := range ready {
		fn()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// a callback may have disconnected again
	if m.state != models.Connected {
		return
	}

	for _, r := range slices.Clone(m.routes) {
		m.subscribeLocked(r.topic, r.handler)
	}

	pending := m.pending
	m.pending = nil
	for _, p := range pending {
		for _, h := range p.handlers {
			m.subscribeLocked(p.topic, h)
		}
	}
}

func (m *Manager) handleClose(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	clear(m.active)
	if m.state == models.Disconnected {
		return
	}
	m.setState(models.Disconnected)
	m.log.Warn().Err(err).Msg("connection lost")
}

// subscribeLocked subscribes on the live connection. m.mu must be held.
func (m *Manager) subscribeLocked(topic string, h Handler) {
	if _, ok := m.active[topic]; ok {
		m.log.Debug().Str("topic", topic).Msg("already subscribed, skipping")
		return
	}

	id := m.ids.Generate()
	if err := m.transport.Subscribe(id, topic, h); err != nil {
		m.log.Warn().Err(err).Str("topic", topic).Msg("subscribe failed")
		return
	}
	m.active[topic] = subscription{id: id, handler: h}
	if i := slices.IndexFunc(m.routes, func(r route) bool { return r.topic == topic }); i >= 0 {
		m.routes[i].handler = h
	} else {
		m.routes = append(m.routes, route{topic: topic, handler: h})
	}

	m.log.Debug().Str("topic", topic).Str("subscription_id", id).Msg("subscribed")
}

func (m *Manager) enqueue(topic string, h Handler) {
	for _, p := range m.pending {
		if p.topic == topic {
			p.handlers = append(p.handlers, h)
			return
		}
	}
	m.pending = append(m.pending, &pendingTopic{topic: topic, handlers: []Handler{h}})
}

func (m *Manager) dropRoute(topic string) {
	m.routes = slices.DeleteFunc(m.routes, func(r route) bool { return r.topic == topic })
}

func (m *Manager) setState(s models.ConnectionState) {
	m.state = s
	m.metrics.SetConnectionState(s)
}
