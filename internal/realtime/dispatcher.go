// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package realtime

import (
	"slices"
	"sync"

	"github.com/segmentio/encoding/json"

	"github.com/MKhiriev/go-chat-client/internal/logger"
	"github.com/MKhiriev/go-chat-client/internal/metrics"
	"github.com/MKhiriev/go-chat-client/models"
)

// Listener identifies one registered notification callback.
type Listener uint64

type entry[T any] struct {
	id Listener
	fn func(T)
}

// registry is an ordered list of callbacks for one category.
type registry[T any] struct {
	entries []entry[T]
}

func (r *registry[T]) add(id Listener, fn func(T)) {
	r.entries = append(r.entries, entry[T]{id: id, fn: fn})
}

func (r *registry[T]) remove(id Listener) bool {
	n := len(r.entries)
	r.entries = slices.DeleteFunc(r.entries, func(e entry[T]) bool { return e.id == id })
	return len(r.entries) != n
}

func (r *registry[T]) snapshot() []entry[T] {
	return slices.Clone(r.entries)
}

func notify[T any](listeners []entry[T], v T) {
	for _, l := range listeners {
		l.fn(v)
	}
}

// Dispatcher fans the per-user notifications out to listeners by category.
type Dispatcher struct {
	subscriber Subscriber
	metrics    *metrics.Metrics
	log        *logger.Logger

	mu               sync.Mutex
	next             Listener
	friendRequests   registry[models.FriendRequest]
	groupInvitations registry[models.GroupInvitation]
	topic            string
}

func NewDispatcher(subscriber Subscriber, m *metrics.Metrics, log *logger.Logger) *Dispatcher {
	return &Dispatcher{subscriber: subscriber, metrics: m, log: log.Component("notifications")}
}

// OnFriendRequest registers fn for FRIEND_REQUEST notifications.
func (d *Dispatcher) OnFriendRequest(fn func(models.FriendRequest)) Listener {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.next++
	d.friendRequests.add(d.next, fn)
	return d.next
}

// OnGroupInvitation registers fn for GROUP_INVITATION notifications.
func (d *Dispatcher) OnGroupInvitation(fn func(models.GroupInvitation)) Listener {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.next++
	d.groupInvitations.add(d.next, fn)
	return d.next
}

// Remove unregisters l. Removing an unknown listener is a no-op.
func (d *Dispatcher) Remove(l Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.friendRequests.remove(l) {
		d.groupInvitations.remove(l)
	}
}

// SubscribeUserNotifications (re)subscribes to the notification topic of
// userID. An existing subscription on that topic, or on the topic of a
// previous user, is replaced.
func (d *Dispatcher) SubscribeUserNotifications(userID int64) {
	topic := NotificationsTopic(userID)

	d.mu.Lock()
	previous := d.topic
	d.topic = topic
	d.mu.Unlock()

	if previous != "" && previous != topic {
		d.subscriber.Unsubscribe(previous)
	}
	d.subscriber.Unsubscribe(topic)
	d.subscriber.Subscribe(topic, func(msg models.Message) { d.Dispatch(msg.Body) })

	d.log.Info().Int64("user_id", userID).Str("topic", topic).Msg("listening for notifications")
}

// Dispatch decodes one notification payload and invokes the listeners of
// its category in registration order. Unknown categories and malformed
// payloads are logged and dropped.
func (d *Dispatcher) Dispatch(payload []byte) {
	var envelope models.NotificationEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		d.malformed(err)
		return
	}

	switch envelope.Type {
	case models.NotificationFriendRequest:
		var n models.FriendRequest
		if err := json.Unmarshal(payload, &n); err != nil {
			d.malformed(err)
			return
		}
		d.mu.Lock()
		listeners := d.friendRequests.snapshot()
		d.mu.Unlock()
		notify(listeners, n)

	case models.NotificationGroupInvitation:
		var n models.GroupInvitation
		if err := json.Unmarshal(payload, &n); err != nil {
			d.malformed(err)
			return
		}
		d.mu.Lock()
		listeners := d.groupInvitations.snapshot()
		d.mu.Unlock()
		notify(listeners, n)

	default:
		d.log.Warn().Str("type", string(envelope.Type)).Msg("unknown notification type dropped")
		return
	}

	d.metrics.NotificationDispatched(envelope.Type)
}

func (d *Dispatcher) malformed(err error) {
	d.metrics.MalformedPayload()
	d.log.Warn().Err(err).Msg("malformed notification dropped")
}
