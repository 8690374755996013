package realtime

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-chat-client/internal/logger"
	"github.com/MKhiriev/go-chat-client/internal/mock"
	"github.com/MKhiriev/go-chat-client/models"
)

type testManager struct {
	*Manager
	transport *mock.MockTransport
	onConnect func()
	onClose   func(error)

	mu     sync.Mutex
	subs   map[string]func(models.Message) // topic -> last transport callback
	ids    map[string]string               // topic -> last subscription id
	events []string
}

func newTestManager(t *testing.T, ctrl *gomock.Controller, token string) *testManager {
	t.Helper()
	transport := mock.NewMockTransport(ctrl)
	tokens := mock.NewMockTokenSource(ctrl)
	tokens.EXPECT().AccessToken().Return(token).AnyTimes()

	tm := &testManager{
		transport: transport,
		subs:      make(map[string]func(models.Message)),
		ids:       make(map[string]string),
	}
	transport.EXPECT().SetLifecycle(gomock.Any(), gomock.Any()).Do(func(onConnect func(), onClose func(error)) {
		tm.onConnect, tm.onClose = onConnect, onClose
	})
	tm.Manager = NewManager(transport, tokens, nil, logger.Nop())
	return tm
}

// expectSubscribe records transport subscriptions to topic.
func (tm *testManager) expectSubscribe(topic string) *gomock.Call {
	return tm.transport.EXPECT().Subscribe(gomock.Any(), topic, gomock.Any()).
		DoAndReturn(func(id, topic string, fn func(models.Message)) error {
			tm.mu.Lock()
			defer tm.mu.Unlock()
			tm.subs[topic] = fn
			tm.ids[topic] = id
			tm.events = append(tm.events, "subscribe "+topic)
			return nil
		})
}

func (tm *testManager) record(event string) func() {
	return func() {
		tm.mu.Lock()
		defer tm.mu.Unlock()
		tm.events = append(tm.events, event)
	}
}

func (tm *testManager) deliver(topic string, body string) {
	tm.mu.Lock()
	fn := tm.subs[topic]
	tm.mu.Unlock()
	fn(models.Message{Topic: topic, Body: []byte(body)})
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func TestManager_Connect_WithoutCredential(t *testing.T) {
	ctrl := gomock.NewController(t)
	tm := newTestManager(t, ctrl, "")

	called := false
	tm.Connect(func() { called = true })

	assert.Equal(t, models.Disconnected, tm.State())
	assert.False(t, called)
}

func TestManager_Connect_Lifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	tm := newTestManager(t, ctrl, "tok1")

	tm.transport.EXPECT().Activate(bearer("tok1")).Times(1)

	tm.Connect(tm.record("ready 1"))
	assert.Equal(t, models.Connecting, tm.State())

	// connect while connecting only queues the callback
	tm.Connect(tm.record("ready 2"))
	tm.Connect(nil)

	tm.onConnect()
	assert.Equal(t, models.Connected, tm.State())
	assert.Equal(t, []string{"ready 1", "ready 2"}, tm.events)

	// already connected: runs immediately, no new attempt
	tm.Connect(tm.record("ready 3"))
	assert.Equal(t, []string{"ready 1", "ready 2", "ready 3"}, tm.events)

	// a reconnect does not fire the callbacks again
	tm.onClose(errors.New("drop"))
	assert.Equal(t, models.Disconnected, tm.State())
	tm.onConnect()
	assert.Len(t, tm.events, 3)
}

func TestManager_Subscribe_QueuedUntilConnected(t *testing.T) {
	ctrl := gomock.NewController(t)
	tm := newTestManager(t, ctrl, "tok1")

	const topic = "/topic/conversations/5"
	tm.transport.EXPECT().Activate(bearer("tok1")).Times(1)
	tm.expectSubscribe(topic).Times(1)

	var got []string
	tm.Subscribe(topic, func(msg models.Message) { got = append(got, "first:"+string(msg.Body)) })
	tm.Subscribe(topic, func(msg models.Message) { got = append(got, "second:"+string(msg.Body)) })
	assert.Equal(t, models.Connecting, tm.State())
	assert.False(t, tm.Subscribed(topic))

	tm.onConnect()
	assert.True(t, tm.Subscribed(topic))
	assert.Empty(t, got, "no delivery before a message arrives")

	// subscribing again post-connect is a no-op
	tm.Subscribe(topic, func(models.Message) { t.Fatal("duplicate handler wired") })

	tm.deliver(topic, "hello")
	assert.Equal(t, []string{"first:hello"}, got)
	assert.Equal(t, []string{topic}, tm.Topics())
}

func TestManager_Connect_ReadyCallbacksBeforeQueuedSubscriptions(t *testing.T) {
	ctrl := gomock.NewController(t)
	tm := newTestManager(t, ctrl, "tok1")

	tm.transport.EXPECT().Activate(gomock.Any())
	tm.expectSubscribe("/topic/a")
	tm.expectSubscribe("/topic/b")

	tm.Subscribe("/topic/a", func(models.Message) {})
	tm.Connect(tm.record("ready"))
	tm.Subscribe("/topic/b", func(models.Message) {})

	tm.onConnect()
	assert.Equal(t, []string{"ready", "subscribe /topic/a", "subscribe /topic/b"}, tm.events)
}

func TestManager_Subscribe_FromReadyCallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	tm := newTestManager(t, ctrl, "tok1")

	tm.transport.EXPECT().Activate(gomock.Any())
	tm.expectSubscribe("/user/1/queue/notifications").Times(1)

	tm.Connect(func() {
		tm.Subscribe("/user/1/queue/notifications", func(models.Message) {})
	})
	tm.onConnect()

	assert.True(t, tm.Subscribed("/user/1/queue/notifications"))
}

func TestManager_Subscribe_DuplicateWhileConnected(t *testing.T) {
	ctrl := gomock.NewController(t)
	tm := newTestManager(t, ctrl, "tok1")

	tm.transport.EXPECT().Activate(gomock.Any())
	tm.expectSubscribe("/topic/a").Times(1)

	tm.Connect(nil)
	tm.onConnect()
	tm.Subscribe("/topic/a", func(models.Message) {})
	tm.Subscribe("/topic/a", func(models.Message) {})

	assert.Equal(t, []string{"/topic/a"}, tm.Topics())
}

func TestManager_Subscribe_TransportFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	tm := newTestManager(t, ctrl, "tok1")

	tm.transport.EXPECT().Activate(gomock.Any())
	tm.transport.EXPECT().Subscribe(gomock.Any(), "/topic/a", gomock.Any()).Return(ErrNotConnected)

	tm.Connect(nil)
	tm.onConnect()
	tm.Subscribe("/topic/a", func(models.Message) {})

	assert.False(t, tm.Subscribed("/topic/a"))
}

func TestManager_ForcedDisconnectThenReconnect_RestoresTopics(t *testing.T) {
	ctrl := gomock.NewController(t)
	tm := newTestManager(t, ctrl, "tok1")

	tm.transport.EXPECT().Activate(bearer("tok1")).Times(2)
	tm.transport.EXPECT().Deactivate().Times(1)
	tm.expectSubscribe("/topic/a").Times(2)
	tm.expectSubscribe("/topic/b").Times(2)

	tm.Connect(nil)
	tm.onConnect()
	tm.Subscribe("/topic/a", func(models.Message) {})
	tm.Subscribe("/topic/b", func(models.Message) {})

	tm.Disconnect(true)
	assert.Equal(t, models.Disconnected, tm.State())
	assert.Empty(t, tm.Topics())

	// repeated disconnects are safe
	tm.transport.EXPECT().Active().Return(false)
	tm.Disconnect(false)

	tm.Connect(nil)
	tm.onConnect()
	assert.Equal(t, []string{"/topic/a", "/topic/b"}, tm.Topics())
}

func TestManager_ForcedDisconnect_DiscardsQueuedWork(t *testing.T) {
	ctrl := gomock.NewController(t)
	tm := newTestManager(t, ctrl, "tok1")

	tm.transport.EXPECT().Activate(gomock.Any()).Times(2)
	tm.transport.EXPECT().Deactivate()
	tm.transport.EXPECT().Subscribe(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	tm.Connect(func() { t.Fatal("discarded callback ran") })
	tm.Subscribe("/topic/a", func(models.Message) {})
	tm.Disconnect(true)

	tm.Connect(nil)
	tm.onConnect()
	assert.Empty(t, tm.Topics())
}

func TestManager_Disconnect_NotForcedSkipsInactiveTransport(t *testing.T) {
	ctrl := gomock.NewController(t)
	tm := newTestManager(t, ctrl, "tok1")

	tm.transport.EXPECT().Active().Return(true)
	tm.transport.EXPECT().Deactivate()
	tm.Disconnect(false)

	tm.transport.EXPECT().Active().Return(false)
	tm.Disconnect(false)

	assert.Equal(t, models.Disconnected, tm.State())
}

func TestManager_TransportDrop_RestoresOnReconnect(t *testing.T) {
	ctrl := gomock.NewController(t)
	tm := newTestManager(t, ctrl, "tok1")

	tm.transport.EXPECT().Activate(gomock.Any()).Times(1)
	tm.expectSubscribe("/topic/a").Times(2)

	tm.Connect(nil)
	tm.onConnect()
	tm.Subscribe("/topic/a", func(models.Message) {})

	tm.onClose(errors.New("eof"))
	assert.Equal(t, models.Disconnected, tm.State())
	assert.False(t, tm.Subscribed("/topic/a"))

	// the transport's own reconnect fires the connected event again
	tm.onConnect()
	assert.True(t, tm.Subscribed("/topic/a"))
}

func TestManager_Subscribe_WhileDisconnectedReplacesRestoreEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	tm := newTestManager(t, ctrl, "tok1")

	tm.transport.EXPECT().Activate(gomock.Any()).Times(2)
	tm.transport.EXPECT().Deactivate()
	tm.expectSubscribe("/topic/a").Times(2)

	var got []string
	tm.Connect(nil)
	tm.onConnect()
	tm.Subscribe("/topic/a", func(models.Message) { got = append(got, "old") })
	tm.Disconnect(true)

	tm.Subscribe("/topic/a", func(models.Message) { got = append(got, "new") })
	tm.onConnect()

	tm.deliver("/topic/a", "{}")
	assert.Equal(t, []string{"new"}, got)
}

func TestManager_Unsubscribe(t *testing.T) {
	ctrl := gomock.NewController(t)
	tm := newTestManager(t, ctrl, "tok1")

	tm.transport.EXPECT().Activate(gomock.Any())
	tm.expectSubscribe("/topic/a").Times(1)

	tm.Connect(nil)
	tm.onConnect()
	tm.Subscribe("/topic/a", func(models.Message) {})

	tm.transport.EXPECT().Unsubscribe(tm.ids["/topic/a"]).Return(nil)
	tm.Unsubscribe("/topic/a")
	assert.False(t, tm.Subscribed("/topic/a"))

	// unknown topic: no transport call
	tm.Unsubscribe("/topic/zzz")

	// an unsubscribed topic is not restored
	tm.onClose(nil)
	tm.onConnect()
	assert.Empty(t, tm.Topics())
}

func TestManager_Shutdown_ForgetsTopics(t *testing.T) {
	ctrl := gomock.NewController(t)
	tm := newTestManager(t, ctrl, "tok1")

	tm.transport.EXPECT().Activate(gomock.Any()).Times(2)
	tm.transport.EXPECT().Deactivate()
	tm.expectSubscribe("/topic/a").Times(1)

	tm.Connect(nil)
	tm.onConnect()
	tm.Subscribe("/topic/a", func(models.Message) {})

	tm.Shutdown()
	tm.Connect(nil)
	tm.onConnect()
	assert.Empty(t, tm.Topics())
}

func TestManager_MalformedPayloadKeepsSubscription(t *testing.T) {
	ctrl := gomock.NewController(t)
	tm := newTestManager(t, ctrl, "tok1")

	tm.transport.EXPECT().Activate(gomock.Any())
	tm.expectSubscribe("/topic/conversations/5")

	var got []models.ChatMessage
	tm.Connect(nil)
	tm.onConnect()
	tm.Subscribe("/topic/conversations/5", Decode(logger.Nop(), nil, func(m models.ChatMessage) { got = append(got, m) }))

	require.NotPanics(t, func() { tm.deliver("/topic/conversations/5", "{not json") })
	tm.deliver("/topic/conversations/5", `{"id":1,"conversationId":5,"content":"hi"}`)

	require.Len(t, got, 1)
	assert.Equal(t, "hi", got[0].Content)
	assert.True(t, tm.Subscribed("/topic/conversations/5"))
}

func TestManager_ConnectEventAfterForcedDisconnectIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	tm := newTestManager(t, ctrl, "tok1")

	tm.transport.EXPECT().Activate(bearer("tok1")).Times(2)
	tm.transport.EXPECT().Deactivate()

	tm.Connect(nil)
	tm.Disconnect(true)

	// the transport finished its handshake just as it was deactivated
	tm.onConnect()
	assert.Equal(t, models.Disconnected, tm.State())

	// the next connect starts a new attempt instead of running onReady at once
	tm.Connect(tm.record("ready"))
	assert.Equal(t, models.Connecting, tm.State())
	assert.Empty(t, tm.events)

	tm.onConnect()
	assert.Equal(t, models.Connected, tm.State())
	assert.Equal(t, []string{"ready"}, tm.events)
}

func TestManager_RestoreUsesLatestHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	tm := newTestManager(t, ctrl, "tok1")

	tm.transport.EXPECT().Activate(gomock.Any()).Times(2)
	tm.transport.EXPECT().Deactivate()
	tm.expectSubscribe("/t").Times(3)

	var got []string
	tm.Connect(nil)
	tm.onConnect()
	tm.Subscribe("/t", func(models.Message) { got = append(got, "old") })
	tm.Disconnect(true)

	tm.Connect(func() {
		tm.Subscribe("/t", func(models.Message) { got = append(got, "new") })
	})
	tm.onConnect()
	tm.deliver("/t", "{}")

	// the transport drops and reconnects on its own
	tm.onClose(errors.New("eof"))
	tm.onConnect()
	tm.deliver("/t", "{}")

	assert.Equal(t, []string{"new", "new"}, got)
}
