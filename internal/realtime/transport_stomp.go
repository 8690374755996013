// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package realtime

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-stomp/stomp/v3/frame"
	"github.com/gorilla/websocket"

	"github.com/MKhiriev/go-chat-client/internal/config"
	"github.com/MKhiriev/go-chat-client/internal/logger"
	"github.com/MKhiriev/go-chat-client/models"
)

const (
	stompAcceptVersion = "1.2,1.1"
	writeWait          = 10 * time.Second
)

type stompSubscription struct {
	topic string
	fn    func(models.Message)
}

// stompSession is one websocket connection. gorilla allows a single
// concurrent writer, so writes are serialised by writeMu.
type stompSession struct {
	conn      *websocket.Conn
	writeMu   sync.Mutex
	done      chan struct{}
	closeOnce sync.Once
}

func (s *stompSession) write(f *frame.Frame) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	w, err := s.conn.NextWriter(websocket.TextMessage)
	if err != nil {
		return err
	}
	if err = frame.NewWriter(w).Write(f); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func (s *stompSession) heartbeat() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return s.conn.WriteMessage(websocket.TextMessage, []byte("\n"))
}

func (s *stompSession) close() {
	s.closeOnce.Do(func() {
		close(s.done)
		_ = s.conn.Close()
	})
}

type stompTransport struct {
	cfg    config.ClientRealtime
	dialer *websocket.Dialer
	log    *logger.Logger

	mu         sync.Mutex
	active     bool
	generation uint64
	headers    map[string]string
	cancel     context.CancelFunc
	session    *stompSession
	subs       map[string]stompSubscription
	timer      *time.Timer
	onConnect  func()
	onClose    func(error)
}

// NewStompTransport returns a [Transport] speaking STOMP over a websocket
// to cfg.WebsocketURL. After a drop it reconnects every cfg.ReconnectDelay
// until deactivated; a zero delay disables reconnecting.
func NewStompTransport(cfg config.ClientRealtime, log *logger.Logger) Transport {
	return &stompTransport{
		cfg: cfg,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: cfg.HandshakeTimeout,
		},
		log:       log.Component("stomp"),
		onConnect: func() {},
		onClose:   func(error) {},
	}
}

func (t *stompTransport) SetLifecycle(onConnect func(), onClose func(error)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if onConnect != nil {
		t.onConnect = onConnect
	}
	if onClose != nil {
		t.onClose = onClose
	}
}

func (t *stompTransport) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

func (t *stompTransport) Activate(headers map[string]string) {
	t.mu.Lock()
	t.stopLocked()
	t.active = true
	t.headers = maps.Clone(headers)
	t.generation++
	gen := t.generation
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	t.mu.Unlock()

	go t.run(ctx, gen)
}

func (t *stompTransport) Deactivate() {
	t.mu.Lock()
	if !t.active {
		t.mu.Unlock()
		return
	}
	t.active = false
	t.generation++
	// detach the session first so DISCONNECT goes out before the close
	session := t.session
	t.session = nil
	t.stopLocked()
	t.mu.Unlock()

	if session != nil {
		_ = session.write(frame.New(frame.DISCONNECT))
		session.close()
	}
}

// stopLocked drops the current session and any pending reconnect. t.mu
// must be held.
func (t *stompTransport) stopLocked() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	if t.session != nil {
		t.session.close()
		t.session = nil
	}
	t.subs = nil
}

func (t *stompTransport) Subscribe(id, topic string, fn func(models.Message)) error {
	t.mu.Lock()
	session := t.session
	if session == nil {
		t.mu.Unlock()
		return ErrNotConnected
	}
	t.subs[id] = stompSubscription{topic: topic, fn: fn}
	t.mu.Unlock()

	f := frame.New(frame.SUBSCRIBE,
		frame.Id, id,
		frame.Destination, topic,
		frame.Ack, "auto",
	)
	if err := session.write(f); err != nil {
		t.mu.Lock()
		delete(t.subs, id)
		t.mu.Unlock()
		return fmt.Errorf("subscribe %s: %w", topic, err)
	}
	return nil
}

func (t *stompTransport) Unsubscribe(id string) error {
	t.mu.Lock()
	session := t.session
	if session == nil {
		t.mu.Unlock()
		return ErrNotConnected
	}
	delete(t.subs, id)
	t.mu.Unlock()

	if err := session.write(frame.New(frame.UNSUBSCRIBE, frame.Id, id)); err != nil {
		return fmt.Errorf("unsubscribe %s: %w", id, err)
	}
	return nil
}

// run owns one activation: it connects, reads until the connection drops
// and schedules the next attempt.
func (t *stompTransport) run(ctx context.Context, gen uint64) {
	t.mu.Lock()
	headers := t.headers
	t.mu.Unlock()

	session, readTimeout, err := t.connect(ctx, headers)
	if err != nil {
		t.dropped(gen, nil, err)
		return
	}

	t.mu.Lock()
	if gen != t.generation {
		t.mu.Unlock()
		session.close()
		return
	}
	t.session = session
	t.subs = make(map[string]stompSubscription)
	onConnect := t.onConnect
	t.mu.Unlock()

	t.log.Info().Str("url", t.cfg.WebsocketURL).Msg("stomp session established")
	onConnect()

	if t.cfg.HeartbeatOutgoing > 0 {
		go t.sendHeartbeats(session, t.cfg.HeartbeatOutgoing)
	}

	err = t.readLoop(session, readTimeout)
	t.dropped(gen, session, err)
}

func (t *stompTransport) connect(ctx context.Context, headers map[string]string) (*stompSession, time.Duration, error) {
	conn, _, err := t.dialer.DialContext(ctx, t.cfg.WebsocketURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("dial %s: %w", t.cfg.WebsocketURL, err)
	}
	session := &stompSession{conn: conn, done: make(chan struct{})}

	connect := frame.New(frame.CONNECT,
		frame.AcceptVersion, stompAcceptVersion,
		frame.Host, hostOf(t.cfg.WebsocketURL),
		frame.HeartBeat, formatHeartBeat(t.cfg.HeartbeatOutgoing, t.cfg.HeartbeatIncoming),
	)
	for k, v := range headers {
		connect.Header.Set(k, v)
	}
	if err = session.write(connect); err != nil {
		session.close()
		return nil, 0, fmt.Errorf("send connect frame: %w", err)
	}

	if t.cfg.HandshakeTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(t.cfg.HandshakeTimeout))
	}
	f, err := readFrame(conn)
	if err != nil {
		session.close()
		return nil, 0, fmt.Errorf("await connected frame: %w", err)
	}
	_ = conn.SetReadDeadline(time.Time{})

	switch f.Command {
	case frame.CONNECTED:
	case frame.ERROR:
		session.close()
		return nil, 0, brokerError(f)
	default:
		session.close()
		return nil, 0, fmt.Errorf("%w: %s", ErrUnexpectedFrame, f.Command)
	}

	_, serverOut := parseHeartBeat(f.Header.Get(frame.HeartBeat))
	return session, negotiateReadTimeout(t.cfg.HeartbeatIncoming, serverOut), nil
}

func (t *stompTransport) readLoop(session *stompSession, readTimeout time.Duration) error {
	for {
		if readTimeout > 0 {
			_ = session.conn.SetReadDeadline(time.Now().Add(readTimeout))
		}
		f, err := readFrame(session.conn)
		if err != nil {
			return err
		}
		if f == nil {
			continue
		}

		switch f.Command {
		case frame.MESSAGE:
			t.deliver(f)
		case frame.ERROR:
			return brokerError(f)
		case frame.RECEIPT:
		default:
			t.log.Debug().Str("command", f.Command).Msg("ignoring frame")
		}
	}
}

func (t *stompTransport) deliver(f *frame.Frame) {
	id := f.Header.Get(frame.Subscription)

	t.mu.Lock()
	sub, ok := t.subs[id]
	t.mu.Unlock()
	if !ok {
		t.log.Debug().Str("subscription_id", id).Msg("message for unknown subscription dropped")
		return
	}

	msg := models.Message{
		Topic:          f.Header.Get(frame.Destination),
		SubscriptionID: id,
		MessageID:      f.Header.Get(frame.MessageId),
		Header:         make(map[string]string, f.Header.Len()),
		Body:           f.Body,
	}
	for i := range f.Header.Len() {
		k, v := f.Header.GetAt(i)
		msg.Header[k] = v
	}
	if msg.Topic == "" {
		msg.Topic = sub.topic
	}

	sub.fn(msg)
}

func (t *stompTransport) sendHeartbeats(session *stompSession, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-session.done:
			return
		case <-ticker.C:
			if err := session.heartbeat(); err != nil {
				return
			}
		}
	}
}

// dropped reports a lost or failed connection and arms the reconnect timer,
// unless the activation gen has been superseded.
func (t *stompTransport) dropped(gen uint64, session *stompSession, err error) {
	t.mu.Lock()
	if gen != t.generation || !t.active {
		t.mu.Unlock()
		if session != nil {
			session.close()
		}
		return
	}
	if session != nil {
		session.close()
	}
	t.session = nil
	t.subs = nil
	onClose := t.onClose

	delay := t.cfg.ReconnectDelay
	if delay > 0 {
		if t.cancel != nil {
			t.cancel()
		}
		var ctx context.Context
		ctx, t.cancel = context.WithCancel(context.Background())
		t.timer = time.AfterFunc(delay, func() { t.reconnect(ctx, gen) })
	}
	t.mu.Unlock()

	t.log.Warn().Err(err).Dur("retry_in", delay).Msg("stomp connection closed")
	onClose(err)
}

func (t *stompTransport) reconnect(ctx context.Context, gen uint64) {
	t.mu.Lock()
	current := gen == t.generation && t.active
	t.mu.Unlock()
	if !current {
		return
	}
	t.run(ctx, gen)
}

// readFrame reads one websocket message as one STOMP frame. A heart-beat
// yields a nil frame.
func readFrame(conn *websocket.Conn) (*frame.Frame, error) {
	_, r, err := conn.NextReader()
	if err != nil {
		return nil, err
	}
	return frame.NewReader(r).Read()
}

func brokerError(f *frame.Frame) error {
	msg := f.Header.Get(frame.Message)
	if body := strings.TrimSpace(string(f.Body)); body != "" {
		msg = strings.TrimSpace(msg + ": " + body)
	}
	return fmt.Errorf("%w: %s", ErrBrokerError, msg)
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

func formatHeartBeat(out, in time.Duration) string {
	return strconv.FormatInt(out.Milliseconds(), 10) + "," + strconv.FormatInt(in.Milliseconds(), 10)
}

// parseHeartBeat parses a "cx,cy" heart-beat header. Malformed values count
// as no heart-beat.
func parseHeartBeat(value string) (out, in time.Duration) {
	x, y, ok := strings.Cut(value, ",")
	if !ok {
		return 0, 0
	}
	cx, errX := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
	cy, errY := strconv.ParseInt(strings.TrimSpace(y), 10, 64)
	if err := errors.Join(errX, errY); err != nil || cx < 0 || cy < 0 {
		return 0, 0
	}
	return time.Duration(cx) * time.Millisecond, time.Duration(cy) * time.Millisecond
}

// negotiateReadTimeout returns how long a silent connection is tolerated:
// twice the agreed incoming heart-beat, or zero when either side declines.
func negotiateReadTimeout(wanted, serverSends time.Duration) time.Duration {
	if wanted <= 0 || serverSends <= 0 {
		return 0
	}
	return 2 * max(wanted, serverSends)
}
