// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package realtime keeps the publish/subscribe channel to the chat server.
//
// [Manager] owns the single connection. It tracks the connection state,
// queues subscriptions requested before the connection is ready and restores
// the topics that were active before a reconnect. The wire protocol lives
// behind [Transport]; [NewStompTransport] speaks STOMP 1.2 over a websocket
// and reconnects on its own fixed-delay timer.
//
// [Dispatcher] decodes the per-user notification topic and fans each
// notification out to the listeners registered for its category.
// [Conversations] wires the per-conversation message and recall topics.
package realtime
