// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ConnectionState is the lifecycle state of the realtime connection.
type ConnectionState int32

const (
	// Disconnected means no connection exists and none is being attempted
	// by the manager.
	Disconnected ConnectionState = iota
	// Connecting means the transport has been activated and the broker has
	// not acknowledged the connect frame yet.
	Connecting
	// Connected means the broker acknowledged the connection and topics can
	// be subscribed.
	Connected
)

// String implements fmt.Stringer.
func (s ConnectionState) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "unknown"
	}
}

// Message is one inbound payload delivered on a subscribed topic.
type Message struct {
	// Topic is the destination the message was published to.
	Topic string
	// SubscriptionID is the transport-level subscription that received it.
	SubscriptionID string
	// MessageID is the broker-assigned message identifier.
	MessageID string
	// Header holds the remaining frame headers.
	Header map[string]string
	// Body is the raw (JSON) payload.
	Body []byte
}
