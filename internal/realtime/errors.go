package realtime

import "errors"

var (
	// ErrNoCredential is logged when a connection is requested without an
	// access token.
	ErrNoCredential = errors.New("realtime connect requires an access token")

	// ErrNotConnected is returned by transport operations without a live
	// connection.
	ErrNotConnected = errors.New("realtime transport is not connected")

	// ErrBrokerError wraps an ERROR frame sent by the broker.
	ErrBrokerError = errors.New("broker error")

	// ErrUnexpectedFrame is returned when the broker answers the connect
	// frame with something other than CONNECTED.
	ErrUnexpectedFrame = errors.New("unexpected frame")
)
