package realtime

import "github.com/MKhiriev/go-chat-client/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/realtime_transport_mock.go -package=mock

// Transport is the underlying duplex connection. It reconnects by itself
// after a drop while active but does not keep subscriptions across a
// reconnect.
type Transport interface {
	// Activate opens the connection with the given connect headers. An
	// active transport drops its current connection and starts over.
	Activate(headers map[string]string)

	// Deactivate closes the connection and stops reconnecting. No
	// lifecycle callback fires for the closed connection afterwards.
	Deactivate()

	// Active reports whether the transport is connected or trying to be.
	Active() bool

	// Subscribe registers fn under the subscription id for topic on the
	// current connection.
	Subscribe(id, topic string, fn func(models.Message)) error

	// Unsubscribe cancels the subscription id.
	Unsubscribe(id string) error

	// SetLifecycle installs the connected and closed callbacks. They are
	// never invoked while the transport holds its own lock.
	SetLifecycle(onConnect func(), onClose func(error))
}
