package realtime

import (
	"github.com/segmentio/encoding/json"

	"github.com/MKhiriev/go-chat-client/internal/logger"
	"github.com/MKhiriev/go-chat-client/internal/metrics"
	"github.com/MKhiriev/go-chat-client/models"
)

// Decode returns a Handler that parses each payload as JSON into T and
// passes it to fn. A payload that fails to parse is logged and dropped; the
// subscription stays in place.
func Decode[T any](log *logger.Logger, m *metrics.Metrics, fn func(T)) Handler {
	return func(msg models.Message) {
		var v T
		if err := json.Unmarshal(msg.Body, &v); err != nil {
			m.MalformedPayload()
			log.Warn().Err(err).
				Str("topic", msg.Topic).
				Str("message_id", msg.MessageID).
				Msg("malformed payload dropped")
			return
		}
		fn(v)
	}
}
