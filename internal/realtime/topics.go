package realtime

import (
	"strconv"

	"github.com/MKhiriev/go-chat-client/internal/logger"
	"github.com/MKhiriev/go-chat-client/internal/metrics"
	"github.com/MKhiriev/go-chat-client/models"
)

// ConversationTopic carries the messages of one conversation.
func ConversationTopic(conversationID int64) string {
	return "/topic/conversations/" + strconv.FormatInt(conversationID, 10)
}

// RecallsTopic carries the recall notices of one conversation.
func RecallsTopic(conversationID int64) string {
	return ConversationTopic(conversationID) + "/recalls"
}

// NotificationsTopic is the per-user notification queue.
func NotificationsTopic(userID int64) string {
	return "/user/" + strconv.FormatInt(userID, 10) + "/queue/notifications"
}

// Conversations subscribes to conversation topics with typed callbacks.
type Conversations struct {
	subscriber Subscriber
	metrics    *metrics.Metrics
	log        *logger.Logger
}

func NewConversations(subscriber Subscriber, m *metrics.Metrics, log *logger.Logger) *Conversations {
	return &Conversations{subscriber: subscriber, metrics: m, log: log.Component("conversations")}
}

// Subscribe delivers the chat messages of the conversation to fn.
func (c *Conversations) Subscribe(conversationID int64, fn func(models.ChatMessage)) {
	c.subscriber.Subscribe(ConversationTopic(conversationID), Decode(c.log, c.metrics, fn))
}

// SubscribeRecalls delivers the recall notices of the conversation to fn.
func (c *Conversations) SubscribeRecalls(conversationID int64, fn func(models.RecallNotification)) {
	c.subscriber.Subscribe(RecallsTopic(conversationID), Decode(c.log, c.metrics, fn))
}

// Unsubscribe drops both topics of the conversation.
func (c *Conversations) Unsubscribe(conversationID int64) {
	c.subscriber.Unsubscribe(ConversationTopic(conversationID))
	c.subscriber.Unsubscribe(RecallsTopic(conversationID))
}
