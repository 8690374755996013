// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// NotificationCategory is the "type" discriminator carried by every payload
// on the per-user notification topic.
type NotificationCategory string

const (
	// NotificationFriendRequest is sent when another user asks to become a
	// friend.
	NotificationFriendRequest NotificationCategory = "FRIEND_REQUEST"
	// NotificationGroupInvitation is sent when the user is invited to a
	// group conversation.
	NotificationGroupInvitation NotificationCategory = "GROUP_INVITATION"
)

// NotificationEnvelope is decoded first to select the listener set.
type NotificationEnvelope struct {
	Type NotificationCategory `json:"type"`
}

// FriendRequest is the FRIEND_REQUEST notification payload.
type FriendRequest struct {
	Type               NotificationCategory `json:"type"`
	ID                 int64                `json:"id,omitempty"`
	FriendshipID       int64                `json:"friendshipId,omitempty"`
	Status             string               `json:"status,omitempty"`
	RequestCount       int                  `json:"requestCount,omitempty"`
	RequesterID        int64                `json:"requesterId,omitempty"`
	RequesterNickname  string               `json:"requesterNickname,omitempty"`
	RequesterAvatarURL string               `json:"requesterAvatarUrl,omitempty"`
}

// GroupInvitation is the GROUP_INVITATION notification payload.
type GroupInvitation struct {
	Type        NotificationCategory `json:"type"`
	GroupID     int64                `json:"groupId"`
	GroupUUID   string               `json:"groupUuid"`
	GroupName   string               `json:"groupName"`
	InviterID   int64                `json:"inviterId"`
	InviterName string               `json:"inviterName"`
	// Timestamp is milliseconds since the Unix epoch.
	Timestamp int64 `json:"timestamp"`
}

// InvitedAt converts Timestamp into a time.Time.
func (g GroupInvitation) InvitedAt() time.Time {
	return time.UnixMilli(g.Timestamp)
}

// Sender identifies the author of a chat message.
type Sender struct {
	ID        int64  `json:"id"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatarUrl"`
}

// RepliedMessage is the quoted message a chat message replies to.
type RepliedMessage struct {
	MessageID      int64  `json:"messageId"`
	SenderNickname string `json:"senderNickname"`
	Content        string `json:"content"`
}

// ChatMessage is a payload on /topic/conversations/{id}.
type ChatMessage struct {
	ID             int64           `json:"id"`
	ConversationID int64           `json:"conversationId"`
	Content        string          `json:"content"`
	Timestamp      string          `json:"timestamp"`
	Sender         Sender          `json:"sender"`
	MessageType    string          `json:"messageType"`
	RepliedMessage *RepliedMessage `json:"repliedMessage,omitempty"`
	Recalled       bool            `json:"recalled,omitempty"`
}

// RecallNotification is a payload on /topic/conversations/{id}/recalls.
type RecallNotification struct {
	ConversationID int64 `json:"conversationId"`
	MessageID      int64 `json:"messageId"`
}

// PendingRequest is one entry of GET /api/user/pending-requests.
type PendingRequest struct {
	RequestType        string `json:"requestType"`
	Timestamp          string `json:"timestamp"`
	RequesterID        int64  `json:"requesterId"`
	RequesterNickname  string `json:"requesterNickname"`
	RequesterAvatarURL string `json:"requesterAvatarUrl"`
	FriendshipID       int64  `json:"friendshipId,omitempty"`
	ConversationID     int64  `json:"conversationId,omitempty"`
	ConversationName   string `json:"conversationName,omitempty"`
}
