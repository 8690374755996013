// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/go-chat-client/models"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until ctx is cancelled
	// or the session ends.
	Run(ctx context.Context) error
}

// Connection is the lifecycle surface of the realtime manager.
type Connection interface {
	Connect(onReady func())
	Disconnect(force bool)
	Shutdown()
}

// EventSink receives everything the client observes.
type EventSink interface {
	SessionStarted(user models.UserInfo)
	PendingRequests(requests []models.PendingRequest)
	FriendRequest(n models.FriendRequest)
	GroupInvitation(n models.GroupInvitation)
	ChatMessage(m models.ChatMessage)
	Recall(r models.RecallNotification)
}
