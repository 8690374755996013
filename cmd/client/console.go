package main

import (
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/MKhiriev/go-chat-client/models"
)

// console prints client events to a terminal.
type console struct {
	mu  sync.Mutex
	out io.Writer

	info    *color.Color
	notice  *color.Color
	message *color.Color
	muted   *color.Color
}

func newConsole(out io.Writer) *console {
	return &console{
		out:     out,
		info:    color.New(color.FgGreen, color.Bold),
		notice:  color.New(color.FgYellow),
		message: color.New(color.FgCyan),
		muted:   color.New(color.Faint),
	}
}

func (c *console) SessionStarted(user models.UserInfo) {
	c.print(c.info, "signed in as %s (id %d)\n", user.Username, user.ID)
}

func (c *console) PendingRequests(requests []models.PendingRequest) {
	if len(requests) == 0 {
		c.print(c.muted, "no pending requests\n")
		return
	}
	for _, r := range requests {
		switch {
		case r.ConversationName != "":
			c.print(c.notice, "pending %s from %s for %q\n", r.RequestType, r.RequesterNickname, r.ConversationName)
		default:
			c.print(c.notice, "pending %s from %s\n", r.RequestType, r.RequesterNickname)
		}
	}
}

func (c *console) FriendRequest(n models.FriendRequest) {
	c.print(c.notice, "friend request from %s\n", n.RequesterNickname)
}

func (c *console) GroupInvitation(n models.GroupInvitation) {
	c.print(c.notice, "%s invited you to %q at %s\n", n.InviterName, n.GroupName, n.InvitedAt().Format("15:04"))
}

func (c *console) ChatMessage(m models.ChatMessage) {
	c.print(c.message, "[%d] %s: %s\n", m.ConversationID, m.Sender.Nickname, m.Content)
}

func (c *console) Recall(r models.RecallNotification) {
	c.print(c.muted, "[%d] message %d was recalled\n", r.ConversationID, r.MessageID)
}

func (c *console) print(col *color.Color, format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	col.Fprintf(c.out, format, args...)
}
