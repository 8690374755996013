package client

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-chat-client/internal/config"
	"github.com/MKhiriev/go-chat-client/internal/logger"
	"github.com/MKhiriev/go-chat-client/internal/realtime"
	"github.com/MKhiriev/go-chat-client/internal/service"
	"github.com/MKhiriev/go-chat-client/internal/workers"
	"github.com/MKhiriev/go-chat-client/models"
)

// ErrLoginRequired is returned by Run when the session ended and the user
// has to log in again.
var ErrLoginRequired = errors.New("session ended, login required")

var _ Client = (*App)(nil)

type App struct {
	auth          service.ClientAuthService
	coordinator   service.RefreshCoordinator
	connection    Connection
	dispatcher    *realtime.Dispatcher
	conversations *realtime.Conversations
	sink          EventSink
	workers       *workers.Workers
	session       config.ClientSession
	logger        *logger.Logger
}

func NewApp(
	services *service.ClientServices,
	connection Connection,
	dispatcher *realtime.Dispatcher,
	conversations *realtime.Conversations,
	sink EventSink,
	w *workers.Workers,
	session config.ClientSession,
	log *logger.Logger,
) *App {
	return &App{
		auth:          services.AuthService,
		coordinator:   services.Coordinator,
		connection:    connection,
		dispatcher:    dispatcher,
		conversations: conversations,
		sink:          sink,
		workers:       w,
		session:       session,
		logger:        log.Component("app"),
	}
}

func (a *App) Run(ctx context.Context) error {
	user, err := a.startSession(ctx)
	if err != nil {
		return err
	}
	// the restore attempt may have ended the previous session
	select {
	case <-a.coordinator.LoginRequired():
	default:
	}
	a.sink.SessionStarted(user)

	a.dispatcher.OnFriendRequest(a.sink.FriendRequest)
	a.dispatcher.OnGroupInvitation(a.sink.GroupInvitation)

	a.connection.Connect(func() {
		a.dispatcher.SubscribeUserNotifications(user.ID)
	})
	defer a.connection.Disconnect(true)

	for _, id := range a.session.Conversations {
		a.conversations.Subscribe(id, a.sink.ChatMessage)
		a.conversations.SubscribeRecalls(id, a.sink.Recall)
	}

	pending, err := a.auth.PendingRequests(ctx)
	switch {
	case errors.Is(err, service.ErrSessionExpired):
		return fmt.Errorf("%w: %w", ErrLoginRequired, err)
	case err != nil:
		a.logger.Warn().Err(err).Msg("could not load pending requests")
	default:
		a.sink.PendingRequests(pending)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.workers.Run(gctx)
	})
	g.Go(func() error {
		select {
		case <-gctx.Done():
			return nil
		case <-a.coordinator.LoginRequired():
			return ErrLoginRequired
		}
	})

	return g.Wait()
}

// startSession restores the persisted session, falling back to the
// configured credentials when nothing is persisted.
func (a *App) startSession(ctx context.Context) (models.UserInfo, error) {
	user, err := a.auth.Initialize(ctx)
	switch {
	case err == nil:
		a.logger.Info().Int64("user_id", user.ID).Msg("session restored")
		return user, nil
	case errors.Is(err, service.ErrNotLoggedIn), errors.Is(err, service.ErrSessionExpired):
	default:
		return models.UserInfo{}, fmt.Errorf("restore session: %w", err)
	}

	if a.session.Username == "" {
		return models.UserInfo{}, fmt.Errorf("%w: no persisted session and no login configured", ErrLoginRequired)
	}

	user, err = a.auth.Login(ctx, models.LoginRequest{
		Username:   a.session.Username,
		Password:   a.session.Password,
		RememberMe: true,
	})
	if err != nil {
		return models.UserInfo{}, fmt.Errorf("login: %w", err)
	}
	return user, nil
}

// Logout ends the session on the server and forgets the realtime topics.
func (a *App) Logout(ctx context.Context) error {
	a.connection.Shutdown()
	return a.auth.Logout(ctx)
}
