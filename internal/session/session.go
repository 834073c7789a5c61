// Package session implements the Sessioning concept. A session is either
// logged out or bound to one user id; bindings are persisted with a TTL so
// they survive restarts.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/alphabot-ai/stance/internal/apperr"
	"github.com/alphabot-ai/stance/internal/model"
	"github.com/alphabot-ai/stance/internal/store"
)

type Service struct {
	store store.SessionStore
	ttl   time.Duration
}

func NewService(store store.SessionStore, ttl time.Duration) *Service {
	return &Service{store: store, ttl: ttl}
}

// Start binds sess to userID. The session must be logged out; it gets a
// fresh id so a pre-login id is never reused.
func (s *Service) Start(ctx context.Context, sess *model.Session, userID string) error {
	if err := s.IsLoggedOut(*sess); err != nil {
		return err
	}
	now := time.Now().UTC()
	next := model.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.store.PutSession(ctx, next); err != nil {
		return err
	}
	*sess = next
	return nil
}

// End logs sess out. Ending a logged out session is a no-op.
func (s *Service) End(ctx context.Context, sess *model.Session) error {
	if sess.ID != "" {
		if err := s.store.DeleteSession(ctx, sess.ID); err != nil {
			return err
		}
	}
	*sess = model.Session{}
	return nil
}

func (s *Service) GetUser(sess model.Session) (string, error) {
	if !sess.LoggedIn() {
		return "", apperr.Unauthenticated("You must be logged in!")
	}
	return sess.UserID, nil
}

func (s *Service) IsLoggedOut(sess model.Session) error {
	if sess.LoggedIn() {
		return apperr.Unauthorized("You are already logged in!")
	}
	return nil
}

// Load rebuilds the session stored under id. Unknown and expired ids load
// as logged out.
func (s *Service) Load(ctx context.Context, id string) (model.Session, error) {
	if id == "" {
		return model.Session{}, nil
	}
	sess, err := s.store.GetSession(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return model.Session{}, nil
	}
	if err != nil {
		return model.Session{}, err
	}
	if !time.Now().UTC().Before(sess.ExpiresAt) {
		if err := s.store.DeleteSession(ctx, id); err != nil {
			return model.Session{}, err
		}
		return model.Session{}, nil
	}
	return sess, nil
}

// PurgeExpired drops every expired binding and reports how many it removed.
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	return s.store.DeleteExpiredSessions(ctx, time.Now().UTC())
}
