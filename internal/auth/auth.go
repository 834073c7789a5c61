// Package auth implements the Authenticating concept: user accounts with
// bcrypt password hashes.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/alphabot-ai/stance/internal/apperr"
	"github.com/alphabot-ai/stance/internal/model"
	"github.com/alphabot-ai/stance/internal/store"
)

// DeletedUser stands in for ids that no longer resolve to a user.
const DeletedUser = "DELETED_USER"

type Service struct {
	store store.UserStore
	cost  int
}

func NewService(store store.UserStore, cost int) *Service {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Service{store: store, cost: cost}
}

func (s *Service) Create(ctx context.Context, username, password string) (model.User, error) {
	if username == "" || password == "" {
		return model.User{}, apperr.BadInput("Username and password must be non-empty!")
	}
	hash, err := s.hash(password)
	if err != nil {
		return model.User{}, err
	}
	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return model.User{}, apperr.Conflict("User with username {0} already exists!", username)
		}
		return model.User{}, err
	}
	return user, nil
}

// Authenticate returns the user matching the credentials. Unknown users and
// wrong passwords fail the same way.
func (s *Service) Authenticate(ctx context.Context, username, password string) (model.User, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.User{}, errIncorrect()
		}
		return model.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return model.User{}, errIncorrect()
	}
	return user, nil
}

func errIncorrect() error {
	return apperr.Unauthenticated("Username or password is incorrect.")
}

func (s *Service) GetUserByID(ctx context.Context, id string) (model.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return model.User{}, apperr.NotFound("User not found!")
	}
	return user, err
}

func (s *Service) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return model.User{}, apperr.NotFound("User {0} not found!", username)
	}
	return user, err
}

func (s *Service) GetUsers(ctx context.Context) ([]model.User, error) {
	return s.store.ListUsers(ctx)
}

func (s *Service) UpdateUsername(ctx context.Context, id, username string) error {
	if username == "" {
		return apperr.BadInput("Username must be non-empty!")
	}
	err := s.store.UpdateUsername(ctx, id, username, time.Now().UTC())
	switch {
	case errors.Is(err, store.ErrDuplicate):
		return apperr.Conflict("User with username {0} already exists!", username)
	case errors.Is(err, store.ErrNotFound):
		return apperr.NotFound("User not found!")
	}
	return err
}

func (s *Service) UpdatePassword(ctx context.Context, id, current, next string) error {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return apperr.Unauthorized("The given current password is wrong!")
	}
	if next == "" {
		return apperr.BadInput("Password must be non-empty!")
	}
	hash, err := s.hash(next)
	if err != nil {
		return err
	}
	return s.store.UpdatePasswordHash(ctx, id, hash, time.Now().UTC())
}

// Delete removes the account only. Content the user authored is kept and
// renders with DeletedUser as its author.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.store.DeleteUser(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("User not found!")
	}
	return err
}

// IDsToUsernames resolves ids positionally.
func (s *Service) IDsToUsernames(ctx context.Context, ids []string) ([]string, error) {
	users, err := s.store.ListUsersByIDs(ctx, dedupe(ids))
	if err != nil {
		return nil, err
	}
	byID := make(map[string]string, len(users))
	for _, u := range users {
		byID[u.ID] = u.Username
	}
	names := make([]string, len(ids))
	for i, id := range ids {
		if name, ok := byID[id]; ok {
			names[i] = name
		} else {
			names[i] = DeletedUser
		}
	}
	return names, nil
}

// UsernamesToIDs resolves usernames positionally and fails on the first
// unknown name.
func (s *Service) UsernamesToIDs(ctx context.Context, usernames []string) ([]string, error) {
	ids := make([]string, len(usernames))
	for i, name := range usernames {
		user, err := s.GetUserByUsername(ctx, name)
		if err != nil {
			return nil, err
		}
		ids[i] = user.ID
	}
	return ids, nil
}

func (s *Service) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
