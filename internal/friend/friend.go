// Package friend implements the Friending concept: friend requests between
// users and the friendships they turn into.
package friend

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/alphabot-ai/stance/internal/apperr"
	"github.com/alphabot-ai/stance/internal/model"
	"github.com/alphabot-ai/stance/internal/store"
)

// Error codes. Every coded error carries two user ids as arguments.
const (
	CodeRequestExists  = "friend_request_exists"
	CodeRequestMissing = "friend_request_missing"
	CodeFriendMissing  = "friend_missing"
	CodeAlreadyFriends = "already_friends"
)

type Service struct {
	store store.FriendStore
}

func NewService(store store.FriendStore) *Service {
	return &Service{store: store}
}

func (s *Service) SendRequest(ctx context.Context, from, to string) (model.FriendRequest, error) {
	if err := s.canSendRequest(ctx, from, to); err != nil {
		return model.FriendRequest{}, err
	}
	now := time.Now().UTC()
	req := model.FriendRequest{
		ID:        uuid.NewString(),
		From:      from,
		To:        to,
		Status:    model.RequestPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateFriendRequest(ctx, &req); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return model.FriendRequest{}, requestExists(from, to)
		}
		return model.FriendRequest{}, err
	}
	return req, nil
}

func (s *Service) canSendRequest(ctx context.Context, from, to string) error {
	if from == to {
		return apperr.Unauthorized("Cannot send friend request to self!")
	}
	if err := s.isNotFriends(ctx, from, to); err != nil {
		return err
	}
	for _, pair := range [][2]string{{from, to}, {to, from}} {
		_, err := s.store.GetPendingFriendRequest(ctx, pair[0], pair[1])
		if err == nil {
			return requestExists(from, to)
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
	}
	return nil
}

func (s *Service) isNotFriends(ctx context.Context, u1, u2 string) error {
	_, err := s.store.GetFriendship(ctx, u1, u2)
	if err == nil {
		return apperr.Conflict("{0} and {1} are already friends!", u1, u2).WithCode(CodeAlreadyFriends)
	}
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}

// AcceptRequest answers the pending request from -> to and records the
// friendship.
func (s *Service) AcceptRequest(ctx context.Context, from, to string) error {
	req, err := s.pending(ctx, from, to)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	if err := s.store.UpdateFriendRequestStatus(ctx, req.ID, model.RequestAccepted, now); err != nil {
		return err
	}
	f := model.Friendship{
		ID:        uuid.NewString(),
		User1:     from,
		User2:     to,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateFriendship(ctx, &f); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return apperr.Conflict("{0} and {1} are already friends!", from, to).WithCode(CodeAlreadyFriends)
		}
		return err
	}
	return nil
}

func (s *Service) RejectRequest(ctx context.Context, from, to string) error {
	req, err := s.pending(ctx, from, to)
	if err != nil {
		return err
	}
	return s.store.UpdateFriendRequestStatus(ctx, req.ID, model.RequestRejected, time.Now().UTC())
}

// RemoveRequest withdraws the pending request from -> to.
func (s *Service) RemoveRequest(ctx context.Context, from, to string) error {
	req, err := s.pending(ctx, from, to)
	if err != nil {
		return err
	}
	return s.store.DeleteFriendRequest(ctx, req.ID)
}

func (s *Service) RemoveFriend(ctx context.Context, user, friend string) error {
	err := s.store.DeleteFriendship(ctx, user, friend)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("Friendship between {0} and {1} does not exist!", user, friend).WithCode(CodeFriendMissing)
	}
	return err
}

// GetRequests lists requests sent or received by user.
func (s *Service) GetRequests(ctx context.Context, user string) ([]model.FriendRequest, error) {
	return s.store.ListFriendRequests(ctx, user)
}

// GetFriends lists the ids of user's friends.
func (s *Service) GetFriends(ctx context.Context, user string) ([]string, error) {
	friendships, err := s.store.ListFriendships(ctx, user)
	if err != nil {
		return nil, err
	}
	friends := make([]string, 0, len(friendships))
	for _, f := range friendships {
		if f.User1 == user {
			friends = append(friends, f.User2)
		} else {
			friends = append(friends, f.User1)
		}
	}
	return friends, nil
}

func (s *Service) pending(ctx context.Context, from, to string) (model.FriendRequest, error) {
	req, err := s.store.GetPendingFriendRequest(ctx, from, to)
	if errors.Is(err, store.ErrNotFound) {
		return model.FriendRequest{}, apperr.NotFound("Friend request from {0} to {1} does not exist!", from, to).WithCode(CodeRequestMissing)
	}
	return req, err
}

func requestExists(from, to string) error {
	return apperr.Conflict("Friend request between {0} and {1} already exists!", from, to).WithCode(CodeRequestExists)
}
