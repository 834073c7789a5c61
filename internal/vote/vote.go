// Package vote implements the Voting concept: one up or down vote per user
// per response.
package vote

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
	store store.VoteStore
}

func NewService(store store.VoteStore) *Service {
	return &Service{store: store}
}

func (s *Service) Upvote(ctx context.Context, user, response string) error {
	return s.cast(ctx, user, response, model.VoteUp)
}

func (s *Service) Downvote(ctx context.Context, user, response string) error {
	return s.cast(ctx, user, response, model.VoteDown)
}

// cast records value, replacing an opposite vote. Repeating the current
// vote is a conflict.
func (s *Service) cast(ctx context.Context, user, response string, value int) error {
	prev, err := s.store.GetVote(ctx, user, response)
	switch {
	case err == nil && prev.Value == value:
		if value == model.VoteUp {
			return apperr.Conflict("You already upvoted response {0}!", response)
		}
		return apperr.Conflict("You already downvoted response {0}!", response)
	case err != nil && !errors.Is(err, store.ErrNotFound):
		return err
	}
	now := time.Now().UTC()
	v := model.Vote{
		ID:        uuid.NewString(),
		User:      user,
		Response:  response,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.store.PutVote(ctx, &v)
}

func (s *Service) Unvote(ctx context.Context, user, response string) error {
	err := s.store.DeleteVote(ctx, user, response)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("You have not voted on response {0}!", response)
	}
	return err
}

// Count returns upvotes minus downvotes for response.
func (s *Service) Count(ctx context.Context, response string) (int, error) {
	tallies, err := s.store.TallyVotes(ctx, []string{response})
	if err != nil {
		return 0, err
	}
	return tallies[response].Count(), nil
}

func (s *Service) Tallies(ctx context.Context, responses []string) (map[string]model.Tally, error) {
	return s.store.TallyVotes(ctx, responses)
}
