// Package side implements the Sideing concept: a user's degree of agreement
// with a topic. A user holds at most one side per topic.
package side

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/alphabot-ai/stance/internal/apperr"
	"github.com/alphabot-ai/stance/internal/model"
	"github.com/alphabot-ai/stance/internal/store"
)

const (
	// CodeExists and CodeMissing tag errors whose arguments are a user id
	// and a topic id.
	CodeExists  = "side_exists"
	CodeMissing = "side_missing"
)

type Service struct {
	store store.SideStore
}

func NewService(store store.SideStore) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, user, issue, degree string) (model.Side, error) {
	d, err := assertDegree(degree)
	if err != nil {
		return model.Side{}, err
	}
	now := time.Now().UTC()
	side := model.Side{
		ID:        uuid.NewString(),
		User:      user,
		Issue:     issue,
		Degree:    d,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateSide(ctx, &side); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return model.Side{}, apperr.Conflict("{0} already has a side for {1}!", user, issue).WithCode(CodeExists)
		}
		return model.Side{}, err
	}
	return side, nil
}

// GetSide returns the side user holds on issue.
func (s *Service) GetSide(ctx context.Context, user, issue string) (model.Side, error) {
	side, err := s.store.GetSide(ctx, user, issue)
	if errors.Is(err, store.ErrNotFound) {
		return model.Side{}, missing(user, issue)
	}
	return side, err
}

// GetSideByUserAndIssue lists the side user holds on issue, if any.
func (s *Service) GetSideByUserAndIssue(ctx context.Context, user, issue string) ([]model.Side, error) {
	side, err := s.store.GetSide(ctx, user, issue)
	if errors.Is(err, store.ErrNotFound) {
		return []model.Side{}, nil
	}
	if err != nil {
		return nil, err
	}
	return []model.Side{side}, nil
}

func (s *Service) GetSideByUser(ctx context.Context, user string) ([]model.Side, error) {
	return s.store.ListSidesByUser(ctx, user)
}

func (s *Service) GetSidesByIssue(ctx context.Context, issue string) ([]model.Side, error) {
	return s.store.ListSidesByIssue(ctx, issue)
}

// Update changes the degree of an existing side. A nil or empty degree is a
// no-op.
func (s *Service) Update(ctx context.Context, user, issue string, degree *string) error {
	if degree == nil || *degree == "" {
		return nil
	}
	d, err := assertDegree(*degree)
	if err != nil {
		return err
	}
	err = s.store.UpdateSideDegree(ctx, user, issue, d, time.Now().UTC())
	if errors.Is(err, store.ErrNotFound) {
		return missing(user, issue)
	}
	return err
}

func (s *Service) AssertUserHasSide(ctx context.Context, user, issue string) error {
	_, err := s.GetSide(ctx, user, issue)
	return err
}

func assertDegree(degree string) (model.Degree, error) {
	d, ok := model.ParseDegree(degree)
	if !ok {
		return "", apperr.NotFound("Degree {0} is not a valid side!", degree)
	}
	return d, nil
}

func missing(user, issue string) error {
	return apperr.NotFound("{0} doesn't have a side for topic {1}!", user, issue).WithCode(CodeMissing)
}
