// Package respond implements the Responding concept. One Service exists per
// model.Kind: responses to topics and responses to responses share the
// implementation and the table but never see each other's rows.
package respond

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/alphabot-ai/stance/internal/apperr"
	"github.com/alphabot-ai/stance/internal/model"
	"github.com/alphabot-ai/stance/internal/store"
)

// DeletedResponse stands in for ids that no longer resolve to a response.
const DeletedResponse = "DELETED_RESPONSE"

// CodeAuthorMismatch tags ownership errors whose arguments are a user id
// and a response id.
const CodeAuthorMismatch = "response_author_mismatch"

type Service struct {
	store store.ResponseStore
	kind  model.Kind
}

func NewService(store store.ResponseStore, kind model.Kind) *Service {
	return &Service{store: store, kind: kind}
}

func (s *Service) Create(ctx context.Context, author, title, content, target string) (model.Response, error) {
	if title == "" {
		return model.Response{}, apperr.BadInput("Title must be non-empty!")
	}
	if content == "" {
		return model.Response{}, apperr.BadInput("Content must be non-empty!")
	}
	now := time.Now().UTC()
	r := model.Response{
		ID:        uuid.NewString(),
		Kind:      s.kind,
		Author:    author,
		Title:     title,
		Content:   content,
		Target:    target,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateResponse(ctx, &r); err != nil {
		return model.Response{}, err
	}
	return r, nil
}

func (s *Service) GetResponses(ctx context.Context) ([]model.Response, error) {
	return s.store.ListResponses(ctx, model.ResponseFilter{Kind: s.kind})
}

func (s *Service) GetByAuthor(ctx context.Context, author string) ([]model.Response, error) {
	return s.store.ListResponses(ctx, model.ResponseFilter{Kind: s.kind, Author: author})
}

func (s *Service) GetByTarget(ctx context.Context, target string) ([]model.Response, error) {
	return s.store.ListResponses(ctx, model.ResponseFilter{Kind: s.kind, Target: target})
}

func (s *Service) GetByAuthorAndTarget(ctx context.Context, author, target string) ([]model.Response, error) {
	return s.store.ListResponses(ctx, model.ResponseFilter{Kind: s.kind, Author: author, Target: target})
}

func (s *Service) GetByID(ctx context.Context, id string) (model.Response, error) {
	r, err := s.store.GetResponse(ctx, s.kind, id)
	if errors.Is(err, store.ErrNotFound) {
		return model.Response{}, apperr.NotFound("Response {0} does not exist!", id)
	}
	return r, err
}

// IDsToResponses resolves ids positionally. Missing responses are nil.
func (s *Service) IDsToResponses(ctx context.Context, ids []string) ([]*model.Response, error) {
	found, err := s.store.ListResponsesByIDs(ctx, s.kind, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*model.Response, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}
	out := make([]*model.Response, len(ids))
	for i, id := range ids {
		out[i] = byID[id]
	}
	return out, nil
}

// IDsToTitles resolves ids positionally; missing responses become
// DeletedResponse.
func (s *Service) IDsToTitles(ctx context.Context, ids []string) ([]string, error) {
	responses, err := s.IDsToResponses(ctx, ids)
	if err != nil {
		return nil, err
	}
	titles := make([]string, len(ids))
	for i, r := range responses {
		if r == nil {
			titles[i] = DeletedResponse
		} else {
			titles[i] = r.Title
		}
	}
	return titles, nil
}

// UpdateTitle replaces the title. A nil or empty title leaves it as is.
func (s *Service) UpdateTitle(ctx context.Context, id string, title *string) error {
	if title == nil || *title == "" {
		return nil
	}
	return s.update(ctx, id, model.ResponseUpdate{Title: title})
}

// UpdateContent replaces the content. A nil or empty content leaves it as is.
func (s *Service) UpdateContent(ctx context.Context, id string, content *string) error {
	if content == nil || *content == "" {
		return nil
	}
	return s.update(ctx, id, model.ResponseUpdate{Content: content})
}

func (s *Service) update(ctx context.Context, id string, update model.ResponseUpdate) error {
	err := s.store.UpdateResponse(ctx, s.kind, id, update, time.Now().UTC())
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("Response {0} does not exist!", id)
	}
	return err
}

func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.store.DeleteResponse(ctx, s.kind, id)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("Response {0} does not exist!", id)
	}
	return err
}

func (s *Service) AssertAuthorIsUser(ctx context.Context, id, user string) error {
	r, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if r.Author != user {
		return apperr.Unauthorized("{0} is not the author of response {1}!", user, id).WithCode(CodeAuthorMismatch)
	}
	return nil
}

// CountByTargets returns how many responses point at each target.
func (s *Service) CountByTargets(ctx context.Context, targets []string) (map[string]int, error) {
	return s.store.CountResponsesByTarget(ctx, s.kind, targets)
}
