// Package topic implements the Topicing concept.
package topic

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/alphabot-ai/stance/internal/apperr"
	"github.com/alphabot-ai/stance/internal/model"
	"github.com/alphabot-ai/stance/internal/store"
)

// DeletedTopic stands in for ids that no longer resolve to a topic.
const DeletedTopic = "DELETED_TOPIC"

// CodeAuthorMismatch tags ownership errors whose arguments are a user id
// and a topic id.
const CodeAuthorMismatch = "topic_author_mismatch"

type Service struct {
	store store.TopicStore
}

func NewService(store store.TopicStore) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, author, title, description string) (model.Topic, error) {
	if title == "" {
		return model.Topic{}, apperr.BadInput("Title must be non-empty!")
	}
	now := time.Now().UTC()
	t := model.Topic{
		ID:          uuid.NewString(),
		Author:      author,
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateTopic(ctx, &t); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return model.Topic{}, apperr.Conflict("Topic with title {0} already exists!", title)
		}
		return model.Topic{}, err
	}
	return t, nil
}

// GetAllTopics returns every topic, newest first.
func (s *Service) GetAllTopics(ctx context.Context) ([]model.Topic, error) {
	return s.store.ListTopics(ctx)
}

// SearchTopicTitles returns topics whose title contains substring, ignoring
// case.
func (s *Service) SearchTopicTitles(ctx context.Context, substring string) ([]model.Topic, error) {
	return s.store.SearchTopics(ctx, substring)
}

func (s *Service) GetTopicByTitle(ctx context.Context, title string) (model.Topic, error) {
	t, err := s.store.GetTopicByTitle(ctx, title)
	if errors.Is(err, store.ErrNotFound) {
		return model.Topic{}, apperr.NotFound("Topic {0} not found!", title)
	}
	return t, err
}

func (s *Service) GetTopicByID(ctx context.Context, id string) (model.Topic, error) {
	t, err := s.store.GetTopic(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return model.Topic{}, apperr.NotFound("Topic {0} does not exist!", id)
	}
	return t, err
}

func (s *Service) GetTopicsByIDs(ctx context.Context, ids []string) ([]model.Topic, error) {
	return s.store.ListTopicsByIDs(ctx, ids)
}

// Delete removes the topic. Callers check ownership with AssertAuthorIsUser.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.store.DeleteTopic(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("Topic {0} does not exist!", id)
	}
	return err
}

func (s *Service) AssertAuthorIsUser(ctx context.Context, id, user string) error {
	t, err := s.GetTopicByID(ctx, id)
	if err != nil {
		return err
	}
	if t.Author != user {
		return apperr.Unauthorized("{0} is not the author of topic {1}!", user, id).WithCode(CodeAuthorMismatch)
	}
	return nil
}

// IDsToTitles resolves ids positionally; missing topics become DeletedTopic.
func (s *Service) IDsToTitles(ctx context.Context, ids []string) ([]string, error) {
	topics, err := s.store.ListTopicsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]string, len(topics))
	for _, t := range topics {
		byID[t.ID] = t.Title
	}
	titles := make([]string, len(ids))
	for i, id := range ids {
		if title, ok := byID[id]; ok {
			titles[i] = title
		} else {
			titles[i] = DeletedTopic
		}
	}
	return titles, nil
}
