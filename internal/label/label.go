// Package label implements the Labeling concept. One Service exists per
// model.Kind; a topic label only ever carries topic ids and a response label
// response ids.
package label

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/alphabot-ai/stance/internal/apperr"
	"github.com/alphabot-ai/stance/internal/model"
	"github.com/alphabot-ai/stance/internal/store"
)

// CodeAuthorMismatch tags ownership errors whose arguments are a user id
// and a label title.
const CodeAuthorMismatch = "label_author_mismatch"

type Service struct {
	store store.LabelStore
	kind  model.Kind
}

func NewService(store store.LabelStore, kind model.Kind) *Service {
	return &Service{store: store, kind: kind}
}

func (s *Service) Create(ctx context.Context, author, title string) (model.Label, error) {
	if title == "" {
		return model.Label{}, apperr.BadInput("Title must be non-empty!")
	}
	now := time.Now().UTC()
	l := model.Label{
		ID:        uuid.NewString(),
		Kind:      s.kind,
		Author:    author,
		Title:     title,
		Items:     []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateLabel(ctx, &l); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return model.Label{}, apperr.Conflict("Label with title {0} already exists!", title)
		}
		return model.Label{}, err
	}
	return l, nil
}

func (s *Service) GetAllLabels(ctx context.Context) ([]model.Label, error) {
	return s.store.ListLabels(ctx, s.kind)
}

func (s *Service) GetLabelByTitle(ctx context.Context, title string) (model.Label, error) {
	l, err := s.store.GetLabelByTitle(ctx, s.kind, title)
	if errors.Is(err, store.ErrNotFound) {
		return model.Label{}, apperr.NotFound("Label {0} not found!", title)
	}
	return l, err
}

// GetItems returns the ids carrying the label.
func (s *Service) GetItems(ctx context.Context, title string) ([]string, error) {
	l, err := s.GetLabelByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	return l.Items, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.store.DeleteLabel(ctx, s.kind, id)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("Label {0} does not exist!", id)
	}
	return err
}

func (s *Service) AssertAuthorIsUser(ctx context.Context, title, user string) error {
	l, err := s.GetLabelByTitle(ctx, title)
	if err != nil {
		return err
	}
	if l.Author != user {
		return apperr.Unauthorized("{0} is not the author of label {1}!", user, title).WithCode(CodeAuthorMismatch)
	}
	return nil
}

func (s *Service) AddLabelToItem(ctx context.Context, labelID, item string) error {
	err := s.store.AddLabelItem(ctx, labelID, item, time.Now().UTC())
	if errors.Is(err, store.ErrDuplicate) {
		return apperr.Conflict("Item {0} already has this label!", item)
	}
	return err
}

func (s *Service) RemoveLabelFromItem(ctx context.Context, labelID, item string) error {
	err := s.store.RemoveLabelItem(ctx, labelID, item)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("Item {0} does not have this label!", item)
	}
	return err
}
