package sqlite

import (
	"context"

	"github.com/alphabot-ai/stance/internal/model"
)

const topicColumns = `id, author, title, description, created_at, updated_at`

func (s *Store) CreateTopic(ctx context.Context, topic *model.Topic) error {
	_, err := s.db.NamedExecContext(ctx, `
INSERT INTO topics (id, author, title, description, created_at, updated_at)
VALUES (:id, :author, :title, :description, :created_at, :updated_at)
`, topic)
	return insertErr(err)
}

func (s *Store) GetTopic(ctx context.Context, id string) (model.Topic, error) {
	var t model.Topic
	err := s.getOne(ctx, &t, `SELECT `+topicColumns+` FROM topics WHERE id = ?`, id)
	return t, err
}

func (s *Store) GetTopicByTitle(ctx context.Context, title string) (model.Topic, error) {
	var t model.Topic
	err := s.getOne(ctx, &t, `SELECT `+topicColumns+` FROM topics WHERE title = ?`, title)
	return t, err
}

func (s *Store) ListTopics(ctx context.Context) ([]model.Topic, error) {
	topics := []model.Topic{}
	err := s.db.SelectContext(ctx, &topics, `SELECT `+topicColumns+` FROM topics ORDER BY created_at DESC, rowid DESC`)
	return topics, err
}

func (s *Store) SearchTopics(ctx context.Context, substring string) ([]model.Topic, error) {
	topics := []model.Topic{}
	err := s.db.SelectContext(ctx, &topics, `
SELECT `+topicColumns+` FROM topics
WHERE instr(lower(title), lower(?)) > 0
ORDER BY created_at DESC, rowid DESC
`, substring)
	return topics, err
}

func (s *Store) ListTopicsByIDs(ctx context.Context, ids []string) ([]model.Topic, error) {
	topics := []model.Topic{}
	if len(ids) == 0 {
		return topics, nil
	}
	err := s.selectIn(ctx, &topics, `SELECT `+topicColumns+` FROM topics WHERE id IN (?) ORDER BY created_at DESC, rowid DESC`, ids)
	return topics, err
}

func (s *Store) DeleteTopic(ctx context.Context, id string) error {
	return affectedOrNotFound(s.db.ExecContext(ctx, `DELETE FROM topics WHERE id = ?`, id))
}
