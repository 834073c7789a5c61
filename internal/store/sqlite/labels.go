package sqlite

import (
	"context"
	"time"

	"github.com/alphabot-ai/stance/internal/model"
)

const labelColumns = `id, kind, author, title, created_at, updated_at`

func (s *Store) CreateLabel(ctx context.Context, label *model.Label) error {
	_, err := s.db.NamedExecContext(ctx, `
INSERT INTO labels (id, kind, author, title, created_at, updated_at)
VALUES (:id, :kind, :author, :title, :created_at, :updated_at)
`, label)
	return insertErr(err)
}

func (s *Store) GetLabelByTitle(ctx context.Context, kind model.Kind, title string) (model.Label, error) {
	var l model.Label
	if err := s.getOne(ctx, &l, `SELECT `+labelColumns+` FROM labels WHERE kind = ? AND title = ?`, kind, title); err != nil {
		return l, err
	}
	items, err := s.labelItems(ctx, l.ID)
	if err != nil {
		return l, err
	}
	l.Items = items
	return l, nil
}

func (s *Store) ListLabels(ctx context.Context, kind model.Kind) ([]model.Label, error) {
	labels := []model.Label{}
	err := s.db.SelectContext(ctx, &labels, `SELECT `+labelColumns+` FROM labels WHERE kind = ? ORDER BY created_at DESC, rowid DESC`, kind)
	if err != nil {
		return nil, err
	}
	for i := range labels {
		items, err := s.labelItems(ctx, labels[i].ID)
		if err != nil {
			return nil, err
		}
		labels[i].Items = items
	}
	return labels, nil
}

func (s *Store) labelItems(ctx context.Context, labelID string) ([]string, error) {
	items := []string{}
	err := s.db.SelectContext(ctx, &items, `SELECT item FROM label_items WHERE label_id = ? ORDER BY created_at, rowid`, labelID)
	return items, err
}

// DeleteLabel removes the label and its items in one transaction.
func (s *Store) DeleteLabel(ctx context.Context, kind model.Kind, id string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM label_items WHERE label_id = ?`, id); err != nil {
		return err
	}
	if err := affectedOrNotFound(tx.ExecContext(ctx, `DELETE FROM labels WHERE kind = ? AND id = ?`, kind, id)); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) AddLabelItem(ctx context.Context, labelID, item string, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO label_items (label_id, item, created_at) VALUES (?, ?, ?)`, labelID, item, at)
	return insertErr(err)
}

func (s *Store) RemoveLabelItem(ctx context.Context, labelID, item string) error {
	return affectedOrNotFound(s.db.ExecContext(ctx, `DELETE FROM label_items WHERE label_id = ? AND item = ?`, labelID, item))
}
