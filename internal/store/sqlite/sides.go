package sqlite

import (
	"context"
	"time"

	"github.com/alphabot-ai/stance/internal/model"
)

const sideColumns = `id, user_id, issue, degree, created_at, updated_at`

func (s *Store) CreateSide(ctx context.Context, side *model.Side) error {
	_, err := s.db.NamedExecContext(ctx, `
INSERT INTO sides (id, user_id, issue, degree, created_at, updated_at)
VALUES (:id, :user_id, :issue, :degree, :created_at, :updated_at)
`, side)
	return insertErr(err)
}

func (s *Store) GetSide(ctx context.Context, user, issue string) (model.Side, error) {
	var side model.Side
	err := s.getOne(ctx, &side, `SELECT `+sideColumns+` FROM sides WHERE user_id = ? AND issue = ?`, user, issue)
	return side, err
}

func (s *Store) ListSidesByUser(ctx context.Context, user string) ([]model.Side, error) {
	sides := []model.Side{}
	err := s.db.SelectContext(ctx, &sides, `SELECT `+sideColumns+` FROM sides WHERE user_id = ? ORDER BY created_at DESC, rowid DESC`, user)
	return sides, err
}

func (s *Store) ListSidesByIssue(ctx context.Context, issue string) ([]model.Side, error) {
	sides := []model.Side{}
	err := s.db.SelectContext(ctx, &sides, `SELECT `+sideColumns+` FROM sides WHERE issue = ? ORDER BY created_at DESC, rowid DESC`, issue)
	return sides, err
}

func (s *Store) UpdateSideDegree(ctx context.Context, user, issue string, degree model.Degree, at time.Time) error {
	return affectedOrNotFound(s.db.ExecContext(ctx,
		`UPDATE sides SET degree = ?, updated_at = ? WHERE user_id = ? AND issue = ?`,
		degree, at, user, issue))
}
