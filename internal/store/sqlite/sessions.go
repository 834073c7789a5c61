package sqlite

import (
	"context"
	"time"

	"github.com/alphabot-ai/stance/internal/model"
)

func (s *Store) PutSession(ctx context.Context, session model.Session) error {
	_, err := s.db.NamedExecContext(ctx, `
INSERT INTO sessions (id, user_id, expires_at, created_at)
VALUES (:id, :user_id, :expires_at, :created_at)
ON CONFLICT(id) DO UPDATE SET user_id = excluded.user_id, expires_at = excluded.expires_at
`, session)
	return err
}

func (s *Store) GetSession(ctx context.Context, id string) (model.Session, error) {
	var sess model.Session
	err := s.getOne(ctx, &sess, `SELECT id, user_id, expires_at, created_at FROM sessions WHERE id = ?`, id)
	return sess, err
}

func (s *Store) DeleteSession(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	return err
}

func (s *Store) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
