package sqlite

import (
	"context"
	"time"

	"github.com/alphabot-ai/stance/internal/model"
)

const userColumns = `id, username, password_hash, created_at, updated_at`

func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	_, err := s.db.NamedExecContext(ctx, `
INSERT INTO users (id, username, password_hash, created_at, updated_at)
VALUES (:id, :username, :password_hash, :created_at, :updated_at)
`, user)
	return insertErr(err)
}

func (s *Store) GetUser(ctx context.Context, id string) (model.User, error) {
	var u model.User
	err := s.getOne(ctx, &u, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return u, err
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	err := s.getOne(ctx, &u, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return u, err
}

func (s *Store) ListUsers(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	err := s.db.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM users ORDER BY username`)
	return users, err
}

func (s *Store) ListUsersByIDs(ctx context.Context, ids []string) ([]model.User, error) {
	users := []model.User{}
	if len(ids) == 0 {
		return users, nil
	}
	err := s.selectIn(ctx, &users, `SELECT `+userColumns+` FROM users WHERE id IN (?)`, ids)
	return users, err
}

func (s *Store) UpdateUsername(ctx context.Context, id, username string, at time.Time) error {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET username = ?, updated_at = ? WHERE id = ?`, username, at, id)
	if err != nil {
		return insertErr(err)
	}
	return affectedOrNotFound(res, nil)
}

func (s *Store) UpdatePasswordHash(ctx context.Context, id, hash string, at time.Time) error {
	return affectedOrNotFound(s.db.ExecContext(ctx, `UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`, hash, at, id))
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	return affectedOrNotFound(s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id))
}
